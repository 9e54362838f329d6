package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hairsol/booking-engine/internal/dto"
	"github.com/hairsol/booking-engine/internal/httperr"
)

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, httperr.Validation(httperr.CodeInvalidFormat, "Invalid id.")
	}
	return uint(id), nil
}

func parsePage(c *gin.Context) (dto.PageRequest, error) {
	return dto.ParsePage(c.Query("page"), c.Query("page_size"))
}

func invalidBody() error {
	return httperr.Validation(httperr.CodeInvalidFormat, "Invalid request body.")
}
