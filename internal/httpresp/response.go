package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hairsol/booking-engine/internal/dto"
)

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

type SuccessResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, SuccessResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func List[T any](c *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}

func Paginated[T any](c *gin.Context, page dto.Page[T]) {
	c.JSON(http.StatusOK, page)
}
