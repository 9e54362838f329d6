package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hairsol/booking-engine/internal/dto"
	"github.com/hairsol/booking-engine/internal/httperr"
	"github.com/hairsol/booking-engine/internal/httpresp"
	"github.com/hairsol/booking-engine/internal/middleware"
	"github.com/hairsol/booking-engine/internal/usecase/availability"
)

// AvailabilityHandler lets a provider manage their own windows.
type AvailabilityHandler struct {
	declare *availability.DeclareAvailability
	update  *availability.UpdateAvailability
	remove  *availability.RemoveAvailability
	queries *availability.AvailabilityQueries
	logger  *zap.Logger
}

func NewAvailabilityHandler(
	declare *availability.DeclareAvailability,
	update *availability.UpdateAvailability,
	remove *availability.RemoveAvailability,
	queries *availability.AvailabilityQueries,
	logger *zap.Logger,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		declare: declare,
		update:  update,
		remove:  remove,
		queries: queries,
		logger:  logger,
	}
}

type DeclareAvailabilityRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type UpdateAvailabilityRequest struct {
	Date      *string `json:"date"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

func (h *AvailabilityHandler) Declare(c *gin.Context) {
	var req DeclareAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, h.logger, invalidBody())
		return
	}

	w, err := h.declare.Execute(c.Request.Context(), middleware.PrincipalFrom(c), availability.WindowInput{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	httpresp.Created(c, "Availability created successfully", dto.FromWindow(*w))
}

func (h *AvailabilityHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	w, err := h.queries.Get(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	httpresp.OK(c, dto.FromWindow(*w))
}

func (h *AvailabilityHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	var req UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, h.logger, invalidBody())
		return
	}

	w, err := h.update.Execute(c.Request.Context(), middleware.PrincipalFrom(c), id, availability.UpdateWindowInput{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	httpresp.OK(c, dto.FromWindow(*w))
}

func (h *AvailabilityHandler) Remove(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	if err := h.remove.Execute(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	httpresp.NoContent(c)
}
