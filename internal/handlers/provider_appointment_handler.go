package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hairsol/booking-engine/internal/dto"
	"github.com/hairsol/booking-engine/internal/httperr"
	"github.com/hairsol/booking-engine/internal/httpresp"
	"github.com/hairsol/booking-engine/internal/identity"
	"github.com/hairsol/booking-engine/internal/middleware"
	"github.com/hairsol/booking-engine/internal/usecase/appointment"
)

type listQuery func(ctx context.Context, p identity.Principal, page dto.PageRequest) (appointment.AppointmentPage, error)

// ProviderAppointmentHandler serves the provider's view of their bookings.
type ProviderAppointmentHandler struct {
	queries *appointment.Queries
	logger  *zap.Logger
}

func NewProviderAppointmentHandler(queries *appointment.Queries, logger *zap.Logger) *ProviderAppointmentHandler {
	return &ProviderAppointmentHandler{queries: queries, logger: logger}
}

func (h *ProviderAppointmentHandler) All(c *gin.Context) {
	h.list(c, h.queries.ProviderAll)
}

func (h *ProviderAppointmentHandler) Past(c *gin.Context) {
	h.list(c, h.queries.ProviderPast)
}

func (h *ProviderAppointmentHandler) Upcoming(c *gin.Context) {
	h.list(c, h.queries.ProviderUpcoming)
}

func (h *ProviderAppointmentHandler) ByDate(c *gin.Context) {
	date := c.Query("date")
	h.list(c, func(ctx context.Context, p identity.Principal, page dto.PageRequest) (appointment.AppointmentPage, error) {
		return h.queries.ProviderByDate(ctx, p, date, page)
	})
}

func (h *ProviderAppointmentHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	ap, err := h.queries.ProviderGet(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(*ap))
}

func (h *ProviderAppointmentHandler) list(c *gin.Context, query listQuery) {
	page, err := parsePage(c)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	result, err := query(c.Request.Context(), middleware.PrincipalFrom(c), page)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	httpresp.Paginated(c, dto.MapPage(result, dto.FromAppointment))
}
