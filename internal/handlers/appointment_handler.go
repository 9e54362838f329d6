package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hairsol/booking-engine/internal/dto"
	"github.com/hairsol/booking-engine/internal/httperr"
	"github.com/hairsol/booking-engine/internal/httpresp"
	"github.com/hairsol/booking-engine/internal/middleware"
	"github.com/hairsol/booking-engine/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// AppointmentHandler serves the client side of booking.
type AppointmentHandler struct {
	book       *appointment.BookAppointment
	reschedule *appointment.RescheduleAppointment
	cancel     *appointment.CancelAppointment
	queries    *appointment.Queries
	logger     *zap.Logger
}

func NewAppointmentHandler(
	book *appointment.BookAppointment,
	reschedule *appointment.RescheduleAppointment,
	cancel *appointment.CancelAppointment,
	queries *appointment.Queries,
	logger *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		book:       book,
		reschedule: reschedule,
		cancel:     cancel,
		queries:    queries,
		logger:     logger,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	Date            string `json:"date"` // YYYY-MM-DD
	Time            string `json:"time"` // HH:MM:SS
	ServiceProvider string `json:"service_provider"`
	Service         string `json:"service"`
}

type RescheduleAppointmentRequest struct {
	Date *string `json:"date"`
	Time *string `json:"time"`
}

// ======================================================
// COMMANDS
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, h.logger, invalidBody())
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), middleware.PrincipalFrom(c), appointment.BookAppointmentInput{
		Date:            req.Date,
		Time:            req.Time,
		ServiceProvider: req.ServiceProvider,
		Service:         req.Service,
	})
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	httpresp.Created(c, "Appointment booked successfully", dto.FromAppointment(*ap))
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, h.logger, invalidBody())
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), middleware.PrincipalFrom(c), id, appointment.RescheduleInput{
		Date: req.Date,
		Time: req.Time,
	})
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(*ap))
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	if err := h.cancel.Execute(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// QUERIES
// ======================================================

func (h *AppointmentHandler) Current(c *gin.Context) {
	h.list(c, h.queries.ClientCurrent)
}

func (h *AppointmentHandler) Active(c *gin.Context) {
	h.list(c, h.queries.ClientActive)
}

func (h *AppointmentHandler) History(c *gin.Context) {
	h.list(c, h.queries.ClientHistory)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	ap, err := h.queries.ClientGet(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(*ap))
}

func (h *AppointmentHandler) list(c *gin.Context, query listQuery) {
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
