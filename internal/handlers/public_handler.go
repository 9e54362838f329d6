package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hairsol/booking-engine/internal/dto"
	"github.com/hairsol/booking-engine/internal/httperr"
	"github.com/hairsol/booking-engine/internal/httpresp"
	"github.com/hairsol/booking-engine/internal/usecase/appointment"
	"github.com/hairsol/booking-engine/internal/usecase/availability"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the unauthenticated browsing routes.
type PublicHandler struct {
	availability *availability.AvailabilityQueries
	slots        *appointment.GetOpenSlots
	logger       *zap.Logger
}

func NewPublicHandler(
	availability *availability.AvailabilityQueries,
	slots *appointment.GetOpenSlots,
	logger *zap.Logger,
) *PublicHandler {
	return &PublicHandler{
		availability: availability,
		slots:        slots,
		logger:       logger,
	}
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) ListAvailabilities(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	result, err := h.availability.ListByProvider(c.Request.Context(), c.Param("business_name"), page)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	httpresp.Paginated(c, dto.MapPage(result, dto.FromWindow))
}

func (h *PublicHandler) ListAvailabilitiesByDate(c *gin.Context) {
	windows, err := h.availability.ListByProviderDate(c.Request.Context(), c.Param("business_name"), c.Query("date"))
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	out := make([]dto.AvailabilityDTO, 0, len(windows))
	for _, w := range windows {
		out = append(out, dto.FromWindow(w))
	}
	httpresp.List(c, out)
}

////////////////////////////////////////////////////////
// SLOTS
////////////////////////////////////////////////////////

func (h *PublicHandler) OpenSlots(c *gin.Context) {
	slots, err := h.slots.Execute(c.Request.Context(), appointment.OpenSlotsInput{
		ServiceProvider: c.Param("business_name"),
		Service:         c.Query("service"),
		Date:            c.Query("date"),
	})
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	httpresp.List(c, slots)
}
