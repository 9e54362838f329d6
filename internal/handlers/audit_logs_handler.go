package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hairsol/booking-engine/internal/audit"
	"github.com/hairsol/booking-engine/internal/domain/catalog"
	"github.com/hairsol/booking-engine/internal/dto"
	"github.com/hairsol/booking-engine/internal/httperr"
	"github.com/hairsol/booking-engine/internal/httpresp"
	"github.com/hairsol/booking-engine/internal/middleware"
	"github.com/hairsol/booking-engine/internal/models"
	"github.com/hairsol/booking-engine/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	store   audit.Store
	catalog catalog.Repository
	logger  *zap.Logger
}

func NewAuditLogsHandler(store audit.Store, catalog catalog.Repository, logger *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{store: store, catalog: catalog, logger: logger}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	if err := p.RequireProfessional(); err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	provider, err := h.catalog.GetProviderByUserID(c.Request.Context(), p.UserID)
	if errors.Is(err, catalog.ErrNotFound) {
		httperr.Respond(c, h.logger, httperr.NotFoundErr(httperr.CodeProviderProfileNotFound, "Service provider profile not found."))
		return
	}
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	page, err := parsePage(c)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	f := audit.Filter{
		ServiceProviderID: provider.ID,
		Action:            c.Query("action"),
		Entity:            c.Query("entity"),
		Offset:            page.Offset(),
		Limit:             page.PageSize,
	}

	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse(timezone.DateLayout, fromStr)
		if err != nil {
			httperr.Respond(c, h.logger, httperr.Validation(httperr.CodeInvalidFormat, "Invalid from date, expected YYYY-MM-DD."))
			return
		}
		f.From = &from
	}

	if toStr := c.Query("to"); toStr != "" {
		to, err := time.Parse(timezone.DateLayout, toStr)
		if err != nil {
			httperr.Respond(c, h.logger, httperr.Validation(httperr.CodeInvalidFormat, "Invalid to date, expected YYYY-MM-DD."))
			return
		}
		end := to.Add(24 * time.Hour)
		f.To = &end
	}

	// --------------------------------------------------
	// Listing
	// --------------------------------------------------

	logs, total, err := h.store.List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	httpresp.Paginated(c, dto.NewPage[models.AuditLog](page, logs, total))
}
