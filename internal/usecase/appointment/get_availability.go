package appointment

import (
	"context"
	"strings"

	domain "github.com/hairsol/booking-engine/internal/domain/appointment"
	"github.com/hairsol/booking-engine/internal/domain/catalog"
	"github.com/hairsol/booking-engine/internal/httperr"
	"github.com/hairsol/booking-engine/internal/timezone"
)

type OpenSlotsInput struct {
	ServiceProvider string
	Service         string
	Date            string
}

// GetOpenSlots lists the start times a client could still book on a date.
type GetOpenSlots struct {
	catalog catalog.Repository
	repo    domain.Repository
	clock   timezone.Clock
}

func NewGetOpenSlots(
	catalog catalog.Repository,
	repo domain.Repository,
	clock timezone.Clock,
) *GetOpenSlots {
	return &GetOpenSlots{
		catalog: catalog,
		repo:    repo,
		clock:   clock,
	}
}

func (uc *GetOpenSlots) Execute(
	ctx context.Context,
	in OpenSlotsInput,
) ([]domain.TimeSlot, error) {
	if strings.TrimSpace(in.Date) == "" || strings.TrimSpace(in.Service) == "" {
		return nil, httperr.Validation(httperr.CodeMissingFields, "date and service are required.")
	}
	date, err := timezone.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.Validation(httperr.CodeInvalidFormat, "Invalid date format, expected YYYY-MM-DD.")
	}

	provider, err := resolveProvider(ctx, uc.catalog, in.ServiceProvider)
	if err != nil {
		return nil, err
	}
	service, err := resolveService(ctx, uc.catalog, provider.ID, in.Service)
	if err != nil {
		return nil, err
	}

	windows, err := uc.repo.ListWindowsByDate(ctx, provider.ID, date)
	if err != nil {
		return nil, err
	}
	taken, err := uc.repo.ListBookedTimes(ctx, provider.ID, service.ID, date)
	if err != nil {
		return nil, err
	}

	return domain.OpenSlots(date, windows, taken, service.DurationMinutes, uc.clock.Now()), nil
}
