package appointment

import (
	"context"

	domain "github.com/hairsol/booking-engine/internal/domain/appointment"
	"github.com/hairsol/booking-engine/internal/domain/catalog"
	"github.com/hairsol/booking-engine/internal/dto"
	"github.com/hairsol/booking-engine/internal/httperr"
	"github.com/hairsol/booking-engine/internal/identity"
	"github.com/hairsol/booking-engine/internal/models"
	"github.com/hairsol/booking-engine/internal/timezone"
)

type AppointmentPage = dto.Page[models.Appointment]

// Queries serves the client and provider read paths. Each list refreshes the
// actor's open appointments first so status buckets never see stale rows.
type Queries struct {
	catalog   catalog.Repository
	repo      domain.Repository
	refresher *Refresher
}

func NewQueries(
	catalog catalog.Repository,
	repo domain.Repository,
	refresher *Refresher,
) *Queries {
	return &Queries{
		catalog:   catalog,
		repo:      repo,
		refresher: refresher,
	}
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (q *Queries) ClientCurrent(ctx context.Context, p identity.Principal, page dto.PageRequest) (AppointmentPage, error) {
	return q.clientList(ctx, p, domain.ClientCurrentStatuses, page)
}

func (q *Queries) ClientActive(ctx context.Context, p identity.Principal, page dto.PageRequest) (AppointmentPage, error) {
	return q.clientList(ctx, p, domain.ClientActiveStatuses, page)
}

func (q *Queries) ClientHistory(ctx context.Context, p identity.Principal, page dto.PageRequest) (AppointmentPage, error) {
	return q.clientList(ctx, p, domain.ClientHistoryStatuses, page)
}

func (q *Queries) ClientGet(ctx context.Context, p identity.Principal, id uint) (*models.Appointment, error) {
	ap, err := clientAppointment(ctx, q.repo, p, id)
	if err != nil {
		return nil, err
	}
	if err := q.refresher.Refresh(ctx, ap); err != nil {
		return nil, err
	}
	return ap, nil
}

func (q *Queries) clientList(
	ctx context.Context,
	p identity.Principal,
	statuses []domain.Status,
	page dto.PageRequest,
) (AppointmentPage, error) {
	if err := p.RequireClient(); err != nil {
		return AppointmentPage{}, err
	}
	if err := q.refresher.RefreshClient(ctx, p.UserID); err != nil {
		return AppointmentPage{}, err
	}

	return q.list(ctx, page, domain.ListFilter{
		ClientID: p.UserID,
		Statuses: statuses,
		Order:    domain.OrderByDateDesc,
	})
}

// --------------------------------------------------
// Provider
// --------------------------------------------------

func (q *Queries) ProviderAll(ctx context.Context, p identity.Principal, page dto.PageRequest) (AppointmentPage, error) {
	return q.providerList(ctx, p, page, domain.ListFilter{})
}

func (q *Queries) ProviderByDate(
	ctx context.Context,
	p identity.Principal,
	date string,
	page dto.PageRequest,
) (AppointmentPage, error) {
	if date == "" {
		return AppointmentPage{}, httperr.Validation(httperr.CodeMissingFields, "date is required.")
	}
	d, err := timezone.ParseDate(date)
	if err != nil {
		return AppointmentPage{}, httperr.Validation(httperr.CodeInvalidFormat, "Invalid date format, expected YYYY-MM-DD.")
	}
	return q.providerList(ctx, p, page, domain.ListFilter{Date: d})
}

func (q *Queries) ProviderPast(ctx context.Context, p identity.Principal, page dto.PageRequest) (AppointmentPage, error) {
	return q.providerList(ctx, p, page, domain.ListFilter{Statuses: domain.ProviderPastStatuses})
}

func (q *Queries) ProviderUpcoming(ctx context.Context, p identity.Principal, page dto.PageRequest) (AppointmentPage, error) {
	return q.providerList(ctx, p, page, domain.ListFilter{Statuses: domain.ProviderUpcomingStatuses})
}

// ProviderGet refreshes the appointment and rewrites its notes to match the
// status the provider is looking at.
func (q *Queries) ProviderGet(ctx context.Context, p identity.Principal, id uint) (*models.Appointment, error) {
	provider, err := ownProvider(ctx, q.catalog, p)
	if err != nil {
		return nil, err
	}

	ap, err := loadAppointment(ctx, q.repo, id)
	if err != nil {
		return nil, err
	}
	if ap.ServiceProviderID != provider.ID {
		return nil, httperr.Forbidden(httperr.CodeNotOwner, "This appointment belongs to another service provider.")
	}

	if err := q.refresher.Refresh(ctx, ap); err != nil {
		return nil, err
	}

	notes := domain.NotesFor(domain.Status(ap.Status), ap.Service.DurationMinutes, ap.Notes)
	if notes != ap.Notes {
		if err := q.repo.UpdateNotes(ctx, ap.ID, notes); err != nil {
			return nil, err
		}
		ap.Notes = notes
	}
	return ap, nil
}

func (q *Queries) providerList(
	ctx context.Context,
	p identity.Principal,
	page dto.PageRequest,
	f domain.ListFilter,
) (AppointmentPage, error) {
	provider, err := ownProvider(ctx, q.catalog, p)
	if err != nil {
		return AppointmentPage{}, err
	}
	if err := q.refresher.RefreshProvider(ctx, provider.ID); err != nil {
		return AppointmentPage{}, err
	}

	f.ProviderID = provider.ID
	f.Order = domain.OrderByCreatedDesc
	return q.list(ctx, page, f)
}

func (q *Queries) list(ctx context.Context, page dto.PageRequest, f domain.ListFilter) (AppointmentPage, error) {
	f.Offset, f.Limit = page.Offset(), page.PageSize

	items, total, err := q.repo.ListAppointments(ctx, f)
	if err != nil {
		return AppointmentPage{}, err
	}
	return dto.NewPage(page, items, total), nil
}
