package appointment

import (
	"context"
	"errors"

	domain "github.com/hairsol/booking-engine/internal/domain/appointment"
	"github.com/hairsol/booking-engine/internal/domain/catalog"
	"github.com/hairsol/booking-engine/internal/httperr"
	"github.com/hairsol/booking-engine/internal/identity"
	"github.com/hairsol/booking-engine/internal/models"
)

func resolveProvider(
	ctx context.Context,
	cat catalog.Repository,
	businessName string,
) (*models.ServiceProvider, error) {
	provider, err := cat.GetProviderByBusinessName(ctx, businessName)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, httperr.NotFoundErr(httperr.CodeProviderNotFound, "Service provider does not exist.")
	}
	if err != nil {
		return nil, err
	}
	return provider, nil
}

func resolveService(
	ctx context.Context,
	cat catalog.Repository,
	providerID uint,
	serviceName string,
) (*models.Service, error) {
	service, err := cat.GetServiceByName(ctx, providerID, serviceName)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, httperr.NotFoundErr(httperr.CodeServiceNotFound, "Service does not exist for this provider.")
	}
	if err != nil {
		return nil, err
	}
	return service, nil
}

// ownProvider resolves the provider profile of a professional caller.
func ownProvider(
	ctx context.Context,
	cat catalog.Repository,
	p identity.Principal,
) (*models.ServiceProvider, error) {
	if err := p.RequireProfessional(); err != nil {
		return nil, err
	}
	provider, err := cat.GetProviderByUserID(ctx, p.UserID)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, httperr.NotFoundErr(httperr.CodeProviderProfileNotFound, "Service provider profile not found.")
	}
	if err != nil {
		return nil, err
	}
	return provider, nil
}

func loadAppointment(ctx context.Context, repo domain.Repository, id uint) (*models.Appointment, error) {
	ap, err := repo.GetAppointment(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.NotFoundErr(httperr.CodeAppointmentNotFound, "Appointment not found.")
	}
	if err != nil {
		return nil, err
	}
	return ap, nil
}

// clientAppointment loads an appointment owned by the calling client.
func clientAppointment(
	ctx context.Context,
	repo domain.Repository,
	p identity.Principal,
	id uint,
) (*models.Appointment, error) {
	if err := p.RequireClient(); err != nil {
		return nil, err
	}
	ap, err := loadAppointment(ctx, repo, id)
	if err != nil {
		return nil, err
	}
	if ap.ClientID != p.UserID {
		return nil, httperr.Forbidden(httperr.CodeNotOwner, "This appointment belongs to another client.")
	}
	return ap, nil
}

func snapshot(ap *models.Appointment) map[string]any {
	return map[string]any{
		"client_id":           ap.ClientID,
		"service_provider_id": ap.ServiceProviderID,
		"service_id":          ap.ServiceID,
		"date":                ap.Date,
		"time":                ap.Time,
		"status":              ap.Status,
	}
}
