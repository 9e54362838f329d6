package memory

import (
	"context"

	"github.com/hairsol/booking-engine/internal/domain/catalog"
	"github.com/hairsol/booking-engine/internal/models"
)

func (s *Store) GetProviderByUserID(ctx context.Context, userID uint) (*models.ServiceProvider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.providers {
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (s *Store) GetProviderByBusinessName(ctx context.Context, name string) (*models.ServiceProvider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.providers {
		if equalFold(p.BusinessName, name) {
			return &p, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (s *Store) GetServiceByName(ctx context.Context, providerID uint, name string) (*models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *models.Service
	for _, svc := range s.services {
		if svc.ServiceProviderID == providerID && equalFold(svc.ServiceName, name) {
			if found == nil || svc.ID < found.ID {
				found = &svc
			}
		}
	}
	if found == nil {
		return nil, catalog.ErrNotFound
	}
	return found, nil
}

var _ catalog.Repository = (*Store)(nil)
