package memory

import (
	"context"
	"sort"

	"github.com/hairsol/booking-engine/internal/domain/availability"
	"github.com/hairsol/booking-engine/internal/httperr"
	"github.com/hairsol/booking-engine/internal/models"
)

type AvailabilityRepository struct {
	s *Store
}

func (s *Store) Availability() *AvailabilityRepository {
	return &AvailabilityRepository{s: s}
}

func (r *AvailabilityRepository) InProviderDays(
	ctx context.Context,
	providerID uint,
	dates []string,
	fn func(tx availability.Repository) error,
) error {
	unlock := r.s.lockDays(providerID, dates)
	defer unlock()
	return fn(r)
}

func (r *AvailabilityRepository) GetWindow(ctx context.Context, id uint) (*models.AvailabilityWindow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	w, ok := r.s.windows[id]
	if !ok {
		return nil, availability.ErrNotFound
	}
	return &w, nil
}

func (r *AvailabilityRepository) ListWindowsByDate(
	ctx context.Context,
	providerID uint,
	date string,
) ([]models.AvailabilityWindow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.windowsOn(providerID, date), nil
}

func (r *AvailabilityRepository) ListWindows(
	ctx context.Context,
	providerID uint,
	offset int,
	limit int,
) ([]models.AvailabilityWindow, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []models.AvailabilityWindow
	for _, w := range r.s.windows {
		if w.ServiceProviderID == providerID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	return page(out, offset, limit), int64(len(out)), nil
}

func (r *AvailabilityRepository) CreateWindow(ctx context.Context, w *models.AvailabilityWindow) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.duplicateWindow(w) {
		return httperr.Conflict(httperr.CodeOverlappingWindow, "An identical availability window already exists.")
	}
	w.ID = r.s.id()
	w.CreatedAt, w.UpdatedAt = r.s.now(), r.s.now()
	r.s.windows[w.ID] = *w
	return nil
}

func (r *AvailabilityRepository) UpdateWindow(ctx context.Context, w *models.AvailabilityWindow) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.windows[w.ID]
	if !ok {
		return availability.ErrNotFound
	}
	if r.s.duplicateWindow(w) {
		return httperr.Conflict(httperr.CodeOverlappingWindow, "An identical availability window already exists.")
	}
	cur.Date, cur.StartTime, cur.EndTime = w.Date, w.StartTime, w.EndTime
	cur.UpdatedAt = r.s.now()
	r.s.windows[w.ID] = cur
	*w = cur
	return nil
}

func (r *AvailabilityRepository) DeleteWindow(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.windows[id]; !ok {
		return availability.ErrNotFound
	}
	delete(r.s.windows, id)
	return nil
}

// windowsOn expects s.mu to be held.
func (s *Store) windowsOn(providerID uint, date string) []models.AvailabilityWindow {
	var out []models.AvailabilityWindow
	for _, w := range s.windows {
		if w.ServiceProviderID == providerID && w.Date == date {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out
}

// duplicateWindow mirrors the unique index on (provider, date, start, end).
func (s *Store) duplicateWindow(w *models.AvailabilityWindow) bool {
	for _, other := range s.windows {
		if other.ID != w.ID &&
			other.ServiceProviderID == w.ServiceProviderID &&
			other.Date == w.Date &&
			other.StartTime == w.StartTime &&
			other.EndTime == w.EndTime {
			return true
		}
	}
	return false
}

var _ availability.Repository = (*AvailabilityRepository)(nil)
