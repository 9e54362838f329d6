// Package memory keeps the whole engine state in process. It backs local
// development (STORAGE_DRIVER=memory) and the use case tests.
package memory

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hairsol/booking-engine/internal/models"
)

type Store struct {
	mu sync.RWMutex

	users        map[uint]models.User
	providers    map[uint]models.ServiceProvider
	services     map[uint]models.Service
	windows      map[uint]models.AvailabilityWindow
	appointments map[uint]models.Appointment
	checkouts    map[uint]models.AppointmentCheckout // by appointment id
	outbox       []models.OutboxEvent
	auditLogs    []models.AuditLog

	nextID uint

	locksMu  sync.Mutex
	dayLocks map[string]*sync.Mutex

	now func() time.Time
}

func New() *Store {
	return &Store{
		users:        map[uint]models.User{},
		providers:    map[uint]models.ServiceProvider{},
		services:     map[uint]models.Service{},
		windows:      map[uint]models.AvailabilityWindow{},
		appointments: map[uint]models.Appointment{},
		checkouts:    map[uint]models.AppointmentCheckout{},
		dayLocks:     map[string]*sync.Mutex{},
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

// --------------------------------------------------
// Seeding
// --------------------------------------------------

func (s *Store) AddUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == 0 {
		u.ID = s.id()
	} else if u.ID > s.nextID {
		s.nextID = u.ID
	}
	u.CreatedAt, u.UpdatedAt = s.now(), s.now()
	s.users[u.ID] = u
	return u
}

func (s *Store) AddProvider(p models.ServiceProvider) models.ServiceProvider {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == 0 {
		p.ID = s.id()
	} else if p.ID > s.nextID {
		s.nextID = p.ID
	}
	p.CreatedAt, p.UpdatedAt = s.now(), s.now()
	s.providers[p.ID] = p
	return p
}

func (s *Store) AddService(svc models.Service) models.Service {
	s.mu.Lock()
	defer s.mu.Unlock()

	if svc.ID == 0 {
		svc.ID = s.id()
	} else if svc.ID > s.nextID {
		s.nextID = svc.ID
	}
	svc.CreatedAt, svc.UpdatedAt = s.now(), s.now()
	s.services[svc.ID] = svc
	return svc
}

// --------------------------------------------------
// Provider/day locks
// --------------------------------------------------

func (s *Store) lockDays(providerID uint, dates []string) func() {
	keys := make([]string, 0, len(dates))
	seen := map[string]struct{}{}
	for _, d := range dates {
		k := fmt.Sprintf("%d:%s", providerID, d)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	locks := make([]*sync.Mutex, 0, len(keys))
	s.locksMu.Lock()
	for _, k := range keys {
		l, ok := s.dayLocks[k]
		if !ok {
			l = &sync.Mutex{}
			s.dayLocks[k] = l
		}
		locks = append(locks, l)
	}
	s.locksMu.Unlock()

	for _, l := range locks {
		l.Lock()
	}
	return func() {
		for i := len(locks) - 1; i >= 0; i-- {
			locks[i].Unlock()
		}
	}
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func page[T any](items []T, offset, limit int) []T {
	if offset < 0 || offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
