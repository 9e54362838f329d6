package audit

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/hairsol/booking-engine/internal/metrics"
	"github.com/hairsol/booking-engine/internal/models"
)

const (
	ActionAvailabilityDeclared = "availability_declared"
	ActionAvailabilityUpdated  = "availability_updated"
	ActionAvailabilityRemoved  = "availability_removed"
	ActionAppointmentBooked    = "appointment_booked"
	ActionAppointmentMoved     = "appointment_rescheduled"
	ActionAppointmentCancelled = "appointment_cancelled"
	ActionAppointmentConflict  = "appointment_conflict"

	EntityAvailability = "availability_window"
	EntityAppointment  = "appointment"
)

type Event struct {
	ServiceProviderID *uint
	UserID            *uint
	Action            string
	Entity            string
	EntityID          *uint
	Metadata          any
}

type Dispatcher struct {
	store  Store
	logger *zap.Logger
	queue  chan Event

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(store Store, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		store:  store,
		logger: logger,
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.store.Write(context.Background(), toLog(ev)); err != nil {
			d.logger.Error("audit write failed",
				zap.String("action", ev.Action),
				zap.Error(err),
			)
		}
	}
}

// Dispatch never blocks the request path; a full queue drops the event.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		metrics.RecordAuditDropped()
		d.logger.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close drains pending events. Dispatch must not be called afterwards.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	<-d.done
}

func toLog(ev Event) *models.AuditLog {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	return &models.AuditLog{
		ServiceProviderID: ev.ServiceProviderID,
		UserID:            ev.UserID,
		Action:            ev.Action,
		Entity:            ev.Entity,
		EntityID:          ev.EntityID,
		Metadata:          metaJSON,
	}
}

func Ptr(v uint) *uint {
	return &v
}
