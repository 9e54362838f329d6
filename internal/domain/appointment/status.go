package appointment

import "github.com/hairsol/booking-engine/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusBooked    Status = "booked"
	StatusWaiting   Status = "on-waiting"
	StatusProcess   Status = "on-process"
	StatusFinished  Status = "finished"
	StatusCancelled Status = "cancelled"
)

// rank orders statuses along the lifecycle; transitions only move up.
func (s Status) rank() int {
	switch s {
	case StatusBooked:
		return 0
	case StatusWaiting:
		return 1
	case StatusProcess:
		return 2
	case StatusFinished, StatusCancelled:
		return 3
	default:
		return -1
	}
}

func (s Status) Terminal() bool {
	return s == StatusFinished || s == StatusCancelled
}

// Non-terminal statuses still subject to lifecycle advancement.
var OpenStatuses = []Status{StatusBooked, StatusWaiting, StatusProcess}

// Status buckets served by the query surface.
var (
	ClientCurrentStatuses    = []Status{StatusBooked}
	ClientActiveStatuses     = []Status{StatusBooked, StatusWaiting, StatusProcess}
	ClientHistoryStatuses    = []Status{StatusFinished}
	ProviderPastStatuses     = []Status{StatusFinished}
	ProviderUpcomingStatuses = []Status{StatusWaiting, StatusProcess}
)

// ===============================
// Validations
// ===============================

func InitialStatus() Status {
	return StatusBooked
}

// CanReschedule only lets an appointment move before its lifecycle started.
func CanReschedule(current Status) error {
	if current != StatusBooked {
		return httperr.Conflict(
			httperr.CodeAppointmentInProgress,
			"Only appointments that are still booked can be rescheduled.",
		)
	}
	return nil
}
