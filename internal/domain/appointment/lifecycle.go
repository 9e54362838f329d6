package appointment

import (
	"fmt"
	"time"

	"github.com/hairsol/booking-engine/internal/models"
	"github.com/hairsol/booking-engine/internal/timezone"
)

const (
	waitingLead = 50 * time.Minute
	processLead = 45 * time.Minute
	finishGrace = time.Minute

	NotesWaiting  = "Time Estimation: 50 Minutes"
	NotesFinished = "Appointment Finished"
)

func NotesProcessing(durationMinutes int) string {
	return fmt.Sprintf("On Process %d Minutes", durationMinutes)
}

type State struct {
	Status Status
	Notes  string
}

// step applies at most one transition.
func step(s State, start time.Time, duration time.Duration, now time.Time) (State, bool) {
	switch s.Status {
	case StatusBooked:
		switch {
		case now.Before(start.Add(-waitingLead)):
			return s, false
		case now.Before(start.Add(-processLead)):
			return State{Status: StatusWaiting, Notes: NotesWaiting}, true
		default:
			return State{Status: StatusProcess, Notes: s.Notes}, true
		}

	case StatusWaiting:
		if !now.Before(start) {
			return State{Status: StatusProcess, Notes: NotesProcessing(int(duration / time.Minute))}, true
		}

	case StatusProcess:
		if now.After(start.Add(duration + finishGrace)) {
			return State{Status: StatusFinished, Notes: NotesFinished}, true
		}
	}

	return s, false
}

// Advance runs the lifecycle to its fixed point for the given instant. It is
// idempotent and never moves a status backwards.
func Advance(s State, start time.Time, durationMinutes int, now time.Time) State {
	duration := time.Duration(durationMinutes) * time.Minute
	for {
		next, moved := step(s, start, duration, now)
		if !moved || next.Status.rank() <= s.Status.rank() {
			return s
		}
		s = next
	}
}

// AdvanceAppointment evaluates ap at now without persisting anything. ok is
// false when the stored date/time cannot be parsed, in which case the
// appointment is left untouched.
func AdvanceAppointment(ap *models.Appointment, now time.Time) (next State, ok bool) {
	cur := State{Status: Status(ap.Status), Notes: ap.Notes}

	start, err := timezone.At(ap.Date, ap.Time, now.Location())
	if err != nil {
		return cur, false
	}

	return Advance(cur, start, ap.Service.DurationMinutes, now), true
}

// NotesFor is the note a provider sees for an appointment in the given status.
// Booked appointments keep whatever notes they carry.
func NotesFor(status Status, durationMinutes int, current string) string {
	switch status {
	case StatusWaiting:
		return NotesWaiting
	case StatusProcess:
		return NotesProcessing(durationMinutes)
	case StatusFinished:
		return NotesFinished
	default:
		return current
	}
}
