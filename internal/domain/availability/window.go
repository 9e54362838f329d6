package availability

import (
	"time"

	"github.com/hairsol/booking-engine/internal/httperr"
	"github.com/hairsol/booking-engine/internal/models"
	"github.com/hairsol/booking-engine/internal/timezone"
)

// Slot is a candidate window before it is persisted.
type Slot struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Overlaps treats windows as half-open, so touching boundaries do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return !(aEnd <= bStart || aStart >= bEnd)
}

// FindOverlap returns the first existing window overlapping s, ignoring excludeID.
func FindOverlap(s Slot, existing []models.AvailabilityWindow, excludeID uint) *models.AvailabilityWindow {
	for i := range existing {
		w := &existing[i]
		if excludeID != 0 && w.ID == excludeID {
			continue
		}
		if w.Date != s.Date {
			continue
		}
		if Overlaps(s.StartTime, s.EndTime, w.StartTime, w.EndTime) {
			return w
		}
	}
	return nil
}

// Covering returns the window whose [start, end] contains clock. When two
// touching windows both contain it the later one wins, since only that one
// can still fit an appointment starting there.
func Covering(windows []models.AvailabilityWindow, clock string) *models.AvailabilityWindow {
	var found *models.AvailabilityWindow
	for i := range windows {
		w := &windows[i]
		if w.StartTime <= clock && clock <= w.EndTime {
			if found == nil || w.StartTime > found.StartTime {
				found = w
			}
		}
	}
	return found
}

// Normalize validates formats and the temporal rules for a declaration made at now.
func Normalize(in Slot, now time.Time) (Slot, error) {
	if in.Date == "" || in.StartTime == "" || in.EndTime == "" {
		return Slot{}, httperr.Validation(httperr.CodeMissingFields, "date, start_time and end_time are required.")
	}

	date, err := timezone.ParseDate(in.Date)
	if err != nil {
		return Slot{}, httperr.Validation(httperr.CodeInvalidFormat, "Invalid date format, expected YYYY-MM-DD.")
	}
	start, err := timezone.ParseClock(in.StartTime)
	if err != nil {
		return Slot{}, httperr.Validation(httperr.CodeInvalidFormat, "Invalid start_time format, expected HH:MM:SS.")
	}
	end, err := timezone.ParseClock(in.EndTime)
	if err != nil {
		return Slot{}, httperr.Validation(httperr.CodeInvalidFormat, "Invalid end_time format, expected HH:MM:SS.")
	}

	today := timezone.DateOf(now)
	if date < today {
		return Slot{}, httperr.Validation(httperr.CodePastDate, "Date cannot be in the past.")
	}
	if date == today && start < timezone.ClockOf(now) {
		return Slot{}, httperr.Validation(httperr.CodePastTime, "Start time cannot be in the past.")
	}
	if start >= end {
		return Slot{}, httperr.Validation(httperr.CodeInvalidTimeRange, "Start time must be before end time.")
	}

	return Slot{Date: date, StartTime: start, EndTime: end}, nil
}
