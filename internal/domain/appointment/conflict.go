package appointment

import (
	"context"
	"time"

	"github.com/hairsol/booking-engine/internal/domain/availability"
	"github.com/hairsol/booking-engine/internal/httperr"
	"github.com/hairsol/booking-engine/internal/models"
	"github.com/hairsol/booking-engine/internal/timezone"
)

// Lookup is the read side the conflict checker needs.
type Lookup interface {
	ListWindowsByDate(ctx context.Context, providerID uint, date string) ([]models.AvailabilityWindow, error)

	// SlotTaken reports a non-cancelled appointment on the exact slot,
	// ignoring excludeID (0 ignores nothing).
	SlotTaken(
		ctx context.Context,
		providerID uint,
		serviceID uint,
		date string,
		clock string,
		excludeID uint,
	) (bool, error)
}

type Candidate struct {
	ProviderID uint
	Service    *models.Service
	Date       string
	Time       string
	ExcludeID  uint
}

// CheckFits runs the ordered booking checks and returns the first failure.
func CheckFits(ctx context.Context, lookup Lookup, c Candidate, now time.Time) error {
	loc := now.Location()

	start, err := timezone.At(c.Date, c.Time, loc)
	if err != nil {
		return httperr.Validation(httperr.CodeInvalidFormat, "Invalid date or time format.")
	}

	// 1. past
	today := timezone.DateOf(now)
	if c.Date < today {
		return httperr.Validation(httperr.CodePastDate, "Cannot book an appointment on a past date.")
	}
	if c.Date == today && c.Time < timezone.ClockOf(now) {
		return httperr.Validation(httperr.CodePastTime, "Cannot book an appointment at a past time.")
	}

	// 2. covering window
	windows, err := lookup.ListWindowsByDate(ctx, c.ProviderID, c.Date)
	if err != nil {
		return err
	}
	window := availability.Covering(windows, c.Time)
	if window == nil {
		return httperr.Conflict(httperr.CodeNotAvailable, "Service provider is not available at this time.")
	}

	// 3. exact slot
	taken, err := lookup.SlotTaken(ctx, c.ProviderID, c.Service.ID, c.Date, c.Time, c.ExcludeID)
	if err != nil {
		return err
	}
	if taken {
		return httperr.Conflict(httperr.CodeAlreadyBooked, "This slot is already booked.")
	}

	// 4. window still contains the start
	if c.Time < window.StartTime || c.Time > window.EndTime {
		return httperr.Conflict(httperr.CodeNotAvailable, "Service provider is not available at this time.")
	}

	// 5. duration fits before the window closes
	windowEnd, err := timezone.At(c.Date, window.EndTime, loc)
	if err != nil {
		return err
	}
	end := start.Add(time.Duration(c.Service.DurationMinutes) * time.Minute)
	if end.After(windowEnd) {
		return httperr.Conflict(
			httperr.CodeInsufficientTime,
			"Not enough time left in the provider's availability for this service.",
		)
	}

	return nil
}
