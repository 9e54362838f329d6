package appointment

import (
	"time"

	"github.com/hairsol/booking-engine/internal/models"
	"github.com/hairsol/booking-engine/internal/timezone"
)

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// OpenSlots walks every window of the day in steps of the service duration and
// keeps the starts that are neither taken nor already past.
func OpenSlots(
	date string,
	windows []models.AvailabilityWindow,
	taken []string,
	durationMinutes int,
	now time.Time,
) []TimeSlot {
	slots := []TimeSlot{}
	if durationMinutes <= 0 {
		return slots
	}

	loc := now.Location()
	step := time.Duration(durationMinutes) * time.Minute

	busy := make(map[string]struct{}, len(taken))
	for _, t := range taken {
		busy[t] = struct{}{}
	}

	for _, w := range windows {
		dayStart, err := timezone.At(date, w.StartTime, loc)
		if err != nil {
			continue
		}
		dayEnd, err := timezone.At(date, w.EndTime, loc)
		if err != nil {
			continue
		}

		for cur := dayStart; !cur.Add(step).After(dayEnd); cur = cur.Add(step) {
			if cur.Before(now) {
				continue
			}
			start := timezone.ClockOf(cur)
			if _, ok := busy[start]; ok {
				continue
			}
			slots = append(slots, TimeSlot{
				Start: start,
				End:   timezone.ClockOf(cur.Add(step)),
			})
		}
	}

	return slots
}
