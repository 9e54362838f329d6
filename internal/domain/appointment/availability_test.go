package appointment

import (
	"testing"
	"time"

	"github.com/hairsol/booking-engine/internal/models"
)

func TestOpenSlots(t *testing.T) {
	windows := []models.AvailabilityWindow{
		{StartTime: "09:00:00", EndTime: "10:30:00"},
		{StartTime: "14:00:00", EndTime: "14:45:00"},
	}
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	got := OpenSlots("2025-06-01", windows, []string{"09:30:00"}, 30, now)
	want := []TimeSlot{
		{Start: "09:00:00", End: "09:30:00"},
		{Start: "10:00:00", End: "10:30:00"},
		{Start: "14:00:00", End: "14:30:00"},
	}

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("slot %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestOpenSlotsSkipsPast(t *testing.T) {
	windows := []models.AvailabilityWindow{{StartTime: "09:00:00", EndTime: "11:00:00"}}
	now := time.Date(2025, 6, 1, 9, 45, 0, 0, time.UTC)

	got := OpenSlots("2025-06-01", windows, nil, 60, now)
	if len(got) != 1 || got[0].Start != "10:00:00" {
		t.Fatalf("expected only the 10:00 slot, got %v", got)
	}

	got = OpenSlots("2025-06-01", windows, nil, 30, now)
	if len(got) != 2 || got[0].Start != "10:00:00" {
		t.Fatalf("unexpected slots %v", got)
	}
}
