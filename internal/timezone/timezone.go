package timezone

import (
	"errors"
	"time"
)

const DefaultTimezone = "UTC"

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04:05"
)

var ErrInvalidFormat = errors.New("invalid date or time format")

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.UTC
}

// ParseDate validates a YYYY-MM-DD string.
func ParseDate(s string) (string, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", ErrInvalidFormat
	}
	return d.Format(DateLayout), nil
}

// ParseClock validates an HH:MM:SS string.
func ParseClock(s string) (string, error) {
	c, err := time.Parse(ClockLayout, s)
	if err != nil {
		return "", ErrInvalidFormat
	}
	return c.Format(ClockLayout), nil
}

// At combines a calendar date and a wall clock time into an instant in loc.
func At(date, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+ClockLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, ErrInvalidFormat
	}
	return t, nil
}

func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

func ClockOf(t time.Time) string {
	return t.Format(ClockLayout)
}
