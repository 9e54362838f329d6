package timezone

import "time"

// Clock supplies "now" in the business location.
type Clock interface {
	Now() time.Time
}

type SystemClock struct {
	Loc *time.Location
}

func NewSystemClock(tz string) SystemClock {
	return SystemClock{Loc: Location(tz)}
}

func (c SystemClock) Now() time.Time {
	loc := c.Loc
	if loc == nil {
		loc = time.UTC
	}
	return time.Now().In(loc)
}

// FixedClock always reports the same instant. Tests move it with Set.
type FixedClock struct {
	t time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{t: t}
}

func (c *FixedClock) Now() time.Time {
	return c.t
}

func (c *FixedClock) Set(t time.Time) {
	c.t = t
}

func (c *FixedClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}
