package testutil

import (
	"github.com/dkalonji/tasbih/internal/clock"
	"github.com/dkalonji/tasbih/internal/domain"
)

// FakeClock is a Clock pinned to a settable moment.
type FakeClock struct {
	Moment clock.Moment
}

// NewFakeClock creates a FakeClock at the given date and "HH:MM" time.
func NewFakeClock(date, timeOfDay string) *FakeClock {
	return &FakeClock{Moment: clock.Moment{
		Date: date,
		Time: domain.MustTimeOfDay(timeOfDay),
	}}
}

func (c *FakeClock) Now() clock.Moment {
	return c.Moment
}

// Set moves the clock to the given date and time.
func (c *FakeClock) Set(date, timeOfDay string) {
	c.Moment = clock.Moment{Date: date, Time: domain.MustTimeOfDay(timeOfDay)}
}
