// Package clock resolves "now" in the app's fixed reference time zone.
// Scheduling behavior must be identical regardless of where the process
// runs, so everything downstream sees dates and minutes in this zone and
// nothing finer than minute granularity.
package clock

import (
	"fmt"
	"time"

	"github.com/dkalonji/tasbih/internal/domain"
)

// DefaultZoneName is the reference zone used when none is configured.
const DefaultZoneName = "Africa/Kinshasa"

// Moment is a calendar date plus a minute-granularity time of day in the
// reference zone. Seconds are discarded.
type Moment struct {
	Date string // "YYYY-MM-DD"
	Time domain.TimeOfDay
}

// Clock provides the current Moment.
type Clock interface {
	Now() Moment
}

type zoneClock struct {
	loc *time.Location
}

// NewZoneClock returns a Clock resolving time.Now in the given location.
func NewZoneClock(loc *time.Location) Clock {
	return &zoneClock{loc: loc}
}

// LoadZone loads the named zone, defaulting to DefaultZoneName when name
// is empty.
func LoadZone(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultZoneName
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("loading time zone %q: %w", name, err)
	}
	return loc, nil
}

func (c *zoneClock) Now() Moment {
	return MomentAt(time.Now(), c.loc)
}

// MomentAt converts an absolute time to a Moment in the given location.
func MomentAt(t time.Time, loc *time.Location) Moment {
	local := t.In(loc)
	return Moment{
		Date: local.Format("2006-01-02"),
		Time: domain.TimeOfDay{Hour: local.Hour(), Minute: local.Minute()},
	}
}
