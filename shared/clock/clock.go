package clock

import (
	"time"

	"bizdesk/shared/timezone"
)

// Clock is the source of "now" for lifecycle timestamps. Injected so the
// scheduling engine can be driven deterministically in tests.
type Clock interface {
	Now() time.Time
}

type appClock struct{}

func (appClock) Now() time.Time {
	return timezone.Now()
}

func New() Clock {
	return appClock{}
}

// Fixed returns a Clock frozen at the given instant.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}
