package timesource

import "time"

// Clock supplies the current time on demand.
type Clock interface {
	Now() time.Time
}

type RealtimeClock struct{}

func NewRealtimeClock() RealtimeClock {
	return RealtimeClock{}
}

func (RealtimeClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant. It backs one-shot renders of a
// chosen time.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }
