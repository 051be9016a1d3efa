package timesource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealtimeClock_Now(t *testing.T) {
	before := time.Now()
	got := NewRealtimeClock().Now()
	assert.False(t, got.Before(before), "expected Now() not before the time it was called")
}

func TestFixedClock_Now(t *testing.T) {
	at := time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)
	c := FixedClock{T: at}
	assert.Equal(t, at, c.Now())
	assert.Equal(t, c.Now(), c.Now())
}
