//go:build unit

package clock_test

import (
	"testing"
	"time"

	"shareit/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
)

func TestRealClockDropsSubSecondPrecision(t *testing.T) {
	now := clock.NewRealClock().Now()
	assert.Zero(t, now.Nanosecond())
	assert.WithinDuration(t, time.Now(), now, 2*time.Second)
}

func TestMockClock(t *testing.T) {
	start := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	c := clock.NewMockClock(start)

	c.Advance(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), c.Now())

	c.Set(start)
	assert.Equal(t, start, c.Now())
}
