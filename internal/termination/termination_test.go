package termination_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wbrown/janus-lift/internal/termination"
)

func TestNoLimitsNeverTrips(t *testing.T) {
	c := termination.New(0, 0, nil)
	outcome, tripped := c.Check()
	assert.False(t, tripped)
	assert.Equal(t, termination.NotTripped, outcome)
}

func TestTimeLimitTrips(t *testing.T) {
	c := termination.New(1*time.Nanosecond, 0, nil)
	time.Sleep(time.Millisecond)
	outcome, tripped := c.Check()
	assert.True(t, tripped)
	assert.Equal(t, termination.TimeLimitExceeded, outcome)
}

func TestMemoryLimitTrips(t *testing.T) {
	c := termination.New(0, 1, nil) // 1MB: any running test process exceeds this
	outcome, tripped := c.Check()
	assert.True(t, tripped)
	assert.Equal(t, termination.MemoryLimitExceeded, outcome)
}

func TestOnLogCalledPeriodically(t *testing.T) {
	calls := 0
	c := termination.New(0, 0, func(time.Duration, uint64) { calls++ })
	for i := 0; i < 2500; i++ {
		c.Check()
	}
	assert.Equal(t, 2, calls) // logEvery is 1000: two firings in 2500 checks
}
