package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonotonicClockAbsorbsRegression(t *testing.T) {
	base := time.Unix(1_700_000_000, 0)
	readings := []time.Time{base, base.Add(-time.Second), base.Add(2 * time.Second)}
	i := 0
	clock := NewMonotonicClock(func() time.Time {
		r := readings[i]
		i++
		return r
	})

	assert.Equal(t, base, clock.Now())
	assert.Equal(t, base, clock.Now())
	assert.Equal(t, base.Add(2*time.Second), clock.Now())
}

func TestMonotonicClockNotBefore(t *testing.T) {
	base := time.Unix(1_700_000_000, 0)
	clock := NewMonotonicClock(func() time.Time { return base })

	clock.NotBefore(base.Add(time.Minute))
	assert.Equal(t, base.Add(time.Minute), clock.Now())

	clock.NotBefore(base)
	assert.Equal(t, base.Add(time.Minute), clock.Now())
}

func TestSleepStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Sleep(ctx, time.Hour), context.Canceled)
}

func TestSetSleepFunc(t *testing.T) {
	var slept []time.Duration
	SetSleepFunc(func(d time.Duration) { slept = append(slept, d) })
	t.Cleanup(ResetSleepFunc)

	assert.NoError(t, Sleep(context.Background(), time.Hour))
	assert.Equal(t, []time.Duration{time.Hour}, slept)
}
