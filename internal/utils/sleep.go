package utils

import (
	"context"
	"sync"
	"time"
)

var (
	sleepFunc func(ctx context.Context, d time.Duration) error
	mu        sync.Mutex // guards sleepFunc
)

func init() {
	ResetSleepFunc()
}

// Sleep waits for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	mu.Lock()
	f := sleepFunc
	mu.Unlock()
	return f(ctx, d)
}

// SetSleepFunc replaces the wait with f, which ignores cancellation. Tests
// use it to record backoff delays without waiting.
func SetSleepFunc(f func(time.Duration)) {
	mu.Lock()
	sleepFunc = func(_ context.Context, d time.Duration) error {
		f(d)
		return nil
	}
	mu.Unlock()
}

func ResetSleepFunc() {
	mu.Lock()
	sleepFunc = contextSleep
	mu.Unlock()
}

func contextSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
