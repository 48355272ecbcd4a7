package core

// render_limiter.go bounds how many maps are rendered at once by the HTTP
// server. Each render loads the whole GDP file into memory, so a burst of
// requests is queued on a semaphore; a request that cannot get a slot
// within maxWait fails with ErrTooManyRenders.

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ErrTooManyRenders is returned when no render slot frees up in time.
var ErrTooManyRenders = errors.New("too many concurrent renders, please try again later")

// DefaultMaxConcurrentRenders is used when the configured limit is not positive.
const DefaultMaxConcurrentRenders = 4

// DefaultRenderWait is used when the configured wait is not positive.
const DefaultRenderWait = 30 * time.Second

// RenderLimiter is a counting semaphore for map renders.
type RenderLimiter struct {
	slots   chan struct{}
	maxWait time.Duration
	active  atomic.Int32
}

// NewRenderLimiter allows at most maxConcurrent renders, each waiting up to
// maxWait for a slot.
func NewRenderLimiter(maxConcurrent int, maxWait time.Duration) *RenderLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentRenders
	}
	if maxWait <= 0 {
		maxWait = DefaultRenderWait
	}
	return &RenderLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire takes a slot. Every successful Acquire must be paired with Release.
func (l *RenderLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrTooManyRenders
	}
}

// Release frees a slot taken by Acquire.
func (l *RenderLimiter) Release() {
	l.active.Add(-1)
	<-l.slots
}

// Active returns the number of renders holding a slot.
func (l *RenderLimiter) Active() int {
	return int(l.active.Load())
}

// WaitForDrain blocks until no render holds a slot or ctx is done.
func (l *RenderLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for l.Active() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// RenderLimiterStatus is a snapshot of the limiter for the health endpoint.
type RenderLimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"maxConcurrent"`
}

// Status returns the current limiter state.
func (l *RenderLimiter) Status() RenderLimiterStatus {
	return RenderLimiterStatus{
		Active:        l.Active(),
		Available:     cap(l.slots) - len(l.slots),
		MaxConcurrent: cap(l.slots),
	}
}
