// Package rate gates outbound API calls so a run stays inside the Gmail
// per-user quota.
package rate

import (
	"context"
	"fmt"
	"time"
)

// Limiter blocks until the next API call may be issued.
type Limiter interface {
	Wait(ctx context.Context) error
}

// Wait applies l when it is non-nil; a nil limiter only honors context
// cancellation.
func Wait(ctx context.Context, l Limiter) error {
	if l == nil {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("rate wait canceled: %w", err)
		}
		return nil
	}
	return l.Wait(ctx)
}

// TokenBucket releases a fixed number of tokens per second.
type TokenBucket struct {
	ticker   *time.Ticker
	tokens   chan struct{}
	stopDone chan struct{}
}

// NewTokenBucket returns a limiter releasing rps tokens per second. The
// first call proceeds immediately.
func NewTokenBucket(rps int) *TokenBucket {
	if rps <= 0 {
		rps = 1
	}
	tb := &TokenBucket{
		ticker:   time.NewTicker(time.Second / time.Duration(rps)),
		tokens:   make(chan struct{}, rps),
		stopDone: make(chan struct{}),
	}
	tb.tokens <- struct{}{}
	go tb.refill()
	return tb
}

func (t *TokenBucket) refill() {
	defer close(t.stopDone)
	for range t.ticker.C {
		select {
		case t.tokens <- struct{}{}:
		default:
		}
	}
}

// Wait blocks until a token is available or the context is canceled.
func (t *TokenBucket) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("rate wait canceled: %w", ctx.Err())
	case <-t.tokens:
		return nil
	}
}

// Stop releases the ticker goroutine.
func (t *TokenBucket) Stop() {
	t.ticker.Stop()
	<-t.stopDone
}

var _ Limiter = (*TokenBucket)(nil)
