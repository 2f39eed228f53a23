package rate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucketFirstCallImmediate(t *testing.T) {
	tb := NewTokenBucket(1)
	defer tb.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, tb.Wait(ctx))
}

func TestTokenBucketWaitCanceled(t *testing.T) {
	tb := NewTokenBucket(1)
	defer tb.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, tb.Wait(ctx)) // drain the initial token

	canceled, cancelNow := context.WithCancel(context.Background())
	cancelNow()
	err := tb.Wait(canceled)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWaitNilLimiter(t *testing.T) {
	require.NoError(t, Wait(context.Background(), nil))

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, Wait(canceled, nil))
}

func TestTokenBucketRefills(t *testing.T) {
	tb := NewTokenBucket(100)
	defer tb.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for i := 0; i < 5; i++ {
		require.NoError(t, tb.Wait(ctx))
	}
}
