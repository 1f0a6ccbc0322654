package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkTransactionUsedOnce(t *testing.T) {
	st := newTestStore(t)
	clock := newTestClock()
	svc := newReplayService(st, clock)
	ctx := context.Background()

	err := svc.MarkTransactionUsed(ctx, "0xdeadbeef", 100, "buy-now")
	require.NoError(t, err)

	// the same hash is burned for everyone, on every endpoint
	clock.Advance(time.Minute)
	err = svc.MarkTransactionUsed(ctx, "0xdeadbeef", 100, "buy-now")
	assert.ErrorIs(t, err, ErrTxAlreadyUsed)

	err = svc.MarkTransactionUsed(ctx, "0xdeadbeef", 200, "listing-close")
	assert.ErrorIs(t, err, ErrTxAlreadyUsed)

	err = svc.MarkTransactionUsed(ctx, "0xfeedface", 100, "buy-now")
	require.NoError(t, err)
}
