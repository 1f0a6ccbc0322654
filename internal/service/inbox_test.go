package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkReadSkipsForeignAndUnknownIds(t *testing.T) {
	st := newTestStore(t)
	clock := newTestClock()
	inbox := newInboxService(t, st, clock)
	pvp := newPvpService(st, clock)
	ctx := context.Background()

	// two challenges produce one notification each for 200 and 300
	m1, err := pvp.CreateChallenge(ctx, 100, 200)
	require.NoError(t, err)
	clock.Advance(time.Second)
	m2, err := pvp.CreateChallenge(ctx, 100, 300)
	require.NoError(t, err)

	ownMsg := "pvp-challenge-" + m1.ID
	foreignMsg := "pvp-challenge-" + m2.ID

	marked, err := inbox.MarkRead(ctx, 200, []string{ownMsg, foreignMsg, "no-such-msg"})
	require.NoError(t, err)
	assert.Equal(t, 1, marked)

	msgs, err := inbox.List(ctx, 200)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.NotNil(t, msgs[0].ReadAtMs)
	assert.Equal(t, clock.Now().UnixMilli(), *msgs[0].ReadAtMs)

	// the other identity's message stays unread
	msgs, err = inbox.List(ctx, 300)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Nil(t, msgs[0].ReadAtMs)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	clock := newTestClock()
	inbox := newInboxService(t, st, clock)
	pvp := newPvpService(st, clock)
	ctx := context.Background()

	m, err := pvp.CreateChallenge(ctx, 100, 200)
	require.NoError(t, err)
	msgID := "pvp-challenge-" + m.ID

	clock.Advance(time.Minute)
	marked, err := inbox.MarkRead(ctx, 200, []string{msgID})
	require.NoError(t, err)
	assert.Equal(t, 1, marked)
	firstRead := clock.Now().UnixMilli()

	clock.Advance(time.Minute)
	marked, err = inbox.MarkRead(ctx, 200, []string{msgID})
	require.NoError(t, err)
	assert.Equal(t, 1, marked)

	// re-marking does not clear or regress the read state
	msgs, err := inbox.List(ctx, 200)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.NotNil(t, msgs[0].ReadAtMs)
	assert.GreaterOrEqual(t, *msgs[0].ReadAtMs, firstRead)
}

func TestUnreadCount(t *testing.T) {
	st := newTestStore(t)
	clock := newTestClock()
	inbox := newInboxService(t, st, clock)
	pvp := newPvpService(st, clock)
	ctx := context.Background()

	// an identity with no notifications counts zero
	count, err := inbox.UnreadCount(ctx, 999)
	require.NoError(t, err)
	assert.Zero(t, count)

	m1, err := pvp.CreateChallenge(ctx, 100, 200)
	require.NoError(t, err)
	clock.Advance(time.Second)
	_, err = pvp.CreateChallenge(ctx, 300, 200)
	require.NoError(t, err)

	count, err = inbox.UnreadCount(ctx, 200)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	clock.Advance(time.Second)
	_, err = inbox.MarkRead(ctx, 200, []string{"pvp-challenge-" + m1.ID})
	require.NoError(t, err)

	// MarkRead invalidated the cached count
	count, err = inbox.UnreadCount(ctx, 200)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
