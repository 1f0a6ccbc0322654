package service

import (
	"context"
	"testing"
	"time"

	"footcaster-market-api/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkWalletCreatesUser(t *testing.T) {
	st := newTestStore(t)
	clock := newTestClock()
	svc := newIdentityService(st, clock)
	ctx := context.Background()

	err := svc.LinkWallet(ctx, 100, "0xABCDEF0123456789")
	require.NoError(t, err)

	u, err := svc.GetUser(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(100), u.FID)
	assert.Equal(t, "0xABCDEF0123456789", u.Wallet)

	// the link row is keyed by the lowercased address
	err = st.RunInTx(ctx, func(tx *store.Tx) error {
		link, err := tx.GetWalletLink("0xabcdef0123456789")
		require.NoError(t, err)
		assert.Equal(t, int64(100), link.FID)
		return nil
	})
	require.NoError(t, err)
}

func TestLinkWalletIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	clock := newTestClock()
	svc := newIdentityService(st, clock)
	ctx := context.Background()

	require.NoError(t, svc.LinkWallet(ctx, 100, "0xAAA"))
	clock.Advance(time.Minute)
	require.NoError(t, svc.LinkWallet(ctx, 100, "0xaaa"))

	err := st.RunInTx(ctx, func(tx *store.Tx) error {
		link, err := tx.GetWalletLink("0xaaa")
		require.NoError(t, err)
		assert.Equal(t, int64(100), link.FID)
		return nil
	})
	require.NoError(t, err)
}

func TestLinkWalletAddressMovesBetweenIdentities(t *testing.T) {
	st := newTestStore(t)
	clock := newTestClock()
	svc := newIdentityService(st, clock)
	ctx := context.Background()

	require.NoError(t, svc.LinkWallet(ctx, 100, "0xAAA"))
	clock.Advance(time.Minute)
	require.NoError(t, svc.LinkWallet(ctx, 200, "0xaAa"))

	// last write wins: exactly one link row, pointing at 200
	err := st.RunInTx(ctx, func(tx *store.Tx) error {
		link, err := tx.GetWalletLink("0xaaa")
		require.NoError(t, err)
		assert.Equal(t, int64(200), link.FID)
		return nil
	})
	require.NoError(t, err)
}

func TestGetUserUnknownIdentity(t *testing.T) {
	st := newTestStore(t)
	clock := newTestClock()
	svc := newIdentityService(st, clock)

	_, err := svc.GetUser(context.Background(), 42)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
