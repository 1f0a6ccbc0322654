package store

import (
	"context"
	"testing"

	"footcaster-market-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestTransferItemOwnerMismatchLeavesItemUnchanged(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	orig := &model.InventoryItem{
		ItemID:        "item-1",
		OwnerFID:      100,
		ItemType:      "player",
		AcquiredAtMs:  1000,
		HoldUntilMs:   2000,
		SourceEventID: "evt-0",
	}
	err := st.RunInTx(ctx, func(tx *Tx) error {
		return tx.InsertItem(orig)
	})
	require.NoError(t, err)

	err = st.RunInTx(ctx, func(tx *Tx) error {
		return tx.TransferItem("item-1", 999, 200, "evt-1", 5000)
	})
	require.ErrorIs(t, err, ErrOwnerMismatch)

	err = st.RunInTx(ctx, func(tx *Tx) error {
		it, err := tx.GetItem("item-1")
		require.NoError(t, err)
		assert.Equal(t, orig, it)
		return nil
	})
	require.NoError(t, err)

	err = st.RunInTx(ctx, func(tx *Tx) error {
		return tx.TransferItem("missing", 100, 200, "evt-1", 5000)
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransferItemUpdatesProvenance(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	err := st.RunInTx(ctx, func(tx *Tx) error {
		if err := tx.InsertItem(&model.InventoryItem{
			ItemID: "item-1", OwnerFID: 100, ItemType: "player",
			AcquiredAtMs: 1000, HoldUntilMs: 2000, SourceEventID: "evt-0",
		}); err != nil {
			return err
		}
		return tx.TransferItem("item-1", 100, 200, "evt-1", 5000)
	})
	require.NoError(t, err)

	err = st.RunInTx(ctx, func(tx *Tx) error {
		it, err := tx.GetItem("item-1")
		require.NoError(t, err)
		assert.Equal(t, int64(200), it.OwnerFID)
		assert.Equal(t, int64(5000), it.AcquiredAtMs)
		assert.Equal(t, "evt-1", it.SourceEventID)
		// the hold window is a property of the original acquisition
		assert.Equal(t, int64(2000), it.HoldUntilMs)
		return nil
	})
	require.NoError(t, err)
}

func TestRunInTxRollsBackOnError(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	err := st.RunInTx(ctx, func(tx *Tx) error {
		if err := tx.InsertItem(&model.InventoryItem{
			ItemID: "item-1", OwnerFID: 100, ItemType: "player",
		}); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	err = st.RunInTx(ctx, func(tx *Tx) error {
		_, err := tx.GetItem("item-1")
		assert.ErrorIs(t, err, ErrNotFound)
		return nil
	})
	require.NoError(t, err)
}

func TestPairKey(t *testing.T) {
	assert.Equal(t, "100:200", PairKey(100, 200))
	assert.Equal(t, "100:200", PairKey(200, 100))
	assert.Equal(t, "7:7", PairKey(7, 7))
}

func TestDeleteExpiredIdempotency(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	err := st.RunInTx(ctx, func(tx *Tx) error {
		if err := tx.InsertIdempotency(&model.IdempotencyRecord{
			ID: "old", Endpoint: "buy-now", ResponseJSON: "{}", FirstSeenAtMs: 1000, TTLUntilMs: 2000,
		}); err != nil {
			return err
		}
		return tx.InsertIdempotency(&model.IdempotencyRecord{
			ID: "fresh", Endpoint: "buy-now", ResponseJSON: "{}", FirstSeenAtMs: 1000, TTLUntilMs: 9000,
		})
	})
	require.NoError(t, err)

	deleted, err := st.DeleteExpiredIdempotency(ctx, 5000)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	err = st.RunInTx(ctx, func(tx *Tx) error {
		_, err := tx.GetIdempotency("old")
		assert.ErrorIs(t, err, ErrNotFound)
		rec, err := tx.GetIdempotency("fresh")
		require.NoError(t, err)
		assert.Equal(t, "fresh", rec.ID)
		return nil
	})
	require.NoError(t, err)
}

func TestListEventsNewestFirstWithLimit(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	err := st.RunInTx(ctx, func(tx *Tx) error {
		for i, id := range []string{"e-1", "e-2", "e-3"} {
			if err := tx.InsertEvent(&model.Event{
				ID: id, TsMs: int64(1000 + i), Kind: "wallet_linked", ActorFID: 100, PayloadJSON: "{}",
			}); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	events, err := st.ListEvents(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "e-3", events[0].ID)
	assert.Equal(t, "e-2", events[1].ID)

	// out-of-range limits clamp instead of failing
	events, err = st.ListEvents(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestStatsCountsRows(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	err := st.RunInTx(ctx, func(tx *Tx) error {
		if err := tx.InsertUser(&model.User{FID: 100, CreatedAtMs: 1000}); err != nil {
			return err
		}
		return tx.InsertItem(&model.InventoryItem{
			ItemID: "item-1", OwnerFID: 100, ItemType: "player",
		})
	})
	require.NoError(t, err)

	stats, err := st.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats["users"])
	assert.Equal(t, int64(1), stats["inventory_items"])
	assert.Equal(t, int64(0), stats["listings"])
}
