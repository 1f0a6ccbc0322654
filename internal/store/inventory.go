package store

import (
	"context"
	"database/sql"
	"fmt"

	"footcaster-market-api/internal/model"
)

// GetItem finds an inventory item by id. Returns ErrNotFound if absent.
func (t *Tx) GetItem(itemID string) (*model.InventoryItem, error) {
	var it model.InventoryItem

	err := t.tx.QueryRow(
		`SELECT item_id, owner_fid, item_type, acquired_at_ms, hold_until_ms, source_event_id
		 FROM inventory_items WHERE item_id = ?`, itemID,
	).Scan(&it.ItemID, &it.OwnerFID, &it.ItemType, &it.AcquiredAtMs, &it.HoldUntilMs, &it.SourceEventID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return &it, nil
}

// InsertItem creates an inventory item.
func (t *Tx) InsertItem(it *model.InventoryItem) error {
	_, err := t.tx.Exec(
		`INSERT INTO inventory_items (item_id, owner_fid, item_type, acquired_at_ms, hold_until_ms, source_event_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		it.ItemID, it.OwnerFID, it.ItemType, it.AcquiredAtMs, it.HoldUntilMs, it.SourceEventID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

// DeleteItem removes an inventory item by id.
func (t *Tx) DeleteItem(itemID string) error {
	_, err := t.tx.Exec(`DELETE FROM inventory_items WHERE item_id = ?`, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// TransferItem is the single primitive that changes item ownership.
// It verifies the caller-asserted previous owner before mutating; on a
// mismatch the item is left unchanged and ErrOwnerMismatch is returned.
// Every disposal path (listing close, buy-now, finalize) routes through
// here inside its own transaction.
func (t *Tx) TransferItem(itemID string, fromFID, toFID int64, eventID string, nowMs int64) error {
	item, err := t.GetItem(itemID)
	if err != nil {
		return err
	}
	if item.OwnerFID != fromFID {
		return ErrOwnerMismatch
	}

	_, err = t.tx.Exec(
		`UPDATE inventory_items SET owner_fid = ?, acquired_at_ms = ?, source_event_id = ? WHERE item_id = ?`,
		toFID, nowMs, eventID, itemID,
	)
	if err != nil {
		return fmt.Errorf("failed to transfer item: %w", err)
	}
	return nil
}

// ListItemsByOwner returns every item currently owned by fid.
func (s *Store) ListItemsByOwner(ctx context.Context, fid int64) ([]model.InventoryItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT item_id, owner_fid, item_type, acquired_at_ms, hold_until_ms, source_event_id
		 FROM inventory_items WHERE owner_fid = ? ORDER BY acquired_at_ms DESC`, fid)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []model.InventoryItem
	for rows.Next() {
		var it model.InventoryItem
		if err := rows.Scan(&it.ItemID, &it.OwnerFID, &it.ItemType, &it.AcquiredAtMs, &it.HoldUntilMs, &it.SourceEventID); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetUserByFID is the read-path lookup used by the user endpoint.
func (s *Store) GetUserByFID(ctx context.Context, fid int64) (*model.User, error) {
	var u model.User
	var wallet sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT fid, wallet, created_at_ms FROM users WHERE fid = ?`, fid,
	).Scan(&u.FID, &wallet, &u.CreatedAtMs)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	u.Wallet = wallet.String
	return &u, nil
}
