package store

import (
	"context"
	"database/sql"
	"fmt"

	"footcaster-market-api/internal/model"
)

// HasTransactionUsed reports whether the external transaction hash was
// already consumed by any endpoint.
func (t *Tx) HasTransactionUsed(txHash string) (bool, error) {
	var one int
	err := t.tx.QueryRow(`SELECT 1 FROM transactions_used WHERE tx_hash = ?`, txHash).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check transaction: %w", err)
	}
	return true, nil
}

// InsertTransactionUsed records first use of an external transaction
// hash. Write-once: the hash primary key rejects a second insert.
func (t *Tx) InsertTransactionUsed(r *model.TransactionUsed) error {
	_, err := t.tx.Exec(
		`INSERT INTO transactions_used (tx_hash, used_at_ms, used_by_fid, endpoint) VALUES (?, ?, ?, ?)`,
		r.TxHash, r.UsedAtMs, r.UsedByFID, r.Endpoint,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction record: %w", err)
	}
	return nil
}

// InsertIdempotency stores a cached-response slot.
func (t *Tx) InsertIdempotency(r *model.IdempotencyRecord) error {
	_, err := t.tx.Exec(
		`INSERT INTO idempotency (id, endpoint, first_seen_at_ms, response_json, ttl_until_ms)
		 VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.Endpoint, r.FirstSeenAtMs, r.ResponseJSON, r.TTLUntilMs,
	)
	if err != nil {
		return fmt.Errorf("failed to insert idempotency record: %w", err)
	}
	return nil
}

// GetIdempotency finds a cached-response slot by id.
func (t *Tx) GetIdempotency(id string) (*model.IdempotencyRecord, error) {
	var r model.IdempotencyRecord

	err := t.tx.QueryRow(
		`SELECT id, endpoint, first_seen_at_ms, response_json, ttl_until_ms FROM idempotency WHERE id = ?`, id,
	).Scan(&r.ID, &r.Endpoint, &r.FirstSeenAtMs, &r.ResponseJSON, &r.TTLUntilMs)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get idempotency record: %w", err)
	}

	return &r, nil
}

// DeleteExpiredIdempotency removes cached-response slots whose TTL has
// passed. Used by the background sweeper.
func (s *Store) DeleteExpiredIdempotency(ctx context.Context, nowMs int64) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM idempotency WHERE ttl_until_ms < ?`, nowMs)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired idempotency records: %w", err)
	}
	return result.RowsAffected()
}
