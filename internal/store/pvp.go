package store

import (
	"context"
	"database/sql"
	"fmt"

	"footcaster-market-api/internal/model"
)

// PairKey builds an order-independent signature for a pair of identities.
// It backs the indexed duplicate-pending lookup.
func PairKey(a, b int64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

// GetMatch finds a match by id. Returns ErrNotFound if absent.
func (t *Tx) GetMatch(id string) (*model.PvpMatch, error) {
	var m model.PvpMatch
	var pairKey string
	var acceptedAt sql.NullInt64
	var result sql.NullString

	err := t.tx.QueryRow(
		`SELECT id, challenger_fid, challenged_fid, pair_key, status, created_at_ms, accepted_at_ms, result_json
		 FROM pvp_matches WHERE id = ?`, id,
	).Scan(&m.ID, &m.ChallengerFID, &m.ChallengedFID, &pairKey, &m.Status, &m.CreatedAtMs, &acceptedAt, &result)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	if acceptedAt.Valid {
		m.AcceptedAtMs = &acceptedAt.Int64
	}
	m.ResultJSON = result.String
	return &m, nil
}

// HasPendingMatch reports whether a pending match exists between the
// unordered pair, in either challenge direction.
func (t *Tx) HasPendingMatch(a, b int64) (bool, error) {
	var one int
	err := t.tx.QueryRow(
		`SELECT 1 FROM pvp_matches WHERE pair_key = ? AND status = ? LIMIT 1`,
		PairKey(a, b), model.MatchPending,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check pending match: %w", err)
	}
	return true, nil
}

// InsertMatch creates a match record.
func (t *Tx) InsertMatch(m *model.PvpMatch) error {
	_, err := t.tx.Exec(
		`INSERT INTO pvp_matches (id, challenger_fid, challenged_fid, pair_key, status, created_at_ms, accepted_at_ms, result_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ChallengerFID, m.ChallengedFID, PairKey(m.ChallengerFID, m.ChallengedFID),
		m.Status, m.CreatedAtMs, nullInt64(m.AcceptedAtMs), nullString(m.ResultJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}
	return nil
}

// UpdateMatch writes back the mutable match fields.
func (t *Tx) UpdateMatch(m *model.PvpMatch) error {
	_, err := t.tx.Exec(
		`UPDATE pvp_matches SET status = ?, accepted_at_ms = ?, result_json = ? WHERE id = ?`,
		m.Status, nullInt64(m.AcceptedAtMs), nullString(m.ResultJSON), m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}
	return nil
}

// GetMatchByID is the read-path match lookup.
func (s *Store) GetMatchByID(ctx context.Context, id string) (*model.PvpMatch, error) {
	var m model.PvpMatch
	var pairKey string
	var acceptedAt sql.NullInt64
	var result sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, challenger_fid, challenged_fid, pair_key, status, created_at_ms, accepted_at_ms, result_json
		 FROM pvp_matches WHERE id = ?`, id,
	).Scan(&m.ID, &m.ChallengerFID, &m.ChallengedFID, &pairKey, &m.Status, &m.CreatedAtMs, &acceptedAt, &result)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	if acceptedAt.Valid {
		m.AcceptedAtMs = &acceptedAt.Int64
	}
	m.ResultJSON = result.String
	return &m, nil
}
