package store

import (
	"database/sql"
	"fmt"

	"footcaster-market-api/internal/model"
)

// GetUser finds a user by fid. Returns ErrNotFound if absent.
func (t *Tx) GetUser(fid int64) (*model.User, error) {
	var u model.User
	var wallet sql.NullString

	err := t.tx.QueryRow(
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

// InsertUser creates a user record.
func (t *Tx) InsertUser(u *model.User) error {
	_, err := t.tx.Exec(
		`INSERT INTO users (fid, wallet, created_at_ms) VALUES (?, ?, ?)`,
		u.FID, nullString(u.Wallet), u.CreatedAtMs,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// UpdateUserWallet sets the linked address on an existing user.
func (t *Tx) UpdateUserWallet(fid int64, wallet string) error {
	_, err := t.tx.Exec(`UPDATE users SET wallet = ? WHERE fid = ?`, wallet, fid)
	if err != nil {
		return fmt.Errorf("failed to update user wallet: %w", err)
	}
	return nil
}

// DeleteWalletLink removes the link row for an address, if any.
func (t *Tx) DeleteWalletLink(address string) error {
	_, err := t.tx.Exec(`DELETE FROM wallet_links WHERE address = ?`, address)
	if err != nil {
		return fmt.Errorf("failed to delete wallet link: %w", err)
	}
	return nil
}

// InsertWalletLink creates a link row. The address is the primary key,
// so a concurrent insert of the same address surfaces as a conflict.
func (t *Tx) InsertWalletLink(l *model.WalletLink) error {
	_, err := t.tx.Exec(
		`INSERT INTO wallet_links (address, fid, linked_at_ms) VALUES (?, ?, ?)`,
		l.Address, l.FID, l.LinkedAtMs,
	)
	if err != nil {
		return fmt.Errorf("failed to insert wallet link: %w", err)
	}
	return nil
}

// GetWalletLink finds the identity linked to an address.
func (t *Tx) GetWalletLink(address string) (*model.WalletLink, error) {
	var l model.WalletLink

	err := t.tx.QueryRow(
		`SELECT address, fid, linked_at_ms FROM wallet_links WHERE address = ?`, address,
	).Scan(&l.Address, &l.FID, &l.LinkedAtMs)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get wallet link: %w", err)
	}

	return &l, nil
}

// HasStarterClaim reports whether the identity already consumed its grant.
func (t *Tx) HasStarterClaim(fid int64) (bool, error) {
	var one int
	err := t.tx.QueryRow(`SELECT 1 FROM starter_claims WHERE fid = ?`, fid).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check starter claim: %w", err)
	}
	return true, nil
}

// InsertStarterClaim records the one-time starter grant. Write-once: the
// fid primary key rejects a second insert.
func (t *Tx) InsertStarterClaim(c *model.StarterClaim) error {
	_, err := t.tx.Exec(
		`INSERT INTO starter_claims (fid, claimed_at_ms) VALUES (?, ?)`,
		c.FID, c.ClaimedAtMs,
	)
	if err != nil {
		return fmt.Errorf("failed to insert starter claim: %w", err)
	}
	return nil
}

// nullString maps "" to NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullInt64 maps nil to NULL.
func nullInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}
