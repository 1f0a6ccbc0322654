package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"footcaster-market-api/internal/model"
	"footcaster-market-api/internal/store"
)

// IdentityService handles identity and wallet linking.
type IdentityService struct {
	store *store.Store
	now   func() time.Time
}

// NewIdentityService creates a new identity service.
// Returns nil if st is nil (required dependency).
func NewIdentityService(st *store.Store) *IdentityService {
	if st == nil {
		return nil
	}
	return &IdentityService{store: st, now: time.Now}
}

// LinkWallet links an address to an identity. The address is normalized
// to lowercase and is globally unique: any prior link row for it is
// deleted first, so relinking is idempotent and an address can move
// between identities (last write wins).
func (s *IdentityService) LinkWallet(ctx context.Context, fid int64, address string) error {
	normalized := strings.ToLower(address)

	return s.store.RunInTx(ctx, func(tx *store.Tx) error {
		now := s.now()
		nowMs := now.UnixMilli()

		_, err := tx.GetUser(fid)
		switch {
		case err == nil:
			if err := tx.UpdateUserWallet(fid, address); err != nil {
				return err
			}
		case errors.Is(err, store.ErrNotFound):
			if err := tx.InsertUser(&model.User{FID: fid, Wallet: address, CreatedAtMs: nowMs}); err != nil {
				return err
			}
		default:
			return err
		}

		if err := tx.DeleteWalletLink(normalized); err != nil {
			return err
		}
		if err := tx.InsertWalletLink(&model.WalletLink{Address: normalized, FID: fid, LinkedAtMs: nowMs}); err != nil {
			return err
		}

		_, err = appendEvent(tx, now, model.EventWalletLinked, fid, `{"address":"`+normalized+`"}`, "")
		return err
	})
}

// GetUser returns an identity record. Returns ErrNotFound from the store
// if the identity has never been seen.
func (s *IdentityService) GetUser(ctx context.Context, fid int64) (*model.User, error) {
	return s.store.GetUserByFID(ctx, fid)
}
