package service

import (
	"context"
	"time"

	"footcaster-market-api/internal/model"
	"footcaster-market-api/internal/store"
)

// ReplayService is the write-once replay guard for external transaction
// references. Callers must consume the hash before honoring any
// externally-funded action tied to it.
type ReplayService struct {
	store *store.Store
	now   func() time.Time
}

// NewReplayService creates a new replay service.
func NewReplayService(st *store.Store) *ReplayService {
	if st == nil {
		return nil
	}
	return &ReplayService{store: st, now: time.Now}
}

// MarkTransactionUsed records first use of an external transaction hash.
// Fails with ErrTxAlreadyUsed if any endpoint consumed it before. The
// check and insert share one transaction, so two racing calls cannot
// both succeed.
func (s *ReplayService) MarkTransactionUsed(ctx context.Context, txHash string, fid int64, endpoint string) error {
	return s.store.RunInTx(ctx, func(tx *store.Tx) error {
		used, err := tx.HasTransactionUsed(txHash)
		if err != nil {
			return err
		}
		if used {
			return ErrTxAlreadyUsed
		}

		return tx.InsertTransactionUsed(&model.TransactionUsed{
			TxHash:    txHash,
			UsedAtMs:  s.now().UnixMilli(),
			UsedByFID: fid,
			Endpoint:  endpoint,
		})
	})
}
