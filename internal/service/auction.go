package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"footcaster-market-api/internal/cache"
	"footcaster-market-api/internal/model"
	"footcaster-market-api/internal/store"
	"footcaster-market-api/pkg/uid"
	"footcaster-market-api/pkg/wei"
)

// AuctionService handles timed auctions: bidding, anti-snipe, buy-now
// and winner finalization.
type AuctionService struct {
	store       *store.Store
	cache       cache.Cache
	cacheTTL    time.Duration
	operatorFID int64

	antiSnipeWindow    time.Duration
	antiSnipeExtension time.Duration

	now func() time.Time
}

// AuctionConfig carries the economy rules the auction engine enforces.
type AuctionConfig struct {
	OperatorFID        int64
	AntiSnipeWindow    time.Duration
	AntiSnipeExtension time.Duration
}

// NewAuctionService creates a new auction service. The cache is optional.
func NewAuctionService(st *store.Store, c cache.Cache, cacheTTL time.Duration, cfg AuctionConfig) *AuctionService {
	if st == nil {
		return nil
	}
	return &AuctionService{
		store:              st,
		cache:              c,
		cacheTTL:           cacheTTL,
		operatorFID:        cfg.OperatorFID,
		antiSnipeWindow:    cfg.AntiSnipeWindow,
		antiSnipeExtension: cfg.AntiSnipeExtension,
		now:                time.Now,
	}
}

// CreateAuction creates an active auction for an owned, out-of-hold item.
// buyNowWei may be empty for no buy-now price.
func (s *AuctionService) CreateAuction(ctx context.Context, fid int64, itemID, reserveWei string, durationSeconds int64, buyNowWei string) (*model.Auction, error) {
	var auction *model.Auction

	err := s.store.RunInTx(ctx, func(tx *store.Tx) error {
		now := s.now()

		if _, err := disposableItem(tx, itemID, fid, s.operatorFID, now); err != nil {
			return err
		}

		auction = &model.Auction{
			ID:          uid.Deterministic("auc", now, fmt.Sprintf("%d:%s", fid, itemID)),
			ItemID:      itemID,
			SellerFID:   fid,
			ReserveWei:  reserveWei,
			EndsAtMs:    now.UnixMilli() + durationSeconds*1000,
			Status:      model.AuctionActive,
			BuyNowWei:   buyNowWei,
			CreatedAtMs: now.UnixMilli(),
		}
		if err := tx.InsertAuction(auction); err != nil {
			return err
		}

		_, err := appendEvent(tx, now, model.EventAuctionCreated, fid, mustJSON(auction), auction.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, cache.KeyActiveAuctions)
	return auction, nil
}

// PlaceBid validates and records one bid. The first bid must meet the
// reserve; later bids must meet ceil(topBid*102/100), computed with
// exact integer arithmetic. The bid row is always recorded on success.
// A qualifying bid inside the anti-snipe window extends the end time
// once per auction.
func (s *AuctionService) PlaceBid(ctx context.Context, fid int64, auctionID, amountWei string) (*model.Auction, error) {
	var updated *model.Auction

	err := s.store.RunInTx(ctx, func(tx *store.Tx) error {
		now := s.now()
		nowMs := now.UnixMilli()

		a, err := tx.GetAuction(auctionID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrAuctionNotFound
		}
		if err != nil {
			return err
		}
		if a.Status != model.AuctionActive {
			return ErrAuctionClosed
		}
		if nowMs > a.EndsAtMs {
			return ErrAuctionEnded
		}

		amount := wei.Parse(amountWei)
		current := wei.Parse(a.TopBidWei)
		if current.Sign() == 0 {
			if amount.Cmp(wei.Parse(a.ReserveWei)) < 0 {
				return ErrBelowReserve
			}
		} else {
			if amount.Cmp(wei.MinIncrement(current)) < 0 {
				return ErrBelowIncrement
			}
		}

		bid := &model.Bid{
			ID:         uid.Deterministic("bid", now, fmt.Sprintf("%d:%s:%s", fid, auctionID, amountWei)),
			AuctionID:  auctionID,
			FID:        fid,
			AmountWei:  amountWei,
			PlacedAtMs: nowMs,
		}
		if err := tx.InsertBid(bid); err != nil {
			return err
		}

		// One-shot anti-snipe: a late bid pushes the deadline out once,
		// no matter how many more bids land inside the window.
		if !a.AntiSnipeUsed && a.EndsAtMs-nowMs <= s.antiSnipeWindow.Milliseconds() {
			a.EndsAtMs += s.antiSnipeExtension.Milliseconds()
			a.AntiSnipeUsed = true
		}

		a.TopBidWei = amountWei
		a.TopBidderFID = &fid
		if err := tx.UpdateAuction(a); err != nil {
			return err
		}

		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, cache.KeyActiveAuctions)
	return updated, nil
}

// BuyNow finalizes an auction immediately at its configured buy-now
// price. The stated price must match exactly. Finalization and transfer
// commit as one unit: a transfer failure rolls back the finalization.
func (s *AuctionService) BuyNow(ctx context.Context, auctionID string, buyerFID int64, priceWei string) (*model.Auction, error) {
	var finalized *model.Auction

	err := s.store.RunInTx(ctx, func(tx *store.Tx) error {
		now := s.now()
		nowMs := now.UnixMilli()

		a, err := tx.GetAuction(auctionID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrAuctionNotFound
		}
		if err != nil {
			return err
		}
		if a.Status != model.AuctionActive {
			return ErrAuctionClosed
		}
		if a.BuyNowWei == "" || a.BuyNowWei != priceWei {
			return ErrInvalidBuyNow
		}

		evt, err := appendEvent(tx, now, model.EventAuctionBuyNow, buyerFID, mustJSON(a), a.ID)
		if err != nil {
			return err
		}

		a.Status = model.AuctionFinalized
		a.FinalizedAtMs = &nowMs
		a.TopBidWei = priceWei
		a.TopBidderFID = &buyerFID
		if err := tx.UpdateAuction(a); err != nil {
			return err
		}

		if err := s.transfer(tx, a.ItemID, a.SellerFID, buyerFID, evt.ID, nowMs); err != nil {
			return err
		}

		finalized = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, cache.KeyActiveAuctions)
	return finalized, nil
}

// FinalizeAuction closes an auction in favor of its recorded top bidder.
// The caller-stated winner must match. Same atomicity as BuyNow.
func (s *AuctionService) FinalizeAuction(ctx context.Context, auctionID string, winnerFID int64) (*model.Auction, error) {
	var finalized *model.Auction

	err := s.store.RunInTx(ctx, func(tx *store.Tx) error {
		now := s.now()
		nowMs := now.UnixMilli()

		a, err := tx.GetAuction(auctionID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrAuctionNotFound
		}
		if err != nil {
			return err
		}
		if a.Status != model.AuctionActive {
			return ErrAuctionClosed
		}
		if a.TopBidderFID == nil || *a.TopBidderFID != winnerFID {
			return ErrNotWinner
		}

		evt, err := appendEvent(tx, now, model.EventAuctionFinalized, winnerFID, mustJSON(a), a.ID)
		if err != nil {
			return err
		}

		a.Status = model.AuctionFinalized
		a.FinalizedAtMs = &nowMs
		if err := tx.UpdateAuction(a); err != nil {
			return err
		}

		if err := s.transfer(tx, a.ItemID, a.SellerFID, winnerFID, evt.ID, nowMs); err != nil {
			return err
		}

		finalized = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, cache.KeyActiveAuctions)
	return finalized, nil
}

// ListActiveAuctions returns the active auctions, served from cache when
// available.
func (s *AuctionService) ListActiveAuctions(ctx context.Context) ([]model.Auction, error) {
	if s.cache == nil {
		return s.store.ListActiveAuctions(ctx)
	}

	data, err := s.cache.GetOrSet(ctx, cache.KeyActiveAuctions, s.cacheTTL, func() ([]byte, error) {
		auctions, err := s.store.ListActiveAuctions(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(auctions)
	})
	if err != nil {
		return nil, err
	}

	var auctions []model.Auction
	if err := json.Unmarshal(data, &auctions); err != nil {
		return nil, fmt.Errorf("failed to decode cached auctions: %w", err)
	}
	return auctions, nil
}

// GetAuction returns one auction with its full bid history.
func (s *AuctionService) GetAuction(ctx context.Context, auctionID string) (*model.Auction, []model.Bid, error) {
	a, err := s.store.GetAuctionByID(ctx, auctionID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil, ErrAuctionNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	bids, err := s.store.ListBids(ctx, auctionID)
	if err != nil {
		return nil, nil, err
	}
	return a, bids, nil
}

// transfer routes through the store's single ownership primitive and
// maps its errors to domain errors.
func (s *AuctionService) transfer(tx *store.Tx, itemID string, fromFID, toFID int64, eventID string, nowMs int64) error {
	err := tx.TransferItem(itemID, fromFID, toFID, eventID, nowMs)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrItemNotFound
	case errors.Is(err, store.ErrOwnerMismatch):
		return ErrNotOwner
	}
	return err
}

func (s *AuctionService) invalidate(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		log.Printf("[AuctionService] Cache invalidation failed for %s: %v", key, err)
	}
}
