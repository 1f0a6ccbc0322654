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
)

// MarketService handles fixed-price listings and inventory reads.
type MarketService struct {
	store       *store.Store
	cache       cache.Cache
	cacheTTL    time.Duration
	operatorFID int64
	now         func() time.Time
}

// NewMarketService creates a new market service. The cache is optional.
func NewMarketService(st *store.Store, c cache.Cache, cacheTTL time.Duration, operatorFID int64) *MarketService {
	if st == nil {
		return nil
	}
	return &MarketService{
		store:       st,
		cache:       c,
		cacheTTL:    cacheTTL,
		operatorFID: operatorFID,
		now:         time.Now,
	}
}

// disposableItem loads an item and verifies the caller may dispose of it:
// the caller must own it and the hold period must have lapsed, unless the
// caller is the designated operator identity.
func disposableItem(tx *store.Tx, itemID string, fid, operatorFID int64, now time.Time) (*model.InventoryItem, error) {
	item, err := tx.GetItem(itemID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	if item.OwnerFID != fid {
		return nil, ErrNotOwner
	}
	if now.UnixMilli() < item.HoldUntilMs && fid != operatorFID {
		return nil, ErrInHold
	}
	return item, nil
}

// CreateListing creates an active fixed-price listing for an owned,
// out-of-hold item.
func (s *MarketService) CreateListing(ctx context.Context, fid int64, itemID, priceWei string) (*model.Listing, error) {
	var listing *model.Listing

	err := s.store.RunInTx(ctx, func(tx *store.Tx) error {
		now := s.now()

		if _, err := disposableItem(tx, itemID, fid, s.operatorFID, now); err != nil {
			return err
		}

		listing = &model.Listing{
			ID:          uid.Deterministic("lst", now, fmt.Sprintf("%d:%s", fid, itemID)),
			ItemID:      itemID,
			SellerFID:   fid,
			PriceWei:    priceWei,
			Status:      model.ListingActive,
			CreatedAtMs: now.UnixMilli(),
		}
		if err := tx.InsertListing(listing); err != nil {
			return err
		}

		_, err := appendEvent(tx, now, model.EventListingCreated, fid, mustJSON(listing), listing.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, cache.KeyActiveListings)
	return listing, nil
}

// CloseListingAndTransfer closes a listing and transfers the item from
// seller to buyer. The status flip, the audit event, the transfer and
// both notifications commit as one unit: a transfer failure rolls back
// the close, so a closed listing with no transfer is never observable.
func (s *MarketService) CloseListingAndTransfer(ctx context.Context, listingID string, buyerFID int64) (*model.Listing, error) {
	var closed *model.Listing

	err := s.store.RunInTx(ctx, func(tx *store.Tx) error {
		now := s.now()
		nowMs := now.UnixMilli()

		l, err := tx.GetListing(listingID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrListingNotFound
		}
		if err != nil {
			return err
		}
		if l.Status != model.ListingActive {
			return ErrListingClosed
		}

		l.Status = model.ListingClosed
		l.ClosedAtMs = &nowMs
		if err := tx.CloseListing(l.ID, nowMs); err != nil {
			return err
		}

		evt, err := appendEvent(tx, now, model.EventListingSold, buyerFID, mustJSON(l), l.ID)
		if err != nil {
			return err
		}

		if err := tx.TransferItem(l.ItemID, l.SellerFID, buyerFID, evt.ID, nowMs); err != nil {
			switch {
			case errors.Is(err, store.ErrNotFound):
				return ErrItemNotFound
			case errors.Is(err, store.ErrOwnerMismatch):
				return ErrNotOwner
			}
			return err
		}

		if err := pushInbox(tx, now, l.SellerFID, "listing-sold-"+evt.ID, "listing_sold", "Item Sold!", "Your item was purchased."); err != nil {
			return err
		}
		if err := pushInbox(tx, now, buyerFID, "listing-bought-"+evt.ID, "listing_bought", "Purchase Complete", "You bought an item."); err != nil {
			return err
		}

		closed = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, cache.KeyActiveListings)
	return closed, nil
}

// ListActiveListings returns the active listings, served from cache when
// available.
func (s *MarketService) ListActiveListings(ctx context.Context) ([]model.Listing, error) {
	if s.cache == nil {
		return s.store.ListActiveListings(ctx)
	}

	data, err := s.cache.GetOrSet(ctx, cache.KeyActiveListings, s.cacheTTL, func() ([]byte, error) {
		listings, err := s.store.ListActiveListings(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(listings)
	})
	if err != nil {
		return nil, err
	}

	var listings []model.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode cached listings: %w", err)
	}
	return listings, nil
}

// ListInventory returns every item owned by fid.
func (s *MarketService) ListInventory(ctx context.Context, fid int64) ([]model.InventoryItem, error) {
	return s.store.ListItemsByOwner(ctx, fid)
}

// invalidate drops a cache key after a successful mutation.
func (s *MarketService) invalidate(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		log.Printf("[MarketService] Cache invalidation failed for %s: %v", key, err)
	}
}

// mustJSON serializes a snapshot for an event payload. Falls back to an
// empty object on failure rather than aborting the operation.
func mustJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}
