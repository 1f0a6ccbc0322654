package store

import (
	"context"
	"database/sql"
	"fmt"

	"footcaster-market-api/internal/model"
)

// GetListing finds a listing by id. Returns ErrNotFound if absent.
func (t *Tx) GetListing(id string) (*model.Listing, error) {
	var l model.Listing
	var closedAt sql.NullInt64

	err := t.tx.QueryRow(
		`SELECT id, item_id, seller_fid, price_wei, status, created_at_ms, closed_at_ms
		 FROM listings WHERE id = ?`, id,
	).Scan(&l.ID, &l.ItemID, &l.SellerFID, &l.PriceWei, &l.Status, &l.CreatedAtMs, &closedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	if closedAt.Valid {
		l.ClosedAtMs = &closedAt.Int64
	}
	return &l, nil
}

// InsertListing creates a listing.
func (t *Tx) InsertListing(l *model.Listing) error {
	_, err := t.tx.Exec(
		`INSERT INTO listings (id, item_id, seller_fid, price_wei, status, created_at_ms, closed_at_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.ItemID, l.SellerFID, l.PriceWei, l.Status, l.CreatedAtMs, nullInt64(l.ClosedAtMs),
	)
	if err != nil {
		return fmt.Errorf("failed to insert listing: %w", err)
	}
	return nil
}

// CloseListing flips a listing to closed and stamps the close time.
func (t *Tx) CloseListing(id string, closedAtMs int64) error {
	_, err := t.tx.Exec(
		`UPDATE listings SET status = ?, closed_at_ms = ? WHERE id = ?`,
		model.ListingClosed, closedAtMs, id,
	)
	if err != nil {
		return fmt.Errorf("failed to close listing: %w", err)
	}
	return nil
}

// GetAuction finds an auction by id. Returns ErrNotFound if absent.
func (t *Tx) GetAuction(id string) (*model.Auction, error) {
	return scanAuction(t.tx.QueryRow(
		`SELECT id, item_id, seller_fid, reserve_wei, ends_at_ms, status, top_bid_wei,
		        top_bidder_fid, buy_now_wei, anti_snipe_used, created_at_ms, finalized_at_ms
		 FROM auctions WHERE id = ?`, id,
	))
}

// InsertAuction creates an auction.
func (t *Tx) InsertAuction(a *model.Auction) error {
	_, err := t.tx.Exec(
		`INSERT INTO auctions (id, item_id, seller_fid, reserve_wei, ends_at_ms, status, top_bid_wei,
		                       top_bidder_fid, buy_now_wei, anti_snipe_used, created_at_ms, finalized_at_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.ItemID, a.SellerFID, a.ReserveWei, a.EndsAtMs, a.Status, nullString(a.TopBidWei),
		nullInt64(a.TopBidderFID), nullString(a.BuyNowWei), a.AntiSnipeUsed, a.CreatedAtMs, nullInt64(a.FinalizedAtMs),
	)
	if err != nil {
		return fmt.Errorf("failed to insert auction: %w", err)
	}
	return nil
}

// UpdateAuction writes back the mutable auction fields.
func (t *Tx) UpdateAuction(a *model.Auction) error {
	_, err := t.tx.Exec(
		`UPDATE auctions SET ends_at_ms = ?, status = ?, top_bid_wei = ?, top_bidder_fid = ?,
		        anti_snipe_used = ?, finalized_at_ms = ? WHERE id = ?`,
		a.EndsAtMs, a.Status, nullString(a.TopBidWei), nullInt64(a.TopBidderFID),
		a.AntiSnipeUsed, nullInt64(a.FinalizedAtMs), a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update auction: %w", err)
	}
	return nil
}

// InsertBid appends an immutable bid record.
func (t *Tx) InsertBid(b *model.Bid) error {
	_, err := t.tx.Exec(
		`INSERT INTO bids (id, auction_id, fid, amount_wei, placed_at_ms) VALUES (?, ?, ?, ?, ?)`,
		b.ID, b.AuctionID, b.FID, b.AmountWei, b.PlacedAtMs,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bid: %w", err)
	}
	return nil
}

// ListActiveListings returns all active listings, newest first.
func (s *Store) ListActiveListings(ctx context.Context) ([]model.Listing, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, item_id, seller_fid, price_wei, status, created_at_ms, closed_at_ms
		 FROM listings WHERE status = ? ORDER BY created_at_ms DESC`, model.ListingActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	defer rows.Close()

	var listings []model.Listing
	for rows.Next() {
		var l model.Listing
		var closedAt sql.NullInt64
		if err := rows.Scan(&l.ID, &l.ItemID, &l.SellerFID, &l.PriceWei, &l.Status, &l.CreatedAtMs, &closedAt); err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		if closedAt.Valid {
			l.ClosedAtMs = &closedAt.Int64
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// ListActiveAuctions returns all active auctions, soonest-ending first.
func (s *Store) ListActiveAuctions(ctx context.Context) ([]model.Auction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, item_id, seller_fid, reserve_wei, ends_at_ms, status, top_bid_wei,
		        top_bidder_fid, buy_now_wei, anti_snipe_used, created_at_ms, finalized_at_ms
		 FROM auctions WHERE status = ? ORDER BY ends_at_ms ASC`, model.AuctionActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list auctions: %w", err)
	}
	defer rows.Close()

	var auctions []model.Auction
	for rows.Next() {
		a, err := scanAuctionRows(rows)
		if err != nil {
			return nil, err
		}
		auctions = append(auctions, *a)
	}
	return auctions, rows.Err()
}

// GetAuctionByID is the read-path auction lookup.
func (s *Store) GetAuctionByID(ctx context.Context, id string) (*model.Auction, error) {
	return scanAuction(s.db.QueryRowContext(ctx,
		`SELECT id, item_id, seller_fid, reserve_wei, ends_at_ms, status, top_bid_wei,
		        top_bidder_fid, buy_now_wei, anti_snipe_used, created_at_ms, finalized_at_ms
		 FROM auctions WHERE id = ?`, id,
	))
}

// ListBids returns all bids for an auction in placement order.
func (s *Store) ListBids(ctx context.Context, auctionID string) ([]model.Bid, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, auction_id, fid, amount_wei, placed_at_ms
		 FROM bids WHERE auction_id = ? ORDER BY placed_at_ms ASC`, auctionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}
	defer rows.Close()

	var bids []model.Bid
	for rows.Next() {
		var b model.Bid
		if err := rows.Scan(&b.ID, &b.AuctionID, &b.FID, &b.AmountWei, &b.PlacedAtMs); err != nil {
			return nil, fmt.Errorf("failed to scan bid: %w", err)
		}
		bids = append(bids, b)
	}
	return bids, rows.Err()
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAuction(row *sql.Row) (*model.Auction, error) {
	a, err := scanAuctionFrom(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get auction: %w", err)
	}
	return a, nil
}

func scanAuctionRows(rows *sql.Rows) (*model.Auction, error) {
	a, err := scanAuctionFrom(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan auction: %w", err)
	}
	return a, nil
}

func scanAuctionFrom(sc rowScanner) (*model.Auction, error) {
	var a model.Auction
	var topBid, buyNow sql.NullString
	var topBidder, finalizedAt sql.NullInt64

	err := sc.Scan(&a.ID, &a.ItemID, &a.SellerFID, &a.ReserveWei, &a.EndsAtMs, &a.Status,
		&topBid, &topBidder, &buyNow, &a.AntiSnipeUsed, &a.CreatedAtMs, &finalizedAt)
	if err != nil {
		return nil, err
	}

	a.TopBidWei = topBid.String
	a.BuyNowWei = buyNow.String
	if topBidder.Valid {
		a.TopBidderFID = &topBidder.Int64
	}
	if finalizedAt.Valid {
		a.FinalizedAtMs = &finalizedAt.Int64
	}
	return &a, nil
}
