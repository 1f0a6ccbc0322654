package model

// Listing statuses. The active→closed transition is one-way.
const (
	ListingActive = "active"
	ListingClosed = "closed"
)

// Auction statuses. The active→finalized transition is one-way.
const (
	AuctionActive    = "active"
	AuctionFinalized = "finalized"
)

// Listing is a fixed-price sale of one inventory item.
type Listing struct {
	ID          string `json:"id"`
	ItemID      string `json:"item_id"`
	SellerFID   int64  `json:"seller_fid"`
	PriceWei    string `json:"price_wei"`
	Status      string `json:"status"`
	CreatedAtMs int64  `json:"created_at_ms"`
	ClosedAtMs  *int64 `json:"closed_at_ms,omitempty"`
}

// Auction is a timed auction of one inventory item.
//
// TopBidWei never decreases across accepted bids, and EndsAtMs only ever
// increases once, through the one-shot anti-snipe extension.
type Auction struct {
	ID            string `json:"id"`
	ItemID        string `json:"item_id"`
	SellerFID     int64  `json:"seller_fid"`
	ReserveWei    string `json:"reserve_wei"`
	EndsAtMs      int64  `json:"ends_at_ms"`
	Status        string `json:"status"`
	TopBidWei     string `json:"top_bid_wei,omitempty"`
	TopBidderFID  *int64 `json:"top_bidder_fid,omitempty"`
	BuyNowWei     string `json:"buy_now_wei,omitempty"`
	AntiSnipeUsed bool   `json:"anti_snipe_used"`
	CreatedAtMs   int64  `json:"created_at_ms"`
	FinalizedAtMs *int64 `json:"finalized_at_ms,omitempty"`
}

// Bid is an immutable record of one accepted bid attempt.
type Bid struct {
	ID         string `json:"id"`
	AuctionID  string `json:"auction_id"`
	FID        int64  `json:"fid"`
	AmountWei  string `json:"amount_wei"`
	PlacedAtMs int64  `json:"placed_at_ms"`
}
