package model

// Event kinds written by the business operations.
const (
	EventWalletLinked       = "wallet_linked"
	EventStarterPackGranted = "starter_pack_granted"
	EventListingCreated     = "listing_created"
	EventListingSold        = "ListingSold"
	EventAuctionCreated     = "auction_created"
	EventAuctionBuyNow      = "AuctionBuyNow"
	EventAuctionFinalized   = "AuctionFinalized"
	EventPvpMatchCreated    = "pvp_match_created"
	EventPvpMatchAccepted   = "pvp_match_accepted"
	EventPvpResultSubmitted = "pvp_result_submitted"
)

// Event is an append-only audit record. Its id is derived
// deterministically from kind, actor, timestamp and topic, so replaying
// the same trigger produces the same key.
type Event struct {
	ID          string `json:"id"`
	TsMs        int64  `json:"ts_ms"`
	Kind        string `json:"kind"`
	ActorFID    int64  `json:"actor_fid"`
	TopicID     string `json:"topic_id,omitempty"`
	PayloadJSON string `json:"payload_json"`
}

// InboxMessage is a per-identity notification. The msg id is derived
// from the triggering event, so redelivery of the same trigger collides
// on the primary key instead of duplicating the row.
type InboxMessage struct {
	MsgID       string `json:"msg_id"`
	FID         int64  `json:"fid"`
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	CreatedAtMs int64  `json:"created_at_ms"`
	ReadAtMs    *int64 `json:"read_at_ms,omitempty"`
}
