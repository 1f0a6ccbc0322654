package model

// InventoryItem is a single owned collectible. Ownership changes only
// through the store's transfer primitive.
type InventoryItem struct {
	ItemID        string `json:"item_id"`
	OwnerFID      int64  `json:"owner_fid"`
	ItemType      string `json:"item_type"`
	AcquiredAtMs  int64  `json:"acquired_at_ms"`
	HoldUntilMs   int64  `json:"hold_until_ms"`
	SourceEventID string `json:"source_event_id"`
}

// StarterPlayer is one entry of the starter pack payload.
type StarterPlayer struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name,omitempty"`
	Position string `json:"position,omitempty"`
	Rating   int    `json:"rating,omitempty"`
}

// StarterPackPayload is the client-supplied starter grant payload.
type StarterPackPayload struct {
	Players []StarterPlayer `json:"players"`
}
