package model

// User is a player identity keyed by Farcaster fid.
type User struct {
	FID         int64  `json:"fid"`
	Wallet      string `json:"wallet,omitempty"`
	CreatedAtMs int64  `json:"created_at_ms"`
}

// WalletLink maps a lowercase-normalized address to an identity.
// An address belongs to at most one identity at a time; relinking moves it.
type WalletLink struct {
	Address    string `json:"address"`
	FID        int64  `json:"fid"`
	LinkedAtMs int64  `json:"linked_at_ms"`
}

// StarterClaim marks that an identity has consumed its one-time starter grant.
type StarterClaim struct {
	FID         int64 `json:"fid"`
	ClaimedAtMs int64 `json:"claimed_at_ms"`
}
