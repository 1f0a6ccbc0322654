package model

// PvpMatch statuses. The only valid order is pending→active→finalized.
const (
	MatchPending   = "pending"
	MatchActive    = "active"
	MatchFinalized = "finalized"
)

// MaxScore is the highest accepted per-side score in a result payload.
const MaxScore = 20

// PvpMatch is a challenge between two identities.
type PvpMatch struct {
	ID            string `json:"id"`
	ChallengerFID int64  `json:"challenger_fid"`
	ChallengedFID int64  `json:"challenged_fid"`
	Status        string `json:"status"`
	CreatedAtMs   int64  `json:"created_at_ms"`
	AcceptedAtMs  *int64 `json:"accepted_at_ms,omitempty"`
	ResultJSON    string `json:"result_json,omitempty"`
}
