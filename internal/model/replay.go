package model

// TransactionUsed is a write-once marker that an external transaction
// hash has been consumed by some endpoint. Shared across all endpoints
// by key uniqueness.
type TransactionUsed struct {
	TxHash    string `json:"tx_hash"`
	UsedAtMs  int64  `json:"used_at_ms"`
	UsedByFID int64  `json:"used_by_fid"`
	Endpoint  string `json:"endpoint"`
}

// IdempotencyRecord is a durable cached-response slot keyed by a
// client-supplied idempotency id. Persisted and expired, but not
// consulted by any business operation yet.
type IdempotencyRecord struct {
	ID            string `json:"id"`
	Endpoint      string `json:"endpoint"`
	FirstSeenAtMs int64  `json:"first_seen_at_ms"`
	ResponseJSON  string `json:"response_json"`
	TTLUntilMs    int64  `json:"ttl_until_ms"`
}
