package store

// Both schemas describe the same collections; they differ only where the
// dialects force it (index creation syntax, column types).

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		fid BIGINT PRIMARY KEY,
		wallet VARCHAR(64),
		created_at_ms BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS wallet_links (
		address VARCHAR(64) PRIMARY KEY,
		fid BIGINT NOT NULL,
		linked_at_ms BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS starter_claims (
		fid BIGINT PRIMARY KEY,
		claimed_at_ms BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS inventory_items (
		item_id VARCHAR(128) PRIMARY KEY,
		owner_fid BIGINT NOT NULL,
		item_type VARCHAR(32) NOT NULL,
		acquired_at_ms BIGINT NOT NULL,
		hold_until_ms BIGINT NOT NULL,
		source_event_id VARCHAR(64) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_inventory_owner ON inventory_items(owner_fid)`,
	`CREATE TABLE IF NOT EXISTS listings (
		id VARCHAR(64) PRIMARY KEY,
		item_id VARCHAR(128) NOT NULL,
		seller_fid BIGINT NOT NULL,
		price_wei VARCHAR(80) NOT NULL,
		status VARCHAR(16) NOT NULL,
		created_at_ms BIGINT NOT NULL,
		closed_at_ms BIGINT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_status ON listings(status)`,
	`CREATE TABLE IF NOT EXISTS auctions (
		id VARCHAR(64) PRIMARY KEY,
		item_id VARCHAR(128) NOT NULL,
		seller_fid BIGINT NOT NULL,
		reserve_wei VARCHAR(80) NOT NULL,
		ends_at_ms BIGINT NOT NULL,
		status VARCHAR(16) NOT NULL,
		top_bid_wei VARCHAR(80),
		top_bidder_fid BIGINT,
		buy_now_wei VARCHAR(80),
		anti_snipe_used BOOLEAN NOT NULL DEFAULT FALSE,
		created_at_ms BIGINT NOT NULL,
		finalized_at_ms BIGINT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_auctions_status ON auctions(status)`,
	`CREATE TABLE IF NOT EXISTS bids (
		id VARCHAR(64) PRIMARY KEY,
		auction_id VARCHAR(64) NOT NULL,
		fid BIGINT NOT NULL,
		amount_wei VARCHAR(80) NOT NULL,
		placed_at_ms BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bids_auction ON bids(auction_id)`,
	`CREATE TABLE IF NOT EXISTS events (
		id VARCHAR(64) PRIMARY KEY,
		ts_ms BIGINT NOT NULL,
		kind VARCHAR(48) NOT NULL,
		actor_fid BIGINT NOT NULL,
		topic_id VARCHAR(64),
		payload_json TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_ts ON events(ts_ms)`,
	`CREATE TABLE IF NOT EXISTS inbox (
		msg_id VARCHAR(128) PRIMARY KEY,
		fid BIGINT NOT NULL,
		kind VARCHAR(48) NOT NULL,
		title VARCHAR(128) NOT NULL,
		body TEXT NOT NULL,
		created_at_ms BIGINT NOT NULL,
		read_at_ms BIGINT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_inbox_fid ON inbox(fid)`,
	`CREATE TABLE IF NOT EXISTS pvp_matches (
		id VARCHAR(64) PRIMARY KEY,
		challenger_fid BIGINT NOT NULL,
		challenged_fid BIGINT NOT NULL,
		pair_key VARCHAR(48) NOT NULL,
		status VARCHAR(16) NOT NULL,
		created_at_ms BIGINT NOT NULL,
		accepted_at_ms BIGINT,
		result_json TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_pvp_pair ON pvp_matches(pair_key, status)`,
	`CREATE TABLE IF NOT EXISTS transactions_used (
		tx_hash VARCHAR(80) PRIMARY KEY,
		used_at_ms BIGINT NOT NULL,
		used_by_fid BIGINT NOT NULL,
		endpoint VARCHAR(64) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS idempotency (
		id VARCHAR(128) PRIMARY KEY,
		endpoint VARCHAR(64) NOT NULL,
		first_seen_at_ms BIGINT NOT NULL,
		response_json TEXT NOT NULL,
		ttl_until_ms BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_idempotency_ttl ON idempotency(ttl_until_ms)`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		fid BIGINT PRIMARY KEY,
		wallet VARCHAR(64),
		created_at_ms BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS wallet_links (
		address VARCHAR(64) PRIMARY KEY,
		fid BIGINT NOT NULL,
		linked_at_ms BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS starter_claims (
		fid BIGINT PRIMARY KEY,
		claimed_at_ms BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS inventory_items (
		item_id VARCHAR(128) PRIMARY KEY,
		owner_fid BIGINT NOT NULL,
		item_type VARCHAR(32) NOT NULL,
		acquired_at_ms BIGINT NOT NULL,
		hold_until_ms BIGINT NOT NULL,
		source_event_id VARCHAR(64) NOT NULL,
		INDEX idx_inventory_owner (owner_fid)
	)`,
	`CREATE TABLE IF NOT EXISTS listings (
		id VARCHAR(64) PRIMARY KEY,
		item_id VARCHAR(128) NOT NULL,
		seller_fid BIGINT NOT NULL,
		price_wei VARCHAR(80) NOT NULL,
		status VARCHAR(16) NOT NULL,
		created_at_ms BIGINT NOT NULL,
		closed_at_ms BIGINT,
		INDEX idx_listings_status (status)
	)`,
	`CREATE TABLE IF NOT EXISTS auctions (
		id VARCHAR(64) PRIMARY KEY,
		item_id VARCHAR(128) NOT NULL,
		seller_fid BIGINT NOT NULL,
		reserve_wei VARCHAR(80) NOT NULL,
		ends_at_ms BIGINT NOT NULL,
		status VARCHAR(16) NOT NULL,
		top_bid_wei VARCHAR(80),
		top_bidder_fid BIGINT,
		buy_now_wei VARCHAR(80),
		anti_snipe_used BOOLEAN NOT NULL DEFAULT FALSE,
		created_at_ms BIGINT NOT NULL,
		finalized_at_ms BIGINT,
		INDEX idx_auctions_status (status)
	)`,
	`CREATE TABLE IF NOT EXISTS bids (
		id VARCHAR(64) PRIMARY KEY,
		auction_id VARCHAR(64) NOT NULL,
		fid BIGINT NOT NULL,
		amount_wei VARCHAR(80) NOT NULL,
		placed_at_ms BIGINT NOT NULL,
		INDEX idx_bids_auction (auction_id)
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id VARCHAR(64) PRIMARY KEY,
		ts_ms BIGINT NOT NULL,
		kind VARCHAR(48) NOT NULL,
		actor_fid BIGINT NOT NULL,
		topic_id VARCHAR(64),
		payload_json TEXT NOT NULL,
		INDEX idx_events_ts (ts_ms)
	)`,
	`CREATE TABLE IF NOT EXISTS inbox (
		msg_id VARCHAR(128) PRIMARY KEY,
		fid BIGINT NOT NULL,
		kind VARCHAR(48) NOT NULL,
		title VARCHAR(128) NOT NULL,
		body TEXT NOT NULL,
		created_at_ms BIGINT NOT NULL,
		read_at_ms BIGINT,
		INDEX idx_inbox_fid (fid)
	)`,
	`CREATE TABLE IF NOT EXISTS pvp_matches (
		id VARCHAR(64) PRIMARY KEY,
		challenger_fid BIGINT NOT NULL,
		challenged_fid BIGINT NOT NULL,
		pair_key VARCHAR(48) NOT NULL,
		status VARCHAR(16) NOT NULL,
		created_at_ms BIGINT NOT NULL,
		accepted_at_ms BIGINT,
		result_json TEXT,
		INDEX idx_pvp_pair (pair_key, status)
	)`,
	`CREATE TABLE IF NOT EXISTS transactions_used (
		tx_hash VARCHAR(80) PRIMARY KEY,
		used_at_ms BIGINT NOT NULL,
		used_by_fid BIGINT NOT NULL,
		endpoint VARCHAR(64) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS idempotency (
		id VARCHAR(128) PRIMARY KEY,
		endpoint VARCHAR(64) NOT NULL,
		first_seen_at_ms BIGINT NOT NULL,
		response_json TEXT NOT NULL,
		ttl_until_ms BIGINT NOT NULL,
		INDEX idx_idempotency_ttl (ttl_until_ms)
	)`,
}
