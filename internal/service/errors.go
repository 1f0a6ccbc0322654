package service

import "errors"

// Domain errors. Every business operation aborts with the first violated
// condition; the abort rolls back only that operation's transaction.
var (
	// Not found
	ErrItemNotFound    = errors.New("item_not_found")
	ErrListingNotFound = errors.New("listing_not_found")
	ErrAuctionNotFound = errors.New("auction_not_found")
	ErrMatchNotFound   = errors.New("match_not_found")

	// Precondition violations
	ErrNotOwner       = errors.New("not_owner")
	ErrInHold         = errors.New("in_hold")
	ErrListingClosed  = errors.New("listing_closed")
	ErrAuctionClosed  = errors.New("auction_closed")
	ErrAuctionEnded   = errors.New("auction_ended")
	ErrNotWinner      = errors.New("not_winner")
	ErrInvalidState   = errors.New("invalid_state")
	ErrNotChallenged  = errors.New("not_challenged")
	ErrNotParticipant = errors.New("not_participant")
	ErrSelfChallenge  = errors.New("self_challenge")

	// Validation
	ErrBelowReserve    = errors.New("below_reserve")
	ErrBelowIncrement  = errors.New("below_increment")
	ErrInvalidBuyNow   = errors.New("invalid_buy_now")
	ErrInvalidJSON     = errors.New("invalid_json")
	ErrMissingField    = errors.New("missing_field")
	ErrNegativeScore   = errors.New("negative_score")
	ErrScoreOutOfRange = errors.New("score_out_of_range")

	// Duplicate operations
	ErrAlreadyClaimed   = errors.New("starter_already_claimed")
	ErrDuplicatePending = errors.New("duplicate_pending")
	ErrTxAlreadyUsed    = errors.New("tx_already_used")
)
