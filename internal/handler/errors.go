package handler

import (
	"errors"
	"strings"

	"footcaster-market-api/internal/service"
	"footcaster-market-api/pkg/apierror"
)

// domainError maps a service error onto the API error envelope:
// not-found → 404, duplicate operations → 409, precondition violations
// → 412, validation failures → 400, anything else → 500.
func domainError(err error) *apierror.Error {
	code := strings.ToUpper(rootMessage(err))

	switch {
	case errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrListingNotFound),
		errors.Is(err, service.ErrAuctionNotFound),
		errors.Is(err, service.ErrMatchNotFound):
		return apierror.NotFound(err.Error()).WithCode(code)

	case errors.Is(err, service.ErrAlreadyClaimed),
		errors.Is(err, service.ErrDuplicatePending),
		errors.Is(err, service.ErrTxAlreadyUsed):
		return apierror.Conflict(err.Error()).WithCode(code)

	case errors.Is(err, service.ErrNotOwner),
		errors.Is(err, service.ErrInHold),
		errors.Is(err, service.ErrListingClosed),
		errors.Is(err, service.ErrAuctionClosed),
		errors.Is(err, service.ErrAuctionEnded),
		errors.Is(err, service.ErrNotWinner),
		errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrNotChallenged),
		errors.Is(err, service.ErrNotParticipant),
		errors.Is(err, service.ErrSelfChallenge):
		return apierror.PreconditionFailed(err.Error()).WithCode(code)

	case errors.Is(err, service.ErrBelowReserve),
		errors.Is(err, service.ErrBelowIncrement),
		errors.Is(err, service.ErrInvalidBuyNow),
		errors.Is(err, service.ErrInvalidJSON),
		errors.Is(err, service.ErrMissingField),
		errors.Is(err, service.ErrNegativeScore),
		errors.Is(err, service.ErrScoreOutOfRange):
		return apierror.BadRequest(err.Error()).WithCode(code)
	}

	return apierror.InternalError("")
}

// rootMessage unwraps to the sentinel's own message so wrapped errors
// (e.g. "missing_field: home") keep a stable machine code.
func rootMessage(err error) string {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}
