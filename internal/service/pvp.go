package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"footcaster-market-api/internal/model"
	"footcaster-market-api/internal/store"
	"footcaster-market-api/pkg/uid"
)

// PvpService handles the challenge → accept → result state machine.
type PvpService struct {
	store *store.Store
	now   func() time.Time
}

// NewPvpService creates a new PvP service.
func NewPvpService(st *store.Store) *PvpService {
	if st == nil {
		return nil
	}
	return &PvpService{store: st, now: time.Now}
}

// CreateChallenge creates a pending match between two distinct
// identities. At most one pending match may exist per unordered pair,
// regardless of challenge direction.
func (s *PvpService) CreateChallenge(ctx context.Context, challengerFID, challengedFID int64) (*model.PvpMatch, error) {
	if challengerFID == challengedFID {
		return nil, ErrSelfChallenge
	}

	var match *model.PvpMatch

	err := s.store.RunInTx(ctx, func(tx *store.Tx) error {
		pending, err := tx.HasPendingMatch(challengerFID, challengedFID)
		if err != nil {
			return err
		}
		if pending {
			return ErrDuplicatePending
		}

		now := s.now()
		match = &model.PvpMatch{
			ID:            uid.Deterministic("pvp", now, fmt.Sprintf("%d:%d", challengerFID, challengedFID)),
			ChallengerFID: challengerFID,
			ChallengedFID: challengedFID,
			Status:        model.MatchPending,
			CreatedAtMs:   now.UnixMilli(),
		}
		if err := tx.InsertMatch(match); err != nil {
			return err
		}

		if _, err := appendEvent(tx, now, model.EventPvpMatchCreated, challengerFID, "{}", match.ID); err != nil {
			return err
		}

		body := fmt.Sprintf("FID %d challenged you.", challengerFID)
		return pushInbox(tx, now, challengedFID, "pvp-challenge-"+match.ID, "pvp_challenge", "New Challenge", body)
	})
	if err != nil {
		return nil, err
	}
	return match, nil
}

// AcceptChallenge moves a pending match to active. Only the challenged
// identity may accept.
func (s *PvpService) AcceptChallenge(ctx context.Context, matchID string, accepterFID int64) (*model.PvpMatch, error) {
	var match *model.PvpMatch

	err := s.store.RunInTx(ctx, func(tx *store.Tx) error {
		m, err := tx.GetMatch(matchID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrMatchNotFound
		}
		if err != nil {
			return err
		}
		if m.Status != model.MatchPending {
			return ErrInvalidState
		}
		if m.ChallengedFID != accepterFID {
			return ErrNotChallenged
		}

		now := s.now()
		nowMs := now.UnixMilli()
		m.Status = model.MatchActive
		m.AcceptedAtMs = &nowMs
		if err := tx.UpdateMatch(m); err != nil {
			return err
		}

		if _, err := appendEvent(tx, now, model.EventPvpMatchAccepted, accepterFID, "{}", matchID); err != nil {
			return err
		}

		match = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return match, nil
}

// SubmitResult finalizes an active match with a validated result
// payload. Either participant may report.
func (s *PvpService) SubmitResult(ctx context.Context, matchID string, reporterFID int64, resultJSON []byte) (*model.PvpMatch, error) {
	var match *model.PvpMatch

	err := s.store.RunInTx(ctx, func(tx *store.Tx) error {
		m, err := tx.GetMatch(matchID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrMatchNotFound
		}
		if err != nil {
			return err
		}
		if m.Status != model.MatchActive {
			return ErrInvalidState
		}
		if reporterFID != m.ChallengerFID && reporterFID != m.ChallengedFID {
			return ErrNotParticipant
		}
		if err := validateResult(resultJSON); err != nil {
			return err
		}

		now := s.now()
		m.Status = model.MatchFinalized
		m.ResultJSON = string(resultJSON)
		if err := tx.UpdateMatch(m); err != nil {
			return err
		}

		if _, err := appendEvent(tx, now, model.EventPvpResultSubmitted, reporterFID, string(resultJSON), matchID); err != nil {
			return err
		}

		match = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return match, nil
}

// GetMatch returns one match record.
func (s *PvpService) GetMatch(ctx context.Context, matchID string) (*model.PvpMatch, error) {
	m, err := s.store.GetMatchByID(ctx, matchID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrMatchNotFound
	}
	return m, err
}

// validateResult checks a result payload: integer home/away scores,
// non-negative, each at most model.MaxScore.
func validateResult(resultJSON []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(resultJSON, &raw); err != nil {
		return ErrInvalidJSON
	}

	home, err := intField(raw, "home")
	if err != nil {
		return err
	}
	away, err := intField(raw, "away")
	if err != nil {
		return err
	}

	if home < 0 || away < 0 {
		return ErrNegativeScore
	}
	if home > model.MaxScore || away > model.MaxScore {
		return ErrScoreOutOfRange
	}
	return nil
}

func intField(raw map[string]json.RawMessage, key string) (int64, error) {
	v, ok := raw[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	var n int64
	if err := json.Unmarshal(v, &n); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	return n, nil
}
