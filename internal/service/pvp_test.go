package service

import (
	"context"
	"testing"
	"time"

	"footcaster-market-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChallengeLifecycle(t *testing.T) {
	st := newTestStore(t)
	clock := newTestClock()
	svc := newPvpService(st, clock)
	ctx := context.Background()

	match, err := svc.CreateChallenge(ctx, 100, 200)
	require.NoError(t, err)
	assert.Equal(t, model.MatchPending, match.Status)
	assert.Equal(t, int64(100), match.ChallengerFID)
	assert.Equal(t, int64(200), match.ChallengedFID)

	// the challenged side gets notified
	inbox, err := st.ListInbox(ctx, 200)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, "pvp-challenge-"+match.ID, inbox[0].MsgID)

	clock.Advance(time.Minute)
	accepted, err := svc.AcceptChallenge(ctx, match.ID, 200)
	require.NoError(t, err)
	assert.Equal(t, model.MatchActive, accepted.Status)
	require.NotNil(t, accepted.AcceptedAtMs)

	clock.Advance(time.Minute)
	final, err := svc.SubmitResult(ctx, match.ID, 100, []byte(`{"home":3,"away":1}`))
	require.NoError(t, err)
	assert.Equal(t, model.MatchFinalized, final.Status)
	assert.JSONEq(t, `{"home":3,"away":1}`, final.ResultJSON)
}

func TestSelfChallengeRejected(t *testing.T) {
	st := newTestStore(t)
	clock := newTestClock()
	svc := newPvpService(st, clock)

	_, err := svc.CreateChallenge(context.Background(), 100, 100)
	assert.ErrorIs(t, err, ErrSelfChallenge)
}

func TestDuplicatePendingEitherDirection(t *testing.T) {
	st := newTestStore(t)
	clock := newTestClock()
	svc := newPvpService(st, clock)
	ctx := context.Background()

	match, err := svc.CreateChallenge(ctx, 100, 200)
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = svc.CreateChallenge(ctx, 100, 200)
	assert.ErrorIs(t, err, ErrDuplicatePending)

	// the reverse direction is the same unordered pair
	_, err = svc.CreateChallenge(ctx, 200, 100)
	assert.ErrorIs(t, err, ErrDuplicatePending)

	// an unrelated pair is fine
	_, err = svc.CreateChallenge(ctx, 100, 300)
	require.NoError(t, err)

	// once the match leaves pending, the pair can challenge again
	clock.Advance(time.Second)
	_, err = svc.AcceptChallenge(ctx, match.ID, 200)
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = svc.CreateChallenge(ctx, 200, 100)
	require.NoError(t, err)
}

func TestAcceptRequiresChallengedIdentity(t *testing.T) {
	st := newTestStore(t)
	clock := newTestClock()
	svc := newPvpService(st, clock)
	ctx := context.Background()

	match, err := svc.CreateChallenge(ctx, 100, 200)
	require.NoError(t, err)

	_, err = svc.AcceptChallenge(ctx, match.ID, 100)
	assert.ErrorIs(t, err, ErrNotChallenged)

	_, err = svc.AcceptChallenge(ctx, match.ID, 300)
	assert.ErrorIs(t, err, ErrNotChallenged)

	// a failed accept leaves the match pending
	m, err := svc.GetMatch(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MatchPending, m.Status)

	_, err = svc.AcceptChallenge(ctx, "no-such-match", 200)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestStateTransitionsAreStrict(t *testing.T) {
	st := newTestStore(t)
	clock := newTestClock()
	svc := newPvpService(st, clock)
	ctx := context.Background()

	match, err := svc.CreateChallenge(ctx, 100, 200)
	require.NoError(t, err)

	// result before accept
	_, err = svc.SubmitResult(ctx, match.ID, 100, []byte(`{"home":1,"away":0}`))
	assert.ErrorIs(t, err, ErrInvalidState)

	clock.Advance(time.Second)
	_, err = svc.AcceptChallenge(ctx, match.ID, 200)
	require.NoError(t, err)

	// accept twice
	_, err = svc.AcceptChallenge(ctx, match.ID, 200)
	assert.ErrorIs(t, err, ErrInvalidState)

	clock.Advance(time.Second)
	_, err = svc.SubmitResult(ctx, match.ID, 200, []byte(`{"home":1,"away":0}`))
	require.NoError(t, err)

	// result twice
	_, err = svc.SubmitResult(ctx, match.ID, 100, []byte(`{"home":2,"away":0}`))
	assert.ErrorIs(t, err, ErrInvalidState)

	// the first result stands
	m, err := svc.GetMatch(ctx, match.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"home":1,"away":0}`, m.ResultJSON)
}

func TestSubmitResultValidation(t *testing.T) {
	st := newTestStore(t)
	clock := newTestClock()
	svc := newPvpService(st, clock)
	ctx := context.Background()

	match, err := svc.CreateChallenge(ctx, 100, 200)
	require.NoError(t, err)
	clock.Advance(time.Second)
	_, err = svc.AcceptChallenge(ctx, match.ID, 200)
	require.NoError(t, err)
	clock.Advance(time.Second)

	cases := []struct {
		name    string
		payload string
		wantErr error
	}{
		{"not json", `not-json`, ErrInvalidJSON},
		{"missing home", `{"away":1}`, ErrMissingField},
		{"missing away", `{"home":1}`, ErrMissingField},
		{"non-numeric score", `{"home":"three","away":1}`, ErrMissingField},
		{"negative score", `{"home":-1,"away":0}`, ErrNegativeScore},
		{"home above cap", `{"home":21,"away":3}`, ErrScoreOutOfRange},
		{"away above cap", `{"home":0,"away":99}`, ErrScoreOutOfRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SubmitResult(ctx, match.ID, 100, []byte(tc.payload))
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	// rejected results leave the match active
	m, err := svc.GetMatch(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MatchActive, m.Status)

	// the cap itself is allowed
	_, err = svc.SubmitResult(ctx, match.ID, 100, []byte(`{"home":20,"away":20}`))
	require.NoError(t, err)
}

func TestSubmitResultParticipantsOnly(t *testing.T) {
	st := newTestStore(t)
	clock := newTestClock()
	svc := newPvpService(st, clock)
	ctx := context.Background()

	match, err := svc.CreateChallenge(ctx, 100, 200)
	require.NoError(t, err)
	clock.Advance(time.Second)
	_, err = svc.AcceptChallenge(ctx, match.ID, 200)
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = svc.SubmitResult(ctx, match.ID, 999, []byte(`{"home":1,"away":0}`))
	assert.ErrorIs(t, err, ErrNotParticipant)

	// either participant may report
	_, err = svc.SubmitResult(ctx, match.ID, 200, []byte(`{"home":1,"away":0}`))
	require.NoError(t, err)
}
