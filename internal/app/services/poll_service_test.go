package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/pkg/apperrors"
)

func TestPollVotesMoveAndRetract(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPollService(env.deps)
	ctx := context.Background()

	poll, err := svc.CreatePoll(ctx, "u1", &dto.CreatePollRequest{
		Question: "Best study spot?",
		Options:  []string{"Library", " ", "Cafe"},
	})
	require.NoError(t, err)
	require.Len(t, poll.Options, 2, "blank options are dropped")
	library, cafe := poll.Options[0].ID, poll.Options[1].ID

	poll, err = svc.Vote(ctx, "u2", poll.ID, library)
	require.NoError(t, err)
	assert.Equal(t, 1, poll.Options[0].Votes)
	assert.Equal(t, library, poll.MyVote)

	poll, err = svc.Vote(ctx, "u2", poll.ID, cafe)
	require.NoError(t, err)
	assert.Equal(t, 0, poll.Options[0].Votes)
	assert.Equal(t, 1, poll.Options[1].Votes)
	assert.Equal(t, 1, poll.TotalVotes)

	poll, err = svc.Vote(ctx, "u2", poll.ID, cafe)
	require.NoError(t, err)
	assert.Equal(t, 0, poll.TotalVotes)
	assert.Empty(t, poll.MyVote)

	_, err = svc.Vote(ctx, "u2", poll.ID, "missing")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestClosedPollRejectsVotes(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPollService(env.deps)
	ctx := context.Background()

	poll, err := svc.CreatePoll(ctx, "u1", &dto.CreatePollRequest{Question: "Pizza?", Options: []string{"Yes", "No"}})
	require.NoError(t, err)

	_, err = svc.ClosePoll(ctx, "u2", poll.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	closed, err := svc.ClosePoll(ctx, "u1", poll.ID)
	require.NoError(t, err)
	assert.True(t, closed.Closed)

	_, err = svc.Vote(ctx, "u2", poll.ID, poll.Options[0].ID)
	assert.ErrorIs(t, err, apperrors.ErrPollClosed)

	_, err = svc.CreatePoll(ctx, "u1", &dto.CreatePollRequest{Question: "Only one?", Options: []string{"Yes"}})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}
