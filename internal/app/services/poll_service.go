package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/campusbuzz/internal/app/auth"
	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/pkg/apperrors"
	"github.com/yigit/campusbuzz/internal/pkg/latency"
	"github.com/yigit/campusbuzz/internal/store"
)

// PollService defines the interface for campus polls
type PollService interface {
	CreatePoll(ctx context.Context, actorID string, req *dto.CreatePollRequest) (*dto.PollResponse, error)
	Vote(ctx context.Context, actorID, pollID, optionID string) (*dto.PollResponse, error)
	ClosePoll(ctx context.Context, actorID, pollID string) (*dto.PollResponse, error)
	ListPolls(ctx context.Context, viewerID string) ([]dto.PollResponse, error)
}

// pollServiceImpl implements PollService
type pollServiceImpl struct {
	deps   *Deps
	logger zerolog.Logger
}

// NewPollService creates a new PollService
func NewPollService(deps *Deps) PollService {
	return &pollServiceImpl{deps: deps, logger: deps.component("poll_service")}
}

// CreatePoll opens a poll with at least two options
func (s *pollServiceImpl) CreatePoll(ctx context.Context, actorID string, req *dto.CreatePollRequest) (*dto.PollResponse, error) {
	s.logger.Debug().Str("actorID", actorID).Str("question", req.Question).Msg("Creating poll")

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, apperrors.NewValidationError(apperrors.ErrEmptyContent)
	}
	texts := make([]string, 0, len(req.Options))
	for _, o := range req.Options {
		if o = strings.TrimSpace(o); o != "" {
			texts = append(texts, o)
		}
	}
	if len(texts) < 2 {
		return nil, apperrors.NewBadRequestError("a poll needs at least two options")
	}
	if _, err := s.deps.actor(actorID); err != nil {
		return nil, err
	}

	s.deps.delay(ctx, latency.OpVote)

	var resp dto.PollResponse
	err := s.deps.Store.Update("create_poll", func(st *store.State) error {
		author, err := auth.ActorIn(st, actorID)
		if err != nil {
			return err
		}
		poll := models.Poll{
			ID:        s.deps.IDs.ID("poll"),
			AuthorID:  author.ID,
			Question:  question,
			Options:   make([]models.PollOption, 0, len(texts)),
			CreatedAt: s.deps.now(),
		}
		for i, t := range texts {
			poll.Options = append(poll.Options, models.PollOption{
				ID:     fmt.Sprintf("%s-o%d", poll.ID, i+1),
				Text:   t,
				Voters: []string{},
			})
		}
		st.Polls.Prepend(poll)
		resp = dto.NewPollResponse(poll, lookupIn(st), actorID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Vote records the actor's vote. Each user holds at most one vote: voting
// for another option moves it, voting for the same option retracts it.
func (s *pollServiceImpl) Vote(ctx context.Context, actorID, pollID, optionID string) (*dto.PollResponse, error) {
	s.logger.Debug().Str("actorID", actorID).Str("pollID", pollID).Str("optionID", optionID).Msg("Voting")

	if _, err := s.deps.actor(actorID); err != nil {
		return nil, err
	}

	s.deps.delay(ctx, latency.OpVote)

	var resp dto.PollResponse
	err := s.deps.Store.Update("vote_poll", func(st *store.State) error {
		poll, ok := st.Polls.Get(pollID)
		if !ok {
			return apperrors.NotFound(apperrors.ErrPollNotFound)
		}
		if poll.Closed {
			return apperrors.Conflict(apperrors.ErrPollClosed)
		}
		target := -1
		for i, o := range poll.Options {
			if o.ID == optionID {
				target = i
			}
		}
		if target < 0 {
			return apperrors.NewResourceNotFoundError("poll option not found")
		}

		retract := models.ContainsID(poll.Options[target].Voters, actorID)
		options := make([]models.PollOption, len(poll.Options))
		for i, o := range poll.Options {
			o.Voters = models.RemoveID(o.Voters, actorID)
			if i == target && !retract {
				o.Voters = models.AddID(o.Voters, actorID)
			}
			options[i] = o
		}
		poll.Options = options
		st.Polls.Replace(poll)

		resp = dto.NewPollResponse(poll, lookupIn(st), actorID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ClosePoll stops voting. Author or admin only.
func (s *pollServiceImpl) ClosePoll(ctx context.Context, actorID, pollID string) (*dto.PollResponse, error) {
	if _, err := s.deps.actor(actorID); err != nil {
		return nil, err
	}

	s.deps.delay(ctx, latency.OpVote)

	var resp dto.PollResponse
	err := s.deps.Store.Update("close_poll", func(st *store.State) error {
		actor, err := auth.ActorIn(st, actorID)
		if err != nil {
			return err
		}
		poll, ok := st.Polls.Get(pollID)
		if !ok {
			return apperrors.NotFound(apperrors.ErrPollNotFound)
		}
		if err := auth.ValidateOwnership(actor, poll.AuthorID); err != nil {
			return err
		}
		poll.Closed = true
		st.Polls.Replace(poll)
		resp = dto.NewPollResponse(poll, lookupIn(st), actorID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListPolls returns all polls, newest first
func (s *pollServiceImpl) ListPolls(ctx context.Context, viewerID string) ([]dto.PollResponse, error) {
	var out []dto.PollResponse
	s.deps.Store.View(func(st *store.State) {
		lookup := lookupIn(st)
		out = make([]dto.PollResponse, 0, st.Polls.Len())
		st.Polls.Each(func(p models.Poll) {
			out = append(out, dto.NewPollResponse(p, lookup, viewerID))
		})
	})
	return out, nil
}
