package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/yigit/campusbuzz/internal/app/auth"
	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/pkg/apperrors"
	"github.com/yigit/campusbuzz/internal/pkg/latency"
	"github.com/yigit/campusbuzz/internal/store"
)

// FriendService defines the interface for friendship operations
type FriendService interface {
	SendFriendRequest(ctx context.Context, actorID, toUserID string) (*dto.FriendRequestResponse, error)
	CancelFriendRequest(ctx context.Context, actorID, requestID string) error
	AcceptFriendRequest(ctx context.Context, actorID, requestID string) (*dto.UserSummary, error)
	DeclineFriendRequest(ctx context.Context, actorID, requestID string) error
	Unfriend(ctx context.Context, actorID, friendID string) error
	ListRequests(ctx context.Context, userID string) (*dto.FriendRequestsResponse, error)
	ListFriends(ctx context.Context, userID string) ([]dto.UserSummary, error)
	Suggestions(ctx context.Context, userID string, limit int) ([]dto.UserSummary, error)
}

// friendServiceImpl implements FriendService
type friendServiceImpl struct {
	deps   *Deps
	logger zerolog.Logger
}

// NewFriendService creates a new FriendService
func NewFriendService(deps *Deps) FriendService {
	return &friendServiceImpl{deps: deps, logger: deps.component("friend_service")}
}

// SendFriendRequest creates a pending request and notifies the recipient
func (s *friendServiceImpl) SendFriendRequest(ctx context.Context, actorID, toUserID string) (*dto.FriendRequestResponse, error) {
	s.logger.Debug().Str("fromUserID", actorID).Str("toUserID", toUserID).Msg("Sending friend request")

	if actorID == toUserID {
		return nil, apperrors.NewValidationError(apperrors.ErrSelfFriendRequest)
	}
	if _, err := s.deps.actor(actorID); err != nil {
		return nil, err
	}

	s.deps.delay(ctx, latency.OpSendFriendRequest)

	out := s.deps.newOutbox()
	var resp dto.FriendRequestResponse
	err := s.deps.Store.Update("send_friend_request", func(st *store.State) error {
		from, err := auth.ActorIn(st, actorID)
		if err != nil {
			return err
		}
		if !st.Users.Has(toUserID) {
			return apperrors.NotFound(apperrors.ErrUserNotFound)
		}
		if models.ContainsID(from.Friends, toUserID) {
			return apperrors.Conflict(apperrors.ErrAlreadyFriends)
		}
		if pendingFriendRequest(st, actorID, toUserID) {
			return apperrors.Conflict(apperrors.ErrFriendRequestPending)
		}

		req := models.FriendRequest{
			ID:         s.deps.IDs.ID("fr"),
			FromUserID: actorID,
			ToUserID:   toUserID,
			Status:     models.FriendRequestPending,
			CreatedAt:  s.deps.now(),
		}
		st.FriendRequests.Prepend(req)
		out.push(st, toUserID, models.NotificationFriendRequest,
			fmt.Sprintf("%s sent you a friend request", from.Name), req.ID)

		resp = dto.NewFriendRequestResponse(req, lookupIn(st))
		return nil
	})
	if err != nil {
		return nil, err
	}
	out.flush(ctx)

	s.logger.Info().Str("requestID", resp.ID).Msg("Friend request sent")
	return &resp, nil
}

// CancelFriendRequest withdraws a request the actor sent
func (s *friendServiceImpl) CancelFriendRequest(ctx context.Context, actorID, requestID string) error {
	s.logger.Debug().Str("actorID", actorID).Str("requestID", requestID).Msg("Cancelling friend request")

	if _, err := s.deps.actor(actorID); err != nil {
		return err
	}

	s.deps.delay(ctx, latency.OpAnswerFriend)

	return s.deps.Store.Update("cancel_friend_request", func(st *store.State) error {
		req, ok := st.FriendRequests.Get(requestID)
		if !ok {
			return apperrors.NotFound(apperrors.ErrFriendRequestNotFound)
		}
		if req.FromUserID != actorID {
			return apperrors.ErrPermissionDenied
		}
		st.FriendRequests.Remove(requestID)
		return nil
	})
}

// AcceptFriendRequest makes both users friends and removes the request. The
// sender is notified. Returns the new friend.
func (s *friendServiceImpl) AcceptFriendRequest(ctx context.Context, actorID, requestID string) (*dto.UserSummary, error) {
	s.logger.Debug().Str("actorID", actorID).Str("requestID", requestID).Msg("Accepting friend request")

	if _, err := s.deps.actor(actorID); err != nil {
		return nil, err
	}

	s.deps.delay(ctx, latency.OpAnswerFriend)

	out := s.deps.newOutbox()
	var friend dto.UserSummary
	err := s.deps.Store.Update("accept_friend_request", func(st *store.State) error {
		me, err := auth.ActorIn(st, actorID)
		if err != nil {
			return err
		}
		req, ok := st.FriendRequests.Get(requestID)
		if !ok {
			return apperrors.NotFound(apperrors.ErrFriendRequestNotFound)
		}
		if req.ToUserID != actorID {
			return apperrors.ErrPermissionDenied
		}
		sender, ok := st.Users.Get(req.FromUserID)
		if !ok {
			return apperrors.NotFound(apperrors.ErrUserNotFound)
		}

		me.Friends = models.AddID(me.Friends, sender.ID)
		sender.Friends = models.AddID(sender.Friends, me.ID)
		st.Users.Replace(me)
		st.Users.Replace(sender)
		st.FriendRequests.Remove(requestID)

		out.push(st, sender.ID, models.NotificationFriendAccept,
			fmt.Sprintf("%s accepted your friend request", me.Name), me.ID)
		friend = dto.NewUserSummary(sender)
		return nil
	})
	if err != nil {
		return nil, err
	}
	out.flush(ctx)

	s.logger.Info().Str("userID", actorID).Str("friendID", friend.ID).Msg("Friend request accepted")
	return &friend, nil
}

// DeclineFriendRequest removes a request addressed to the actor
func (s *friendServiceImpl) DeclineFriendRequest(ctx context.Context, actorID, requestID string) error {
	s.logger.Debug().Str("actorID", actorID).Str("requestID", requestID).Msg("Declining friend request")

	if _, err := s.deps.actor(actorID); err != nil {
		return err
	}

	s.deps.delay(ctx, latency.OpAnswerFriend)

	return s.deps.Store.Update("decline_friend_request", func(st *store.State) error {
		req, ok := st.FriendRequests.Get(requestID)
		if !ok {
			return apperrors.NotFound(apperrors.ErrFriendRequestNotFound)
		}
		if req.ToUserID != actorID {
			return apperrors.ErrPermissionDenied
		}
		st.FriendRequests.Remove(requestID)
		return nil
	})
}

// Unfriend removes the friendship on both sides
func (s *friendServiceImpl) Unfriend(ctx context.Context, actorID, friendID string) error {
	s.logger.Debug().Str("actorID", actorID).Str("friendID", friendID).Msg("Removing friend")

	if _, err := s.deps.actor(actorID); err != nil {
		return err
	}

	s.deps.delay(ctx, latency.OpUnfriend)

	return s.deps.Store.Update("unfriend", func(st *store.State) error {
		me, err := auth.ActorIn(st, actorID)
		if err != nil {
			return err
		}
		other, ok := st.Users.Get(friendID)
		if !ok {
			return apperrors.NotFound(apperrors.ErrUserNotFound)
		}
		me.Friends = models.RemoveID(me.Friends, other.ID)
		other.Friends = models.RemoveID(other.Friends, me.ID)
		st.Users.Replace(me)
		st.Users.Replace(other)
		return nil
	})
}

// ListRequests returns the pending requests addressed to and sent by userID
func (s *friendServiceImpl) ListRequests(ctx context.Context, userID string) (*dto.FriendRequestsResponse, error) {
	resp := &dto.FriendRequestsResponse{
		Incoming: []dto.FriendRequestResponse{},
		Outgoing: []dto.FriendRequestResponse{},
	}
	s.deps.Store.View(func(st *store.State) {
		lookup := lookupIn(st)
		st.FriendRequests.Each(func(r models.FriendRequest) {
			switch userID {
			case r.ToUserID:
				resp.Incoming = append(resp.Incoming, dto.NewFriendRequestResponse(r, lookup))
			case r.FromUserID:
				resp.Outgoing = append(resp.Outgoing, dto.NewFriendRequestResponse(r, lookup))
			}
		})
	})
	return resp, nil
}

// ListFriends returns userID's friends
func (s *friendServiceImpl) ListFriends(ctx context.Context, userID string) ([]dto.UserSummary, error) {
	var (
		out []dto.UserSummary
		ok  bool
	)
	s.deps.Store.View(func(st *store.State) {
		var u models.User
		if u, ok = st.Users.Get(userID); ok {
			out = dto.SummarizeAll(lookupIn(st), u.Friends)
		}
	})
	if !ok {
		return nil, apperrors.NotFound(apperrors.ErrUserNotFound)
	}
	return out, nil
}

// Suggestions lists users who are neither friends nor involved in a pending
// request with userID, ranked by mutual friends.
func (s *friendServiceImpl) Suggestions(ctx context.Context, userID string, limit int) ([]dto.UserSummary, error) {
	if limit <= 0 {
		limit = 5
	}
	var (
		out []dto.UserSummary
		ok  bool
	)
	s.deps.Store.View(func(st *store.State) {
		var me models.User
		if me, ok = st.Users.Get(userID); !ok {
			return
		}
		type candidate struct {
			user   models.User
			mutual int
		}
		var cands []candidate
		st.Users.Each(func(u models.User) {
			if u.ID == me.ID || !u.IsActive() || models.ContainsID(me.Friends, u.ID) || pendingFriendRequest(st, me.ID, u.ID) {
				return
			}
			mutual := 0
			for _, f := range u.Friends {
				if models.ContainsID(me.Friends, f) {
					mutual++
				}
			}
			cands = append(cands, candidate{user: u, mutual: mutual})
		})
		slices.SortStableFunc(cands, func(a, b candidate) int { return b.mutual - a.mutual })
		out = make([]dto.UserSummary, 0, limit)
		for i := 0; i < len(cands) && i < limit; i++ {
			out = append(out, dto.NewUserSummary(cands[i].user))
		}
	})
	if !ok {
		return nil, apperrors.NotFound(apperrors.ErrUserNotFound)
	}
	return out, nil
}

func pendingFriendRequest(st *store.State, a, b string) bool {
	_, found := st.FriendRequests.Find(func(r models.FriendRequest) bool {
		return r.Involves(a, b)
	})
	return found
}
