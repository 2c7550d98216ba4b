package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/campusbuzz/internal/app/auth"
	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/pkg/apperrors"
	"github.com/yigit/campusbuzz/internal/pkg/latency"
	"github.com/yigit/campusbuzz/internal/store"
)

// MessagingService defines the interface for chat operations
type MessagingService interface {
	CreateConversation(ctx context.Context, actorID string, req *dto.CreateConversationRequest) (*dto.ConversationResponse, error)
	SelectConversation(ctx context.Context, actorID, conversationID string) (*dto.ConversationResponse, error)
	SendMessage(ctx context.Context, actorID, conversationID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	ListConversations(ctx context.Context, actorID string) ([]dto.ConversationResponse, error)
	UnreadTotal(ctx context.Context, actorID string) (int, error)
}

// messagingServiceImpl implements MessagingService
type messagingServiceImpl struct {
	deps   *Deps
	logger zerolog.Logger
}

// NewMessagingService creates a new MessagingService
func NewMessagingService(deps *Deps) MessagingService {
	return &messagingServiceImpl{deps: deps, logger: deps.component("messaging_service")}
}

// CreateConversation opens a chat. For a 1:1 chat an existing conversation
// between the same two users is returned instead of a new one.
func (s *messagingServiceImpl) CreateConversation(ctx context.Context, actorID string, req *dto.CreateConversationRequest) (*dto.ConversationResponse, error) {
	s.logger.Debug().Str("actorID", actorID).Strs("participants", req.ParticipantIDs).Bool("group", req.IsGroup).Msg("Creating conversation")

	others := make([]string, 0, len(req.ParticipantIDs))
	for _, id := range req.ParticipantIDs {
		if id != actorID && !slices.Contains(others, id) {
			others = append(others, id)
		}
	}
	if len(others) == 0 {
		return nil, apperrors.NewBadRequestError("a conversation needs at least one other participant")
	}
	isGroup := req.IsGroup || len(others) > 1
	name := strings.TrimSpace(req.Name)
	if isGroup {
		if len(others) < 2 {
			return nil, apperrors.NewBadRequestError("a group conversation needs at least two other participants")
		}
		if name == "" {
			return nil, apperrors.NewBadRequestError("a group conversation needs a name")
		}
	}
	if _, err := s.deps.actor(actorID); err != nil {
		return nil, err
	}

	s.deps.delay(ctx, latency.OpCreateChat)

	var resp dto.ConversationResponse
	err := s.deps.Store.Update("create_conversation", func(st *store.State) error {
		if _, err := auth.ActorIn(st, actorID); err != nil {
			return err
		}
		for _, id := range others {
			if !st.Users.Has(id) {
				return apperrors.NotFound(apperrors.ErrUserNotFound)
			}
		}

		if !isGroup {
			if existing, ok := st.Conversations.Find(func(c models.Conversation) bool {
				return c.IsPair(actorID, others[0])
			}); ok {
				resp = dto.NewConversationResponse(existing, lookupIn(st), actorID, true)
				return nil
			}
		}

		participants := append([]string{actorID}, others...)
		unread := make(map[string]int, len(participants))
		for _, p := range participants {
			unread[p] = 0
		}
		conv := models.Conversation{
			ID:           s.deps.IDs.ID("conv"),
			Name:         name,
			Participants: participants,
			Messages:     []models.Message{},
			IsGroup:      isGroup,
			Unread:       unread,
			UpdatedAt:    s.deps.now(),
		}
		st.Conversations.Prepend(conv)
		resp = dto.NewConversationResponse(conv, lookupIn(st), actorID, true)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// SelectConversation opens a conversation and resets the actor's unread
// count to zero.
func (s *messagingServiceImpl) SelectConversation(ctx context.Context, actorID, conversationID string) (*dto.ConversationResponse, error) {
	s.logger.Debug().Str("actorID", actorID).Str("conversationID", conversationID).Msg("Selecting conversation")

	var resp dto.ConversationResponse
	err := s.deps.Store.Update("select_conversation", func(st *store.State) error {
		conv, ok := st.Conversations.Get(conversationID)
		if !ok {
			return apperrors.NotFound(apperrors.ErrConversationNotFound)
		}
		if !conv.HasParticipant(actorID) {
			return apperrors.NewCustomError(apperrors.ErrPermissionDenied, apperrors.ErrNotParticipant.Error())
		}
		if conv.UnreadFor(actorID) > 0 {
			conv = conv.MarkedRead(actorID)
			st.Conversations.Replace(conv)
		}
		resp = dto.NewConversationResponse(conv, lookupIn(st), actorID, true)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// SendMessage appends a message, bumps the unread count of every other
// participant and notifies them.
func (s *messagingServiceImpl) SendMessage(ctx context.Context, actorID, conversationID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	s.logger.Debug().Str("actorID", actorID).Str("conversationID", conversationID).Msg("Sending message")

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, apperrors.NewValidationError(apperrors.ErrEmptyContent)
	}
	if _, err := s.deps.actor(actorID); err != nil {
		return nil, err
	}

	s.deps.delay(ctx, latency.OpSendMessage)

	out := s.deps.newOutbox()
	var resp dto.MessageResponse
	err := s.deps.Store.Update("send_message", func(st *store.State) error {
		sender, err := auth.ActorIn(st, actorID)
		if err != nil {
			return err
		}
		conv, ok := st.Conversations.Get(conversationID)
		if !ok {
			return apperrors.NotFound(apperrors.ErrConversationNotFound)
		}
		if !conv.HasParticipant(actorID) {
			return apperrors.NewCustomError(apperrors.ErrPermissionDenied, apperrors.ErrNotParticipant.Error())
		}

		msg := models.Message{
			ID:        s.deps.IDs.ID("m"),
			SenderID:  sender.ID,
			Text:      text,
			Timestamp: s.deps.now(),
		}
		conv = conv.WithMessage(msg)
		st.Conversations.Replace(conv)

		for _, p := range conv.Participants {
			if p != sender.ID {
				out.push(st, p, models.NotificationMessage,
					fmt.Sprintf("%s: %s", sender.Name, truncate(text, 60)), conv.ID)
			}
		}
		resp = dto.NewMessageResponse(msg, lookupIn(st))
		return nil
	})
	if err != nil {
		return nil, err
	}
	out.flush(ctx)
	return &resp, nil
}

// ListConversations returns the actor's conversations, most recent activity
// first.
func (s *messagingServiceImpl) ListConversations(ctx context.Context, actorID string) ([]dto.ConversationResponse, error) {
	var out []dto.ConversationResponse
	s.deps.Store.View(func(st *store.State) {
		convs := st.Conversations.Filter(func(c models.Conversation) bool { return c.HasParticipant(actorID) })
		slices.SortStableFunc(convs, func(a, b models.Conversation) int {
			return b.UpdatedAt.Compare(a.UpdatedAt)
		})
		lookup := lookupIn(st)
		out = make([]dto.ConversationResponse, 0, len(convs))
		for _, c := range convs {
			out = append(out, dto.NewConversationResponse(c, lookup, actorID, false))
		}
	})
	return out, nil
}

// UnreadTotal sums the actor's unread counts across conversations
func (s *messagingServiceImpl) UnreadTotal(ctx context.Context, actorID string) (int, error) {
	total := 0
	s.deps.Store.View(func(st *store.State) {
		st.Conversations.Each(func(c models.Conversation) {
			total += c.UnreadFor(actorID)
		})
	})
	return total, nil
}
