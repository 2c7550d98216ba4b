package websocket

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yigit/campusbuzz/internal/app/services"
	"github.com/yigit/campusbuzz/internal/app/toast"
)

// Client commands
const (
	CommandCloseToast       = "toast.close"
	CommandReadNotification = "notification.read"
	CommandReadAll          = "notification.read_all"
	CommandReadConversation = "conversation.read"
)

// MessageHandler applies client commands through the same services the
// HTTP API uses
type MessageHandler struct {
	notifications services.NotificationService
	messaging     services.MessagingService
	board         *toast.Board
	logger        zerolog.Logger
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(
	notifications services.NotificationService,
	messaging services.MessagingService,
	board *toast.Board,
	logger zerolog.Logger,
) *MessageHandler {
	return &MessageHandler{
		notifications: notifications,
		messaging:     messaging,
		board:         board,
		logger:        logger.With().Str("component", "websocket_commands").Logger(),
	}
}

// Attach registers the handler with hub
func (h *MessageHandler) Attach(hub *Hub) {
	hub.SetCommandHandler(h.Handle)
}

// Handle runs one command for userID
func (h *MessageHandler) Handle(ctx context.Context, userID string, msg ClientMessage) error {
	h.logger.Debug().Str("userID", userID).Str("type", msg.Type).Str("id", msg.ID).Msg("Client command")

	switch msg.Type {
	case CommandCloseToast:
		h.board.Close(userID)
		return nil
	case CommandReadNotification:
		_, err := h.notifications.MarkRead(ctx, userID, msg.ID)
		return err
	case CommandReadAll:
		_, err := h.notifications.MarkAllRead(ctx, userID)
		return err
	case CommandReadConversation:
		_, err := h.messaging.SelectConversation(ctx, userID, msg.ID)
		return err
	}
	return fmt.Errorf("unknown command %q", msg.Type)
}

// ToastEvents turns board transitions into push events
func ToastEvents(hub *Hub) toast.BoardListener {
	return func(recipientID string, s toast.Snapshot) {
		hub.SendToUser(recipientID, Event{Type: EventToast, Data: s})
	}
}
