package dto

import (
	"time"

	"github.com/yigit/campusbuzz/internal/app/models"
)

// CreateConversationRequest opens a chat. A single participant makes a 1:1
// conversation, which is reused if it already exists.
type CreateConversationRequest struct {
	ParticipantIDs []string `json:"participantIds" binding:"required,min=1,dive,required"`
	Name           string   `json:"name" binding:"max=120"`
	IsGroup        bool     `json:"isGroup"`
}

// SendMessageRequest posts a chat line
type SendMessageRequest struct {
	Text string `json:"text" binding:"required,notblank,max=4000"`
}

// MessageResponse is a message with its sender resolved
type MessageResponse struct {
	ID        string      `json:"id"`
	Sender    UserSummary `json:"sender"`
	Text      string      `json:"text"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewMessageResponse resolves a message
func NewMessageResponse(m models.Message, lookup UserLookup) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Sender:    Summarize(lookup, m.SenderID),
		Text:      m.Text,
		Timestamp: m.Timestamp,
	}
}

// ConversationResponse is a conversation seen by one participant
type ConversationResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name,omitempty"`
	Participants []UserSummary     `json:"participants"`
	Messages     []MessageResponse `json:"messages,omitempty"`
	LastMessage  *MessageResponse  `json:"lastMessage,omitempty"`
	IsGroup      bool              `json:"isGroup"`
	UnreadCount  int               `json:"unreadCount"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// NewConversationResponse resolves c for viewerID. withMessages controls
// whether the full history is included.
func NewConversationResponse(c models.Conversation, lookup UserLookup, viewerID string, withMessages bool) ConversationResponse {
	resp := ConversationResponse{
		ID:           c.ID,
		Name:         c.Name,
		Participants: SummarizeAll(lookup, c.Participants),
		IsGroup:      c.IsGroup,
		UnreadCount:  c.UnreadFor(viewerID),
		UpdatedAt:    c.UpdatedAt,
	}
	if last, ok := c.LastMessage(); ok {
		m := NewMessageResponse(last, lookup)
		resp.LastMessage = &m
	}
	if withMessages {
		resp.Messages = make([]MessageResponse, 0, len(c.Messages))
		for _, m := range c.Messages {
			resp.Messages = append(resp.Messages, NewMessageResponse(m, lookup))
		}
	}
	return resp
}
