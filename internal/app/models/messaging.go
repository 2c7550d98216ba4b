package models

import (
	"slices"
	"time"
)

// Message is one chat line in a conversation
type Message struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"senderId"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is a 1:1 or group chat. Unread holds an unread count per
// participant.
type Conversation struct {
	ID           string         `json:"id"`
	Name         string         `json:"name,omitempty"`
	Participants []string       `json:"participants"`
	Messages     []Message      `json:"messages"`
	IsGroup      bool           `json:"isGroup"`
	Unread       map[string]int `json:"-"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// GetID implements Entity
func (c Conversation) GetID() string { return c.ID }

// UnreadFor returns the unread count of one participant
func (c Conversation) UnreadFor(userID string) int {
	return c.Unread[userID]
}

// HasParticipant reports whether userID takes part in c
func (c Conversation) HasParticipant(userID string) bool {
	return slices.Contains(c.Participants, userID)
}

// IsPair reports whether c is the 1:1 conversation between a and b
func (c Conversation) IsPair(a, b string) bool {
	if c.IsGroup || len(c.Participants) != 2 {
		return false
	}
	return c.HasParticipant(a) && c.HasParticipant(b)
}

// WithMessage returns a copy of c with m appended and the unread count of
// every participant except the sender incremented.
func (c Conversation) WithMessage(m Message) Conversation {
	msgs := make([]Message, 0, len(c.Messages)+1)
	msgs = append(msgs, c.Messages...)
	c.Messages = append(msgs, m)

	unread := make(map[string]int, len(c.Participants))
	for _, p := range c.Participants {
		unread[p] = c.Unread[p]
		if p != m.SenderID {
			unread[p]++
		}
	}
	c.Unread = unread
	c.UpdatedAt = m.Timestamp
	return c
}

// MarkedRead returns a copy of c with userID's unread count reset to zero
func (c Conversation) MarkedRead(userID string) Conversation {
	unread := make(map[string]int, len(c.Unread))
	for k, v := range c.Unread {
		unread[k] = v
	}
	unread[userID] = 0
	c.Unread = unread
	return c
}

// LastMessage returns the most recent message, if any
func (c Conversation) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}
