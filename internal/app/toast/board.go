package toast

import (
	"sync"
	"time"

	"github.com/yigit/campusbuzz/internal/app/models"
)

// BoardListener receives transitions of any recipient's toast
type BoardListener func(recipientID string, s Snapshot)

// Board keeps one Presenter per recipient
type Board struct {
	mu         sync.Mutex
	presenters map[string]*Presenter
	display    time.Duration
	fade       time.Duration
	afterFunc  AfterFunc
	listener   BoardListener
}

// NewBoard creates an empty board. afterFunc may be nil.
func NewBoard(display, fade time.Duration, afterFunc AfterFunc) *Board {
	return &Board{
		presenters: make(map[string]*Presenter),
		display:    display,
		fade:       fade,
		afterFunc:  afterFunc,
	}
}

// SetListener registers the transition listener. Call it before the first
// Show.
func (b *Board) SetListener(l BoardListener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listener = l
}

// For returns the presenter of a recipient, creating it on first use
func (b *Board) For(recipientID string) *Presenter {
	b.mu.Lock()
	defer b.mu.Unlock()

	if p, ok := b.presenters[recipientID]; ok {
		return p
	}
	listener := b.listener
	p := NewPresenter(b.display, b.fade, b.afterFunc, func(s Snapshot) {
		if listener != nil {
			listener(recipientID, s)
		}
	})
	b.presenters[recipientID] = p
	return p
}

// Show displays n to its recipient
func (b *Board) Show(n models.Notification) {
	b.For(n.RecipientID).Show(n)
}

// Current returns the toast state of a recipient
func (b *Board) Current(recipientID string) Snapshot {
	return b.For(recipientID).Current()
}

// Close starts fading a recipient's toast
func (b *Board) Close(recipientID string) {
	b.For(recipientID).Close()
}
