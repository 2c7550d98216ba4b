// Package toast implements the transient popup that announces the most
// recent notification.
//
// A Presenter moves through hidden -> visible -> fading -> hidden. Only one
// toast exists at a time: showing a new one replaces the old one and restarts
// its timers.
package toast

import (
	"sync"
	"time"

	"github.com/yigit/campusbuzz/internal/app/models"
)

// Phase is the lifecycle stage of the toast
type Phase string

const (
	Hidden  Phase = "hidden"
	Visible Phase = "visible"
	Fading  Phase = "fading"
)

// Default timings
const (
	DefaultDisplay = 5 * time.Second
	DefaultFade    = 300 * time.Millisecond
)

// Timer is the part of *time.Timer the presenter needs
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it after wrapping.
type AfterFunc func(d time.Duration, f func()) Timer

// RealAfterFunc schedules with time.AfterFunc
func RealAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Snapshot is the observable toast state. Generation grows with every Show,
// so a consumer can drop frames older than the last one it applied.
type Snapshot struct {
	Phase        Phase                `json:"phase"`
	Notification *models.Notification `json:"notification,omitempty"`
	Generation   uint64               `json:"generation"`
}

// Listener receives every phase transition, in the order the transitions
// happened. It must not call back into the presenter.
type Listener func(Snapshot)

// Presenter is the single-instance toast state machine
type Presenter struct {
	mu         sync.Mutex
	emitMu     sync.Mutex
	phase      Phase
	current    *models.Notification
	generation uint64
	timer      Timer

	display   time.Duration
	fade      time.Duration
	afterFunc AfterFunc
	listener  Listener
}

// NewPresenter creates a hidden presenter. afterFunc and listener may be nil.
func NewPresenter(display, fade time.Duration, afterFunc AfterFunc, listener Listener) *Presenter {
	if display <= 0 {
		display = DefaultDisplay
	}
	if fade <= 0 {
		fade = DefaultFade
	}
	if afterFunc == nil {
		afterFunc = RealAfterFunc
	}
	return &Presenter{
		phase:     Hidden,
		display:   display,
		fade:      fade,
		afterFunc: afterFunc,
		listener:  listener,
	}
}

// Show makes n the visible toast, replacing whatever was shown before.
func (p *Presenter) Show(n models.Notification) {
	p.mu.Lock()
	p.stopTimerLocked()
	p.generation++
	gen := p.generation
	p.current = &n
	p.phase = Visible
	p.timer = p.afterFunc(p.display, func() { p.beginFade(gen) })
	p.emitLocked(p.snapshotLocked())
}

// Close starts fading the visible toast. It does nothing unless visible.
func (p *Presenter) Close() {
	p.mu.Lock()
	gen := p.generation
	p.mu.Unlock()
	p.beginFade(gen)
}

// Current returns the toast state
func (p *Presenter) Current() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *Presenter) beginFade(gen uint64) {
	p.mu.Lock()
	if gen != p.generation || p.phase != Visible {
		p.mu.Unlock()
		return
	}
	p.stopTimerLocked()
	p.phase = Fading
	p.timer = p.afterFunc(p.fade, func() { p.finish(gen) })
	p.emitLocked(p.snapshotLocked())
}

func (p *Presenter) finish(gen uint64) {
	p.mu.Lock()
	if gen != p.generation || p.phase != Fading {
		p.mu.Unlock()
		return
	}
	p.phase = Hidden
	p.current = nil
	p.timer = nil
	p.emitLocked(p.snapshotLocked())
}

func (p *Presenter) stopTimerLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

func (p *Presenter) snapshotLocked() Snapshot {
	s := Snapshot{Phase: p.phase, Generation: p.generation}
	if p.current != nil {
		n := *p.current
		s.Notification = &n
	}
	return s
}

// emitLocked releases mu and delivers s. emitMu is taken before mu is
// released, so listeners see transitions in the order they were made.
func (p *Presenter) emitLocked(s Snapshot) {
	p.emitMu.Lock()
	p.mu.Unlock()
	defer p.emitMu.Unlock()

	if p.listener != nil {
		p.listener(s)
	}
}
