package toast

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/campusbuzz/internal/app/models"
)

// manualClock records scheduled callbacks so tests can fire them by hand.
type manualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// fire runs the i-th scheduled callback even if it was stopped, to model a
// timer that already fired while being replaced.
func (c *manualClock) fire(i int) {
	c.mu.Lock()
	t := c.timers[i]
	c.mu.Unlock()
	t.f()
}

func (c *manualClock) last() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers) - 1
}

func note(id string) models.Notification {
	return models.Notification{ID: id, RecipientID: "u1", Text: "hello " + id}
}

func TestPresenterLifecycle(t *testing.T) {
	clock := &manualClock{}
	var phases []Phase
	p := NewPresenter(5*time.Second, 300*time.Millisecond, clock.AfterFunc, func(s Snapshot) {
		phases = append(phases, s.Phase)
	})

	assert.Equal(t, Hidden, p.Current().Phase)

	p.Show(note("n1"))
	require.Equal(t, Visible, p.Current().Phase)
	assert.Equal(t, 5*time.Second, clock.timers[0].d)

	clock.fire(0)
	assert.Equal(t, Fading, p.Current().Phase)
	assert.Equal(t, 300*time.Millisecond, clock.timers[1].d)

	clock.fire(1)
	assert.Equal(t, Hidden, p.Current().Phase)
	assert.Nil(t, p.Current().Notification)

	assert.Equal(t, []Phase{Visible, Fading, Hidden}, phases)
}

func TestPresenterCloseFadesEarly(t *testing.T) {
	clock := &manualClock{}
	p := NewPresenter(0, 0, clock.AfterFunc, nil)

	p.Show(note("n1"))
	p.Close()
	assert.Equal(t, Fading, p.Current().Phase)
	assert.True(t, clock.timers[0].stopped, "auto-dismiss timer is cancelled on close")

	// Closing again while fading is a no-op.
	p.Close()
	assert.Equal(t, 2, len(clock.timers))
}

func TestSecondShowReplacesFirst(t *testing.T) {
	clock := &manualClock{}
	p := NewPresenter(0, 0, clock.AfterFunc, nil)

	p.Show(note("n1"))
	p.Show(note("n2"))

	cur := p.Current()
	require.NotNil(t, cur.Notification)
	assert.Equal(t, "n2", cur.Notification.ID)
	assert.Equal(t, Visible, cur.Phase)

	// The first toast's timer firing late must not dismiss the second.
	clock.fire(0)
	assert.Equal(t, Visible, p.Current().Phase)
	assert.Equal(t, "n2", p.Current().Notification.ID)

	clock.fire(clock.last())
	assert.Equal(t, Fading, p.Current().Phase)
}

func TestShowDuringFadeRestarts(t *testing.T) {
	clock := &manualClock{}
	p := NewPresenter(0, 0, clock.AfterFunc, nil)

	p.Show(note("n1"))
	clock.fire(0)
	require.Equal(t, Fading, p.Current().Phase)
	fadeTimer := clock.last()

	p.Show(note("n2"))
	clock.fire(fadeTimer)
	assert.Equal(t, Visible, p.Current().Phase)
	assert.Equal(t, "n2", p.Current().Notification.ID)
}

func TestBoardKeepsOnePresenterPerRecipient(t *testing.T) {
	clock := &manualClock{}
	b := NewBoard(0, 0, clock.AfterFunc)
	var seen []string
	b.SetListener(func(recipientID string, s Snapshot) {
		seen = append(seen, recipientID+":"+string(s.Phase))
	})

	b.Show(models.Notification{ID: "a", RecipientID: "u1"})
	b.Show(models.Notification{ID: "b", RecipientID: "u2"})

	assert.Equal(t, "a", b.Current("u1").Notification.ID)
	assert.Equal(t, "b", b.Current("u2").Notification.ID)
	assert.Equal(t, Hidden, b.Current("u3").Phase)
	assert.Equal(t, []string{"u1:visible", "u2:visible"}, seen)
}

func TestSnapshotsCarryGeneration(t *testing.T) {
	clock := &manualClock{}
	var frames []Snapshot
	p := NewPresenter(0, 0, clock.AfterFunc, func(s Snapshot) {
		frames = append(frames, s)
	})

	p.Show(note("n1"))
	p.Show(note("n2"))
	clock.fire(0) // stale timer of n1
	clock.fire(clock.last())

	require.Len(t, frames, 3, "the stale timer emits nothing")
	assert.Equal(t, uint64(1), frames[0].Generation)
	assert.Equal(t, uint64(2), frames[1].Generation)
	assert.Equal(t, Fading, frames[2].Phase)
	assert.Equal(t, uint64(2), frames[2].Generation)
	assert.Equal(t, uint64(2), p.Current().Generation)
}

func TestListenerSeesTransitionsInOrder(t *testing.T) {
	clock := &manualClock{}
	var (
		mu     sync.Mutex
		frames []Snapshot
	)
	p := NewPresenter(0, 0, clock.AfterFunc, func(s Snapshot) {
		mu.Lock()
		frames = append(frames, s)
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				p.Show(note("n"))
				p.Close()
			}
		}()
	}
	wg.Wait()

	require.NotEmpty(t, frames)
	for i := 1; i < len(frames); i++ {
		prev, cur := frames[i-1], frames[i]
		require.GreaterOrEqual(t, cur.Generation, prev.Generation, "frame %d went back in time", i)
		if cur.Generation == prev.Generation {
			assert.Equal(t, Visible, prev.Phase, "frame %d", i)
			assert.Equal(t, Fading, cur.Phase, "frame %d", i)
		}
	}
	last := frames[len(frames)-1]
	assert.Equal(t, p.Current().Phase, last.Phase)
	assert.Equal(t, p.Current().Generation, last.Generation)
	assert.Equal(t, uint64(400), last.Generation)
}
