package latency

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSimulatedUsesOverrideThenDefault(t *testing.T) {
	d := NewSimulated(300*time.Millisecond, map[Op]time.Duration{OpCreatePost: time.Second})

	assert.Equal(t, time.Second, d.DurationFor(OpCreatePost))
	assert.Equal(t, 300*time.Millisecond, d.DurationFor(OpRSVP))
}

func TestSimulatedSkipsMarkedContext(t *testing.T) {
	var slept []time.Duration
	d := NewSimulated(500*time.Millisecond, nil)
	d.sleep = func(x time.Duration) { slept = append(slept, x) }

	d.Delay(SkipDelay(context.Background()), OpCreatePost)
	assert.Empty(t, slept)

	d.Delay(context.Background(), OpCreatePost)
	assert.Equal(t, []time.Duration{500 * time.Millisecond}, slept)
}

func TestSimulatedIgnoresCancellation(t *testing.T) {
	var slept int
	d := NewSimulated(100*time.Millisecond, nil)
	d.sleep = func(time.Duration) { slept++ }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Delay(ctx, OpSendMessage)

	assert.Equal(t, 1, slept, "a cancelled caller still waits out the delay")
}
