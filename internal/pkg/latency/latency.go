// Package latency simulates the fixed network delay that every command
// handler waits out before it mutates the store.
package latency

import (
	"context"
	"time"
)

// Op names a command for per-operation delay overrides.
type Op string

type skipKey struct{}

// SkipDelay marks ctx so that Delayers return immediately. Background
// simulators use it; their ticks apply without a loading affordance.
func SkipDelay(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipKey{}, true)
}

func skipped(ctx context.Context) bool {
	v, _ := ctx.Value(skipKey{}).(bool)
	return v
}

// Delayer waits out the simulated latency of an operation.
//
// Delay deliberately ignores ctx cancellation: a caller that goes away while
// the delay is pending still gets its mutation applied afterwards.
type Delayer interface {
	Delay(ctx context.Context, op Op)
}

// None never waits. Used by tests and when latency is disabled.
type None struct{}

// Delay implements Delayer.
func (None) Delay(context.Context, Op) {}

// Simulated sleeps for a per-operation duration.
type Simulated struct {
	Default    time.Duration
	Operations map[Op]time.Duration
	// sleep is swapped in tests
	sleep func(time.Duration)
}

// NewSimulated creates a Simulated delayer. Overrides may be nil.
func NewSimulated(def time.Duration, overrides map[Op]time.Duration) *Simulated {
	ops := make(map[Op]time.Duration, len(overrides))
	for k, v := range overrides {
		ops[k] = v
	}
	return &Simulated{Default: def, Operations: ops, sleep: time.Sleep}
}

// DurationFor returns the configured delay for op.
func (s *Simulated) DurationFor(op Op) time.Duration {
	if d, ok := s.Operations[op]; ok {
		return d
	}
	return s.Default
}

// Delay implements Delayer.
func (s *Simulated) Delay(ctx context.Context, op Op) {
	if skipped(ctx) {
		return
	}
	d := s.DurationFor(op)
	if d <= 0 {
		return
	}
	sleep := s.sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	sleep(d)
}
