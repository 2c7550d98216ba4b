// Package simulator generates background campus activity: other users
// posting, listing items, sending friend requests and replying in chats.
//
// Every tick goes through the same services a user command would, so the
// resulting entities and notifications follow the same rules.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/campusbuzz/internal/app/services"
	"github.com/yigit/campusbuzz/internal/pkg/latency"
	"github.com/yigit/campusbuzz/internal/store"
)

// Task names one background activity
type Task string

const (
	TaskPosts          Task = "posts"
	TaskMarketplace    Task = "marketplace"
	TaskFriendRequests Task = "friend_requests"
	TaskMessages       Task = "messages"
)

// Tasks lists every task in start order
var Tasks = []Task{TaskPosts, TaskMarketplace, TaskFriendRequests, TaskMessages}

// DefaultIntervals are used for tasks without a configured interval
var DefaultIntervals = map[Task]time.Duration{
	TaskPosts:          18 * time.Second,
	TaskMarketplace:    31 * time.Second,
	TaskFriendRequests: 25 * time.Second,
	TaskMessages:       22 * time.Second,
}

// ErrNoCandidate is returned by Tick when the store offers nobody to act.
// The tick is skipped.
var ErrNoCandidate = errors.New("simulator: no eligible actor")

// ErrUnknownTask is returned by Tick for a task name it does not know
var ErrUnknownTask = errors.New("simulator: unknown task")

// Services are the command handlers the tasks drive
type Services struct {
	Posts       services.PostService
	Marketplace services.MarketplaceService
	Friends     services.FriendService
	Messaging   services.MessagingService
}

// Config controls which tasks run and how often. A zero or negative
// interval disables a task.
type Config struct {
	Seed      uint64
	Intervals map[Task]time.Duration
}

// Runner owns the task goroutines
type Runner struct {
	store     *store.Store
	svc       Services
	intervals map[Task]time.Duration
	logger    zerolog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// NewRunner creates a Runner. Missing intervals fall back to DefaultIntervals.
func NewRunner(st *store.Store, svc Services, cfg Config, logger zerolog.Logger) *Runner {
	intervals := make(map[Task]time.Duration, len(Tasks))
	for _, t := range Tasks {
		intervals[t] = DefaultIntervals[t]
		if d, ok := cfg.Intervals[t]; ok {
			intervals[t] = d
		}
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Runner{
		store:     st,
		svc:       svc,
		intervals: intervals,
		logger:    logger.With().Str("component", "simulator").Logger(),
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Start launches one goroutine per enabled task. Calling Start on a running
// Runner does nothing.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.running = true

	for _, task := range Tasks {
		interval := r.intervals[task]
		if interval <= 0 {
			r.logger.Info().Str("task", string(task)).Msg("Simulator task disabled")
			continue
		}
		r.wg.Add(1)
		go r.loop(ctx, task, interval)
	}
	r.logger.Info().Msg("Simulators started")
}

// Stop cancels every task and waits for them to exit
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.cancel()
	r.running = false
	r.mu.Unlock()

	r.wg.Wait()
	r.logger.Info().Msg("Simulators stopped")
}

func (r *Runner) loop(ctx context.Context, task Task, interval time.Duration) {
	defer r.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Tick(ctx, task); err != nil {
				if errors.Is(err, ErrNoCandidate) {
					r.logger.Debug().Str("task", string(task)).Msg("Simulator tick skipped")
					continue
				}
				r.logger.Warn().Err(err).Str("task", string(task)).Msg("Simulator tick failed")
			}
		}
	}
}

// Tick runs one iteration of task synchronously
func (r *Runner) Tick(ctx context.Context, task Task) error {
	ctx = latency.SkipDelay(ctx)
	switch task {
	case TaskPosts:
		return r.tickPost(ctx)
	case TaskMarketplace:
		return r.tickListing(ctx)
	case TaskFriendRequests:
		return r.tickFriendRequest(ctx)
	case TaskMessages:
		return r.tickMessage(ctx)
	}
	return fmt.Errorf("%w: %q", ErrUnknownTask, task)
}

func (r *Runner) intn(n int) int {
	r.rngMu.Lock()
	defer r.rngMu.Unlock()
	return r.rng.IntN(n)
}

func pick[T any](r *Runner, items []T) T {
	return items[r.intn(len(items))]
}
