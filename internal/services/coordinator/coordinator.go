// Package coordinator runs the four routing loops: the dispatcher, the
// agent queue drainer, the inactivity reaper and the shift supervisor.
//
// The loops are independent goroutines on fixed cadences sharing one
// cancellation context. They coordinate only through the session store, the
// per-agent state and a per-session keyed lock; no loop blocks on another.
package coordinator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/supporthub/chat-routing-service/internal/core/intake"
	"github.com/supporthub/chat-routing-service/internal/core/sessionstore"
	"github.com/supporthub/chat-routing-service/internal/pkg/keylock"
	"github.com/supporthub/chat-routing-service/internal/pkg/metrics"
	"github.com/supporthub/chat-routing-service/internal/services/matcher"
	"github.com/supporthub/chat-routing-service/internal/services/roster"
)

// Default loop cadences and thresholds.
const (
	DefaultDispatchInterval    = 1 * time.Second
	DefaultDrainInterval       = 1 * time.Second
	DefaultReapInterval        = 1 * time.Second
	DefaultShiftInterval       = 1 * time.Minute
	DefaultInactivityThreshold = 200 * time.Second
)

// Config holds the coordinator dependencies and tuning.
type Config struct {
	Store   sessionstore.Store
	Source  intake.Source
	Roster  *roster.Roster
	Matcher *matcher.Matcher
	Metrics *metrics.Recorder
	Logger  zerolog.Logger

	DispatchInterval    time.Duration
	DrainInterval       time.Duration
	ReapInterval        time.Duration
	ShiftInterval       time.Duration
	InactivityThreshold time.Duration

	// Clock overrides the wall clock in tests.
	Clock func() time.Time
}

// Coordinator owns the routing loops.
type Coordinator struct {
	store   sessionstore.Store
	source  intake.Source
	roster  *roster.Roster
	matcher *matcher.Matcher
	metrics *metrics.Recorder
	logger  zerolog.Logger

	dispatchInterval    time.Duration
	drainInterval       time.Duration
	reapInterval        time.Duration
	shiftInterval       time.Duration
	inactivityThreshold time.Duration

	now func() time.Time

	// locks serializes the read-then-write of a single session across
	// loops; the store has no compare-and-swap.
	locks *keylock.KeyLock

	wg sync.WaitGroup
}

// New creates a Coordinator. Nil dependencies are rejected; zero intervals
// fall back to the defaults.
func New(cfg *Config) (*Coordinator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if cfg.Source == nil {
		return nil, fmt.Errorf("intake source is required")
	}
	if cfg.Roster == nil {
		return nil, fmt.Errorf("roster is required")
	}
	if cfg.Matcher == nil {
		return nil, fmt.Errorf("matcher is required")
	}
	if cfg.Metrics == nil {
		return nil, fmt.Errorf("metrics recorder is required")
	}

	c := &Coordinator{
		store:               cfg.Store,
		source:              cfg.Source,
		roster:              cfg.Roster,
		matcher:             cfg.Matcher,
		metrics:             cfg.Metrics,
		logger:              cfg.Logger,
		dispatchInterval:    orDefault(cfg.DispatchInterval, DefaultDispatchInterval),
		drainInterval:       orDefault(cfg.DrainInterval, DefaultDrainInterval),
		reapInterval:        orDefault(cfg.ReapInterval, DefaultReapInterval),
		shiftInterval:       orDefault(cfg.ShiftInterval, DefaultShiftInterval),
		inactivityThreshold: orDefault(cfg.InactivityThreshold, DefaultInactivityThreshold),
		now:                 cfg.Clock,
		locks:               keylock.New(),
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c, nil
}

// Start launches the four loops. They run until ctx is cancelled.
func (c *Coordinator) Start(ctx context.Context) {
	c.wg.Add(4)
	go c.runLoop(ctx, "dispatcher", c.dispatchInterval, c.dispatchTick)
	go c.runLoop(ctx, "drainer", c.drainInterval, c.drainTick)
	go c.runLoop(ctx, "reaper", c.reapInterval, c.reapTick)
	go c.runLoop(ctx, "shift-supervisor", c.shiftInterval, c.shiftTick)
}

// Wait blocks until all loops have exited.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// runLoop runs tick on a fixed cadence until ctx is cancelled. A tick error
// or panic is logged and the loop proceeds to its normal delay; cancellation
// during the delay is a clean exit.
func (c *Coordinator) runLoop(ctx context.Context, name string, interval time.Duration, tick func(context.Context) error) {
	defer c.wg.Done()

	logger := c.logger.With().Str("loop", name).Logger()
	logger.Info().Dur("interval", interval).Msg("loop started")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("loop stopped")
			return
		default:
		}

		if err := c.safeTick(ctx, tick); err != nil {
			logger.Error().Err(err).Msg("tick failed")
		}

		select {
		case <-ctx.Done():
			logger.Info().Msg("loop stopped")
			return
		case <-ticker.C:
		}
	}
}

// safeTick converts a tick panic into an error so one bad iteration never
// terminates the loop.
func (c *Coordinator) safeTick(ctx context.Context, tick func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tick panicked: %v", r)
		}
	}()
	return tick(ctx)
}

func (c *Coordinator) lockSession(id uuid.UUID) func() {
	key := id.String()
	c.locks.Lock(key)
	return func() { c.locks.Unlock(key) }
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
