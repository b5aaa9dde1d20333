package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"

	"github.com/albapepper/screen-nudge/internal/policy"
	"github.com/albapepper/screen-nudge/internal/users"
)

// TickSummary describes one evaluation pass.
type TickSummary struct {
	At            time.Time     `json:"at"`
	Users         int           `json:"users"`
	Notifications int           `json:"notifications"`
	Failures      int           `json:"failures"`
	Duration      time.Duration `json:"duration_ns"`
}

// Engine evaluates every user's policies once per tick and hands the
// resulting notifications to the dispatcher. Passes never overlap.
type Engine struct {
	registry   *users.Registry
	evaluators []policy.Evaluator
	dispatcher *Dispatcher
	clock      clockwork.Clock
	loc        *time.Location
	logger     *slog.Logger

	tickMu   sync.Mutex
	// inflight tracks unresolved sends per token; guarded by tickMu.
	inflight map[string]*sync.WaitGroup

	lastMu sync.RWMutex
	last   TickSummary
}

// NewEngine wires the engine. loc is the zone policy hours are read in.
func NewEngine(
	registry *users.Registry,
	evaluators []policy.Evaluator,
	dispatcher *Dispatcher,
	clock clockwork.Clock,
	loc *time.Location,
	logger *slog.Logger,
) *Engine {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		registry:   registry,
		evaluators: evaluators,
		dispatcher: dispatcher,
		clock:      clock,
		loc:        loc,
		logger:     logger,
		inflight:   make(map[string]*sync.WaitGroup),
	}
}

// Run schedules Tick on the cron expression and blocks until ctx is
// cancelled, then waits for a running pass to finish. Intended to be called
// with `go`.
func (e *Engine) Run(ctx context.Context, schedule string) error {
	logger := cronLogger{e.logger}
	c := cron.New(
		cron.WithLocation(e.loc),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	if _, err := c.AddFunc(schedule, func() { e.runTick(ctx) }); err != nil {
		return fmt.Errorf("schedule tick %q: %w", schedule, err)
	}

	c.Start()
	e.logger.Info("Notification engine started", "schedule", schedule, "timezone", e.loc.String())

	<-ctx.Done()
	<-c.Stop().Done()
	e.logger.Info("Notification engine stopped")
	return nil
}

func (e *Engine) runTick(ctx context.Context) {
	batch := e.Tick(ctx)
	go func() {
		sent, failed := batch.Wait()
		if sent+failed > 0 {
			e.logger.Info("dispatch batch", "sent", sent, "failed", failed)
		}
	}()
}

// Tick runs one full evaluation pass at the clock's current time and returns
// the batch of sends it started. It does not wait for delivery.
func (e *Engine) Tick(ctx context.Context) *Batch {
	e.tickMu.Lock()
	defer e.tickMu.Unlock()

	start := e.clock.Now()
	now := start.In(e.loc)
	batch := e.dispatcher.NewBatch(ctx)
	summary := TickSummary{At: now}

	for _, token := range e.registry.Tokens() {
		// A user's previous sends must resolve before their state moves again.
		if wg := e.inflight[token]; wg != nil {
			wg.Wait()
		}

		out, err := e.evaluateUser(token, now)
		summary.Users++
		if err != nil {
			summary.Failures++
			e.logger.Error("evaluate user failed", "token", token, "error", err)
			continue
		}
		if len(out) == 0 {
			continue
		}

		wg := e.inflight[token]
		if wg == nil {
			wg = &sync.WaitGroup{}
			e.inflight[token] = wg
		}
		for _, n := range out {
			wg.Add(1)
			batch.Go(n, wg.Done)
			summary.Notifications++
		}
	}

	summary.Duration = e.clock.Since(start)
	e.lastMu.Lock()
	e.last = summary
	e.lastMu.Unlock()

	if summary.Notifications > 0 || summary.Failures > 0 {
		e.logger.Info("Tick complete",
			"users", summary.Users,
			"notifications", summary.Notifications,
			"failures", summary.Failures,
			"duration", summary.Duration)
	}
	return batch
}

// evaluateUser runs every evaluator in order under the user's lock. A panic
// discards the whole evaluation for that user.
func (e *Engine) evaluateUser(token string, now time.Time) (out []policy.Notification, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	err = e.registry.Update(token, func(s users.State) users.State {
		for _, ev := range e.evaluators {
			var n *policy.Notification
			s, n = ev.Evaluate(s, now)
			if n != nil {
				out = append(out, *n)
			}
		}
		return s
	})
	return out, err
}

// LastTick returns the summary of the most recent pass.
func (e *Engine) LastTick() TickSummary {
	e.lastMu.RLock()
	defer e.lastMu.RUnlock()
	return e.last
}

// cronLogger routes robfig/cron's logging through slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
