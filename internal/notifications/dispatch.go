package notifications

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/albapepper/screen-nudge/internal/policy"
)

// Dispatcher sends notifications with a hard per-call timeout and bounded
// concurrency. It never returns delivery errors to the evaluation pass.
type Dispatcher struct {
	sender  Sender
	timeout time.Duration
	limit   int
	logger  *slog.Logger
}

// NewDispatcher wraps sender. Non-positive timeout or limit fall back to defaults.
func NewDispatcher(sender Sender, timeout time.Duration, limit int, logger *slog.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultDispatchTimeout
	}
	if limit < 1 {
		limit = defaultDispatchConcurrency
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{sender: sender, timeout: timeout, limit: limit, logger: logger}
}

// Send delivers one notification synchronously within the dispatch timeout.
func (d *Dispatcher) Send(ctx context.Context, n policy.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return d.sender.Send(ctx, n)
}

// Batch is the set of sends started during one tick.
type Batch struct {
	ctx    context.Context
	d      *Dispatcher
	g      errgroup.Group
	sent   atomic.Int64
	failed atomic.Int64
}

// NewBatch starts an empty batch. Sends inherit ctx.
func (d *Dispatcher) NewBatch(ctx context.Context) *Batch {
	b := &Batch{ctx: ctx, d: d}
	b.g.SetLimit(d.limit)
	return b
}

// Go sends n in the background. It blocks only while the batch is at its
// concurrency limit. done, if non-nil, runs once the attempt is resolved.
func (b *Batch) Go(n policy.Notification, done func()) {
	b.g.Go(func() error {
		if done != nil {
			defer done()
		}
		if err := b.d.Send(b.ctx, n); err != nil {
			b.failed.Add(1)
			b.d.logger.Warn("send failed", "token", n.Token, "title", n.Title, "error", err)
			return nil
		}
		b.sent.Add(1)
		return nil
	})
}

// Wait blocks until every send in the batch is resolved.
func (b *Batch) Wait() (sent, failed int) {
	_ = b.g.Wait()
	return int(b.sent.Load()), int(b.failed.Load())
}
