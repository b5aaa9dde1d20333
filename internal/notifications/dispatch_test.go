package notifications

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/albapepper/screen-nudge/internal/policy"
)

// fakeSender records every notification and fails for tokens in failFor.
type fakeSender struct {
	mu      sync.Mutex
	sent    []policy.Notification
	failFor map[string]bool
	block   chan struct{}
	active  atomic.Int32
	peak    atomic.Int32
}

func (f *fakeSender) Send(ctx context.Context, n policy.Notification) error {
	cur := f.active.Add(1)
	defer f.active.Add(-1)
	for {
		p := f.peak.Load()
		if cur <= p || f.peak.CompareAndSwap(p, cur) {
			break
		}
	}

	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[n.Token] {
		return errors.New("gateway down")
	}
	f.sent = append(f.sent, n)
	return nil
}

func (f *fakeSender) notifications() []policy.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]policy.Notification(nil), f.sent...)
}

func TestBatch_CountsAndIsolatesFailures(t *testing.T) {
	sender := &fakeSender{failFor: map[string]bool{"bad": true}}
	d := NewDispatcher(sender, time.Second, 2, discardLogger())

	b := d.NewBatch(context.Background())
	var done atomic.Int32
	for _, tok := range []string{"a", "bad", "b", "c"} {
		b.Go(policy.Notification{Token: tok}, func() { done.Add(1) })
	}
	sent, failed := b.Wait()

	assert.Equal(t, 3, sent)
	assert.Equal(t, 1, failed)
	assert.Equal(t, int32(4), done.Load())
	assert.Len(t, sender.notifications(), 3)
}

func TestBatch_BoundedConcurrency(t *testing.T) {
	sender := &fakeSender{block: make(chan struct{})}
	d := NewDispatcher(sender, time.Second, 2, discardLogger())
	b := d.NewBatch(context.Background())

	go func() {
		time.Sleep(50 * time.Millisecond)
		close(sender.block)
	}()
	for i := 0; i < 6; i++ {
		b.Go(policy.Notification{Token: "t"}, nil)
	}
	sent, _ := b.Wait()

	assert.Equal(t, 6, sent)
	assert.LessOrEqual(t, sender.peak.Load(), int32(2))
}

func TestDispatcher_Timeout(t *testing.T) {
	sender := &fakeSender{block: make(chan struct{})}
	d := NewDispatcher(sender, 20*time.Millisecond, 1, discardLogger())

	err := d.Send(context.Background(), policy.Notification{Token: "t"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewDispatcher_Defaults(t *testing.T) {
	d := NewDispatcher(&fakeSender{}, 0, 0, nil)
	assert.Equal(t, defaultDispatchTimeout, d.timeout)
	assert.Equal(t, defaultDispatchConcurrency, d.limit)
}
