package users

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// ErrNotFound is returned for operations on a token that was never upserted.
var ErrNotFound = errors.New("user not found")

// Registry is the process-wide token → State store. The map is guarded by a
// RWMutex and every entry has its own mutex, so a preference upsert and a
// policy evaluation for the same token never interleave.
//
// Never acquire mu while holding an entry lock.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
	clock   clockwork.Clock
}

type entry struct {
	mu    sync.Mutex
	state State
}

// NewRegistry creates an empty registry. clock stamps tracking fields on upsert.
func NewRegistry(clock clockwork.Clock) *Registry {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Registry{
		entries: make(map[string]*entry),
		clock:   clock,
	}
}

// Upsert validates p and creates or updates the user it names. It reports
// whether the user was newly created.
func (r *Registry) Upsert(p Preferences) (State, bool, error) {
	if err := p.Validate(); err != nil {
		return State{}, false, err
	}

	r.mu.Lock()
	e, exists := r.entries[p.Token]
	if !exists {
		e = &entry{state: State{Token: p.Token}}
		r.entries[p.Token] = e
	}
	r.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = p.apply(e.state, r.clock.Now())
	return e.state.Clone(), !exists, nil
}

// ReportActivity records the last time the app was in the foreground.
func (r *Registry) ReportActivity(token string, at time.Time) error {
	if at.IsZero() {
		at = r.clock.Now()
	}
	return r.Update(token, func(s State) State {
		s.LastActive = at
		return s
	})
}

// Update runs fn on a copy of the token's state while holding that user's
// lock and stores the result. If fn panics the stored state is unchanged.
func (r *Registry) Update(token string, fn func(State) State) error {
	e := r.lookup(token)
	if e == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, token)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = fn(e.state.Clone())
	return nil
}

// Get returns a copy of the token's state.
func (r *Registry) Get(token string) (State, bool) {
	e := r.lookup(token)
	if e == nil {
		return State{}, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone(), true
}

// Tokens returns every registered token in sorted order.
func (r *Registry) Tokens() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tokens := make([]string, 0, len(r.entries))
	for t := range r.entries {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return tokens
}

// Len returns the number of registered users.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *Registry) lookup(token string) *entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[token]
}
