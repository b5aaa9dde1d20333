// Package quotes holds the motivation corpus and the per-user rotation that
// walks it without replacement.
package quotes

import (
	"math/rand/v2"
	"slices"
)

// Corpus is the fixed set of motivation quotes.
var Corpus = []string{
	"The secret of getting ahead is getting started.",
	"Small steps every day add up to big results.",
	"Be present. The moment you are in is the one that matters.",
	"Your time is limited, don't spend it scrolling.",
	"Focus on what you can control and let the rest go.",
	"Discipline is choosing what you want most over what you want now.",
	"Look up from your screen, the world is waiting.",
	"Every minute you reclaim is a minute you get to live.",
}

// Rotator picks quotes for a user without repeating one until the corpus is
// exhausted.
type Rotator struct {
	corpus []string
	intn   func(n int) int
}

// NewRotator creates a rotator over corpus. intn must return a value in
// [0, n); nil uses math/rand/v2.
func NewRotator(corpus []string, intn func(n int) int) *Rotator {
	if intn == nil {
		intn = rand.IntN
	}
	return &Rotator{corpus: slices.Clone(corpus), intn: intn}
}

// Default returns a rotator over Corpus with a random source.
func Default() *Rotator {
	return NewRotator(Corpus, nil)
}

// Size returns the number of quotes in the corpus.
func (r *Rotator) Size() int { return len(r.corpus) }

// Next returns a quote not in used and the updated used set. A full cycle
// resets used first, so the returned quote may equal the last one sent.
// The input slice is never modified.
func (r *Rotator) Next(used []string) (string, []string) {
	available := make([]string, 0, len(r.corpus))
	for _, q := range r.corpus {
		if !slices.Contains(used, q) {
			available = append(available, q)
		}
	}
	if len(available) == 0 {
		used = nil
		available = slices.Clone(r.corpus)
	}

	pick := available[r.intn(len(available))]
	next := make([]string, 0, len(used)+1)
	next = append(next, used...)
	next = append(next, pick)
	return pick, next
}
