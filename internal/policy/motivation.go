package policy

import (
	"slices"
	"time"

	"github.com/albapepper/screen-nudge/internal/quotes"
	"github.com/albapepper/screen-nudge/internal/users"
)

const motivationTitle = "✨ Daily Motivation"

// Hours at which motivation quotes go out, on the minute.
var motivationHours = []int{10, 14}

// Motivation sends a rotating quote at fixed times of day. A missed slot is
// not caught up.
type Motivation struct {
	Rotator *quotes.Rotator
}

func (Motivation) Name() string { return "motivation" }

func (m Motivation) Evaluate(s users.State, now time.Time) (users.State, *Notification) {
	if !s.MotivationEnabled || now.Minute() != 0 || !slices.Contains(motivationHours, now.Hour()) {
		return s, nil
	}

	quote, used := m.Rotator.Next(s.UsedQuotes)
	s.UsedQuotes = used
	return s, &Notification{
		Token:   s.Token,
		Title:   motivationTitle,
		Body:    quote,
		Vibrate: true,
	}
}
