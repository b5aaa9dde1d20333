package policy

import (
	"time"

	"github.com/albapepper/screen-nudge/internal/users"
)

const (
	nudgeWindowStart = 9  // inclusive
	nudgeWindowEnd   = 19 // exclusive
	inactiveAfter    = 5 * time.Minute

	morningNudgeTitle = "Good Morning!"
	morningNudgeBody  = "It's a new day to not go on your phone"
	repeatNudgeTitle  = "A Nudge"
	repeatNudgeBody   = "Tap this and take control of your screen time today"
)

// nudgeAllowed is the gate shared by both nudges: the feature is on, the app
// has not been in the foreground for a while and it is daytime.
func nudgeAllowed(s users.State, now time.Time) bool {
	if !s.NudgeEnabled {
		return false
	}
	closed := s.LastActive.IsZero() || now.Sub(s.LastActive) > inactiveAfter
	h := now.Hour()
	return closed && h >= nudgeWindowStart && h < nudgeWindowEnd
}

// MorningNudge sends one greeting at 9:00 per calendar day.
type MorningNudge struct{}

func (MorningNudge) Name() string { return "morning_nudge" }

func (MorningNudge) Evaluate(s users.State, now time.Time) (users.State, *Notification) {
	if !nudgeAllowed(s, now) || now.Hour() != nudgeWindowStart || now.Minute() != 0 {
		return s, nil
	}
	if !s.LastSpecialNudgeSent.IsZero() && sameDate(s.LastSpecialNudgeSent.In(now.Location()), now) {
		return s, nil
	}

	s.LastSpecialNudgeSent = now
	return s, &Notification{
		Token: s.Token,
		Title: morningNudgeTitle,
		Body:  morningNudgeBody,
	}
}

// RepeatNudge is a self-resetting interval timer. The first evaluation only
// arms it.
type RepeatNudge struct{}

func (RepeatNudge) Name() string { return "repeat_nudge" }

func (RepeatNudge) Evaluate(s users.State, now time.Time) (users.State, *Notification) {
	if !nudgeAllowed(s, now) {
		return s, nil
	}
	if s.LastNudgeSent.IsZero() {
		s.LastNudgeSent = now
		return s, nil
	}
	if now.Sub(s.LastNudgeSent).Hours() < s.NudgeHours {
		return s, nil
	}

	s.LastNudgeSent = now
	return s, &Notification{
		Token: s.Token,
		Title: repeatNudgeTitle,
		Body:  repeatNudgeBody,
	}
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
