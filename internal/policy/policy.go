// Package policy contains the notification policies the tick engine runs for
// every user. Each evaluator is a pure function of a user's state and the
// current time: it returns the updated state and at most one notification.
//
// Times passed to evaluators are expected in the service time zone; hour and
// calendar-date checks use now's location.
package policy

import (
	"time"

	"github.com/albapepper/screen-nudge/internal/quotes"
	"github.com/albapepper/screen-nudge/internal/users"
)

// Notification is one push message for one device.
type Notification struct {
	Token   string
	Title   string
	Body    string
	Vibrate bool
}

// Evaluator decides whether a user gets a notification at now.
type Evaluator interface {
	Name() string
	Evaluate(s users.State, now time.Time) (users.State, *Notification)
}

// Defaults returns the evaluators in the order the engine must run them:
// motivation, screen time, then the nudge pair.
func Defaults(rotator *quotes.Rotator) []Evaluator {
	return []Evaluator{
		Motivation{Rotator: rotator},
		ScreenTime{},
		MorningNudge{},
		RepeatNudge{},
	}
}
