package policy

import (
	"fmt"
	"strconv"
	"time"

	"github.com/albapepper/screen-nudge/internal/users"
)

const screenTimeTitle = "📱 Screen Time"

// ScreenTime reminds the user each time another full interval has passed
// since tracking started. The counter only moves forward, one step per
// evaluation, so a threshold is never reported twice.
type ScreenTime struct{}

func (ScreenTime) Name() string { return "screen_time" }

func (ScreenTime) Evaluate(s users.State, now time.Time) (users.State, *Notification) {
	if !s.ScreenTimeEnabled || s.ScreenTimeStart.IsZero() || s.ScreenTimeHours <= 0 {
		return s, nil
	}

	elapsedHours := now.Sub(s.ScreenTimeStart).Hours()
	if elapsedHours < float64(s.ScreenTimeCount+1)*s.ScreenTimeHours {
		return s, nil
	}

	n := &Notification{
		Token:   s.Token,
		Title:   screenTimeTitle,
		Body:    screenTimeMessage(s.ScreenTimeHours, s.ScreenTimeCount),
		Vibrate: true,
	}
	s.ScreenTimeCount++
	return s, n
}

func screenTimeMessage(hours float64, count int) string {
	unit := "hour"
	if hours > 1 {
		unit = "hours"
	}
	amount := strconv.FormatFloat(hours, 'f', -1, 64)
	if count == 0 {
		return fmt.Sprintf("You have spent %s %s on your phone", amount, unit)
	}
	return fmt.Sprintf("You have spent another %s %s on your phone", amount, unit)
}
