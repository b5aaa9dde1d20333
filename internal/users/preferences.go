package users

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidPreferences is returned when an upsert payload fails validation.
var ErrInvalidPreferences = errors.New("invalid preferences")

// Preferences is the client-controlled part of a State. Tracking fields are
// never accepted from clients.
type Preferences struct {
	Token             string  `json:"token"`
	MotivationEnabled bool    `json:"motivationEnabled"`
	ScreenTimeEnabled bool    `json:"screenTimeEnabled"`
	ScreenTime        float64 `json:"screenTime"`
	NudgeEnabled      bool    `json:"nudgeEnabled"`
	NudgeTime         float64 `json:"nudgeTime"`
}

// Validate checks the payload before it is merged into a State.
func (p Preferences) Validate() error {
	if strings.TrimSpace(p.Token) == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidPreferences)
	}
	if p.ScreenTime < 0 || p.NudgeTime < 0 {
		return fmt.Errorf("%w: intervals must not be negative", ErrInvalidPreferences)
	}
	if p.ScreenTimeEnabled && p.ScreenTime <= 0 {
		return fmt.Errorf("%w: screenTime must be positive when screen time is enabled", ErrInvalidPreferences)
	}
	if p.NudgeEnabled && p.NudgeTime <= 0 {
		return fmt.Errorf("%w: nudgeTime must be positive when nudges are enabled", ErrInvalidPreferences)
	}
	return nil
}

// apply merges p into prev. Tracking fields restart on a disabled→enabled
// transition and are cleared on enabled→disabled; otherwise they carry over.
func (p Preferences) apply(prev State, now time.Time) State {
	next := prev.Clone()
	next.Token = p.Token

	next.MotivationEnabled = p.MotivationEnabled
	if p.MotivationEnabled != prev.MotivationEnabled {
		next.UsedQuotes = nil
	}

	next.ScreenTimeEnabled = p.ScreenTimeEnabled
	next.ScreenTimeHours = p.ScreenTime
	switch {
	case p.ScreenTimeEnabled && !prev.ScreenTimeEnabled:
		next.ScreenTimeStart = now
		next.ScreenTimeCount = 0
	case !p.ScreenTimeEnabled:
		next.ScreenTimeStart = time.Time{}
		next.ScreenTimeCount = 0
	}

	next.NudgeEnabled = p.NudgeEnabled
	next.NudgeHours = p.NudgeTime
	if p.NudgeEnabled != prev.NudgeEnabled || !p.NudgeEnabled {
		next.LastNudgeSent = time.Time{}
		next.LastSpecialNudgeSent = time.Time{}
	}

	return next
}
