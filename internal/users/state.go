// Package users holds per-device notification state and the in-memory
// registry the API and the tick engine share.
//
// Instants that are "absent" are represented by the zero time.Time.
package users

import (
	"slices"
	"time"
)

// State is everything the engine knows about one device.
type State struct {
	Token string `json:"token"`

	MotivationEnabled bool     `json:"motivationEnabled"`
	UsedQuotes        []string `json:"usedQuotes"`

	ScreenTimeEnabled bool      `json:"screenTimeEnabled"`
	ScreenTimeHours   float64   `json:"screenTime"`
	ScreenTimeStart   time.Time `json:"screenTimeStart,omitzero"`
	ScreenTimeCount   int       `json:"screenTimeCount"`

	NudgeEnabled         bool      `json:"nudgeEnabled"`
	NudgeHours           float64   `json:"nudgeTime"`
	LastNudgeSent        time.Time `json:"lastNudgeSent,omitzero"`
	LastSpecialNudgeSent time.Time `json:"lastSpecialNudgeSent,omitzero"`

	LastActive time.Time `json:"lastActive,omitzero"`
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	s.UsedQuotes = slices.Clone(s.UsedQuotes)
	return s
}
