package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/screen-nudge/internal/quotes"
	"github.com/albapepper/screen-nudge/internal/users"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2025, time.March, day, hour, minute, 0, 0, time.UTC)
}

// --------------------------------------------------------------------------
// Motivation
// --------------------------------------------------------------------------

func TestMotivation_FiresAtTen(t *testing.T) {
	m := Motivation{Rotator: quotes.Default()}
	s := users.State{Token: "tok", MotivationEnabled: true}

	next, n := m.Evaluate(s, at(3, 10, 0))

	require.NotNil(t, n)
	assert.Equal(t, "tok", n.Token)
	assert.Equal(t, "✨ Daily Motivation", n.Title)
	assert.True(t, n.Vibrate)
	assert.Contains(t, quotes.Corpus, n.Body)
	assert.Equal(t, []string{n.Body}, next.UsedQuotes)
	assert.Empty(t, s.UsedQuotes, "input state must not change")
}

func TestMotivation_Schedule(t *testing.T) {
	m := Motivation{Rotator: quotes.Default()}
	s := users.State{Token: "tok", MotivationEnabled: true}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"10:00", at(3, 10, 0), true},
		{"14:00", at(3, 14, 0), true},
		{"10:01", at(3, 10, 1), false},
		{"09:00", at(3, 9, 0), false},
		{"22:00", at(3, 22, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, n := m.Evaluate(s, tt.now)
			assert.Equal(t, tt.want, n != nil)
		})
	}
}

func TestMotivation_Disabled(t *testing.T) {
	m := Motivation{Rotator: quotes.Default()}
	next, n := m.Evaluate(users.State{Token: "tok"}, at(3, 10, 0))
	assert.Nil(t, n)
	assert.Empty(t, next.UsedQuotes)
}

// --------------------------------------------------------------------------
// Screen time
// --------------------------------------------------------------------------

func TestScreenTime_OneStepPerEvaluation(t *testing.T) {
	now := at(3, 12, 0)
	s := users.State{
		Token:             "tok",
		ScreenTimeEnabled: true,
		ScreenTimeHours:   1,
		ScreenTimeStart:   now.Add(-150 * time.Minute),
	}

	s, n := ScreenTime{}.Evaluate(s, now)
	require.NotNil(t, n)
	assert.Equal(t, "📱 Screen Time", n.Title)
	assert.Equal(t, "You have spent 1 hour on your phone", n.Body)
	assert.True(t, n.Vibrate)
	assert.Equal(t, 1, s.ScreenTimeCount)

	now = now.Add(time.Minute)
	s, n = ScreenTime{}.Evaluate(s, now)
	require.NotNil(t, n)
	assert.Equal(t, "You have spent another 1 hour on your phone", n.Body)
	assert.Equal(t, 2, s.ScreenTimeCount)

	now = now.Add(time.Minute)
	s, n = ScreenTime{}.Evaluate(s, now)
	assert.Nil(t, n)
	assert.Equal(t, 2, s.ScreenTimeCount)
}

func TestScreenTime_BeforeThreshold(t *testing.T) {
	now := at(3, 12, 0)
	s := users.State{
		Token:             "tok",
		ScreenTimeEnabled: true,
		ScreenTimeHours:   2,
		ScreenTimeStart:   now.Add(-119 * time.Minute),
	}

	next, n := ScreenTime{}.Evaluate(s, now)
	assert.Nil(t, n)
	assert.Zero(t, next.ScreenTimeCount)

	_, n = ScreenTime{}.Evaluate(s, now.Add(time.Minute))
	require.NotNil(t, n)
	assert.Equal(t, "You have spent 2 hours on your phone", n.Body)
}

func TestScreenTime_HugeIntervalNeverElapses(t *testing.T) {
	now := at(3, 12, 0)
	s := users.State{
		Token:             "tok",
		ScreenTimeEnabled: true,
		ScreenTimeHours:   3e6,
		ScreenTimeStart:   now.Add(-time.Hour),
	}

	_, n := ScreenTime{}.Evaluate(s, now)
	assert.Nil(t, n)
}

func TestScreenTime_NotTracking(t *testing.T) {
	now := at(3, 12, 0)

	_, n := ScreenTime{}.Evaluate(users.State{ScreenTimeHours: 1, ScreenTimeStart: now.Add(-5 * time.Hour)}, now)
	assert.Nil(t, n, "disabled")

	_, n = ScreenTime{}.Evaluate(users.State{ScreenTimeEnabled: true, ScreenTimeHours: 1}, now)
	assert.Nil(t, n, "no start")
}

func TestScreenTimeMessage(t *testing.T) {
	assert.Equal(t, "You have spent 0.5 hour on your phone", screenTimeMessage(0.5, 0))
	assert.Equal(t, "You have spent 1.5 hours on your phone", screenTimeMessage(1.5, 0))
	assert.Equal(t, "You have spent another 3 hours on your phone", screenTimeMessage(3, 4))
}

// --------------------------------------------------------------------------
// Nudges
// --------------------------------------------------------------------------

func nudgeUser() users.State {
	return users.State{Token: "tok", NudgeEnabled: true, NudgeHours: 1}
}

func TestRepeatNudge_FirstEvaluationArms(t *testing.T) {
	now := at(3, 12, 0)

	next, n := RepeatNudge{}.Evaluate(nudgeUser(), now)

	assert.Nil(t, n)
	assert.Equal(t, now, next.LastNudgeSent)
}

func TestRepeatNudge_FiresAfterInterval(t *testing.T) {
	now := at(3, 12, 0)
	s := nudgeUser()
	s.LastNudgeSent = now.Add(-59 * time.Minute)

	s, n := RepeatNudge{}.Evaluate(s, now)
	assert.Nil(t, n)

	now = now.Add(time.Minute)
	s, n = RepeatNudge{}.Evaluate(s, now)
	require.NotNil(t, n)
	assert.Equal(t, "A Nudge", n.Title)
	assert.Equal(t, "Tap this and take control of your screen time today", n.Body)
	assert.False(t, n.Vibrate)
	assert.Equal(t, now, s.LastNudgeSent)

	_, n = RepeatNudge{}.Evaluate(s, now.Add(time.Minute))
	assert.Nil(t, n, "timer reset after sending")
}

func TestRepeatNudge_HugeIntervalNeverElapses(t *testing.T) {
	now := at(3, 12, 0)
	s := nudgeUser()
	s.NudgeHours = 3e6
	s.LastNudgeSent = now.Add(-time.Minute)

	next, n := RepeatNudge{}.Evaluate(s, now)
	assert.Nil(t, n)
	assert.Equal(t, s.LastNudgeSent, next.LastNudgeSent)
}

func TestRepeatNudge_ActiveAppBlocks(t *testing.T) {
	now := at(3, 12, 0)
	s := nudgeUser()
	s.LastNudgeSent = now.Add(-3 * time.Hour)

	s.LastActive = now.Add(-5 * time.Minute)
	_, n := RepeatNudge{}.Evaluate(s, now)
	assert.Nil(t, n, "exactly five minutes is still active")

	s.LastActive = now.Add(-5*time.Minute - time.Second)
	_, n = RepeatNudge{}.Evaluate(s, now)
	assert.NotNil(t, n)
}

func TestNudges_WindowGate(t *testing.T) {
	for _, hour := range []int{8, 19} {
		now := at(3, hour, 0)
		s := nudgeUser()
		s.LastNudgeSent = now.Add(-10 * time.Hour)

		next, n := RepeatNudge{}.Evaluate(s, now)
		assert.Nil(t, n, "repeat at %d:00", hour)
		assert.Equal(t, s.LastNudgeSent, next.LastNudgeSent)

		_, n = MorningNudge{}.Evaluate(s, now)
		assert.Nil(t, n, "morning at %d:00", hour)
	}

	// Unarmed timers are not armed outside the window either.
	next, _ := RepeatNudge{}.Evaluate(nudgeUser(), at(3, 20, 0))
	assert.True(t, next.LastNudgeSent.IsZero())
}

func TestMorningNudge_OncePerDay(t *testing.T) {
	now := at(3, 9, 0)

	s, n := MorningNudge{}.Evaluate(nudgeUser(), now)
	require.NotNil(t, n)
	assert.Equal(t, "Good Morning!", n.Title)
	assert.Equal(t, "It's a new day to not go on your phone", n.Body)
	assert.False(t, n.Vibrate)
	assert.Equal(t, now, s.LastSpecialNudgeSent)

	s, n = MorningNudge{}.Evaluate(s, now)
	assert.Nil(t, n, "same calendar date")

	s, n = MorningNudge{}.Evaluate(s, at(4, 9, 0))
	assert.NotNil(t, n, "next day")
	assert.Equal(t, at(4, 9, 0), s.LastSpecialNudgeSent)
}

func TestMorningNudge_OnlyAtNine(t *testing.T) {
	_, n := MorningNudge{}.Evaluate(nudgeUser(), at(3, 9, 1))
	assert.Nil(t, n)

	_, n = MorningNudge{}.Evaluate(nudgeUser(), at(3, 10, 0))
	assert.Nil(t, n)

	s := nudgeUser()
	s.LastActive = at(3, 8, 58)
	_, n = MorningNudge{}.Evaluate(s, at(3, 9, 0))
	assert.Nil(t, n, "app recently open")
}

func TestMorningNudge_DateInServiceZone(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2025, time.March, 4, 9, 0, 0, 0, loc)
	s := nudgeUser()
	// 2025-03-03 23:00 UTC is already March 4th in UTC+3.
	s.LastSpecialNudgeSent = time.Date(2025, time.March, 3, 23, 0, 0, 0, time.UTC)

	_, n := MorningNudge{}.Evaluate(s, now)
	assert.Nil(t, n)
}

func TestNudges_BothCanFireAtNine(t *testing.T) {
	now := at(3, 9, 0)
	s := nudgeUser()
	s.LastNudgeSent = now.Add(-2 * time.Hour)

	s, morning := MorningNudge{}.Evaluate(s, now)
	_, repeat := RepeatNudge{}.Evaluate(s, now)

	assert.NotNil(t, morning)
	assert.NotNil(t, repeat)
}

func TestDefaults_Order(t *testing.T) {
	var names []string
	for _, e := range Defaults(quotes.Default()) {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"motivation", "screen_time", "morning_nudge", "repeat_nudge"}, names)
}
