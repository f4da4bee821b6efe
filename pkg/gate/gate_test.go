package gate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPermit(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	g := Gate{MaxActions: 3, Cooldown: time.Minute}

	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{
			name:  "fresh state permits",
			state: State{},
			want:  true,
		},
		{
			name:  "budget exhausted denies",
			state: State{TotalActions: 3},
			want:  false,
		},
		{
			name:  "budget exceeded denies",
			state: State{TotalActions: 4},
			want:  false,
		},
		{
			name:  "within cooldown denies",
			state: State{TotalActions: 1, LastActionTime: now.Add(-30 * time.Second)},
			want:  false,
		},
		{
			name:  "elapsed exactly equal to cooldown permits",
			state: State{TotalActions: 1, LastActionTime: now.Add(-time.Minute)},
			want:  true,
		},
		{
			name:  "cooldown elapsed permits",
			state: State{TotalActions: 1, LastActionTime: now.Add(-2 * time.Minute)},
			want:  true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, g.Permit(tc.state, now))
		})
	}
}

func TestRecord(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	var s State

	Record(&s, now)
	assert.Equal(t, 1, s.TotalActions)
	assert.Equal(t, now, s.LastActionTime)

	later := now.Add(time.Minute)
	Record(&s, later)
	assert.Equal(t, 2, s.TotalActions)
	assert.Equal(t, later, s.LastActionTime)
}

func TestGateExhaustionSequence(t *testing.T) {
	g := Gate{MaxActions: 2, Cooldown: 0}
	now := time.Now()
	var s State

	assert.True(t, g.Permit(s, now))
	Record(&s, now)
	assert.True(t, g.Permit(s, now))
	Record(&s, now)
	assert.False(t, g.Permit(s, now), "action budget spent")
}
