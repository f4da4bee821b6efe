// Package gate implements the cooldown/rate limit that bounds how often the
// control loop may dispatch an execution, independent of strategy logic.
package gate

import "time"

// State tracks how many actions were taken and when the last one happened.
// The scheduler owns it and mutates it only through Record, after an execution
// attempt has actually been dispatched.
type State struct {
	TotalActions   int       `json:"total_actions"`
	LastActionTime time.Time `json:"last_action_time"`
}

// Gate holds the immutable limits an action must clear.
type Gate struct {
	MaxActions int
	Cooldown   time.Duration
}

// Permit reports whether an action is currently allowed: the total action
// budget must not be exhausted and the cooldown since the last action must
// have fully elapsed. An elapsed time exactly equal to the cooldown permits.
func (g Gate) Permit(s State, now time.Time) bool {
	if s.TotalActions >= g.MaxActions {
		return false
	}
	if now.Sub(s.LastActionTime) < g.Cooldown {
		return false
	}
	return true
}

// Record marks that an action was dispatched. Partial execution success still
// counts as one gated action.
func Record(s *State, now time.Time) {
	s.TotalActions++
	s.LastActionTime = now
}
