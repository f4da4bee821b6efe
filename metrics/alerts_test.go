package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }

func TestEvaluate(t *testing.T) {
	snap := NewSnapshot(time.Now(), 1000, 600, 400, 2.5, 50000, 12)

	tests := []struct {
		name       string
		thresholds Thresholds
		want       AlertState
	}{
		{
			name:       "no thresholds configured",
			thresholds: Thresholds{},
			want:       AlertState{},
		},
		{
			name:       "volume exceeded",
			thresholds: Thresholds{Volume: fptr(500)},
			want:       AlertState{Volume: true},
		},
		{
			name:       "value equal to threshold does not fire",
			thresholds: Thresholds{Volume: fptr(1000)},
			want:       AlertState{},
		},
		{
			name:       "all three exceeded",
			thresholds: Thresholds{Volume: fptr(1), Price: fptr(1), Liquidity: fptr(1)},
			want:       AlertState{Volume: true, Price: true, Liquidity: true},
		},
		{
			name:       "only price configured and not exceeded",
			thresholds: Thresholds{Price: fptr(10)},
			want:       AlertState{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Evaluate(snap, tc.thresholds))
		})
	}
}

func TestAlertStateAny(t *testing.T) {
	assert.False(t, AlertState{}.Any())
	assert.True(t, AlertState{Price: true}.Any())
	assert.True(t, AlertState{Volume: true, Liquidity: true}.Any())
}

func TestEvaluateFiresEveryTickWhileExceeded(t *testing.T) {
	snap := NewSnapshot(time.Now(), 1000, 600, 400, 2.5, 50000, 12)
	thresholds := Thresholds{Volume: fptr(500)}

	// Level-triggered: repeated evaluations keep raising the alert.
	for i := 0; i < 3; i++ {
		assert.True(t, Evaluate(snap, thresholds).Volume)
	}
}
