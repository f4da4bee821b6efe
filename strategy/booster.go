package strategy

import (
	"math"
	"time"
)

// Booster aggressively multiplies observed volume, bounded by a hard cap and a
// self-imposed cooldown that is independent of the shared action gate.
//
// Calling CalculateVolume has a side effect: any non-zero return arms the
// cooldown by updating lastBoost. The strategy therefore must not be shared
// across loop instances.
type Booster struct {
	BoostFactor float64
	MaxBoost    float64
	Cooldown    time.Duration

	lastBoost time.Time
	now       func() time.Time
}

// NewBooster constructs a booster strategy with the given tunables.
func NewBooster(boostFactor, maxBoost float64, cooldown time.Duration) *Booster {
	return &Booster{
		BoostFactor: boostFactor,
		MaxBoost:    maxBoost,
		Cooldown:    cooldown,
		now:         time.Now,
	}
}

func (s *Booster) Name() string { return "booster" }

// LastBoost returns the time of the last non-zero calculation.
func (s *Booster) LastBoost() time.Time { return s.lastBoost }

// CalculateVolume returns totalVolume * boostFactor clamped to maxBoost, halved
// when the observed success rate is poor. It returns 0 while the cooldown is
// active or when the required metrics are missing.
func (s *Booster) CalculateVolume(m VolumeMetrics) float64 {
	if m.TotalVolume <= 0 {
		return 0
	}

	now := s.now()
	if now.Sub(s.lastBoost) < s.Cooldown {
		return 0
	}

	volume := math.Min(m.TotalVolume*s.BoostFactor, s.MaxBoost)

	if m.Performance != nil && m.Performance.SuccessRate > 0 && m.Performance.SuccessRate < 0.8 {
		volume *= 0.5
	}

	if volume > 0 {
		s.lastBoost = now
	}
	return volume
}
