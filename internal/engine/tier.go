package engine

import "github.com/wanplusss/momento/internal/model"

// Thresholds are the effective boundaries used for tier classification.
type Thresholds struct {
	Baseline  float64
	Momentum  float64
	Stretch   float64
	Increment float64
}

// EffectiveThresholds returns the goal's classification boundaries, preferring
// adaptive values once calibration has populated them.
func EffectiveThresholds(g *model.Goal) Thresholds {
	t := Thresholds{
		Baseline:  g.Baseline,
		Momentum:  g.Momentum,
		Stretch:   g.Stretch,
		Increment: g.Increment,
	}
	if g.AdaptiveBaseline > 0 {
		t.Baseline = g.AdaptiveBaseline
	}
	if g.AdaptiveMomentum > 0 {
		t.Momentum = g.AdaptiveMomentum
	}
	return t
}

// ClassifyTier maps a result onto a tier. Overshoot inside
// [stretch, stretch+increment) still counts as stretch; only a full increment
// beyond the target earns beyond.
func ClassifyTier(value float64, t Thresholds) model.Tier {
	switch {
	case value < t.Baseline:
		return model.TierBelow
	case value < t.Momentum:
		return model.TierBaseline
	case value < t.Stretch:
		return model.TierMomentum
	case value >= t.Stretch+t.Increment:
		return model.TierBeyond
	default:
		return model.TierStretch
	}
}
