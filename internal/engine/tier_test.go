package engine

import (
	"testing"

	"github.com/wanplusss/momento/internal/model"
)

func TestClassifyTier(t *testing.T) {
	th := Thresholds{Baseline: 3, Momentum: 6, Stretch: 10, Increment: 2}

	cases := []struct {
		value float64
		want  model.Tier
	}{
		{0, model.TierBelow},
		{2, model.TierBelow},
		{3, model.TierBaseline},
		{4, model.TierBaseline},
		{6, model.TierMomentum},
		{8, model.TierMomentum},
		{10, model.TierStretch},
		{11, model.TierStretch}, // overshoot inside one increment stays stretch
		{12, model.TierBeyond},
		{500, model.TierBeyond},
	}
	for _, c := range cases {
		if got := ClassifyTier(c.value, th); got != c.want {
			t.Errorf("ClassifyTier(%v) = %q, want %q", c.value, got, c.want)
		}
	}
}

func TestEffectiveThresholdsPrefersAdaptive(t *testing.T) {
	g := &model.Goal{Baseline: 3, Momentum: 6, Stretch: 10, Increment: 2}

	th := EffectiveThresholds(g)
	if th.Baseline != 3 || th.Momentum != 6 {
		t.Errorf("static thresholds: got %+v", th)
	}

	g.AdaptiveBaseline = 5
	g.AdaptiveMomentum = 8
	th = EffectiveThresholds(g)
	if th.Baseline != 5 || th.Momentum != 8 {
		t.Errorf("adaptive thresholds: got %+v", th)
	}
	if th.Stretch != 10 || th.Increment != 2 {
		t.Errorf("stretch/increment must stay static: got %+v", th)
	}
}
