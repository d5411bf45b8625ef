package engine

import (
	"math"
	"sort"

	"github.com/wanplusss/momento/internal/model"
)

// Calibration holds freshly derived adaptive thresholds.
type Calibration struct {
	AdaptiveBaseline float64
	AdaptiveMomentum float64
}

// minCalibrationSessions is how much history a goal needs before its static
// thresholds start adapting.
const minCalibrationSessions = 3

// baselineFactor sets the baseline at 70% of recent typical performance.
const baselineFactor = 0.7

// Calibrate derives adaptive baseline/momentum from a goal's session history.
// With fewer than three sessions it returns the static thresholds unchanged.
// Guarantees AdaptiveBaseline <= AdaptiveMomentum, both >= 1.
func Calibrate(g *model.Goal, sessions []model.Session) Calibration {
	if len(sessions) < minCalibrationSessions {
		return Calibration{AdaptiveBaseline: g.Baseline, AdaptiveMomentum: g.Momentum}
	}

	window := g.MovingAverageWindow
	if window < 1 {
		window = 1
	}

	wma := WeightedMovingAverage(FinalCounts(sessions), window)

	baseline := math.Max(1, math.Round(wma*baselineFactor))
	momentum := math.Max(1, math.Round(wma))
	if momentum < baseline {
		momentum = baseline
	}
	return Calibration{AdaptiveBaseline: baseline, AdaptiveMomentum: momentum}
}

// FinalCounts extracts final counts ordered by session end time ascending,
// the order every metric in this package expects.
func FinalCounts(sessions []model.Session) []float64 {
	sorted := make([]model.Session, len(sessions))
	copy(sorted, sessions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].EndTime.Before(sorted[j].EndTime)
	})

	values := make([]float64, len(sorted))
	for i, s := range sorted {
		values[i] = s.FinalCount
	}
	return values
}
