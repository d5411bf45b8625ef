package engine

import (
	"math"

	"github.com/wanplusss/momento/internal/model"
)

// PerformanceScore is a 0-100 composite: how much of the stretch potential
// was realized (50%), consistency (30%), and a capped streak bonus (20%).
func PerformanceScore(g *model.Goal, sessions []model.Session) float64 {
	values := FinalCounts(sessions)

	potential := float64(len(sessions)) * g.Stretch
	var realized float64
	for _, v := range values {
		realized += v
	}

	var efficiency float64
	if potential > 0 {
		efficiency = math.Min(100, realized/potential*100)
	}

	rsi := float64(RelativeStrength(values))
	streakBonus := math.Min(20, float64(g.CurrentStreak)*2)

	return efficiency*0.5 + rsi*0.3 + streakBonus*0.2
}
