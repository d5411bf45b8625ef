package store

import (
	"context"

	"github.com/wanplusss/momento/internal/engine"
	"github.com/wanplusss/momento/internal/model"
)

// GoalReport is a read-only analytics view over one goal's history.
type GoalReport struct {
	Goal *model.Goal `json:"goal"`

	SessionCount int     `json:"session_count"`
	WMA          float64 `json:"wma"`
	StdDev       float64 `json:"std_dev"`
	Consistency  int     `json:"consistency"` // RSI-style, 0-100
	Score        float64 `json:"score"`
	Grade        string  `json:"grade"`

	Trend   engine.TrendResult     `json:"trend"`
	Bars    []engine.HeikenAshiBar `json:"bars,omitempty"`
	Heatmap []engine.HeatmapCell   `json:"heatmap"`
}

// Report assembles the analytics view for one goal. Pure reads; no goal
// state is modified.
func (s *SQLiteStore) Report(ctx context.Context, goalID string) (*GoalReport, error) {
	goal, err := getGoal(ctx, s.db, goalID)
	if err != nil {
		return nil, err
	}
	sessions, err := sessionsByGoal(ctx, s.db, goalID)
	if err != nil {
		return nil, err
	}

	values := engine.FinalCounts(sessions)
	score := engine.PerformanceScore(goal, sessions)

	return &GoalReport{
		Goal:         goal,
		SessionCount: len(sessions),
		WMA:          engine.WeightedMovingAverage(values, goal.MovingAverageWindow),
		StdDev:       engine.StdDev(values, goal.MovingAverageWindow),
		Consistency:  engine.RelativeStrength(values),
		Score:        score,
		Grade:        engine.Grade(score),
		Trend:        engine.Trend(values),
		Bars:         engine.HeikenAshi(values),
		Heatmap:      engine.Heatmap(sessions, s.now()),
	}, nil
}
