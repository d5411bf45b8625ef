package store

import (
	"context"
	"errors"
	"testing"

	"github.com/wanplusss/momento/internal/engine"
)

func TestReport(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	g, _ := s.CreateGoal(ctx, CreateGoalParams{Name: "g", Baseline: 3, Momentum: 6, Stretch: 10})

	counts := []float64{4, 6, 8, 10, 12}
	for i, c := range counts {
		mustComplete(t, s, CompleteParams{GoalID: g.ID, FinalCount: c, EndTime: endAt(len(counts) - 1 - i)})
	}

	rep, err := s.Report(ctx, g.ID)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if rep.SessionCount != 5 {
		t.Errorf("expected 5 sessions, got %d", rep.SessionCount)
	}
	if rep.Trend.Direction != engine.TrendUp {
		t.Errorf("expected upward trend, got %+v", rep.Trend)
	}
	if rep.WMA != engine.WeightedMovingAverage(counts, g.MovingAverageWindow) {
		t.Errorf("report WMA disagrees with engine: %v", rep.WMA)
	}
	if len(rep.Bars) != 5 {
		t.Errorf("expected 5 bars, got %d", len(rep.Bars))
	}
	if len(rep.Heatmap) != engine.HeatmapDays {
		t.Errorf("expected %d heatmap cells, got %d", engine.HeatmapDays, len(rep.Heatmap))
	}
	last := rep.Heatmap[len(rep.Heatmap)-1]
	if last.Date != engine.DayString(testNow) || last.Intensity != 1 {
		t.Errorf("expected today's cell with intensity 1, got %+v", last)
	}
	if rep.Grade == "" || rep.Score < 0 || rep.Score > 100 {
		t.Errorf("unexpected score/grade: %v/%s", rep.Score, rep.Grade)
	}
}

func TestReportMissingGoal(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Report(context.Background(), "nope"); !errors.Is(err, ErrGoalNotFound) {
		t.Errorf("expected ErrGoalNotFound, got %v", err)
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a, _ := s.CreateGoal(ctx, CreateGoalParams{Name: "a"})
	s.CreateGoal(ctx, CreateGoalParams{Name: "b"})
	mustComplete(t, s, CompleteParams{GoalID: a.ID, FinalCount: 2})
	mustComplete(t, s, CompleteParams{GoalID: a.ID, FinalCount: 3})
	s.BankProgress(ctx, a.ID)

	st, err := s.Stats(ctx, "ignored-path")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.TotalGoals != 2 || st.ActiveGoals != 1 || st.BankedGoals != 1 {
		t.Errorf("unexpected goal counts: %+v", st)
	}
	if st.TotalSessions != 2 {
		t.Errorf("expected 2 sessions, got %d", st.TotalSessions)
	}
	if len(st.Goals) != 2 || st.Goals[0].Sessions != 2 {
		t.Errorf("unexpected per-goal stats: %+v", st.Goals)
	}
}
