package engine

import (
	"testing"
	"time"

	"github.com/wanplusss/momento/internal/model"
)

func TestPerformanceScoreRange(t *testing.T) {
	g := &model.Goal{Stretch: 10, CurrentStreak: 5}

	histories := [][]float64{
		{},
		{10, 10, 10, 10, 10},
		{1, 1, 1},
		{50, 50, 50, 50, 50, 50},
	}
	for _, h := range histories {
		score := PerformanceScore(g, goalSessions(h...))
		if score < 0 || score > 100 {
			t.Errorf("history %v: score %v out of range", h, score)
		}
	}
}

func TestPerformanceScoreRewardsHittingStretch(t *testing.T) {
	g := &model.Goal{Stretch: 10, CurrentStreak: 10}

	full := PerformanceScore(g, goalSessions(10, 10, 10, 10, 10))
	weak := PerformanceScore(g, goalSessions(1, 1, 1, 1, 1))
	if full <= weak {
		t.Errorf("expected full effort %v to outscore weak effort %v", full, weak)
	}
}

func TestHeatmap(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	sessions := []model.Session{
		{EndTime: now},
		{EndTime: now},
		{EndTime: now.AddDate(0, 0, -1)},
		{EndTime: now.AddDate(0, 0, -200)}, // outside the window
	}

	cells := Heatmap(sessions, now)
	if len(cells) != HeatmapDays {
		t.Fatalf("expected %d cells, got %d", HeatmapDays, len(cells))
	}
	if cells[0].Date != DayString(now.AddDate(0, 0, -(HeatmapDays-1))) {
		t.Errorf("expected oldest cell first, got %s", cells[0].Date)
	}
	last := cells[len(cells)-1]
	if last.Date != "2026-03-10" || last.Intensity != 2 {
		t.Errorf("unexpected last cell: %+v", last)
	}
	if cells[len(cells)-2].Intensity != 1 {
		t.Errorf("expected yesterday intensity 1, got %d", cells[len(cells)-2].Intensity)
	}
}

func TestHeatmapCapsIntensity(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	var sessions []model.Session
	for i := 0; i < 7; i++ {
		sessions = append(sessions, model.Session{EndTime: now})
	}

	cells := Heatmap(sessions, now)
	if got := cells[len(cells)-1].Intensity; got != 4 {
		t.Errorf("expected intensity capped at 4, got %d", got)
	}
}
