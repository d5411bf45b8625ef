package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/wanplusss/momento/internal/model"
)

// testNow is the fixed "wall clock" for store tests.
var testNow = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.now = func() time.Time { return testNow }
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateGoalDefaults(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	g, err := s.CreateGoal(ctx, CreateGoalParams{Name: "pushups"})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}
	if g.ID == "" {
		t.Error("expected non-empty ID")
	}
	if g.Mode != model.ModeCounter || g.Status != model.StatusActive {
		t.Errorf("unexpected mode/status: %s/%s", g.Mode, g.Status)
	}
	if g.Baseline != 1 || g.Momentum != 3 || g.Stretch != 5 {
		t.Errorf("unexpected default thresholds: %v/%v/%v", g.Baseline, g.Momentum, g.Stretch)
	}
	if g.Increment != 1 || g.StepSize != 1 || g.MovingAverageWindow != 5 {
		t.Errorf("unexpected defaults: %+v", g)
	}
}

func TestCreateGoalValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.CreateGoal(ctx, CreateGoalParams{}); err == nil {
		t.Error("expected error for missing name")
	}
	if _, err := s.CreateGoal(ctx, CreateGoalParams{Name: "x", Mode: "weekly"}); err == nil {
		t.Error("expected error for invalid mode")
	}
}

func TestCreateGoalOrdersThresholds(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	g, err := s.CreateGoal(ctx, CreateGoalParams{
		Name: "reading", Baseline: 30, Momentum: 10, Stretch: 20,
	})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}
	if g.Baseline != 10 || g.Momentum != 20 || g.Stretch != 30 {
		t.Errorf("expected ascending 10/20/30, got %v/%v/%v", g.Baseline, g.Momentum, g.Stretch)
	}
}

func TestGoalRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.CreateGoal(ctx, CreateGoalParams{
		Name: "meditation", Mode: model.ModeTimer,
		Baseline: 5, Momentum: 10, Stretch: 20, Increment: 5,
		StepSize: 1, Unit: "min", MovingAverageWindow: 10,
	})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}

	got, err := s.GetGoal(ctx, created.ID)
	if err != nil {
		t.Fatalf("get goal: %v", err)
	}
	if !created.CreatedAt.Equal(got.CreatedAt) {
		t.Errorf("created_at mismatch: wrote %v, read %v", created.CreatedAt, got.CreatedAt)
	}
	created.CreatedAt = got.CreatedAt
	if !reflect.DeepEqual(created, got) {
		t.Errorf("round trip mismatch:\nwrote %+v\nread  %+v", created, got)
	}
}

func TestGetGoalNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.GetGoal(ctx, "nope")
	if !errors.Is(err, ErrGoalNotFound) {
		t.Errorf("expected ErrGoalNotFound, got %v", err)
	}
}

func TestListGoalsByStatus(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a, _ := s.CreateGoal(ctx, CreateGoalParams{Name: "a"})
	s.CreateGoal(ctx, CreateGoalParams{Name: "b"})
	if _, err := s.BankProgress(ctx, a.ID); err != nil {
		t.Fatalf("bank: %v", err)
	}

	all, _ := s.ListGoals(ctx, ListGoalsParams{})
	if len(all) != 2 {
		t.Errorf("expected 2 goals, got %d", len(all))
	}

	active, _ := s.ListGoals(ctx, ListGoalsParams{Status: model.StatusActive})
	if len(active) != 1 || active[0].Name != "b" {
		t.Errorf("expected only goal b active, got %+v", active)
	}

	banked, _ := s.ListGoals(ctx, ListGoalsParams{Status: model.StatusBanked})
	if len(banked) != 1 || banked[0].Name != "a" {
		t.Errorf("expected only goal a banked, got %+v", banked)
	}
}

func TestDeleteGoalRemovesSessions(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	g, _ := s.CreateGoal(ctx, CreateGoalParams{Name: "g"})
	s.CompleteSession(ctx, CompleteParams{GoalID: g.ID, FinalCount: 3})

	if err := s.DeleteGoal(ctx, g.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetGoal(ctx, g.ID); !errors.Is(err, ErrGoalNotFound) {
		t.Errorf("expected ErrGoalNotFound, got %v", err)
	}
	sessions, _ := s.Sessions(ctx)
	if len(sessions) != 0 {
		t.Errorf("expected 0 sessions after delete, got %d", len(sessions))
	}

	if err := s.DeleteGoal(ctx, "nope"); !errors.Is(err, ErrGoalNotFound) {
		t.Errorf("expected ErrGoalNotFound for missing goal, got %v", err)
	}
}

func TestDBPathCreation(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "dir", "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("expected db file to be created")
	}
}
