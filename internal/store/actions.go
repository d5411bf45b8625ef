package store

import (
	"context"
	"fmt"
	"time"

	"github.com/wanplusss/momento/internal/engine"
	"github.com/wanplusss/momento/internal/model"
)

// Actions run as single SQLite transactions: the goal and its sessions are
// read, the engine math runs synchronously in between, and the updated goal
// is written back before commit. A failure anywhere rolls the whole
// read-modify-write back, so derived fields never drift from the session log.

// CompleteSession records a finished session and recomputes the owning
// goal's aggregates: total sessions, last completed day, streaks, and the
// adaptive baseline/momentum (applied as the new effective thresholds).
// Returns ErrGoalNotFound without writing anything if the goal is missing.
func (s *SQLiteStore) CompleteSession(ctx context.Context, p CompleteParams) (*model.Session, error) {
	if p.GoalID == "" {
		return nil, fmt.Errorf("goal id is required")
	}
	if p.FinalCount < 0 {
		return nil, fmt.Errorf("final count must be >= 0, got %v", p.FinalCount)
	}

	end := p.EndTime
	if end.IsZero() {
		end = s.now()
	}
	start := p.StartTime
	if start.IsZero() {
		start = end
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end time %s before start time %s",
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	goal, err := getGoal(ctx, tx, p.GoalID)
	if err != nil {
		return nil, err
	}

	thresholds := engine.EffectiveThresholds(goal)
	tier := p.Tier
	if tier == "" {
		tier = engine.ClassifyTier(p.FinalCount, thresholds)
	}

	sess := &model.Session{
		ID:     s.newID(),
		GoalID: goal.ID,
		OriginalGoal: model.ThresholdSnapshot{
			Baseline: thresholds.Baseline,
			Momentum: thresholds.Momentum,
			Stretch:  thresholds.Stretch,
		},
		Prediction:    p.Prediction,
		FinalCount:    p.FinalCount,
		Breakthroughs: p.Breakthroughs,
		Tier:          tier,
		StartTime:     start.UTC(),
		EndTime:       end.UTC(),
		HitHistory:    p.Hits,
	}
	if err := insertSession(ctx, tx, sess); err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	// Re-read inside the same transaction; the insert above is visible here.
	sessions, err := sessionsByGoal(ctx, tx, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	streak := engine.ComputeStreak(sessions, goal.RestDays, s.now())
	cal := engine.Calibrate(goal, sessions)

	goal.TotalSessions++
	goal.LastCompletedDate = engine.DayString(sess.EndTime)
	goal.CurrentStreak = streak.Current
	if streak.Longest > goal.LongestStreak {
		goal.LongestStreak = streak.Longest
	}
	goal.AdaptiveBaseline = cal.AdaptiveBaseline
	goal.AdaptiveMomentum = cal.AdaptiveMomentum
	goal.Baseline = cal.AdaptiveBaseline
	goal.Momentum = cal.AdaptiveMomentum

	if err := putGoal(ctx, tx, goal); err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return sess, nil
}

// MarkRestDay exempts one calendar day (YYYY-MM-DD) from breaking the goal's
// streak. Marking the same day twice is a no-op.
func (s *SQLiteStore) MarkRestDay(ctx context.Context, goalID, date string) (*model.Goal, error) {
	if _, err := time.Parse(engine.DayLayout, date); err != nil {
		return nil, fmt.Errorf("invalid rest day %q (want YYYY-MM-DD): %w", date, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	goal, err := getGoal(ctx, tx, goalID)
	if err != nil {
		return nil, err
	}

	for _, d := range goal.RestDays {
		if d == date {
			return goal, nil
		}
	}
	goal.RestDays = append(goal.RestDays, date)

	sessions, err := sessionsByGoal(ctx, tx, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	streak := engine.ComputeStreak(sessions, goal.RestDays, s.now())
	goal.CurrentStreak = streak.Current
	if streak.Longest > goal.LongestStreak {
		goal.LongestStreak = streak.Longest
	}

	if err := putGoal(ctx, tx, goal); err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return goal, nil
}

// BankProgress checkpoints the goal's streak, totals, and thresholds, then
// pauses it. The current streak resets; longest streak and session count
// stay for history.
func (s *SQLiteStore) BankProgress(ctx context.Context, goalID string) (*model.Goal, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	goal, err := getGoal(ctx, tx, goalID)
	if err != nil {
		return nil, err
	}

	goal.BankedProgress = append(goal.BankedProgress, model.BankedProgress{
		Date:          s.now().UTC(),
		Streak:        goal.CurrentStreak,
		TotalSessions: goal.TotalSessions,
		Baseline:      goal.Baseline,
		Momentum:      goal.Momentum,
	})
	goal.Status = model.StatusBanked
	goal.CurrentStreak = 0

	if err := putGoal(ctx, tx, goal); err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return goal, nil
}

// Resume flips a banked goal back to active. Streaks rebuild on the next
// completion rather than here.
func (s *SQLiteStore) Resume(ctx context.Context, goalID string) (*model.Goal, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	goal, err := getGoal(ctx, tx, goalID)
	if err != nil {
		return nil, err
	}
	if goal.Status == model.StatusActive {
		return goal, nil
	}
	goal.Status = model.StatusActive

	if err := putGoal(ctx, tx, goal); err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return goal, nil
}
