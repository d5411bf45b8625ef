// Package store provides goal/session persistence and the transactional
// action layer that keeps a goal's derived fields consistent with its
// session history.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/wanplusss/momento/internal/model"
)

// ErrGoalNotFound is returned when an action references a goal that does not
// exist. The action writes nothing in that case.
var ErrGoalNotFound = errors.New("goal not found")

// CreateGoalParams holds parameters for creating a goal.
type CreateGoalParams struct {
	Name                string
	Mode                model.GoalMode
	Baseline            float64
	Momentum            float64
	Stretch             float64
	Increment           float64
	StepSize            float64
	Unit                string
	MovingAverageWindow int
}

// ListGoalsParams holds filters for listing goals.
type ListGoalsParams struct {
	Status model.GoalStatus // empty means all
}

// CompleteParams holds parameters for recording a completed session.
type CompleteParams struct {
	GoalID        string
	FinalCount    float64
	Prediction    float64
	Breakthroughs int
	Tier          model.Tier // empty: classified against the goal's thresholds
	StartTime     time.Time  // zero: same as EndTime
	EndTime       time.Time  // zero: now
	Hits          []model.Hit
}

// Store defines the goal storage and action interface.
type Store interface {
	// CreateGoal creates a goal with defaults applied and thresholds
	// normalized to ascending order.
	CreateGoal(ctx context.Context, p CreateGoalParams) (*model.Goal, error)

	// GetGoal retrieves a goal by id.
	GetGoal(ctx context.Context, id string) (*model.Goal, error)

	// ListGoals lists goals matching the given filters, newest first.
	ListGoals(ctx context.Context, p ListGoalsParams) ([]model.Goal, error)

	// DeleteGoal removes a goal and all of its sessions.
	DeleteGoal(ctx context.Context, id string) error

	// SessionsByGoal returns a goal's sessions ordered by end time ascending.
	SessionsByGoal(ctx context.Context, goalID string) ([]model.Session, error)

	// CompleteSession atomically records a session and recomputes the owning
	// goal's streaks and adaptive thresholds.
	CompleteSession(ctx context.Context, p CompleteParams) (*model.Session, error)

	// MarkRestDay exempts a calendar day from breaking the goal's streak.
	// Idempotent.
	MarkRestDay(ctx context.Context, goalID, date string) (*model.Goal, error)

	// BankProgress snapshots the goal's state and pauses it.
	BankProgress(ctx context.Context, goalID string) (*model.Goal, error)

	// Resume flips a banked goal back to active.
	Resume(ctx context.Context, goalID string) (*model.Goal, error)

	// Close closes the store.
	Close() error
}
