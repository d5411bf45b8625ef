// Package model defines the core goal and session data types.
package model

import "time"

// GoalMode says how progress is measured: discrete taps or elapsed time.
type GoalMode string

const (
	ModeCounter GoalMode = "counter"
	ModeTimer   GoalMode = "timer"
)

// GoalStatus is the goal lifecycle state.
type GoalStatus string

const (
	StatusActive GoalStatus = "active"
	StatusBanked GoalStatus = "banked"
)

// Tier classifies a result relative to a goal's thresholds.
type Tier string

const (
	TierBelow    Tier = "below"
	TierBaseline Tier = "baseline"
	TierMomentum Tier = "momentum"
	TierStretch  Tier = "stretch"
	TierBeyond   Tier = "beyond"
)

// Goal is a tracked habit or metric with adaptive thresholds.
type Goal struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Mode   GoalMode   `json:"mode"`
	Status GoalStatus `json:"status"`

	// Tier thresholds. Baseline and Momentum track the adaptive values once
	// calibration has run; Stretch only moves by explicit edit or increment.
	Baseline float64 `json:"baseline"`
	Momentum float64 `json:"momentum"`
	Stretch  float64 `json:"stretch"`

	// Adaptive overrides. Zero means "never calibrated": calibration clamps its
	// results to >= 1, so zero is unreachable as a computed value.
	AdaptiveBaseline float64 `json:"adaptive_baseline,omitempty"`
	AdaptiveMomentum float64 `json:"adaptive_momentum,omitempty"`

	Increment           float64 `json:"increment"`
	StepSize            float64 `json:"step_size"`
	Unit                string  `json:"unit,omitempty"`
	MovingAverageWindow int     `json:"moving_average_window"`

	CurrentStreak     int    `json:"current_streak"`
	LongestStreak     int    `json:"longest_streak"`
	TotalSessions     int    `json:"total_sessions"`
	LastCompletedDate string `json:"last_completed_date,omitempty"` // YYYY-MM-DD

	BankedProgress []BankedProgress `json:"banked_progress,omitempty"`
	RestDays       []string         `json:"rest_days,omitempty"` // YYYY-MM-DD

	CreatedAt time.Time `json:"created_at"`
}

// BankedProgress is an immutable checkpoint taken when a goal is banked.
type BankedProgress struct {
	Date          time.Time `json:"date"`
	Streak        int       `json:"streak"`
	TotalSessions int       `json:"total_sessions"`
	Baseline      float64   `json:"baseline"`
	Momentum      float64   `json:"momentum"`
}

// ValidModes are the allowed goal modes.
var ValidModes = map[GoalMode]bool{
	ModeCounter: true,
	ModeTimer:   true,
}

// ValidStatuses are the allowed goal lifecycle states.
var ValidStatuses = map[GoalStatus]bool{
	StatusActive: true,
	StatusBanked: true,
}
