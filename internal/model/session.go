package model

import "time"

// ThresholdSnapshot is a denormalized copy of a goal's thresholds at session
// time, so historical tiers stay interpretable after the goal recalibrates.
type ThresholdSnapshot struct {
	Baseline float64 `json:"baseline"`
	Momentum float64 `json:"momentum"`
	Stretch  float64 `json:"stretch"`
}

// Hit is one incremental progress event within a session.
type Hit struct {
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
	Tier      Tier      `json:"tier"`
}

// Session is one completed unit of activity against a goal. Immutable once
// written.
type Session struct {
	ID     string `json:"id"`
	GoalID string `json:"goal_id"`

	OriginalGoal ThresholdSnapshot `json:"original_goal"`

	Prediction    float64 `json:"prediction,omitempty"`
	FinalCount    float64 `json:"final_count"`
	Breakthroughs int     `json:"breakthroughs"`
	Tier          Tier    `json:"tier"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	HitHistory []Hit `json:"hit_history,omitempty"`
}
