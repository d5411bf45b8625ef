package store

import (
	"context"
	"fmt"

	"github.com/wanplusss/momento/internal/model"
)

// Export bundles all goals and sessions for backup or migration.
type Export struct {
	Goals    []model.Goal    `json:"goals"`
	Sessions []model.Session `json:"sessions"`
}

// ExportAll returns every goal and session in the database.
func (s *SQLiteStore) ExportAll(ctx context.Context) (*Export, error) {
	goals, err := s.ListGoals(ctx, ListGoalsParams{})
	if err != nil {
		return nil, fmt.Errorf("export goals: %w", err)
	}
	sessions, err := s.Sessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("export sessions: %w", err)
	}
	return &Export{Goals: goals, Sessions: sessions}, nil
}

// Import restores an export verbatim, original IDs and derived fields
// included. Everything lands in one transaction so a half-imported backup
// can't exist. Returns the number of records written.
func (s *SQLiteStore) Import(ctx context.Context, e *Export) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	imported := 0
	for i := range e.Goals {
		if err := insertGoal(ctx, tx, &e.Goals[i]); err != nil {
			return 0, fmt.Errorf("import goal %s: %w", e.Goals[i].ID, err)
		}
		imported++
	}
	for i := range e.Sessions {
		if err := insertSession(ctx, tx, &e.Sessions[i]); err != nil {
			return 0, fmt.Errorf("import session %s: %w", e.Sessions[i].ID, err)
		}
		imported++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return imported, nil
}
