package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath        string      `json:"db_path"`
	DBSizeBytes   int64       `json:"db_size_bytes"`
	TotalGoals    int         `json:"total_goals"`
	ActiveGoals   int         `json:"active_goals"`
	BankedGoals   int         `json:"banked_goals"`
	TotalSessions int         `json:"total_sessions"`
	Goals         []GoalStats `json:"goals"`
}

// GoalStats holds per-goal counts.
type GoalStats struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
	Streak   int    `json:"streak"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	// DB file size
	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM goals`).Scan(&st.TotalGoals)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM goals WHERE status = 'active'`).Scan(&st.ActiveGoals)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM goals WHERE status = 'banked'`).Scan(&st.BankedGoals)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&st.TotalSessions)

	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.name, g.status, g.current_streak, COUNT(s.id) as cnt
		FROM goals g LEFT JOIN sessions s ON s.goal_id = g.id
		GROUP BY g.id ORDER BY cnt DESC`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var gs GoalStats
		rows.Scan(&gs.ID, &gs.Name, &gs.Status, &gs.Streak, &gs.Sessions)
		st.Goals = append(st.Goals, gs)
	}

	return st, nil
}
