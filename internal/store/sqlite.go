package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/wanplusss/momento/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
	now     func() time.Time
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS goals (
		id                TEXT PRIMARY KEY,
		name              TEXT NOT NULL,
		mode              TEXT NOT NULL DEFAULT 'counter',
		status            TEXT NOT NULL DEFAULT 'active',
		baseline          REAL NOT NULL,
		momentum          REAL NOT NULL,
		stretch           REAL NOT NULL,
		adaptive_baseline REAL NOT NULL DEFAULT 0,
		adaptive_momentum REAL NOT NULL DEFAULT 0,
		increment         REAL NOT NULL DEFAULT 1,
		step_size         REAL NOT NULL DEFAULT 1,
		unit              TEXT NOT NULL DEFAULT '',
		ma_window         INTEGER NOT NULL DEFAULT 5,
		current_streak    INTEGER NOT NULL DEFAULT 0,
		longest_streak    INTEGER NOT NULL DEFAULT 0,
		total_sessions    INTEGER NOT NULL DEFAULT 0,
		last_completed    TEXT,
		banked_progress   TEXT,
		rest_days         TEXT,
		created_at        TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_goals_status ON goals(status);
	CREATE INDEX IF NOT EXISTS idx_goals_created ON goals(created_at DESC);

	CREATE TABLE IF NOT EXISTS sessions (
		id            TEXT PRIMARY KEY,
		goal_id       TEXT NOT NULL REFERENCES goals(id),
		original_goal TEXT NOT NULL,
		prediction    REAL NOT NULL DEFAULT 0,
		final_count   REAL NOT NULL,
		breakthroughs INTEGER NOT NULL DEFAULT 0,
		tier          TEXT NOT NULL,
		start_time    TEXT NOT NULL,
		end_time      TEXT NOT NULL,
		hit_history   TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_goal ON sessions(goal_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_end ON sessions(end_time);
	`
	_, err := s.db.Exec(schema)
	return err
}

// querier abstracts *sql.DB and *sql.Tx so reads and writes compose inside a
// single transaction.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func (s *SQLiteStore) CreateGoal(ctx context.Context, p CreateGoalParams) (*model.Goal, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("goal name is required")
	}
	mode := p.Mode
	if mode == "" {
		mode = model.ModeCounter
	}
	if !model.ValidModes[mode] {
		return nil, fmt.Errorf("invalid mode %q (valid: counter, timer)", mode)
	}

	g := &model.Goal{
		ID:                  s.newID(),
		Name:                p.Name,
		Mode:                mode,
		Status:              model.StatusActive,
		Baseline:            p.Baseline,
		Momentum:            p.Momentum,
		Stretch:             p.Stretch,
		Increment:           p.Increment,
		StepSize:            p.StepSize,
		Unit:                p.Unit,
		MovingAverageWindow: p.MovingAverageWindow,
		CreatedAt:           s.now().UTC(),
	}

	// Defaults match the original goal wizard.
	if g.Baseline == 0 {
		g.Baseline = 1
	}
	if g.Momentum == 0 {
		g.Momentum = 3
	}
	if g.Stretch == 0 {
		g.Stretch = 5
	}
	if g.Increment == 0 {
		g.Increment = 1
	}
	if g.StepSize == 0 {
		g.StepSize = 1
	}
	if g.MovingAverageWindow < 1 {
		g.MovingAverageWindow = 5
	}

	// Thresholds are ordered ascending from the start.
	t := []float64{g.Baseline, g.Momentum, g.Stretch}
	sort.Float64s(t)
	g.Baseline, g.Momentum, g.Stretch = t[0], t[1], t[2]

	if err := insertGoal(ctx, s.db, g); err != nil {
		return nil, fmt.Errorf("insert goal: %w", err)
	}
	return g, nil
}

func (s *SQLiteStore) GetGoal(ctx context.Context, id string) (*model.Goal, error) {
	return getGoal(ctx, s.db, id)
}

func (s *SQLiteStore) ListGoals(ctx context.Context, p ListGoalsParams) ([]model.Goal, error) {
	query := goalColumns + ` FROM goals`
	var args []interface{}
	if p.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(p.Status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []model.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *g)
	}
	return goals, rows.Err()
}

func (s *SQLiteStore) DeleteGoal(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := getGoal(ctx, tx, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE goal_id = ?`, id); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) SessionsByGoal(ctx context.Context, goalID string) ([]model.Session, error) {
	return sessionsByGoal(ctx, s.db, goalID)
}

// Sessions returns every session across all goals, end time ascending.
func (s *SQLiteStore) Sessions(ctx context.Context) ([]model.Session, error) {
	rows, err := s.db.QueryContext(ctx, sessionColumns+` FROM sessions ORDER BY end_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const goalColumns = `SELECT id, name, mode, status, baseline, momentum, stretch,
	adaptive_baseline, adaptive_momentum, increment, step_size, unit, ma_window,
	current_streak, longest_streak, total_sessions, last_completed,
	banked_progress, rest_days, created_at`

const sessionColumns = `SELECT id, goal_id, original_goal, prediction, final_count,
	breakthroughs, tier, start_time, end_time, hit_history`

func getGoal(ctx context.Context, q querier, id string) (*model.Goal, error) {
	row := q.QueryRowContext(ctx, goalColumns+` FROM goals WHERE id = ?`, id)
	g, err := scanGoal(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrGoalNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

func sessionsByGoal(ctx context.Context, q querier, goalID string) ([]model.Session, error) {
	rows, err := q.QueryContext(ctx,
		sessionColumns+` FROM sessions WHERE goal_id = ? ORDER BY end_time`, goalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

func collectSessions(rows *sql.Rows) ([]model.Session, error) {
	var sessions []model.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *sess)
	}
	return sessions, rows.Err()
}

func insertGoal(ctx context.Context, q querier, g *model.Goal) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO goals (id, name, mode, status, baseline, momentum, stretch,
			adaptive_baseline, adaptive_momentum, increment, step_size, unit, ma_window,
			current_streak, longest_streak, total_sessions, last_completed,
			banked_progress, rest_days, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Name, string(g.Mode), string(g.Status), g.Baseline, g.Momentum, g.Stretch,
		g.AdaptiveBaseline, g.AdaptiveMomentum, g.Increment, g.StepSize, g.Unit,
		g.MovingAverageWindow, g.CurrentStreak, g.LongestStreak, g.TotalSessions,
		nullString(g.LastCompletedDate), marshalJSON(g.BankedProgress), marshalJSON(g.RestDays),
		g.CreatedAt.UTC().Format(time.RFC3339Nano))
	return err
}

func putGoal(ctx context.Context, q querier, g *model.Goal) error {
	_, err := q.ExecContext(ctx, `
		UPDATE goals SET name = ?, mode = ?, status = ?, baseline = ?, momentum = ?,
			stretch = ?, adaptive_baseline = ?, adaptive_momentum = ?, increment = ?,
			step_size = ?, unit = ?, ma_window = ?, current_streak = ?, longest_streak = ?,
			total_sessions = ?, last_completed = ?, banked_progress = ?, rest_days = ?
		WHERE id = ?`,
		g.Name, string(g.Mode), string(g.Status), g.Baseline, g.Momentum, g.Stretch,
		g.AdaptiveBaseline, g.AdaptiveMomentum, g.Increment, g.StepSize, g.Unit,
		g.MovingAverageWindow, g.CurrentStreak, g.LongestStreak, g.TotalSessions,
		nullString(g.LastCompletedDate), marshalJSON(g.BankedProgress), marshalJSON(g.RestDays),
		g.ID)
	return err
}

func insertSession(ctx context.Context, q querier, sess *model.Session) error {
	og, err := json.Marshal(sess.OriginalGoal)
	if err != nil {
		return fmt.Errorf("marshal threshold snapshot: %w", err)
	}
	_, err = q.ExecContext(ctx, `
		INSERT INTO sessions (id, goal_id, original_goal, prediction, final_count,
			breakthroughs, tier, start_time, end_time, hit_history)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.GoalID, string(og), sess.Prediction, sess.FinalCount,
		sess.Breakthroughs, string(sess.Tier),
		sess.StartTime.UTC().Format(time.RFC3339Nano),
		sess.EndTime.UTC().Format(time.RFC3339Nano),
		marshalJSON(sess.HitHistory))
	return err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanGoal(row scanner) (*model.Goal, error) {
	var g model.Goal
	var mode, status, createdAt string
	var lastCompleted, banked, rest sql.NullString

	err := row.Scan(
		&g.ID, &g.Name, &mode, &status, &g.Baseline, &g.Momentum, &g.Stretch,
		&g.AdaptiveBaseline, &g.AdaptiveMomentum, &g.Increment, &g.StepSize, &g.Unit,
		&g.MovingAverageWindow, &g.CurrentStreak, &g.LongestStreak, &g.TotalSessions,
		&lastCompleted, &banked, &rest, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	g.Mode = model.GoalMode(mode)
	g.Status = model.GoalStatus(status)
	g.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	if lastCompleted.Valid {
		g.LastCompletedDate = lastCompleted.String
	}
	if banked.Valid {
		json.Unmarshal([]byte(banked.String), &g.BankedProgress)
	}
	if rest.Valid {
		json.Unmarshal([]byte(rest.String), &g.RestDays)
	}
	return &g, nil
}

func scanSession(row scanner) (*model.Session, error) {
	var sess model.Session
	var og, tier, startTime, endTime string
	var hits sql.NullString

	err := row.Scan(
		&sess.ID, &sess.GoalID, &og, &sess.Prediction, &sess.FinalCount,
		&sess.Breakthroughs, &tier, &startTime, &endTime, &hits,
	)
	if err != nil {
		return nil, err
	}

	json.Unmarshal([]byte(og), &sess.OriginalGoal)
	sess.Tier = model.Tier(tier)
	sess.StartTime, _ = time.Parse(time.RFC3339Nano, startTime)
	sess.EndTime, _ = time.Parse(time.RFC3339Nano, endTime)
	if hits.Valid {
		json.Unmarshal([]byte(hits.String), &sess.HitHistory)
	}
	return &sess, nil
}

// marshalJSON serializes a nested collection, mapping empty to NULL.
func marshalJSON(v interface{}) interface{} {
	b, err := json.Marshal(v)
	if err != nil || string(b) == "null" {
		return nil
	}
	return string(b)
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
