package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"element-quiz/internal/domain"
	"element-quiz/internal/infra/memory"

	_ "modernc.org/sqlite" // driver: sqlite
)

const defaultDSN = "file:element-quiz.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"

const schema = `
CREATE TABLE IF NOT EXISTS quiz_results (
  session_id  TEXT PRIMARY KEY,
  user_id     TEXT NOT NULL,
  mode        TEXT NOT NULL,
  element     INTEGER NOT NULL DEFAULT 0,
  correct     INTEGER NOT NULL,
  total       INTEGER NOT NULL,
  missed_json TEXT NOT NULL DEFAULT '[]',
  learned     INTEGER NOT NULL DEFAULT 0,
  finished_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS quiz_results_user_id_idx ON quiz_results (user_id);
`

// Open opens (or creates) the local results database and ensures its schema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := defaultDSN
	if path != "" {
		dsn = "file:" + path + "?mode=rwc&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return db, nil
}

// ResultStore keeps finished sessions in a single-file SQLite database,
// which suits the single-device CLI.
type ResultStore struct {
	db *sql.DB
}

func NewResultStore(db *sql.DB) *ResultStore {
	return &ResultStore{db: db}
}

func (s *ResultStore) Record(ctx context.Context, result domain.Result) error {
	missed := result.Missed
	if missed == nil {
		missed = []string{}
	}
	missedJSON, err := json.Marshal(missed)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO quiz_results (session_id, user_id, mode, element, correct, total, missed_json, learned, finished_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(session_id) DO NOTHING`,
		result.SessionID, result.UserID, string(result.Mode), result.Element,
		result.Correct, result.Total, string(missedJSON), result.Learned, result.FinishedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

func (s *ResultStore) Progress(ctx context.Context, userID string) (domain.Progress, error) {
	results, err := s.Results(ctx, userID)
	if err != nil {
		return domain.Progress{}, err
	}
	return memory.Summarize(userID, results), nil
}

// Results lists a user's finished sessions, oldest first.
func (s *ResultStore) Results(ctx context.Context, userID string) ([]domain.Result, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT session_id, mode, element, correct, total, missed_json, learned, finished_at
FROM quiz_results WHERE user_id = ? ORDER BY finished_at, session_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("select results: %w", err)
	}
	defer rows.Close()

	var results []domain.Result
	for rows.Next() {
		var (
			r          domain.Result
			mode       string
			missedJSON string
			finishedAt int64
		)
		if err := rows.Scan(&r.SessionID, &mode, &r.Element, &r.Correct, &r.Total, &missedJSON, &r.Learned, &finishedAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if err := json.Unmarshal([]byte(missedJSON), &r.Missed); err != nil {
			return nil, fmt.Errorf("decode missed kinds: %w", err)
		}
		r.UserID = userID
		r.Mode = domain.Mode(mode)
		r.FinishedAt = time.UnixMilli(finishedAt).UTC()
		results = append(results, r)
	}
	return results, rows.Err()
}
