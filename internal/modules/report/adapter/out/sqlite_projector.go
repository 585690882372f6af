package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"timer/internal/modules/report/domain"
	reportout "timer/internal/modules/report/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteTaskProjector struct {
	db *sql.DB
}

func NewSQLiteTaskProjector(dbPath string) (*SQLiteTaskProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteTaskProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return projector, nil
}

var _ reportout.TaskIndexProjector = (*SQLiteTaskProjector)(nil)

func (s *SQLiteTaskProjector) Close() error {
	return s.db.Close()
}

func (s *SQLiteTaskProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS tasks (
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  start_unix INTEGER NOT NULL,
  end_unix INTEGER,
  duration_seconds INTEGER NOT NULL,
  tags TEXT NOT NULL,
  energy INTEGER
);
CREATE INDEX IF NOT EXISTS tasks_start_unix ON tasks(start_unix);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create tasks table: %w", err)
	}
	return nil
}

func (s *SQLiteTaskProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("reset tasks: %w", err)
	}
	return nil
}

func (s *SQLiteTaskProjector) UpsertTask(ctx context.Context, task domain.TaskRecord) error {
	const stmt = `
INSERT INTO tasks (id, name, start_unix, end_unix, duration_seconds, tags, energy)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name,
  start_unix=excluded.start_unix,
  end_unix=excluded.end_unix,
  duration_seconds=excluded.duration_seconds,
  tags=excluded.tags,
  energy=excluded.energy;
`
	var end sql.NullInt64
	if task.EndTime != nil {
		end = sql.NullInt64{Int64: task.EndTime.Unix(), Valid: true}
	}
	var energy sql.NullInt64
	if task.Energy != nil {
		energy = sql.NullInt64{Int64: int64(*task.Energy), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, stmt,
		task.ID,
		task.Name,
		task.StartTime.Unix(),
		end,
		int64(task.Duration/time.Second),
		strings.Join(task.Tags, ","),
		energy,
	)
	if err != nil {
		return fmt.Errorf("upsert task %d: %w", task.ID, err)
	}
	return nil
}

// Summary groups closed tasks by name, largest total first.
func (s *SQLiteTaskProjector) Summary(ctx context.Context, since time.Time) ([]domain.NameSummary, error) {
	const query = `
SELECT name, COUNT(*), SUM(duration_seconds), AVG(energy), COUNT(energy)
FROM tasks
WHERE end_unix IS NOT NULL AND start_unix >= ?
GROUP BY name
ORDER BY SUM(duration_seconds) DESC, name ASC;
`
	var from int64
	if !since.IsZero() {
		from = since.Unix()
	}
	rows, err := s.db.QueryContext(ctx, query, from)
	if err != nil {
		return nil, fmt.Errorf("query summary: %w", err)
	}
	defer rows.Close()

	var out []domain.NameSummary
	for rows.Next() {
		var (
			row     domain.NameSummary
			seconds int64
			avg     sql.NullFloat64
		)
		if err := rows.Scan(&row.Name, &row.Count, &seconds, &avg, &row.Rated); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		row.TotalDuration = time.Duration(seconds) * time.Second
		if avg.Valid {
			row.AvgEnergy = avg.Float64
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summary: %w", err)
	}
	return out, nil
}
