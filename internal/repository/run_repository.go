package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"traductor/backend/internal/model"
)

var (
	ErrRunNotFound   = errors.New("run not found")
	ErrAlreadyLogged = errors.New("value already logged for this run")
)

// RunRepository stores tracking runs for the local SQLite backend.
// Params, metrics and artifacts are write-once per key.
type RunRepository interface {
	Create(ctx context.Context, run model.TrackedRun) error
	SetParam(ctx context.Context, runID int64, key, value string) error
	SetMetric(ctx context.Context, runID int64, key string, value float64, at time.Time) error
	SaveArtifact(ctx context.Context, runID int64, path, content string) error
	Finish(ctx context.Context, runID int64, status string, endedAt time.Time) error
	GetByUUID(ctx context.Context, runUUID string) (*model.TrackedRun, error)
	ListRecent(ctx context.Context, limit int) ([]model.TrackedRun, error)
}

type runRepository struct {
	db *sql.DB
	sq sq.StatementBuilderType
}

// NewRunRepository creates a new run repository.
func NewRunRepository(db *sql.DB) RunRepository {
	return &runRepository{db: db, sq: sq.StatementBuilder}
}

func (r *runRepository) Create(ctx context.Context, run model.TrackedRun) error {
	q := r.sq.Insert("runs").
		Columns("id", "run_uuid", "experiment", "status", "started_at").
		Values(run.ID, run.UUID, run.Experiment, run.Status, formatTime(run.StartedAt))
	return r.exec(ctx, q)
}

func (r *runRepository) SetParam(ctx context.Context, runID int64, key, value string) error {
	q := r.sq.Insert("run_params").
		Columns("run_id", "key", "value").
		Values(runID, key, value)
	return r.insertOnce(ctx, q, "param", key)
}

func (r *runRepository) SetMetric(ctx context.Context, runID int64, key string, value float64, at time.Time) error {
	q := r.sq.Insert("run_metrics").
		Columns("run_id", "key", "value", "recorded_at").
		Values(runID, key, value, formatTime(at))
	return r.insertOnce(ctx, q, "metric", key)
}

func (r *runRepository) SaveArtifact(ctx context.Context, runID int64, path, content string) error {
	q := r.sq.Insert("run_artifacts").
		Columns("run_id", "path", "content", "created_at").
		Values(runID, path, content, formatTime(time.Now()))
	return r.insertOnce(ctx, q, "artifact", path)
}

func (r *runRepository) Finish(ctx context.Context, runID int64, status string, endedAt time.Time) error {
	sqlStr, args, err := r.sq.Update("runs").
		Set("status", status).
		Set("ended_at", formatTime(endedAt)).
		Where(sq.Eq{"id": runID}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRunNotFound
	}
	return nil
}

func (r *runRepository) GetByUUID(ctx context.Context, runUUID string) (*model.TrackedRun, error) {
	sqlStr, args, err := r.selectRuns().Where(sq.Eq{"run_uuid": runUUID}).Limit(1).ToSql()
	if err != nil {
		return nil, err
	}

	run, err := scanRun(r.db.QueryRowContext(ctx, sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadDetails(ctx, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *runRepository) ListRecent(ctx context.Context, limit int) ([]model.TrackedRun, error) {
	if limit <= 0 {
		limit = 20
	}
	sqlStr, args, err := r.selectRuns().OrderBy("started_at DESC", "id DESC").Limit(uint64(limit)).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []model.TrackedRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		if err := r.loadDetails(ctx, &runs[i]); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (r *runRepository) selectRuns() sq.SelectBuilder {
	return r.sq.Select("id", "run_uuid", "experiment", "status", "started_at", "ended_at").From("runs")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (model.TrackedRun, error) {
	var run model.TrackedRun
	var startedAt string
	var endedAt sql.NullString
	if err := row.Scan(&run.ID, &run.UUID, &run.Experiment, &run.Status, &startedAt, &endedAt); err != nil {
		return run, err
	}
	run.StartedAt, _ = parseTime(startedAt)
	if endedAt.Valid {
		run.EndedAt = parseTimePtr(endedAt.String)
	}
	return run, nil
}

// loadDetails fills params, metrics and artifacts of run.
func (r *runRepository) loadDetails(ctx context.Context, run *model.TrackedRun) error {
	run.Params = map[string]string{}
	run.Metrics = map[string]float64{}
	run.Artifacts = map[string]string{}

	if err := r.queryPairs(ctx, r.sq.Select("key", "value").From("run_params").Where(sq.Eq{"run_id": run.ID}), func(rows *sql.Rows) error {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return err
		}
		run.Params[k] = v
		return nil
	}); err != nil {
		return fmt.Errorf("load params: %w", err)
	}

	if err := r.queryPairs(ctx, r.sq.Select("key", "value").From("run_metrics").Where(sq.Eq{"run_id": run.ID}), func(rows *sql.Rows) error {
		var k string
		var v float64
		if err := rows.Scan(&k, &v); err != nil {
			return err
		}
		run.Metrics[k] = v
		return nil
	}); err != nil {
		return fmt.Errorf("load metrics: %w", err)
	}

	if err := r.queryPairs(ctx, r.sq.Select("path", "content").From("run_artifacts").Where(sq.Eq{"run_id": run.ID}), func(rows *sql.Rows) error {
		var p, c string
		if err := rows.Scan(&p, &c); err != nil {
			return err
		}
		run.Artifacts[p] = c
		return nil
	}); err != nil {
		return fmt.Errorf("load artifacts: %w", err)
	}

	return nil
}

func (r *runRepository) queryPairs(ctx context.Context, q sq.SelectBuilder, scan func(*sql.Rows) error) error {
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (r *runRepository) exec(ctx context.Context, q sq.Sqlizer) error {
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *runRepository) insertOnce(ctx context.Context, q sq.InsertBuilder, kind, key string) error {
	err := r.exec(ctx, q)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %s %q", ErrAlreadyLogged, kind, key)
	case isForeignKeyViolation(err):
		return ErrRunNotFound
	default:
		return err
	}
}

func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "PRIMARY KEY")
}

func isForeignKeyViolation(err error) bool {
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
