package tracking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"traductor/backend/internal/model"
	"traductor/backend/internal/repository"
	"traductor/backend/internal/snowflake"
)

// SQLiteRecorder stores runs in the local database.
type SQLiteRecorder struct {
	runs       repository.RunRepository
	experiment string
}

// NewSQLiteRecorder creates a recorder backed by runs.
func NewSQLiteRecorder(runs repository.RunRepository, experiment string) *SQLiteRecorder {
	if experiment == "" {
		experiment = DefaultExperiment
	}
	return &SQLiteRecorder{runs: runs, experiment: experiment}
}

func (s *SQLiteRecorder) StartRun(ctx context.Context) (Run, error) {
	run := model.TrackedRun{
		ID:         snowflake.NextID(),
		UUID:       uuid.NewString(),
		Experiment: s.experiment,
		Status:     statusRunning,
		StartedAt:  time.Now(),
	}
	if err := s.runs.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}
	return &sqliteRun{runs: s.runs, id: run.ID, uuid: run.UUID}, nil
}

// Ping runs a trivial query against the run store.
func (s *SQLiteRecorder) Ping(ctx context.Context) error {
	_, err := s.runs.ListRecent(ctx, 1)
	return err
}

type sqliteRun struct {
	runs repository.RunRepository
	id   int64
	uuid string

	mu    sync.Mutex
	ended bool
}

func (r *sqliteRun) ID() string {
	return r.uuid
}

func (r *sqliteRun) LogParam(ctx context.Context, key, value string) error {
	if err := r.checkOpen(); err != nil {
		return err
	}
	return r.runs.SetParam(ctx, r.id, key, value)
}

func (r *sqliteRun) LogMetric(ctx context.Context, key string, value float64) error {
	if err := r.checkOpen(); err != nil {
		return err
	}
	return r.runs.SetMetric(ctx, r.id, key, value, time.Now())
}

func (r *sqliteRun) LogText(ctx context.Context, content, filename string) error {
	if err := r.checkOpen(); err != nil {
		return err
	}
	return r.runs.SaveArtifact(ctx, r.id, filename, content)
}

func (r *sqliteRun) End(ctx context.Context, status RunStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ended {
		return nil
	}
	if err := r.runs.Finish(ctx, r.id, string(status), time.Now()); err != nil {
		return fmt.Errorf("end run: %w", err)
	}
	r.ended = true
	return nil
}

func (r *sqliteRun) checkOpen() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ended {
		return ErrRunEnded
	}
	return nil
}
