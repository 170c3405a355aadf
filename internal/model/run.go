package model

import "time"

// TrackedRun is a run stored by the local SQLite tracking backend.
type TrackedRun struct {
	ID         int64
	UUID       string
	Experiment string
	Status     string
	StartedAt  time.Time
	EndedAt    *time.Time
	Params     map[string]string
	Metrics    map[string]float64
	Artifacts  map[string]string
}
