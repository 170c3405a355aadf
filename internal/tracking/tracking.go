package tracking

//go:generate mockgen -source=tracking.go -destination=mock/mock_tracking.go -package=mock

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"traductor/backend/internal/repository"
)

// RunStatus is the terminal status a run is closed with.
type RunStatus string

const (
	StatusFinished RunStatus = "FINISHED"
	StatusFailed   RunStatus = "FAILED"

	statusRunning = "RUNNING"
)

// Names recorded for every translation run.
const (
	ParamTargetLanguage = "idioma_objetivo"
	ParamOriginalLength = "longitud_original"
	ParamModel          = "modelo_usado"
	ParamError          = "error"

	MetricLatencyMS      = "latencia_ms"
	MetricResponseLength = "longitud_respuesta"

	ArtifactInput  = "input_text.txt"
	ArtifactOutput = "output_translation.txt"
)

const (
	BackendMLflow = "mlflow"
	BackendSQLite = "sqlite"
)

var (
	ErrInvalidBackend         = errors.New("invalid tracking backend")
	ErrMissingTrackingURI     = errors.New("tracking uri is required")
	ErrMissingRepository      = errors.New("run repository is required")
	ErrRunEnded               = errors.New("run already ended")
	ErrUnsupportedArtifactURI = errors.New("unsupported artifact uri")
)

// Recorder opens tracking runs. Implementations are safe for concurrent use.
type Recorder interface {
	StartRun(ctx context.Context) (Run, error)
}

// Run is a single tracked invocation. A run belongs to one request and is
// never shared. Writes after End fail with ErrRunEnded.
type Run interface {
	ID() string
	LogParam(ctx context.Context, key, value string) error
	LogMetric(ctx context.Context, key string, value float64) error
	LogText(ctx context.Context, content, filename string) error
	// End closes the run. Calls after the first successful one are no-ops.
	End(ctx context.Context, status RunStatus) error
}

// Pinger reports whether the tracking backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config selects and configures a tracking backend.
type Config struct {
	Backend     string
	TrackingURI string
	Experiment  string
	Runs        repository.RunRepository
}

// NewRecorder creates the recorder for cfg.Backend.
func NewRecorder(cfg Config, httpClient *http.Client) (Recorder, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendMLflow:
		if cfg.TrackingURI == "" {
			return nil, ErrMissingTrackingURI
		}
		return NewMLflowRecorder(cfg.TrackingURI, cfg.Experiment, httpClient), nil
	case BackendSQLite:
		if cfg.Runs == nil {
			return nil, ErrMissingRepository
		}
		return NewSQLiteRecorder(cfg.Runs, cfg.Experiment), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidBackend, cfg.Backend)
	}
}
