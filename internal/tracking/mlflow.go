package tracking

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"traductor/backend/internal/logger"
)

// DefaultExperiment is used when no experiment name is configured.
const DefaultExperiment = "Traductor-GENAI"

const (
	mlflowAPIPrefix       = "/api/2.0/mlflow"
	mlflowArtifactsPrefix = "/api/2.0/mlflow-artifacts/artifacts"
	mlflowArtifactsScheme = "mlflow-artifacts"

	// MLflow rejects param values longer than this.
	maxParamValueLength = 6000

	errorCodeNotFound = "RESOURCE_DOES_NOT_EXIST"
	lifecycleDeleted  = "deleted"
)

// APIError is an error response from the MLflow tracking server.
type APIError struct {
	StatusCode int    `json:"-"`
	ErrorCode  string `json:"error_code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.ErrorCode == "" {
		return fmt.Sprintf("mlflow: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("mlflow: status %d: %s: %s", e.StatusCode, e.ErrorCode, e.Message)
}

// IsNotFound reports whether err is an MLflow RESOURCE_DOES_NOT_EXIST error.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode == errorCodeNotFound
}

type mlflowExperiment struct {
	ExperimentID     string `json:"experiment_id"`
	Name             string `json:"name"`
	ArtifactLocation string `json:"artifact_location"`
	LifecycleStage   string `json:"lifecycle_stage"`
}

type mlflowTag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type mlflowRunInfo struct {
	RunID        string `json:"run_id"`
	ExperimentID string `json:"experiment_id"`
	Status       string `json:"status"`
	ArtifactURI  string `json:"artifact_uri"`
}

// MLflowRecorder records runs through the MLflow REST API.
type MLflowRecorder struct {
	client     *resty.Client
	experiment string

	mu           sync.Mutex
	experimentID string

	artifactWarn sync.Once
}

// NewMLflowRecorder creates a recorder for the tracking server at trackingURI.
// The experiment is resolved on the first StartRun and created when missing.
func NewMLflowRecorder(trackingURI, experiment string, httpClient *http.Client) *MLflowRecorder {
	var client *resty.Client
	if httpClient != nil {
		client = resty.NewWithClient(httpClient)
	} else {
		client = resty.New()
	}
	client.SetBaseURL(strings.TrimRight(trackingURI, "/"))

	if experiment == "" {
		experiment = DefaultExperiment
	}
	return &MLflowRecorder{client: client, experiment: experiment}
}

// StartRun resolves the experiment and creates a new run in it.
func (m *MLflowRecorder) StartRun(ctx context.Context) (Run, error) {
	experimentID, err := m.resolveExperiment(ctx)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Run struct {
			Info mlflowRunInfo `json:"info"`
		} `json:"run"`
	}
	body := map[string]any{
		"experiment_id": experimentID,
		"start_time":    time.Now().UnixMilli(),
		"tags": []mlflowTag{
			{Key: "mlflow.source.type", Value: "LOCAL"},
			{Key: "mlflow.source.name", Value: "traductor"},
		},
	}
	if err := m.post(ctx, "/runs/create", body, &resp); err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}
	if resp.Run.Info.RunID == "" {
		return nil, errors.New("create run: empty run id")
	}

	// Text artifacts only go through the artifact proxy. Other stores still
	// get params and metrics, so say it once instead of on every run.
	if _, err := artifactRoot(resp.Run.Info.ArtifactURI); err != nil {
		m.artifactWarn.Do(func() {
			logger.Warn("artifact store not proxied, text artifacts will be skipped", "module", "tracking", "action", "start", "resource", "run", "result", "degraded", "run_id", resp.Run.Info.RunID, "error", err, "hint", "start the server with --serve-artifacts")
		})
	}

	return &mlflowRun{
		recorder:    m,
		id:          resp.Run.Info.RunID,
		artifactURI: resp.Run.Info.ArtifactURI,
	}, nil
}

// Ping checks the tracking server's health endpoint.
func (m *MLflowRecorder) Ping(ctx context.Context) error {
	return m.do(m.client.R().SetContext(ctx), http.MethodGet, "/health")
}

// resolveExperiment returns the cached experiment id, looking the experiment
// up by name and creating it on first use.
func (m *MLflowRecorder) resolveExperiment(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.experimentID != "" {
		return m.experimentID, nil
	}

	var found struct {
		Experiment mlflowExperiment `json:"experiment"`
	}
	err := m.get(ctx, "/experiments/get-by-name", map[string]string{"experiment_name": m.experiment}, &found)
	switch {
	case err == nil:
		if found.Experiment.LifecycleStage == lifecycleDeleted {
			return "", fmt.Errorf("experiment %q is deleted; restore it or choose another name", m.experiment)
		}
		m.experimentID = found.Experiment.ExperimentID
	case IsNotFound(err):
		var created struct {
			ExperimentID string `json:"experiment_id"`
		}
		if err := m.post(ctx, "/experiments/create", map[string]any{"name": m.experiment}, &created); err != nil {
			return "", fmt.Errorf("create experiment: %w", err)
		}
		m.experimentID = created.ExperimentID
		logger.Info("mlflow experiment created", "module", "tracking", "action", "create", "resource", "experiment", "result", "ok", "experiment", m.experiment, "experiment_id", created.ExperimentID)
	default:
		return "", fmt.Errorf("get experiment: %w", err)
	}

	if m.experimentID == "" {
		return "", errors.New("mlflow returned an empty experiment id")
	}
	return m.experimentID, nil
}

func (m *MLflowRecorder) get(ctx context.Context, path string, query map[string]string, result any) error {
	req := m.client.R().SetContext(ctx).SetQueryParams(query).SetResult(result)
	return m.do(req, http.MethodGet, mlflowAPIPrefix+path)
}

func (m *MLflowRecorder) post(ctx context.Context, path string, body, result any) error {
	req := m.client.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if result != nil {
		req.SetResult(result)
	}
	return m.do(req, http.MethodPost, mlflowAPIPrefix+path)
}

func (m *MLflowRecorder) do(req *resty.Request, method, path string) error {
	apiErr := &APIError{}
	resp, err := req.SetError(apiErr).Execute(method, path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		apiErr.StatusCode = resp.StatusCode()
		if apiErr.ErrorCode == "" && apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(resp.String())
		}
		return apiErr
	}
	return nil
}

type mlflowRun struct {
	recorder    *MLflowRecorder
	id          string
	artifactURI string

	mu    sync.Mutex
	ended bool
}

func (r *mlflowRun) ID() string {
	return r.id
}

func (r *mlflowRun) LogParam(ctx context.Context, key, value string) error {
	if err := r.checkOpen(); err != nil {
		return err
	}
	body := map[string]any{
		"run_id": r.id,
		"key":    key,
		"value":  truncate(value, maxParamValueLength),
	}
	if err := r.recorder.post(ctx, "/runs/log-parameter", body, nil); err != nil {
		return fmt.Errorf("log param %s: %w", key, err)
	}
	return nil
}

func (r *mlflowRun) LogMetric(ctx context.Context, key string, value float64) error {
	if err := r.checkOpen(); err != nil {
		return err
	}
	body := map[string]any{
		"run_id":    r.id,
		"key":       key,
		"value":     value,
		"timestamp": time.Now().UnixMilli(),
		"step":      0,
	}
	if err := r.recorder.post(ctx, "/runs/log-metric", body, nil); err != nil {
		return fmt.Errorf("log metric %s: %w", key, err)
	}
	return nil
}

// LogText uploads content as a text artifact through the tracking server's
// artifact proxy.
func (r *mlflowRun) LogText(ctx context.Context, content, filename string) error {
	if err := r.checkOpen(); err != nil {
		return err
	}
	root, err := artifactRoot(r.artifactURI)
	if err != nil {
		return err
	}

	path := mlflowArtifactsPrefix + "/" + root + "/" + url.PathEscape(filename)
	req := r.recorder.client.R().SetContext(ctx).
		SetHeader("Content-Type", "text/plain; charset=utf-8").
		SetBody([]byte(content))
	if err := r.recorder.do(req, http.MethodPut, path); err != nil {
		return fmt.Errorf("log artifact %s: %w", filename, err)
	}
	return nil
}

func (r *mlflowRun) End(ctx context.Context, status RunStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ended {
		return nil
	}

	body := map[string]any{
		"run_id":   r.id,
		"status":   string(status),
		"end_time": time.Now().UnixMilli(),
	}
	if err := r.recorder.post(ctx, "/runs/update", body, nil); err != nil {
		return fmt.Errorf("end run: %w", err)
	}
	r.ended = true
	return nil
}

func (r *mlflowRun) checkOpen() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ended {
		return ErrRunEnded
	}
	return nil
}

// artifactRoot returns the artifact proxy path of a run, e.g.
// "mlflow-artifacts:/1/abc/artifacts" becomes "1/abc/artifacts".
func artifactRoot(artifactURI string) (string, error) {
	u, err := url.Parse(artifactURI)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedArtifactURI, artifactURI)
	}
	if u.Scheme != mlflowArtifactsScheme {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedArtifactURI, artifactURI)
	}
	root := strings.Trim(u.Path, "/")
	if root == "" {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedArtifactURI, artifactURI)
	}
	return root, nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
