package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"traductor/backend/internal/logger"
	"traductor/backend/internal/model"
	"traductor/backend/internal/service/ai"
	"traductor/backend/internal/tracking"
)

// EmptyTextMessage is returned when the submitted text is blank.
const EmptyTextMessage = "Por favor ingresa un texto."

const errorPrefix = "Error: "

// TranslationService translates one request and records it as a tracking run.
type TranslationService interface {
	// Translate never returns an error; failures are reported in the result.
	Translate(ctx context.Context, req model.TranslationRequest) model.TranslationResult
}

type translationService struct {
	provider    ai.Provider
	recorder    tracking.Recorder
	rateLimiter *ai.RateLimiter
}

// NewTranslationService creates a new translation service. rateLimiter may be nil.
func NewTranslationService(provider ai.Provider, recorder tracking.Recorder, rateLimiter *ai.RateLimiter) TranslationService {
	return &translationService{
		provider:    provider,
		recorder:    recorder,
		rateLimiter: rateLimiter,
	}
}

func (s *translationService) Translate(ctx context.Context, req model.TranslationRequest) (result model.TranslationResult) {
	if strings.TrimSpace(req.Text) == "" {
		return model.TranslationResult{Output: EmptyTextMessage, Status: model.StatusRejectedEmpty}
	}
	if !model.IsSupportedLanguage(req.TargetLanguage) {
		return model.TranslationResult{
			Output: fmt.Sprintf("Idioma no soportado: %s", req.TargetLanguage),
			Status: model.StatusRejectedLanguage,
		}
	}

	// Tracking writes outlive a cancelled request so the run is always closed.
	trackCtx := context.WithoutCancel(ctx)

	run, err := s.recorder.StartRun(trackCtx)
	if err != nil {
		logger.Error("start tracking run failed", "module", "service", "action", "translate", "resource", "run", "result", "failed", "error", err)
		return errorResult(fmt.Errorf("start tracking run: %w", err), "")
	}

	var runID string
	status := tracking.StatusFinished
	defer func() {
		if p := recover(); p != nil {
			status = tracking.StatusFailed
			logger.Error("translation panicked", "module", "service", "action", "translate", "resource", "translation", "result", "failed", "run_id", runID, "panic", p)
			s.logPanicParam(trackCtx, run, fmt.Sprint(p))
			result = errorResult(fmt.Errorf("%v", p), runID)
		}
		if err := run.End(trackCtx, status); err != nil {
			logger.Warn("end tracking run failed", "module", "service", "action", "end", "resource", "run", "result", "failed", "run_id", runID, "error", err)
		}
	}()
	runID = run.ID()

	completion := ai.NewTranslationRequest(req.Text, req.TargetLanguage)

	s.logParam(trackCtx, run, tracking.ParamTargetLanguage, req.TargetLanguage)
	s.logParam(trackCtx, run, tracking.ParamOriginalLength, fmt.Sprint(utf8.RuneCountInString(req.Text)))
	s.logParam(trackCtx, run, tracking.ParamModel, s.provider.Model())

	translated, latency, err := s.complete(ctx, completion)
	if err != nil {
		logger.Warn("translation failed", "module", "service", "action", "translate", "resource", "translation", "result", "failed", "run_id", runID, "provider", s.provider.Name(), "error", err)
		s.logParam(trackCtx, run, tracking.ParamError, err.Error())
		return errorResult(err, runID)
	}

	translated = strings.TrimSpace(translated)
	latencyMS := roundMillis(latency)

	s.logMetric(trackCtx, run, tracking.MetricLatencyMS, latencyMS)
	s.logMetric(trackCtx, run, tracking.MetricResponseLength, float64(utf8.RuneCountInString(translated)))
	s.logText(trackCtx, run, req.Text, tracking.ArtifactInput)
	s.logText(trackCtx, run, translated, tracking.ArtifactOutput)

	logger.Info("translation completed", "module", "service", "action", "translate", "resource", "translation", "result", "ok", "run_id", runID, "language", req.TargetLanguage, "latency_ms", latencyMS)
	return model.TranslationResult{Output: translated, Status: model.StatusSuccess, RunID: runID}
}

// complete waits for the rate limiter and times the provider call alone.
func (s *translationService) complete(ctx context.Context, req ai.CompletionRequest) (string, time.Duration, error) {
	if s.rateLimiter != nil {
		if err := s.rateLimiter.Wait(ctx); err != nil {
			return "", 0, fmt.Errorf("rate limit: %w", err)
		}
	}

	start := time.Now()
	text, err := s.provider.Complete(ctx, req)
	return text, time.Since(start), err
}

func (s *translationService) logParam(ctx context.Context, run tracking.Run, key, value string) {
	if err := run.LogParam(ctx, key, value); err != nil {
		logger.Warn("log param failed", "module", "service", "action", "log", "resource", "run", "result", "failed", "run_id", run.ID(), "key", key, "error", err)
	}
}

// logPanicParam records the panic value on the run. The recorder itself may be
// what panicked, so a second panic here is swallowed to keep End reachable.
func (s *translationService) logPanicParam(ctx context.Context, run tracking.Run, value string) {
	defer func() {
		if p := recover(); p != nil {
			logger.Warn("log param failed", "module", "service", "action", "log", "resource", "run", "result", "failed", "key", tracking.ParamError, "panic", p)
		}
	}()
	s.logParam(ctx, run, tracking.ParamError, value)
}

func (s *translationService) logMetric(ctx context.Context, run tracking.Run, key string, value float64) {
	if err := run.LogMetric(ctx, key, value); err != nil {
		logger.Warn("log metric failed", "module", "service", "action", "log", "resource", "run", "result", "failed", "run_id", run.ID(), "key", key, "error", err)
	}
}

func (s *translationService) logText(ctx context.Context, run tracking.Run, content, filename string) {
	if err := run.LogText(ctx, content, filename); err != nil {
		logger.Warn("log artifact failed", "module", "service", "action", "log", "resource", "run", "result", "failed", "run_id", run.ID(), "file", filename, "error", err)
	}
}

func errorResult(err error, runID string) model.TranslationResult {
	return model.TranslationResult{Output: errorPrefix + err.Error(), Status: model.StatusError, RunID: runID}
}

// roundMillis converts d to milliseconds rounded to two decimals.
func roundMillis(d time.Duration) float64 {
	ms := float64(d) / float64(time.Millisecond)
	return math.Round(ms*100) / 100
}
