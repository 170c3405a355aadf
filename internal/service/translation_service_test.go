package service_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"traductor/backend/internal/model"
	"traductor/backend/internal/service"
	"traductor/backend/internal/service/ai"
	aimock "traductor/backend/internal/service/ai/mock"
	"traductor/backend/internal/tracking"
	trackingmock "traductor/backend/internal/tracking/mock"
)

type fakeRun struct {
	id string

	mu           sync.Mutex
	params       map[string]string
	metrics      map[string]float64
	artifacts    map[string]string
	ends         []tracking.RunStatus
	failWrites   bool
	panicOnParam string
}

func (r *fakeRun) ID() string { return r.id }

func (r *fakeRun) LogParam(_ context.Context, key, value string) error {
	if key == r.panicOnParam {
		panic("recorder exploded")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites {
		return errors.New("tracking server unavailable")
	}
	if _, ok := r.params[key]; ok {
		return fmt.Errorf("param %s already logged", key)
	}
	r.params[key] = value
	return nil
}

func (r *fakeRun) LogMetric(_ context.Context, key string, value float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites {
		return errors.New("tracking server unavailable")
	}
	r.metrics[key] = value
	return nil
}

func (r *fakeRun) LogText(_ context.Context, content, filename string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites {
		return errors.New("tracking server unavailable")
	}
	r.artifacts[filename] = content
	return nil
}

func (r *fakeRun) End(_ context.Context, status tracking.RunStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ends = append(r.ends, status)
	return nil
}

type fakeRecorder struct {
	mu           sync.Mutex
	runs         []*fakeRun
	failWrites   bool
	panicOnParam string
}

func (f *fakeRecorder) StartRun(context.Context) (tracking.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	run := &fakeRun{
		id:           fmt.Sprintf("run-%d", len(f.runs)+1),
		params:       map[string]string{},
		metrics:      map[string]float64{},
		artifacts:    map[string]string{},
		failWrites:   f.failWrites,
		panicOnParam: f.panicOnParam,
	}
	f.runs = append(f.runs, run)
	return run, nil
}

func (f *fakeRecorder) onlyRun(t *testing.T) *fakeRun {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.Len(t, f.runs, 1)
	return f.runs[0]
}

func newProvider(t *testing.T) *aimock.MockProvider {
	t.Helper()
	provider := aimock.NewMockProvider(gomock.NewController(t))
	provider.EXPECT().Model().Return("gemini-2.5-flash").AnyTimes()
	provider.EXPECT().Name().Return(ai.ProviderCompatible).AnyTimes()
	return provider
}

func TestTranslate_Success(t *testing.T) {
	provider := newProvider(t)
	provider.EXPECT().
		Complete(gomock.Any(), ai.NewTranslationRequest("Hello world", "Spanish")).
		Return("  Hola mundo\n", nil)

	recorder := &fakeRecorder{}
	svc := service.NewTranslationService(provider, recorder, ai.NewRateLimiter(-1))

	result := svc.Translate(context.Background(), model.TranslationRequest{Text: "Hello world", TargetLanguage: "Spanish"})
	require.Equal(t, "Hola mundo", result.Output)
	require.Equal(t, model.StatusSuccess, result.Status)
	require.True(t, result.Succeeded())

	run := recorder.onlyRun(t)
	require.Equal(t, run.id, result.RunID)
	require.Equal(t, map[string]string{
		tracking.ParamTargetLanguage: "Spanish",
		tracking.ParamOriginalLength: "11",
		tracking.ParamModel:          "gemini-2.5-flash",
	}, run.params)
	require.Equal(t, float64(10), run.metrics[tracking.MetricResponseLength])
	latency, ok := run.metrics[tracking.MetricLatencyMS]
	require.True(t, ok)
	require.GreaterOrEqual(t, latency, 0.0)
	require.Equal(t, map[string]string{
		tracking.ArtifactInput:  "Hello world",
		tracking.ArtifactOutput: "Hola mundo",
	}, run.artifacts)
	require.Equal(t, []tracking.RunStatus{tracking.StatusFinished}, run.ends)
}

func TestTranslate_LatencyRoundedToTwoDecimals(t *testing.T) {
	provider := newProvider(t)
	provider.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("Hallo", nil)

	recorder := &fakeRecorder{}
	svc := service.NewTranslationService(provider, recorder, nil)
	svc.Translate(context.Background(), model.TranslationRequest{Text: "Hello", TargetLanguage: "German"})

	latency := recorder.onlyRun(t).metrics[tracking.MetricLatencyMS]
	require.InDelta(t, math.Round(latency*100), latency*100, 1e-6)
}

func TestTranslate_CountsCharactersNotBytes(t *testing.T) {
	provider := newProvider(t)
	provider.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("こんにちは", nil)

	recorder := &fakeRecorder{}
	svc := service.NewTranslationService(provider, recorder, nil)
	svc.Translate(context.Background(), model.TranslationRequest{Text: "¿Qué tal?", TargetLanguage: "Japanese"})

	run := recorder.onlyRun(t)
	require.Equal(t, "9", run.params[tracking.ParamOriginalLength])
	require.Equal(t, float64(5), run.metrics[tracking.MetricResponseLength])
}

func TestTranslate_EmptyTextOpensNoRun(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t "} {
		provider := newProvider(t)
		recorder := trackingmock.NewMockRecorder(gomock.NewController(t))

		svc := service.NewTranslationService(provider, recorder, nil)
		result := svc.Translate(context.Background(), model.TranslationRequest{Text: text, TargetLanguage: "French"})

		require.Equal(t, service.EmptyTextMessage, result.Output)
		require.Equal(t, model.StatusRejectedEmpty, result.Status)
		require.Empty(t, result.RunID)
		require.True(t, result.Rejected())
	}
}

func TestTranslate_UnsupportedLanguageOpensNoRun(t *testing.T) {
	provider := newProvider(t)
	recorder := trackingmock.NewMockRecorder(gomock.NewController(t))

	svc := service.NewTranslationService(provider, recorder, nil)
	result := svc.Translate(context.Background(), model.TranslationRequest{Text: "Hello", TargetLanguage: "Klingon"})

	require.Equal(t, "Idioma no soportado: Klingon", result.Output)
	require.Equal(t, model.StatusRejectedLanguage, result.Status)
}

func TestTranslate_ProviderError(t *testing.T) {
	provider := newProvider(t)
	provider.EXPECT().
		Complete(gomock.Any(), gomock.Any()).
		Return("", errors.New("401 Unauthorized: API key not valid"))

	recorder := &fakeRecorder{}
	svc := service.NewTranslationService(provider, recorder, nil)

	result := svc.Translate(context.Background(), model.TranslationRequest{Text: "Hello", TargetLanguage: "Italian"})
	require.Equal(t, "Error: 401 Unauthorized: API key not valid", result.Output)
	require.Equal(t, model.StatusError, result.Status)
	require.True(t, strings.HasPrefix(result.Output, "Error: "))

	run := recorder.onlyRun(t)
	require.Equal(t, run.id, result.RunID)
	require.Equal(t, "401 Unauthorized: API key not valid", run.params[tracking.ParamError])
	require.Empty(t, run.metrics)
	require.Empty(t, run.artifacts)
	require.Equal(t, []tracking.RunStatus{tracking.StatusFinished}, run.ends)
}

func TestTranslate_RateLimitWaitErrorIsProviderFailure(t *testing.T) {
	provider := newProvider(t)
	recorder := &fakeRecorder{}
	svc := service.NewTranslationService(provider, recorder, ai.NewRateLimiter(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := svc.Translate(ctx, model.TranslationRequest{Text: "Hello", TargetLanguage: "Dutch"})

	require.Equal(t, model.StatusError, result.Status)
	require.Contains(t, result.Output, "context canceled")

	run := recorder.onlyRun(t)
	require.Contains(t, run.params[tracking.ParamError], "context canceled")
	require.Equal(t, []tracking.RunStatus{tracking.StatusFinished}, run.ends)
}

func TestTranslate_StartRunFailure(t *testing.T) {
	provider := newProvider(t)
	recorder := trackingmock.NewMockRecorder(gomock.NewController(t))
	recorder.EXPECT().StartRun(gomock.Any()).Return(nil, errors.New("connection refused"))

	svc := service.NewTranslationService(provider, recorder, nil)
	result := svc.Translate(context.Background(), model.TranslationRequest{Text: "Hello", TargetLanguage: "Russian"})

	require.Equal(t, "Error: start tracking run: connection refused", result.Output)
	require.Equal(t, model.StatusError, result.Status)
	require.Empty(t, result.RunID)
}

func TestTranslate_RecorderWriteFailuresAreIgnored(t *testing.T) {
	provider := newProvider(t)
	provider.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("Olá mundo", nil)

	recorder := &fakeRecorder{failWrites: true}
	svc := service.NewTranslationService(provider, recorder, nil)

	result := svc.Translate(context.Background(), model.TranslationRequest{Text: "Hello world", TargetLanguage: "Portuguese"})
	require.Equal(t, "Olá mundo", result.Output)
	require.Equal(t, model.StatusSuccess, result.Status)
	require.Equal(t, []tracking.RunStatus{tracking.StatusFinished}, recorder.onlyRun(t).ends)
}

func TestTranslate_PanicEndsRunAsFailed(t *testing.T) {
	provider := newProvider(t)
	recorder := &fakeRecorder{panicOnParam: tracking.ParamModel}
	svc := service.NewTranslationService(provider, recorder, nil)

	var result model.TranslationResult
	require.NotPanics(t, func() {
		result = svc.Translate(context.Background(), model.TranslationRequest{Text: "Hello", TargetLanguage: "French"})
	})
	require.Equal(t, "Error: recorder exploded", result.Output)
	require.Equal(t, model.StatusError, result.Status)

	run := recorder.onlyRun(t)
	require.Equal(t, run.id, result.RunID)
	require.Equal(t, []tracking.RunStatus{tracking.StatusFailed}, run.ends)
	require.Equal(t, "recorder exploded", run.params[tracking.ParamError])
}

func TestTranslate_ProviderPanicRecordsError(t *testing.T) {
	provider := newProvider(t)
	provider.EXPECT().
		Complete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, ai.CompletionRequest) (string, error) {
			var cache map[string]string
			cache["hit"] = "miss"
			return "", nil
		})

	recorder := &fakeRecorder{}
	svc := service.NewTranslationService(provider, recorder, nil)
	result := svc.Translate(context.Background(), model.TranslationRequest{Text: "Hello", TargetLanguage: "Korean"})

	require.Equal(t, model.StatusError, result.Status)
	require.Contains(t, result.Output, "assignment to entry in nil map")

	run := recorder.onlyRun(t)
	require.Contains(t, run.params[tracking.ParamError], "assignment to entry in nil map")
	require.Empty(t, run.metrics)
	require.Empty(t, run.artifacts)
	require.Equal(t, []tracking.RunStatus{tracking.StatusFailed}, run.ends)
}

func TestTranslate_PanicWhileRecordingPanicStillEndsRun(t *testing.T) {
	provider := newProvider(t)
	provider.EXPECT().
		Complete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, ai.CompletionRequest) (string, error) {
			panic("provider exploded")
		})

	recorder := &fakeRecorder{panicOnParam: tracking.ParamError}
	svc := service.NewTranslationService(provider, recorder, nil)

	var result model.TranslationResult
	require.NotPanics(t, func() {
		result = svc.Translate(context.Background(), model.TranslationRequest{Text: "Hello", TargetLanguage: "Arabic"})
	})
	require.Equal(t, "Error: provider exploded", result.Output)
	require.Equal(t, []tracking.RunStatus{tracking.StatusFailed}, recorder.onlyRun(t).ends)
}

func TestTranslate_EmptyProviderResponseIsError(t *testing.T) {
	provider := newProvider(t)
	provider.EXPECT().
		Complete(gomock.Any(), gomock.Any()).
		Return("", fmt.Errorf("%w (finish_reason: length)", ai.ErrEmptyResponse))

	recorder := &fakeRecorder{}
	svc := service.NewTranslationService(provider, recorder, nil)
	result := svc.Translate(context.Background(), model.TranslationRequest{Text: "Hello", TargetLanguage: "Spanish"})

	require.Equal(t, model.StatusError, result.Status)
	require.Equal(t, "Error: provider returned an empty response (finish_reason: length)", result.Output)

	run := recorder.onlyRun(t)
	require.Equal(t, "provider returned an empty response (finish_reason: length)", run.params[tracking.ParamError])
	require.Empty(t, run.metrics)
	require.Empty(t, run.artifacts)
	require.Equal(t, []tracking.RunStatus{tracking.StatusFinished}, run.ends)
}

func TestTranslate_EndUsesMockedRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := newProvider(t)
	provider.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("", errors.New("timeout"))

	run := trackingmock.NewMockRun(ctrl)
	run.EXPECT().ID().Return("mlflow-run").AnyTimes()
	run.EXPECT().LogParam(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(4)
	run.EXPECT().LogMetric(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	run.EXPECT().LogText(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	run.EXPECT().End(gomock.Any(), tracking.StatusFinished).Return(errors.New("update failed"))

	recorder := trackingmock.NewMockRecorder(ctrl)
	recorder.EXPECT().StartRun(gomock.Any()).Return(run, nil)

	svc := service.NewTranslationService(provider, recorder, nil)
	result := svc.Translate(context.Background(), model.TranslationRequest{Text: "Hello", TargetLanguage: "English"})
	require.Equal(t, "Error: timeout", result.Output)
	require.Equal(t, "mlflow-run", result.RunID)
}

func TestTranslate_ConcurrentRunsAreIndependent(t *testing.T) {
	provider := newProvider(t)
	provider.EXPECT().
		Complete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ai.CompletionRequest) (string, error) {
			return "translated:" + req.Prompt, nil
		}).
		AnyTimes()

	recorder := &fakeRecorder{}
	svc := service.NewTranslationService(provider, recorder, ai.NewRateLimiter(-1))

	languages := model.SupportedLanguages
	results := make([]model.TranslationResult, len(languages))
	var wg sync.WaitGroup
	for i, lang := range languages {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = svc.Translate(context.Background(), model.TranslationRequest{Text: "text " + lang, TargetLanguage: lang})
		}()
	}
	wg.Wait()

	require.Len(t, recorder.runs, len(languages))
	byID := map[string]*fakeRun{}
	for _, run := range recorder.runs {
		byID[run.id] = run
	}
	for i, lang := range languages {
		require.Equal(t, model.StatusSuccess, results[i].Status)
		run := byID[results[i].RunID]
		require.NotNil(t, run)
		require.Equal(t, lang, run.params[tracking.ParamTargetLanguage])
		require.Equal(t, "text "+lang, run.artifacts[tracking.ArtifactInput])
		require.Equal(t, results[i].Output, run.artifacts[tracking.ArtifactOutput])
	}
}

func TestResultError(t *testing.T) {
	require.NoError(t, service.ResultError(model.TranslationResult{Output: "Hola", Status: model.StatusSuccess}))

	err := service.ResultError(model.TranslationResult{Output: service.EmptyTextMessage, Status: model.StatusRejectedEmpty})
	require.ErrorIs(t, err, service.ErrEmptyText)
	require.EqualError(t, err, service.EmptyTextMessage)

	err = service.ResultError(model.TranslationResult{Output: "Idioma no soportado: Klingon", Status: model.StatusRejectedLanguage})
	require.ErrorIs(t, err, service.ErrUnsupportedLanguage)

	err = service.ResultError(model.TranslationResult{Output: "Error: timeout", Status: model.StatusError})
	require.ErrorIs(t, err, service.ErrTranslationFailed)
	var resultErr *service.ResultErr
	require.ErrorAs(t, err, &resultErr)
	require.Equal(t, "Error: timeout", resultErr.Result.Output)
}
