package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	AppName    = "Traductor Gen-AI"
	AppVersion = "1.0.0"
)

// Environment keys.
const (
	EnvGoogleAPIKey     = "GOOGLE_API_KEY"
	EnvAPIKey           = "TRADUCTOR_AI_API_KEY"
	EnvProvider         = "TRADUCTOR_AI_PROVIDER"
	EnvBaseURL          = "TRADUCTOR_AI_BASE_URL"
	EnvModel            = "TRADUCTOR_AI_MODEL"
	EnvRateLimit        = "TRADUCTOR_AI_RATE_LIMIT"
	EnvTrackingURI      = "MLFLOW_TRACKING_URI"
	EnvExperiment       = "MLFLOW_EXPERIMENT_NAME"
	EnvTrackingBackend  = "TRADUCTOR_TRACKING_BACKEND"
	EnvAddr             = "TRADUCTOR_ADDR"
	EnvDataDir          = "TRADUCTOR_DATA_DIR"
	EnvDBPath           = "TRADUCTOR_DB_PATH"
	EnvHTTPTimeout      = "TRADUCTOR_HTTP_TIMEOUT"
	EnvProxyURL         = "TRADUCTOR_PROXY_URL"
	EnvHealthInterval   = "TRADUCTOR_HEALTH_INTERVAL"
	EnvLogLevel         = "TRADUCTOR_LOG_LEVEL"
	EnvLogFormat        = "TRADUCTOR_LOG_FORMAT"
	DefaultTrackingURI  = "http://127.0.0.1:5001"
	DefaultExperiment   = "Traductor-GENAI"
	DefaultModel        = "gemini-2.5-flash"
	DefaultProvider     = "compatible"
	DefaultGeminiOpenAI = "https://generativelanguage.googleapis.com/v1beta/openai/"
)

// ErrMissingAPIKey is returned by Load when no provider credential is configured.
var ErrMissingAPIKey = errors.New("missing " + EnvGoogleAPIKey + " environment variable")

type Config struct {
	Addr      string
	DataDir   string
	DBPath    string
	LogLevel  string
	LogFormat string

	AIProvider  string
	AIAPIKey    string
	AIBaseURL   string
	AIModel     string
	AIRateLimit int

	TrackingBackend    string
	TrackingURI        string
	TrackingExperiment string

	HTTPTimeout time.Duration
	ProxyURL    string

	// HealthInterval is the tracking backend probe period. Zero disables probing.
	HealthInterval time.Duration
}

// Load reads an optional .env file from the working directory, then the
// process environment. A missing API key is fatal for every entry point.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault(EnvAddr, "0.0.0.0:7860")
	v.SetDefault(EnvDataDir, "./data")
	v.SetDefault(EnvLogLevel, "info")
	v.SetDefault(EnvLogFormat, "text")
	v.SetDefault(EnvProvider, DefaultProvider)
	v.SetDefault(EnvModel, DefaultModel)
	v.SetDefault(EnvRateLimit, 10)
	v.SetDefault(EnvTrackingBackend, "mlflow")
	v.SetDefault(EnvTrackingURI, DefaultTrackingURI)
	v.SetDefault(EnvExperiment, DefaultExperiment)
	v.SetDefault(EnvHTTPTimeout, 60*time.Second)
	v.SetDefault(EnvHealthInterval, 30*time.Second)

	apiKey := v.GetString(EnvAPIKey)
	if apiKey == "" {
		apiKey = v.GetString(EnvGoogleAPIKey)
	}
	if apiKey == "" {
		return Config{}, ErrMissingAPIKey
	}

	dataDir := v.GetString(EnvDataDir)
	dbPath := v.GetString(EnvDBPath)
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "tracking.db")
	}

	provider := strings.ToLower(v.GetString(EnvProvider))
	baseURL := v.GetString(EnvBaseURL)
	if baseURL == "" && provider == DefaultProvider {
		baseURL = DefaultGeminiOpenAI
	}

	return Config{
		Addr:               v.GetString(EnvAddr),
		DataDir:            filepath.Clean(dataDir),
		DBPath:             filepath.Clean(dbPath),
		LogLevel:           v.GetString(EnvLogLevel),
		LogFormat:          v.GetString(EnvLogFormat),
		AIProvider:         provider,
		AIAPIKey:           apiKey,
		AIBaseURL:          baseURL,
		AIModel:            v.GetString(EnvModel),
		AIRateLimit:        v.GetInt(EnvRateLimit),
		TrackingBackend:    strings.ToLower(v.GetString(EnvTrackingBackend)),
		TrackingURI:        strings.TrimRight(v.GetString(EnvTrackingURI), "/"),
		TrackingExperiment: v.GetString(EnvExperiment),
		HTTPTimeout:        v.GetDuration(EnvHTTPTimeout),
		ProxyURL:           v.GetString(EnvProxyURL),
		HealthInterval:     v.GetDuration(EnvHealthInterval),
	}, nil
}
