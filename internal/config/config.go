package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/courtside/league-night/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                        string
	ServiceName                   string
	ServiceVersion                string
	HTTPAddr                      string
	DBURL                         string
	CORSAllowedOrigins            []string
	ReadTimeout                   time.Duration
	WriteTimeout                  time.Duration
	PprofEnabled                  bool
	PprofAddr                     string
	AccountEnabled                bool
	AccountBaseURL                string
	AccountIntrospectPath         string
	AccountTimeout                time.Duration
	UptraceEnabled                bool
	UptraceDSN                    string
	PyroscopeEnabled              bool
	PyroscopeServerAddress        string
	PyroscopeAppName              string
	PyroscopeAuthToken            string
	PyroscopeBasicAuthUser        string
	PyroscopeBasicAuthPassword    string
	PyroscopeUploadRate           time.Duration
	NightWeekday                  time.Weekday
	NightStartHour                int
	NightStartMinute              int
	NightCourtLabels              []string
	AutoAssignDefault             bool
	TiebreakSeed                  int64
	EventWorkers                  int
	EventHandleTimeout            time.Duration
	PushEnabled                   bool
	PushWebhookURL                string
	PushAuthToken                 string
	PushTimeout                   time.Duration
	PushCircuitFailureCount       int
	PushCircuitOpenTimeout        time.Duration
	PushCircuitHalfOpenMaxReq     int
	LogLevel                      logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	nightWeekday, err := parseWeekday(getEnv("NIGHT_WEEKDAY", "thursday"))
	if err != nil {
		return Config{}, err
	}
	nightStartHour, nightStartMinute, err := parseClock(getEnv("NIGHT_START", "19:00"))
	if err != nil {
		return Config{}, err
	}
	nightCourtLabels := splitCSV(getEnv("NIGHT_COURT_LABELS", "Court 1,Court 2,Court 3"))
	if len(nightCourtLabels) == 0 {
		return Config{}, fmt.Errorf("NIGHT_COURT_LABELS cannot be empty")
	}
	autoAssignDefault, err := strconv.ParseBool(getEnv("AUTO_ASSIGN_DEFAULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AUTO_ASSIGN_DEFAULT: %w", err)
	}

	tiebreakSeed, err := getEnvAsInt64("TIEBREAK_SEED", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse TIEBREAK_SEED: %w", err)
	}

	eventWorkers, err := getEnvAsInt("EVENT_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse EVENT_WORKERS: %w", err)
	}
	if eventWorkers < 1 {
		return Config{}, fmt.Errorf("EVENT_WORKERS must be >= 1")
	}
	eventHandleTimeout, err := time.ParseDuration(getEnv("EVENT_HANDLE_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse EVENT_HANDLE_TIMEOUT: %w", err)
	}
	if eventHandleTimeout <= 0 {
		return Config{}, fmt.Errorf("EVENT_HANDLE_TIMEOUT must be > 0")
	}

	pushEnabled, err := strconv.ParseBool(getEnv("PUSH_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PUSH_ENABLED: %w", err)
	}
	pushWebhookURL := strings.TrimSpace(getEnv("PUSH_WEBHOOK_URL", ""))
	if pushEnabled && pushWebhookURL == "" {
		return Config{}, fmt.Errorf("PUSH_WEBHOOK_URL is required when PUSH_ENABLED=true")
	}
	pushTimeout, err := time.ParseDuration(getEnv("PUSH_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PUSH_TIMEOUT: %w", err)
	}
	if pushTimeout <= 0 {
		return Config{}, fmt.Errorf("PUSH_TIMEOUT must be > 0")
	}
	pushCircuitFailureCount, err := getEnvAsInt("PUSH_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse PUSH_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if pushCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("PUSH_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	pushCircuitOpenTimeout, err := time.ParseDuration(getEnv("PUSH_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PUSH_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if pushCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("PUSH_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	pushCircuitHalfOpenMaxReq, err := getEnvAsInt("PUSH_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse PUSH_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if pushCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("PUSH_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	accountEnabled, err := strconv.ParseBool(getEnv("ACCOUNT_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ACCOUNT_ENABLED: %w", err)
	}
	accountBaseURL := strings.TrimSpace(getEnv("ACCOUNT_BASE_URL", "http://localhost:8081"))
	if accountEnabled && accountBaseURL == "" {
		return Config{}, fmt.Errorf("ACCOUNT_BASE_URL is required when ACCOUNT_ENABLED=true")
	}
	accountTimeout, err := time.ParseDuration(getEnv("ACCOUNT_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ACCOUNT_TIMEOUT: %w", err)
	}
	if accountTimeout <= 0 {
		return Config{}, fmt.Errorf("ACCOUNT_TIMEOUT must be > 0")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "league-night-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                      strings.TrimSpace(getEnv("DB_URL", "")),
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		AccountEnabled:             accountEnabled,
		AccountBaseURL:             accountBaseURL,
		AccountIntrospectPath:      getEnv("ACCOUNT_INTROSPECT_PATH", "/v1/auth/introspect"),
		AccountTimeout:             accountTimeout,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
		NightWeekday:               nightWeekday,
		NightStartHour:             nightStartHour,
		NightStartMinute:           nightStartMinute,
		NightCourtLabels:           nightCourtLabels,
		AutoAssignDefault:          autoAssignDefault,
		TiebreakSeed:               tiebreakSeed,
		EventWorkers:               eventWorkers,
		EventHandleTimeout:         eventHandleTimeout,
		PushEnabled:                pushEnabled,
		PushWebhookURL:             pushWebhookURL,
		PushAuthToken:              strings.TrimSpace(getEnv("PUSH_AUTH_TOKEN", "")),
		PushTimeout:                pushTimeout,
		PushCircuitFailureCount:    pushCircuitFailureCount,
		PushCircuitOpenTimeout:     pushCircuitOpenTimeout,
		PushCircuitHalfOpenMaxReq:  pushCircuitHalfOpenMaxReq,
		LogLevel:                   parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func parseWeekday(v string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	default:
		return 0, fmt.Errorf("invalid NIGHT_WEEKDAY %q", v)
	}
}

// parseClock parses "HH:MM" in 24-hour time.
func parseClock(v string) (int, int, error) {
	parts := strings.SplitN(strings.TrimSpace(v), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid NIGHT_START %q, expected HH:MM", v)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in NIGHT_START %q", v)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in NIGHT_START %q", v)
	}

	return hour, minute, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsInt64(key string, fallback int64) (int64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
