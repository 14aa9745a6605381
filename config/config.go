package config

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/dl-generator-api/models"
)

// Config holds the project config values
type Config struct {
	Port     string
	BaseUrl  string
	Env      string
	Operator Operator

	GatewayUrl     string
	GatewayTimeout time.Duration
	RequestTimeout time.Duration
	ProbeSchedule  string
	SessionTTL     time.Duration

	ExportDir        string
	ExportBackDelay  time.Duration
	CloudinaryUrl    string
	CloudinaryFolder string
}

// Operator is the single account allowed to use the API
type Operator struct {
	Username     string
	PasswordHash string
}

// New reads the config from the environment and installs the logger for ENV
func New() *Config {
	env := getenv("ENV", "local")
	if _, err := setLogger(env); err != nil {
		_, _ = setLogger("local")
		zap.S().Warnw("falling back to local logger", "env", env, "error", err)
	}

	return &Config{
		Port:    getenv("PORT", "8080"),
		BaseUrl: os.Getenv("BASE_URL"),
		Env:     env,
		Operator: Operator{
			Username:     os.Getenv("OPERATOR_USERNAME"),
			PasswordHash: os.Getenv("OPERATOR_PASSWORD_HASH"),
		},
		GatewayUrl:       getenv("GATEWAY_URL", "http://localhost:8081"),
		GatewayTimeout:   duration("GATEWAY_TIMEOUT", 30*time.Second),
		RequestTimeout:   duration("REQUEST_TIMEOUT", 45*time.Second),
		ProbeSchedule:    getenv("PROBE_SCHEDULE", "@every 30s"),
		SessionTTL:       duration("SESSION_TTL", 30*time.Minute),
		ExportDir:        getenv("EXPORT_DIR", "exports"),
		ExportBackDelay:  duration("EXPORT_BACK_DELAY", 800*time.Millisecond),
		CloudinaryUrl:    os.Getenv("CLOUDINARY_URL"),
		CloudinaryFolder: getenv("CLOUDINARY_FOLDER", "licenses"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		zap.S().Warnw("invalid duration, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(zap.Error(err)).Error(message)
	resp := models.ErrorMessageResponse{Response: models.MessageError{Message: message}}
	if err != nil {
		resp.Response.Error = err.Error()
	}
	b, _ := json.Marshal(resp)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	w.Write(b)
}
