package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"

	"swearfilter/pkg/classifier"
)

// unsetEnv clears keys for the duration of the test so .env files can set them.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

var envKeys = []string{"SWEAR_FILE", "MODEL_NAME", "CLASSIFIER_URL", "LOG_LEVEL"}

func TestLoad(t *testing.T) {
	unsetEnv(t, envKeys...)

	cfg, err := Load(filepath.Join("test_data", "config.toml"), filepath.Join("test_data", "missing.env"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ServiceName != "swearfilter" {
		t.Errorf("want service name %q, got %q", "swearfilter", cfg.ServiceName)
	}
	if cfg.SwearFile != "lexicons/fa.json" {
		t.Errorf("want swear file %q, got %q", "lexicons/fa.json", cfg.SwearFile)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("want http addr %q, got %q", ":9090", cfg.HTTPAddr)
	}
	if cfg.ModelName != classifier.DefaultModel {
		t.Errorf("want default model %q, got %q", classifier.DefaultModel, cfg.ModelName)
	}
	if !cfg.StreamEnabled() || cfg.Stream.NumWorkers != 2 {
		t.Errorf("want stream enabled with 2 workers, got %+v", cfg.Stream)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestLoad_envOverrides(t *testing.T) {
	unsetEnv(t, envKeys...)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(filepath.Join("test_data", "config.toml"), filepath.Join("test_data", "test.env"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.SwearFile != "from_env.json" {
		t.Errorf("want swear file from env, got %q", cfg.SwearFile)
	}
	if cfg.ModelName != "custom/model" {
		t.Errorf("want model from env, got %q", cfg.ModelName)
	}
	if cfg.ClassifierURL != "http://localhost:8001" {
		t.Errorf("want classifier url from env, got %q", cfg.ClassifierURL)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("want log level from environment, got %q", cfg.LogLevel)
	}
}

func TestLoad_defaults(t *testing.T) {
	unsetEnv(t, envKeys...)

	cfg, err := Load("", filepath.Join("test_data", "missing.env"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.SwearFile != defaultSwearFile {
		t.Errorf("want swear file %q, got %q", defaultSwearFile, cfg.SwearFile)
	}
	if cfg.HTTPAddr != defaultHTTPAddr {
		t.Errorf("want http addr %q, got %q", defaultHTTPAddr, cfg.HTTPAddr)
	}
	if cfg.StreamEnabled() {
		t.Error("want stream disabled by default")
	}
}

func TestLoad_broken(t *testing.T) {
	if _, err := Load(filepath.Join("test_data", "broken.toml")); err == nil {
		t.Error("want error for broken config, got nil")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		stream  Stream
		wantErr bool
	}{
		{"disabled", Stream{}, false},
		{"complete", Stream{Brokers: []string{"k:9092"}, InputTopic: "in", OutputTopic: "out", GroupID: "g"}, false},
		{"no brokers", Stream{InputTopic: "in", OutputTopic: "out", GroupID: "g"}, true},
		{"no output topic", Stream{Brokers: []string{"k:9092"}, InputTopic: "in", GroupID: "g"}, true},
		{"no group", Stream{Brokers: []string{"k:9092"}, InputTopic: "in", OutputTopic: "out"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Stream: tt.stream}
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v; wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrConfParamMissing) {
				t.Errorf("want ErrConfParamMissing, got %v", err)
			}
		})
	}
}

func TestSetLogLevel(t *testing.T) {
	defer log.SetLevel(log.GetLevel())

	SetLogLevel("ERROR")
	if log.GetLevel() != log.ErrorLevel {
		t.Errorf("want error level, got %v", log.GetLevel())
	}
	SetLogLevel("debug")
	if log.GetLevel() != log.DebugLevel {
		t.Errorf("want debug level, got %v", log.GetLevel())
	}
}
