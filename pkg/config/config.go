package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"swearfilter/pkg/classifier"
)

var ErrConfParamMissing = errors.New("configuration parameter missing")

const (
	defaultSwearFile = "swears.json"
	defaultHTTPAddr  = ":8055"
	defaultLogLevel  = "info"
	defaultWorkers   = 4
)

type Config struct {
	ServiceName    string `toml:"serviceName"`
	SwearFile      string `toml:"swearFile"`
	RequireLexicon bool   `toml:"requireLexicon"`

	HTTPAddr   string `toml:"httpAddr"`
	LogLevel   string `toml:"logLevel"`
	KafkaAddr  string `toml:"kafkaAddr"`
	KafkaTopic string `toml:"kafkaTopic"`
	KafkaBatch int    `toml:"kafkaBatch"`

	ModelName     string `toml:"modelName"`
	ClassifierURL string `toml:"classifierURL"`

	Stream Stream `toml:"stream"`
}

// Stream configures the Kafka redaction worker. It is disabled when InputTopic is empty.
type Stream struct {
	Brokers     []string `toml:"brokers"`
	InputTopic  string   `toml:"inputTopic"`
	OutputTopic string   `toml:"outputTopic"`
	GroupID     string   `toml:"groupID"`
	NumWorkers  int      `toml:"numWorkers"`
}

// Load decodes the TOML file at path (skipped when path is empty), loads
// envFiles (".env" when none given, missing files are ignored) and lets
// environment variables override the file:
// SWEAR_FILE, MODEL_NAME, CLASSIFIER_URL, LOG_LEVEL.
func Load(path string, envFiles ...string) (*Config, error) {
	var cfg Config
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Warnf("[config] failed to load %s: %v", f, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("SWEAR_FILE")); v != "" {
		c.SwearFile = v
	}
	if v := strings.TrimSpace(os.Getenv("MODEL_NAME")); v != "" {
		c.ModelName = v
	}
	if v := strings.TrimSpace(os.Getenv("CLASSIFIER_URL")); v != "" {
		c.ClassifierURL = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
}

func (c *Config) applyDefaults() {
	if c.SwearFile == "" {
		c.SwearFile = defaultSwearFile
	}
	if c.ModelName == "" {
		c.ModelName = classifier.DefaultModel
	}
	if c.HTTPAddr == "" {
		c.HTTPAddr = defaultHTTPAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.Stream.NumWorkers <= 0 {
		c.Stream.NumWorkers = defaultWorkers
	}
}

// StreamEnabled reports whether the Kafka redaction worker should run.
func (c *Config) StreamEnabled() bool {
	return c.Stream.InputTopic != ""
}

// Validate checks that an enabled stream worker has everything it needs.
func (c *Config) Validate() error {
	if !c.StreamEnabled() {
		return nil
	}
	if len(c.Stream.Brokers) == 0 {
		return fmt.Errorf("%w: stream.brokers", ErrConfParamMissing)
	}
	if c.Stream.OutputTopic == "" {
		return fmt.Errorf("%w: stream.outputTopic", ErrConfParamMissing)
	}
	if c.Stream.GroupID == "" {
		return fmt.Errorf("%w: stream.groupID", ErrConfParamMissing)
	}
	return nil
}

// SetLogLevel sets the logrus standard logger level: debug, info, warn, error.
// Unknown values leave the level unchanged.
func SetLogLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.Warnf("[config] unknown log level %q", level)
	}
}
