package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"swearfilter/pkg/api"
	"swearfilter/pkg/censor"
	"swearfilter/pkg/classifier"
	"swearfilter/pkg/config"
	"swearfilter/pkg/lexicon"
	"swearfilter/pkg/stream"
)

func main() {
	var (
		configPath string
		swearFile  string
		httpAddr   string
		logLevel   string
		kafkaAddr  string
		kafkaTopic string
		kafkaBatch int
	)

	flag.StringVar(&configPath, "servconf", "cmd/server/config.toml", "Path to TOML config file")
	flag.StringVar(&swearFile, "swears", "", "Path to JSON or TOML swear words file")
	flag.StringVar(&httpAddr, "http", "", "HTTP server address in the form 'host:port'.")
	flag.StringVar(&logLevel, "log", "", "Log level: debug, info, warn, error.")
	flag.StringVar(&kafkaAddr, "kafka", "", "Kafka server address in the form 'host:port'.")
	flag.StringVar(&kafkaTopic, "topic", "", "Kafka topic for access logs.")
	flag.IntVar(&kafkaBatch, "batch", 0, "Kafka batch size.")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("[server] %v", err)
	}

	// Override config with flags if set
	if swearFile != "" {
		cfg.SwearFile = swearFile
	}
	if httpAddr != "" {
		cfg.HTTPAddr = httpAddr
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if kafkaAddr != "" {
		cfg.KafkaAddr = kafkaAddr
	}
	if kafkaTopic != "" {
		cfg.KafkaTopic = kafkaTopic
	}
	if kafkaBatch != 0 {
		cfg.KafkaBatch = kafkaBatch
	}

	config.SetLogLevel(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("[server] invalid config: %v", err)
	}
	if !strings.Contains(cfg.HTTPAddr, ":") {
		log.Warn("[server] use ':' before port number, e.g. ':8080'")
	}

	var words []string
	if cfg.RequireLexicon {
		words, err = lexicon.LoadStrict(cfg.SwearFile)
		if err != nil {
			log.Fatalf("[server] failed to load swear words file %s: %v", cfg.SwearFile, err)
		}
	} else {
		words = lexicon.Load(cfg.SwearFile, log.StandardLogger())
	}
	if len(words) == 0 {
		log.Warn("[server] lexicon is empty, text will pass through unredacted")
	}
	censor := censor.New(words, log.StandardLogger())

	var clf classifier.Classifier
	if cfg.ClassifierURL != "" {
		clf = classifier.NewHTTP(cfg.ClassifierURL, cfg.ModelName)
		log.Infof("[server] classifier %s enabled at %s", cfg.ModelName, cfg.ClassifierURL)
	}

	var accessLog api.MessageWriter
	if cfg.KafkaAddr != "" && cfg.KafkaTopic != "" {
		kw := &kafka.Writer{
			Addr:      kafka.TCP(cfg.KafkaAddr),
			Topic:     cfg.KafkaTopic,
			BatchSize: cfg.KafkaBatch,
		}
		defer kw.Close()
		if err := createTopic(cfg.KafkaAddr, cfg.KafkaTopic); err != nil {
			log.Warnf("[server] failed to create Kafka topic: %v", err)
		}
		accessLog = kw
	} else {
		log.Warnf("[server] kafka was not configured, logs will not be sent to Kafka")
	}

	api, err := api.New(cfg.ServiceName, censor, clf, accessLog)
	if err != nil {
		log.Fatalf("[server] failed to create API: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	if cfg.StreamEnabled() {
		r := kafka.NewReader(kafka.ReaderConfig{
			Brokers:  cfg.Stream.Brokers,
			Topic:    cfg.Stream.InputTopic,
			GroupID:  cfg.Stream.GroupID,
			MinBytes: 10e3, // 10KB
			MaxBytes: 10e6, // 10MB
		})
		defer r.Close()
		w := &kafka.Writer{
			Addr:  kafka.TCP(cfg.Stream.Brokers...),
			Topic: cfg.Stream.OutputTopic,
		}
		defer w.Close()

		wg.Add(1)
		go func() {
			defer wg.Done()
			stream.New(r, w, censor, cfg.Stream.NumWorkers).Run(ctx)
		}()
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.Router(),
	}

	go func() {
		log.Infof("[server] starting on port %v", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[server] failed to start: %v", err)
			return
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	cancel()

	shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownRelease()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("[server] HTTP server shutdown error: %v", err)
	} else {
		log.Info("[server] HTTP server shut down gracefully")
	}
	wg.Wait()
}

func createTopic(broker, topic string) error {
	conn, err := kafka.DialContext(context.Background(), "tcp", broker)
	if err != nil {
		return err
	}
	defer conn.Close()

	return conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
}
