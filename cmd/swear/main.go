// Command swear removes Persian swear words from a text file and writes a report.
//
//	swear [-log level] <text_file> <output_file>
//
// The lexicon path comes from SWEAR_FILE (default swears.json); a .env file
// in the working directory is honoured.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"swearfilter/pkg/censor"
	"swearfilter/pkg/classifier"
	"swearfilter/pkg/config"
	"swearfilter/pkg/lexicon"
	"swearfilter/pkg/report"
)

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log", "", "Log level: debug, info, warn, error.")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <text_file> <output_file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("[swear] %v", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	config.SetLogLevel(cfg.LogLevel)

	var clf classifier.Classifier
	if cfg.ClassifierURL != "" {
		clf = classifier.NewHTTP(cfg.ClassifierURL, cfg.ModelName)
	}

	if err := run(flag.Arg(0), flag.Arg(1), cfg.SwearFile, clf); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func run(textFile, outputFile, swearFile string, clf classifier.Classifier) error {
	text, err := os.ReadFile(textFile)
	if err != nil {
		return fmt.Errorf("[swear] error reading text file %s: %w", textFile, err)
	}

	c := censor.New(lexicon.Load(swearFile, log.StandardLogger()), log.StandardLogger())
	res := c.Redact(string(text))

	if clf != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		scores, err := clf.Classify(ctx, string(text))
		cancel()
		if err != nil {
			log.Warnf("[swear] classifier unavailable: %v", err)
		} else {
			log.Infof("[swear] classifier scores: %v", scores)
		}
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("[swear] error writing to output file %s: %w", outputFile, err)
	}
	defer f.Close()

	if err := report.Write(f, string(text), res); err != nil {
		return fmt.Errorf("[swear] error writing to output file %s: %w", outputFile, err)
	}
	log.Infof("[swear] cleaned text and additional information written to %s", outputFile)

	return nil
}
