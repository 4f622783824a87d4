// Package stream redacts documents read from a Kafka topic and publishes
// the verdicts to another topic.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"swearfilter/pkg/censor"
	"swearfilter/pkg/models"
)

// Reader is the part of *kafka.Reader used by the Processor.
type Reader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// Writer is the part of *kafka.Writer used by the Processor.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Processor struct {
	r          Reader
	w          Writer
	censor     *censor.Censor
	numWorkers int
}

func New(r Reader, w Writer, c *censor.Censor, numWorkers int) *Processor {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	return &Processor{r: r, w: w, censor: c, numWorkers: numWorkers}
}

// Run reads messages until ctx is cancelled, then waits for the workers to drain.
func (p *Processor) Run(ctx context.Context) {
	jobs := make(chan kafka.Message, p.numWorkers*5)
	var wg sync.WaitGroup
	wg.Add(p.numWorkers)
	for workerID := 0; workerID < p.numWorkers; workerID++ {
		go func(id int) {
			defer wg.Done()
			p.worker(ctx, jobs, id)
		}(workerID)
	}

	log.Info("[stream] accepting documents...")
	for {
		msg, err := p.r.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				break
			}
			log.Errorf("[stream] failed to read message from Kafka: %v", err)
			continue
		}
		log.Debugf("[stream] received message at offset %d", msg.Offset)

		select {
		case jobs <- msg:
		case <-ctx.Done():
		}
	}

	close(jobs)
	wg.Wait()
}

func (p *Processor) worker(ctx context.Context, jobs <-chan kafka.Message, workerID int) {
	for {
		select {
		case <-ctx.Done():
			log.Infof("[stream][workerID:%d] context cancelled, exiting worker", workerID)
			return

		case msg, ok := <-jobs:
			if !ok {
				log.Infof("[stream][workerID:%d] jobs channel closed, exiting worker", workerID)
				return
			}
			if err := p.handle(ctx, msg); err != nil {
				log.Errorf("[stream][workerID:%d] %v", workerID, err)
			}
		}
	}
}

func (p *Processor) handle(ctx context.Context, msg kafka.Message) error {
	var doc models.Message
	if err := json.Unmarshal(msg.Value, &doc); err != nil {
		return fmt.Errorf("failed to unmarshal document: %w", err)
	}

	if doc.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return fmt.Errorf("failed to generate document id: %w", err)
		}
		doc.ID = id
	}

	verdict := models.Verdict{
		ID:     doc.ID,
		Result: p.censor.Redact(doc.Text),
	}

	b, err := json.Marshal(verdict)
	if err != nil {
		return fmt.Errorf("failed to marshal verdict: %w", err)
	}

	if err := p.w.WriteMessages(ctx, kafka.Message{Key: []byte(doc.ID.String()), Value: b}); err != nil {
		return fmt.Errorf("failed to write verdict to Kafka: %w", err)
	}
	log.Debugf("[stream][%s] verdict published", shorten(doc.ID.String()))
	return nil
}

func shorten(s string) string {
	if len(s) > 6 {
		return s[:6] + "..."
	}
	return s
}
