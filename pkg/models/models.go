package models

import (
	"time"

	"github.com/gofrs/uuid"

	"swearfilter/pkg/censor"
	"swearfilter/pkg/classifier"
)

// Message is a document submitted for redaction over HTTP or Kafka.
type Message struct {
	ID        uuid.UUID `json:"id"`
	Author    string    `json:"author,omitempty"`
	Text      string    `json:"text"`
	Published time.Time `json:"published"`
}

// Verdict is the redaction outcome for a Message.
type Verdict struct {
	ID uuid.UUID `json:"id"`
	censor.Result
	Scores classifier.Scores `json:"scores,omitempty"`
}
