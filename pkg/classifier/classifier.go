// Package classifier talks to an external text-classification service.
// Its scores are informational; the censor never consults them.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultModel is the model requested when none is configured.
const DefaultModel = "HooshvareLab/bert-fa-base-uncased-clf-persiannews"

// Scores maps a label to its score in [0,1].
type Scores map[string]float64

// Classifier scores a text. Implementations must be safe for concurrent use.
type Classifier interface {
	Classify(ctx context.Context, text string) (Scores, error)
}

// HTTP calls the /classify endpoint of a classification sidecar.
type HTTP struct {
	url   string
	model string
	c     *http.Client
}

type classifyRequest struct {
	Model string `json:"model"`
	Text  string `json:"text"`
}

type classifyResponse struct {
	Scores []labelScore `json:"scores"`
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// NewHTTP returns a client for the service at baseURL, e.g. "http://classifier:8001".
func NewHTTP(baseURL, model string) *HTTP {
	if model == "" {
		model = DefaultModel
	}
	return &HTTP{
		url:   strings.TrimRight(baseURL, "/") + "/classify",
		model: model,
		c:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Model returns the model name sent with each request.
func (h *HTTP) Model() string {
	return h.model
}

// Classify sends text to the service and returns the score of every label.
func (h *HTTP) Classify(ctx context.Context, text string) (Scores, error) {
	body, err := json.Marshal(classifyRequest{Model: h.model, Text: text})
	if err != nil {
		return nil, fmt.Errorf("classifier: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("classifier: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classifier: unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier: unexpected status %d", resp.StatusCode)
	}

	var result classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("classifier: decode: %w", err)
	}

	scores := make(Scores, len(result.Scores))
	for _, s := range result.Scores {
		scores[s.Label] = s.Score
	}
	return scores, nil
}
