package classifier

import (
	"context"
	"net/http"
	"testing"

	"github.com/h2non/gock"
)

const testURL = "http://classifier.test"

func TestHTTP_Classify(t *testing.T) {
	defer gock.Off()

	gock.New(testURL).
		Post("/classify").
		MatchType("json").
		JSON(map[string]string{"model": DefaultModel, "text": "سلام"}).
		Reply(http.StatusOK).
		JSON(map[string]any{
			"scores": []map[string]any{
				{"label": "sport", "score": 0.1},
				{"label": "social", "score": 0.9},
			},
		})

	c := NewHTTP(testURL+"/", "")
	got, err := c.Classify(context.Background(), "سلام")
	if err != nil {
		t.Fatalf("Classify() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 scores, got %d", len(got))
	}
	if got["social"] != 0.9 {
		t.Errorf("want social score 0.9, got %v", got["social"])
	}
	if !gock.IsDone() {
		t.Error("want all mocked requests to be consumed")
	}
}

func TestHTTP_ClassifyBadStatus(t *testing.T) {
	defer gock.Off()

	gock.New(testURL).
		Post("/classify").
		Reply(http.StatusServiceUnavailable)

	c := NewHTTP(testURL, "custom-model")
	if c.Model() != "custom-model" {
		t.Errorf("want model %q, got %q", "custom-model", c.Model())
	}
	if _, err := c.Classify(context.Background(), "text"); err == nil {
		t.Error("want error for non-200 status, got nil")
	}
}

func TestHTTP_ClassifyBadBody(t *testing.T) {
	defer gock.Off()

	gock.New(testURL).
		Post("/classify").
		Reply(http.StatusOK).
		BodyString("not json")

	c := NewHTTP(testURL, "")
	if _, err := c.Classify(context.Background(), "text"); err == nil {
		t.Error("want decode error, got nil")
	}
}
