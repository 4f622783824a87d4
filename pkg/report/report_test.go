package report

import (
	"bytes"
	"errors"
	"testing"

	"swearfilter/pkg/censor"
)

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	res := censor.Result{
		CleanedText: "تو هستی",
		Detected:    []string{"احمق", "لعنتی"},
		Percentage:  100.0 / 3,
	}

	if err := Write(&buf, "تو احمق هستی لعنتی", res); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	want := "Original Text:\nتو احمق هستی لعنتی\n\n" +
		"Cleaned Text:\nتو هستی\n\n" +
		"Detected Swear Words:\nاحمق, لعنتی\n" +
		"Percentage of Swear Words:\n33.33%\n"
	if got := buf.String(); got != want {
		t.Errorf("want report\n%s\ngot\n%s", want, got)
	}
}

func TestWrite_empty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, "", censor.Result{Detected: []string{}}); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	want := "Original Text:\n\n\nCleaned Text:\n\n\nDetected Swear Words:\n\nPercentage of Swear Words:\n0.00%\n"
	if got := buf.String(); got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWrite_error(t *testing.T) {
	if err := Write(failingWriter{}, "x", censor.Result{}); err == nil {
		t.Error("want write error, got nil")
	}
}
