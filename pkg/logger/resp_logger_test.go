package logger

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseLogger(t *testing.T) {
	rr := httptest.NewRecorder()
	l := New(rr)

	if l.Status() != http.StatusOK {
		t.Errorf("want default status %v, got %v", http.StatusOK, l.Status())
	}

	l.Header().Set("X-Test", "1")
	l.WriteHeader(http.StatusUnprocessableEntity)
	io.WriteString(l, "hello")
	io.WriteString(l, " world")

	if l.Status() != http.StatusUnprocessableEntity {
		t.Errorf("want status %v, got %v", http.StatusUnprocessableEntity, l.Status())
	}
	if l.Size() != len("hello world") {
		t.Errorf("want size %d, got %d", len("hello world"), l.Size())
	}
	if rr.Code != http.StatusUnprocessableEntity || rr.Body.String() != "hello world" {
		t.Errorf("want writes passed through, got %d %q", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("X-Test") != "1" {
		t.Error("want header passed through")
	}
}
