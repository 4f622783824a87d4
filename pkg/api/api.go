package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/gorilla/mux"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"swearfilter/pkg/censor"
	"swearfilter/pkg/classifier"
	"swearfilter/pkg/models"
)

// MessageWriter is the part of *kafka.Writer used for access logs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type API struct {
	ServiceName string

	r      *mux.Router
	kw     MessageWriter
	censor *censor.Censor
	clf    classifier.Classifier
}

// New builds the API. clf and kafkaWriter are optional and may be nil.
func New(name string, c *censor.Censor, clf classifier.Classifier, kafkaWriter MessageWriter) (*API, error) {
	if c == nil {
		return nil, errors.New("censor is required")
	}

	api := API{
		ServiceName: name,
		r:           mux.NewRouter(),
		kw:          kafkaWriter,
		censor:      c,
		clf:         clf,
	}
	api.endpoints()

	return &api, nil
}

func (api *API) Router() *mux.Router {
	return api.r
}

func (api *API) endpoints() {
	api.r.Use(api.requestIDMiddleware)
	api.r.Use(api.headerMiddleware)

	api.r.HandleFunc("/redact", api.redactHandler).Methods(http.MethodPost)
	api.r.HandleFunc("/check", api.checkHandler).Methods(http.MethodPost)
	api.r.HandleFunc("/health", api.healthHandler).Methods(http.MethodGet)

	if api.kw != nil {
		api.r.Use(api.loggingMiddleware(api.kw))
	}
}

func (api *API) redactHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	msg, err := decodeMessage(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Errorf("[redactHandler][%s] failed to decode request body: %v", sID, err)
		return
	}

	if msg.ID == uuid.Nil {
		msg.ID, err = uuid.NewV4()
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			log.Errorf("[redactHandler][%s] failed to generate message id: %v", sID, err)
			return
		}
	}

	verdict := models.Verdict{
		ID:     msg.ID,
		Result: api.censor.Redact(msg.Text),
	}

	if api.clf != nil {
		scores, err := api.clf.Classify(r.Context(), msg.Text)
		if err != nil {
			log.Warnf("[redactHandler][%s] classifier failed, scores omitted: %v", sID, err)
		} else {
			verdict.Scores = scores
		}
	}

	log.Infof("[redactHandler][%s] message %s: %d swear words (%.2f%%)",
		sID, shorten(msg.ID.String()), len(verdict.Detected), verdict.Percentage)

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(verdict); err != nil {
		log.Errorf("[redactHandler][%s] failed to encode response: %v", sID, err)
	}
}

func (api *API) checkHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	msg, err := decodeMessage(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Errorf("[checkHandler][%s] failed to decode request body: %v", sID, err)
		return
	}

	if api.censor.Check(msg.Text) {
		log.Debugf("[checkHandler][%s] text rejected", sID)
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (api *API) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(HealthResponse{
		Status:      "ok",
		LexiconSize: api.censor.Size(),
	})
}

func decodeMessage(r *http.Request) (models.Message, error) {
	defer r.Body.Close()

	var msg models.Message
	err := json.NewDecoder(r.Body).Decode(&msg)
	return msg, err
}

// shorten truncates a string to 6 characters if it is longer than 6, appends '...' at the end,
// otherwise it returns the string unchanged.
func shorten(s string) string {
	if len(s) > 6 {
		return s[:6] + "..."
	}
	return s
}
