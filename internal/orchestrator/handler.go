package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"placement-tutor/internal/catalog"
)

// maxBodyBytes caps the generate request body.
const maxBodyBytes = 64 << 10

// statusClientClosedRequest is the non-standard status logged when the client
// went away before the pipeline finished.
const statusClientClosedRequest = 499

// Invoker runs the pipeline; *Service implements it.
type Invoker interface {
	Invoke(ctx context.Context, query string, duration int) (*PipelineState, error)
}

// TopicLister lists the catalog; *catalog.Catalog implements it.
type TopicLister interface {
	Topics() []catalog.Topic
}

// Handler exposes the pipeline over HTTP using go-chi.
type Handler struct {
	svc    Invoker
	topics TopicLister
	log    *slog.Logger
}

// NewHandler returns a Handler. topics may be nil, in which case the topic
// listing is empty.
func NewHandler(svc Invoker, topics TopicLister, log *slog.Logger) *Handler {
	return &Handler{svc: svc, topics: topics, log: log}
}

type generateRequest struct {
	Query    string `json:"query"`
	Duration any    `json:"duration"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Generate handles POST /api/generate.
// Body: { "query": "binary search trees", "duration": 3 }.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		h.log.Debug("invalid generate body", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	st, err := h.svc.Invoke(r.Context(), req.Query, NormalizeDuration(req.Duration))
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyQuery):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.Is(err, ErrCanceled):
			h.log.Info("generate canceled by client", slog.String("error", err.Error()))
			writeJSON(w, statusClientClosedRequest, errorResponse{Error: "request canceled"})
		case errors.Is(err, ErrBudgetExceeded):
			h.log.Warn("generate timed out", slog.String("error", err.Error()))
			writeJSON(w, http.StatusGatewayTimeout, errorResponse{Error: "generation took too long, please try again"})
		default:
			h.log.Error("generate failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, st)
}

// Topics handles GET /api/topics.
func (h *Handler) Topics(w http.ResponseWriter, r *http.Request) {
	topics := []catalog.Topic{}
	if h.topics != nil {
		topics = h.topics.Topics()
	}
	writeJSON(w, http.StatusOK, map[string]any{"topics": topics})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
