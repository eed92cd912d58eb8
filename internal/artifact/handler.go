package artifact

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// Handler serves stored artifacts over HTTP using go-chi.
type Handler struct {
	repo *Repository
	log  *slog.Logger
}

// NewHandler returns a Handler backed by repo.
func NewHandler(repo *Repository, log *slog.Logger) *Handler {
	return &Handler{repo: repo, log: log}
}

// Get handles GET /api/artifacts/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := ID(chi.URLParam(r, "id"))
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	a, err := h.repo.Get(id)
	if errors.Is(err, ErrNotFound) {
		h.log.Debug("artifact not found", slog.String("id", string(id)))
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Data)))
	w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
	w.WriteHeader(http.StatusOK)
	w.Write(a.Data)
}
