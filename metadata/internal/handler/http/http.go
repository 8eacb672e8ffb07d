package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/moviedex/moviedex/metadata/internal/controller/metadata"
	"github.com/moviedex/moviedex/metadata/pkg/model"
)

// Handler defines the metadata service HTTP handler.
type Handler struct {
	ctrl   *metadata.Controller
	logger *zap.Logger
}

// New creates a new metadata HTTP handler.
func New(ctrl *metadata.Controller, logger *zap.Logger) *Handler {
	return &Handler{ctrl: ctrl, logger: logger}
}

// Router builds the metadata service route table.
func (h *Handler) Router() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/metadata/search", h.Search)
	mux.HandleFunc("/metadata", h.Movies)
	mux.HandleFunc("/metadata/", h.Movie)
	return mux
}

// Search handles GET /metadata/search?q=<title>.
func (h *Handler) Search(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	record, err := h.ctrl.Search(req.Context(), req.FormValue("q"))
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	h.writeJSON(w, http.StatusOK, record)
}

// Movies handles GET /metadata (list all) and DELETE /metadata (clear).
func (h *Handler) Movies(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		records, err := h.ctrl.List(req.Context())
		if err != nil {
			h.writeError(w, req, err)
			return
		}
		if records == nil {
			records = []model.MovieRecord{}
		}
		h.writeJSON(w, http.StatusOK, records)
	case http.MethodDelete:
		n, err := h.ctrl.Clear(req.Context())
		if err != nil {
			h.writeError(w, req, err)
			return
		}
		h.writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// Movie handles GET /metadata/{id} for cached records.
func (h *Handler) Movie(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(req.URL.Path, "/metadata/")
	record, err := h.ctrl.Get(req.Context(), id)
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	h.writeJSON(w, http.StatusOK, record)
}

// writeError maps the controller taxonomy to a status code and one short
// user-facing message. The underlying cause is logged, never returned.
func (h *Handler) writeError(w http.ResponseWriter, req *http.Request, err error) {
	var status int
	var msg string
	switch {
	case errors.Is(err, metadata.ErrEmptyQuery):
		status, msg = http.StatusBadRequest, "Please provide a movie title."
	case errors.Is(err, metadata.ErrNoMatch):
		status, msg = http.StatusNotFound, "No movie matched that title."
	case errors.Is(err, metadata.ErrNotFound):
		status, msg = http.StatusNotFound, "No such movie in the cache."
	case errors.Is(err, metadata.ErrMissingID):
		status, msg = http.StatusBadGateway, "The matched title has no usable id."
	default:
		status, msg = http.StatusBadGateway, "Search failed, please try again later."
		h.logger.Error("Request failed", zap.String("path", req.URL.Path), zap.Error(err))
	}
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
