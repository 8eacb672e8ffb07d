package http

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/moviedex/moviedex/movie/internal/controller/movie"
	"github.com/moviedex/moviedex/movie/pkg/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// Handler defines the movie UI HTTP handler.
type Handler struct {
	ctrl   *movie.Controller
	logger *zap.Logger
}

// New creates a new movie UI handler.
func New(ctrl *movie.Controller, logger *zap.Logger) *Handler {
	return &Handler{ctrl: ctrl, logger: logger}
}

// Router builds the movie UI route table.
func (h *Handler) Router() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.Index)
	mux.HandleFunc("/search", h.Search)
	mux.HandleFunc("/clear", h.Clear)
	return mux
}

// Index handles GET /: the search form and the cached library.
func (h *Handler) Index(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path != "/" {
		http.NotFound(w, req)
		return
	}
	page := model.MoviePage{}
	movies, err := h.ctrl.List(req.Context())
	if err != nil {
		h.logger.Error("Failed to list movies", zap.Error(err))
		page.Error = "The movie library is unavailable, please try again later."
	}
	page.Movies = movies
	h.render(w, page)
}

// Search handles GET /search?q=<title>.
func (h *Handler) Search(w http.ResponseWriter, req *http.Request) {
	query := req.FormValue("q")
	page := model.MoviePage{Query: query}

	record, err := h.ctrl.Search(req.Context(), query)
	switch {
	case err == nil:
		page.Result = record
	case errors.Is(err, movie.ErrBadRequest):
		page.Error = "Please provide a movie title."
	case errors.Is(err, movie.ErrNotFound):
		page.Error = "No movie matched that title."
	default:
		h.logger.Error("Search failed", zap.String("query", query), zap.Error(err))
		page.Error = "Search failed, please try again later."
	}

	if movies, err := h.ctrl.List(req.Context()); err == nil {
		page.Movies = movies
	}
	h.render(w, page)
}

// Clear handles POST /clear and redirects back to the library.
func (h *Handler) Clear(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, err := h.ctrl.Clear(req.Context()); err != nil {
		h.logger.Error("Failed to clear movies", zap.Error(err))
	}
	http.Redirect(w, req, "/", http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, page model.MoviePage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, page); err != nil {
		h.logger.Error("Failed to render page", zap.Error(err))
	}
}
