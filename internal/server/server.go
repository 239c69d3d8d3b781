// Package server serves an HTML page with a fresh wall layout per request.
package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/photowall/pkg/buildinfo"
	"github.com/matzehuels/photowall/pkg/errors"
	"github.com/matzehuels/photowall/pkg/htmldoc"
	layoutio "github.com/matzehuels/photowall/pkg/io"
	"github.com/matzehuels/photowall/pkg/preview"
	"github.com/matzehuels/photowall/pkg/wall"
)

// maxCount bounds the ?count= query parameter.
const maxCount = 1000

// Server holds the page template and the randomizer shared by all requests.
type Server struct {
	page       []byte
	tag        string
	randomizer *wall.Randomizer
	logger     *log.Logger
}

// New validates page and returns a server for it. The page is re-parsed for
// every request so concurrent layouts never share a document.
func New(page []byte, tag string, r *wall.Randomizer, logger *log.Logger) (*Server, error) {
	if err := errors.ValidateSelector(tag); err != nil {
		return nil, err
	}
	if _, err := htmldoc.Parse(bytes.NewReader(page)); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{page: page, tag: tag, randomizer: r, logger: logger}, nil
}

// Handler returns the HTTP routes.
//
//	GET /             the page with a fresh layout
//	GET /layout.json  a layout for ?count= targets (default: one per slot)
//	GET /preview.svg  the same as an SVG drawing
//	GET /healthz      build information
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(logRequests(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/layout.json", s.handleLayout)
	r.Get("/preview.svg", s.handlePreview)
	r.Get("/healthz", s.handleHealthz)
	return r
}

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error     string      `json:"error"`
	Code      errors.Code `json:"code,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	doc, err := htmldoc.Parse(bytes.NewReader(s.page))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	l, err := htmldoc.Apply(doc, s.tag, s.randomizer)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Debug("layout", "request_id", requestIDFrom(r.Context()), "placed", len(l.Placements), "skipped", l.Skipped)

	body, err := doc.Bytes()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(body)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	l, err := s.placeFromQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := layoutio.WriteJSON(l, w); err != nil {
		s.logger.Error("write layout", "request_id", requestIDFrom(r.Context()), "err", err)
	}
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	l, err := s.placeFromQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := []preview.Option{preview.WithLabels()}
	if r.URL.Query().Get("slots") == "true" {
		opts = append(opts, preview.WithSlots())
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(preview.RenderSVG(l, opts...))
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) placeFromQuery(r *http.Request) (wall.Layout, error) {
	n := len(s.randomizer.Slots())
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 || parsed > maxCount {
			return wall.Layout{}, errors.New(errors.ErrCodeInvalidInput, "count must be an integer between 0 and %d", maxCount)
		}
		n = parsed
	}
	return s.randomizer.Place(n)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	id := requestIDFrom(r.Context())
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errors.ErrCodeInvalidInput):
		status = http.StatusBadRequest
	case errors.IsConfiguration(err):
		status = http.StatusUnprocessableEntity
	}

	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("internal error", "request_id", id, "err", err)
		msg = "internal error"
	}
	writeJSON(w, status, ErrorResponse{Error: msg, Code: errors.GetCode(err), RequestID: id})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
