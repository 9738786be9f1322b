// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"restaurant_score/internal/app"
	"restaurant_score/internal/domain"
	"restaurant_score/internal/keywords"
)

const maxBody = 1 << 20

type Handlers struct {
	A    *app.AnalysisService
	Repo domain.ReviewRepository
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type scoreRequest struct {
	FoodScores            []int `json:"food_scores"`
	CustomerServiceScores []int `json:"customer_service_scores"`
}

type adjectiveScore struct {
	Adjective string `json:"adjective"`
	Score     int    `json:"score"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/keywords", h.listKeywords)
	s.mux.Get("/v1/keywords/{adjective}", h.getKeyword)
	s.mux.Get("/v1/restaurants", h.listRestaurants)
	s.mux.Get("/v1/restaurants/{name}/reviews", h.fetchReviews)
	s.mux.Post("/v1/restaurants/{name}/score", h.calculateScore)
	s.mux.Get("/v1/restaurants/{name}/analysis", h.analyze)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps domain errors onto problem responses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrUnrecognizedKeyword):
		writeProblem(w, http.StatusNotFound, "Unrecognized Keyword", err.Error())
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrExtraction):
		writeProblem(w, http.StatusUnprocessableEntity, "Unprocessable Entity", err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		// Log but don't fail the whole response; return empty ETag and best-effort body.
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSON answers 304 when the client already holds this version.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

// pathParam returns the decoded URL parameter. chi routes on RawPath when the
// client's encoding differs from Go's, leaving the parameter escaped.
func pathParam(r *http.Request, key string) (string, bool) {
	v := chi.URLParam(r, key)
	if r.URL.RawPath != "" {
		var err error
		if v, err = url.PathUnescape(v); err != nil {
			return "", false
		}
	}
	return v, v != ""
}

func (h *Handlers) listKeywords(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, keywords.Table())
}

func (h *Handlers) getKeyword(w http.ResponseWriter, r *http.Request) {
	adj, ok := pathParam(r, "adjective")
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid adjective", "adjective must be a valid path segment")
		return
	}
	score, err := h.A.ScoreForAdjective(adj)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, adjectiveScore{Adjective: adj, Score: score})
}

func (h *Handlers) listRestaurants(w http.ResponseWriter, r *http.Request) {
	names, err := h.Repo.Restaurants(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, r, names)
}

func (h *Handlers) fetchReviews(w http.ResponseWriter, r *http.Request) {
	name, ok := pathParam(r, "name")
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid name", "restaurant name must be a valid path segment")
		return
	}
	out, err := h.A.FetchReviews(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) calculateScore(w http.ResponseWriter, r *http.Request) {
	name, ok := pathParam(r, "name")
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid name", "restaurant name must be a valid path segment")
		return
	}
	var req scoreRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", err.Error())
		return
	}
	out, err := h.A.CalculateOverallScore(name, req.FoodScores, req.CustomerServiceScores)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		log.Error().Err(err).Msg("failed to write score body")
	}
}

func (h *Handlers) analyze(w http.ResponseWriter, r *http.Request) {
	name, ok := pathParam(r, "name")
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid name", "restaurant name must be a valid path segment")
		return
	}
	out, err := h.A.Analyze(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, out)
}
