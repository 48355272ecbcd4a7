package web

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/gdpmap/internal/config"
	"github.com/JonMunkholm/gdpmap/internal/core"
)

// maxHistoryLimit caps the limit query parameter of /api/history.
const maxHistoryLimit = 500

type healthResponse struct {
	Status  string                   `json:"status"`
	GDPFile string                   `json:"gdpFile"`
	History bool                     `json:"history"`
	Renders core.RenderLimiterStatus `json:"renders"`
}

type reconcileResponse struct {
	GDPFile   string           `json:"gdpFile"`
	Matched   core.CodeNameMap `json:"matched"`
	Unmatched []string         `json:"unmatched"`
}

type resolveResponse struct {
	Year     string             `json:"year"`
	Title    string             `json:"title"`
	Values   map[string]float64 `json:"values"`
	NotFound []string           `json:"notFound"`
	NoData   []string           `json:"noData"`
	Total    int                `json:"total"`
}

// handleHealth reports liveness and render slot usage.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_, nop := s.service.History().(core.NopHistoryStore)
	writeJSON(w, r, healthResponse{
		Status:  "ok",
		GDPFile: s.info.GDPFile,
		History: !nop,
		Renders: s.limiter.Status(),
	})
}

// handleCountries returns the country code to name table.
func (s *Server) handleCountries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, s.codes)
}

// handleReconcile lists which countries have a row in the GDP file.
func (s *Server) handleReconcile(w http.ResponseWriter, r *http.Request) {
	res, err := s.service.ReconcileNames(r.Context(), s.info, s.codes)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, r, reconcileResponse{
		GDPFile:   s.info.GDPFile,
		Matched:   res.Matched,
		Unmatched: res.Unmatched.Sorted(),
	})
}

// handleResolve returns the three-way partition of countries for a year.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	res, err := s.service.ResolveYear(r.Context(), s.info, s.codes, year)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, r, resolveResponse{
		Year:     res.Year,
		Title:    core.MapTitle(res.Year),
		Values:   res.Values,
		NotFound: res.NotFound.Sorted(),
		NoData:   res.NoData.Sorted(),
		Total:    res.Total(),
	})
}

// handleMap renders the map for a year and sends it as SVG. The image is
// buffered so a failed render still gets a JSON error response.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.limiter.Acquire(r.Context()); err != nil {
		s.respondError(w, r, err)
		return
	}
	defer s.limiter.Release()

	var buf bytes.Buffer
	if _, err := s.service.WriteMap(r.Context(), s.info, s.codes, year, &buf); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(buf.Bytes())
}

// handleRender writes the map for a year to the output directory and
// returns its render record.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	r = withClient(r)

	if err := s.limiter.Acquire(r.Context()); err != nil {
		s.respondError(w, r, err)
		return
	}
	defer s.limiter.Release()

	out := filepath.Join(s.cfg.Render.OutputDir, s.service.OutputName(year))
	rec, err := s.service.RenderWorldMap(r.Context(), s.info, s.codes, year, out)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, r, rec)
}

// handleHistory returns the most recent render records.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", core.DefaultHistoryLimit)
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	recs, err := s.service.History().Recent(r.Context(), limit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if recs == nil {
		recs = []core.RenderRecord{}
	}

	writeJSON(w, r, recs)
}

// yearParam returns the {year} URL parameter. It is checked here because
// it ends up in a file name.
func yearParam(r *http.Request) (string, error) {
	year := chi.URLParam(r, "year")
	if !config.IsYear(year) {
		return "", fmt.Errorf("invalid year %q", year)
	}
	return year, nil
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}
