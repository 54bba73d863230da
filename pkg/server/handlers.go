package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/genoviz/pkg/buildinfo"
	"github.com/matzehuels/genoviz/pkg/errors"
	"github.com/matzehuels/genoviz/pkg/mount"
	"github.com/matzehuels/genoviz/pkg/pipeline"
	"github.com/matzehuels/genoviz/pkg/session"
)

type healthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Sessions int    `json:"sessions"`
	Counters any    `json:"counters,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Version: buildinfo.Version, Sessions: s.live.len()}
	if s.counters != nil {
		resp.Counters = s.counters.Snapshot()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}

	opts := pipeline.Options{
		Kind:        chi.URLParam(r, "kind"),
		InputFormat: q.Get("input"),
		Data:        data,
		Chrom:       q.Get("chrom"),
		Title:       q.Get("title"),
		Formats:     []string{format},
		Refresh:     q.Get("refresh") == "true",
		Styles:      s.styles,
		Logger:      s.logger,
	}
	if opts.Min, err = floatParam(q, "min"); err != nil {
		s.writeError(w, err)
		return
	}
	if opts.Max, err = floatParam(q, "max"); err != nil {
		s.writeError(w, err)
		return
	}
	if v := q.Get("color_by"); v != "" {
		col, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "color_by %q", v))
			return
		}
		opts.ColorBy = &col
	}
	if v := q.Get("seed"); v != "" {
		if opts.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "seed %q", v))
			return
		}
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	cacheState := "miss"
	if res.CacheInfo.RenderHit {
		cacheState = "hit"
	}
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("X-Genoviz-Cache", cacheState)
	w.Header().Set("X-Genoviz-Input-Hash", res.InputHash)
	w.WriteHeader(http.StatusOK)
	w.Write(res.Artifacts[format])
}

type createSessionRequest struct {
	Kind        string      `json:"kind"`
	InputFormat string      `json:"input_format"`
	Data        string      `json:"data"`
	Chrom       string      `json:"chrom"`
	Min         float64     `json:"min"`
	Max         float64     `json:"max"`
	Domain      *[2]float64 `json:"domain"`
}

type sessionResponse struct {
	ID        string      `json:"id"`
	Kind      string      `json:"kind"`
	URL       string      `json:"url"`
	Domain    *[2]float64 `json:"domain,omitempty"`
	ExpiresAt time.Time   `json:"expires_at"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	sess := session.New(req.Kind, req.InputFormat, req.Data, s.sessionTTL)
	sess.Chrom, sess.Min, sess.Max, sess.Domain = req.Chrom, req.Min, req.Max, req.Domain
	lc, err := s.build(r.Context(), sess)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Set(r.Context(), sess); err != nil {
		s.writeError(w, fmt.Errorf("save session: %w", err))
		return
	}
	s.live.put(lc)
	s.logger.Info("session created", "id", sess.ID, "kind", sess.Kind)
	writeJSON(w, http.StatusCreated, toSessionResponse(sess))
}

func (s *Server) handleSessionPage(w http.ResponseWriter, r *http.Request) {
	lc, err := s.load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	lc.mu.Lock()
	page := lc.mount.Page(
		mount.WithTitle("genoviz "+lc.sess.Kind),
		mount.WithScript(sessionScript(lc.sess.ID, lc.chart.NodeID())),
	)
	lc.mu.Unlock()
	w.Header().Set("Content-Type", pipeline.ContentType(pipeline.FormatHTML))
	w.Write(page)
}

func (s *Server) handleSessionSVG(w http.ResponseWriter, r *http.Request) {
	lc, err := s.load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	lc.mu.Lock()
	svg := lc.chart.SVG()
	lc.mu.Unlock()
	w.Header().Set("Content-Type", pipeline.ContentType(pipeline.FormatSVG))
	w.Write(svg)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.load(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	s.live.remove(id)
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, fmt.Errorf("delete session: %w", err))
		return
	}
	s.logger.Info("session deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func toSessionResponse(sess *session.Session) sessionResponse {
	return sessionResponse{
		ID:        sess.ID,
		Kind:      sess.Kind,
		URL:       "/v1/sessions/" + sess.ID,
		Domain:    sess.Domain,
		ExpiresAt: sess.ExpiresAt,
	}
}

func floatParam(q url.Values, name string) (float64, error) {
	v := q.Get(name)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s %q is not a number", name, v)
	}
	return f, nil
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeError answers with the status of err's class. Only internal
// failures are logged.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: string(errors.GetCode(err))})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
