package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/hierlayout/pkg/buildinfo"
	"github.com/matzehuels/hierlayout/pkg/errors"
	"github.com/matzehuels/hierlayout/pkg/graph"
	"github.com/matzehuels/hierlayout/pkg/pipeline"
	"github.com/matzehuels/hierlayout/pkg/render/dot"
)

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

type healthBody struct {
	Status string `json:"status"`
	buildinfo.Info
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthBody{Status: "ok", Info: buildinfo.Get()})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	res, ok := s.layout(w, r)
	if !ok {
		return
	}

	format := graph.FormatJSON
	if isYAML(r.Header.Get("Accept")) {
		format = graph.FormatYAML
	}
	if format == graph.FormatYAML {
		w.Header().Set("Content-Type", "application/yaml")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(http.StatusOK)
	if err := graph.Write(w, res, format); err != nil {
		s.logger.Warn("write response", "err", err)
	}
}

func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatDOT
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}

	res, ok := s.layout(w, r)
	if !ok {
		return
	}

	opts := dot.Options{
		Detailed: boolParam(q.Get("detailed")),
		Lanes:    boolParam(q.Get("lanes")),
		RankDir:  q.Get("rankdir"),
	}
	out, err := s.runner.Render(r.Context(), res, format, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	if format == pipeline.FormatSVG {
		w.Header().Set("Content-Type", "image/svg+xml")
	} else {
		w.Header().Set("Content-Type", "text/vnd.graphviz")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// layout decodes the request body and runs the pipeline. On failure it has
// already written the error response.
func (s *Server) layout(w http.ResponseWriter, r *http.Request) (*graph.Result, bool) {
	format := graph.FormatJSON
	if isYAML(r.Header.Get("Content-Type")) {
		format = graph.FormatYAML
	}

	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	g, err := graph.Read(body, format)
	if err != nil {
		writeError(w, classifyRead(err))
		return nil, false
	}

	q := r.URL.Query()
	opts := pipeline.Options{
		Stage:          q.Get("stage"),
		Rank:           boolParam(q.Get("rank")),
		CoverUnreached: boolParam(q.Get("cover")),
		Refresh:        boolParam(q.Get("refresh")),
		Limits:         s.cfg.Limits,
		Logger:         s.logger.With("run", pipeline.RunID(r.Context())),
	}

	res, hit, err := s.runner.Run(r.Context(), g, opts)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	w.Header().Set("X-Cache", cacheHeader(hit))
	return res, true
}

// classifyRead turns a decode or validation failure into a coded error.
func classifyRead(err error) error {
	var tooLarge *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooLarge):
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "request body too large")
	case stderrors.Is(err, graph.ErrEmptyNodeID),
		stderrors.Is(err, graph.ErrDuplicateNodeID),
		stderrors.Is(err, graph.ErrDuplicateEdgeID),
		stderrors.Is(err, graph.ErrUnknownEndpoint),
		stderrors.Is(err, graph.ErrUnknownRoot),
		stderrors.Is(err, graph.ErrNegativeLane):
		return errors.Wrap(errors.ErrCodeInvalidGraph, err, "graph rejected")
	case stderrors.Is(err, graph.ErrUnsupportedFormat):
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "unsupported body format")
	}
	return errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed graph document")
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, errors.HTTPStatus(code), errorBody{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func isYAML(mediaType string) bool {
	mediaType = strings.ToLower(mediaType)
	return strings.Contains(mediaType, "yaml") || strings.Contains(mediaType, "yml")
}

func boolParam(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
