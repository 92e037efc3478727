package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/hierlayout/pkg/observability"
	"github.com/matzehuels/hierlayout/pkg/pipeline"
)

// RunIDHeader carries the run ID of a request.
const RunIDHeader = "X-Run-ID"

// runID assigns every request a fresh run ID and stores it in the context.
func (s *Server) runID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(RunIDHeader, id)
		next.ServeHTTP(w, r.WithContext(pipeline.WithRunID(r.Context(), id)))
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written bool
}

func (w *statusRecorder) WriteHeader(code int) {
	if !w.written {
		w.status = code
		w.written = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if !w.written {
		w.status = http.StatusOK
		w.written = true
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusRecorder) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// observe logs each request and reports it to the HTTP hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		d := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, rec.status, d)
		s.logger.Debug("request",
			"run", pipeline.RunID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", d)
	})
}
