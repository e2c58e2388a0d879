package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/teemow/calbridge/internal/logging"
)

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// observeMiddleware logs each request and records request metrics
// against the route template, not the raw path, to bound label
// cardinality.
func (s *Server) observeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				path = tmpl
			}
		}

		s.logger.Info("request handled",
			logging.Operation("http_request"),
			logging.Duration(duration),
			"method", r.Method,
			"path", path,
			"status", rec.status,
		)
		s.metrics.RecordHTTPRequest(r.Context(), r.Method, path, rec.status, duration)
	})
}

// recoverMiddleware turns a handler panic into a 502 with a tagged
// body instead of tearing down the connection.
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				s.logger.Error("handler panicked",
					logging.Operation("http_request"),
					"path", r.URL.Path,
					"panic", v,
				)
				writeJSON(w, http.StatusBadGateway, errorBody{Error: "internal failure", Kind: "unknown"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
