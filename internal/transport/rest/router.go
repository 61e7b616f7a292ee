// Package rest exposes the interview events as a JSON API.
package rest

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NewRouter wires every interview event to its route.
func NewRouter(h *Handler) http.Handler {
	r := mux.NewRouter()
	r.Use(h.accessLog)

	r.HandleFunc("/health", health).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/sessions", h.Create).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{id}", h.Get).Methods(http.MethodGet)
	v1.HandleFunc("/sessions/{id}", h.Delete).Methods(http.MethodDelete)
	v1.HandleFunc("/sessions/{id}/start", h.Start).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{id}/profile", h.SubmitProfile).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{id}/answers", h.SubmitAnswer).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{id}/ack", h.Acknowledge).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{id}/advance", h.Advance).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{id}/reset", h.Reset).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{id}/report/export", h.ExportReport).Methods(http.MethodPost)

	return r
}

func health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (h *Handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		h.logger.Debug("request served",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
