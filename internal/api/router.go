package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// router wires the versioned read endpoints.
func (s *Server) router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestLogger)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/bias/{symbol}", s.handleBias).Methods(http.MethodGet)
	v1.HandleFunc("/tactical", s.handleTactical).Methods(http.MethodGet)
	v1.HandleFunc("/radar", s.handleRadar).Methods(http.MethodGet)
	v1.HandleFunc("/diagnostics", s.handleDiagnostics).Methods(http.MethodGet)
	v1.HandleFunc("/history/{symbol}", s.handleHistory).Methods(http.MethodGet)

	return r
}

// requestLogger logs every request with its duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		s.logger.WithFields(map[string]interface{}{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start),
		}).Debug("Request handled")
	})
}
