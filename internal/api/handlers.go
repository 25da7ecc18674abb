package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/macrolens/backend/internal/engine"
)

// handleHealth reports process and database health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	}

	if s.db != nil {
		dbHealth, err := s.db.HealthCheck(r.Context())
		status["database"] = dbHealth
		if err != nil {
			status["status"] = "degraded"
			s.writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
	}

	s.writeJSON(w, http.StatusOK, status)
}

// handleBias serves the bias + narrative view for one symbol.
func (s *Server) handleBias(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(mux.Vars(r)["symbol"])

	view, err := s.engine.BiasFor(r.Context(), symbol)
	if err != nil {
		if errors.Is(err, engine.ErrUnknownSymbol) {
			s.writeError(w, http.StatusNotFound, err)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, view)
}

// handleTactical serves the tactical table for the universe.
func (s *Server) handleTactical(w http.ResponseWriter, r *http.Request) {
	rows, err := s.engine.TacticalRows(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"rows":         rows,
		"generated_at": time.Now().UTC(),
	})
}

// handleRadar serves the ranked opportunities.
func (s *Server) handleRadar(w http.ResponseWriter, r *http.Request) {
	opportunities, err := s.engine.Radar(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"opportunities": opportunities,
		"generated_at":  time.Now().UTC(),
	})
}

// handleDiagnostics serves the invariant check results plus the job
// execution stats.
func (s *Server) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	diags, err := s.engine.Diagnostics(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	payload := map[string]interface{}{
		"invariants":   diags,
		"generated_at": time.Now().UTC(),
	}
	if s.scheduler != nil {
		payload["jobs"] = s.scheduler.GetJobStats()
	}

	s.writeJSON(w, http.StatusOK, payload)
}

// handleHistory serves the historical signal confidence for a symbol.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(mux.Vars(r)["symbol"])

	hc, err := s.engine.HistoricalConfidence(r.Context(), symbol)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, hc)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.WithError(err).Error("Request failed")
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
