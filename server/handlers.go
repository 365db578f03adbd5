package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/etnz/positions"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePivot returns the position table filtered by the "q" parameter,
// with the rows expanded in the caller's session.
func (s *Server) handlePivot(w http.ResponseWriter, r *http.Request) {
	id := s.sessions.id(w, r)
	p := positions.NewPivot(s.snapshot.Lots(), r.URL.Query().Get("q"), s.sessions.Expanded(id))
	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	id := s.sessions.id(w, r)
	symbol := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "symbol")))
	if symbol == "" {
		s.writeError(w, http.StatusBadRequest, "missing symbol")
		return
	}
	expanded := s.sessions.Toggle(id, symbol)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"symbol":   symbol,
		"expanded": expanded,
	})
}

func (s *Server) handleCollapseAll(w http.ResponseWriter, r *http.Request) {
	id := s.sessions.id(w, r)
	s.sessions.Reset(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEquities(w http.ResponseWriter, r *http.Request) {
	rows := positions.Aggregate(s.snapshot.Lots())

	s.paletteMu.Lock()
	slices := positions.EquityAllocation(rows, &s.palette)
	s.paletteMu.Unlock()

	s.writeJSON(w, http.StatusOK, slices)
}

func (s *Server) handleAssets(w http.ResponseWriter, r *http.Request) {
	lots, cash := s.snapshot.State()
	totals := positions.ComputeTotals(lots)
	s.writeJSON(w, http.StatusOK, positions.AssetAllocation(cash, totals.Value))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	lots, cash := s.snapshot.State()
	s.writeJSON(w, http.StatusOK, positions.ComputeStats(lots, cash))
}

func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	status := positions.MarketStatusAt(s.now())
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": status,
		"label":  status.String(),
	})
}

func (s *Server) handleSellEstimate(w http.ResponseWriter, r *http.Request) {
	var ticket positions.SellTicket
	if err := json.NewDecoder(r.Body).Decode(&ticket); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	ticket.Symbol = strings.ToUpper(strings.TrimSpace(ticket.Symbol))

	estimate, err := ticket.Check(positions.Aggregate(s.snapshot.Lots()))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, estimate)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.refresh.refresh(); err != nil {
		s.log.Error().Err(err).Msg("Refresh failed")
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"lots":      len(s.snapshot.Lots()),
		"refreshed": s.snapshot.Refreshed().Format(time.RFC3339),
	})
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{
		"error": message,
	})
}
