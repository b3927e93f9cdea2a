package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/mattwilson20/ascrl-platform/internal/league"
	"github.com/mattwilson20/ascrl-platform/internal/metrics"
	"github.com/mattwilson20/ascrl-platform/internal/models"
)

// LeagueHandler serves the read-only HTTP API over the same league service
// the bot uses.
type LeagueHandler struct {
	service *league.Service
}

func NewLeagueHandler(service *league.Service) *LeagueHandler {
	return &LeagueHandler{
		service: service,
	}
}

func (h *LeagueHandler) HandleStandings(w http.ResponseWriter, r *http.Request) {
	defer observe(r, time.Now())

	series, err := models.ParseSeries(r.PathValue("series"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rows, err := h.service.Standings(series)
	if err != nil {
		logger.Error.Printf("Failed to fetch standings for %s: %v", series, err)
		http.Error(w, "Failed to fetch standings", http.StatusInternalServerError)
		return
	}

	writeRows(w, rows)
}

func (h *LeagueHandler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	defer observe(r, time.Now())

	var series *models.Series
	if raw := r.URL.Query().Get("series"); raw != "" {
		s, err := models.ParseSeries(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		series = &s
	}

	races, err := h.service.Schedule(series)
	if err != nil {
		logger.Error.Printf("Failed to fetch schedule: %v", err)
		http.Error(w, "Failed to fetch schedule", http.StatusInternalServerError)
		return
	}

	writeRows(w, races)
}

func (h *LeagueHandler) HandleResults(w http.ResponseWriter, r *http.Request) {
	defer observe(r, time.Now())

	series, err := models.ParseSeries(r.PathValue("series"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	reports, err := h.service.RaceResults(series, r.URL.Query().Get("track"))
	if err != nil {
		logger.Error.Printf("Failed to fetch results for %s: %v", series, err)
		http.Error(w, "Failed to fetch results", http.StatusInternalServerError)
		return
	}

	writeRows(w, reports)
}

func (h *LeagueHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	defer observe(r, time.Now())

	board, err := h.service.Leaderboard()
	if err != nil {
		logger.Error.Printf("Failed to fetch leaderboard: %v", err)
		http.Error(w, "Failed to fetch leaderboard", http.StatusInternalServerError)
		return
	}

	writeRows(w, board)
}

func observe(r *http.Request, start time.Time) {
	metrics.APIRequestDuration.WithLabelValues(
		r.URL.Path,
		r.Method,
		"200",
	).Observe(time.Since(start).Seconds())
}

func writeRows(w http.ResponseWriter, rows interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"rows": rows,
	}); err != nil {
		logger.Debug.Printf("Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
