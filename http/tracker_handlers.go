package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"empowerher/db"
	"empowerher/monitoring"
	"empowerher/tracker"
)

var (
	trackerGoals = tracker.DefaultGoals()
	dashboardHub *monitoring.DashboardHub
)

// SetTrackerGoals overrides the default daily goals from config.
func SetTrackerGoals(goals tracker.Goals) {
	trackerGoals = goals
}

// SetDashboardHub injects the websocket hub; saved entries are pushed to
// connected dashboards when it is present.
func SetDashboardHub(hub *monitoring.DashboardHub) {
	dashboardHub = hub
}

func RegisterTrackerHandlers(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/tracker/entries", handleSaveEntry)
	mux.HandleFunc("GET /api/tracker/entries", handleListEntries)
	mux.HandleFunc("GET /api/tracker/progress", handleProgress)
}

func handleSaveEntry(w http.ResponseWriter, r *http.Request) {
	var entry tracker.Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	if entry.Date == "" {
		entry.Date = time.Now().Format("2006-01-02")
	}
	if err := entry.Validate(); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	if err := db.SaveWellnessEntry(entry); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	progress := trackerGoals.Progress(entry)
	if dashboardHub != nil {
		dashboardHub.BroadcastTrackerEntry(entry, progress)
	}

	respondJSON(w, map[string]interface{}{
		"entry":    entry,
		"progress": progress,
	})
}

func handleListEntries(w http.ResponseWriter, r *http.Request) {
	limit := 30
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	entries, err := db.QueryWellnessEntries(limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

func handleProgress(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	entry, err := db.GetWellnessEntry(date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, `{"error":"no entry for date"}`, http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]interface{}{
		"entry":    entry,
		"progress": trackerGoals.Progress(entry),
		"goals":    trackerGoals,
	})
}
