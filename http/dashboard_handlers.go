package http

import (
	"net/http"

	"empowerher/content"
)

var contentStore *content.Store

// SetContentStore injects the educational-content store.
func SetContentStore(store *content.Store) {
	contentStore = store
}

func RegisterDashboardRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/content/tips", handleContentTips)
	mux.HandleFunc("GET /api/content/videos", handleContentVideos)
	mux.HandleFunc("GET /api/content/groups", handleContentGroups)
	mux.HandleFunc("GET /api/content/figures", handleContentFigures)
	mux.HandleFunc("GET /api/dashboard/stats", handleDashboardStats)
	mux.HandleFunc("GET /api/ws/dashboard", handleDashboardSocket)
	mux.HandleFunc("GET /{$}", handleIndex)
}

func handleContentTips(w http.ResponseWriter, r *http.Request) {
	if contentStore == nil {
		http.Error(w, "content not initialized", http.StatusServiceUnavailable)
		return
	}
	respondJSON(w, map[string]interface{}{"tips": contentStore.Tips()})
}

func handleContentVideos(w http.ResponseWriter, r *http.Request) {
	if contentStore == nil {
		http.Error(w, "content not initialized", http.StatusServiceUnavailable)
		return
	}
	respondJSON(w, map[string]interface{}{"videos": contentStore.Videos()})
}

func handleContentGroups(w http.ResponseWriter, r *http.Request) {
	if contentStore == nil {
		http.Error(w, "content not initialized", http.StatusServiceUnavailable)
		return
	}
	respondJSON(w, map[string]interface{}{"support_groups": contentStore.SupportGroups()})
}

func handleContentFigures(w http.ResponseWriter, r *http.Request) {
	if contentStore == nil {
		http.Error(w, "content not initialized", http.StatusServiceUnavailable)
		return
	}
	respondJSON(w, map[string]interface{}{"figures": contentStore.Figures()})
}

func handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	if predictionStats == nil {
		http.Error(w, "stats not initialized", http.StatusServiceUnavailable)
		return
	}
	respondJSON(w, predictionStats.Snapshot())
}

func handleDashboardSocket(w http.ResponseWriter, r *http.Request) {
	if dashboardHub == nil {
		http.Error(w, "dashboard hub not initialized", http.StatusServiceUnavailable)
		return
	}
	dashboardHub.HandleWebSocket(w, r)
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexPage))
}
