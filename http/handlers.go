package http

import (
	"encoding/json"
	"net/http"

	"empowerher/catalog"
)

func RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", handleHealth)
	mux.HandleFunc("GET /api/catalog", handleCatalog)
	mux.HandleFunc("GET /api/catalog/{field}", handleCatalogField)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleCatalog serves the full field catalog. Every presentation
// variant of the form is driven from this one definition.
func handleCatalog(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]interface{}{
		"fields": catalog.Fields(),
	})
}

func handleCatalogField(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("field")
	if name == "" {
		http.Error(w, "field is required", http.StatusBadRequest)
		return
	}

	field, ok := catalog.Lookup(name)
	if !ok {
		http.Error(w, "unknown field", http.StatusNotFound)
		return
	}

	respondJSON(w, field)
}

func respondJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}
