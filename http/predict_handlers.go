package http

import (
	"encoding/json"
	"net/http"

	"empowerher/catalog"
	"empowerher/ml"
	"empowerher/monitoring"
)

var (
	riskClassifier  *ml.RiskClassifier
	predictionStats *monitoring.PredictionStats
)

// SetRiskClassifier injects the loaded classifier. Handlers answer 503
// until it is set; a half-initialized service never serves predictions.
func SetRiskClassifier(c *ml.RiskClassifier) {
	riskClassifier = c
}

// SetPredictionStats injects the stats collector.
func SetPredictionStats(s *monitoring.PredictionStats) {
	predictionStats = s
}

func RegisterPredictHandlers(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/predict", handlePredict)
	mux.HandleFunc("GET /api/model", handleModelInfo)
}

func handlePredict(w http.ResponseWriter, r *http.Request) {
	if riskClassifier == nil {
		http.Error(w, `{"error":"risk prediction unavailable"}`, http.StatusServiceUnavailable)
		return
	}

	var req struct {
		Selections catalog.Selections `json:"selections"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	if len(req.Selections) == 0 {
		http.Error(w, `{"error":"selections are required"}`, http.StatusBadRequest)
		return
	}

	result, err := riskClassifier.Classify(req.Selections)
	if err != nil {
		if predictionStats != nil {
			predictionStats.RecordRejection()
		}
		if mismatch, ok := err.(*ml.SchemaMismatch); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":   "schema mismatch between form fields and model columns",
				"missing": mismatch.Missing,
				"extra":   mismatch.Extra,
			})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	if predictionStats != nil {
		predictionStats.RecordPrediction(result.Risk)
	}
	respondJSON(w, result)
}

func handleModelInfo(w http.ResponseWriter, r *http.Request) {
	if riskClassifier == nil {
		http.Error(w, `{"error":"risk prediction unavailable"}`, http.StatusServiceUnavailable)
		return
	}

	respondJSON(w, map[string]interface{}{
		"columns":   riskClassifier.Columns(),
		"threshold": riskClassifier.Threshold(),
	})
}
