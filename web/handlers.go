package web

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, controller AppController, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		controller.Logger().LogError("Web: failed to encode response: %v", err)
	}
}

// statusHandler serves the lifecycle view of every running loop.
func statusHandler(controller AppController) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, controller, controller.GetStatusData())
	}
}

// metricsHandler serves the current snapshot and derived trend.
func metricsHandler(controller AppController) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, controller, controller.GetMetricsData())
	}
}

// reportHandler serves the full retained snapshot history.
func reportHandler(controller AppController) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, controller, controller.GetReportData())
	}
}

func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
