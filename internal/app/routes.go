package app

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"webhook-examples/internal/common/logging"
	"webhook-examples/internal/middleware"
)

// SetupRoutes configures all HTTP routes for the catalog
func SetupRoutes(router *mux.Router, app *App) {
	// Add logging middleware to all routes
	router.Use(middleware.LoggingMiddleware)

	// Health check
	router.HandleFunc("/health", app.HealthCheck).Methods("GET")

	// Catalog index
	router.HandleFunc("/", app.CatalogIndex).Methods("GET")

	// One receiver per provider
	for _, endpoint := range app.Endpoints {
		router.HandleFunc(endpoint.Path, endpoint.Handler()).Methods("POST")
		logging.Debug("Route registered",
			logging.Field{Key: "provider", Value: endpoint.Name},
			logging.Field{Key: "path", Value: endpoint.Path},
			logging.Field{Key: "scheme", Value: endpoint.Verifier.Scheme()},
		)
	}
}

// HealthCheck returns the health status of the service
func (app *App) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now(),
		"version":   "1.0.0",
	})
}

type endpointSummary struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Scheme string `json:"scheme"`
}

// CatalogIndex lists every receiver with its route and verification scheme
func (app *App) CatalogIndex(w http.ResponseWriter, r *http.Request) {
	summaries := make([]endpointSummary, 0, len(app.Endpoints))
	for _, endpoint := range app.Endpoints {
		summaries = append(summaries, endpointSummary{
			Name:   endpoint.Name,
			Path:   endpoint.Path,
			Scheme: endpoint.Verifier.Scheme(),
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"service":   "webhook-examples",
		"endpoints": summaries,
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
