package web

import "net/http"

const apiVersion = "1.0.0"

// handleRoot returns a service banner so probes hitting / get a
// meaningful response.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"message": "table diff API is running"})
}

// handleHealth reports service health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleInfo describes the API for frontend discovery.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"name":              "table diff API",
		"version":           apiVersion,
		"description":       "compares two CSV or Excel files and reports row-level differences",
		"supported_formats": []string{"csv", "xlsx"},
		"endpoints": map[string]string{
			"/":                 "service banner",
			"/health":           "health check",
			"/api/info":         "API information",
			"/api/compare":      "compare two files",
			"/api/download-csv": "download added rows as CSV",
		},
	})
}

// handleTest is a connectivity test endpoint for the frontend.
func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok", "message": "API connection test successful"})
}
