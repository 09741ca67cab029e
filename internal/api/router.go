// internal/api/router.go
package api

import "net/http"

// RegisterRoutes attaches every endpoint to the mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Analysis
	mux.HandleFunc("POST /analyze", h.analyze)
	mux.HandleFunc("POST /analyze/batch", h.analyzeBatch)
	mux.HandleFunc("GET /analyses/{analysisID}", h.getAnalysis)
	mux.HandleFunc("POST /essays/score", h.scoreEssay)
	mux.HandleFunc("POST /difficulty/adjust", h.adjustDifficulty)

	// Progress
	mux.HandleFunc("GET /users/{userRef}/patterns", h.patterns)
	mux.HandleFunc("GET /users/{userRef}/profile", h.profile)
	mux.HandleFunc("GET /users/{userRef}/history", h.history)

	// System
	mux.HandleFunc("GET /health", h.health)
}
