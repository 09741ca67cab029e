package api

import (
	"net/http"
	"strconv"

	"github.com/edulingua/backend/internal/domain/analysis"
)

// defaultWindowDays is used when the days query parameter is absent.
const defaultWindowDays = 30

// ── Handlers ────────────────────────────────────────────────────────────────

// patterns mines a learner's recurring error patterns.
// @Summary      Get error patterns
// @Description  Aggregate a learner's stored errors over a day window into patterns and practice recommendations.
// @Tags         Progress
// @Produce      json
// @Param        userRef  path      string  true   "Learner reference"
// @Param        days     query     int     false  "Window in days (default 30)"
// @Success      200      {object}  miner.Report
// @Failure      400      {object}  map[string]string
// @Router       /users/{userRef}/patterns [get]
func (h *Handler) patterns(w http.ResponseWriter, r *http.Request) {
	userRef := r.PathValue("userRef")
	days, ok := windowDays(w, r)
	if !ok {
		return
	}

	report, err := h.svc.Patterns(userRef, days)
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// profile summarizes a learner's recent writing and recommends a band.
// @Summary      Get learner profile
// @Description  Averages over the learner's recent submissions plus a recommended CEFR practice band.
// @Tags         Progress
// @Produce      json
// @Param        userRef  path      string  true  "Learner reference"
// @Success      200      {object}  difficulty.Profile
// @Router       /users/{userRef}/profile [get]
func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	userRef := r.PathValue("userRef")

	p, err := h.svc.Profile(userRef)
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, p)
}

type HistoryResponse struct {
	UserRef string                     `json:"user_ref"`
	Days    int                        `json:"days"`
	Results []*analysis.AnalysisResult `json:"results"`
}

// history lists a learner's analyses inside the window, oldest first.
// @Summary      Get analysis history
// @Description  All stored analyses for a learner within the day window.
// @Tags         Progress
// @Produce      json
// @Param        userRef  path      string  true   "Learner reference"
// @Param        days     query     int     false  "Window in days (default 30)"
// @Success      200      {object}  HistoryResponse
// @Failure      400      {object}  map[string]string
// @Router       /users/{userRef}/history [get]
func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	userRef := r.PathValue("userRef")
	days, ok := windowDays(w, r)
	if !ok {
		return
	}

	results, err := h.svc.History(userRef, days)
	if h.handleServiceError(w, err) {
		return
	}
	if results == nil {
		results = []*analysis.AnalysisResult{}
	}

	respondJSON(w, http.StatusOK, HistoryResponse{
		UserRef: userRef,
		Days:    days,
		Results: results,
	})
}

// health reports liveness.
// @Summary      Health check
// @Tags         System
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// windowDays parses the optional days query parameter. Returns false if
// an error response was already written.
func windowDays(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return defaultWindowDays, true
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		http.Error(w, "days must be a positive integer", http.StatusBadRequest)
		return 0, false
	}
	return days, true
}
