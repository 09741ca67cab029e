// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/edulingua/backend/internal/domain/analysis"
	"github.com/edulingua/backend/internal/service"
	"github.com/edulingua/backend/internal/store"
)

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	svc    *service.AssessmentService
	logger *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(svc *service.AssessmentService, logger *slog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		logger: logger,
	}
}

// validator is implemented by request types that can check themselves.
type validator interface {
	Validate() error
}

// decodeAndValidate decodes the JSON body into req and validates it.
// Returns false if an error response was already written.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req validator) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return false
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// handleServiceError maps service errors to HTTP responses. Returns true
// if an error was handled (caller should return).
func (h *Handler) handleServiceError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		http.Error(w, verr.Error(), http.StatusBadRequest)
		return true
	}

	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return true
	}

	var ferr *analysis.FaultError
	if errors.As(err, &ferr) {
		h.logger.Error("rule engine fault", "op", ferr.Op, "detail", ferr.Detail)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return true
	}

	h.logger.Error("service error", "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
	return true
}
