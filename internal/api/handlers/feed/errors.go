package feed

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	feedCore "Wayfare/internal/core/feed"
	"Wayfare/internal/core/signals"
	"Wayfare/internal/core/trips"
)

// apiError represents a JSON error response
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(apiError{Error: errorType, Message: message}); err != nil {
		log.Printf("ERROR: Failed to encode error response: %v", err)
	}
}

// handleServiceError maps feed service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case feedCore.IsValidationError(err):
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
	case errors.Is(err, trips.ErrStoreUnavailable), errors.Is(err, signals.ErrStoreUnavailable):
		log.Printf("ERROR: Feed store unavailable: %v", err)
		writeError(w, http.StatusServiceUnavailable, "StoreUnavailable", "The feed is temporarily unavailable")
	default:
		log.Printf("ERROR: Feed service error: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError", "An error occurred while fetching the feed")
	}
}
