package feed

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"Wayfare/internal/api/middleware"
	feedCore "Wayfare/internal/core/feed"
)

// GetFeedHandler serves the personalized ranked feed
type GetFeedHandler struct {
	service feedCore.Service
}

// NewGetFeedHandler creates a new feed handler
func NewGetFeedHandler(service feedCore.Service) *GetFeedHandler {
	return &GetFeedHandler{service: service}
}

// HandleGetFeed returns one page of the viewer's ranked feed
// GET /api/feed?page=1&limit=20
// Works for both authenticated and anonymous viewers.
func (h *GetFeedHandler) HandleGetFeed(w http.ResponseWriter, r *http.Request) {
	req := feedCore.GetFeedRequest{
		ViewerID: middleware.GetViewerID(r),
		Page:     parsePositiveInt(r.URL.Query().Get("page"), 1),
		Limit:    parsePositiveInt(r.URL.Query().Get("limit"), feedCore.DefaultPageSize),
	}

	page, err := h.service.GetFeed(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(page); err != nil {
		// Headers already sent; just log.
		log.Printf("ERROR: Failed to encode feed response: %v", err)
	}
}

// parsePositiveInt parses a query parameter, falling back to def when the
// parameter is absent. Malformed or non-positive values pass through so the
// service's validation can reject them with a proper error.
func parsePositiveInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return n
}
