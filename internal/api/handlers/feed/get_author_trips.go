package feed

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Wayfare/internal/api/middleware"
	feedCore "Wayfare/internal/core/feed"
)

// GetAuthorTripsHandler serves a single author's trip listing
type GetAuthorTripsHandler struct {
	service feedCore.Service
}

// NewGetAuthorTripsHandler creates a new author trips handler
func NewGetAuthorTripsHandler(service feedCore.Service) *GetAuthorTripsHandler {
	return &GetAuthorTripsHandler{service: service}
}

// HandleGetAuthorTrips returns one page of an author's trips, newest first,
// annotated with the viewer's relation flags but not ranked or cached
// GET /api/users/{userID}/trips?page=1&limit=20
func (h *GetAuthorTripsHandler) HandleGetAuthorTrips(w http.ResponseWriter, r *http.Request) {
	authorID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || authorID <= 0 {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "userID must be a positive integer")
		return
	}

	req := feedCore.GetAuthorFeedRequest{
		ViewerID: middleware.GetViewerID(r),
		AuthorID: authorID,
		Page:     parsePositiveInt(r.URL.Query().Get("page"), 1),
		Limit:    parsePositiveInt(r.URL.Query().Get("limit"), feedCore.DefaultPageSize),
	}

	page, err := h.service.GetAuthorFeed(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(page); err != nil {
		log.Printf("ERROR: Failed to encode author trips response: %v", err)
	}
}
