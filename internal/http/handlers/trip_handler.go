// README: Saved-trip handlers (list and fetch for the caller).
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"voyage/internal/http/middleware"
	"voyage/internal/modules/trip"
)

type TripHandler struct {
	trips *trip.Service
}

func NewTripHandler(trips *trip.Service) *TripHandler {
	return &TripHandler{trips: trips}
}

// List handles GET /api/trips?limit=N.
func (h *TripHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	trips, err := h.trips.List(c.Request.Context(), middleware.CallerUID(c), limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if trips == nil {
		trips = []*trip.Trip{}
	}
	writeJSON(c, http.StatusOK, gin.H{"trips": trips})
}

// Get handles GET /api/trips/:id.
func (h *TripHandler) Get(c *gin.Context) {
	t, err := h.trips.Get(c.Request.Context(), middleware.CallerUID(c), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}
