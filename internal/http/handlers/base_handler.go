// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"voyage/internal/modules/dialogue"
	"voyage/internal/modules/quota"
	"voyage/internal/modules/session"
	"voyage/internal/modules/trip"
	"voyage/internal/modules/user"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeServiceError maps domain sentinels to HTTP statuses.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, dialogue.ErrEmptyInput), errors.Is(err, user.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrForbidden),
		errors.Is(err, trip.ErrNotFound), errors.Is(err, user.ErrNotFound):
		// Sessions of other users are reported as missing.
		writeError(c, http.StatusNotFound, "not found")
	case errors.Is(err, session.ErrLocked), errors.Is(err, dialogue.ErrTurnInFlight),
		errors.Is(err, session.ErrVersionConflict):
		writeError(c, http.StatusConflict, "a message for this session is already being processed")
	case errors.Is(err, quota.ErrInsufficientTokens):
		writeError(c, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, dialogue.ErrGenerationTimeout):
		writeError(c, http.StatusGatewayTimeout, "itinerary generation timed out, please try again")
	case errors.Is(err, dialogue.ErrItineraryFailed):
		log.Printf("handlers: %v", err)
		writeError(c, http.StatusBadGateway, "could not generate the itinerary, please try again")
	default:
		log.Printf("handlers: unexpected error: %v", err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
