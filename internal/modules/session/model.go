// README: Planning session state (message log, derived preferences, last itinerary).
package session

import (
	"errors"
	"time"

	"voyage/internal/modules/dialogue"
	"voyage/internal/modules/itinerary"
	"voyage/internal/types"
)

var (
	ErrNotFound        = errors.New("session not found")
	ErrVersionConflict = errors.New("session version conflict")
	ErrLocked          = errors.New("session turn in progress")
	ErrForbidden       = errors.New("session belongs to another user")
)

// Data is one planning session. Version is bumped by every successful
// Update; writers must present the version they read.
type Data struct {
	ID          string               `json:"id"`
	UserID      string               `json:"user_id"`
	Messages    []types.Message      `json:"messages"`
	Preferences dialogue.Preferences `json:"preferences"`
	Itinerary   *itinerary.Itinerary `json:"itinerary,omitempty"`
	TripID      string               `json:"trip_id,omitempty"`
	Version     int64                `json:"version"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}
