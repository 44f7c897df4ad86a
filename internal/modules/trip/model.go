// README: Saved trip (a completed, validated and enriched itinerary).
package trip

import (
	"errors"
	"time"

	"voyage/internal/modules/dialogue"
	"voyage/internal/modules/itinerary"
)

var ErrNotFound = errors.New("trip not found")

const DefaultListLimit = 20

type Trip struct {
	ID          string               `json:"id"`
	UserID      string               `json:"user_id"`
	SessionID   string               `json:"session_id"`
	Destination string               `json:"destination"`
	TotalDays   int                  `json:"total_days"`
	Preferences dialogue.Preferences `json:"preferences"`
	Itinerary   *itinerary.Itinerary `json:"itinerary"`
	CreatedAt   time.Time            `json:"created_at"`
}
