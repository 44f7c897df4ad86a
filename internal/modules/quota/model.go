// README: Monthly generation allowance per user and its sentinel errors.
package quota

import "errors"

// ErrInsufficientTokens is returned when a user cannot afford a charge this month.
var ErrInsufficientTokens = errors.New("insufficient tokens")

const (
	// DefaultTokens is the number of tokens granted per month.
	DefaultTokens = 100

	// TurnCost is charged for one conversational turn.
	TurnCost = 1

	// DefaultPlanCost is charged for one final itinerary generation.
	DefaultPlanCost = 5
)

// Usage is a user's allowance for the current month.
type Usage struct {
	UID       string `json:"uid"`
	Remaining int    `json:"tokens_remaining"`
	Month     string `json:"month"`
}
