package dialogue

import "errors"

var (
	ErrEmptyInput        = errors.New("dialogue: empty input")
	ErrTurnInFlight      = errors.New("dialogue: a turn is already in flight")
	ErrItineraryFailed   = errors.New("dialogue: itinerary generation failed")
	ErrGenerationTimeout = errors.New("dialogue: itinerary generation timed out")
)
