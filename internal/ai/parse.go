// README: Decoding of model output into turn results and itineraries.
package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"voyage/internal/modules/itinerary"
)

var (
	ErrEmptyResponse     = errors.New("ai: empty response")
	ErrMalformedResponse = errors.New("ai: malformed response")
)

// ParseTurn decodes a conversational reply. Both resp and ui must be present.
func ParseTurn(text string) (*TurnResult, error) {
	body := extractJSONObject(text)
	if body == "" {
		return nil, ErrEmptyResponse
	}

	var result TurnResult
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if strings.TrimSpace(result.Resp) == "" || strings.TrimSpace(result.UI) == "" {
		return nil, fmt.Errorf("%w: missing resp or ui", ErrMalformedResponse)
	}
	return &result, nil
}

// ParseItinerary decodes a final-mode reply. A trip_plan object is required;
// day coverage is left to itinerary.Validate.
func ParseItinerary(text string) (*itinerary.Itinerary, error) {
	body := extractJSONObject(text)
	if body == "" {
		return nil, ErrEmptyResponse
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	plan, ok := fields["trip_plan"]
	if !ok || len(plan) == 0 || plan[0] != '{' {
		return nil, fmt.Errorf("%w: missing trip_plan", ErrMalformedResponse)
	}

	var it itinerary.Itinerary
	if err := json.Unmarshal([]byte(body), &it); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &it, nil
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}

// extractJSONObject narrows model output to the outermost {...} span.
// Text without braces is returned as-is so the decoder reports it.
func extractJSONObject(input string) string {
	input = cleanJSONString(input)
	start := strings.Index(input, "{")
	end := strings.LastIndex(input, "}")
	if start >= 0 && end > start {
		return input[start : end+1]
	}
	return input
}
