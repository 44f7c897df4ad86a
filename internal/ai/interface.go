// README: Provider contract shared by the dialogue driver and the CLI.
package ai

import (
	"context"
	"fmt"

	"voyage/internal/modules/itinerary"
	"voyage/internal/types"
)

// LLMProvider defines the contract for interacting with AI models.
// Gemini is the default; OpenAI can be swapped in through configuration.
type LLMProvider interface {
	// Converse continues the slot-filling dialogue. history ends with the
	// newest user message. The reply is validated to carry resp and ui.
	Converse(ctx context.Context, history []types.Message) (*TurnResult, error)

	// PlanItinerary asks for the complete structured itinerary for the
	// conversation so far. It fails with ErrEmptyResponse or
	// ErrMalformedResponse when the output cannot be parsed.
	PlanItinerary(ctx context.Context, history []types.Message) (*itinerary.Itinerary, error)

	Close() error
}

// NewProvider builds the named provider ("gemini" or "openai").
func NewProvider(ctx context.Context, name, apiKey string, opts Options) (LLMProvider, error) {
	switch name {
	case "", "gemini":
		p, err := NewGeminiProvider(ctx, apiKey, opts)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "openai":
		p, err := NewOpenAIProvider(apiKey, opts)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", name)
	}
}
