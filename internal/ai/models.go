package ai

import "voyage/internal/types"

// TurnResult captures the structured output of a conversational turn.
type TurnResult struct {
	// Resp is the text shown to the user.
	Resp string `json:"resp"`

	// UI is the raw dialogue tag emitted by the model. Use Tag for the
	// validated value.
	UI string `json:"ui"`
}

// Tag returns the validated dialogue state; unknown tags become error.
func (r *TurnResult) Tag() types.UITag {
	return types.ParseUITag(r.UI)
}

// Options tunes model selection and prompt shaping for a provider.
type Options struct {
	ChatModel    string
	PlanModel    string
	HistoryLimit int
}

const (
	DefaultGeminiModel  = "gemini-2.5-flash"
	DefaultOpenAIModel  = "gpt-4o-mini"
	DefaultHistoryLimit = 40

	chatTemperature = 0.3
	planTemperature = 0.7

	chatMaxOutputTokens = 1024
	planMaxOutputTokens = 8192
)
