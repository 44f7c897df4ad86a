// README: Gemini provider for conversational turns and final itinerary generation.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"voyage/internal/modules/itinerary"
	"voyage/internal/types"
)

// GeminiProvider implements LLMProvider using Google's Gemini models.
type GeminiProvider struct {
	client       *genai.Client
	chatModel    *genai.GenerativeModel
	planModel    *genai.GenerativeModel
	historyLimit int
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string, opts Options) (*GeminiProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	chatName := firstNonEmpty(opts.ChatModel, DefaultGeminiModel)
	planName := firstNonEmpty(opts.PlanModel, chatName)

	// Conversational turns: low temperature, schema-constrained {resp, ui}.
	chat := client.GenerativeModel(chatName)
	chat.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(conversationPrompt)}}
	chat.ResponseMIMEType = "application/json"
	chat.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"resp": {Type: genai.TypeString},
			"ui":   {Type: genai.TypeString, Enum: dialogueTags},
		},
		Required: []string{"resp", "ui"},
	}
	chat.SetTemperature(chatTemperature)
	chat.SetMaxOutputTokens(chatMaxOutputTokens)

	// Final itinerary: more creative and a much larger output budget.
	plan := client.GenerativeModel(planName)
	plan.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(planPrompt)}}
	plan.ResponseMIMEType = "application/json"
	plan.SetTemperature(planTemperature)
	plan.SetMaxOutputTokens(planMaxOutputTokens)

	limit := opts.HistoryLimit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	return &GeminiProvider{
		client:       client,
		chatModel:    chat,
		planModel:    plan,
		historyLimit: limit,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

func (p *GeminiProvider) Converse(ctx context.Context, history []types.Message) (*TurnResult, error) {
	text, err := p.send(ctx, p.chatModel, history, "Continue.")
	if err != nil {
		return nil, err
	}
	return ParseTurn(text)
}

func (p *GeminiProvider) PlanItinerary(ctx context.Context, history []types.Message) (*itinerary.Itinerary, error) {
	text, err := p.send(ctx, p.planModel, history, GenerateTrigger)
	if err != nil {
		return nil, err
	}
	return ParseItinerary(text)
}

func (p *GeminiProvider) send(ctx context.Context, model *genai.GenerativeModel, history []types.Message, fallback string) (string, error) {
	window := mergeRoles(trimHistory(history, p.historyLimit))
	prior, last := splitLast(window, fallback)

	cs := model.StartChat()
	cs.History = toGeminiContents(prior)

	resp, err := cs.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	// Extract text from the response parts.
	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}
	return responseText.String(), nil
}

func toGeminiContents(history []types.Message) []*genai.Content {
	out := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		role := "user"
		if m.Role == types.RoleAssistant {
			role = "model"
		}
		out = append(out, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(m.Content)}})
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
