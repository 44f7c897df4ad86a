// README: OpenAI chat-completions provider, selectable through configuration.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	oaioption "github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"voyage/internal/modules/itinerary"
	"voyage/internal/types"
)

// OpenAIProvider implements LLMProvider on the chat completions API in JSON mode.
type OpenAIProvider struct {
	client       openai.Client
	chatModel    string
	planModel    string
	historyLimit int
}

func NewOpenAIProvider(apiKey string, opts Options) (*OpenAIProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("openai: missing api key")
	}
	limit := opts.HistoryLimit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	chatName := firstNonEmpty(opts.ChatModel, DefaultOpenAIModel)
	return &OpenAIProvider{
		client:       openai.NewClient(oaioption.WithAPIKey(apiKey)),
		chatModel:    chatName,
		planModel:    firstNonEmpty(opts.PlanModel, chatName),
		historyLimit: limit,
	}, nil
}

func (p *OpenAIProvider) Close() error { return nil }

func (p *OpenAIProvider) Converse(ctx context.Context, history []types.Message) (*TurnResult, error) {
	text, err := p.complete(ctx, p.chatModel, conversationPrompt, history, "Continue.", chatTemperature, chatMaxOutputTokens)
	if err != nil {
		return nil, err
	}
	return ParseTurn(text)
}

func (p *OpenAIProvider) PlanItinerary(ctx context.Context, history []types.Message) (*itinerary.Itinerary, error) {
	text, err := p.complete(ctx, p.planModel, planPrompt, history, GenerateTrigger, planTemperature, planMaxOutputTokens)
	if err != nil {
		return nil, err
	}
	return ParseItinerary(text)
}

func (p *OpenAIProvider) complete(ctx context.Context, model, system string, history []types.Message, fallback string, temperature float64, maxTokens int64) (string, error) {
	window := trimHistory(history, p.historyLimit)
	prior, last := splitLast(window, fallback)

	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(prior)+2)
	msgs = append(msgs, openai.SystemMessage(system))
	for _, m := range prior {
		if m.Role == types.RoleAssistant {
			msgs = append(msgs, openai.AssistantMessage(m.Content))
		} else {
			msgs = append(msgs, openai.UserMessage(m.Content))
		}
	}
	msgs = append(msgs, openai.UserMessage(last))

	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               shared.ChatModel(model),
		Messages:            msgs,
		Temperature:         openai.Float(temperature),
		MaxCompletionTokens: openai.Int(maxTokens),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return completion.Choices[0].Message.Content, nil
}
