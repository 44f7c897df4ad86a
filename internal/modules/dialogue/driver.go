// README: Dialogue driver; runs one turn at a time and switches to itinerary generation after final.
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"voyage/internal/ai"
	"voyage/internal/modules/itinerary"
	"voyage/internal/types"
)

// GenerateTrigger is the canonical user text that requests the itinerary.
const GenerateTrigger = ai.GenerateTrigger

const (
	DefaultChatTimeout   = 30 * time.Second
	DefaultPlanTimeout   = 120 * time.Second
	DefaultEnrichTimeout = 20 * time.Second
)

// Fallback texts appended when a conversational turn cannot be completed.
const (
	MalformedReply = "I apologize for the technical issue. Could you please repeat your message?"
	TransportReply = "Sorry, I encountered an error. Please try again."
	TimeoutReply   = "That took longer than expected. Please try again."
)

// Generator is the part of an LLM provider the driver needs.
type Generator interface {
	Converse(ctx context.Context, history []types.Message) (*ai.TurnResult, error)
	PlanItinerary(ctx context.Context, history []types.Message) (*itinerary.Itinerary, error)
}

// ItineraryEnricher attaches images to a validated itinerary.
type ItineraryEnricher interface {
	Enrich(ctx context.Context, it *itinerary.Itinerary) *itinerary.Itinerary
}

// Failure classifies a conversational turn that ended on a fallback message.
type Failure string

const (
	FailureNone      Failure = ""
	FailureMalformed Failure = "malformed"
	FailureTransport Failure = "transport"
	FailureTimeout   Failure = "timeout"
)

type Config struct {
	ChatTimeout time.Duration
	PlanTimeout time.Duration
	// EnrichTimeout bounds image lookups; entities still pending when it
	// expires get the default image.
	EnrichTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.ChatTimeout <= 0 {
		c.ChatTimeout = DefaultChatTimeout
	}
	if c.PlanTimeout <= 0 {
		c.PlanTimeout = DefaultPlanTimeout
	}
	if c.EnrichTimeout <= 0 {
		c.EnrichTimeout = DefaultEnrichTimeout
	}
	return c
}

// Outcome is the result of one accepted Send.
type Outcome struct {
	// Final is set when the turn ran itinerary generation.
	Final bool

	// Message is the assistant message appended by a conversational turn.
	Message types.Message
	Failure Failure

	Itinerary   *itinerary.Itinerary
	Preferences Preferences
}

// Driver owns one session's message log. At most one turn runs at a time;
// a Send issued while another is outstanding is rejected, not queued.
type Driver struct {
	gen      Generator
	enricher ItineraryEnricher
	cfg      Config

	mu       sync.Mutex
	busy     bool
	messages []types.Message
}

// NewDriver resumes a dialogue from history. enricher may be nil, in which
// case generated itineraries are only validated.
func NewDriver(gen Generator, enricher ItineraryEnricher, cfg Config, history []types.Message) *Driver {
	return &Driver{
		gen:      gen,
		enricher: enricher,
		cfg:      cfg.withDefaults(),
		messages: append([]types.Message(nil), history...),
	}
}

// Messages returns a copy of the log.
func (d *Driver) Messages() []types.Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]types.Message(nil), d.messages...)
}

// IsFinal reports whether the next Send will request the itinerary.
func (d *Driver) IsFinal() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return isFinal(d.messages)
}

func (d *Driver) inFlight() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.busy
}

func isFinal(messages []types.Message) bool {
	last, ok := types.LastAssistant(messages)
	return ok && last.UI == types.UIFinal
}

// Send appends text as a user message and runs the matching turn.
//
// Conversational turns never return an error: provider failures become an
// assistant fallback message tagged error, and Outcome.Failure says why.
// A final-mode failure returns ErrItineraryFailed or ErrGenerationTimeout and
// removes the user message again, so the log still ends on the final
// assistant message and the next Send retries generation.
func (d *Driver) Send(ctx context.Context, text string) (*Outcome, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	d.mu.Lock()
	if d.busy {
		d.mu.Unlock()
		return nil, ErrTurnInFlight
	}
	d.busy = true
	final := isFinal(d.messages)
	d.messages = append(d.messages, types.UserMessage(text))
	history := append([]types.Message(nil), d.messages...)
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.busy = false
		d.mu.Unlock()
	}()

	if final {
		return d.generate(ctx, history)
	}
	return d.converse(ctx, history), nil
}

func (d *Driver) converse(ctx context.Context, history []types.Message) *Outcome {
	callCtx, cancel := context.WithTimeout(ctx, d.cfg.ChatTimeout)
	defer cancel()

	var reply types.Message
	failure := FailureNone

	result, err := d.gen.Converse(callCtx, history)
	if err != nil {
		failure = classify(callCtx, err)
		log.Printf("dialogue: turn failed (%s): %v", failure, err)
		reply = types.AssistantMessage(fallbackText(failure), types.UIError)
	} else {
		reply = types.AssistantMessage(result.Resp, result.Tag())
	}

	d.mu.Lock()
	d.messages = append(d.messages, reply)
	d.mu.Unlock()

	return &Outcome{Message: reply, Failure: failure}
}

func (d *Driver) generate(ctx context.Context, history []types.Message) (*Outcome, error) {
	callCtx, cancel := context.WithTimeout(ctx, d.cfg.PlanTimeout)
	defer cancel()

	it, err := d.gen.PlanItinerary(callCtx, history)
	if err == nil && it == nil {
		err = ai.ErrEmptyResponse
	}
	if err != nil {
		d.mu.Lock()
		d.messages = d.messages[:len(d.messages)-1]
		d.mu.Unlock()

		if classify(callCtx, err) == FailureTimeout {
			return nil, fmt.Errorf("%w: %v", ErrGenerationTimeout, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrItineraryFailed, err)
	}

	it = EnrichWithin(ctx, d.enricher, itinerary.Validate(it), d.cfg.EnrichTimeout)

	return &Outcome{
		Final:       true,
		Itinerary:   it,
		Preferences: Extract(history),
	}, nil
}

// EnrichWithin runs enricher on it with its own deadline. A nil enricher
// returns it unchanged.
func EnrichWithin(ctx context.Context, enricher ItineraryEnricher, it *itinerary.Itinerary, timeout time.Duration) *itinerary.Itinerary {
	if enricher == nil {
		return it
	}
	if timeout <= 0 {
		timeout = DefaultEnrichTimeout
	}
	enrichCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return enricher.Enrich(enrichCtx, it)
}

func classify(callCtx context.Context, err error) Failure {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded):
		return FailureTimeout
	case errors.Is(err, ai.ErrEmptyResponse) || errors.Is(err, ai.ErrMalformedResponse):
		return FailureMalformed
	default:
		return FailureTransport
	}
}

func fallbackText(f Failure) string {
	switch f {
	case FailureMalformed:
		return MalformedReply
	case FailureTimeout:
		return TimeoutReply
	default:
		return TransportReply
	}
}
