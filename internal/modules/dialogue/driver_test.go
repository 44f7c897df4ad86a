// README: Driver tests (fallbacks, final-mode failures, single in-flight turn).
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyage/internal/ai"
	"voyage/internal/modules/itinerary"
	"voyage/internal/types"
)

type fakeGenerator struct {
	converse func(ctx context.Context, history []types.Message) (*ai.TurnResult, error)
	plan     func(ctx context.Context, history []types.Message) (*itinerary.Itinerary, error)

	lastHistory []types.Message
}

func (f *fakeGenerator) Converse(ctx context.Context, history []types.Message) (*ai.TurnResult, error) {
	f.lastHistory = history
	return f.converse(ctx, history)
}

func (f *fakeGenerator) PlanItinerary(ctx context.Context, history []types.Message) (*itinerary.Itinerary, error) {
	f.lastHistory = history
	return f.plan(ctx, history)
}

type countingEnricher struct{ calls int }

func (e *countingEnricher) Enrich(_ context.Context, it *itinerary.Itinerary) *itinerary.Itinerary {
	e.calls++
	return it
}

func reply(resp, ui string) func(context.Context, []types.Message) (*ai.TurnResult, error) {
	return func(context.Context, []types.Message) (*ai.TurnResult, error) {
		return &ai.TurnResult{Resp: resp, UI: ui}, nil
	}
}

func finalHistory() []types.Message {
	return []types.Message{
		types.UserMessage("Plan a trip"),
		types.AssistantMessage("Where to?", types.UIDestination),
		types.UserMessage("Oslo"),
		types.AssistantMessage("All set!", types.UIFinal),
	}
}

func TestDriver_ConversationalTurn(t *testing.T) {
	gen := &fakeGenerator{converse: reply("Where are you flying from?", "location")}
	d := NewDriver(gen, nil, Config{}, nil)

	out, err := d.Send(context.Background(), "Plan a trip")
	require.NoError(t, err)
	assert.False(t, out.Final)
	assert.Equal(t, FailureNone, out.Failure)
	assert.Equal(t, types.UILocation, out.Message.UI)

	msgs := d.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, types.UserMessage("Plan a trip"), msgs[0])
	assert.Equal(t, types.AssistantMessage("Where are you flying from?", types.UILocation), msgs[1])
	assert.Len(t, gen.lastHistory, 1, "provider sees the log including the new user message")
}

func TestDriver_UnknownTagBecomesError(t *testing.T) {
	d := NewDriver(&fakeGenerator{converse: reply("Pick a date", "calendar")}, nil, Config{}, nil)

	out, err := d.Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, types.UIError, out.Message.UI)
	assert.Equal(t, "Pick a date", out.Message.Content)
}

func TestDriver_RejectsEmptyInput(t *testing.T) {
	d := NewDriver(&fakeGenerator{converse: reply("x", "location")}, nil, Config{}, nil)

	_, err := d.Send(context.Background(), "  \n\t ")
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Empty(t, d.Messages())
}

func TestDriver_ConversationalFallbacks(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		failure Failure
		text    string
	}{
		{"malformed", fmt.Errorf("%w: bad json", ai.ErrMalformedResponse), FailureMalformed, MalformedReply},
		{"empty", ai.ErrEmptyResponse, FailureMalformed, MalformedReply},
		{"transport", errors.New("connection reset"), FailureTransport, TransportReply},
		{"timeout", context.DeadlineExceeded, FailureTimeout, TimeoutReply},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{converse: func(context.Context, []types.Message) (*ai.TurnResult, error) {
				return nil, tt.err
			}}
			d := NewDriver(gen, nil, Config{}, nil)

			out, err := d.Send(context.Background(), "Tokyo")
			require.NoError(t, err, "conversational failures are not surfaced as errors")
			assert.Equal(t, tt.failure, out.Failure)
			assert.Equal(t, types.AssistantMessage(tt.text, types.UIError), out.Message)

			msgs := d.Messages()
			require.Len(t, msgs, 2)
			assert.Equal(t, out.Message, msgs[1])
		})
	}
}

func TestDriver_ChatTimeoutIsApplied(t *testing.T) {
	gen := &fakeGenerator{converse: func(ctx context.Context, _ []types.Message) (*ai.TurnResult, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	d := NewDriver(gen, nil, Config{ChatTimeout: 10 * time.Millisecond}, nil)

	out, err := d.Send(context.Background(), "Tokyo")
	require.NoError(t, err)
	assert.Equal(t, FailureTimeout, out.Failure)
	assert.Equal(t, TimeoutReply, out.Message.Content)
}

func TestDriver_FinalModeSuccess(t *testing.T) {
	gen := &fakeGenerator{plan: func(context.Context, []types.Message) (*itinerary.Itinerary, error) {
		return &itinerary.Itinerary{
			TripPlan: itinerary.TripPlan{Destination: "Oslo", TotalDays: 3},
			Days:     []itinerary.Day{{Day: 2}},
		}, nil
	}}
	enricher := &countingEnricher{}
	d := NewDriver(gen, enricher, Config{}, finalHistory())
	require.True(t, d.IsFinal())

	out, err := d.Send(context.Background(), GenerateTrigger)
	require.NoError(t, err)
	assert.True(t, out.Final)
	require.NotNil(t, out.Itinerary)
	assert.Len(t, out.Itinerary.Days, 3, "output is validated")
	assert.Equal(t, 1, enricher.calls)
	assert.Equal(t, "Oslo", out.Preferences.Destination)
	assert.Equal(t, GenerateTrigger, gen.lastHistory[len(gen.lastHistory)-1].Content)
}

func TestDriver_FinalModeMalformedIsSurfaced(t *testing.T) {
	gen := &fakeGenerator{plan: func(context.Context, []types.Message) (*itinerary.Itinerary, error) {
		return nil, fmt.Errorf("%w: unexpected end of JSON input", ai.ErrMalformedResponse)
	}}
	d := NewDriver(gen, nil, Config{}, finalHistory())

	out, err := d.Send(context.Background(), GenerateTrigger)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrItineraryFailed)
	assert.ErrorIs(t, err, ai.ErrMalformedResponse)

	msgs := d.Messages()
	assert.Equal(t, finalHistory(), msgs, "log still ends on the final assistant message")
	assert.True(t, d.IsFinal(), "a retry takes the final path again")
}

func TestDriver_FinalModeTimeout(t *testing.T) {
	gen := &fakeGenerator{plan: func(ctx context.Context, _ []types.Message) (*itinerary.Itinerary, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	d := NewDriver(gen, nil, Config{PlanTimeout: 10 * time.Millisecond}, finalHistory())

	_, err := d.Send(context.Background(), GenerateTrigger)
	assert.ErrorIs(t, err, ErrGenerationTimeout)
	assert.NotErrorIs(t, err, ErrItineraryFailed)
	assert.Len(t, d.Messages(), len(finalHistory()))
}

func TestDriver_RejectsConcurrentSend(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	gen := &fakeGenerator{converse: func(context.Context, []types.Message) (*ai.TurnResult, error) {
		close(started)
		<-release
		return &ai.TurnResult{Resp: "Where to?", UI: "destination"}, nil
	}}
	d := NewDriver(gen, nil, Config{}, nil)

	done := make(chan error, 1)
	go func() {
		_, err := d.Send(context.Background(), "first")
		done <- err
	}()
	<-started

	assert.True(t, d.inFlight())
	_, err := d.Send(context.Background(), "second")
	assert.ErrorIs(t, err, ErrTurnInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, d.inFlight())

	msgs := d.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Content)
}

type blockingEnricher struct {
	sawDeadline bool
}

func (e *blockingEnricher) Enrich(ctx context.Context, it *itinerary.Itinerary) *itinerary.Itinerary {
	_, e.sawDeadline = ctx.Deadline()
	<-ctx.Done()
	return it
}

func TestDriver_EnrichmentIsBounded(t *testing.T) {
	gen := &fakeGenerator{plan: func(context.Context, []types.Message) (*itinerary.Itinerary, error) {
		return &itinerary.Itinerary{TripPlan: itinerary.TripPlan{TotalDays: 1}}, nil
	}}
	enricher := &blockingEnricher{}
	d := NewDriver(gen, enricher, Config{EnrichTimeout: 30 * time.Millisecond}, finalHistory())

	start := time.Now()
	out, err := d.Send(context.Background(), GenerateTrigger)
	require.NoError(t, err)
	assert.True(t, out.Final)
	assert.True(t, enricher.sawDeadline)
	assert.Less(t, time.Since(start), 2*time.Second)
}
