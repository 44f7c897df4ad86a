package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyage/internal/types"
)

func TestParseTurn(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		resp    string
		tag     types.UITag
		wantErr error
	}{
		{
			name:  "plain json",
			input: `{"resp":"Where are you travelling from?","ui":"location"}`,
			resp:  "Where are you travelling from?",
			tag:   types.UILocation,
		},
		{
			name:  "fenced json",
			input: "```json\n{\"resp\":\"How many days?\",\"ui\":\"duration\"}\n```",
			resp:  "How many days?",
			tag:   types.UIDuration,
		},
		{
			name:  "prose around object",
			input: "Sure! {\"resp\":\"Who is coming?\",\"ui\":\"groupSize\"} Hope that helps.",
			resp:  "Who is coming?",
			tag:   types.UIGroupSize,
		},
		{
			name:  "unknown tag maps to error",
			input: `{"resp":"hmm","ui":"calendar"}`,
			resp:  "hmm",
			tag:   types.UIError,
		},
		{name: "empty", input: "   ", wantErr: ErrEmptyResponse},
		{name: "not json", input: "I am a teapot", wantErr: ErrMalformedResponse},
		{name: "missing ui", input: `{"resp":"hello"}`, wantErr: ErrMalformedResponse},
		{name: "missing resp", input: `{"ui":"budget"}`, wantErr: ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTurn(tt.input)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.resp, got.Resp)
			assert.Equal(t, tt.tag, got.Tag())
		})
	}
}

func TestParseItinerary(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		it, err := ParseItinerary("```json\n" + `{
			"trip_plan": {"destination": "Lisbon", "total_days": "3", "hotels": [{"hotel_name": "Casa"}]},
			"itinerary": [{"day": 1, "day_theme": "Alfama"}]
		}` + "\n```")
		require.NoError(t, err)
		assert.Equal(t, "Lisbon", it.TripPlan.Destination)
		assert.Equal(t, 3, int(it.TripPlan.TotalDays))
		require.Len(t, it.Days, 1)
		assert.Equal(t, "Alfama", it.Days[0].Theme)
	})

	t.Run("missing trip_plan", func(t *testing.T) {
		_, err := ParseItinerary(`{"itinerary": []}`)
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("trip_plan not an object", func(t *testing.T) {
		_, err := ParseItinerary(`{"trip_plan": "Lisbon"}`)
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := ParseItinerary(`{"trip_plan": {"destination": "Lis`)
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParseItinerary("")
		assert.ErrorIs(t, err, ErrEmptyResponse)
	})
}
