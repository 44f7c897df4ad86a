package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyage/internal/types"
)

func TestWidgetFor(t *testing.T) {
	w, ok := WidgetFor(types.UIBudget, Preferences{})
	require.True(t, ok)
	assert.Equal(t, WidgetOptions, w.Kind)
	require.Len(t, w.Options, 3)
	assert.Equal(t, "Cheap:Stay conscious of costs", w.Options[0].Value)

	w, ok = WidgetFor(types.UIGroupSize, Preferences{})
	require.True(t, ok)
	assert.Equal(t, "Just Me", w.Options[0].Title)

	w, ok = WidgetFor(types.UIDuration, Preferences{})
	require.True(t, ok)
	assert.Equal(t, WidgetCounter, w.Kind)
	assert.Equal(t, "3 days", DurationValue(3))

	w, ok = WidgetFor(types.UIFinal, Preferences{Destination: "Oslo"})
	require.True(t, ok)
	assert.Equal(t, WidgetAction, w.Kind)
	assert.Equal(t, "Generate my complete Oslo trip itinerary", w.Options[0].Value)

	for _, tag := range []types.UITag{types.UILocation, types.UIDestination, types.UIInterests, types.UIError} {
		_, ok := WidgetFor(tag, Preferences{})
		assert.False(t, ok, "tag %q", tag)
	}
}
