// README: Input widget catalogue keyed by dialogue tag (pickers, counters, generate action).
package dialogue

import (
	"fmt"

	"voyage/internal/modules/itinerary"
	"voyage/internal/types"
)

type WidgetKind string

const (
	WidgetSuggestions WidgetKind = "suggestions"
	WidgetOptions     WidgetKind = "options"
	WidgetCounter     WidgetKind = "counter"
	WidgetAction      WidgetKind = "action"
)

// Option is one selectable entry. Value is the exact text sent as the user
// message when the option is picked.
type Option struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Value       string `json:"value"`
}

// Widget describes the input control a client renders beneath an assistant
// message. Counter widgets produce DurationValue(n) for n in [Min, Max].
type Widget struct {
	UI      types.UITag `json:"ui"`
	Kind    WidgetKind  `json:"kind"`
	Title   string      `json:"title,omitempty"`
	Options []Option    `json:"options,omitempty"`
	Min     int         `json:"min,omitempty"`
	Max     int         `json:"max,omitempty"`
}

const (
	minTripDays = 1
	maxTripDays = itinerary.MaxTripDays
)

var starterSuggestions = []string{
	"Create New Trip",
	"Inspire me where to go",
	"Discover Hidden Gems",
}

var budgetOptions = []Option{
	pick("Cheap", "Stay conscious of costs"),
	pick("Moderate", "Keep cost on the average side"),
	pick("Luxury", "Don't worry about cost"),
}

var groupSizeOptions = []Option{
	pick("Just Me", "1 person"),
	pick("A Couple", "2 people"),
	pick("Family", "3 to 5 people"),
	pick("Friends", "5 to 10 people"),
}

func pick(title, desc string) Option {
	return Option{Title: title, Description: desc, Value: title + ":" + desc}
}

// DurationValue is the message text produced by the duration counter.
func DurationValue(days int) string {
	return fmt.Sprintf("%d days", days)
}

// WidgetFor returns the widget to show for a dialogue tag. Free-text slots
// and the error state have none. The final action carries the request text
// built from prefs.
func WidgetFor(tag types.UITag, prefs Preferences) (*Widget, bool) {
	switch tag {
	case types.UINone:
		opts := make([]Option, 0, len(starterSuggestions))
		for _, s := range starterSuggestions {
			opts = append(opts, Option{Title: s, Value: s})
		}
		return &Widget{UI: tag, Kind: WidgetSuggestions, Title: "Start planning a new trip", Options: opts}, true
	case types.UIBudget:
		return &Widget{UI: tag, Kind: WidgetOptions, Title: "Select your budget", Options: budgetOptions}, true
	case types.UIGroupSize:
		return &Widget{UI: tag, Kind: WidgetOptions, Title: "Who is travelling?", Options: groupSizeOptions}, true
	case types.UIDuration:
		return &Widget{UI: tag, Kind: WidgetCounter, Title: "How many days?", Min: minTripDays, Max: maxTripDays}, true
	case types.UIFinal:
		return &Widget{
			UI:      tag,
			Kind:    WidgetAction,
			Title:   prefs.Summary(),
			Options: []Option{{Title: "Generate My Trip Plan", Value: prefs.RequestText()}},
		}, true
	}
	return nil, false
}
