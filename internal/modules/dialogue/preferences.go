// README: Preference extraction from the message log, plus the summary and request texts built from it.
package dialogue

import (
	"strings"

	"voyage/internal/types"
)

// Preferences is the flat set of trip attributes collected during the
// dialogue. It is derived from the message log and never edited directly;
// slots that were never answered stay empty.
type Preferences struct {
	StartingLocation string `json:"startingLocation,omitempty" yaml:"startingLocation,omitempty"`
	Destination      string `json:"destination,omitempty" yaml:"destination,omitempty"`
	GroupSize        string `json:"groupSize,omitempty" yaml:"groupSize,omitempty"`
	Budget           string `json:"budget,omitempty" yaml:"budget,omitempty"`
	Duration         string `json:"duration,omitempty" yaml:"duration,omitempty"`
	Interests        string `json:"interests,omitempty" yaml:"interests,omitempty"`
}

// Extract pairs every user message with the assistant message right before
// it and records the reply under the slot that assistant asked for. A slot
// answered more than once keeps the latest answer.
func Extract(messages []types.Message) Preferences {
	var p Preferences
	for i := 1; i < len(messages); i++ {
		msg, prev := messages[i], messages[i-1]
		if msg.Role != types.RoleUser || prev.Role != types.RoleAssistant {
			continue
		}
		if dst := p.slot(prev.UI); dst != nil {
			*dst = msg.Content
		}
	}
	return p
}

func (p *Preferences) slot(tag types.UITag) *string {
	switch tag {
	case types.UILocation:
		return &p.StartingLocation
	case types.UIDestination:
		return &p.Destination
	case types.UIGroupSize:
		return &p.GroupSize
	case types.UIBudget:
		return &p.Budget
	case types.UIDuration:
		return &p.Duration
	case types.UIInterests:
		return &p.Interests
	}
	return nil
}

// IsZero reports whether no slot has been answered yet.
func (p Preferences) IsZero() bool {
	return p == Preferences{}
}

// Summary is the confirmation line shown when the dialogue reaches final.
func (p Preferences) Summary() string {
	var b strings.Builder
	b.WriteString("Thanks for the details! ")
	if hasInterests(p.Interests) {
		b.WriteString("I'll prepare an amazing itinerary focused on " + p.Interests + " for your ")
	} else {
		b.WriteString("If you have no specific preferences for travel interests, I'll prepare a well-rounded itinerary for your ")
	}
	if p.Duration != "" {
		b.WriteString(p.Duration + " ")
	}
	if budget := optionTitle(p.Budget); budget != "" {
		b.WriteString(strings.ToLower(budget) + "-budget ")
	}
	if p.Destination != "" {
		b.WriteString("trip to " + p.Destination + " ")
	}
	if group := optionTitle(p.GroupSize); group != "" {
		b.WriteString("for " + strings.ToLower(group) + " ")
	}
	b.WriteString("travel.")
	return b.String()
}

// RequestText is the user message sent by the generate action. Without any
// collected preference it is the plain trigger.
func (p Preferences) RequestText() string {
	if p.IsZero() {
		return GenerateTrigger
	}
	parts := []string{"Generate my complete"}
	if p.Duration != "" {
		parts = append(parts, p.Duration)
	}
	if p.Destination != "" {
		parts = append(parts, p.Destination)
	}
	parts = append(parts, "trip itinerary")
	if group := optionTitle(p.GroupSize); group != "" && !strings.EqualFold(group, "just me") {
		parts = append(parts, "for "+strings.ToLower(group))
	}
	if budget := optionTitle(p.Budget); budget != "" {
		parts = append(parts, "with "+strings.ToLower(budget)+" budget")
	}
	if p.StartingLocation != "" {
		parts = append(parts, "starting from "+p.StartingLocation)
	}
	if hasInterests(p.Interests) {
		parts = append(parts, "focusing on "+p.Interests)
	}
	return strings.Join(parts, " ")
}

func hasInterests(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v != "" && v != "no" && v != "none"
}

// optionTitle strips the "Title:detail" suffix that picker widgets send.
func optionTitle(v string) string {
	title, _, _ := strings.Cut(v, ":")
	return strings.TrimSpace(title)
}
