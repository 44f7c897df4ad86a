// README: Conversation primitives shared by the dialogue driver, AI providers and session store.
package types

import "strings"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UITag is the dialogue state label attached to assistant messages. It names the
// slot the assistant is soliciting, or one of the terminal states.
type UITag string

const (
	UINone        UITag = ""
	UILocation    UITag = "location"
	UIDestination UITag = "destination"
	UIGroupSize   UITag = "groupSize"
	UIBudget      UITag = "budget"
	UIDuration    UITag = "duration"
	UIInterests   UITag = "interests"
	UIFinal       UITag = "final"
	UIError       UITag = "error"
)

var knownUITags = map[string]UITag{
	"location":    UILocation,
	"destination": UIDestination,
	"groupsize":   UIGroupSize,
	"budget":      UIBudget,
	"duration":    UIDuration,
	"interests":   UIInterests,
	"final":       UIFinal,
	"error":       UIError,
}

// ParseUITag validates a tag coming back from a model. Anything outside the
// closed set, including the empty string, becomes UIError.
func ParseUITag(raw string) UITag {
	if tag, ok := knownUITags[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return tag
	}
	return UIError
}

// IsSlot reports whether the tag solicits a trip attribute.
func (t UITag) IsSlot() bool {
	switch t {
	case UILocation, UIDestination, UIGroupSize, UIBudget, UIDuration, UIInterests:
		return true
	}
	return false
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	UI      UITag  `json:"ui,omitempty"`
}

func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func AssistantMessage(content string, ui UITag) Message {
	return Message{Role: RoleAssistant, Content: content, UI: ui}
}

// LastAssistant returns the most recent assistant message, if any.
func LastAssistant(messages []Message) (Message, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleAssistant {
			return messages[i], true
		}
	}
	return Message{}, false
}
