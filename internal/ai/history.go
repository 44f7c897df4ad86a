package ai

import (
	"strings"

	"voyage/internal/types"
)

// trimHistory keeps the most recent limit messages and drops leading
// assistant messages so the window always opens on a user turn.
func trimHistory(history []types.Message, limit int) []types.Message {
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}
	for len(history) > 0 && history[0].Role != types.RoleUser {
		history = history[1:]
	}
	return history
}

// mergeRoles collapses consecutive messages from the same role so turns
// strictly alternate, as Gemini requires for multi-turn requests.
func mergeRoles(history []types.Message) []types.Message {
	out := make([]types.Message, 0, len(history))
	for _, m := range history {
		if n := len(out); n > 0 && out[n-1].Role == m.Role {
			out[n-1].Content = strings.TrimSpace(out[n-1].Content + "\n\n" + m.Content)
			continue
		}
		out = append(out, m)
	}
	return out
}

// splitLast separates the prior turns from the message to send. If the
// window does not end on a user turn, fallback is sent instead.
func splitLast(history []types.Message, fallback string) ([]types.Message, string) {
	if n := len(history); n > 0 && history[n-1].Role == types.RoleUser {
		return history[:n-1], history[n-1].Content
	}
	return history, fallback
}
