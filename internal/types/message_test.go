package types

import (
	"encoding/json"
	"testing"
)

func TestParseUITag(t *testing.T) {
	cases := map[string]UITag{
		"location":    UILocation,
		" Budget ":    UIBudget,
		"groupSize":   UIGroupSize,
		"GROUPSIZE":   UIGroupSize,
		"final":       UIFinal,
		"error":       UIError,
		"":            UIError,
		"calendar":    UIError,
		"destination": UIDestination,
	}
	for raw, want := range cases {
		if got := ParseUITag(raw); got != want {
			t.Errorf("ParseUITag(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestUITag_IsSlot(t *testing.T) {
	if !UIInterests.IsSlot() || !UILocation.IsSlot() {
		t.Error("expected slot tags")
	}
	if UIFinal.IsSlot() || UIError.IsSlot() || UINone.IsSlot() {
		t.Error("terminal tags are not slots")
	}
}

func TestMessageJSON(t *testing.T) {
	b, err := json.Marshal(UserMessage("hi"))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"role":"user","content":"hi"}` {
		t.Errorf("unexpected encoding %s", b)
	}
}

func TestLastAssistant(t *testing.T) {
	if _, ok := LastAssistant([]Message{UserMessage("a")}); ok {
		t.Error("expected no assistant message")
	}
	msgs := []Message{
		AssistantMessage("one", UILocation),
		UserMessage("Paris"),
		AssistantMessage("two", UIFinal),
		UserMessage("go"),
	}
	last, ok := LastAssistant(msgs)
	if !ok || last.UI != UIFinal {
		t.Errorf("got %+v", last)
	}
}
