package llm

import (
	"strings"
	"testing"
)

func TestSummarizePrompt(t *testing.T) {
	t.Parallel()

	got := SummarizePrompt("paper context here")
	if !strings.Contains(got, "expert academic paper reader") {
		t.Errorf("prompt missing system preamble: %q", got)
	}
	if !strings.Contains(got, "\n\n---\n\n") {
		t.Error("prompt missing system/user separator")
	}
	if !strings.HasSuffix(got, "Summarize this paper:\n\npaper context here") {
		t.Errorf("prompt missing user part: %q", got)
	}
}

func TestTranslatePrompt(t *testing.T) {
	t.Parallel()

	got := TranslatePrompt("ctx", "zh")
	if !strings.Contains(got, "Chinese (简体中文)") {
		t.Errorf("prompt missing target language: %q", got)
	}

	// Unknown codes fall back to Chinese rather than failing.
	if got := TranslatePrompt("ctx", "xx"); !strings.Contains(got, "Chinese") {
		t.Errorf("unknown code did not fall back: %q", got)
	}
}

func TestChatPrompt(t *testing.T) {
	t.Parallel()

	history := []ChatMessage{
		{Role: "user", Content: "first question"},
		{Role: "assistant", Content: "first answer"},
	}
	got := ChatPrompt("the paper text", "second question", history)

	for _, want := range []string{
		"Paper:\nthe paper text",
		"User: first question",
		"Assistant: first answer",
		"User: second question",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q:\n%s", want, got)
		}
	}
	if !strings.HasSuffix(got, "Assistant:") {
		t.Error("prompt missing trailing reply cue")
	}
}

func TestChatPromptCapsHistory(t *testing.T) {
	t.Parallel()

	history := make([]ChatMessage, 0, 15)
	for i := 0; i < 15; i++ {
		history = append(history, ChatMessage{Role: "user", Content: "turn"})
	}
	got := ChatPrompt("ctx", "q", history)
	// 10 history turns + the new question.
	if n := strings.Count(got, "User: "); n != 11 {
		t.Errorf("got %d user turns, want 11", n)
	}
}
