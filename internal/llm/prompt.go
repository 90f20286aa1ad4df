package llm

import (
	"fmt"
	"strings"
)

const summarizeSystem = `You are an expert academic paper reader. Give a concise structured summary in markdown.
Include: 1) Main Objective 2) Methodology 3) Key Findings 4) Significance.
Use bullet points. Be brief.`

const extractSystem = `Extract key points in markdown. Sections:
## Main Contributions
## Methodology
## Key Results
## Limitations
Use bullet points. Be concise.`

const translateSystem = `You are an academic translator. Translate to %s.
Rules:
- Translate section by section, keeping ## headings
- Start outputting immediately, do NOT wait
- Keep technical terms with original in parentheses
- Be accurate but natural
- Output markdown format`

const chatSystem = `Answer questions about this paper concisely. Use markdown. Cite specific parts when relevant.

Paper:
%s`

// LangMap names the translation targets the API accepts. Unknown codes fall
// back to Chinese, the primary audience.
var LangMap = map[string]string{
	"zh": "Chinese (简体中文)",
	"en": "English",
}

// TargetLanguage resolves a language code to its prompt-facing name.
func TargetLanguage(code string) string {
	if name, ok := LangMap[code]; ok {
		return name
	}
	return LangMap["zh"]
}

// ChatMessage is one turn of an ongoing conversation about a paper.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// maxChatHistory caps how many prior turns are replayed into the prompt.
const maxChatHistory = 10

func buildPrompt(system, user string) string {
	return system + "\n\n---\n\n" + user
}

// SummarizePrompt builds the single-string prompt for a paper summary.
func SummarizePrompt(context string) string {
	return buildPrompt(summarizeSystem, "Summarize this paper:\n\n"+context)
}

// ExtractPrompt builds the prompt for key-point extraction.
func ExtractPrompt(context string) string {
	return buildPrompt(extractSystem, "Extract key points:\n\n"+context)
}

// TranslatePrompt builds the prompt for whole-paper translation into the
// language named by code.
func TranslatePrompt(context, code string) string {
	target := TargetLanguage(code)
	return buildPrompt(
		fmt.Sprintf(translateSystem, target),
		fmt.Sprintf("Translate each section to %s. Start immediately:\n\n%s", target, context),
	)
}

// ChatPrompt builds a conversation prompt: the paper context, the most recent
// history turns, the new question, and a trailing cue for the reply.
func ChatPrompt(context, question string, history []ChatMessage) string {
	parts := []string{fmt.Sprintf(chatSystem, context)}
	if len(history) > maxChatHistory {
		history = history[len(history)-maxChatHistory:]
	}
	for _, msg := range history {
		role := "Assistant"
		if msg.Role == "user" {
			role = "User"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", role, msg.Content))
	}
	parts = append(parts, "User: "+question, "Assistant:")
	return strings.Join(parts, "\n\n")
}
