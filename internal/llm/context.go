package llm

import (
	"fmt"
	"strings"

	"github.com/csheth/paperreader/internal/paper"
)

// charsPerToken is the rough budget conversion used everywhere a token limit
// is applied to plain text.
const charsPerToken = 4

// Token budgets per operation. Translation gets the smallest window because
// its output is roughly as long as its input.
const (
	DefaultContextTokens   = 24000
	TranslateContextTokens = 16000
	ChatContextTokens      = 20000
)

// ChunkText splits text into chunks of at most maxTokens*4 characters,
// breaking only on paragraph boundaries. A single paragraph larger than the
// budget is kept intact as one oversized chunk rather than split mid-thought.
// Always returns at least one chunk.
func ChunkText(text string, maxTokens int) []string {
	maxChars := maxTokens * charsPerToken
	if len(text) <= maxChars {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	for _, para := range strings.Split(text, "\n\n") {
		if current.Len()+len(para) > maxChars && current.Len() > 0 {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
		current.WriteString(para)
		current.WriteString("\n\n")
	}
	if tail := strings.TrimSpace(current.String()); tail != "" {
		chunks = append(chunks, tail)
	}
	if len(chunks) == 0 {
		chunks = []string{""}
	}
	return chunks
}

// PaperContext renders a paper as a prompt-ready string under a token budget:
// an abstract preamble, then each section as a markdown heading plus body.
// Only the first chunk is returned; documents longer than the budget lose
// trailing content, which keeps prompt cost predictable.
func PaperContext(p *paper.Paper, maxTokens int) string {
	var b strings.Builder
	if p.Abstract != "" {
		fmt.Fprintf(&b, "Abstract: %s\n\n", p.Abstract)
	}
	for _, s := range p.Sections {
		fmt.Fprintf(&b, "## %s\n%s\n\n", s.Heading, s.Content)
	}

	// ChunkText returns at least one chunk for any input, including empty.
	return ChunkText(b.String(), maxTokens)[0]
}
