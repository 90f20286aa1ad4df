// Package translate provides literal machine translation of paper sections,
// independent of the generative-text path. It is the cheap, instant
// alternative: no key, no token budget, section-by-section streaming.
package translate

import (
	"context"
	"strings"
)

// maxChunk stays under the translation backend's per-request size limit
// (5000 characters for Google Translate) with margin for encoding overhead.
const maxChunk = 4500

// Translator converts text between languages. source may be "auto".
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Text translates text with tr, splitting inputs over the backend limit into
// line-boundary chunks, translating each independently, and rejoining with
// newlines. Whitespace-only input is returned unchanged without a call.
func Text(ctx context.Context, tr Translator, text, target string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	if len(text) <= maxChunk {
		return tr.Translate(ctx, text, "auto", target)
	}

	var chunks []string
	var current strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if current.Len()+len(line) > maxChunk && current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		current.WriteString(line)
		current.WriteString("\n")
	}
	if strings.TrimSpace(current.String()) != "" {
		chunks = append(chunks, current.String())
	}

	translated := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		out, err := tr.Translate(ctx, chunk, "auto", target)
		if err != nil {
			return "", err
		}
		translated = append(translated, out)
	}
	return strings.Join(translated, "\n"), nil
}
