package llm

import (
	"strings"
	"testing"

	"github.com/csheth/paperreader/internal/paper"
)

func TestChunkText(t *testing.T) {
	t.Parallel()

	t.Run("under budget returns one chunk", func(t *testing.T) {
		t.Parallel()
		chunks := ChunkText("short text", 100)
		if len(chunks) != 1 || chunks[0] != "short text" {
			t.Errorf("chunks = %q", chunks)
		}
	})

	t.Run("splits on paragraph boundaries", func(t *testing.T) {
		t.Parallel()
		para := strings.Repeat("a", 30)
		text := strings.Join([]string{para, para, para, para}, "\n\n")
		// Budget of 20 tokens = 80 chars: two paragraphs per chunk.
		chunks := ChunkText(text, 20)
		if len(chunks) != 2 {
			t.Fatalf("got %d chunks, want 2: %q", len(chunks), chunks)
		}
		for i, c := range chunks {
			if len(c) > 80 {
				t.Errorf("chunk %d is %d chars, over budget", i, len(c))
			}
		}
	})

	t.Run("oversized paragraph kept intact", func(t *testing.T) {
		t.Parallel()
		big := strings.Repeat("b", 500)
		chunks := ChunkText("intro\n\n"+big+"\n\ncoda", 20)
		found := false
		for _, c := range chunks {
			if strings.Contains(c, big) {
				found = true
			}
		}
		if !found {
			t.Error("oversized paragraph was split")
		}
	})
}

func TestPaperContext(t *testing.T) {
	t.Parallel()

	p := &paper.Paper{
		Abstract: "A short abstract.",
		Sections: []paper.Section{
			{Heading: "Introduction", Content: "Intro body."},
			{Heading: "Methods", Content: "Methods body."},
		},
	}

	got := PaperContext(p, DefaultContextTokens)
	if !strings.HasPrefix(got, "Abstract: A short abstract.") {
		t.Errorf("context missing abstract preamble: %q", got)
	}
	if !strings.Contains(got, "## Introduction\nIntro body.") {
		t.Errorf("context missing section rendering: %q", got)
	}

	// A paper with no abstract and no sections renders as empty context.
	if got := PaperContext(&paper.Paper{}, DefaultContextTokens); got != "" {
		t.Errorf("empty paper context = %q, want empty", got)
	}

	// A tight budget truncates from the tail, keeping the head.
	tight := PaperContext(p, 10)
	if !strings.Contains(tight, "Abstract") {
		t.Errorf("head-truncated context lost its head: %q", tight)
	}
	if strings.Contains(tight, "Methods body.") {
		t.Errorf("tight budget kept trailing content: %q", tight)
	}
}
