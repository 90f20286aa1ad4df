package llm

import (
	"strings"
	"testing"
)

func TestScrubberRemovesEscapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "hello world", "hello world"},
		{"color codes", "\x1b[31mred\x1b[0m text", "red text"},
		{"colon form sgr", "\x1b[38:5:196mred text after colon SGR", "red text after colon SGR"},
		{"private mode params", "\x1b[?25lhidden cursor\x1b[?25h", "hidden cursor"},
		{"cursor movement", "\x1b[2J\x1b[1;1Habc", "abc"},
		{"title sequence bel", "\x1b]0;my title\x07abc", "abc"},
		{"title sequence st", "\x1b]2;t\x1b\\abc", "abc"},
		{"carriage returns", "line\r\nnext\r", "line\nnext"},
		{"two byte escape", "\x1bMabc", "abc"},
		{"mixed", "\x1b[1m\x1b[32mok\x1b[0m\r\n", "ok\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var s Scrubber
			got := s.Scrub(tt.input) + s.Flush()
			if got != tt.want {
				t.Errorf("Scrub(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if strings.ContainsRune(got, '\x1b') {
				t.Errorf("residual escape byte in %q", got)
			}
		})
	}
}

func TestScrubberSplitSequences(t *testing.T) {
	t.Parallel()

	// A color sequence cut across arbitrary read boundaries must never leak
	// partial escape bytes.
	full := "\x1b[38;5;196mhot\x1b[0m stuff"
	for cut := 1; cut < len(full); cut++ {
		var s Scrubber
		got := s.Scrub(full[:cut]) + s.Scrub(full[cut:]) + s.Flush()
		if got != "hot stuff" {
			t.Errorf("cut at %d: got %q, want %q", cut, got, "hot stuff")
		}
	}
}

func TestScrubberNeverStallsOnUnrecognizedSequence(t *testing.T) {
	t.Parallel()

	// A sequence the cleaner cannot terminate must not absorb the rest of
	// the stream into the carry buffer: later chunks still come through.
	var s Scrubber
	first := s.Scrub("\x1b[38:5:196mred text after colon SGR")
	second := s.Scrub(" and everything later")
	got := first + second + s.Flush()
	if want := "red text after colon SGR and everything later"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	// Same guarantee for genuinely malformed input: once the pending bytes
	// exceed any plausible sequence length, text flows again.
	var m Scrubber
	junk := "\x1b[\x01" + strings.Repeat("x", 200)
	out := m.Scrub(junk) + m.Scrub("tail") + m.Flush()
	if !strings.Contains(out, strings.Repeat("x", 200)) {
		t.Errorf("malformed escape withheld following text: %q", out)
	}
	if !strings.Contains(out, "tail") {
		t.Errorf("stream stalled after malformed escape: %q", out)
	}
	if strings.ContainsRune(out, '\x1b') {
		t.Errorf("residual escape byte in %q", out)
	}
}

func TestScrubberDropsUnterminatedEscapeAtEOF(t *testing.T) {
	t.Parallel()

	var s Scrubber
	got := s.Scrub("done\x1b[3")
	got += s.Flush()
	if got != "done" {
		t.Errorf("got %q, want %q", got, "done")
	}
}
