package llm

import (
	"regexp"
	"strings"
)

var (
	// csiRe matches CSI sequences: ESC [ params intermediates final. The
	// parameter class is the full 0x30-0x3F range, which includes the
	// colon-form SGR separators modern terminal-aware CLIs emit.
	csiRe = regexp.MustCompile(`^\x1b\[[0-9:;<=>?]*[ -/]*[@-~]`)
	// oscRe matches OSC sequences (title setting etc), terminated by BEL or ST.
	oscRe = regexp.MustCompile(`^\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`)
	// escRe matches two-byte escapes.
	escRe = regexp.MustCompile(`^\x1b[@-_]`)
)

// maxPendingEscape bounds how much text a not-yet-terminated sequence may
// hold back. Real control sequences are short; anything pending longer than
// this is garbage whose leading escape byte gets dropped, so a malformed
// sequence can never swallow the rest of the stream.
const maxPendingEscape = 64

// Scrubber removes terminal control sequences from a byte stream that arrives
// in arbitrary splits. A sequence cut across two reads is held back until its
// terminator shows up, so Scrub never emits half an escape.
type Scrubber struct {
	carry string
}

// Scrub cleans chunk and returns the printable text. Carriage returns are
// dropped along with escape sequences; the pty channel inserts them before
// every newline.
func (s *Scrubber) Scrub(chunk string) string {
	text := s.carry + chunk
	s.carry = ""

	var out strings.Builder
	for {
		i := firstPartialEscape(text)
		if i < 0 {
			out.WriteString(clean(text))
			return out.String()
		}
		if len(text)-i > maxPendingEscape {
			// Too long to still be a sequence in flight; drop the escape
			// byte and keep scanning so the text behind it gets through.
			out.WriteString(clean(text[:i]))
			text = text[i+1:]
			continue
		}
		out.WriteString(clean(text[:i]))
		s.carry = text[i:]
		return out.String()
	}
}

// Flush discards any partial sequence still held back. Called at end of
// stream; an unterminated escape at that point is dropped rather than leaked
// as raw bytes.
func (s *Scrubber) Flush() string {
	s.carry = ""
	return ""
}

// clean strips complete escape sequences, stray escape bytes, and carriage
// returns. Callers guarantee text holds no partial sequence.
func clean(text string) string {
	if !strings.ContainsAny(text, "\x1b\r") {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		c := text[i]
		if c == '\r' {
			i++
			continue
		}
		if c != 0x1b {
			b.WriteByte(c)
			i++
			continue
		}
		rest := text[i:]
		if m := csiRe.FindString(rest); m != "" {
			i += len(m)
			continue
		}
		if m := oscRe.FindString(rest); m != "" {
			i += len(m)
			continue
		}
		if m := escRe.FindString(rest); m != "" {
			i += len(m)
			continue
		}
		// Stray escape byte; drop it.
		i++
	}
	return b.String()
}

// firstPartialEscape returns the index of the earliest escape sequence that
// starts in text but is not yet terminated, or -1 if every sequence is
// complete.
func firstPartialEscape(text string) int {
	i := 0
	for {
		j := strings.IndexByte(text[i:], 0x1b)
		if j < 0 {
			return -1
		}
		i += j
		rest := text[i:]
		switch {
		case len(rest) == 1:
			return i
		case rest[1] == '[':
			m := csiRe.FindString(rest)
			if m == "" {
				return i
			}
			i += len(m)
		case rest[1] == ']':
			m := oscRe.FindString(rest)
			if m == "" {
				return i
			}
			i += len(m)
		default:
			// Two-byte escape or a stray byte; complete either way.
			i += 2
		}
	}
}
