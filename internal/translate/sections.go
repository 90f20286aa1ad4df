package translate

import (
	"context"
	"fmt"
	"iter"

	"github.com/csheth/paperreader/internal/paper"
)

// Item is one translated section, ready for streaming.
type Item struct {
	Heading string
	Content string
}

// Sections returns a lazy sequence of translated sections. Nothing is
// translated until the sequence is consumed, and each section is translated
// only when iteration reaches it, so the first result streams out while later
// sections are still pending.
//
// Failure is isolated per section: a heading failure falls back to the
// original heading, a content failure yields an inline marker, and iteration
// continues either way. The sequence always has exactly len(sections)
// entries when fully consumed.
func Sections(ctx context.Context, tr Translator, sections []paper.Section, target string) iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for _, s := range sections {
			heading, err := Text(ctx, tr, s.Heading, target)
			if err != nil {
				heading = s.Heading
			}
			content, err := Text(ctx, tr, s.Content, target)
			if err != nil {
				content = fmt.Sprintf("[Translation failed: %v]", err)
			}
			if !yield(Item{Heading: heading, Content: content}) {
				return
			}
		}
	}
}
