// Package segment splits a paper's flat text into heading-delimited sections.
//
// Heading detection is a precision-biased heuristic over common scholarly
// section names and numbering shapes. Short title-cased prose lines can
// false-positive as headings; that trade-off is accepted rather than guessed
// around.
package segment

import (
	"regexp"
	"strings"

	"github.com/csheth/paperreader/internal/paper"
)

// maxHeadingLen bounds heading candidates; real section headings are short.
const maxHeadingLen = 80

// Rule is one heading predicate. Rules are evaluated independently; any
// match marks the line as a heading.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
}

// DefaultRules is the ordered rule set used by Split. Keeping it a plain
// slice lets precision/recall tuning happen without touching the state
// machine.
var DefaultRules = []Rule{
	{
		Name: "vocabulary",
		Pattern: regexp.MustCompile(`(?i)^(?:\d+\.?\s+)?` +
			`(Abstract|Introduction|Related Work|Background|Methodology|Methods?|` +
			`Approach|Model|Experiments?|Results?|Discussion|Conclusions?|` +
			`Acknowledgments?|References|Appendix|Evaluation|Implementation|` +
			`System Overview|Problem (?:Statement|Definition|Formulation)|` +
			`Proposed (?:Method|Approach|Framework|System)|` +
			`Experimental (?:Setup|Results|Evaluation)|` +
			`Limitations?|Future Work|Datasets?|Training|Analysis|Summary)\b`),
	},
	{
		Name:    "enumerated",
		Pattern: regexp.MustCompile(`^(?:[\dIVXivx]+\.?\s+)[A-Z][A-Za-z\s]{2,50}$`),
	},
	{
		Name:    "subsection",
		Pattern: regexp.MustCompile(`^\d+\.\d*\s+[A-Z][A-Za-z\s]{2,50}$`),
	},
}

// Split partitions text into sections using DefaultRules.
func Split(text string) []paper.Section {
	return SplitWithRules(text, DefaultRules)
}

// SplitWithRules runs the two-state segmentation machine: lines accumulate
// under the current heading until a new heading flushes them. Blank lines are
// kept as paragraph separators and never flush. The machine partitions its
// input; no line is dropped.
func SplitWithRules(text string, rules []Rule) []paper.Section {
	var sections []paper.Section
	heading := "Header"
	var content strings.Builder

	flush := func() {
		if body := strings.TrimSpace(content.String()); body != "" {
			sections = append(sections, paper.Section{Heading: heading, Content: body})
		}
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			content.WriteString("\n")
			continue
		}
		if isHeading(trimmed, rules) {
			flush()
			heading = trimmed
			content.Reset()
			continue
		}
		content.WriteString(trimmed)
		content.WriteString(" ")
	}
	flush()

	if len(sections) == 0 {
		sections = append(sections, paper.Section{
			Heading: "Full Text",
			Content: strings.TrimSpace(text),
		})
	}
	return sections
}

func isHeading(trimmed string, rules []Rule) bool {
	if len(trimmed) >= maxHeadingLen {
		return false
	}
	for _, rule := range rules {
		if rule.Pattern.MatchString(trimmed) {
			return true
		}
	}
	return false
}
