// Package source decides where a user-supplied paper reference points:
// an arXiv identifier, a DOI, a direct PDF link, or something that needs an
// external resolver before it can be fetched.
package source

import (
	"regexp"
	"strings"
)

// Kind tags a classified source.
type Kind int

const (
	// Invalid marks input that cannot be resolved into a document source.
	Invalid Kind = iota
	// Arxiv carries an arXiv identifier.
	Arxiv
	// DOI carries a digital object identifier.
	DOI
	// PDF carries a direct document URL.
	PDF
	// Generic is an http(s) URL of unknown shape that needs resolution.
	Generic
)

// Descriptor is the result of classifying a raw reference. Exactly one of
// ArxivID, DOI, or URL is meaningful, depending on Kind.
type Descriptor struct {
	Kind    Kind
	ArxivID string
	DOI     string
	URL     string
}

var (
	bareArxivRe = regexp.MustCompile(`^\d{4}\.\d{4,5}(v\d+)?$`)
	arxivPathRe = regexp.MustCompile(`arxiv\.org/(?:abs|pdf)/(\d{4}\.\d{4,5}(?:v\d+)?)`)
	// NASA ADS encodes arXiv ids without the dot, e.g. 2025arXiv251023947L.
	adsArxivRe    = regexp.MustCompile(`arXiv(\d{2})(\d{2})(\d{4,5})`)
	huggingfaceRe = regexp.MustCompile(`huggingface\.co/papers/(\d{4}\.\d{4,5})`)
	doiRe         = regexp.MustCompile(`(10\.\d{4,}/\S+)`)
	pdfPathRe     = regexp.MustCompile(`(?i)\.pdf(\?.*)?$`)
)

// Classify maps a raw string to a Descriptor. It is pure and deterministic:
// recognizers run in precedence order and the first match wins, so an arXiv
// id embedded in a known host pattern beats the more generic rules below it.
func Classify(raw string) Descriptor {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Descriptor{Kind: Invalid}
	}

	if bareArxivRe.MatchString(raw) {
		return Descriptor{Kind: Arxiv, ArxivID: raw}
	}
	if m := arxivPathRe.FindStringSubmatch(raw); m != nil {
		return Descriptor{Kind: Arxiv, ArxivID: m[1]}
	}
	if m := adsArxivRe.FindStringSubmatch(raw); m != nil {
		return Descriptor{Kind: Arxiv, ArxivID: m[1] + m[2] + "." + m[3]}
	}
	if m := huggingfaceRe.FindStringSubmatch(raw); m != nil {
		return Descriptor{Kind: Arxiv, ArxivID: m[1]}
	}
	if m := doiRe.FindStringSubmatch(raw); m != nil {
		return Descriptor{Kind: DOI, DOI: m[1]}
	}
	if pdfPathRe.MatchString(raw) {
		return Descriptor{Kind: PDF, URL: raw}
	}
	if strings.HasPrefix(raw, "http") {
		return Descriptor{Kind: Generic, URL: raw}
	}
	return Descriptor{Kind: Invalid}
}
