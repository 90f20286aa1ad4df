// Package paper holds the document model shared by the ingestion pipeline and
// the request handlers, plus the process-wide store papers live in.
package paper

import (
	"crypto/md5"
	"encoding/hex"
)

// fingerprintPrefix is how much of the leading text feeds the identifier.
// Identical leading text yields an identical id, which makes re-ingesting the
// same document idempotent.
const fingerprintPrefix = 500

// Paper is an ingested document. Instances are built once by the ingestion
// pipeline and never mutated afterwards.
type Paper struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Authors  []string  `json:"authors"`
	Abstract string    `json:"abstract"`
	FullText string    `json:"-"`
	Sections []Section `json:"sections"`
	NumPages int       `json:"numPages"`
	// PDF keeps the raw document bytes for re-serving only; they are never
	// parsed again after ingestion.
	PDF []byte `json:"-"`
}

// Section is one heading-delimited span of a paper's text.
type Section struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

// Fingerprint derives the stable identifier for a document from its leading
// full text.
func Fingerprint(fullText string) string {
	head := fullText
	if len(head) > fingerprintPrefix {
		head = head[:fingerprintPrefix]
	}
	sum := md5.Sum([]byte(head))
	return hex.EncodeToString(sum[:])[:12]
}
