package ingest

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

const arxivQueryURL = "https://export.arxiv.org/api/query"

// Metadata is what the arXiv API knows about a paper. Any field may be empty;
// extraction fallbacks fill the gaps.
type Metadata struct {
	Title     string
	Authors   []string
	Abstract  string
	Published string
}

type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title     string       `xml:"title"`
	Summary   string       `xml:"summary"`
	Published string       `xml:"published"`
	Authors   []atomAuthor `xml:"author"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

// FetchArxivMetadata queries the arXiv Atom API for a single identifier.
func FetchArxivMetadata(ctx context.Context, client *http.Client, arxivID string) (Metadata, error) {
	return fetchArxivMetadataFrom(ctx, client, arxivQueryURL, arxivID)
}

func fetchArxivMetadataFrom(ctx context.Context, client *http.Client, baseURL, arxivID string) (Metadata, error) {
	queryURL := fmt.Sprintf("%s?id_list=%s", baseURL, url.QueryEscape(arxivID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return Metadata{}, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return Metadata{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Metadata{}, fmt.Errorf("arxiv API error: %s (%s)", resp.Status, string(body))
	}

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return Metadata{}, fmt.Errorf("failed to decode arxiv response: %w", err)
	}
	if len(feed.Entries) == 0 {
		return Metadata{}, nil
	}

	entry := feed.Entries[0]
	authors := make([]string, 0, len(entry.Authors))
	for _, a := range entry.Authors {
		authors = append(authors, strings.TrimSpace(a.Name))
	}

	return Metadata{
		Title:     flattenLines(entry.Title),
		Authors:   authors,
		Abstract:  flattenLines(entry.Summary),
		Published: entry.Published,
	}, nil
}

func flattenLines(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", " ")
}

var (
	metadataLineRe = regexp.MustCompile(`(?i)^(arxiv|doi|http)`)
	abstractRe     = regexp.MustCompile(`(?is)abstract[:\s]*(.{50,1500}?)(?:\n\s*\n|\bintroduction\b|\b1[\s.]+)`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// fallbackTitle guesses a title from the leading lines of extracted text: the
// first early line of plausible length that is not an identifier banner.
func fallbackTitle(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) > 10 && len(line) < 200 && !metadataLineRe.MatchString(line) {
			return line
		}
	}
	return "Untitled"
}

// fallbackAbstract pulls the passage after an "abstract" marker, stopping at a
// blank line, an introduction heading, or a "1." section number.
func fallbackAbstract(text string) string {
	m := abstractRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(m[1], " "))
}
