// Package ingest turns a user-supplied paper reference into a stored Paper:
// classify the reference, resolve it if needed, download the PDF, extract and
// segment its text, and attach metadata.
package ingest

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/csheth/paperreader/internal/paper"
	"github.com/csheth/paperreader/internal/segment"
	"github.com/csheth/paperreader/internal/source"
)

// ValidationError marks input the pipeline could not make sense of, as
// opposed to a transient download or parse failure. Message is shown to the
// user verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func errUnidentifiedURL() *ValidationError {
	return &ValidationError{
		Message: "Could not identify paper from this URL. " +
			"Try an arXiv URL (e.g. arxiv.org/abs/2301.00234), DOI, or direct PDF link.",
	}
}

// Service runs the ingestion pipeline. Zero-value fields are not usable; build
// one with NewService.
type Service struct {
	store    paper.Store
	resolver source.Resolver
	client   *http.Client

	// group collapses concurrent loads of the same reference into one
	// download, so a double-submitted URL is fetched once.
	group singleflight.Group
}

// NewService wires an ingestion pipeline. client may be nil, in which case a
// download-tuned client is used.
func NewService(store paper.Store, resolver source.Resolver, client *http.Client) *Service {
	if client == nil {
		client = NewFetchClient()
	}
	return &Service{store: store, resolver: resolver, client: client}
}

// Load ingests the paper referenced by rawURL and returns the stored result.
// Failures classify as *ValidationError (bad input), *FetchError (download),
// or *ExtractionError (unreadable PDF).
func (s *Service) Load(ctx context.Context, rawURL string) (*paper.Paper, error) {
	key := strings.TrimSpace(rawURL)
	// The flight is shared by every caller piggybacking on this key, so it
	// must not die with whichever caller happened to start it. The fetch and
	// resolver timeouts still bound it.
	flightCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.load(flightCtx, key)
	})
	if err != nil {
		return nil, err
	}
	return v.(*paper.Paper), nil
}

func (s *Service) load(ctx context.Context, rawURL string) (*paper.Paper, error) {
	desc := source.Classify(rawURL)

	if desc.Kind == source.Generic || desc.Kind == source.Invalid {
		log.Printf("unrecognized reference, resolving externally: %s", rawURL)
		desc = s.resolver.Resolve(ctx, rawURL)
		if desc.Kind == source.Invalid {
			return nil, errUnidentifiedURL()
		}
	}

	var meta Metadata
	var pdfURL string

	switch desc.Kind {
	case source.Arxiv:
		log.Printf("loading arxiv paper: %s", desc.ArxivID)
		m, err := FetchArxivMetadata(ctx, s.client, desc.ArxivID)
		if err != nil {
			log.Printf("arxiv metadata fetch failed for %s: %v", desc.ArxivID, err)
		} else {
			meta = m
		}
		pdfURL = fmt.Sprintf("https://arxiv.org/pdf/%s.pdf", desc.ArxivID)
	case source.DOI:
		pdfURL = "https://doi.org/" + desc.DOI
	default:
		pdfURL = desc.URL
	}

	log.Printf("downloading PDF from: %s", pdfURL)
	data, err := FetchPDF(ctx, s.client, pdfURL)
	if err != nil {
		return nil, err
	}

	fullText, numPages, err := ExtractText(data)
	if err != nil {
		return nil, err
	}

	p := &paper.Paper{
		Title:    meta.Title,
		Authors:  meta.Authors,
		Abstract: meta.Abstract,
		FullText: fullText,
		Sections: segment.Split(fullText),
		NumPages: numPages,
		PDF:      data,
	}
	if p.Title == "" {
		p.Title = fallbackTitle(fullText)
	}
	if p.Abstract == "" {
		p.Abstract = fallbackAbstract(fullText)
	}

	s.store.Put(p)
	return p, nil
}
