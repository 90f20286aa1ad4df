package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	fetchTimeout = 60 * time.Second
	maxRedirects = 10
	// maxPDFBytes caps downloads; everything is held in memory.
	maxPDFBytes = 50 << 20
)

// FetchError reports a failed or rejected document download. The Reason is
// safe to surface to the user.
type FetchError struct {
	URL    string
	Reason string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Reason)
}

// NewFetchClient returns an http.Client configured for document downloads:
// an overall deadline and a bounded redirect chain.
func NewFetchClient() *http.Client {
	return &http.Client{
		Timeout: fetchTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}
}

// FetchPDF downloads the document at url and verifies it looks like a PDF.
// Servers behind paywalls or login pages tend to answer PDF links with an
// HTML page and a 200, so the content is sniffed rather than trusted.
func FetchPDF(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Reason: err.Error()}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: url, Reason: fmt.Sprintf("server returned %s", resp.Status)}
	}
	if resp.ContentLength > maxPDFBytes {
		return nil, &FetchError{URL: url, Reason: "PDF too large (>50MB)"}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPDFBytes+1))
	if err != nil {
		return nil, &FetchError{URL: url, Reason: err.Error()}
	}
	if len(body) > maxPDFBytes {
		return nil, &FetchError{URL: url, Reason: "PDF too large (>50MB)"}
	}

	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "html") && !strings.HasPrefix(string(body[:min(5, len(body))]), "%PDF-") {
		return nil, &FetchError{
			URL:    url,
			Reason: "URL returned HTML, not a PDF. The page might require authentication or the URL isn't a direct PDF link.",
		}
	}

	return body, nil
}
