package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const googleEndpoint = "https://translate.googleapis.com/translate_a/single"

// Google translates through the unauthenticated web endpoint Google Translate
// itself uses. No API key, no cost; in exchange, no SLA.
type Google struct {
	// Client may be nil, in which case a default with a request timeout is
	// used.
	Client *http.Client
	// Endpoint overrides the translation URL; used by tests.
	Endpoint string
}

// Translate implements Translator.
func (g *Google) Translate(ctx context.Context, text, source, target string) (string, error) {
	endpoint := g.Endpoint
	if endpoint == "" {
		endpoint = googleEndpoint
	}
	client := g.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	form := url.Values{
		"client": {"gtx"},
		"sl":     {source},
		"tl":     {target},
		"dt":     {"t"},
		"q":      {text},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate: server returned %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", err
	}
	return parseTranslation(body)
}

// parseTranslation walks the endpoint's nested-array payload:
// [[["<translated>","<original>",...],...],...]. Only the translated strings
// in the first element are wanted.
func parseTranslation(body []byte) (string, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("translate: malformed response: %w", err)
	}
	outer, ok := payload.([]any)
	if !ok || len(outer) == 0 {
		return "", fmt.Errorf("translate: unexpected response shape")
	}
	segments, ok := outer[0].([]any)
	if !ok {
		return "", fmt.Errorf("translate: unexpected response shape")
	}

	var b strings.Builder
	for _, seg := range segments {
		pair, ok := seg.([]any)
		if !ok || len(pair) == 0 {
			continue
		}
		if s, ok := pair[0].(string); ok {
			b.WriteString(s)
		}
	}
	return b.String(), nil
}
