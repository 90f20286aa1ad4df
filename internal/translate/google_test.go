package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGoogleTranslate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if got := r.PostForm.Get("tl"); got != "zh" {
			t.Errorf("tl = %q, want zh", got)
		}
		if got := r.PostForm.Get("sl"); got != "auto" {
			t.Errorf("sl = %q, want auto", got)
		}
		// The endpoint answers with nested arrays; later elements carry
		// detection metadata the parser must skip.
		w.Write([]byte(`[[["你好","hello",null,null,10],["世界","world",null,null,10]],null,"en"]`))
	}))
	defer srv.Close()

	g := &Google{Client: srv.Client(), Endpoint: srv.URL}
	got, err := g.Translate(context.Background(), "hello world", "auto", "zh")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "你好世界" {
		t.Errorf("got %q, want %q", got, "你好世界")
	}
}

func TestGoogleTranslateServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := &Google{Client: srv.Client(), Endpoint: srv.URL}
	if _, err := g.Translate(context.Background(), "hello", "auto", "zh"); err == nil {
		t.Fatal("Translate succeeded on a 429")
	}
}

func TestParseTranslationRejectsGarbage(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`not json`, `{}`, `[]`} {
		if _, err := parseTranslation([]byte(body)); err == nil {
			t.Errorf("parseTranslation(%q) succeeded", body)
		}
	}
}
