package ingest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/csheth/paperreader/internal/paper"
	"github.com/csheth/paperreader/internal/source"
)

// stubResolver scripts the external resolver.
type stubResolver struct {
	desc source.Descriptor
}

func (r *stubResolver) Resolve(ctx context.Context, rawURL string) source.Descriptor {
	return r.desc
}

func TestLoadRejectsUnresolvableInput(t *testing.T) {
	t.Parallel()

	svc := NewService(paper.NewMemoryStore(), &stubResolver{desc: source.Descriptor{Kind: source.Invalid}}, nil)

	_, err := svc.Load(context.Background(), "not a url at all")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if ve.Message == "" {
		t.Error("validation error carries no user-facing message")
	}
}

func TestLoadSurfacesFetchFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>sign in required</html>"))
	}))
	defer srv.Close()

	svc := NewService(paper.NewMemoryStore(), &stubResolver{}, srv.Client())

	_, err := svc.Load(context.Background(), srv.URL+"/gated/paper.pdf")
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want *FetchError", err)
	}
}

func TestLoadSurfacesExtractionFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 but the rest is garbage"))
	}))
	defer srv.Close()

	svc := NewService(paper.NewMemoryStore(), &stubResolver{}, srv.Client())

	_, err := svc.Load(context.Background(), srv.URL+"/broken.pdf")
	var ee *ExtractionError
	if !errors.As(err, &ee) {
		t.Fatalf("err = %v, want *ExtractionError", err)
	}
}

func TestLoadSurvivesCallerCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>sign in required</html>"))
	}))
	defer srv.Close()

	svc := NewService(paper.NewMemoryStore(), &stubResolver{}, srv.Client())

	// A caller whose context is already dead still gets the flight's own
	// outcome, not a cancellation error that would poison piggybacked loads.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Load(ctx, srv.URL+"/gated/paper.pdf")
	if errors.Is(err, context.Canceled) {
		t.Fatalf("load inherited caller cancellation: %v", err)
	}
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want *FetchError", err)
	}
}

func TestExtractTextRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, _, err := ExtractText([]byte("definitely not a pdf"))
	var ee *ExtractionError
	if !errors.As(err, &ee) {
		t.Fatalf("err = %v, want *ExtractionError", err)
	}
}
