// Command paperreader serves the paper reader backend: paper ingestion,
// streamed analysis via the claude CLI, and literal section translation.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/csheth/paperreader/internal/ingest"
	"github.com/csheth/paperreader/internal/llm"
	"github.com/csheth/paperreader/internal/paper"
	"github.com/csheth/paperreader/internal/server"
	"github.com/csheth/paperreader/internal/source"
	"github.com/csheth/paperreader/internal/translate"
)

func main() {
	// Local development keeps settings in a .env file; absence is fine.
	godotenv.Load()

	addr := flag.String("addr", envOr("ADDR", ":8000"), "HTTP listen address")
	claudeBin := flag.String("claude-bin", envOr("CLAUDE_BIN", "claude"), "generative CLI binary")
	model := flag.String("model", os.Getenv("CLAUDE_MODEL"), "model selector passed to the CLI (optional)")
	flag.Parse()

	store := paper.NewMemoryStore()
	srv := &server.Server{
		Store:      store,
		Ingest:     ingest.NewService(store, &source.CLIResolver{Command: *claudeBin}, nil),
		Generator:  &llm.ClaudeCLI{Command: *claudeBin, Model: *model},
		Translator: &translate.Google{},
	}

	log.Printf("paperreader listening on %s", *addr)
	if err := srv.Router().Run(*addr); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
