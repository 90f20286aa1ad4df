package source

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
	"time"
)

const resolveTimeout = 30 * time.Second

// reentrancyMarker is set by the claude CLI in the environment of anything it
// spawns. It must be scrubbed before launching a nested invocation so the
// child does not mistake itself for part of an outer session.
const reentrancyMarker = "CLAUDECODE"

// Resolver turns an unrecognized URL into a usable Descriptor, best effort.
// A persistent Invalid result is a user-facing validation failure, not a
// retryable condition.
type Resolver interface {
	Resolve(ctx context.Context, rawURL string) Descriptor
}

// CLIResolver asks the claude CLI to name an arXiv id or a direct PDF link
// for an arbitrary paper URL.
type CLIResolver struct {
	// Command is the binary to invoke; defaults to "claude".
	Command string
}

// Resolve implements Resolver. Timeouts, non-zero exits, and replies that
// contain no line of a recognized shape all yield the Invalid descriptor.
func (r *CLIResolver) Resolve(ctx context.Context, rawURL string) Descriptor {
	command := r.Command
	if command == "" {
		command = "claude"
	}

	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, command, "-p", resolvePrompt(rawURL))
	cmd.Env = scrubEnv(os.Environ())
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		log.Printf("url resolution via %s failed for %q: %v", command, rawURL, err)
		return Descriptor{Kind: Invalid}
	}

	reply := strings.TrimSpace(stdout.String())
	log.Printf("resolved %q -> %q", rawURL, reply)
	return ParseResolution(reply)
}

// ParseResolution scans a CLI reply for the first line of a recognized shape:
// "arxiv:<id>" with a well-formed id, or "pdf:<http url>". Anything else is
// Invalid.
func ParseResolution(reply string) Descriptor {
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "arxiv:"); ok {
			id := strings.TrimSpace(rest)
			if bareArxivRe.MatchString(id) {
				return Descriptor{Kind: Arxiv, ArxivID: id}
			}
		}
		if rest, ok := strings.CutPrefix(line, "pdf:"); ok {
			pdfURL := strings.TrimSpace(rest)
			if strings.HasPrefix(pdfURL, "http") {
				return Descriptor{Kind: PDF, URL: pdfURL}
			}
		}
	}
	return Descriptor{Kind: Invalid}
}

func resolvePrompt(rawURL string) string {
	return fmt.Sprintf(
		"Given this academic paper URL: %s\n\n"+
			"Extract the arxiv ID (format: YYMM.NNNNN like 2301.00234) if this is an arxiv paper. "+
			"If not arxiv, provide the direct PDF download URL.\n\n"+
			"Reply with ONLY one line in one of these formats:\n"+
			"arxiv:2301.00234\n"+
			"pdf:https://example.com/paper.pdf\n"+
			"none\n\n"+
			"No explanation. Just the ID or URL.",
		rawURL,
	)
}

func scrubEnv(env []string) []string {
	scrubbed := make([]string, 0, len(env))
	for _, entry := range env {
		if strings.HasPrefix(entry, reentrancyMarker+"=") {
			continue
		}
		scrubbed = append(scrubbed, entry)
	}
	return scrubbed
}
