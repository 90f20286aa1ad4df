package llm

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/creack/pty"
)

const (
	// readBlockSize keeps reads small so tokens reach the client with an
	// interactive cadence instead of arriving in large flushes.
	readBlockSize = 64
	// readTimeout bounds each pty read so cancellation and child exit are
	// noticed promptly without busy-polling.
	readTimeout = 200 * time.Millisecond
)

// reentrancyMarker is set by the claude CLI in the environment of processes
// it spawns; it must not leak into a nested invocation.
const reentrancyMarker = "CLAUDECODE"

// ClaudeCLI runs `claude -p <prompt>` attached to a pseudo-terminal and
// streams its output. The pty matters: without one the CLI block-buffers
// stdout and tokens arrive all at once at exit.
type ClaudeCLI struct {
	// Command is the binary to invoke; defaults to "claude".
	Command string
	// Model, when set, is passed through as --model.
	Model string
}

// Generate implements Generator. The child's failure is folded into the
// stream as a trailing bracketed token, never returned as an error, so output
// already delivered is preserved.
func (c *ClaudeCLI) Generate(ctx context.Context, prompt string) (<-chan Frame, error) {
	command := c.Command
	if command == "" {
		command = "claude"
	}
	args := []string{"-p", prompt}
	if c.Model != "" {
		args = append([]string{"--model", c.Model}, args...)
	}

	ptmx, tty, err := pty.Open()
	if err != nil {
		return nil, fmt.Errorf("open pty: %w", err)
	}

	cmd := exec.Command(command, args...)
	cmd.Stdin = tty
	cmd.Stdout = tty
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.Env = dropEnv(os.Environ(), reentrancyMarker)

	if err := cmd.Start(); err != nil {
		ptmx.Close()
		tty.Close()
		return nil, fmt.Errorf("start %s: %w", command, err)
	}
	// The child holds its own descriptor now; keeping ours open would make
	// the pty read block forever after the child exits.
	tty.Close()

	exited := make(chan error, 1)
	go func() { exited <- cmd.Wait() }()

	frames := make(chan Frame)
	go func() {
		defer close(frames)

		var scrub Scrubber
		buf := make([]byte, readBlockSize)
		cancelled := false

	streaming:
		for {
			ptmx.SetReadDeadline(time.Now().Add(readTimeout))
			n, err := ptmx.Read(buf)
			if n > 0 {
				if text := scrub.Scrub(string(buf[:n])); text != "" {
					select {
					case frames <- Frame{Token: text}:
					case <-ctx.Done():
						cancelled = true
						break streaming
					}
				}
			}
			if err == nil {
				continue
			}
			if !os.IsTimeout(err) {
				// EOF or EIO: the child closed its side.
				break streaming
			}
			if ctx.Err() != nil {
				cancelled = true
				break streaming
			}
			select {
			case waitErr := <-exited:
				// Child already gone; put the result back for draining.
				exited <- waitErr
				break streaming
			default:
			}
		}

		// Draining: release the pty and reap the child unconditionally.
		ptmx.Close()
		if cancelled {
			cmd.Process.Kill()
		}
		waitErr := <-exited

		if cancelled {
			return
		}
		if waitErr != nil {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				select {
				case frames <- Frame{Token: fmt.Sprintf("\n\n[Error: %s]", msg)}:
				case <-ctx.Done():
				}
			}
		}
	}()

	return frames, nil
}

func dropEnv(env []string, name string) []string {
	kept := make([]string, 0, len(env))
	for _, entry := range env {
		if strings.HasPrefix(entry, name+"=") {
			continue
		}
		kept = append(kept, entry)
	}
	return kept
}
