// Package llm bridges the HTTP layer to an external generative-text process
// and assembles the prompts it consumes.
package llm

import "context"

// Frame is one unit of generator output. Err is set only on the trailing
// frame of a stream that failed mid-production; tokens already delivered
// remain valid.
type Frame struct {
	Token string
	Err   error
}

// Generator produces a token stream for a prompt. Implementations close the
// returned channel after the last frame; cancelling ctx stops production and
// releases the underlying process.
//
// A failed child process is reported in-stream rather than through the error
// return, so partial output is never discarded. The error return covers only
// failures to start.
type Generator interface {
	Generate(ctx context.Context, prompt string) (<-chan Frame, error)
}
