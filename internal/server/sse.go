package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/csheth/paperreader/internal/paper"
	"github.com/csheth/paperreader/internal/translate"
)

// The SSE framing is part of the API contract and is written byte for byte:
// token frames, at most one error frame, and a [DONE] sentinel terminating
// every stream that did not fail. An error frame is itself terminal.

func sseHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
}

func writeFrame(c *gin.Context, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	fmt.Fprintf(c.Writer, "data: %s\n\n", data)
	c.Writer.Flush()
}

func writeToken(c *gin.Context, token string) {
	writeFrame(c, gin.H{"token": token})
}

func writeError(c *gin.Context, err error) {
	writeFrame(c, gin.H{"error": err.Error()})
}

func writeDone(c *gin.Context) {
	fmt.Fprint(c.Writer, "data: [DONE]\n\n")
	c.Writer.Flush()
}

// streamGeneration runs the generator and relays its frames as SSE until the
// stream closes or the client goes away.
func (s *Server) streamGeneration(c *gin.Context, prompt string) {
	sseHeaders(c.Writer)

	frames, err := s.Generator.Generate(c.Request.Context(), prompt)
	if err != nil {
		writeError(c, err)
		return
	}

	for f := range frames {
		if f.Err != nil {
			writeError(c, f.Err)
			return
		}
		writeToken(c, f.Token)
	}
	writeDone(c)
}

// streamLiteralTranslation streams machine-translated sections, one token
// frame per section, rendered in the same markdown shape the generative path
// produces.
func (s *Server) streamLiteralTranslation(c *gin.Context, p *paper.Paper, targetLang string) {
	sseHeaders(c.Writer)

	if targetLang == "" {
		targetLang = "zh"
	}
	ctx := c.Request.Context()
	for item := range translate.Sections(ctx, s.Translator, p.Sections, targetLang) {
		if ctx.Err() != nil {
			return
		}
		writeToken(c, fmt.Sprintf("## %s\n%s\n\n", item.Heading, item.Content))
	}
	writeDone(c)
}
