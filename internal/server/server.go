// Package server exposes the paper reader over HTTP: JSON endpoints for
// ingestion and retrieval, SSE streams for generated analysis and
// translation.
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/csheth/paperreader/internal/ingest"
	"github.com/csheth/paperreader/internal/llm"
	"github.com/csheth/paperreader/internal/paper"
	"github.com/csheth/paperreader/internal/translate"
)

// Server holds the capabilities request handlers need. All fields are
// required except Translator, which only the literal translation mode uses.
type Server struct {
	Store      paper.Store
	Ingest     *ingest.Service
	Generator  llm.Generator
	Translator translate.Translator
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"healthy": true})
	})

	api := r.Group("/api/paper")
	api.POST("/load", s.handleLoad)
	api.GET("/:id/pdf", s.handlePDF)
	api.POST("/summarize", s.handleSummarize)
	api.POST("/extract", s.handleExtract)
	api.POST("/translate", s.handleTranslate)
	api.POST("/chat", s.handleChat)

	return r
}

type loadRequest struct {
	URL string `json:"url" binding:"required"`
}

type paperRequest struct {
	PaperID string `json:"paper_id" binding:"required"`
}

type translateRequest struct {
	PaperID    string `json:"paper_id" binding:"required"`
	TargetLang string `json:"target_lang"`
	// Mode selects the backend: empty or "llm" streams a generative
	// translation, "literal" streams fast per-section machine translation.
	Mode string `json:"mode"`
}

type chatRequest struct {
	PaperID  string            `json:"paper_id" binding:"required"`
	Question string            `json:"question" binding:"required"`
	History  []llm.ChatMessage `json:"history"`
}

func (s *Server) handleLoad(c *gin.Context) {
	var req loadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	p, err := s.Ingest.Load(c.Request.Context(), req.URL)
	if err != nil {
		var ve *ingest.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": ve.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to load paper: " + err.Error()})
		return
	}

	if p.Authors == nil {
		p.Authors = []string{}
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handlePDF(c *gin.Context) {
	p, ok := s.Store.Get(c.Param("id"))
	if !ok || len(p.PDF) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "PDF not found"})
		return
	}
	c.Data(http.StatusOK, "application/pdf", p.PDF)
}

// lookupPaper resolves the paper for a streaming request, writing the 404
// itself when missing.
func (s *Server) lookupPaper(c *gin.Context, id string) (*paper.Paper, bool) {
	p, ok := s.Store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Paper not found. Please reload."})
		return nil, false
	}
	return p, true
}

func (s *Server) handleSummarize(c *gin.Context) {
	var req paperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	p, ok := s.lookupPaper(c, req.PaperID)
	if !ok {
		return
	}

	context := llm.PaperContext(p, llm.DefaultContextTokens)
	s.streamGeneration(c, llm.SummarizePrompt(context))
}

func (s *Server) handleExtract(c *gin.Context) {
	var req paperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	p, ok := s.lookupPaper(c, req.PaperID)
	if !ok {
		return
	}

	context := llm.PaperContext(p, llm.DefaultContextTokens)
	s.streamGeneration(c, llm.ExtractPrompt(context))
}

func (s *Server) handleTranslate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	p, ok := s.lookupPaper(c, req.PaperID)
	if !ok {
		return
	}

	if req.Mode == "literal" {
		s.streamLiteralTranslation(c, p, req.TargetLang)
		return
	}

	context := llm.PaperContext(p, llm.TranslateContextTokens)
	s.streamGeneration(c, llm.TranslatePrompt(context, req.TargetLang))
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	p, ok := s.lookupPaper(c, req.PaperID)
	if !ok {
		return
	}

	context := llm.PaperContext(p, llm.ChatContextTokens)
	s.streamGeneration(c, llm.ChatPrompt(context, req.Question, req.History))
}
