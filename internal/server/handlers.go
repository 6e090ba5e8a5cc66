package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yuki-mtmr/SystemPromptDiagnoser/internal/diagnosis"
	"github.com/yuki-mtmr/SystemPromptDiagnoser/internal/session"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleQuestions returns the fixed questionnaire. The language comes
// from the "lang" (or "language") query parameter, defaulting to
// English.
func (s *Server) handleQuestions(c *gin.Context) {
	lang := c.Query("lang")
	if lang == "" {
		lang = c.Query("language")
	}
	c.JSON(http.StatusOK, diagnosis.Catalog(strings.ToLower(lang)))
}

func (s *Server) handleStart(c *gin.Context) {
	var req diagnosis.StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	resp, err := s.controller.Start(c.Request.Context(), req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleContinue(c *gin.Context) {
	var req diagnosis.ContinueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	resp, err := s.controller.Continue(c.Request.Context(), req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	id := c.Param("id")
	if err := s.sessions.Delete(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// writeError maps domain errors to HTTP statuses. Session lookups that
// miss or hit an expired entry are 404s; everything else from the
// controller is a client-input problem or an internal fault.
func (s *Server) writeError(c *gin.Context, err error) {
	var validation *diagnosis.ValidationError
	switch {
	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrExpired):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		s.logger.Error("Request failed: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
