package server

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/hansard/catalog"
	"github.com/poiesic/hansard/core"
)

// TopicHit is one ranked topic in a /api/v1/topics response.
type TopicHit struct {
	TopicID  int      `json:"topic_id"`
	Score    float32  `json:"score"`
	Keywords []string `json:"keywords,omitempty"`
}

func abortWithError(c *gin.Context, status int, code string, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": err.Error(),
		},
	})
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) choices(c *gin.Context) {
	c.JSON(http.StatusOK, s.deps.Choices)
}

// explore binds a core.Request from the query string (GET) or from a JSON
// or form body (POST). A GET with no parameters runs the default request.
// Omitted year and party select their "Any" choice.
func (s *Server) explore(c *gin.Context) {
	var req core.Request
	if c.Request.Method == http.MethodGet && len(c.Request.URL.RawQuery) == 0 {
		req = core.DefaultRequest()
	} else {
		var err error
		if c.Request.Method == http.MethodGet {
			err = c.ShouldBindQuery(&req)
		} else {
			err = c.ShouldBind(&req)
		}
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "bad_request", err)
			return
		}
		req = withSelectDefaults(req)
	}

	if err := s.validateRequest(req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	result, err := s.deps.Explorer.Explore(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "explore_failed", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// withSelectDefaults fills blank select fields with their unconstrained
// choice. Blank topic and name already mean "any".
func withSelectDefaults(req core.Request) core.Request {
	if strings.TrimSpace(req.Year) == "" {
		req.Year = core.AnyYear
	}
	if strings.TrimSpace(req.Party) == "" {
		req.Party = core.AnyParty
	}
	return req
}

// validateRequest checks the select-style fields against the offered choices.
func (s *Server) validateRequest(req core.Request) error {
	year := strings.TrimSpace(req.Year)
	if !slices.Contains(s.deps.Choices.Years, year) {
		return fmt.Errorf("year %q: %w", year, ErrInvalidChoice)
	}
	party := strings.TrimSpace(req.Party)
	if !slices.Contains(s.deps.Choices.Parties, party) {
		return fmt.Errorf("party %q: %w", party, ErrInvalidChoice)
	}
	return nil
}

func (s *Server) topics(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		abortWithError(c, http.StatusBadRequest, "bad_request", errors.New("q is required"))
		return
	}

	n := s.defaultTopN
	if raw := c.Query("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > s.maxTopN {
			abortWithError(c, http.StatusBadRequest, "bad_request",
				fmt.Errorf("n must be between 1 and %d", s.maxTopN))
			return
		}
		n = parsed
	}

	ranked, err := s.deps.Topics.FindTopics(c.Request.Context(), query, n)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "ranking_failed", err)
		return
	}

	hits := make([]TopicHit, 0, len(ranked))
	for _, r := range ranked {
		hit := TopicHit{TopicID: r.TopicID, Score: r.Score}
		if s.deps.Keywords != nil {
			kw, err := s.deps.Keywords.KeywordsOf(r.TopicID)
			if err != nil && !errors.Is(err, catalog.ErrUnknownTopic) {
				abortWithError(c, http.StatusInternalServerError, "ranking_failed", err)
				return
			}
			hit.Keywords = kw
		}
		hits = append(hits, hit)
	}
	c.JSON(http.StatusOK, gin.H{"query": query, "topics": hits})
}

func (s *Server) names(c *gin.Context) {
	if s.deps.Names == nil {
		abortWithError(c, http.StatusNotFound, "not_found", errors.New("name matching is not enabled"))
		return
	}
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		abortWithError(c, http.StatusBadRequest, "bad_request", errors.New("q is required"))
		return
	}

	matches := s.deps.Names.Matches(query, s.deps.Choices.Names)
	c.JSON(http.StatusOK, gin.H{"query": query, "matches": matches})
}
