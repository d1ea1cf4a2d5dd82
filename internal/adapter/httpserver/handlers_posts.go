package httpserver

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/abrilera/tangopulse/internal/domain"
	apperrors "github.com/abrilera/tangopulse/internal/errors"
)

type ingestPostsRequest struct {
	Posts []domain.Post `json:"posts"`
}

func (s *Server) handleIngestPosts(c echo.Context) error {
	var req ingestPostsRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if len(req.Posts) == 0 {
		return apperrors.ValidationError("posts must not be empty")
	}

	ingested := s.app.IngestPosts(req.Posts)
	s.metrics.Scoring.PostsIngested.Add(float64(ingested))

	// Cached reads over posts and trending are stale now.
	s.invalidateCached("/api/v1/posts")
	s.invalidateCached("/api/v1/trending")

	if err := c.JSON(http.StatusOK, map[string]int{"ingested": ingested}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleAuthorPosts(c echo.Context) error {
	authorStr := c.Param("author")
	authorID, err := uuid.Parse(authorStr)
	if err != nil {
		return apperrors.ValidationError("invalid author ID").WithField("author", authorStr)
	}

	posts := s.app.AuthorPosts(authorID)
	if posts == nil {
		posts = []domain.Post{}
	}

	if err := c.JSON(http.StatusOK, map[string]any{"posts": posts}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleTrending(c echo.Context) error {
	window := s.config.TrendingWindow
	if raw := c.QueryParam("window_hours"); raw != "" {
		hours, err := strconv.ParseFloat(raw, 64)
		if err != nil || hours <= 0 {
			return apperrors.ValidationError("window_hours must be a positive number").WithField("window_hours", raw)
		}
		window = time.Duration(hours * float64(time.Hour))
	}

	start := time.Now()
	topics := s.app.TrendingTopics(window)
	s.observeScoring("trending", start)
	s.metrics.Scoring.TrendingTopicCnt.Set(float64(len(topics)))

	if topics == nil {
		topics = []domain.TrendingTopic{}
	}

	response := map[string]any{
		"topics":       topics,
		"window_hours": window.Hours(),
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
