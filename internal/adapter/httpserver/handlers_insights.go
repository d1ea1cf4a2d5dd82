package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/abrilera/tangopulse/internal/domain"
	apperrors "github.com/abrilera/tangopulse/internal/errors"
	"github.com/abrilera/tangopulse/internal/scoring"
)

type engagementRequest struct {
	Post     domain.PostFeatures `json:"post"`
	AuthorID uuid.UUID           `json:"author_id"`
	History  []domain.PostStats  `json:"history"`
}

func (s *Server) handleEngagement(c echo.Context) error {
	var req engagementRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.Post.Hour < 0 || req.Post.Hour > 23 {
		return apperrors.ValidationError("post.hour must be in [0,23]").WithField("hour", req.Post.Hour)
	}

	start := time.Now()
	prediction := s.app.PredictEngagement(req.Post, req.AuthorID, req.History)
	s.observeScoring("engagement", start)

	if err := c.JSON(http.StatusOK, prediction); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

type attendanceRequest struct {
	Event            domain.EventFeatures `json:"event"`
	OrganizerHistory []domain.EventStats  `json:"organizer_history"`
	VenueHistory     []domain.EventStats  `json:"venue_history"`
}

func (s *Server) handleAttendance(c echo.Context) error {
	var req attendanceRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.Event.StartsAt.IsZero() {
		return apperrors.ValidationError("event.starts_at is required")
	}
	if req.Event.Capacity < 0 {
		return apperrors.ValidationError("event.capacity must not be negative").WithField("capacity", req.Event.Capacity)
	}

	start := time.Now()
	prediction := s.app.PredictAttendance(req.Event, req.OrganizerHistory, req.VenueHistory)
	s.observeScoring("attendance", start)

	if err := c.JSON(http.StatusOK, prediction); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

type sentimentRequest struct {
	Text  string   `json:"text"`
	Texts []string `json:"texts"`
}

type sentimentBatchResponse struct {
	Results []domain.SentimentResult `json:"results"`
	Average float64                  `json:"average"`
}

func (s *Server) handleSentiment(c echo.Context) error {
	var req sentimentRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.Text == "" && len(req.Texts) == 0 {
		return apperrors.ValidationError("either text or texts is required")
	}

	start := time.Now()

	if len(req.Texts) > 0 {
		response := sentimentBatchResponse{
			Results: scoring.AnalyzeSentimentBatch(req.Texts),
			Average: scoring.AverageSentiment(req.Texts),
		}
		s.observeScoring("sentiment", start)
		if err := c.JSON(http.StatusOK, response); err != nil {
			return fmt.Errorf("failed to send JSON response: %w", err)
		}
		return nil
	}

	result := scoring.AnalyzeSentiment(req.Text)
	s.observeScoring("sentiment", start)
	if err := c.JSON(http.StatusOK, result); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

// observeScoring records one scorer call and its latency.
func (s *Server) observeScoring(scorer string, start time.Time) {
	s.metrics.Scoring.Predictions.WithLabelValues(scorer).Inc()
	s.metrics.Scoring.ScoringDuration.WithLabelValues(scorer).Observe(time.Since(start).Seconds())
}
