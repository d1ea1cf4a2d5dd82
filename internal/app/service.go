// Package app wires the post store and the scorers into the operations the
// HTTP layer exposes.
package app

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/abrilera/tangopulse/internal/domain"
	"github.com/abrilera/tangopulse/internal/scoring"
)

// Service composes the in-memory post store with the heuristic scorers.
// All operations are synchronous and in-process.
type Service struct {
	store  *PostStore
	trends *scoring.TrendDetector
	clock  clockwork.Clock
}

// NewService creates the service over its collaborators.
func NewService(store *PostStore, trends *scoring.TrendDetector, clock clockwork.Clock) *Service {
	return &Service{store: store, trends: trends, clock: clock}
}

// IngestPosts adds posts to the store and returns the number accepted.
func (s *Service) IngestPosts(posts []domain.Post) int {
	return s.store.Add(posts...)
}

// AuthorPosts returns the retained history of one author.
func (s *Service) AuthorPosts(authorID uuid.UUID) []domain.Post {
	return s.store.AuthorPosts(authorID)
}

// TrendingTopics detects trending hashtags across the retained posts within
// the window. Each call advances the detector's velocity history.
func (s *Service) TrendingTopics(window time.Duration) []domain.TrendingTopic {
	return s.trends.Detect(s.store.Recent(), window)
}

// PredictEngagement scores a draft post. When the caller supplies no
// explicit history, the author's retained posts are used instead.
func (s *Service) PredictEngagement(post domain.PostFeatures, authorID uuid.UUID, history []domain.PostStats) domain.EngagementPrediction {
	if len(history) == 0 && authorID != uuid.Nil {
		history = s.store.AuthorHistory(authorID)
	}
	return scoring.PredictEngagement(post, history)
}

// PredictAttendance scores an upcoming event against organizer and venue
// history, anchored at the injected clock's current time.
func (s *Service) PredictAttendance(event domain.EventFeatures, organizerHistory, venueHistory []domain.EventStats) domain.AttendancePrediction {
	return scoring.PredictAttendance(s.clock.Now(), event, organizerHistory, venueHistory)
}
