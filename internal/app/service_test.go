package app

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrilera/tangopulse/internal/domain"
	"github.com/abrilera/tangopulse/internal/scoring"
)

func newTestService(t *testing.T) (*Service, clockwork.Clock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	store := NewPostStore(clock, 7*24*time.Hour)
	trends := scoring.NewTrendDetector(clock)
	return NewService(store, trends, clock), clock
}

func TestService_PredictEngagement_UsesStoredHistory(t *testing.T) {
	svc, _ := newTestService(t)

	author := uuid.New()
	svc.IngestPosts([]domain.Post{
		{AuthorID: author, Likes: 100, Comments: 10, Shares: 5, Reach: 500},
	})

	post := domain.PostFeatures{Hour: 9, Weekday: time.Monday}
	prediction := svc.PredictEngagement(post, author, nil)

	assert.Equal(t, 100, prediction.Likes, "baseline comes from the stored history")
	assert.Equal(t, 0.5, prediction.Confidence)
}

func TestService_PredictEngagement_ExplicitHistoryWins(t *testing.T) {
	svc, _ := newTestService(t)

	author := uuid.New()
	svc.IngestPosts([]domain.Post{{AuthorID: author, Likes: 100}})

	post := domain.PostFeatures{Hour: 9, Weekday: time.Monday}
	explicit := []domain.PostStats{{Likes: 4, Comments: 2, Shares: 1, Reach: 10}}
	prediction := svc.PredictEngagement(post, author, explicit)

	assert.Equal(t, 4, prediction.Likes)
}

func TestService_PredictEngagement_UnknownAuthorDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	post := domain.PostFeatures{Hour: 9, Weekday: time.Monday}
	prediction := svc.PredictEngagement(post, uuid.Nil, nil)

	assert.Equal(t, 10, prediction.Likes)
	assert.Equal(t, 0.3, prediction.Confidence)
}

func TestService_TrendingTopics(t *testing.T) {
	svc, clock := newTestService(t)

	svc.IngestPosts([]domain.Post{
		{AuthorID: uuid.New(), Content: "great #milonga tonight", CreatedAt: clock.Now().Add(-time.Hour)},
		{AuthorID: uuid.New(), Content: "see you at the #milonga", CreatedAt: clock.Now().Add(-2 * time.Hour)},
	})

	topics := svc.TrendingTopics(24 * time.Hour)

	require.Len(t, topics, 1)
	assert.Equal(t, "#milonga", topics[0].Topic)
	assert.Equal(t, 2, topics[0].Mentions)
	assert.Equal(t, domain.TrendRising, topics[0].Direction)
}

func TestService_PredictAttendance_AnchorsOnClock(t *testing.T) {
	svc, clock := newTestService(t)

	// Two days of lead time triggers the short-notice penalty.
	event := domain.EventFeatures{
		EventType: "milonga",
		Price:     20,
		StartsAt:  clock.Now().Add(48 * time.Hour),
	}
	soon := svc.PredictAttendance(event, nil, nil)

	event.StartsAt = clock.Now().Add(30 * 24 * time.Hour)
	normal := svc.PredictAttendance(event, nil, nil)

	assert.Less(t, soon.Attendance, normal.Attendance)
}
