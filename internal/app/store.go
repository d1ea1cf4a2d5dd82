package app

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/abrilera/tangopulse/internal/domain"
)

// authorHistoryLimit bounds how many recent posts per author feed the
// engagement baseline.
const authorHistoryLimit = 20

// PostStore retains recently-ingested posts in memory. Posts older than
// maxAge are pruned on ingest. State is process-local and non-durable; a
// restart empties the store, which is accepted.
type PostStore struct {
	clock  clockwork.Clock
	maxAge time.Duration

	mu    sync.Mutex
	posts []domain.Post // chronological by CreatedAt
}

// NewPostStore creates an empty store retaining posts up to maxAge old.
func NewPostStore(clock clockwork.Clock, maxAge time.Duration) *PostStore {
	return &PostStore{clock: clock, maxAge: maxAge}
}

// Add ingests posts, assigning IDs and timestamps where missing, and prunes
// anything past the retention age. Returns the number of posts added.
func (s *PostStore) Add(posts ...domain.Post) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	added := 0
	for _, p := range posts {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		s.posts = append(s.posts, p)
		added++
	}

	s.pruneLocked(now)
	return added
}

// Recent returns a copy of all retained posts.
func (s *PostStore) Recent() []domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(s.clock.Now())
	out := make([]domain.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// AuthorPosts returns the author's retained posts, oldest first.
func (s *PostStore) AuthorPosts(authorID uuid.UUID) []domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(s.clock.Now())
	var out []domain.Post
	for _, p := range s.posts {
		if p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	return out
}

// AuthorHistory returns performance samples for the author's most recent
// posts, capped at the engagement history window.
func (s *PostStore) AuthorHistory(authorID uuid.UUID) []domain.PostStats {
	posts := s.AuthorPosts(authorID)
	if len(posts) > authorHistoryLimit {
		posts = posts[len(posts)-authorHistoryLimit:]
	}

	history := make([]domain.PostStats, len(posts))
	for i, p := range posts {
		history[i] = p.Stats()
	}
	return history
}

// Len returns the number of retained posts.
func (s *PostStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

func (s *PostStore) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	kept := s.posts[:0]
	for _, p := range s.posts {
		if !p.CreatedAt.Before(cutoff) {
			kept = append(kept, p)
		}
	}
	s.posts = kept
}
