package scoring

import (
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/abrilera/tangopulse/internal/domain"
)

const (
	// DefaultTrendingWindow is used when the caller does not specify one.
	DefaultTrendingWindow = 24 * time.Hour

	maxTrendingTopics  = 10
	maxVelocityHistory = 10
)

var hashtagPattern = regexp.MustCompile(`#\w+`)

// ExtractHashtags returns all #hashtag tokens in the text, lower-cased and
// in order of appearance. Duplicates are preserved.
func ExtractHashtags(text string) []string {
	matches := hashtagPattern.FindAllString(text, -1)
	for i, m := range matches {
		matches[i] = strings.ToLower(m)
	}
	return matches
}

// velocityPoint is one recorded observation of a topic's mention rate.
type velocityPoint struct {
	velocity   float64
	recordedAt time.Time
}

// TrendDetector finds trending hashtags in a set of recent posts. It keeps a
// bounded velocity history per topic so successive calls can classify a
// topic's direction; identical post sets can therefore classify differently
// on consecutive calls, since each call records what the next one compares
// against.
type TrendDetector struct {
	clock clockwork.Clock

	mu      sync.Mutex
	history map[string][]velocityPoint
}

// NewTrendDetector creates a detector with empty history.
func NewTrendDetector(clock clockwork.Clock) *TrendDetector {
	return &TrendDetector{
		clock:   clock,
		history: make(map[string][]velocityPoint),
	}
}

// Detect scores every hashtag mentioned in posts created within the window
// and returns the top topics by score, descending. A non-positive window
// falls back to DefaultTrendingWindow. Each call appends the observed
// velocities to the per-topic history.
func (d *TrendDetector) Detect(posts []domain.Post, window time.Duration) []domain.TrendingTopic {
	if window <= 0 {
		window = DefaultTrendingWindow
	}

	now := d.clock.Now()
	cutoff := now.Add(-window)
	windowHours := window.Hours()

	type topicGroup struct {
		mentions   int
		engagement int
		authors    map[uuid.UUID]struct{}
	}
	groups := make(map[string]*topicGroup)

	for _, post := range posts {
		if post.CreatedAt.Before(cutoff) || post.CreatedAt.After(now) {
			continue
		}
		seen := make(map[string]struct{})
		for _, tag := range ExtractHashtags(post.Content) {
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}

			g, ok := groups[tag]
			if !ok {
				g = &topicGroup{authors: make(map[uuid.UUID]struct{})}
				groups[tag] = g
			}
			g.mentions++
			g.engagement += post.Engagement()
			g.authors[post.AuthorID] = struct{}{}
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	topics := make([]domain.TrendingTopic, 0, len(groups))
	for tag, g := range groups {
		velocity := float64(g.mentions) / windowHours
		direction := d.direction(tag, velocity)

		topics = append(topics, domain.TrendingTopic{
			Topic:        tag,
			Mentions:     g.mentions,
			Velocity:     velocity,
			Engagement:   g.engagement,
			Participants: len(g.authors),
			Direction:    direction,
			Score:        d.score(velocity, g.engagement, len(g.authors), direction),
		})

		d.record(tag, velocity, now)
	}

	sort.Slice(topics, func(i, j int) bool {
		if topics[i].Score != topics[j].Score {
			return topics[i].Score > topics[j].Score
		}
		return topics[i].Topic < topics[j].Topic
	})

	if len(topics) > maxTrendingTopics {
		topics = topics[:maxTrendingTopics]
	}
	return topics
}

// direction compares the current velocity against the most recent recorded
// one. A topic never seen before is always rising.
func (d *TrendDetector) direction(tag string, velocity float64) string {
	points := d.history[tag]
	if len(points) == 0 {
		return domain.TrendRising
	}

	previous := points[len(points)-1].velocity
	switch {
	case velocity > previous*1.5:
		return domain.TrendRising
	case velocity < previous*0.7:
		return domain.TrendDeclining
	default:
		return domain.TrendStable
	}
}

func (d *TrendDetector) score(velocity float64, engagement, participants int, direction string) float64 {
	score := 0.4*min1(velocity/10) + 0.3*min1(float64(engagement)/100) + 0.2*min1(float64(participants)/50)

	switch direction {
	case domain.TrendRising:
		score += 0.1
	case domain.TrendDeclining:
		score /= 2
	}
	return score
}

func (d *TrendDetector) record(tag string, velocity float64, now time.Time) {
	points := append(d.history[tag], velocityPoint{velocity: velocity, recordedAt: now})
	if len(points) > maxVelocityHistory {
		points = points[len(points)-maxVelocityHistory:]
	}
	d.history[tag] = points
}

func min1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
