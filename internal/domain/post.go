package domain

import (
	"time"

	"github.com/google/uuid"
)

// Post is a single published post as ingested from the platform feed.
type Post struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	Comments  int       `json:"comments"`
	Shares    int       `json:"shares"`
	Reach     int       `json:"reach"`
	CreatedAt time.Time `json:"created_at"`
}

// Engagement returns the combined interaction count of the post.
func (p Post) Engagement() int {
	return p.Likes + p.Comments + p.Shares
}

// PostFeatures describes a draft post for engagement prediction.
// Hour and Weekday refer to the intended publication slot.
type PostFeatures struct {
	HasImage     bool         `json:"has_image"`
	HasVideo     bool         `json:"has_video"`
	HashtagCount int          `json:"hashtag_count"`
	MentionCount int          `json:"mention_count"`
	Length       int          `json:"length"`
	Hour         int          `json:"hour"`
	Weekday      time.Weekday `json:"weekday"`
}

// PostStats is one historical sample of how a published post performed.
type PostStats struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
	Reach    int `json:"reach"`
}

// Stats projects an ingested post onto its performance sample.
func (p Post) Stats() PostStats {
	return PostStats{Likes: p.Likes, Comments: p.Comments, Shares: p.Shares, Reach: p.Reach}
}

// EngagementPrediction is the outcome of an engagement scoring call.
type EngagementPrediction struct {
	Likes           int      `json:"likes"`
	Comments        int      `json:"comments"`
	Shares          int      `json:"shares"`
	Reach           int      `json:"reach"`
	Confidence      float64  `json:"confidence"`
	Recommendations []string `json:"recommendations"`
}
