package scoring

import (
	"math"
	"time"

	"github.com/abrilera/tangopulse/internal/domain"
)

// Baseline metrics used when an author has no posting history yet.
const (
	baselineLikes    = 10.0
	baselineComments = 2.0
	baselineShares   = 1.0
	baselineReach    = 50.0
)

// engagementHistoryWindow bounds how many recent posts feed the baseline.
const engagementHistoryWindow = 20

// PredictEngagement estimates how a draft post will perform, based on its
// features and the author's recent history. The baseline comes from
// historical averages (or platform defaults when history is empty) and is
// scaled by a content-feature multiplier and a posting-time multiplier.
func PredictEngagement(post domain.PostFeatures, history []domain.PostStats) domain.EngagementPrediction {
	samples := len(history)
	if len(history) > engagementHistoryWindow {
		history = history[len(history)-engagementHistoryWindow:]
	}

	likes, comments, shares, reach := historicalBaseline(history)

	feature := featureBoost(post)
	timing := timingBoost(post.Hour, post.Weekday)
	combined := feature * timing

	return domain.EngagementPrediction{
		Likes:           int(math.Round(likes * combined)),
		Comments:        int(math.Round(comments * combined)),
		Shares:          int(math.Round(shares * combined)),
		Reach:           int(math.Round(reach * combined)),
		Confidence:      engagementConfidence(samples),
		Recommendations: engagementRecommendations(post, combined),
	}
}

func historicalBaseline(history []domain.PostStats) (likes, comments, shares, reach float64) {
	if len(history) == 0 {
		return baselineLikes, baselineComments, baselineShares, baselineReach
	}

	n := float64(len(history))
	for _, s := range history {
		likes += float64(s.Likes)
		comments += float64(s.Comments)
		shares += float64(s.Shares)
		reach += float64(s.Reach)
	}
	return likes / n, comments / n, shares / n, reach / n
}

func featureBoost(post domain.PostFeatures) float64 {
	boost := 1.0

	if post.HasImage {
		boost *= 1.5
	}
	if post.HasVideo {
		boost *= 2.0
	}

	switch {
	case post.HashtagCount >= 3 && post.HashtagCount <= 5:
		boost *= 1.3
	case post.HashtagCount > 5:
		boost *= 0.9
	}

	boost *= 1 + 0.1*float64(post.MentionCount)

	switch {
	case post.Length >= 100 && post.Length <= 300:
		boost *= 1.2
	case post.Length > 500:
		boost *= 0.8
	}

	return boost
}

func timingBoost(hour int, weekday time.Weekday) float64 {
	boost := 1.0

	switch {
	case hour >= 12 && hour <= 14, hour >= 19 && hour <= 21:
		boost *= 1.4
	case hour >= 2 && hour <= 6:
		boost *= 0.5
	}

	if weekday == time.Saturday || weekday == time.Sunday {
		boost *= 1.2
	}

	return boost
}

func engagementConfidence(samples int) float64 {
	switch {
	case samples == 0:
		return 0.3
	case samples < 10:
		return 0.5
	case samples < 50:
		return 0.7
	default:
		return 0.9
	}
}

func engagementRecommendations(post domain.PostFeatures, combined float64) []string {
	var recs []string

	if !post.HasImage && !post.HasVideo {
		recs = append(recs, "Add an image or video to significantly increase engagement")
	}
	switch {
	case post.HashtagCount < 3:
		recs = append(recs, "Use 3-5 relevant hashtags to improve discoverability")
	case post.HashtagCount > 5:
		recs = append(recs, "Reduce hashtag count; more than 5 dilutes engagement")
	}
	switch {
	case post.Length < 100:
		recs = append(recs, "Longer posts (100-300 characters) tend to perform better")
	case post.Length > 500:
		recs = append(recs, "Consider shortening the post; very long posts lose readers")
	}
	if !peakHour(post.Hour) {
		recs = append(recs, "Post between 12:00-14:00 or 19:00-21:00 for peak visibility")
	}

	switch {
	case combined < 1.0:
		recs = append(recs, "This post may underperform your average; consider the suggestions above")
	case combined > 1.5:
		recs = append(recs, "This post is well optimized for engagement")
	}

	return recs
}

func peakHour(hour int) bool {
	return (hour >= 12 && hour <= 14) || (hour >= 19 && hour <= 21)
}
