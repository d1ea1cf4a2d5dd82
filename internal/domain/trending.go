package domain

// Trend direction labels.
const (
	TrendRising    = "rising"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// TrendingTopic is one hashtag's activity summary within the observation
// window. Velocity is mentions per hour.
type TrendingTopic struct {
	Topic        string  `json:"topic"`
	Mentions     int     `json:"mentions"`
	Velocity     float64 `json:"velocity"`
	Engagement   int     `json:"engagement"`
	Participants int     `json:"participants"`
	Direction    string  `json:"direction"`
	Score        float64 `json:"score"`
}
