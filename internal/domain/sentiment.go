package domain

// Sentiment classification labels.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// EmotionScores holds the normalized intensity of each detected emotion,
// each in [0,1] relative to the strongest emotion in the text.
type EmotionScores struct {
	Joy        float64 `json:"joy"`
	Sadness    float64 `json:"sadness"`
	Anger      float64 `json:"anger"`
	Fear       float64 `json:"fear"`
	Excitement float64 `json:"excitement"`
}

// SentimentResult is the outcome of analyzing a single text.
type SentimentResult struct {
	Score         float64       `json:"score"`
	Label         string        `json:"label"`
	Confidence    float64       `json:"confidence"`
	Emotions      EmotionScores `json:"emotions"`
	PositiveWords int           `json:"positive_words"`
	NegativeWords int           `json:"negative_words"`
}
