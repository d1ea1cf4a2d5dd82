package scoring

import (
	"strings"
	"unicode"

	"github.com/abrilera/tangopulse/internal/domain"
)

// Classification thresholds on the normalized sentiment score.
const (
	positiveThreshold = 0.2
	negativeThreshold = -0.2
)

// AnalyzeSentiment classifies a single text against the fixed lexicons.
// The score is (positive-negative)/(positive+negative), exactly 0 when the
// text contains no sentiment-bearing words. Pure and idempotent.
func AnalyzeSentiment(text string) domain.SentimentResult {
	tokens := tokenize(text)

	var positive, negative int
	emotionCounts := map[string]int{}

	for _, tok := range tokens {
		if _, ok := positiveWords[tok]; ok {
			positive++
		}
		if _, ok := negativeWords[tok]; ok {
			negative++
		}
		for emotion, words := range emotionWords {
			if _, ok := words[tok]; ok {
				emotionCounts[emotion]++
			}
		}
	}

	score := 0.0
	if positive+negative > 0 {
		score = float64(positive-negative) / float64(positive+negative)
	}

	label := domain.SentimentNeutral
	switch {
	case score > positiveThreshold:
		label = domain.SentimentPositive
	case score < negativeThreshold:
		label = domain.SentimentNegative
	}

	return domain.SentimentResult{
		Score:         score,
		Label:         label,
		Confidence:    sentimentConfidence(len(tokens)),
		Emotions:      normalizeEmotions(emotionCounts),
		PositiveWords: positive,
		NegativeWords: negative,
	}
}

// AnalyzeSentimentBatch applies AnalyzeSentiment to each text independently.
func AnalyzeSentimentBatch(texts []string) []domain.SentimentResult {
	results := make([]domain.SentimentResult, len(texts))
	for i, text := range texts {
		results[i] = AnalyzeSentiment(text)
	}
	return results
}

// AverageSentiment returns the mean score across texts, 0 for an empty batch.
func AverageSentiment(texts []string) float64 {
	if len(texts) == 0 {
		return 0
	}
	total := 0.0
	for _, text := range texts {
		total += AnalyzeSentiment(text).Score
	}
	return total / float64(len(texts))
}

// tokenize lower-cases the text, strips punctuation and splits on whitespace.
func tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return r
		default:
			return -1
		}
	}, text)
	return strings.Fields(cleaned)
}

func sentimentConfidence(tokens int) float64 {
	switch {
	case tokens < 5:
		return 0.3
	case tokens < 15:
		return 0.6
	case tokens < 30:
		return 0.8
	default:
		return 0.9
	}
}

// normalizeEmotions divides every emotion count by the maximum count across
// all five emotions, floored at 1 to avoid dividing by zero.
func normalizeEmotions(counts map[string]int) domain.EmotionScores {
	max := 1
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	norm := func(emotion string) float64 {
		return float64(counts[emotion]) / float64(max)
	}
	return domain.EmotionScores{
		Joy:        norm("joy"),
		Sadness:    norm("sadness"),
		Anger:      norm("anger"),
		Fear:       norm("fear"),
		Excitement: norm("excitement"),
	}
}
