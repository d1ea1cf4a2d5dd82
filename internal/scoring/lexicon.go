package scoring

// Fixed word lists backing the sentiment analyzer. Matching is exact on
// lower-cased, punctuation-stripped tokens.

var positiveWords = wordSet(
	"love", "loved", "amazing", "wonderful", "great", "beautiful", "fantastic",
	"excellent", "perfect", "happy", "joy", "enjoyed", "awesome", "brilliant",
	"magical", "unforgettable", "passionate", "elegant", "inspiring",
	"incredible", "best", "fun", "delightful", "stunning", "superb",
	"good", "nice", "lovely", "thanks", "grateful", "blessed",
)

var negativeWords = wordSet(
	"hate", "hated", "terrible", "awful", "horrible", "bad", "worst",
	"disappointing", "disappointed", "boring", "sad", "angry", "frustrating",
	"frustrated", "poor", "mediocre", "crowded", "rude", "expensive",
	"chaotic", "uncomfortable", "annoying", "waste", "ruined", "ugly",
)

var emotionWords = map[string]map[string]struct{}{
	"joy": wordSet(
		"happy", "joy", "joyful", "delighted", "cheerful", "smiling",
		"laughing", "celebrate", "celebration", "wonderful",
	),
	"sadness": wordSet(
		"sad", "crying", "tears", "miss", "missing", "lonely", "heartbroken",
		"grief", "melancholy", "nostalgia",
	),
	"anger": wordSet(
		"angry", "furious", "outraged", "annoyed", "irritated", "mad",
		"hate", "rage", "unacceptable",
	),
	"fear": wordSet(
		"afraid", "scared", "worried", "anxious", "nervous", "terrified",
		"panic", "dread", "intimidated",
	),
	"excitement": wordSet(
		"excited", "thrilled", "pumped", "hyped", "eager",
		"anticipation", "electrifying", "amazing", "incredible",
	),
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
