// Package scoring implements the heuristic content scorers: engagement
// prediction, event attendance prediction, sentiment analysis, and trending
// topic detection.
//
// Engagement, attendance and sentiment are pure functions of their inputs.
// The trend detector keeps a bounded per-topic velocity history, making it
// the one scorer whose output depends on call order. None of the scorers
// perform I/O, and all of them degrade to a low-confidence default rather
// than failing on empty input.
package scoring
