// Package scoring contains the pure score calculations.
package scoring

import "math"

// RoundScore computes the score for one correctly solved round.
// More remaining time and higher levels score more.
func RoundScore(timeRemaining, roundSeconds, level int) int {
	if roundSeconds <= 0 {
		return 0
	}
	return int(math.Floor(float64(timeRemaining) / float64(roundSeconds) * 100 * (1 + float64(level)*0.2)))
}

// FinalScore adds the streak bonus to the accumulated round scores.
func FinalScore(accumulated, finalStreak int) int {
	return accumulated + finalStreak*10
}

// Accuracy derives the percentage of the attempted tile volume covered by
// the trailing streak. A zero denominator yields 0 rather than an error.
func Accuracy(finalStreak, roundsAttempted, lastPatternLength int) int {
	den := roundsAttempted * lastPatternLength
	if den <= 0 {
		return 0
	}
	return int(math.Round(float64(finalStreak) / float64(den) * 100))
}
