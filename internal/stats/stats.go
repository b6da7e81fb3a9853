// Package stats contains game-history calculations and reporting.
package stats

import (
	"math"
	"strings"

	"github.com/verte-zerg/mindtiles/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary aggregates the game history.
type Summary struct {
	Games       int
	TotalScore  int
	AvgScore    float64
	BestScore   int
	AvgAccuracy float64
	BestTime    int // 0 when no game finished under the clock
}

// Summarize folds the history into a Summary.
func Summarize(games []model.GameRecord) Summary {
	var s Summary
	s.Games = len(games)
	if s.Games == 0 {
		return s
	}
	bestTime := 0
	var accSum float64
	for _, g := range games {
		s.TotalScore += g.Score
		if g.Score > s.BestScore {
			s.BestScore = g.Score
		}
		accSum += float64(g.Accuracy)
		if g.TimeUsed > 0 && (bestTime == 0 || g.TimeUsed < bestTime) {
			bestTime = g.TimeUsed
		}
	}
	s.AvgScore = float64(s.TotalScore) / float64(s.Games)
	s.AvgAccuracy = accSum / float64(s.Games)
	s.BestTime = bestTime
	return s
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Tail returns at most the last n values.
func Tail(values []float64, n int) []float64 {
	if n <= 0 || n >= len(values) {
		return values
	}
	return values[len(values)-n:]
}
