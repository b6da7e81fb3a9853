// Package model defines shared data structures.
package model

import "math"

// UnsetBestTime marks a user profile with no recorded completion time yet.
// Best times only ever shrink, so any real time replaces it.
const UnsetBestTime = math.MaxInt32

// Color is one tile symbol in a pattern.
type Color string

// Palette is the fixed set of tile colors patterns are drawn from.
var Palette = []Color{"red", "blue", "green", "yellow", "purple", "orange"}

// Difficulty buckets levels by id.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
	DifficultyExpert Difficulty = "Expert"
)

// DifficultyFor returns the difficulty bucket for a level id.
func DifficultyFor(levelID int) Difficulty {
	switch {
	case levelID <= 3:
		return DifficultyEasy
	case levelID <= 6:
		return DifficultyMedium
	case levelID <= 9:
		return DifficultyHard
	default:
		return DifficultyExpert
	}
}

// Pattern is an ordered color sequence to memorize for one round.
type Pattern []Color

// Equal reports whether two patterns match element-wise in order.
func (p Pattern) Equal(other Pattern) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// UserStats holds derived profile statistics.
type UserStats struct {
	AverageTime     int
	BestTime        int
	AccuracyRate    int
	ImprovementRate int
}

// User is the local player profile. Mutated only by the progression ledger.
type User struct {
	ID           int64
	Username     string
	CurrentLevel int
	TotalScore   int
	GamesPlayed  int
	StreakDays   int
	Stats        UserStats
}

// Level is one entry of the level catalog.
// Unlocked and Completed only ever flip false to true; Score only grows.
// BestTime uses 0 as the "never completed" sentinel.
type Level struct {
	ID         int
	Name       string
	Difficulty Difficulty
	Unlocked   bool
	Completed  bool
	Score      int
	BestTime   int
}

// GameResult summarizes one finished game. Emitted exactly once per session
// and consumed exactly once by the progression ledger.
type GameResult struct {
	Score         int
	Level         int
	TimeUsed      int
	Accuracy      int
	RoundsReached int
}

// GameConfig holds the tunable game parameters.
type GameConfig struct {
	RoundSeconds     int
	RoundsPerGame    int
	Lives            int
	BreakSeconds     int
	GamesBeforeBreak int
}

// DefaultGameConfig returns the stock rules.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		RoundSeconds:     60,
		RoundsPerGame:    3,
		Lives:            3,
		BreakSeconds:     180,
		GamesBeforeBreak: 3,
	}
}

// GameRecord is one row of the durable game history.
type GameRecord struct {
	ID            int64
	PlayedAt      string
	Level         int
	Score         int
	TimeUsed      int
	Accuracy      int
	RoundsReached int
}
