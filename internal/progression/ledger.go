// Package progression applies finished games to the durable player and
// level records. It is the only writer of User and Level state.
package progression

import (
	"fmt"

	"github.com/verte-zerg/mindtiles/internal/model"
)

// Apply folds one game result into the user profile and level catalog as a
// single logical update: score totals, the current-level pointer, best
// times, completion, and the unlock of the next level.
//
// A result for a level missing from the catalog is an invariant violation
// and returns an error with nothing applied.
func Apply(res model.GameResult, user *model.User, levels []model.Level) error {
	idx := -1
	for i := range levels {
		if levels[i].ID == res.Level {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("game result for unknown level %d", res.Level)
	}

	user.TotalScore += res.Score
	user.GamesPlayed++
	user.CurrentLevel = res.Level
	if res.TimeUsed < user.Stats.BestTime {
		user.Stats.BestTime = res.TimeUsed
	}

	lvl := &levels[idx]
	lvl.Completed = true
	if res.Score > lvl.Score {
		lvl.Score = res.Score
	}
	if lvl.BestTime == 0 || res.TimeUsed < lvl.BestTime {
		lvl.BestTime = res.TimeUsed
	}

	// Completing level k is the sole unlock mechanism for level k+1.
	for i := range levels {
		if levels[i].ID == res.Level+1 {
			levels[i].Unlocked = true
			break
		}
	}
	return nil
}
