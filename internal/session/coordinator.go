// Package session paces play across games: it counts consecutive finished
// games and inserts a mandatory break after every third one.
package session

import (
	"github.com/verte-zerg/mindtiles/internal/model"
	"github.com/verte-zerg/mindtiles/internal/progression"
)

// Coordinator tracks pacing state for one play session. It owns the user
// and level records for the duration of the session; nothing else writes
// them.
type Coordinator struct {
	user   *model.User
	levels []model.Level

	gamesBeforeBreak int
	breakSeconds     int
	consecutiveGames int
	onBreak          bool
}

// New creates a coordinator over the loaded user and level records.
func New(user *model.User, levels []model.Level, cfg model.GameConfig) *Coordinator {
	return &Coordinator{
		user:             user,
		levels:           levels,
		gamesBeforeBreak: cfg.GamesBeforeBreak,
		breakSeconds:     cfg.BreakSeconds,
	}
}

// OnGameFinished applies the result to the durable records and reports
// whether a break must be interposed before the next game. The counter
// resets whenever a break fires.
func (c *Coordinator) OnGameFinished(res model.GameResult) (breakRequired bool, err error) {
	if err := progression.Apply(res, c.user, c.levels); err != nil {
		return false, err
	}
	c.consecutiveGames++
	if c.consecutiveGames >= c.gamesBeforeBreak {
		c.consecutiveGames = 0
		c.onBreak = true
		return true, nil
	}
	return false, nil
}

// OnBreakFinished clears the break state, whether the break timer elapsed
// or the player skipped it.
func (c *Coordinator) OnBreakFinished() {
	c.onBreak = false
}

// OnBreak reports whether the session is currently paused for a break.
func (c *Coordinator) OnBreak() bool { return c.onBreak }

// BreakSeconds returns the mandated break duration.
func (c *Coordinator) BreakSeconds() int { return c.breakSeconds }

// ConsecutiveGames returns games finished since the last break.
func (c *Coordinator) ConsecutiveGames() int { return c.consecutiveGames }

// User returns the session's user record.
func (c *Coordinator) User() *model.User { return c.user }

// Levels returns the session's level catalog.
func (c *Coordinator) Levels() []model.Level { return c.levels }

// LevelByID looks up a catalog entry.
func (c *Coordinator) LevelByID(id int) (model.Level, bool) {
	for _, lvl := range c.levels {
		if lvl.ID == id {
			return lvl, true
		}
	}
	return model.Level{}, false
}
