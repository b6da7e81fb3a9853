package session

import (
	"testing"

	"github.com/verte-zerg/mindtiles/internal/model"
)

func newTestCoordinator() *Coordinator {
	user := &model.User{CurrentLevel: 1, Stats: model.UserStats{BestTime: model.UnsetBestTime}}
	levels := []model.Level{
		{ID: 1, Unlocked: true},
		{ID: 2},
		{ID: 3},
		{ID: 4},
	}
	return New(user, levels, model.DefaultGameConfig())
}

func TestBreakFiresOnEveryThirdGame(t *testing.T) {
	c := newTestCoordinator()
	res := model.GameResult{Score: 100, Level: 1, TimeUsed: 30}
	for game := 1; game <= 6; game++ {
		breakRequired, err := c.OnGameFinished(res)
		if err != nil {
			t.Fatalf("game %d: %v", game, err)
		}
		wantBreak := game%3 == 0
		if breakRequired != wantBreak {
			t.Fatalf("game %d: break = %v, want %v", game, breakRequired, wantBreak)
		}
		if wantBreak {
			if c.ConsecutiveGames() != 0 {
				t.Fatalf("game %d: counter = %d, want 0 after break", game, c.ConsecutiveGames())
			}
			if !c.OnBreak() {
				t.Fatalf("game %d: expected on-break state", game)
			}
			c.OnBreakFinished()
			if c.OnBreak() {
				t.Fatalf("game %d: break state not cleared", game)
			}
		} else if c.ConsecutiveGames() != game%3 {
			t.Fatalf("game %d: counter = %d, want %d", game, c.ConsecutiveGames(), game%3)
		}
	}
}

func TestOnGameFinishedAppliesProgression(t *testing.T) {
	c := newTestCoordinator()
	res := model.GameResult{Score: 180, Level: 1, TimeUsed: 25}
	if _, err := c.OnGameFinished(res); err != nil {
		t.Fatalf("on game finished: %v", err)
	}
	if c.User().TotalScore != 180 || c.User().GamesPlayed != 1 {
		t.Fatalf("user not updated: %+v", c.User())
	}
	lvl, ok := c.LevelByID(2)
	if !ok {
		t.Fatalf("level 2 missing")
	}
	if !lvl.Unlocked {
		t.Fatalf("level 2 not unlocked")
	}
}

func TestOnGameFinishedUnknownLevel(t *testing.T) {
	c := newTestCoordinator()
	res := model.GameResult{Score: 100, Level: 42, TimeUsed: 30}
	if _, err := c.OnGameFinished(res); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if c.ConsecutiveGames() != 0 {
		t.Fatalf("counter advanced on failed apply")
	}
}
