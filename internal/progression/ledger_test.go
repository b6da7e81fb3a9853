package progression

import (
	"testing"

	"github.com/verte-zerg/mindtiles/internal/model"
)

func freshLevels() []model.Level {
	levels := make([]model.Level, 0, 3)
	for id := 1; id <= 3; id++ {
		levels = append(levels, model.Level{ID: id, Unlocked: id == 1})
	}
	return levels
}

func freshUser() model.User {
	return model.User{
		CurrentLevel: 1,
		Stats:        model.UserStats{BestTime: model.UnsetBestTime},
	}
}

func TestApplyUpdatesUserAndLevel(t *testing.T) {
	user := freshUser()
	levels := freshLevels()
	res := model.GameResult{Score: 150, Level: 1, TimeUsed: 42, Accuracy: 25, RoundsReached: 3}
	if err := Apply(res, &user, levels); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if user.TotalScore != 150 || user.GamesPlayed != 1 || user.CurrentLevel != 1 {
		t.Fatalf("user not updated: %+v", user)
	}
	if user.Stats.BestTime != 42 {
		t.Fatalf("best time = %d, want 42", user.Stats.BestTime)
	}
	lvl := levels[0]
	if !lvl.Completed || lvl.Score != 150 || lvl.BestTime != 42 {
		t.Fatalf("level not updated: %+v", lvl)
	}
}

func TestApplyUnlocksOnlyNextLevel(t *testing.T) {
	user := freshUser()
	levels := freshLevels()
	res := model.GameResult{Score: 100, Level: 1, TimeUsed: 30}
	if err := Apply(res, &user, levels); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !levels[1].Unlocked {
		t.Fatalf("level 2 not unlocked")
	}
	if levels[1].Completed {
		t.Fatalf("level 2 marked completed")
	}
	if levels[2].Unlocked {
		t.Fatalf("level 3 unlocked out of order")
	}
}

func TestApplyLastLevelHasNoSuccessor(t *testing.T) {
	user := freshUser()
	levels := freshLevels()
	levels[2].Unlocked = true
	res := model.GameResult{Score: 100, Level: 3, TimeUsed: 30}
	if err := Apply(res, &user, levels); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !levels[2].Completed {
		t.Fatalf("last level not completed")
	}
}

func TestApplyKeepsBestScoreAndTime(t *testing.T) {
	user := freshUser()
	levels := freshLevels()
	first := model.GameResult{Score: 200, Level: 1, TimeUsed: 30}
	if err := Apply(first, &user, levels); err != nil {
		t.Fatalf("apply: %v", err)
	}
	worse := model.GameResult{Score: 120, Level: 1, TimeUsed: 50}
	if err := Apply(worse, &user, levels); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if levels[0].Score != 200 {
		t.Fatalf("best score regressed to %d", levels[0].Score)
	}
	if levels[0].BestTime != 30 {
		t.Fatalf("best time regressed to %d", levels[0].BestTime)
	}
	if user.TotalScore != 320 {
		t.Fatalf("total score = %d, want 320", user.TotalScore)
	}
	better := model.GameResult{Score: 90, Level: 1, TimeUsed: 20}
	if err := Apply(better, &user, levels); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if levels[0].BestTime != 20 {
		t.Fatalf("best time = %d, want 20", levels[0].BestTime)
	}
	if user.Stats.BestTime != 20 {
		t.Fatalf("user best time = %d, want 20", user.Stats.BestTime)
	}
}

func TestApplyZeroSentinelBestTime(t *testing.T) {
	user := freshUser()
	levels := freshLevels()
	// BestTime 0 means "never completed", not a zero-second run.
	res := model.GameResult{Score: 100, Level: 1, TimeUsed: 55}
	if err := Apply(res, &user, levels); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if levels[0].BestTime != 55 {
		t.Fatalf("sentinel best time not replaced: %d", levels[0].BestTime)
	}
}

func TestApplyCurrentLevelFollowsPlayedLevel(t *testing.T) {
	user := freshUser()
	user.CurrentLevel = 3
	levels := freshLevels()
	res := model.GameResult{Score: 100, Level: 1, TimeUsed: 30}
	if err := Apply(res, &user, levels); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if user.CurrentLevel != 1 {
		t.Fatalf("current level = %d, want 1 (repeat attempts move the pointer)", user.CurrentLevel)
	}
}

func TestApplyUnknownLevelFails(t *testing.T) {
	user := freshUser()
	levels := freshLevels()
	res := model.GameResult{Score: 100, Level: 99, TimeUsed: 30}
	if err := Apply(res, &user, levels); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if user.GamesPlayed != 0 || user.TotalScore != 0 {
		t.Fatalf("user mutated on failed apply: %+v", user)
	}
}
