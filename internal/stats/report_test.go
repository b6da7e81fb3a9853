package stats

import (
	"strings"
	"testing"

	"github.com/verte-zerg/mindtiles/internal/model"
)

func TestRenderSummaryNoGames(t *testing.T) {
	var b strings.Builder
	if err := RenderSummary(&b, model.User{Username: "player"}, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(b.String(), "No games played yet.") {
		t.Fatalf("missing empty-history notice: %s", b.String())
	}
}

func TestRenderSummaryFormats(t *testing.T) {
	user := model.User{Username: "player", CurrentLevel: 2}
	games := []model.GameRecord{
		{Score: 100, TimeUsed: 40, Accuracy: 20},
		{Score: 200, TimeUsed: 30, Accuracy: 30},
	}
	var b strings.Builder
	if err := RenderSummary(&b, user, games); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := b.String()
	for _, want := range []string{"player (level 2)", "Games: 2", "Total score: 300", "Best score: 200", "Best time: 30s"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderLevelTable(t *testing.T) {
	levels := []model.Level{
		{ID: 1, Name: "Getting Started", Difficulty: model.DifficultyEasy, Unlocked: true, Completed: true, Score: 120, BestTime: 35},
		{ID: 2, Name: "Pattern Recognition", Difficulty: model.DifficultyEasy, Unlocked: true},
		{ID: 3, Name: "Memory Trail", Difficulty: model.DifficultyEasy},
	}
	var b strings.Builder
	if err := RenderLevelTable(&b, levels); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := b.String()
	for _, want := range []string{"Getting Started", "completed", "unlocked", "locked", "35s", "Easy"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}

func TestRenderScoreHistory(t *testing.T) {
	games := []model.GameRecord{
		{Score: 100}, {Score: 150}, {Score: 90}, {Score: 210},
	}
	var b strings.Builder
	if err := RenderScoreHistory(&b, games, 2, 80); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "Score History") {
		t.Fatalf("missing heading:\n%s", out)
	}
	if !strings.Contains(out, "Scores ") || !strings.Contains(out, "Trend  ") {
		t.Fatalf("missing series lines:\n%s", out)
	}
}
