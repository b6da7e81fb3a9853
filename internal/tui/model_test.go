package tui

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/mindtiles/internal/model"
	"github.com/verte-zerg/mindtiles/internal/pattern"
	"github.com/verte-zerg/mindtiles/internal/session"
)

func newPickerModel() *Model {
	user := &model.User{CurrentLevel: 1, Stats: model.UserStats{BestTime: model.UnsetBestTime}}
	levels := []model.Level{
		{ID: 1, Name: "Getting Started", Difficulty: model.DifficultyEasy, Unlocked: true, Completed: true, Score: 120},
		{ID: 2, Name: "Pattern Recognition", Difficulty: model.DifficultyEasy, Unlocked: true},
		{ID: 3, Name: "Memory Trail", Difficulty: model.DifficultyEasy},
	}
	cfg := model.DefaultGameConfig()
	coord := session.New(user, levels, cfg)
	return NewModel(cfg, coord, nil, pattern.NewSeeded(1), zerolog.Nop(), 2)
}

func TestColorForKey(t *testing.T) {
	for i, want := range model.Palette {
		key := string(rune('1' + i))
		got, ok := colorForKey(key)
		if !ok || got != want {
			t.Fatalf("colorForKey(%q) = %q, want %q", key, got, want)
		}
	}
	if _, ok := colorForKey("7"); ok {
		t.Fatalf("unexpected color for key 7")
	}
}

func TestPickerViewListsLevels(t *testing.T) {
	m := newPickerModel()
	out := m.View()
	for _, want := range []string{"Getting Started", "Pattern Recognition", "Memory Trail", "locked", "best 120"} {
		if !strings.Contains(out, want) {
			t.Fatalf("picker missing %q:\n%s", want, out)
		}
	}
}

func TestPickerStartsOnRequestedLevel(t *testing.T) {
	m := newPickerModel()
	if m.pickerIdx != 1 {
		t.Fatalf("picker index = %d, want 1", m.pickerIdx)
	}
}

func TestLockedLevelNotStartable(t *testing.T) {
	m := newPickerModel()
	m.pickerIdx = 2 // locked level
	_, cmd := m.handlePickerKey("enter")
	if cmd != nil {
		t.Fatalf("locked level produced a start command")
	}
	if m.view != viewPicker {
		t.Fatalf("view changed for a locked level")
	}
}
