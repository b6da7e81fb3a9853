package pattern

import (
	"testing"

	"github.com/verte-zerg/mindtiles/internal/model"
)

func TestLengthClamps(t *testing.T) {
	cases := []struct {
		level int
		want  int
	}{
		{-2, 3},
		{0, 3},
		{1, 4},
		{4, 7},
		{5, 8},
		{9, 8},
		{50, 8},
	}
	for _, tc := range cases {
		if got := Length(tc.level); got != tc.want {
			t.Fatalf("Length(%d) = %d, want %d", tc.level, got, tc.want)
		}
	}
}

func TestGenerateDrawsFromPalette(t *testing.T) {
	g := NewSeeded(7)
	palette := map[model.Color]struct{}{}
	for _, c := range model.Palette {
		palette[c] = struct{}{}
	}
	for level := 1; level <= 10; level++ {
		p := g.Generate(level)
		if len(p) != Length(level) {
			t.Fatalf("level %d pattern length = %d, want %d", level, len(p), Length(level))
		}
		for i, c := range p {
			if _, ok := palette[c]; !ok {
				t.Fatalf("level %d element %d is %q, not in palette", level, i, c)
			}
		}
	}
}

func TestGenerateNeverEmpty(t *testing.T) {
	g := NewSeeded(1)
	if p := g.Generate(-10); len(p) == 0 {
		t.Fatalf("defensive clamp produced an empty pattern")
	}
}
