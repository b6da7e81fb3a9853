package scoring

import "testing"

func TestRoundScoreFormula(t *testing.T) {
	cases := []struct {
		remaining int
		duration  int
		level     int
		want      int
	}{
		{60, 60, 1, 120}, // full time, level 1: 100 * 1.2
		{30, 60, 1, 60},
		{60, 60, 5, 200}, // 100 * 2.0
		{0, 60, 9, 0},
		{45, 60, 2, 105}, // 75 * 1.4
	}
	for _, tc := range cases {
		if got := RoundScore(tc.remaining, tc.duration, tc.level); got != tc.want {
			t.Fatalf("RoundScore(%d, %d, %d) = %d, want %d", tc.remaining, tc.duration, tc.level, got, tc.want)
		}
	}
}

func TestRoundScoreMonotonic(t *testing.T) {
	for remaining := 1; remaining <= 60; remaining++ {
		if RoundScore(remaining, 60, 3) < RoundScore(remaining-1, 60, 3) {
			t.Fatalf("score decreased with more remaining time at %d", remaining)
		}
	}
	for level := 2; level <= 10; level++ {
		if RoundScore(30, 60, level) < RoundScore(30, 60, level-1) {
			t.Fatalf("score decreased with higher level at %d", level)
		}
	}
}

func TestFinalScoreAddsStreakBonus(t *testing.T) {
	// Level 5 game, round scores 80/85/90, final streak 3.
	if got := FinalScore(80+85+90, 3); got != 285 {
		t.Fatalf("FinalScore = %d, want 285", got)
	}
	if got := FinalScore(0, 0); got != 0 {
		t.Fatalf("FinalScore(0, 0) = %d, want 0", got)
	}
}

func TestAccuracy(t *testing.T) {
	if got := Accuracy(3, 3, 4); got != 25 {
		t.Fatalf("Accuracy(3, 3, 4) = %d, want 25", got)
	}
	if got := Accuracy(2, 3, 3); got != 22 {
		t.Fatalf("Accuracy(2, 3, 3) = %d, want 22", got)
	}
	// Zero denominators never divide.
	if got := Accuracy(3, 0, 4); got != 0 {
		t.Fatalf("Accuracy with zero rounds = %d, want 0", got)
	}
	if got := Accuracy(3, 3, 0); got != 0 {
		t.Fatalf("Accuracy with zero pattern length = %d, want 0", got)
	}
}
