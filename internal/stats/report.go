// Package stats contains game-history calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/verte-zerg/mindtiles/internal/model"
)

const fallbackWidth = 80

// TerminalWidth returns the stdout width, or a fixed fallback when stdout
// is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackWidth
	}
	return width
}

// RenderSummary prints the profile header and history summary.
func RenderSummary(w io.Writer, user model.User, games []model.GameRecord) error {
	s := Summarize(games)
	if s.Games == 0 {
		_, err := fmt.Fprintln(w, "No games played yet.")
		return err
	}
	bestTime := "—"
	if s.BestTime > 0 {
		bestTime = fmt.Sprintf("%ds", s.BestTime)
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Player: %s (level %d)", user.Username, user.CurrentLevel),
		fmt.Sprintf("Games: %d", s.Games),
		fmt.Sprintf("Total score: %d", s.TotalScore),
		fmt.Sprintf("Avg score: %.1f", s.AvgScore),
		fmt.Sprintf("Best score: %d", s.BestScore),
		fmt.Sprintf("Avg accuracy: %.1f%%", s.AvgAccuracy),
		fmt.Sprintf("Best time: %s", bestTime),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderLevelTable prints the catalog with progress for each level.
func RenderLevelTable(w io.Writer, levels []model.Level) error {
	if len(levels) == 0 {
		_, err := fmt.Fprintln(w, "No levels found.")
		return err
	}
	headers := []string{"Level", "Name", "Difficulty", "Status", "Best Score", "Best Time"}
	rows := make([][]string, 0, len(levels))
	for _, lvl := range levels {
		status := "locked"
		switch {
		case lvl.Completed:
			status = "completed"
		case lvl.Unlocked:
			status = "unlocked"
		}
		bestTime := "—"
		if lvl.BestTime > 0 {
			bestTime = fmt.Sprintf("%ds", lvl.BestTime)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", lvl.ID),
			lvl.Name,
			string(lvl.Difficulty),
			status,
			fmt.Sprintf("%d", lvl.Score),
			bestTime,
		})
	}
	if _, err := fmt.Fprintln(w, "Levels"); err != nil {
		return err
	}
	rightAlign := map[int]bool{0: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderScoreHistory prints a score sparkline with a moving average,
// trimmed to the terminal width.
func RenderScoreHistory(w io.Writer, games []model.GameRecord, window, totalWidth int) error {
	if len(games) == 0 {
		return nil
	}
	scores := make([]float64, len(games))
	for i, g := range games {
		scores[i] = float64(g.Score)
	}
	smoothed := MovingAverage(scores, window)

	labelWidth := len("Trend  ")
	plotWidth := totalWidth - labelWidth
	if plotWidth < 10 {
		plotWidth = 10
	}
	if _, err := fmt.Fprintln(w, "Score History"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Scores %s\n", Sparkline(Tail(scores, plotWidth))); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Trend  %s\n", Sparkline(Tail(smoothed, plotWidth))); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
