// Package tui provides the Bubble Tea game interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/mindtiles/internal/engine"
	"github.com/verte-zerg/mindtiles/internal/model"
	"github.com/verte-zerg/mindtiles/internal/pattern"
	"github.com/verte-zerg/mindtiles/internal/session"
	"github.com/verte-zerg/mindtiles/internal/store"
)

type view int

const (
	viewPicker view = iota
	viewGame
	viewComplete
	viewBreak
)

const tileWidth = 8

// engineTimerMsg delivers an elapsed engine timer back to the session.
type engineTimerMsg struct {
	t engine.Timer
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	lockStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))

	tileStyles = map[model.Color]lipgloss.Style{
		"red":    lipgloss.NewStyle().Background(lipgloss.Color("#CF1322")).Foreground(lipgloss.Color("#FFFFFF")),
		"blue":   lipgloss.NewStyle().Background(lipgloss.Color("#1D39C4")).Foreground(lipgloss.Color("#FFFFFF")),
		"green":  lipgloss.NewStyle().Background(lipgloss.Color("#389E0D")).Foreground(lipgloss.Color("#FFFFFF")),
		"yellow": lipgloss.NewStyle().Background(lipgloss.Color("#D4B106")).Foreground(lipgloss.Color("#000000")),
		"purple": lipgloss.NewStyle().Background(lipgloss.Color("#531DAB")).Foreground(lipgloss.Color("#FFFFFF")),
		"orange": lipgloss.NewStyle().Background(lipgloss.Color("#D46B08")).Foreground(lipgloss.Color("#000000")),
	}
)

// Model implements the Bubble Tea game UI.
type Model struct {
	cfg    model.GameConfig
	coord  *session.Coordinator
	store  *store.Store
	gen    *pattern.Generator
	logger zerolog.Logger

	width  int
	height int

	view      view
	pickerIdx int

	sess          *engine.Session
	revealVisible bool
	flash         string
	timeBar       progress.Model

	lastResult    *model.GameResult
	breakRequired bool
	breakTimer    timer.Model
}

// NewModel constructs the game TUI model.
func NewModel(cfg model.GameConfig, coord *session.Coordinator, st *store.Store, gen *pattern.Generator, logger zerolog.Logger, startLevel int) *Model {
	m := &Model{
		cfg:     cfg,
		coord:   coord,
		store:   st,
		gen:     gen,
		logger:  logger,
		view:    viewPicker,
		timeBar: progress.New(progress.WithDefaultGradient()),
	}
	m.pickerIdx = 0
	for i, lvl := range coord.Levels() {
		if lvl.ID == startLevel {
			m.pickerIdx = i
			break
		}
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barWidth := msg.Width / 2
		if barWidth < 10 {
			barWidth = 10
		}
		m.timeBar.Width = barWidth
		return m, nil
	case engineTimerMsg:
		if m.sess == nil {
			return m, nil
		}
		return m, m.applyStep(m.sess.HandleTimer(msg.t))
	case timer.TickMsg, timer.StartStopMsg:
		var cmd tea.Cmd
		m.breakTimer, cmd = m.breakTimer.Update(msg)
		return m, cmd
	case timer.TimeoutMsg:
		if m.view == viewBreak {
			m.finishBreak()
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		if m.sess != nil {
			m.sess.Abandon()
		}
		return m, tea.Quit
	}

	switch m.view {
	case viewPicker:
		return m.handlePickerKey(key)
	case viewGame:
		return m.handleGameKey(key)
	case viewComplete:
		if key == "enter" {
			return m.leaveComplete()
		}
		if key == "q" {
			return m, tea.Quit
		}
	case viewBreak:
		if key == "s" {
			m.finishBreak()
			return m, nil
		}
	}
	return m, nil
}

func (m *Model) handlePickerKey(key string) (tea.Model, tea.Cmd) {
	levels := m.coord.Levels()
	switch key {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.pickerIdx > 0 {
			m.pickerIdx--
		}
	case "down", "j":
		if m.pickerIdx < len(levels)-1 {
			m.pickerIdx++
		}
	case "enter":
		// Locked levels are simply not startable.
		lvl := levels[m.pickerIdx]
		if !lvl.Unlocked {
			return m, nil
		}
		return m, m.startGame(lvl.ID)
	}
	return m, nil
}

func (m *Model) handleGameKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		m.sess.Abandon()
		return m, tea.Quit
	case "p":
		if m.sess.Paused() {
			return m, scheduleTimers(m.sess.Resume())
		}
		m.sess.Pause()
		return m, nil
	}
	if c, ok := colorForKey(key); ok {
		return m, m.applyStep(m.sess.Submit(c))
	}
	return m, nil
}

func colorForKey(key string) (model.Color, bool) {
	switch key {
	case "1":
		return "red", true
	case "2":
		return "blue", true
	case "3":
		return "green", true
	case "4":
		return "yellow", true
	case "5":
		return "purple", true
	case "6":
		return "orange", true
	}
	return "", false
}

func (m *Model) startGame(levelID int) tea.Cmd {
	sess, err := engine.New(levelID, m.cfg, m.gen)
	if err != nil {
		m.logger.Error().Err(err).Int("level", levelID).Msg("failed to create session")
		return nil
	}
	step, err := sess.Start()
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to start session")
		return nil
	}
	m.sess = sess
	m.flash = ""
	m.lastResult = nil
	m.view = viewGame
	return m.applyStep(step)
}

// applyStep renders an engine step into UI state and scheduled commands.
func (m *Model) applyStep(step engine.Step) tea.Cmd {
	if step.Revealed != nil {
		m.revealVisible = true
		m.flash = ""
	}
	if step.InputOpen {
		m.revealVisible = false
	}
	switch step.Outcome {
	case engine.OutcomeCorrect:
		m.flash = goodStyle.Render(fmt.Sprintf("Correct! +%d", step.RoundScore))
	case engine.OutcomeIncorrect:
		m.flash = badStyle.Render("Wrong pattern")
	}
	cmd := scheduleTimers(step.Timers)
	if step.Result != nil {
		m.finishGame(*step.Result)
	}
	return cmd
}

func scheduleTimers(timers []engine.Timer) tea.Cmd {
	if len(timers) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(timers))
	for _, t := range timers {
		t := t
		cmds = append(cmds, tea.Tick(t.After, func(time.Time) tea.Msg {
			return engineTimerMsg{t: t}
		}))
	}
	return tea.Batch(cmds...)
}

func (m *Model) finishGame(res model.GameResult) {
	breakRequired, err := m.coord.OnGameFinished(res)
	if err != nil {
		m.logger.Error().Err(err).Int("level", res.Level).Msg("failed to apply game result")
	}
	ctx := context.Background()
	if _, err := m.store.SaveProgress(ctx, *m.coord.User(), m.coord.Levels(), res); err != nil {
		m.logger.Error().Err(err).Msg("failed to save progress")
	}
	m.sess = nil
	m.lastResult = &res
	m.breakRequired = breakRequired
	m.view = viewComplete
}

func (m *Model) leaveComplete() (tea.Model, tea.Cmd) {
	res := m.lastResult
	m.advancePicker(res)
	if m.breakRequired {
		m.breakRequired = false
		m.view = viewBreak
		m.breakTimer = timer.New(time.Duration(m.coord.BreakSeconds()) * time.Second)
		return m, m.breakTimer.Init()
	}
	m.view = viewPicker
	return m, nil
}

// advancePicker moves the selection to the next unlocked level after a
// completed game, or stays on the played level.
func (m *Model) advancePicker(res *model.GameResult) {
	if res == nil {
		return
	}
	levels := m.coord.Levels()
	for i, lvl := range levels {
		if lvl.ID == res.Level+1 && lvl.Unlocked {
			m.pickerIdx = i
			return
		}
	}
	for i, lvl := range levels {
		if lvl.ID == res.Level {
			m.pickerIdx = i
			return
		}
	}
}

func (m *Model) finishBreak() {
	m.coord.OnBreakFinished()
	m.view = viewPicker
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.view {
	case viewPicker:
		content = m.viewPicker()
	case viewGame:
		content = m.viewGame()
	case viewComplete:
		content = m.viewComplete()
	case viewBreak:
		content = m.viewBreak()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) viewPicker() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("mindtiles — pattern memory"))
	b.WriteString("\n\n")
	for i, lvl := range m.coord.Levels() {
		cursor := "  "
		if i == m.pickerIdx {
			cursor = accentStyle.Render("> ")
		}
		line := fmt.Sprintf("Level %2d  %-20s %-6s", lvl.ID, lvl.Name, lvl.Difficulty)
		switch {
		case lvl.Completed:
			line += fmt.Sprintf("  best %d", lvl.Score)
		case !lvl.Unlocked:
			line = lockStyle.Render(line + "  locked")
		}
		b.WriteString(cursor + line + "\n")
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("↑/↓ select · enter play · q quit"))
	return b.String()
}

func (m *Model) viewGame() string {
	s := m.sess
	var b strings.Builder

	hearts := strings.Repeat("♥ ", s.Lives())
	header := fmt.Sprintf("Level %d · Round %d/%d · Score %d · Streak %d · %s",
		s.Level(), s.Round(), m.cfg.RoundsPerGame, s.Score(), s.Streak(), badStyle.Render(strings.TrimSpace(hearts)))
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n")
	pct := float64(s.TimeRemaining()) / float64(m.cfg.RoundSeconds)
	b.WriteString(fmt.Sprintf("%2ds %s\n\n", s.TimeRemaining(), m.timeBar.ViewAs(pct)))

	switch {
	case s.Paused():
		b.WriteString("Paused\n\n")
		b.WriteString(footerStyle.Render("p resume · q quit"))
	case m.revealVisible:
		b.WriteString("Memorize this pattern:\n\n")
		b.WriteString(renderTiles(s.CurrentPattern()))
		b.WriteString("\n")
	default:
		b.WriteString("Reproduce the pattern:\n\n")
		b.WriteString(renderTiles(s.Input()))
		b.WriteString("\n\n")
		b.WriteString(renderKeyLegend())
		b.WriteString("\n")
		if m.flash != "" {
			b.WriteString("\n" + m.flash + "\n")
		}
		b.WriteString("\n")
		b.WriteString(footerStyle.Render("1-6 colors · p pause · q quit"))
	}
	return b.String()
}

func renderTiles(colors []model.Color) string {
	if len(colors) == 0 {
		return dimStyle.Render(strings.Repeat("·", tileWidth))
	}
	tiles := make([]string, 0, len(colors))
	for _, c := range colors {
		tiles = append(tiles, renderTile(c))
	}
	return strings.Join(tiles, " ")
}

func renderTile(c model.Color) string {
	style, ok := tileStyles[c]
	if !ok {
		style = dimStyle
	}
	label := runewidth.FillRight(" "+string(c), tileWidth)
	return style.Render(label)
}

func renderKeyLegend() string {
	parts := make([]string, 0, len(model.Palette))
	for i, c := range model.Palette {
		swatch := tileStyles[c].Render("  ")
		parts = append(parts, fmt.Sprintf("%d %s", i+1, swatch))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) viewComplete() string {
	res := m.lastResult
	var b strings.Builder
	b.WriteString(titleStyle.Render("Game complete"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Level %d\n", res.Level))
	b.WriteString(fmt.Sprintf("Final score: %s\n", accentStyle.Render(fmt.Sprintf("%d", res.Score))))
	b.WriteString(fmt.Sprintf("Time used: %ds\n", res.TimeUsed))
	b.WriteString(fmt.Sprintf("Accuracy: %d%%\n", res.Accuracy))
	b.WriteString(fmt.Sprintf("Rounds reached: %d\n", res.RoundsReached))
	b.WriteString("\n")
	if m.breakRequired {
		b.WriteString(accentStyle.Render("Time for a break before the next game.") + "\n\n")
	}
	b.WriteString(footerStyle.Render("enter continue · q quit"))
	return b.String()
}

func (m *Model) viewBreak() string {
	total := time.Duration(m.coord.BreakSeconds()) * time.Second
	left := m.breakTimer.Timeout
	pct := 0.0
	if total > 0 {
		pct = float64(total-left) / float64(total)
	}
	mins := int(left.Seconds()) / 60
	secs := int(left.Seconds()) % 60
	var b strings.Builder
	b.WriteString(titleStyle.Render("Break time"))
	b.WriteString("\n\n")
	b.WriteString("Regular breaks keep focus sharp. Step away from the screen,\n")
	b.WriteString("stretch, or grab some water.\n\n")
	b.WriteString(fmt.Sprintf("%d:%02d %s\n\n", mins, secs, m.timeBar.ViewAs(pct)))
	b.WriteString(footerStyle.Render("s skip break"))
	return b.String()
}
