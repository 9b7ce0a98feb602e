package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tictactoe/internal/core"
	"github.com/vovakirdan/tui-tictactoe/internal/registry"
	"github.com/vovakirdan/tui-tictactoe/internal/rules"
	"github.com/vovakirdan/tui-tictactoe/internal/session"
	"github.com/vovakirdan/tui-tictactoe/internal/storage"
	"github.com/vovakirdan/tui-tictactoe/internal/variants"
)

const boardTop = 3 // first screen row used by panels

// GameModel runs one variant: it maps keys to cell activations and variant
// commands, drives the clock of timed variants and records the result once
// a game ends.
type GameModel struct {
	variant    registry.Variant
	recorder   storage.Recorder
	config     core.RuntimeConfig
	logger     *log.Logger
	keys       *KeyMapper
	help       help.Model
	input      textinput.Model
	screen     *core.Screen
	cursor     cursor
	message    string
	started    time.Time
	tickEpoch  uint64
	saved      bool
	standalone bool // quit the program instead of returning to a menu
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model. recorder may be nil.
func NewGameModel(v registry.Variant, recorder storage.Recorder, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	if logger == nil {
		logger = log.Default()
	}
	ti := textinput.New()
	ti.Placeholder = "2,3 or center"
	ti.CharLimit = 16
	ti.Width = 20
	if _, ok := v.(registry.TextEntry); ok {
		ti.Focus()
	}

	return GameModel{
		variant:  v,
		recorder: recorder,
		config:   cfg,
		logger:   logger,
		keys:     NewKeyMapper(),
		help:     help.New(),
		input:    ti,
		screen:   core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-4, 1)),
		cursor:   cursor{x: 1, y: 1},
	}
}

// Init starts a fresh game.
func (m GameModel) Init() tea.Cmd {
	m.variant.Reset(m.config)
	m.logger.Info("game started", "variant", m.variant.ID(), "session", m.variant.Session().ID())
	if _, ok := m.variant.(registry.TextEntry); ok {
		return textinput.Blink
	}
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-4, 1))
		m.help.Width = msg.Width
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	if m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if cmd, ok := m.handleText(msg); ok {
		return m, cmd
	}

	panels := m.variant.Panels()
	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil
	case core.ActionUp:
		m.cursor = m.cursor.move(0, -1, panels)
	case core.ActionDown:
		m.cursor = m.cursor.move(0, 1, panels)
	case core.ActionLeft:
		m.cursor = m.cursor.move(-1, 0, panels)
	case core.ActionRight:
		m.cursor = m.cursor.move(1, 0, panels)
	case core.ActionPlace:
		if t, ok := m.cursor.target(panels); ok {
			m.report(m.variant.Activate(t))
		}
	case core.ActionNewGame:
		m.newGame(false)
	case core.ActionResetAll:
		m.newGame(true)
	default:
		err := m.variant.Perform(msg.String())
		if errors.Is(err, variants.ErrUnknownCommand) {
			switch m.keys.MapPanelKey(msg) {
			case core.ActionNextPanel:
				m.cursor = m.cursor.jump(1, panels)
			case core.ActionPrevPanel:
				m.cursor = m.cursor.jump(-1, panels)
			}
			return m, nil
		}
		m.report(err)
	}
	return m, m.settle()
}

// handleMouse moves the cursor to a clicked cell and places there.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	panels := m.variant.Panels()
	rects := layoutPanels(panels, 2, boardTop, m.screen.Width()-2)
	c, ok := hit(panels, rects, msg.X, msg.Y)
	if !ok {
		return m, nil
	}
	m.cursor = c
	if t, ok := c.target(panels); ok {
		m.report(m.variant.Activate(t))
	}
	return m, m.settle()
}

// handleText routes keys to the coordinate input of text-entry variants.
// It reports whether the key was consumed.
func (m *GameModel) handleText(msg tea.KeyMsg) (tea.Cmd, bool) {
	te, ok := m.variant.(registry.TextEntry)
	if !ok || m.variant.Session().Over() {
		return nil, false
	}
	switch msg.Type {
	case tea.KeyEnter:
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return nil, false
		}
		m.input.Reset()
		m.report(te.Submit(text))
		return m.settle(), true
	case tea.KeyRunes, tea.KeySpace, tea.KeyBackspace:
		if m.input.Value() == "" && m.reserved(msg.String()) {
			return nil, false
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd, true
	}
	return nil, false
}

// reserved reports whether a key keeps its game meaning while the
// coordinate input is empty.
func (m *GameModel) reserved(k string) bool {
	switch k {
	case "q", "n", "N", " ":
		return true
	}
	for _, c := range m.variant.Commands() {
		if c.Key == k {
			return true
		}
	}
	return false
}

// report shows an error from the variant on the status line.
func (m *GameModel) report(err error) {
	m.message = ""
	if err == nil {
		return
	}
	m.message = err.Error()
	if reason, ok := rules.ReasonOf(err); ok {
		m.message = reason.String()
	}
	m.logger.Debug("action rejected", "variant", m.variant.ID(), "error", err)
}

func (m *GameModel) newGame(all bool) {
	if all {
		m.variant.ResetAll()
	} else {
		m.variant.Reset(m.config)
	}
	m.message = ""
	m.saved = false
	m.started = time.Time{}
	m.input.Reset()
	m.cursor = m.cursor.clamp(m.variant.Panels())
	m.logger.Info("game started", "variant", m.variant.ID(), "session", m.variant.Session().ID())
}

// settle records a finished game and keeps the clock loop in step with the
// variant's clock.
func (m *GameModel) settle() tea.Cmd {
	sess := m.variant.Session()
	if m.started.IsZero() && sess.Phase() != session.Setup {
		m.started = time.Now()
	}
	if sess.Over() {
		m.saveResult()
		return nil
	}
	return m.syncClock()
}

func (m *GameModel) syncClock() tea.Cmd {
	c, ok := m.variant.(registry.Clocked)
	if !ok || m.variant.Session().Over() {
		return nil
	}
	e := c.Epoch()
	if e == m.tickEpoch {
		return nil
	}
	m.tickEpoch = e
	if !c.Running() {
		return nil
	}
	return tickCmd(m.config.TickInterval(), e)
}

// handleTick counts down the active player's clock.
func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	c, ok := m.variant.(registry.Clocked)
	if !ok || msg.Epoch != m.tickEpoch {
		return m, nil
	}
	c.Tick(msg.Epoch, m.config.TickInterval())
	if m.variant.Session().Over() {
		m.saveResult()
		return m, nil
	}
	if c.Epoch() != m.tickEpoch {
		return m, m.syncClock()
	}
	if !c.Running() {
		return m, nil
	}
	return m, tickCmd(m.config.TickInterval(), msg.Epoch)
}

// saveResult records the finished game once.
func (m *GameModel) saveResult() {
	if m.saved {
		return
	}
	m.saved = true
	if m.recorder == nil {
		return
	}

	sess := m.variant.Session()
	r := storage.Result{
		ID:      sess.ID(),
		Variant: m.variant.ID(),
		Outcome: outcome(sess.Result()),
		Moves:   len(sess.History()),
	}
	if !m.started.IsZero() {
		r.Duration = int(time.Since(m.started).Seconds())
	}
	if w, ok := sess.Winner(); ok {
		r.Winner = w.Symbol
	}
	if err := m.recorder.Record(context.Background(), r); err != nil {
		m.logger.Error("could not save result", "variant", r.Variant, "error", err)
	}
}

func outcome(r session.Result) string {
	switch r {
	case session.Win:
		return "win"
	case session.Timeout:
		return "timeout"
	default:
		return "draw"
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.draw()

	dir := filepath.Join(os.Getenv("HOME"), ".tictactoe", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.variant.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.message = "screenshot saved to " + path
}

// draw renders the board and side information into the screen buffer.
func (m *GameModel) draw() {
	s := m.screen
	s.Clear()
	s.DrawTextColor(1, 0, m.variant.Title(), core.ColorBrightWhite)
	s.DrawTextColor(2+len([]rune(m.variant.Title())), 0, "· "+m.variant.Description(), core.ColorGray)

	panels := m.variant.Panels()
	m.cursor = m.cursor.clamp(panels)
	rects := layoutPanels(panels, 2, boardTop, s.Width()-2)
	drawPanels(s, panels, rects, m.cursor)

	y := boardBottom(rects, boardTop) + 1
	status := m.variant.Status()
	width := 0
	for _, line := range status {
		width = max(width, len([]rune(line)))
	}
	frame := core.NewRect(1, y, width+4, len(status)+2)
	frameColor := core.ColorGray
	if m.variant.Session().Over() {
		frameColor = core.ColorBrightGreen
	}
	s.DrawBox(frame, frameColor)
	inner := frame.Inset(1)
	for i, line := range status {
		s.DrawText(inner.X+1, inner.Y+i, line)
	}
	y = frame.Bottom()

	if cmds := m.variant.Commands(); len(cmds) > 0 {
		parts := make([]string, len(cmds))
		for i, c := range cmds {
			parts[i] = fmt.Sprintf("[%s] %s", c.Key, c.Help)
		}
		y++
		s.DrawTextColor(2, y, strings.Join(parts, "  "), core.ColorCyan)
		y++
	}
	if m.message != "" {
		s.DrawTextColor(2, y, m.message, core.ColorRed)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.draw()

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	if te, ok := m.variant.(registry.TextEntry); ok && !m.variant.Session().Over() {
		m.input.Prompt = te.Prompt() + " "
		b.WriteString("  " + m.input.View())
	}
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).PaddingLeft(2)
	b.WriteString(helpStyle.Render(m.help.View(m.keys.Keys())))
	return b.String()
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single variant until the player quits.
func Run(v registry.Variant, recorder storage.Recorder, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewGameModel(v, recorder, cfg, logger)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
