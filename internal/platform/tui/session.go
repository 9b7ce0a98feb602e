package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-tictactoe/internal/config"
	"github.com/vovakirdan/tui-tictactoe/internal/core"
	"github.com/vovakirdan/tui-tictactoe/internal/registry"
	"github.com/vovakirdan/tui-tictactoe/internal/storage"
)

type page int

const (
	pageMenu page = iota
	pageGame
	pageStats
)

// SessionModel manages the full flow of one terminal: menu, game and stats.
// It is the top-level model for SSH sessions and the local menu.
type SessionModel struct {
	id       string
	settings config.Variants
	config   core.RuntimeConfig
	recorder storage.Recorder
	source   ResultSource
	logger   *log.Logger

	page       page
	menu       MenuModel
	game       *GameModel
	scoreboard ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a session. recorder and source may be nil.
func NewSessionModel(settings config.Variants, cfg core.RuntimeConfig, recorder storage.Recorder, source ResultSource, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.Default()
	}
	id := uuid.NewString()
	return SessionModel{
		id:       id,
		settings: settings,
		config:   cfg,
		recorder: recorder,
		source:   source,
		logger:   logger.With("session", id[:8]),
		menu:     NewMenuModel(cfg.ScreenW, cfg.ScreenH),
	}
}

// ID identifies the session in logs.
func (m SessionModel) ID() string {
	return m.id
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.page {
	case pageGame:
		return m.updateGame(msg)
	case pageStats:
		return m.updateStats(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scoreboard = NewScoreboardModel(m.source, m.config.ScreenW, m.config.ScreenH)
		m.page = pageStats
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		selected := m.menu.Selected()
		v, err := registry.Create(selected.ID, m.settings)
		if err != nil {
			// Shouldn't happen since menu only shows registered variants
			m.logger.Error("could not create variant", "variant", selected.ID, "error", err)
			m.menu = NewMenuModel(m.config.ScreenW, m.config.ScreenH)
			return m, nil
		}
		game := NewGameModel(v, m.recorder, m.config, m.logger)
		m.game = &game
		m.page = pageGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		m.game = nil
		return m.toMenu()
	}
	return m, cmd
}

// updateStats handles updates when the scoreboard is open.
func (m SessionModel) updateStats(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.page = pageMenu
	m.menu = NewMenuModel(m.config.ScreenW, m.config.ScreenH)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.page {
	case pageGame:
		return m.game.View()
	case pageStats:
		return m.scoreboard.View()
	}
	return m.menu.View()
}

// RunSession runs the menu flow on the local terminal.
func RunSession(settings config.Variants, cfg core.RuntimeConfig, recorder storage.Recorder, source ResultSource, logger *log.Logger) error {
	p := tea.NewProgram(
		NewSessionModel(settings, cfg, recorder, source, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
