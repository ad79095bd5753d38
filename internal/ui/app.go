package ui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/copycat/internal/layout"
	"github.com/five82/copycat/internal/prefs"
	"github.com/five82/copycat/internal/state"
)

// Tab is one of the viewer's top-level pages.
type Tab int

const (
	TabPlasma Tab = iota
	TabKWin
	TabHelp
)

var tabNames = []string{"Plasma", "KWin", "Help"}

func (t Tab) String() string {
	return tabNames[t]
}

// Options configures the viewer.
type Options struct {
	Context   context.Context
	Store     *state.Store
	PollTick  time.Duration
	ThemeName string
	PrefsPath string
	Logger    *slog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	store     *state.Store
	prefsPath string
	pollTick  time.Duration
	logger    *slog.Logger

	keys  keyMap
	help  help.Model
	theme Theme

	tab      Tab
	width    int
	height   int
	ready    bool
	showHelp bool

	snapshot state.Snapshot
	selected int // index into the containment list

	detail viewport.Model // Plasma tab, right pane
	page   viewport.Model // KWin and Help tabs
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themeOrder[0]
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return Model{
		ctx:       ctx,
		store:     opts.Store,
		prefsPath: prefsPath,
		pollTick:  pollTick,
		logger:    logger,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     GetTheme(themeName),
		tab:       TabPlasma,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		m.refreshContent(false)
		return m, nil

	case tickMsg:
		var cmds []tea.Cmd
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		cmds = append(cmds, tickCmd(m.pollTick))
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case prefsSavedMsg:
		if msg.err != nil {
			m.logger.Warn("save prefs failed", "path", m.prefsPath, "error", msg.err)
		}
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.CycleTheme):
		return m, m.cycleTheme()
	case key.Matches(msg, m.keys.NextTab):
		m.switchTab(1)
	case key.Matches(msg, m.keys.PrevTab):
		m.switchTab(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Top):
		m.jump(false)
	case key.Matches(msg, m.keys.Bottom):
		m.jump(true)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.scrolledPane().HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.scrolledPane().HalfPageUp()
	}
	return m, nil
}

// cycleTheme switches to the next theme and returns the command that
// persists it.
func (m *Model) cycleTheme() tea.Cmd {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.refreshContent(false)
	return savePrefsCmd(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
}

func (m *Model) switchTab(delta int) {
	n := len(tabNames)
	m.tab = Tab((int(m.tab) + delta + n) % n)
	m.refreshContent(true)
}

// move changes the selected containment on the Plasma tab and scrolls the
// page on the others.
func (m *Model) move(delta int) {
	if m.tab != TabPlasma {
		if delta > 0 {
			m.page.ScrollDown(1)
		} else {
			m.page.ScrollUp(1)
		}
		return
	}
	n := len(m.containments())
	if n == 0 {
		return
	}
	next := min(max(m.selected+delta, 0), n-1)
	if next != m.selected {
		m.selected = next
		m.refreshContent(true)
	}
}

func (m *Model) jump(bottom bool) {
	if m.tab != TabPlasma {
		if bottom {
			m.page.GotoBottom()
		} else {
			m.page.GotoTop()
		}
		return
	}
	n := len(m.containments())
	if n == 0 {
		return
	}
	if bottom {
		m.selected = n - 1
	} else {
		m.selected = 0
	}
	m.refreshContent(true)
}

func (m *Model) scrolledPane() *viewport.Model {
	if m.tab == TabPlasma {
		return &m.detail
	}
	return &m.page
}

// applySnapshot installs a new snapshot, keeping the selection on the same
// containment id when it still exists.
func (m *Model) applySnapshot(snap state.Snapshot) {
	fresh := snap.Generation != m.snapshot.Generation
	var selectedID uint32
	prev, hadSelection := m.selectedContainment()
	if hadSelection {
		selectedID = prev.ID
	}

	m.snapshot = snap
	if !fresh {
		return
	}

	cs := m.containments()
	switch {
	case len(cs) == 0:
		m.selected = 0
	case hadSelection:
		m.selected = min(m.selected, len(cs)-1)
		for i, c := range cs {
			if c.ID == selectedID {
				m.selected = i
				break
			}
		}
	default:
		m.selected = 0
	}
	m.refreshContent(false)
}

func (m Model) containments() []layout.Containment {
	if m.snapshot.Layout == nil {
		return nil
	}
	return m.snapshot.Layout.Containments
}

func (m Model) selectedContainment() (layout.Containment, bool) {
	cs := m.containments()
	if m.selected < 0 || m.selected >= len(cs) {
		return layout.Containment{}, false
	}
	return cs[m.selected], true
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type prefsSavedMsg struct{ err error }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func savePrefsCmd(path string, p prefs.Prefs) tea.Cmd {
	return func() tea.Msg {
		return prefsSavedMsg{err: prefs.Save(path, p)}
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if err != nil && m.ctx.Err() != nil {
		// Cancelled from outside (signal); not a viewer failure.
		return nil
	}
	return err
}
