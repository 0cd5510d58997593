package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/recera/netsketch/pkg/interaction"
	"github.com/recera/netsketch/pkg/topology"
)

// Layout constants. The palette is a fixed-width column on the left; the
// canvas takes the rest, minus one status row at the bottom.
const (
	paletteWidth = 22
	statusHeight = 1
)

// Options configures the editor session.
type Options struct {
	// ExportDir is where diagram exports are written.
	ExportDir string

	// GridStep is the background grid spacing in cells.
	GridStep int

	// ShowGrid toggles the background grid.
	ShowGrid bool

	// AccentColor highlights the selected device (hex).
	AccentColor string
}

// Model is the bubbletea model for the editor: the owned view state, the
// pointer controller driving it, and pure presentation concerns.
type Model struct {
	// Window dimensions
	width  int
	height int

	// Session state
	view *topology.ViewState
	ctrl *interaction.Controller

	// Palette
	catalog    []topology.Template
	paletteIdx int

	// Presentation
	opts      Options
	centered  bool
	showHelp  bool
	quitting  bool
	statusMsg string
}

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Add    key.Binding
	Delete key.Binding
	Export key.Binding
	Center key.Binding
	Help   key.Binding
	Quit   key.Binding
}

var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "palette up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "palette down"),
	),
	Add: key.NewBinding(
		key.WithKeys("enter", "a"),
		key.WithHelp("a", "add device"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "x", "backspace"),
		key.WithHelp("d", "delete selected"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export"),
	),
	Center: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "center view"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "q"),
		key.WithHelp("q", "quit"),
	),
}

// clearStatusMsg expires a transient status-bar message.
type clearStatusMsg struct{ at time.Time }

// NewModel creates an editor model around an explicitly constructed session
// state. The caller owns the ViewState; the model never reaches for globals.
func NewModel(view *topology.ViewState, opts Options) Model {
	if opts.GridStep <= 0 {
		opts.GridStep = 4
	}
	if opts.AccentColor == "" {
		opts.AccentColor = "#3b82f6"
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	return Model{
		view:    view,
		ctrl:    interaction.New(view),
		catalog: topology.Catalog(),
		opts:    opts,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Center the spawn point once, so freshly added devices land in the
		// middle of the canvas pane instead of far off-screen.
		if !m.centered {
			m.centered = true
			m.centerView()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case clearStatusMsg:
		m.statusMsg = ""
		return m, nil
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderEditor()
}

// canvasSize returns the dimensions of the canvas pane.
func (m Model) canvasSize() (w, h int) {
	w = m.width - paletteWidth
	if w < 1 {
		w = 1
	}
	h = m.height - statusHeight
	if h < 1 {
		h = 1
	}
	return w, h
}

// centerView sets the pan offset so the default spawn point sits in the
// middle of the canvas pane.
func (m *Model) centerView() {
	cw, ch := m.canvasSize()
	m.view.SetPanOffset(
		float64(cw/2-topology.DefaultSpawnX-interaction.DeviceHitWidth/2),
		float64(ch/2-topology.DefaultSpawnY-interaction.DeviceHitHeight/2),
	)
}

func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	return tea.Tick(4*time.Second, func(t time.Time) tea.Msg { return clearStatusMsg{at: t} })
}
