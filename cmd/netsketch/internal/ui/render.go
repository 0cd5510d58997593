package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/recera/netsketch/pkg/interaction"
)

// paletteTop is the canvas row of the first palette entry: the panel title
// and the separator line sit above it. Mouse hit testing depends on this.
const paletteTop = 2

// Style definitions
var (
	// Colors
	primaryColor   = lipgloss.Color("#3b82f6")
	secondaryColor = lipgloss.Color("#64748b")
	successColor   = lipgloss.Color("#10b981")
	mutedColor     = lipgloss.Color("#94a3b8")
	gridColor      = lipgloss.Color("#334155")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	selectedStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	gridStyle = lipgloss.NewStyle().
			Foreground(gridColor)

	deviceStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	statusOKStyle = lipgloss.NewStyle().
			Foreground(successColor)

	helpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)
)

// Cell styling classes for the canvas pane.
const (
	cellPlain = iota
	cellGrid
	cellDevice
	cellSelected
)

func (m Model) renderEditor() string {
	palette := m.renderPalette()
	canvas := m.renderCanvas()
	main := lipgloss.JoinHorizontal(lipgloss.Top, palette, canvas)
	return main + "\n" + m.renderStatus()
}

// renderPalette renders the fixed-width device catalog column.
func (m Model) renderPalette() string {
	_, h := m.canvasSize()

	lines := make([]string, 0, h)
	lines = append(lines, titleStyle.Render(" netsketch"))
	lines = append(lines, mutedStyle.Render(strings.Repeat("─", paletteWidth-1)))

	for i, tpl := range m.catalog {
		label := fmt.Sprintf(" %c %s", tpl.Icon.Glyph(), tpl.Name)
		if i == m.paletteIdx {
			lines = append(lines, selectedStyle.Render("▸"+label))
		} else {
			lines = append(lines, normalStyle.Render(" "+label))
		}
	}

	for len(lines) < h-1 {
		lines = append(lines, "")
	}
	lines = append(lines, mutedStyle.Render(" ? help"))

	col := lipgloss.NewStyle().Width(paletteWidth).MaxWidth(paletteWidth)
	for i := range lines {
		lines[i] = col.Render(lines[i])
	}
	return strings.Join(lines[:h], "\n")
}

// renderCanvas draws the device plane: background grid dots, then devices in
// z-order so later devices paint over earlier ones. World coordinates map to
// the pane via screen = world + panOffset.
func (m Model) renderCanvas() string {
	w, h := m.canvasSize()

	cells := make([][]rune, h)
	styles := make([][]uint8, h)
	for y := range cells {
		cells[y] = make([]rune, w)
		styles[y] = make([]uint8, w)
		for x := range cells[y] {
			cells[y][x] = ' '
		}
	}

	pan := m.view.PanOffset()
	if m.opts.ShowGrid {
		step := m.opts.GridStep
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				wx := x - int(math.Round(pan.X))
				wy := y - int(math.Round(pan.Y))
				if mod(wx, step) == 0 && mod(wy, step) == 0 {
					cells[y][x] = '·'
					styles[y][x] = cellGrid
				}
			}
		}
	}

	selected := m.view.SelectedID()
	for _, d := range m.view.Devices() {
		sx := int(math.Round(d.X + pan.X))
		sy := int(math.Round(d.Y + pan.Y))
		style := uint8(cellDevice)
		if d.ID == selected {
			style = cellSelected
		}
		drawDevice(cells, styles, sx, sy, d.Icon.Glyph(), d.Name, style)
	}

	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(m.opts.AccentColor)).Bold(true)
	var b strings.Builder
	for y := 0; y < h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		// Render runs of equally styled cells in one shot.
		x := 0
		for x < w {
			start := x
			st := styles[y][x]
			for x < w && styles[y][x] == st {
				x++
			}
			run := string(cells[y][start:x])
			switch st {
			case cellGrid:
				b.WriteString(gridStyle.Render(run))
			case cellDevice:
				b.WriteString(deviceStyle.Render(run))
			case cellSelected:
				b.WriteString(accent.Render(run))
			default:
				b.WriteString(run)
			}
		}
	}
	return b.String()
}

// drawDevice paints one device box into the cell grid, clipping at the pane
// edges. The box footprint matches the controller's hit region.
func drawDevice(cells [][]rune, styles [][]uint8, sx, sy int, glyph rune, name string, style uint8) {
	const bw = interaction.DeviceHitWidth
	const bh = interaction.DeviceHitHeight

	rows := [bh][]rune{
		[]rune("╭" + strings.Repeat("─", bw-2) + "╮"),
		deviceLabelRow(glyph, name),
		[]rune("╰" + strings.Repeat("─", bw-2) + "╯"),
	}

	for dy := 0; dy < bh; dy++ {
		y := sy + dy
		if y < 0 || y >= len(cells) {
			continue
		}
		for dx := 0; dx < bw; dx++ {
			x := sx + dx
			if x < 0 || x >= len(cells[y]) {
				continue
			}
			cells[y][x] = rows[dy][dx]
			styles[y][x] = style
		}
	}
}

// deviceLabelRow builds the middle row of a device box: glyph, space, then
// as much of the name as fits.
func deviceLabelRow(glyph rune, name string) []rune {
	const bw = interaction.DeviceHitWidth
	row := make([]rune, bw)
	for i := range row {
		row[i] = ' '
	}
	row[0] = '│'
	row[bw-1] = '│'
	row[1] = glyph
	label := []rune(name)
	for i := 0; i < len(label) && 3+i < bw-1; i++ {
		row[3+i] = label[i]
	}
	return row
}

// renderStatus renders the one-line status bar: gesture mode, selection, pan
// offset, device count, and any transient message.
func (m Model) renderStatus() string {
	pan := m.view.PanOffset()

	left := fmt.Sprintf(" %s │ %d devices │ pan %.0f,%.0f",
		m.ctrl.State(), m.view.DeviceCount(), pan.X, pan.Y)
	if id := m.view.SelectedID(); id != "" {
		if d, ok := m.view.Device(id); ok {
			left += " │ " + d.Name
		}
	}

	line := statusStyle.Render(left)
	if m.statusMsg != "" {
		line += statusOKStyle.Render("  " + m.statusMsg)
	}
	if lipgloss.Width(line) > m.width {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}
	return line
}

// renderHelp renders the keybinding overlay.
func (m Model) renderHelp() string {
	bindings := []struct{ keys, desc string }{
		{"↑/k, ↓/j", "move palette selection"},
		{"a / enter", "add selected device kind"},
		{"mouse drag on device", "move device"},
		{"mouse drag on canvas", "pan view"},
		{"click device", "select it"},
		{"d / x", "delete selected device"},
		{"e", "export diagram JSON"},
		{"c", "center view on spawn point"},
		{"?", "toggle this help"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keybindings") + "\n\n")
	for _, kb := range bindings {
		b.WriteString(fmt.Sprintf("%s  %s\n",
			selectedStyle.Render(fmt.Sprintf("%-22s", kb.keys)),
			normalStyle.Render(kb.desc)))
	}
	b.WriteString("\n" + mutedStyle.Render("Press ? to close"))

	box := helpBoxStyle.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// mod is a floored modulo so the grid repeats on both sides of the origin.
func mod(a, b int) int {
	if b <= 0 {
		return 1
	}
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}
