package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/recera/netsketch/pkg/topology"
)

// handleKeys handles keyboard input for the editor.
func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, DefaultKeyMap.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, DefaultKeyMap.Up):
		if m.paletteIdx > 0 {
			m.paletteIdx--
		}
		return m, nil

	case key.Matches(msg, DefaultKeyMap.Down):
		if m.paletteIdx < len(m.catalog)-1 {
			m.paletteIdx++
		}
		return m, nil

	case key.Matches(msg, DefaultKeyMap.Add):
		d := m.view.AddDevice(m.catalog[m.paletteIdx])
		m.view.Select(d.ID)
		return m, m.setStatus(fmt.Sprintf("Added %s", d.Name))

	case key.Matches(msg, DefaultKeyMap.Delete):
		id := m.view.SelectedID()
		if id == "" {
			return m, m.setStatus("Nothing selected")
		}
		d, _ := m.view.Device(id)
		m.view.DeleteDevice(id)
		return m, m.setStatus(fmt.Sprintf("Deleted %s", d.Name))

	case key.Matches(msg, DefaultKeyMap.Center):
		m.centerView()
		return m, nil

	case key.Matches(msg, DefaultKeyMap.Export):
		path, err := topology.Export(m.view, m.opts.ExportDir)
		if err != nil {
			return m, m.setStatus(fmt.Sprintf("Export failed: %v", err))
		}
		return m, m.setStatus(fmt.Sprintf("Exported %s", path))
	}

	return m, nil
}

// handleMouse routes mouse events: presses inside the palette change the
// palette selection, presses inside the canvas feed the pointer controller.
// Releases always reach the controller no matter where the pointer ended up,
// so a drag that leaves the canvas pane still terminates cleanly.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionRelease:
		m.ctrl.PointerUp()
		return m, nil

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if msg.X < paletteWidth {
			// Palette rows start below the panel title and border.
			row := msg.Y - paletteTop
			if row >= 0 && row < len(m.catalog) {
				m.paletteIdx = row
			}
			return m, nil
		}
		m.ctrl.PointerDown(float64(msg.X-paletteWidth), float64(msg.Y))
		return m, nil

	case tea.MouseActionMotion:
		// The controller ignores motion while idle, so hover events cost
		// nothing.
		m.ctrl.PointerMove(float64(msg.X-paletteWidth), float64(msg.Y))
		return m, nil
	}

	return m, nil
}
