package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/recera/netsketch/pkg/topology"
)

func newTestModel(t *testing.T) (Model, *topology.ViewState) {
	t.Helper()
	view := topology.NewViewState()
	m := NewModel(view, Options{ExportDir: t.TempDir(), ShowGrid: true})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model), view
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModel_AddAndDeleteViaKeys(t *testing.T) {
	m, view := newTestModel(t)

	updated, _ := m.Update(keyPress('a'))
	m = updated.(Model)
	if view.DeviceCount() != 1 {
		t.Fatalf("Expected 1 device after add, got %d", view.DeviceCount())
	}
	if view.SelectedID() == "" {
		t.Error("Expected the new device to be selected")
	}

	updated, _ = m.Update(keyPress('d'))
	m = updated.(Model)
	if view.DeviceCount() != 0 {
		t.Errorf("Expected 0 devices after delete, got %d", view.DeviceCount())
	}
	_ = m
}

func TestModel_PaletteNavigation(t *testing.T) {
	m, view := newTestModel(t)

	// Move down twice and add: the third catalog entry spawns.
	for i := 0; i < 2; i++ {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = updated.(Model)
	}
	updated, _ := m.Update(keyPress('a'))
	m = updated.(Model)

	devs := view.Devices()
	if len(devs) != 1 || devs[0].Type != topology.Catalog()[2].Type {
		t.Errorf("Expected a %q device, got %+v", topology.Catalog()[2].Type, devs)
	}

	// Clicking a palette row jumps the selection.
	updated, _ = m.Update(tea.MouseMsg{
		X: 3, Y: paletteTop + 5,
		Action: tea.MouseActionPress, Button: tea.MouseButtonLeft,
	})
	m = updated.(Model)
	if m.paletteIdx != 5 {
		t.Errorf("Expected palette index 5 after click, got %d", m.paletteIdx)
	}
}

func TestModel_MouseDragMovesDevice(t *testing.T) {
	m, view := newTestModel(t)

	updated, _ := m.Update(keyPress('a'))
	m = updated.(Model)
	d := view.Devices()[0]
	pan := view.PanOffset()

	// Screen position of the device's top-left corner inside the canvas
	// pane, then translated to terminal coordinates by the palette width.
	sx := int(d.X+pan.X) + paletteWidth
	sy := int(d.Y + pan.Y)

	press := tea.MouseMsg{X: sx + 1, Y: sy + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	updated, _ = m.Update(press)
	m = updated.(Model)

	move := tea.MouseMsg{X: sx + 7, Y: sy + 4, Action: tea.MouseActionMotion}
	updated, _ = m.Update(move)
	m = updated.(Model)

	got := view.Devices()[0]
	if got.X != d.X+6 || got.Y != d.Y+3 {
		t.Errorf("Expected device at (%v,%v), got (%v,%v)", d.X+6, d.Y+3, got.X, got.Y)
	}

	release := tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionRelease}
	updated, _ = m.Update(release)
	m = updated.(Model)

	// A motion after release moves nothing.
	updated, _ = m.Update(tea.MouseMsg{X: 50, Y: 20, Action: tea.MouseActionMotion})
	_ = updated.(Model)
	after := view.Devices()[0]
	if after != got {
		t.Errorf("Device moved after release: %+v -> %+v", got, after)
	}
}

func TestModel_MousePanOnEmptyCanvas(t *testing.T) {
	m, view := newTestModel(t)
	before := view.PanOffset()

	// Press far from any device, then drag.
	press := tea.MouseMsg{X: 110, Y: 35, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	updated, _ := m.Update(press)
	m = updated.(Model)
	updated, _ = m.Update(tea.MouseMsg{X: 100, Y: 30, Action: tea.MouseActionMotion})
	_ = updated.(Model)

	after := view.PanOffset()
	if after.X != before.X-10 || after.Y != before.Y-5 {
		t.Errorf("Expected pan (%v,%v), got (%v,%v)", before.X-10, before.Y-5, after.X, after.Y)
	}
}

func TestModel_ViewRenders(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(keyPress('a'))
	m = updated.(Model)

	out := m.View()
	if !strings.Contains(out, "netsketch") {
		t.Error("View missing the palette title")
	}
	if !strings.Contains(out, "Router 1") {
		t.Error("View missing the placed device label")
	}
	if !strings.Contains(out, "idle") {
		t.Error("Status bar missing the gesture state")
	}

	// Help overlay replaces the editor.
	updated, _ = m.Update(keyPress('?'))
	m = updated.(Model)
	if !strings.Contains(m.View(), "Keybindings") {
		t.Error("Help overlay not rendered")
	}
}
