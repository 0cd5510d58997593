package topology

import (
	"fmt"
	"time"
)

// DefaultSpawnX and DefaultSpawnY are the logical coordinates every newly
// added device is placed at. New devices stack; the user drags them apart.
const (
	DefaultSpawnX = 100
	DefaultSpawnY = 100
)

// Offset is a 2D translation or point in the logical plane.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ViewState is the single source of truth for one editing session: the placed
// devices (slice order is z-order for rendering), the current selection, and
// the canvas pan offset. It is constructed explicitly at session start and
// owned by whoever drives the session; there is no package-level instance.
//
// ViewState is not safe for concurrent use. The editor runs all mutations on
// one event loop, which is the intended discipline.
type ViewState struct {
	devices  []Device
	selected string
	pan      Offset
	lastID   int64
}

// NewViewState returns an empty session state.
func NewViewState() *ViewState {
	return &ViewState{}
}

// Devices returns the placed devices in z-order. The returned slice is a copy;
// mutating it does not affect the state.
func (s *ViewState) Devices() []Device {
	out := make([]Device, len(s.devices))
	copy(out, s.devices)
	return out
}

// DeviceCount returns the number of placed devices.
func (s *ViewState) DeviceCount() int {
	return len(s.devices)
}

// Device returns the device with the given id, if present.
func (s *ViewState) Device(id string) (Device, bool) {
	for _, d := range s.devices {
		if d.ID == id {
			return d, true
		}
	}
	return Device{}, false
}

// SelectedID returns the selected device id, or "" when nothing is selected.
func (s *ViewState) SelectedID() string {
	return s.selected
}

// PanOffset returns the current canvas pan offset.
func (s *ViewState) PanOffset() Offset {
	return s.pan
}

// AddDevice spawns a device from the template at the default spawn point and
// appends it to the z-order. The name is the template name followed by a
// per-type ordinal: adding a third router while two routers exist yields
// "Router 3". Returns the new device.
func (s *ViewState) AddDevice(tpl Template) Device {
	n := 0
	for _, d := range s.devices {
		if d.Type == tpl.Type {
			n++
		}
	}
	d := Device{
		ID:   s.newID(tpl.Type),
		Type: tpl.Type,
		Name: fmt.Sprintf("%s %d", tpl.Name, n+1),
		Icon: tpl.Icon,
		X:    DefaultSpawnX,
		Y:    DefaultSpawnY,
	}
	s.devices = append(s.devices, d)
	return d
}

// MoveDevice sets the position of the device with the given id. Unknown ids
// are ignored. Coordinates are unbounded; no clamping is applied.
func (s *ViewState) MoveDevice(id string, x, y float64) {
	for i := range s.devices {
		if s.devices[i].ID == id {
			s.devices[i].X = x
			s.devices[i].Y = y
			return
		}
	}
}

// DeleteDevice removes the device with the given id and clears the selection.
// The selection is cleared even when a different device was selected; callers
// that want to keep an unrelated selection must re-select afterwards.
func (s *ViewState) DeleteDevice(id string) {
	for i := range s.devices {
		if s.devices[i].ID == id {
			s.devices = append(s.devices[:i], s.devices[i+1:]...)
			break
		}
	}
	s.selected = ""
}

// Select marks the device with the given id as selected. The id is not
// validated against the device list; callers pass ids they obtained from
// this state.
func (s *ViewState) Select(id string) {
	s.selected = id
}

// ClearSelection removes any selection.
func (s *ViewState) ClearSelection() {
	s.selected = ""
}

// SetPanOffset overwrites the pan offset absolutely.
func (s *ViewState) SetPanOffset(x, y float64) {
	s.pan = Offset{X: x, Y: y}
}

// newID builds a session-unique id from the device type and the creation
// timestamp. The monotonic guard keeps ids unique even when two devices are
// created within the same clock tick.
func (s *ViewState) newID(t DeviceType) string {
	ts := time.Now().UnixNano()
	if ts <= s.lastID {
		ts = s.lastID + 1
	}
	s.lastID = ts
	return fmt.Sprintf("%s-%d", t, ts)
}
