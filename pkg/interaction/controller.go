// Package interaction implements the pointer state machine that drives the
// canvas: pressing on a device starts a drag, pressing on empty canvas starts
// a pan, releasing ends either. The controller is independent of any event
// source; the TUI feeds it screen coordinates, tests feed it numbers.
package interaction

import "github.com/recera/netsketch/pkg/topology"

// State is the current pointer gesture.
type State int

const (
	// Idle means no gesture is active.
	Idle State = iota
	// Dragging means a device is tracking the pointer.
	Dragging
	// Panning means the canvas offset is tracking the pointer.
	Panning
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Panning:
		return "panning"
	default:
		return "idle"
	}
}

// Device footprint used for hit testing, in logical units. Matches the box
// the renderer draws: glyph row plus label row, a fixed width.
const (
	DeviceHitWidth  = 12
	DeviceHitHeight = 3
)

// Controller interprets pointer events against a ViewState. Drag position is
// anchor-based: the offset between pointer and device at press time is
// preserved on every move, so the device never jumps under the cursor. Pan is
// delta-based: each move adds the pointer delta since the previous move to
// the pan offset.
type Controller struct {
	view *topology.ViewState

	state      State
	dragID     string
	dragOffset topology.Offset
	lastPan    topology.Offset
}

// New returns a controller in the Idle state driving the given view.
func New(view *topology.ViewState) *Controller {
	return &Controller{view: view}
}

// State returns the current gesture state.
func (c *Controller) State() State {
	return c.state
}

// DeviceAt returns the topmost device whose footprint contains the given
// screen point under the current pan offset.
func (c *Controller) DeviceAt(x, y float64) (topology.Device, bool) {
	pan := c.view.PanOffset()
	wx, wy := x-pan.X, y-pan.Y
	devs := c.view.Devices()
	// Later devices render on top, so scan back to front.
	for i := len(devs) - 1; i >= 0; i-- {
		d := devs[i]
		if wx >= d.X && wx < d.X+DeviceHitWidth && wy >= d.Y && wy < d.Y+DeviceHitHeight {
			return d, true
		}
	}
	return topology.Device{}, false
}

// PointerDown begins a gesture. Over a device it enters Dragging, records the
// drag anchor, and selects the device. Over empty canvas it enters Panning
// and clears the selection. A press while already Dragging is ignored; a
// second button must not demote a drag into a pan.
func (c *Controller) PointerDown(x, y float64) {
	if c.state == Dragging {
		return
	}
	if d, ok := c.DeviceAt(x, y); ok {
		pan := c.view.PanOffset()
		c.state = Dragging
		c.dragID = d.ID
		c.dragOffset = topology.Offset{X: x - d.X - pan.X, Y: y - d.Y - pan.Y}
		c.view.Select(d.ID)
		return
	}
	c.state = Panning
	c.lastPan = topology.Offset{X: x, Y: y}
	c.view.ClearSelection()
}

// PointerMove advances the active gesture. In Idle it does nothing.
func (c *Controller) PointerMove(x, y float64) {
	switch c.state {
	case Dragging:
		pan := c.view.PanOffset()
		c.view.MoveDevice(c.dragID, x-c.dragOffset.X-pan.X, y-c.dragOffset.Y-pan.Y)
	case Panning:
		pan := c.view.PanOffset()
		c.view.SetPanOffset(pan.X+x-c.lastPan.X, pan.Y+y-c.lastPan.Y)
		c.lastPan = topology.Offset{X: x, Y: y}
	}
}

// PointerUp ends whatever gesture is active. Release events arrive here no
// matter where the pointer ended up, so a fast drag that leaves the canvas
// cannot strand the controller in an active state.
func (c *Controller) PointerUp() {
	c.state = Idle
	c.dragID = ""
	c.dragOffset = topology.Offset{}
	c.lastPan = topology.Offset{}
}
