// Package topology holds the data model for a network sketch: the catalog of
// placeable device kinds, placed Device instances, and the ViewState that
// owns them. All mutation goes through ViewState methods; callers never write
// fields directly.
package topology

import "fmt"

// DeviceType identifies a kind of placeable network element.
type DeviceType string

const (
	TypeRouter   DeviceType = "router"
	TypeSwitch   DeviceType = "switch"
	TypeServer   DeviceType = "server"
	TypePC       DeviceType = "pc"
	TypeLaptop   DeviceType = "laptop"
	TypePhone    DeviceType = "phone"
	TypeCloud    DeviceType = "cloud"
	TypeDatabase DeviceType = "database"
)

// Icon is the symbolic glyph reference stored on a Device. It is derived from
// the device type at creation and resolved to a renderable rune by Glyph.
type Icon string

const (
	IconRouter   Icon = "router"
	IconSwitch   Icon = "switch"
	IconServer   Icon = "server"
	IconPC       Icon = "pc"
	IconLaptop   Icon = "laptop"
	IconPhone    Icon = "phone"
	IconCloud    Icon = "cloud"
	IconDatabase Icon = "database"
)

// Glyph resolves an icon to its terminal glyph. The mapping is a closed
// enumeration; unknown icons fall back to a generic marker rather than
// failing, matching the silent-tolerance stance of the rest of the model.
func (i Icon) Glyph() rune {
	switch i {
	case IconRouter:
		return '◆'
	case IconSwitch:
		return '▣'
	case IconServer:
		return '▤'
	case IconPC:
		return '□'
	case IconLaptop:
		return '▭'
	case IconPhone:
		return '▯'
	case IconCloud:
		return '☁'
	case IconDatabase:
		return '◫'
	default:
		return '●'
	}
}

// Device is a placed network element on the canvas. Position is in the
// unbounded logical plane, independent of the current pan offset. The id is
// assigned at creation and never changes.
type Device struct {
	ID   string     `json:"id"`
	Type DeviceType `json:"type"`
	Name string     `json:"name"`
	Icon Icon       `json:"icon"`
	X    float64    `json:"x"`
	Y    float64    `json:"y"`
}

// Template is a catalog entry used to spawn new devices.
type Template struct {
	Type DeviceType
	Name string
	Icon Icon
}

// Catalog returns the fixed set of spawnable device kinds in palette order.
func Catalog() []Template {
	return []Template{
		{Type: TypeRouter, Name: "Router", Icon: IconRouter},
		{Type: TypeSwitch, Name: "Switch", Icon: IconSwitch},
		{Type: TypeServer, Name: "Server", Icon: IconServer},
		{Type: TypePC, Name: "PC", Icon: IconPC},
		{Type: TypeLaptop, Name: "Laptop", Icon: IconLaptop},
		{Type: TypePhone, Name: "Phone", Icon: IconPhone},
		{Type: TypeCloud, Name: "Cloud", Icon: IconCloud},
		{Type: TypeDatabase, Name: "Database", Icon: IconDatabase},
	}
}

func (d Device) String() string {
	return fmt.Sprintf("%s[%s] (%.0f,%.0f)", d.Name, d.ID, d.X, d.Y)
}
