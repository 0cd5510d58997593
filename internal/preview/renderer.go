// Package preview renders exported diagrams to SVG and serves them over HTTP
// with live reload. It consumes the export format; it never feeds anything
// back into the editor.
package preview

import (
	"fmt"
	"html"
	"strings"

	"github.com/recera/netsketch/pkg/interaction"
	"github.com/recera/netsketch/pkg/topology"
)

// Pixel size of one logical canvas cell. The editor's logical plane is cell
// based, so the SVG keeps the same footprint ratio the terminal shows.
const (
	cellW = 10
	cellH = 18
)

// RenderOptions configures the SVG output.
type RenderOptions struct {
	Width           int    // default 1280
	Height          int    // default 800
	GridStep        int    // grid spacing in cells, default 4; 0 keeps default, negative disables
	BackgroundColor string // default "#0b0e14"
	DeviceColor     string // default "#6ea8fe"
	LabelColor      string // default "#eaeef3"
	GridColor       string // default "#1c2430"
}

func (o *RenderOptions) withDefaults() RenderOptions {
	d := RenderOptions{
		Width:           1280,
		Height:          800,
		GridStep:        4,
		BackgroundColor: "#0b0e14",
		DeviceColor:     "#6ea8fe",
		LabelColor:      "#eaeef3",
		GridColor:       "#1c2430",
	}
	if o == nil {
		return d
	}
	if o.Width > 0 {
		d.Width = o.Width
	}
	if o.Height > 0 {
		d.Height = o.Height
	}
	if o.GridStep != 0 {
		d.GridStep = o.GridStep
	}
	if o.BackgroundColor != "" {
		d.BackgroundColor = o.BackgroundColor
	}
	if o.DeviceColor != "" {
		d.DeviceColor = o.DeviceColor
	}
	if o.LabelColor != "" {
		d.LabelColor = o.LabelColor
	}
	if o.GridColor != "" {
		d.GridColor = o.GridColor
	}
	return d
}

// RenderSVG renders a document to a standalone SVG string. The output is
// deterministic for a given document and options, which is what makes the
// render cache sound.
func RenderSVG(doc topology.Document, opts *RenderOptions) string {
	o := opts.withDefaults()

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		o.Width, o.Height, o.Width, o.Height)
	b.WriteString("\n")

	if o.GridStep > 0 {
		step := o.GridStep * cellW
		fmt.Fprintf(&b, `<defs><pattern id="grid" width="%d" height="%d" patternUnits="userSpaceOnUse">`+
			`<circle cx="1" cy="1" r="1" fill="%s"/></pattern></defs>`, step, step, o.GridColor)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="%s"/>`, o.BackgroundColor)
	b.WriteString("\n")
	if o.GridStep > 0 {
		b.WriteString(`<rect width="100%" height="100%" fill="url(#grid)"/>` + "\n")
	}

	// The pan offset translates the whole scene, same as on the canvas.
	fmt.Fprintf(&b, `<g transform="translate(%.1f,%.1f)">`,
		doc.PanOffset.X*cellW, doc.PanOffset.Y*cellH)
	b.WriteString("\n")

	boxW := interaction.DeviceHitWidth * cellW
	boxH := interaction.DeviceHitHeight * cellH
	for _, d := range doc.Devices {
		x := d.X * cellW
		y := d.Y * cellH
		fmt.Fprintf(&b, `<rect x="%.1f" y="%.1f" width="%d" height="%d" rx="6" fill="none" stroke="%s"/>`,
			x, y, boxW, boxH, o.DeviceColor)
		b.WriteString("\n")
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" text-anchor="middle" font-size="18" fill="%s">%s</text>`,
			x+float64(boxW)/2, y+float64(cellH)+2, o.DeviceColor, string(d.Icon.Glyph()))
		b.WriteString("\n")
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" text-anchor="middle" font-size="13" font-family="monospace" fill="%s">%s</text>`,
			x+float64(boxW)/2, y+float64(boxH)-8, o.LabelColor, html.EscapeString(d.Name))
		b.WriteString("\n")
	}

	b.WriteString("</g>\n</svg>\n")
	return b.String()
}
