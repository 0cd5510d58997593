package preview

import (
	"strings"
	"testing"
	"time"

	"github.com/recera/netsketch/pkg/topology"
)

func sampleDocument() topology.Document {
	return topology.Document{
		Version: topology.DocumentVersion,
		Devices: []topology.Device{
			{ID: "router-1", Type: topology.TypeRouter, Name: "Router 1", Icon: topology.IconRouter, X: 10, Y: 5},
			{ID: "cloud-1", Type: topology.TypeCloud, Name: "Edge & Core", Icon: topology.IconCloud, X: -4, Y: 12},
		},
		PanOffset: topology.Offset{X: 3, Y: -2},
		Timestamp: time.Now(),
	}
}

func TestRenderSVG_ContainsDevices(t *testing.T) {
	svg := RenderSVG(sampleDocument(), nil)

	if !strings.HasPrefix(svg, "<svg") {
		t.Fatalf("Expected SVG output, got: %.60s", svg)
	}
	if !strings.Contains(svg, ">Router 1<") {
		t.Error("Missing device label for Router 1")
	}
	// Labels are escaped for markup.
	if !strings.Contains(svg, "Edge &amp; Core") {
		t.Error("Label was not HTML-escaped")
	}
	if !strings.Contains(svg, string(topology.IconRouter.Glyph())) {
		t.Error("Missing router glyph")
	}
	// Pan offset becomes a scene translation.
	if !strings.Contains(svg, `translate(30.0,-36.0)`) {
		t.Errorf("Missing pan translation, got:\n%s", svg)
	}
}

func TestRenderSVG_Deterministic(t *testing.T) {
	doc := sampleDocument()
	a := RenderSVG(doc, nil)
	b := RenderSVG(doc, nil)
	if a != b {
		t.Error("Rendering the same document twice produced different output")
	}
}

func TestRenderSVG_Options(t *testing.T) {
	doc := sampleDocument()

	svg := RenderSVG(doc, &RenderOptions{Width: 400, Height: 300, BackgroundColor: "#ffffff"})
	if !strings.Contains(svg, `width="400" height="300"`) {
		t.Error("Custom dimensions not applied")
	}
	if !strings.Contains(svg, `fill="#ffffff"`) {
		t.Error("Custom background not applied")
	}

	// Negative grid step disables the grid pattern.
	svg = RenderSVG(doc, &RenderOptions{GridStep: -1})
	if strings.Contains(svg, `id="grid"`) {
		t.Error("Grid rendered despite being disabled")
	}
}

func TestRenderSVG_EmptyDocument(t *testing.T) {
	svg := RenderSVG(topology.Document{Version: topology.DocumentVersion}, nil)
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Errorf("Empty document should still render a complete SVG:\n%s", svg)
	}
}
