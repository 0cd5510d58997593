package topology

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestExport_RoundTrip(t *testing.T) {
	s := NewViewState()
	s.AddDevice(Template{Type: TypeRouter, Name: "Router", Icon: IconRouter})
	s.AddDevice(Template{Type: TypeDatabase, Name: "Database", Icon: IconDatabase})
	devs := s.Devices()
	s.MoveDevice(devs[0].ID, 12.5, -3)
	s.SetPanOffset(-40, 8)

	var buf bytes.Buffer
	if err := WriteDocument(&buf, Snapshot(s)); err != nil {
		t.Fatalf("Failed to write document: %v", err)
	}

	doc, err := ParseDocument(&buf)
	if err != nil {
		t.Fatalf("Failed to parse document: %v", err)
	}

	if doc.Version != DocumentVersion {
		t.Errorf("Expected version %q, got %q", DocumentVersion, doc.Version)
	}
	if doc.PanOffset != s.PanOffset() {
		t.Errorf("Expected pan %+v, got %+v", s.PanOffset(), doc.PanOffset)
	}
	want := s.Devices()
	if len(doc.Devices) != len(want) {
		t.Fatalf("Expected %d devices, got %d", len(want), len(doc.Devices))
	}
	for i, d := range doc.Devices {
		if d != want[i] {
			t.Errorf("Device %d: expected %+v, got %+v", i, want[i], d)
		}
	}
	if doc.Timestamp.IsZero() {
		t.Error("Expected a non-zero export timestamp")
	}
}

func TestExport_JSONShape(t *testing.T) {
	s := NewViewState()
	s.AddDevice(Template{Type: TypeCloud, Name: "Cloud", Icon: IconCloud})

	var buf bytes.Buffer
	if err := WriteDocument(&buf, Snapshot(s)); err != nil {
		t.Fatalf("Failed to write document: %v", err)
	}
	out := buf.String()

	for _, field := range []string{
		`"version": "1.0"`, `"devices"`, `"panOffset"`, `"timestamp"`,
		`"id"`, `"type"`, `"name"`, `"icon"`, `"x"`, `"y"`,
	} {
		if !strings.Contains(out, field) {
			t.Errorf("Expected output to contain %s, got:\n%s", field, out)
		}
	}
}

func TestExport_File(t *testing.T) {
	tmpDir := t.TempDir()

	s := NewViewState()
	s.AddDevice(Template{Type: TypeServer, Name: "Server", Icon: IconServer})

	path, err := Export(s, filepath.Join(tmpDir, "exports"))
	if err != nil {
		t.Fatalf("Failed to export: %v", err)
	}

	name := filepath.Base(path)
	if !strings.HasPrefix(name, "network-diagram-") || !strings.HasSuffix(name, ".json") {
		t.Errorf("Unexpected export filename %q", name)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open export: %v", err)
	}
	defer f.Close()

	doc, err := ParseDocument(f)
	if err != nil {
		t.Fatalf("Failed to parse export: %v", err)
	}
	if len(doc.Devices) != 1 || doc.Devices[0].Name != "Server 1" {
		t.Errorf("Unexpected exported devices: %+v", doc.Devices)
	}
}

func TestExportFilename(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	if got := ExportFilename(at); got != "network-diagram-1700000000123.json" {
		t.Errorf("Expected network-diagram-1700000000123.json, got %q", got)
	}
}
