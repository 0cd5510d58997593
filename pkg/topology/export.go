package topology

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// DocumentVersion is the format version written into every export.
const DocumentVersion = "1.0"

// Document is the exported form of a sketch: a versioned snapshot of the
// device list and pan offset plus the export timestamp (RFC 3339).
type Document struct {
	Version   string    `json:"version"`
	Devices   []Device  `json:"devices"`
	PanOffset Offset    `json:"panOffset"`
	Timestamp time.Time `json:"timestamp"`
}

// Snapshot captures the current state into a Document without mutating it.
func Snapshot(s *ViewState) Document {
	return Document{
		Version:   DocumentVersion,
		Devices:   s.Devices(),
		PanOffset: s.PanOffset(),
		Timestamp: time.Now().UTC(),
	}
}

// WriteDocument serializes the document as indented JSON.
func WriteDocument(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return nil
}

// ParseDocument reads an exported document back. The editor never calls this;
// it exists for the preview tooling and for verifying exports.
func ParseDocument(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("failed to parse document: %w", err)
	}
	return doc, nil
}

// ExportFilename returns the download-style filename for an export taken at
// the given time.
func ExportFilename(at time.Time) string {
	return fmt.Sprintf("network-diagram-%d.json", at.UnixMilli())
}

// Export snapshots the state and writes it to dir under the timestamped
// export filename, creating dir if needed. Returns the written path.
func Export(s *ViewState, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	doc := Snapshot(s)
	path := filepath.Join(dir, ExportFilename(doc.Timestamp))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()
	if err := WriteDocument(f, doc); err != nil {
		return "", err
	}
	return path, nil
}
