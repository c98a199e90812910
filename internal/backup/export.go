package backup

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/learnnova/internal/store"
)

// Format is the document format of an exported snapshot.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown export format %q (want json or yaml)", s)
}

// FormatFromPath guesses the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Export writes snap to w.
func Export(w io.Writer, snap store.Snapshot, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		data, err := sonic.ConfigStd.MarshalIndent(snap, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		_, err = w.Write(append(data, '\n'))
		return err
	}
	return fmt.Errorf("unknown export format %q", format)
}

// Import reads a snapshot written by Export.
func Import(r io.Reader, format Format) (store.Snapshot, error) {
	var snap store.Snapshot
	data, err := io.ReadAll(r)
	if err != nil {
		return snap, err
	}

	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &snap)
	case FormatJSON:
		err = sonic.ConfigStd.Unmarshal(data, &snap)
	default:
		return snap, fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return snap, fmt.Errorf("decoding %s snapshot: %w", format, err)
	}
	return snap, nil
}
