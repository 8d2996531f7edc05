// Package dataset reads the raw item collections fed to a combobox from
// files on disk.
package dataset

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v3"
)

// Format is the encoding of a dataset file.
type Format int

const (
	Lines Format = iota // one primitive value per non-empty line
	JSON
	YAML
)

// String returns the display name for a format.
func (f Format) String() string {
	switch f {
	case Lines:
		return "lines"
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatOf picks the format from the file extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON
	case ".yaml", ".yml":
		return YAML
	default:
		return Lines
	}
}

// Load reads the dataset at path.
func Load(path string) ([]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	items, err := Decode(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return items, nil
}

// Decode parses data as a list of records or primitives. An empty document
// is an empty list.
func Decode(data []byte, format Format) ([]any, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	switch format {
	case JSON:
		return decodeJSON(data)
	case YAML:
		return decodeYAML(data)
	default:
		return decodeLines(data), nil
	}
}

func decodeJSON(data []byte) ([]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing json dataset: %w", err)
	}
	return items, nil
}

func decodeYAML(data []byte) ([]any, error) {
	var items []any
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing yaml dataset: %w", err)
	}
	return items, nil
}

func decodeLines(data []byte) []any {
	var items []any
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		items = append(items, line)
	}
	return items
}
