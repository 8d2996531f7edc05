package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/ruminaider/combosync/internal/combobox"
	"github.com/ruminaider/combosync/internal/item"
	"github.com/ruminaider/combosync/internal/tree"
)

// CurrentVersion is written by Default and accepted by Parse.
const CurrentVersion = "1"

// Config represents ~/.combosync/config.yaml.
type Config struct {
	Version string      `yaml:"version"`
	Fields  item.Fields `yaml:"fields"`

	Tree             bool `yaml:"tree,omitempty"`
	MultiSelect      bool `yaml:"multi_select,omitempty"`
	SelectOnlyLeaf   bool `yaml:"select_only_leaf,omitempty"`
	AllowCustomValue bool `yaml:"allow_custom_value,omitempty"`
	Required         bool `yaml:"required,omitempty"`

	// Data is the dataset file loaded when no file argument is given.
	Data  string `yaml:"data,omitempty"`
	Watch bool   `yaml:"watch,omitempty"`

	// Value seeds single-select, Values seeds multi-select.
	Value  any   `yaml:"value,omitempty"`
	Values []any `yaml:"values,omitempty"`

	Label       string `yaml:"label,omitempty"`
	Placeholder string `yaml:"placeholder,omitempty"`
}

// Default returns a single-select config with value/text fields.
func Default() Config {
	return Config{
		Version:     CurrentVersion,
		Fields:      item.DefaultFields(),
		Placeholder: "Type to search",
	}
}

// Parse parses config.yaml bytes into a Config. Unset fields keep their
// defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal serializes a Config to YAML bytes.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Validate rejects seed values that do not fit the selection mode.
func (c Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version %q", c.Version)
	}
	if c.MultiSelect && c.Value != nil {
		return fmt.Errorf("value is single-select only; use values with multi_select")
	}
	if !c.MultiSelect && len(c.Values) > 0 {
		return fmt.Errorf("values requires multi_select")
	}
	return nil
}

// Load reads the config at path. A missing file yields Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Save writes cfg to path, creating the parent directory.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Options converts the config into combobox options. Tree mode uses the
// depth-first flattener.
func (c Config) Options() combobox.Options {
	opts := combobox.Options{
		Fields:           c.Fields,
		Tree:             c.Tree,
		MultiSelect:      c.MultiSelect,
		SelectOnlyLeaf:   c.SelectOnlyLeaf,
		AllowCustomValue: c.AllowCustomValue,
		Required:         c.Required,
	}
	if c.Tree {
		opts.Flatten = tree.Flatten
	}
	return opts
}

// Seed writes the configured initial value or values into cb.
func (c Config) Seed(cb *combobox.Combobox) {
	if c.MultiSelect {
		if len(c.Values) > 0 {
			cb.SetValueList(c.Values)
		}
		return
	}
	if c.Value != nil {
		cb.SetValue(c.Value)
	}
}
