package main

import (
	"fmt"
	"io"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/ruminaider/combosync/internal/combobox"
	"github.com/ruminaider/combosync/internal/config"
	"github.com/ruminaider/combosync/internal/paths"
)

// selectionFlags are the per-command overrides of the config file.
type selectionFlags struct {
	valueField  string
	textField   string
	keyField    string
	parentField string
	tree        bool
	multi       bool
	leafOnly    bool
	custom      bool
	required    bool
	values      []string
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.valueField, "value-field", "", "Record field holding the value")
	fl.StringVar(&f.textField, "text-field", "", "Record field holding the display text")
	fl.StringVar(&f.keyField, "key-field", "", "Record field identifying tree nodes (default: value field)")
	fl.StringVar(&f.parentField, "parent-field", "", "Record field naming the parent node")
	fl.BoolVar(&f.tree, "tree", false, "Treat the data as a hierarchy")
	fl.BoolVar(&f.multi, "multi", false, "Select several values")
	fl.BoolVar(&f.leafOnly, "leaf-only", false, "Only allow selecting items without children")
	fl.BoolVar(&f.custom, "allow-custom", false, "Accept typed text that matches no item")
	fl.BoolVar(&f.required, "required", false, "Require a value")
	fl.StringArrayVar(&f.values, "value", nil, "Initial value (repeat for multi-select)")
}

// apply overrides cfg with the flags set on cmd.
func (f *selectionFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	changed := cmd.Flags().Changed
	if changed("value-field") {
		cfg.Fields.Value = f.valueField
	}
	if changed("text-field") {
		cfg.Fields.Text = f.textField
	}
	if changed("key-field") {
		cfg.Fields.Key = f.keyField
	}
	if changed("parent-field") {
		cfg.Fields.Parent = f.parentField
	}
	if changed("tree") {
		cfg.Tree = f.tree
	}
	if changed("multi") {
		cfg.MultiSelect = f.multi
	}
	if changed("leaf-only") {
		cfg.SelectOnlyLeaf = f.leafOnly
	}
	if changed("allow-custom") {
		cfg.AllowCustomValue = f.custom
	}
	if changed("required") {
		cfg.Required = f.required
	}

	if changed("value") {
		cfg.Value, cfg.Values = nil, nil
		if cfg.MultiSelect {
			for _, v := range f.values {
				cfg.Values = append(cfg.Values, v)
			}
		} else {
			if len(f.values) > 1 {
				return fmt.Errorf("--value given %d times; use --multi to select several values", len(f.values))
			}
			cfg.Value = f.values[0]
		}
	}

	// Carry a seed across a mode switch made on the command line.
	if cfg.MultiSelect && cfg.Value != nil {
		cfg.Values, cfg.Value = []any{cfg.Value}, nil
	}
	if !cfg.MultiSelect && len(cfg.Values) == 1 {
		cfg.Value, cfg.Values = cfg.Values[0], nil
	}
	return cfg.Validate()
}

// loadConfig reads --config, or the default config file, and applies flags.
func loadConfig(cmd *cobra.Command, flags *selectionFlags) (config.Config, error) {
	path := configPath
	if path == "" {
		path = paths.ConfigFile()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if err := flags.apply(cmd, &cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// datasetPath picks the file argument, falling back to the configured data.
func datasetPath(args []string, cfg config.Config) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if cfg.Data != "" {
		return cfg.Data, nil
	}
	return "", fmt.Errorf("no dataset: pass a file or set data in the config")
}

// newCombobox builds a combobox from cfg, seeds it and loads data. Seeding
// first lets values wait for the data like a host binding would.
func newCombobox(cfg config.Config, data []any) *combobox.Combobox {
	cb := combobox.New(cfg.Options())
	cfg.Seed(cb)
	cb.SetData(data)
	return cb
}

// printSelection writes the committed value, or one value per line in
// multi-select.
func printSelection(w io.Writer, cb *combobox.Combobox) error {
	if cb.Options().MultiSelect {
		for _, v := range cb.ValueList() {
			if _, err := fmt.Fprintln(w, cast.ToString(v)); err != nil {
				return err
			}
		}
		return nil
	}
	if v := cb.Value(); v != nil {
		_, err := fmt.Fprintln(w, cast.ToString(v))
		return err
	}
	return nil
}
