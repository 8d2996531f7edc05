package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ruminaider/combosync/internal/combobox"
	"github.com/ruminaider/combosync/internal/dataset"
)

var checkFlags selectionFlags

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Resolve the configured values against a dataset",
	Long:  "check seeds the configured value or values, loads the dataset and reports how each value resolved. It fails when validation fails or a value has no matching item and custom values are not allowed.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, &checkFlags)
		if err != nil {
			return err
		}
		path, err := datasetPath(args, cfg)
		if err != nil {
			return err
		}
		data, err := dataset.Load(path)
		if err != nil {
			return err
		}

		r := buildReport(newCombobox(cfg, data))
		if err := r.write(cmd.OutOrStdout()); err != nil {
			return err
		}
		if r.Message != "" {
			return fmt.Errorf("validation failed: %s", r.Message)
		}
		if len(r.Unresolved) > 0 && !cfg.AllowCustomValue {
			return fmt.Errorf("%d value(s) not found in %s", len(r.Unresolved), path)
		}
		return nil
	},
}

// resolution is one seeded value and the label it resolved to.
type resolution struct {
	Value any
	Label string
}

// report describes how the seeded selection resolved.
type report struct {
	Resolved   []resolution
	Custom     []any
	Unresolved []any
	Message    string
}

func buildReport(cb *combobox.Combobox) report {
	var r report
	acc := cb.Accessors()

	if cb.Options().MultiSelect {
		for _, it := range cb.SelectedList() {
			if it.Detached {
				r.Unresolved = append(r.Unresolved, acc.Value(it))
				continue
			}
			r.Resolved = append(r.Resolved, resolution{Value: acc.Value(it), Label: acc.Label(it)})
		}
	} else {
		switch pending, parked := cb.Pending(); {
		case parked:
			r.Unresolved = append(r.Unresolved, pending)
		case cb.Selected() != nil:
			r.Resolved = append(r.Resolved, resolution{Value: cb.Value(), Label: cb.Text()})
		case cb.Value() != nil:
			r.Custom = append(r.Custom, cb.Value())
		}
	}

	r.Message = cb.Validate()
	return r
}

func (r report) write(w io.Writer) error {
	var err error
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}
	for _, res := range r.Resolved {
		printf("ok       %v\t%s\n", res.Value, res.Label)
	}
	for _, v := range r.Custom {
		printf("custom   %v\n", v)
	}
	for _, v := range r.Unresolved {
		printf("missing  %v\n", v)
	}
	if r.Message != "" {
		printf("invalid  %s\n", r.Message)
	}
	if len(r.Resolved)+len(r.Custom)+len(r.Unresolved) == 0 && r.Message == "" {
		printf("empty\n")
	}
	return err
}

func init() {
	checkFlags.register(checkCmd)
}
