package main

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/ruminaider/combosync/internal/config"
	"github.com/ruminaider/combosync/internal/paths"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = paths.ConfigFile()
		}
		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("config already exists at %s\nUse --force to overwrite it", path)
		}

		a := defaultAnswers()
		if err := initForm(&a).Run(); err != nil {
			return err
		}
		if err := config.Save(path, a.config()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

// Feature toggles offered by the init form.
const (
	featureTree     = "tree"
	featureLeafOnly = "leaf-only"
	featureCustom   = "custom"
	featureRequired = "required"
)

// initAnswers holds the init form fields.
type initAnswers struct {
	Data        string
	Label       string
	ValueField  string
	TextField   string
	ParentField string
	Mode        string // "single" or "multi"
	Features    []string
}

func defaultAnswers() initAnswers {
	d := config.Default()
	return initAnswers{
		ValueField:  d.Fields.Value,
		TextField:   d.Fields.Text,
		ParentField: d.Fields.Parent,
		Mode:        "single",
	}
}

func initForm(a *initAnswers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Dataset file").
				Description("JSON, YAML, or one value per line").
				Value(&a.Data),
			huh.NewInput().
				Title("Label").
				Value(&a.Label),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Value field").
				Value(&a.ValueField).
				Validate(notBlank),
			huh.NewInput().
				Title("Text field").
				Value(&a.TextField).
				Validate(notBlank),
			huh.NewInput().
				Title("Parent field").
				Description("Used when the data is a tree").
				Value(&a.ParentField),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Selection mode").
				Options(
					huh.NewOption("Single value", "single"),
					huh.NewOption("Multiple values", "multi"),
				).
				Value(&a.Mode),
			huh.NewMultiSelect[string]().
				Title("Options").
				Description("Space to toggle, Enter to confirm").
				Options(
					huh.NewOption("Tree data", featureTree),
					huh.NewOption("Only leaves are selectable", featureLeafOnly),
					huh.NewOption("Allow custom values", featureCustom),
					huh.NewOption("Value is required", featureRequired),
				).
				Value(&a.Features),
		),
	)
}

func notBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func (a initAnswers) config() config.Config {
	cfg := config.Default()
	cfg.Data = strings.TrimSpace(a.Data)
	cfg.Label = a.Label
	cfg.Fields.Value = strings.TrimSpace(a.ValueField)
	cfg.Fields.Text = strings.TrimSpace(a.TextField)
	cfg.Fields.Parent = strings.TrimSpace(a.ParentField)
	cfg.MultiSelect = a.Mode == "multi"
	cfg.Tree = slices.Contains(a.Features, featureTree)
	cfg.SelectOnlyLeaf = cfg.Tree && slices.Contains(a.Features, featureLeafOnly)
	cfg.AllowCustomValue = slices.Contains(a.Features, featureCustom)
	cfg.Required = slices.Contains(a.Features, featureRequired)
	return cfg
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config")
}
