package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/ruminaider/combosync/cmd/combosync/tui"
	"github.com/ruminaider/combosync/internal/combobox"
	"github.com/ruminaider/combosync/internal/dataset"
	"github.com/ruminaider/combosync/internal/logger"
)

var (
	pickFlags  selectionFlags
	pickWatch  bool
	pickHeight int
)

var pickCmd = &cobra.Command{
	Use:   "pick [file]",
	Short: "Pick values interactively",
	Long:  "pick opens a searchable list over the dataset and prints the chosen value, or one value per line with --multi. The list is drawn on stderr so the result can be piped.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPick,
}

func runPick(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(os.Stdin.Fd()) {
		return fmt.Errorf("pick needs an interactive terminal; use filter or check in scripts")
	}

	cfg, err := loadConfig(cmd, &pickFlags)
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

	cb := newCombobox(cfg, data)
	cb.OnSelect(func(e combobox.Event) {
		logger.L.Debug("row selected", "value", cb.Accessors().Value(e.Item), "selected", e.Selected)
	})

	opts := tui.Options{
		Label:          cfg.Label,
		Placeholder:    cfg.Placeholder,
		Height:         pickHeight,
		SubmitOnSelect: !cfg.MultiSelect,
	}
	if pickWatch || cfg.Watch {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		results, err := dataset.Watch(ctx, path, 0)
		if err != nil {
			return err
		}
		opts.Results = results
	}

	final, err := tea.NewProgram(tui.New(cb, opts), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return err
	}
	if final.(tui.Model).Aborted() {
		return huh.ErrUserAborted
	}
	return printSelection(cmd.OutOrStdout(), cb)
}

func init() {
	pickFlags.register(pickCmd)
	pickCmd.Flags().BoolVar(&pickWatch, "watch", false, "Reload the dataset when the file changes")
	pickCmd.Flags().IntVar(&pickHeight, "height", 10, "Number of visible rows")
}
