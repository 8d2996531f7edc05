package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ruminaider/combosync/cmd/combosync/tui"
	"github.com/ruminaider/combosync/internal/combobox"
	"github.com/ruminaider/combosync/internal/dataset"
)

var (
	filterFlags  selectionFlags
	filterExpand bool
	filterMark   string
)

var filterCmd = &cobra.Command{
	Use:   "filter <file> <search>",
	Short: "Print the rows matching a search",
	Long:  "filter prints the rows a combobox would show for the search text. In tree mode the ancestors of every match are included and expanded.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, &filterFlags)
		if err != nil {
			return err
		}
		data, err := dataset.Load(args[0])
		if err != nil {
			return err
		}

		cb := newCombobox(cfg, data)
		cb.SetSearchText(args[1])
		if filterExpand {
			cb.ExpandAll()
		}
		return writeRows(cmd.OutOrStdout(), cb, filterMark)
	},
}

// writeRows prints the display rows with tree markers and selection state.
// Matches are wrapped in mark on both sides, or styled when mark is empty.
func writeRows(w io.Writer, cb *combobox.Combobox, mark string) error {
	highlight := tui.Mark
	if mark != "" {
		highlight = func(s string) string { return mark + s + mark }
	}
	acc := cb.Accessors()
	multi := cb.Options().MultiSelect

	for _, r := range cb.Display() {
		var b strings.Builder
		b.WriteString(strings.Repeat("  ", r.Level))
		switch {
		case !r.Item.HasChildren:
			b.WriteString("  ")
		case r.Item.Expanded:
			b.WriteString("▾ ")
		default:
			b.WriteString("▸ ")
		}
		if multi && cb.Checkable(r.Item) {
			if cb.IsChecked(r.Item) {
				b.WriteString("[x] ")
			} else {
				b.WriteString("[ ] ")
			}
		}
		b.WriteString(cb.Highlight(acc.Label(r.Item), highlight))
		if !multi && r.Item == cb.Selected() {
			b.WriteString(" *")
		}
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	filterFlags.register(filterCmd)
	filterCmd.Flags().BoolVar(&filterExpand, "expand", false, "Expand every tree node")
	filterCmd.Flags().StringVar(&filterMark, "mark", "", "Wrap matches in this string instead of styling them")
}
