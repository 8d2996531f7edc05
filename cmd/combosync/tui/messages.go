package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ruminaider/combosync/internal/dataset"
)

// DataLoadedMsg carries a (re)loaded dataset into the update loop.
type DataLoadedMsg struct {
	Data []any
	Err  error
}

// watchStoppedMsg is sent when the dataset watcher closes its channel.
type watchStoppedMsg struct{}

// WaitForDataCmd waits for the next result from a dataset watcher.
func WaitForDataCmd(results <-chan dataset.Result) tea.Cmd {
	if results == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-results
		if !ok {
			return watchStoppedMsg{}
		}
		return DataLoadedMsg{Data: r.Data, Err: r.Err}
	}
}
