package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ruminaider/combosync/internal/logger"
	"github.com/ruminaider/combosync/internal/paths"
)

var version = "0.1.0"

var (
	configPath string
	debugLog   bool
	logCloser  io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "combosync",
	Short: "Pick values from a dataset with a searchable combobox",
	Long:  "combosync loads a list or tree of items from a file and lets you filter and pick one or more values, keeping value, text and selection consistent.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		closer, err := logger.Init(logger.Options{
			Enabled: debugLog,
			Dir:     paths.LogDir(),
			Level:   slog.LevelDebug,
		})
		if err != nil {
			return err
		}
		logCloser = closer
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "combosync %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.combosync/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "Write debug logs to ~/.combosync/logs")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
