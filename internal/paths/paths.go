package paths

import (
	"os"
	"path/filepath"
)

func home() string {
	h, _ := os.UserHomeDir()
	return h
}

// Dir returns ~/.combosync, or $COMBOSYNC_HOME when set.
func Dir() string {
	if d := os.Getenv("COMBOSYNC_HOME"); d != "" {
		return d
	}
	return filepath.Join(home(), ".combosync")
}

// ConfigFile returns ~/.combosync/config.yaml.
func ConfigFile() string {
	return filepath.Join(Dir(), "config.yaml")
}

// LogDir returns ~/.combosync/logs.
func LogDir() string {
	return filepath.Join(Dir(), "logs")
}
