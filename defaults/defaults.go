package defaults

import (
	"os"
	"path/filepath"
)

const (
	AppName   = "app-lemonator"
	EnvPrefix = "LEMONATOR_"

	LogLevel = "info"

	// ExportVersion is written into every export document,
	// ImportConstraint is checked against the version of imported documents.
	ExportVersion    = "1.0.0"
	ImportConstraint = "^1"

	TimeFormat = "2006-01-02 15:04:05"
	NotSet     = "N/A"
)

// DatabasePath is the registry location below the user's config directory,
// the working directory is used if there is none.
func DatabasePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", AppName+".db")
	}
	return filepath.Join(dir, AppName, "apps.db")
}

func LogFile() string {
	return filepath.Join(os.TempDir(), AppName+".log")
}

// ExportDir is the user's documents folder or the home directory if there is none.
func ExportDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	documents := filepath.Join(home, "Documents")
	if fi, err := os.Stat(documents); err == nil && fi.IsDir() {
		return documents
	}
	return home
}
