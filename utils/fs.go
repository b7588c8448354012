package utils

import (
	"errors"
	"io/fs"
	"os"

	"github.com/jxsl13/app-lemonator/platform"
)

func Exists(filePath string) (fs.FileInfo, bool, error) {
	fi, err := os.Stat(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return fi, true, nil
}

func DirExists(dirPath string) bool {
	fi, found, err := Exists(dirPath)
	return err == nil && found && fi.IsDir()
}

// AppExists reports whether path can be launched on the given OS.
// macOS apps are usually bundle directories, Windows apps are regular files.
func AppExists(o platform.OS, path string) bool {
	if path == "" {
		return false
	}
	fi, found, err := Exists(path)
	if err != nil || !found {
		return false
	}

	switch o {
	case platform.Windows:
		return fi.Mode().IsRegular()
	default:
		return fi.IsDir() || fi.Mode().IsRegular()
	}
}
