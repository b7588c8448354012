package folders

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/jxsl13/app-lemonator/platform"
)

// https://help.dropbox.com/installs/locate-dropbox-folder
type dropboxConfig struct {
	Personal *dropboxInfo `json:"personal"`
	Business *dropboxInfo `json:"business"`
}

type dropboxInfo struct {
	Path string `json:"path"`
}

// DropboxPath extracts the folder of the given dropbox token from the content of a Dropbox info.json.
// A missing account yields an empty string without error.
func DropboxPath(t Token, jsonText []byte) (string, error) {
	var cfg dropboxConfig
	if err := json.Unmarshal(jsonText, &cfg); err != nil {
		return "", fmt.Errorf("invalid dropbox info: %w", err)
	}

	var info *dropboxInfo
	switch t {
	case PersonalDropbox:
		info = cfg.Personal
	case BusinessDropbox:
		info = cfg.Business
	default:
		return "", fmt.Errorf("not a dropbox token: %s", t)
	}

	if info == nil {
		return "", nil
	}
	return info.Path, nil
}

// dropboxInfoFiles returns the candidate locations of info.json in lookup order.
func dropboxInfoFiles(env platform.Env) []string {
	const infoFile = "info.json"

	var result []string
	switch env.OS {
	case platform.Windows:
		for _, name := range []string{"APPDATA", "LOCALAPPDATA"} {
			if dir, ok := env.Lookup(name); ok && dir != "" {
				result = append(result, filepath.Join(dir, "Dropbox", infoFile))
			}
		}
	default:
		if home, ok := env.Lookup("HOME"); ok && home != "" {
			result = append(result, filepath.Join(home, ".dropbox", infoFile))
		}
	}
	return result
}
