package probe

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jxsl13/app-lemonator/version"
	"howett.net/plist"
)

type bundleInfo struct {
	ShortVersion string `plist:"CFBundleShortVersionString"`
	Name         string `plist:"CFBundleName"`
}

// readBundleInfo reads Contents/Info.plist of a macOS app bundle.
// A version string that cannot be parsed yields the zero version.
func readBundleInfo(bundlePath string) (Info, error) {
	plistPath := filepath.Join(bundlePath, "Contents", "Info.plist")
	data, err := os.ReadFile(plistPath)
	if err != nil {
		return Info{}, fmt.Errorf("failed to read bundle info of %s: %w", bundlePath, err)
	}

	var bi bundleInfo
	if _, err := plist.Unmarshal(data, &bi); err != nil {
		return Info{}, fmt.Errorf("invalid property list %s: %w", plistPath, err)
	}

	return Info{
		Version:     version.ParseOrZero(bi.ShortVersion),
		Description: bi.Name,
	}, nil
}
