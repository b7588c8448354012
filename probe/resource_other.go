//go:build !windows

package probe

import (
	"fmt"
	"runtime"

	"github.com/jxsl13/app-lemonator/app"
)

func readVersionResource(path string) (Info, error) {
	return Info{}, fmt.Errorf("%w: cannot read the version resource of %s on %s", app.ErrUnsupportedPlatform, path, runtime.GOOS)
}
