// Package progress renders scan progress on the terminal.
package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/jxsl13/app-lemonator/utils"
	"github.com/schollz/progressbar/v3"
)

const pathWidth = 60

// Spinner shows the currently visited path and the number of matches.
// Its Update method satisfies scan.Progress.
type Spinner struct {
	bar   *progressbar.ProgressBar
	found func(format string, a ...interface{}) string
}

func NewSpinner(w io.Writer, description string) *Spinner {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	return &Spinner{
		bar:   bar,
		found: color.New(color.FgGreen).SprintfFunc(),
	}
}

func (s *Spinner) Update(current string, matches int) {
	s.bar.Describe(fmt.Sprintf("%s %s", s.found("[%d found]", matches), utils.TruncateMiddle(current, pathWidth)))
	_ = s.bar.Add(1)
}

func (s *Spinner) Finish() error {
	return s.bar.Finish()
}
