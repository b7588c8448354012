package list

import (
	"io"
	"strconv"
	"time"

	"github.com/jxsl13/app-lemonator/defaults"
	"github.com/jxsl13/app-lemonator/registry"
	"github.com/olekukonko/tablewriter"
)

var (
	summaryHeader = []string{"App Name", "App Path", "Last Opened", "Last Updated"}
	fullHeader    = []string{
		"Id", "App Name", "Exe Name", "Params", "Search Term", "Search Method",
		"App Path", "Description", "Version", "Last Opened", "Last Updated", "OS",
	}
)

// Render writes apps as a table. Empty values are shown as N/A.
func Render(w io.Writer, apps []registry.App, full bool) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	if full {
		table.SetHeader(fullHeader)
	} else {
		table.SetHeader(summaryHeader)
	}

	for _, a := range apps {
		table.Append(Row(a, full))
	}
	table.Render()
}

func Row(a registry.App, full bool) []string {
	if !full {
		return []string{
			a.Name,
			orNotSet(a.Path),
			formatTime(a.LastOpened),
			formatTime(a.LastUpdated),
		}
	}
	return []string{
		formatID(a.ID),
		a.Name,
		a.ExeName,
		orNotSet(a.Params),
		a.SearchTerm,
		a.Strategy.String(),
		orNotSet(a.Path),
		orNotSet(a.Description),
		orNotSet(a.Version),
		formatTime(a.LastOpened),
		formatTime(a.LastUpdated),
		a.OS.String(),
	}
}

func orNotSet(s string) string {
	if s == "" {
		return defaults.NotSet
	}
	return s
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return defaults.NotSet
	}
	return t.Local().Format(defaults.TimeFormat)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
