// Package csv reads app definitions from csv files.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jxsl13/app-lemonator/app"
	"github.com/jxsl13/app-lemonator/platform"
	"github.com/jxsl13/app-lemonator/registry"
)

// Columns names the column of every app field, either by header name or by index starting with 0.
// An empty Params column means that the file has no parameters.
type Columns struct {
	Name       string
	ExeName    string
	SearchTerm string
	Strategy   string
	Params     string
}

func DefaultColumns() Columns {
	return Columns{
		Name:       "app_name",
		ExeName:    "exe_name",
		SearchTerm: "search_term",
		Strategy:   "search_method",
		Params:     "params",
	}
}

func Header(filePath string, commaRune rune) ([]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = commaRune
	r.ReuseRecord = true

	record, err := r.Read()
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ColumnIndex returns the index of column, which is either a number or a header name matched ignoring case.
func ColumnIndex(header []string, column string) (int, error) {
	if idx, err := strconv.Atoi(column); err == nil {
		if idx < 0 {
			return 0, fmt.Errorf("negative column index: %d", idx)
		}
		return idx, nil
	}

	for idx, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), column) {
			return idx, nil
		}
	}
	return 0, fmt.Errorf("column not found: %q", column)
}

type indices struct {
	name, exe, term, strategy, params int
}

func (c Columns) indices(header []string) (indices, error) {
	var (
		result indices
		err    error
	)
	if result.name, err = ColumnIndex(header, c.Name); err != nil {
		return result, err
	}
	if result.exe, err = ColumnIndex(header, c.ExeName); err != nil {
		return result, err
	}
	if result.term, err = ColumnIndex(header, c.SearchTerm); err != nil {
		return result, err
	}
	if result.strategy, err = ColumnIndex(header, c.Strategy); err != nil {
		return result, err
	}

	result.params = -1
	if c.Params != "" {
		// optional
		if idx, err := ColumnIndex(header, c.Params); err == nil {
			result.params = idx
		}
	}
	return result, nil
}

// ReadApps reads every row after the header row. Rows without an app name are skipped.
// The apps are tagged with the given OS.
func ReadApps(filePath string, commaRune rune, columns Columns, o platform.OS) ([]registry.App, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = commaRune
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header of %s: %w", filePath, err)
	}

	idx, err := columns.indices(header)
	if err != nil {
		return nil, fmt.Errorf("invalid csv file %s: %w", filePath, err)
	}

	maxIndex := max(idx.name, idx.exe, idx.term, idx.strategy)

	apps := make([]registry.App, 0, 16)
	row := 1
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row++

		if len(record) <= maxIndex {
			return nil, fmt.Errorf("row %d: record %v has no index %d", row, record, maxIndex)
		}

		name := strings.TrimSpace(record[idx.name])
		if name == "" {
			continue
		}

		strategy, err := app.ParseStrategy(record[idx.strategy])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		a := registry.App{
			Name:       name,
			ExeName:    strings.TrimSpace(record[idx.exe]),
			SearchTerm: strings.TrimSpace(record[idx.term]),
			Strategy:   strategy,
			OS:         o,
		}
		if idx.params >= 0 && idx.params < len(record) {
			a.Params = strings.TrimSpace(record[idx.params])
		}
		apps = append(apps, a)
	}
	return apps, nil
}
