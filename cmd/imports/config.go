package imports

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jxsl13/app-lemonator/csv"
)

type ImportConfig struct {
	Comma            string `koanf:"separator" short:"s" description:"column separator character in csv files"`
	NameColumn       string `koanf:"name-column" description:"csv column name or index (starting with 0) containing the app name"`
	ExeColumn        string `koanf:"exe-column" description:"csv column name or index (starting with 0) containing the exe name"`
	SearchTermColumn string `koanf:"search-term-column" description:"csv column name or index (starting with 0) containing the search term"`
	MethodColumn     string `koanf:"method-column" description:"csv column name or index (starting with 0) containing the search method"`
	ParamsColumn     string `koanf:"params-column" description:"optional csv column name or index (starting with 0) containing the app parameters"`

	comma rune
	file  string
}

func DefaultImportConfig() *ImportConfig {
	cols := csv.DefaultColumns()
	return &ImportConfig{
		Comma:            ",",
		NameColumn:       cols.Name,
		ExeColumn:        cols.ExeName,
		SearchTermColumn: cols.SearchTerm,
		MethodColumn:     cols.Strategy,
		ParamsColumn:     cols.Params,
	}
}

func (c *ImportConfig) Validate() error {
	comma := []rune(c.Comma)
	if len(comma) == 0 {
		return errors.New("column separator is empty")
	}
	c.comma = comma[0]

	if c.NameColumn == "" || c.ExeColumn == "" || c.SearchTermColumn == "" || c.MethodColumn == "" {
		return errors.New("csv column names must not be empty")
	}

	if !strings.EqualFold(filepath.Ext(c.file), ".csv") {
		return nil
	}

	header, err := csv.Header(c.file, c.comma)
	if err != nil {
		return fmt.Errorf("failed to read csv header of %s: %w", c.file, err)
	}
	for _, col := range []string{c.NameColumn, c.ExeColumn, c.SearchTermColumn, c.MethodColumn} {
		if _, err := csv.ColumnIndex(header, col); err != nil {
			return fmt.Errorf("invalid csv file %s: %w", c.file, err)
		}
	}
	return nil
}

func (c *ImportConfig) CommaRune() rune {
	return c.comma
}

func (c *ImportConfig) Columns() csv.Columns {
	return csv.Columns{
		Name:       c.NameColumn,
		ExeName:    c.ExeColumn,
		SearchTerm: c.SearchTermColumn,
		Strategy:   c.MethodColumn,
		Params:     c.ParamsColumn,
	}
}
