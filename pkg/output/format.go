// Package output provides utilities for formatting and displaying projection tables.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/iwvelando/iefp-dossier/internal/projection"
	"github.com/iwvelando/iefp-dossier/pkg/constants"
	"github.com/iwvelando/iefp-dossier/pkg/format"
)

// Write renders tables in the named output format.
func Write(w io.Writer, outputFormat string, result *projection.Result) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, result.Ordered())
	case constants.OutputFormatCSV:
		return CsvFormat(w, result.Ordered())
	case constants.OutputFormatJSON:
		return JSONFormat(w, result)
	}
	return fmt.Errorf("unsupported output format %s", outputFormat)
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, tables []*projection.Table) error {
	for i, table := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "--- %s ---\n", table.Name); err != nil {
			return err
		}
		if table.Empty() {
			if _, err := fmt.Fprintln(w, constants.NoDataPlaceholder); err != nil {
				return err
			}
			continue
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintf(tw, "%s\t%s\t\n", table.LabelColumn, strings.Join(table.Columns, "\t"))
		for _, row := range table.Rows {
			cells := make([]string, len(table.Columns))
			for c := range table.Columns {
				cells[c] = format.Cell(cellValue(row, c))
			}
			fmt.Fprintf(tw, "%s\t%s\t\n", row.Label, strings.Join(cells, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// CsvFormat outputs one CSV block per table, prefixed by the table name.
// Absent cells are empty fields.
func CsvFormat(w io.Writer, tables []*projection.Table) error {
	cw := csv.NewWriter(w)
	for _, table := range tables {
		header := append([]string{"table", table.LabelColumn}, table.Columns...)
		if err := cw.Write(header); err != nil {
			return err
		}
		for _, row := range table.Rows {
			record := make([]string, 0, len(table.Columns)+2)
			record = append(record, table.Name, row.Label)
			for c := range table.Columns {
				if row.Has(c) {
					record = append(record, format.Plain(row.Value(c)))
				} else {
					record = append(record, "")
				}
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// CsvString returns the CSV rendering of tables.
func CsvString(tables []*projection.Table) (string, error) {
	var b strings.Builder
	if err := CsvFormat(&b, tables); err != nil {
		return "", err
	}
	return b.String(), nil
}

// JSONFormat outputs the whole projection result as indented JSON.
func JSONFormat(w io.Writer, result *projection.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func cellValue(row projection.Row, i int) *float64 {
	if !row.Has(i) {
		return nil
	}
	v := row.Value(i)
	return &v
}
