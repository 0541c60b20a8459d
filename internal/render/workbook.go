package render

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/iwvelando/iefp-dossier/internal/projection"
	"github.com/iwvelando/iefp-dossier/pkg/constants"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// Workbook renders one worksheet per table. Tables without rows get a sheet
// holding the no-data placeholder. Absent cells are left blank.
func Workbook(tables []*projection.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, &RenderError{Artifact: ArtifactWorkbook, Err: err}
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, &RenderError{Artifact: ArtifactWorkbook, Err: err}
	}

	used := make(map[string]bool)
	for _, table := range tables {
		if table == nil {
			continue
		}
		sheet := uniqueSheetName(SheetName(table.Name), used)
		if len(used) == 1 {
			if err := f.SetSheetName(defaultSheet, sheet); err != nil {
				return nil, &RenderError{Artifact: ArtifactWorkbook, Section: table.Name, Err: err}
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, &RenderError{Artifact: ArtifactWorkbook, Section: table.Name, Err: err}
		}

		if err := writeSheet(f, sheet, table, headerStyle, amountStyle); err != nil {
			return nil, &RenderError{Artifact: ArtifactWorkbook, Section: table.Name, Err: err}
		}
	}

	if len(used) == 0 {
		if err := f.SetCellValue(defaultSheet, "A1", constants.NoDataPlaceholder); err != nil {
			return nil, &RenderError{Artifact: ArtifactWorkbook, Err: err}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, &RenderError{Artifact: ArtifactWorkbook, Err: err}
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, table *projection.Table, headerStyle, amountStyle int) error {
	if table.Empty() {
		return f.SetCellValue(sheet, "A1", constants.NoDataPlaceholder)
	}

	header := make([]interface{}, 0, len(table.Columns)+1)
	header = append(header, table.LabelColumn)
	for _, column := range table.Columns {
		header = append(header, column)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return err
	}

	for r, row := range table.Rows {
		line := r + 2
		labelCell, err := excelize.CoordinatesToCellName(1, line)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheet, labelCell, row.Label); err != nil {
			return err
		}
		for c := range table.Columns {
			if !row.Has(c) {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+2, line)
			if err != nil {
				return err
			}
			if err := f.SetCellFloat(sheet, cell, row.Value(c), -1, 64); err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, cell, cell, amountStyle); err != nil {
				return err
			}
		}
	}

	lastColumn, err := excelize.ColumnNumberToName(len(table.Columns) + 1)
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "A", 30); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", lastColumn, 15)
}

// SheetName makes name acceptable as a worksheet name: characters a
// workbook forbids are replaced and the result is cut to 31 characters.
func SheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	name = strings.Trim(name, "'")
	if name == "" {
		name = "Sheet"
	}
	if utf8.RuneCountInString(name) > constants.MaxSheetNameLength {
		name = string([]rune(name)[:constants.MaxSheetNameLength])
	}
	return name
}

// uniqueSheetName returns name, suffixed when a sheet of the same name
// (compared case-insensitively) already exists, and records it in used.
func uniqueSheetName(name string, used map[string]bool) string {
	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := "~" + strconv.Itoa(n)
		runes := []rune(name)
		if keep := constants.MaxSheetNameLength - len(suffix); len(runes) > keep {
			runes = runes[:keep]
		}
		candidate = string(runes) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}
