// Package render turns projection tables and narrative sections into the
// artifacts handed to the applicant: an HTML report and an xlsx workbook.
// It holds no business logic.
package render

import (
	"fmt"

	"github.com/iwvelando/iefp-dossier/internal/projection"
)

// Artifact names used in errors and file names.
const (
	ArtifactReport   = "report"
	ArtifactWorkbook = "workbook"
)

// Field is one labelled value of the report header.
type Field struct {
	Label string
	Value string
}

// Section is a titled block of free text.
type Section struct {
	Title string
	Text  string
}

// Document is everything a report is rendered from.
type Document struct {
	Title    string
	Header   []Field
	Sections []Section
	Tables   []*projection.Table
}

// RenderError reports an artifact that could not be produced.
type RenderError struct {
	Artifact string
	Section  string
	Err      error
}

func (e *RenderError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("failed to render %s section %q: %v", e.Artifact, e.Section, e.Err)
	}
	return fmt.Sprintf("failed to render %s: %v", e.Artifact, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// DisplayName returns the human title of a table, falling back to its name.
func DisplayName(name string) string {
	if title, ok := tableTitles[name]; ok {
		return title
	}
	return name
}

var tableTitles = map[string]string{
	"sales":            "Vendas",
	"cogs":             "CMVMC",
	"opex":             "FSE",
	"payroll":          "Pessoal",
	"depreciation":     "Depreciações",
	"loan_schedule":    "Plano de Financiamento",
	"income_statement": "Demonstração de Resultados",
	"balance_sheet":    "Balanço",
}
