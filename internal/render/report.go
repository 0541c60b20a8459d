package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/iwvelando/iefp-dossier/internal/projection"
	"github.com/iwvelando/iefp-dossier/pkg/constants"
	"github.com/iwvelando/iefp-dossier/pkg/format"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const reportStyle = `body{font-family:sans-serif;max-width:960px;margin:2em auto;color:#1a202c}
table{border-collapse:collapse;margin:1em 0}
th,td{border:1px solid #cbd5e0;padding:4px 8px}
th{background:#e2e8f0}
td{text-align:right}
td:first-child{text-align:left}`

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// Report renders doc as a standalone HTML document.
func Report(doc Document) ([]byte, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(Markdown(doc)), &body); err != nil {
		return nil, &RenderError{Artifact: ArtifactReport, Err: err}
	}

	title := doc.Title
	if title == "" {
		title = constants.ReportTitle
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "<!DOCTYPE html>\n<html lang=\"pt\">\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n<style>\n%s\n</style>\n</head>\n<body>\n",
		html.EscapeString(title), reportStyle)
	out.Write(body.Bytes())
	out.WriteString("</body>\n</html>\n")
	return out.Bytes(), nil
}

// Markdown renders doc as Markdown: the title, the header fields, every
// section and then every table.
func Markdown(doc Document) string {
	var b strings.Builder

	title := doc.Title
	if title == "" {
		title = constants.ReportTitle
	}
	fmt.Fprintf(&b, "# %s\n\n", inline(title))

	for _, field := range doc.Header {
		fmt.Fprintf(&b, "- **%s:** %s\n", inline(field.Label), inline(field.Value))
	}
	if len(doc.Header) > 0 {
		b.WriteString("\n")
	}

	for _, section := range doc.Sections {
		fmt.Fprintf(&b, "## %s\n\n", inline(section.Title))
		text := strings.TrimSpace(section.Text)
		if text == "" {
			text = constants.NoDataPlaceholder
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	}

	for _, table := range doc.Tables {
		if table == nil {
			continue
		}
		writeTable(&b, table)
	}

	return b.String()
}

func writeTable(b *strings.Builder, table *projection.Table) {
	fmt.Fprintf(b, "## %s\n\n", inline(DisplayName(table.Name)))
	if table.Empty() {
		b.WriteString(constants.NoDataPlaceholder)
		b.WriteString("\n\n")
		return
	}

	b.WriteString("| " + cell(table.LabelColumn))
	for _, column := range table.Columns {
		b.WriteString(" | " + cell(column))
	}
	b.WriteString(" |\n|---")
	for range table.Columns {
		b.WriteString("|---:")
	}
	b.WriteString("|\n")

	for _, row := range table.Rows {
		b.WriteString("| " + cell(row.Label))
		for i := range table.Columns {
			value := ""
			if row.Has(i) {
				value = format.Amount(row.Value(i))
			}
			b.WriteString(" | " + value)
		}
		b.WriteString(" |\n")
	}
	b.WriteString("\n")
}

// inline flattens text onto one line.
func inline(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// cell makes s safe inside a table cell.
func cell(s string) string {
	return strings.ReplaceAll(inline(s), "|", `\|`)
}
