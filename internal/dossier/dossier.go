// Package dossier assembles a complete application dossier: it projects the
// financial tables, fills the narrative sections and hands both to the
// renderer.
package dossier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/iefp-dossier/internal/config"
	"github.com/iwvelando/iefp-dossier/internal/projection"
	"github.com/iwvelando/iefp-dossier/internal/render"
	"github.com/iwvelando/iefp-dossier/internal/textgen"
	"github.com/iwvelando/iefp-dossier/pkg/constants"
	"go.uber.org/zap"
)

// Section is a narrative section after generation and truncation.
type Section struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Instruction string `json:"instruction,omitempty"`
	Text        string `json:"text"`
	Limit       int    `json:"limit,omitempty"`
	Generated   bool   `json:"generated,omitempty"`
	Truncated   bool   `json:"truncated,omitempty"`
}

// Dossier is the outcome of one pipeline run.
type Dossier struct {
	RunID    string              `json:"runId"`
	Title    string              `json:"title"`
	Header   []config.Field      `json:"header"`
	Years    []int               `json:"years"`
	Tables   []*projection.Table `json:"tables"`
	Totals   projection.Totals   `json:"totals"`
	Sections []Section           `json:"sections"`
	Warnings []string            `json:"warnings"`
	Duration string              `json:"duration"`
}

// Build runs the pipeline for conf. gen may be nil, in which case sections
// without text are left empty.
func Build(ctx context.Context, logger *zap.Logger, conf *config.Configuration, gen *textgen.Generator) (*Dossier, error) {
	return BuildWithFixedTime(ctx, logger, conf, gen, time.Now())
}

// BuildWithFixedTime runs the pipeline with an injectable clock for the
// default horizon.
func BuildWithFixedTime(ctx context.Context, logger *zap.Logger, conf *config.Configuration, gen *textgen.Generator, now time.Time) (*Dossier, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if conf == nil {
		conf = &config.Configuration{}
	}

	start := time.Now()
	runID := uuid.NewString()
	logger = logger.With(zap.String("runId", runID))

	warnings := conf.ValidateConfiguration()
	for _, w := range warnings {
		logger.Warn(w, zap.String("op", "dossier.Build"))
	}

	input := conf.ProjectionInputWithFixedTime(now)
	result, err := projection.Compute(input)
	if err != nil {
		logger.Error("projection failed",
			zap.String("op", "dossier.Build"),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to compute projection: %w", err)
	}
	logger.Debug("projection computed",
		zap.String("op", "dossier.Build"),
		zap.Int("years", len(result.Years)),
		zap.Int("tables", len(result.Tables)),
	)

	header := conf.Identification.Fields()
	if conf.Generator.Enabled && !gen.Available() {
		warnings = append(warnings, fmt.Sprintf("text generation is enabled but unavailable; set %s to draft empty sections", constants.CredentialEnvVar))
	}

	d := &Dossier{
		RunID:    runID,
		Title:    title(conf.Identification),
		Header:   header,
		Years:    result.Years,
		Tables:   result.Ordered(),
		Totals:   result.Totals,
		Warnings: warnings,
	}

	generationContext := GenerationContext(header, result)
	for _, s := range conf.ResolvedSections() {
		section := Section{
			Key:         s.Key,
			Title:       s.Title,
			Instruction: s.Instruction,
			Text:        strings.TrimSpace(s.Text),
			Limit:       s.Limit,
		}
		if section.Text == "" && conf.Generator.Enabled {
			section.Text = gen.Generate(ctx, section.Title, section.Instruction, generationContext)
			section.Generated = !textgen.IsPlaceholder(section.Text)
		}
		if truncated := textgen.Truncate(section.Text, section.Limit); truncated != section.Text {
			section.Text = truncated
			section.Truncated = true
		}
		d.Sections = append(d.Sections, section)
	}

	d.Duration = time.Since(start).String()
	logger.Info("dossier built",
		zap.String("op", "dossier.Build"),
		zap.Int("sections", len(d.Sections)),
		zap.Int("warnings", len(d.Warnings)),
		zap.String("duration", d.Duration),
	)
	return d, nil
}

// GenerationContext is the data handed to the text generator alongside each
// section instruction.
func GenerationContext(header []config.Field, result *projection.Result) map[string]interface{} {
	identification := make(map[string]string, len(header))
	for _, f := range header {
		identification[f.Label] = f.Value
	}
	return map[string]interface{}{
		"identification": identification,
		"years":          result.Years,
		"totals": map[string][]float64{
			"revenue": result.Totals.Revenue,
			"payroll": result.Totals.Payroll,
			"result":  result.Totals.Result,
		},
	}
}

// Document converts the dossier into renderer input.
func (d *Dossier) Document() render.Document {
	doc := render.Document{
		Title:  d.Title,
		Tables: d.Tables,
	}
	for _, f := range d.Header {
		doc.Header = append(doc.Header, render.Field{Label: f.Label, Value: f.Value})
	}
	for _, s := range d.Sections {
		doc.Sections = append(doc.Sections, render.Section{Title: s.Title, Text: s.Text})
	}
	return doc
}

// Report renders the HTML report.
func (d *Dossier) Report() ([]byte, error) {
	return render.Report(d.Document())
}

// Workbook renders the xlsx workbook.
func (d *Dossier) Workbook() ([]byte, error) {
	return render.Workbook(d.Tables)
}

// Export writes the report and workbook next to prefix.
func (d *Dossier) Export(prefix string) (render.Paths, error) {
	return render.WriteArtifacts(prefix, d.Document())
}

func title(id config.Identification) string {
	if t := strings.TrimSpace(id.ProjectTitle); t != "" {
		return constants.ReportTitle + ": " + t
	}
	return constants.ReportTitle
}
