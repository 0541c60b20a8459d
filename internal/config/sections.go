package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/iefp-dossier/pkg/constants"
)

// Section keys of the application form.
const (
	SectionObjectives = "objectives"
	SectionMarket     = "market"
	SectionFacilities = "facilities"
)

// DefaultSections returns the narrative sections of the application form.
func DefaultSections() []Section {
	return []Section{
		{
			Key:         SectionObjectives,
			Title:       "Objetivos do Projeto",
			Instruction: "Inclui metas e KPIs.",
			Limit:       constants.DefaultLimitObjectives,
		},
		{
			Key:         SectionMarket,
			Title:       "Mercado",
			Instruction: "Segmentos, necessidades, concorrência.",
			Limit:       constants.DefaultLimitMarket,
		},
		{
			Key:         SectionFacilities,
			Title:       "Instalações",
			Instruction: "Localização, meios técnicos e equipa.",
			Limit:       constants.DefaultLimitFacilities,
		},
	}
}

// ResolvedSections returns the configured sections, or the form defaults
// when none are configured. Known sections without a title, instruction or
// limit inherit the default ones.
func (conf *Configuration) ResolvedSections() []Section {
	if len(conf.Sections) == 0 {
		return DefaultSections()
	}

	defaults := make(map[string]Section)
	for _, s := range DefaultSections() {
		defaults[s.Key] = s
	}

	sections := make([]Section, 0, len(conf.Sections))
	for _, s := range conf.Sections {
		if d, ok := defaults[strings.ToLower(strings.TrimSpace(s.Key))]; ok {
			if s.Title == "" {
				s.Title = d.Title
			}
			if s.Instruction == "" {
				s.Instruction = d.Instruction
			}
			if s.Limit == 0 {
				s.Limit = d.Limit
			}
		}
		if s.Title == "" {
			s.Title = s.Key
		}
		sections = append(sections, s)
	}
	return sections
}

// Field is one labelled value of the report header.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Fields lists the identification values in form order, skipping blanks.
func (id Identification) Fields() []Field {
	all := []Field{
		{"Título do Projeto", id.ProjectTitle},
		{"Designação Social", id.CompanyName},
		{"NIF", id.TaxID},
		{"Promotor", id.Promoter},
		{"Forma Jurídica", id.LegalForm},
		{"Morada", id.Address},
		{"Email", id.Email},
		{"Telefone", id.Phone},
		{"CAE", id.ActivityCode},
	}

	fields := make([]Field, 0, len(all))
	for _, f := range all {
		if v := strings.TrimSpace(f.Value); v != "" {
			fields = append(fields, Field{Label: f.Label, Value: v})
		}
	}
	return fields
}

// TimeoutDuration parses the generator timeout, falling back to the default
// when unset.
func (g GeneratorConfig) TimeoutDuration() (time.Duration, error) {
	if strings.TrimSpace(g.Timeout) == "" {
		return constants.DefaultGeneratorTimeoutSeconds * time.Second, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(g.Timeout))
	if err != nil {
		return 0, fmt.Errorf("invalid generator timeout %q: %w", g.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("generator timeout must be positive, got %s", d)
	}
	return d, nil
}
