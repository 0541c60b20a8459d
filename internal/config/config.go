// Package config defines the data structures of a dossier file and includes
// functions for loading it and converting it into projection input.
package config

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/viper"
)

// Configuration holds everything a dossier file describes.
type Configuration struct {
	Logging        LoggingConfig     `yaml:"logging,omitempty"`
	Output         OutputConfig      `yaml:"output,omitempty"`
	Identification Identification    `yaml:"identification,omitempty"`
	Years          []int             `yaml:"years,omitempty"`
	Assumptions    AssumptionsConfig `yaml:"assumptions,omitempty"`
	Loan           LoanConfig        `yaml:"loan,omitempty"`
	InitialEquity  *float64          `yaml:"initialEquity,omitempty"`
	Sales          []SalesLine       `yaml:"sales,omitempty"`
	Staff          []StaffLine       `yaml:"staff,omitempty"`
	Investments    []Investment      `yaml:"investments,omitempty"`
	Sections       []Section         `yaml:"sections,omitempty"`
	Generator      GeneratorConfig   `yaml:"generator,omitempty"`
	Strict         bool              `yaml:"strict,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// Identification is the promoter and project header of the application form.
type Identification struct {
	ProjectTitle string `yaml:"projectTitle,omitempty"`
	CompanyName  string `yaml:"companyName,omitempty"`
	TaxID        string `yaml:"taxId,omitempty"`
	Promoter     string `yaml:"promoter,omitempty"`
	LegalForm    string `yaml:"legalForm,omitempty"`
	Address      string `yaml:"address,omitempty"`
	Email        string `yaml:"email,omitempty"`
	Phone        string `yaml:"phone,omitempty"`
	ActivityCode string `yaml:"activityCode,omitempty"`
}

// AssumptionsConfig holds the business ratios. Unset values take the form
// defaults.
type AssumptionsConfig struct {
	RevenueGrowth               *float64          `yaml:"revenueGrowth,omitempty"`
	GrossMarginTarget           *float64          `yaml:"grossMarginTarget,omitempty"`
	OpexRevenueRatio            *float64          `yaml:"opexRevenueRatio,omitempty"`
	SocialChargesRatio          *float64          `yaml:"socialChargesRatio,omitempty"`
	WageRaiseRatio              *float64          `yaml:"wageRaiseRatio,omitempty"`
	DepreciationLives           DepreciationLives `yaml:"depreciationLives,omitempty"`
	StopDepreciationAtEndOfLife bool              `yaml:"stopDepreciationAtEndOfLife,omitempty"`
}

// DepreciationLives holds the useful life in years of each asset category.
type DepreciationLives struct {
	Equipment   *int `yaml:"equipment,omitempty"`
	IT          *int `yaml:"it,omitempty"`
	Vehicles    *int `yaml:"vehicles,omitempty"`
	Intangibles *int `yaml:"intangibles,omitempty"`
	Other       *int `yaml:"other,omitempty"`
}

// LoanConfig describes the bank loan financing the project.
type LoanConfig struct {
	Amount       *float64 `yaml:"amount,omitempty"`
	InterestRate *float64 `yaml:"interestRate,omitempty"`
	TermYears    *int     `yaml:"termYears,omitempty"`
}

// SalesLine is one product or service line of the sales plan.
type SalesLine struct {
	Label           string   `yaml:"label,omitempty"`
	UnitPrice       *float64 `yaml:"unitPrice,omitempty"`
	MonthlyQuantity *float64 `yaml:"monthlyQuantity,omitempty"`
	MonthsFirstYear *float64 `yaml:"monthsFirstYear,omitempty"`
}

// StaffLine is one role of the staffing plan.
type StaffLine struct {
	Role            string   `yaml:"role,omitempty"`
	Headcount       *float64 `yaml:"headcount,omitempty"`
	MonthlyWage     *float64 `yaml:"monthlyWage,omitempty"`
	MonthsFirstYear *float64 `yaml:"monthsFirstYear,omitempty"`
}

// Investment is one asset purchase of the investment plan.
type Investment struct {
	Category    string   `yaml:"category,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Amount      *float64 `yaml:"amount,omitempty"`
}

// Section is a narrative part of the dossier. Text left empty may be drafted
// by the text generator from Instruction.
type Section struct {
	Key         string `yaml:"key,omitempty"`
	Title       string `yaml:"title,omitempty"`
	Instruction string `yaml:"instruction,omitempty"`
	Text        string `yaml:"text,omitempty"`
	Limit       int    `yaml:"limit,omitempty"`
}

// GeneratorConfig controls drafting of empty sections. The credential is
// never read from the dossier file.
type GeneratorConfig struct {
	Enabled     bool     `yaml:"enabled,omitempty"`
	Model       string   `yaml:"model,omitempty"`
	Timeout     string   `yaml:"timeout,omitempty"`
	Temperature *float64 `yaml:"temperature,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
// Empty input yields an empty configuration.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if len(bytes.TrimSpace(data)) > 0 {
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("error reading config data, %w", err)
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}
