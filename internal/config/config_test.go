package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Example dossier",
			configPath: filepath.Join("..", "..", "test", "test_dossier.yaml"),
			wantError:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationFields(t *testing.T) {
	conf, err := LoadConfiguration(filepath.Join("..", "..", "test", "test_dossier.yaml"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if len(conf.Years) != 3 || conf.Years[0] != 2025 || conf.Years[2] != 2027 {
		t.Errorf("unexpected years %v", conf.Years)
	}
	if conf.Identification.TaxID != "509876543" {
		t.Errorf("expected tax id 509876543, got %q", conf.Identification.TaxID)
	}
	if conf.Loan.Amount == nil || *conf.Loan.Amount != 12000 {
		t.Errorf("expected loan amount 12000, got %v", conf.Loan.Amount)
	}
	if conf.Loan.TermYears == nil || *conf.Loan.TermYears != 3 {
		t.Errorf("expected loan term 3, got %v", conf.Loan.TermYears)
	}
	if len(conf.Sales) != 1 || conf.Sales[0].Label != "Serviço A" {
		t.Fatalf("unexpected sales %+v", conf.Sales)
	}
	if conf.Sales[0].MonthsFirstYear == nil || *conf.Sales[0].MonthsFirstYear != 10 {
		t.Errorf("expected 10 months in the first year, got %v", conf.Sales[0].MonthsFirstYear)
	}
	if conf.Assumptions.DepreciationLives.IT == nil || *conf.Assumptions.DepreciationLives.IT != 3 {
		t.Errorf("expected IT life 3, got %v", conf.Assumptions.DepreciationLives.IT)
	}
	if conf.Generator.Timeout != "20s" {
		t.Errorf("expected generator timeout 20s, got %q", conf.Generator.Timeout)
	}
	if conf.Logging.Format != "console" {
		t.Errorf("expected console logging, got %q", conf.Logging.Format)
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "test", "test_dossier.yaml"))
	if err != nil {
		t.Fatalf("failed to read test config: %v", err)
	}

	conf, err := LoadConfigurationFromReader(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if conf.Identification.CompanyName != "Padaria do Bairro, Lda" {
		t.Errorf("unexpected company name %q", conf.Identification.CompanyName)
	}
}

func TestLoadConfigurationFromReaderEmpty(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader("  \n"))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if len(conf.Years) != 0 || len(conf.Sales) != 0 {
		t.Errorf("expected empty configuration, got %+v", conf)
	}
}

func TestLoadConfigurationMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Broken indentation", "years: [2025, 2026\nsales:\n  - label: x\n    unitPrice: : 3"},
		{"Wrong type for years", "years: not-a-list-of-years\n"},
		{"Tab indentation", "loan:\n\tamount: 5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfigurationFromReader(strings.NewReader(tt.content))
			if err == nil {
				t.Fatal("expected an error for malformed input")
			}
		})
	}
}

func TestLoadConfigurationMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("sales: [\n"), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	_, err := LoadConfiguration(path)
	if err == nil {
		t.Fatal("expected an error for malformed file")
	}
	if !strings.Contains(err.Error(), "error reading config file") {
		t.Errorf("expected descriptive error, got %v", err)
	}
}
