package server

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/iefp-dossier/internal/config"
	"github.com/iwvelando/iefp-dossier/pkg/constants"
)

func writeServerConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server-config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != constants.DefaultServerAddress {
		t.Fatalf("expected default address, got %q", cfg.Address)
	}
	if cfg.UploadSizeBytes() != constants.DefaultMaxUploadSizeBytes {
		t.Fatalf("expected default upload size, got %d", cfg.UploadSizeBytes())
	}
	if cfg.ShutdownTimeoutDuration() != constants.DefaultShutdownTimeoutSeconds*time.Second {
		t.Fatalf("expected default shutdown timeout, got %s", cfg.ShutdownTimeoutDuration())
	}
	if !cfg.Generator.Enabled || cfg.Generator.Model != constants.DefaultGeneratorModel {
		t.Fatalf("expected enabled generator with default model, got %+v", cfg.Generator)
	}
	if cfg.Generator.Temperature != nil || cfg.Generator.Timeout != "" {
		t.Fatalf("expected generator timeout and temperature unset, got %+v", cfg.Generator)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeServerConfig(t, `address: 127.0.0.1:9000
maxUploadSize: 2M
shutdownTimeout: 3s
logging:
  level: debug
  format: console
generator:
  enabled: true
  model: gemini-2.5-pro
  timeout: 45s
  temperature: 0.2
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != "127.0.0.1:9000" {
		t.Fatalf("expected address override, got %s", cfg.Address)
	}
	if cfg.UploadSizeBytes() != 2*1024*1024 {
		t.Fatalf("expected max upload override, got %d", cfg.UploadSizeBytes())
	}
	if cfg.ShutdownTimeoutDuration() != 3*time.Second {
		t.Fatalf("expected shutdown timeout 3s, got %s", cfg.ShutdownTimeoutDuration())
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging settings %+v", cfg.Logging)
	}
	if cfg.Generator.Model != "gemini-2.5-pro" {
		t.Fatalf("expected generator model override, got %s", cfg.Generator.Model)
	}
	if d, err := cfg.Generator.TimeoutDuration(); err != nil || d != 45*time.Second {
		t.Fatalf("expected generator timeout 45s, got %s (%v)", d, err)
	}
	if cfg.Generator.Temperature == nil || *cfg.Generator.Temperature != 0.2 {
		t.Fatalf("expected generator temperature 0.2, got %v", cfg.Generator.Temperature)
	}
}

func TestLoadConfigGeneratorDisabled(t *testing.T) {
	cfg, err := LoadConfig(writeServerConfig(t, "generator:\n  enabled: false\n"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Generator.Enabled {
		t.Fatal("expected generator disabled")
	}
	if cfg.Generator.Model != constants.DefaultGeneratorModel {
		t.Fatalf("expected default model to be filled in, got %q", cfg.Generator.Model)
	}
}

func TestLoadConfigRejectsInvalidSettings(t *testing.T) {
	tests := map[string]struct {
		contents string
		want     string
	}{
		"upload size":       {"maxUploadSize: invalid", "invalid size"},
		"generator timeout": {"generator:\n  timeout: soon\n", "invalid generator settings"},
		"negative timeout":  {"generator:\n  timeout: -5s\n", "invalid generator settings"},
		"temperature":       {"generator:\n  temperature: 3.5\n", "temperature"},
		"shutdown timeout":  {"shutdownTimeout: later", "shutdownTimeout"},
		"malformed yaml":    {"address: [", "failed to parse server config"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeServerConfig(t, tc.contents))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestConfigApplyOverrides(t *testing.T) {
	cfg := DefaultConfig()

	err := cfg.Apply(Overrides{
		Address:          ":9090",
		MaxUploadSize:    "1M",
		Model:            "gemini-2.5-flash",
		GeneratorTimeout: "5s",
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if cfg.Address != ":9090" {
		t.Fatalf("expected address override, got %s", cfg.Address)
	}
	if cfg.UploadSizeBytes() != 1024*1024 {
		t.Fatalf("expected 1M upload size, got %d", cfg.UploadSizeBytes())
	}
	if cfg.Generator.Model != "gemini-2.5-flash" || cfg.Generator.Timeout != "5s" {
		t.Fatalf("unexpected generator settings %+v", cfg.Generator)
	}

	if err := cfg.Apply(Overrides{GeneratorTimeout: "nope"}); err == nil {
		t.Fatal("expected error for invalid generator timeout override")
	}
}

func TestConfigApplyKeepsUnsetValues(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Apply(Overrides{}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if cfg.Address != constants.DefaultServerAddress || cfg.Generator.Model != constants.DefaultGeneratorModel {
		t.Fatalf("expected defaults to survive empty overrides, got %+v", cfg)
	}
}

func TestGeneratorForUsesServerSettings(t *testing.T) {
	temperature := 0.9
	cfg := DefaultConfig()
	cfg.Generator = config.GeneratorConfig{Enabled: true, Model: "server-model", Timeout: "12s", Temperature: &temperature}

	upload := config.GeneratorConfig{Enabled: false, Model: "upload-model", Timeout: "bogus"}
	got := cfg.GeneratorFor(upload)

	if got.Enabled {
		t.Fatal("expected the upload to decide whether sections are drafted")
	}
	if got.Model != "server-model" || got.Timeout != "12s" || got.Temperature != &temperature {
		t.Fatalf("expected server generator settings, got %+v", got)
	}

	var nilConfig *Config
	if fallback := nilConfig.GeneratorFor(config.GeneratorConfig{Enabled: true}); !fallback.Enabled || fallback.Model != constants.DefaultGeneratorModel {
		t.Fatalf("expected defaults from a nil config, got %+v", fallback)
	}
}

func TestParseSize(t *testing.T) {
	tests := map[string]int64{
		"":          constants.DefaultMaxUploadSizeBytes,
		"1024":      1024,
		"512b":      512,
		"256K":      256 * 1024,
		"1m":        1024 * 1024,
		"3MB":       3 * 1024 * 1024,
		"2G":        2 * 1024 * 1024 * 1024,
		"  4096   ": 4096,
	}

	for input, expected := range tests {
		got, err := ParseSize(input)
		if err != nil {
			t.Fatalf("ParseSize(%q) returned error: %v", input, err)
		}
		if got != expected {
			t.Fatalf("ParseSize(%q) = %d, expected %d", input, got, expected)
		}
	}

	for _, input := range []string{"1TB", "abc", "99999999999999999999G"} {
		if _, err := ParseSize(input); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}
