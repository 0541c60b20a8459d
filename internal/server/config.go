package server

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/iwvelando/iefp-dossier/internal/config"
	"github.com/iwvelando/iefp-dossier/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of the dossier API process. Generator settings
// apply to every request; an uploaded dossier only decides whether its empty
// sections are drafted.
type Config struct {
	Address         string                 `yaml:"address"`
	MaxUploadSize   string                 `yaml:"maxUploadSize"`
	ShutdownTimeout string                 `yaml:"shutdownTimeout"`
	Logging         config.LoggingConfig   `yaml:"logging"`
	Generator       config.GeneratorConfig `yaml:"generator"`

	uploadSizeBytes int64
	shutdown        time.Duration
}

// Overrides carries command line values that take precedence over the file.
// Empty fields leave the loaded value untouched.
type Overrides struct {
	Address          string
	MaxUploadSize    string
	Model            string
	GeneratorTimeout string
}

// DefaultConfig returns the settings used when no server file exists.
func DefaultConfig() *Config {
	return &Config{
		Address:         constants.DefaultServerAddress,
		MaxUploadSize:   strconv.FormatInt(constants.DefaultMaxUploadSizeBytes, 10),
		ShutdownTimeout: (constants.DefaultShutdownTimeoutSeconds * time.Second).String(),
		Generator: config.GeneratorConfig{
			Enabled: true,
			Model:   constants.DefaultGeneratorModel,
		},
		uploadSizeBytes: constants.DefaultMaxUploadSizeBytes,
		shutdown:        constants.DefaultShutdownTimeoutSeconds * time.Second,
	}
}

// LoadConfig reads the server file at path. A missing file yields
// DefaultConfig without error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply merges command line overrides and re-validates the result.
func (c *Config) Apply(o Overrides) error {
	if o.Address != "" {
		c.Address = o.Address
	}
	if o.MaxUploadSize != "" {
		c.MaxUploadSize = o.MaxUploadSize
	}
	if o.Model != "" {
		c.Generator.Model = o.Model
	}
	if o.GeneratorTimeout != "" {
		c.Generator.Timeout = o.GeneratorTimeout
	}
	return c.normalize()
}

// UploadSizeBytes returns the upload limit in bytes.
func (c *Config) UploadSizeBytes() int64 {
	if c == nil || c.uploadSizeBytes <= 0 {
		return constants.DefaultMaxUploadSizeBytes
	}
	return c.uploadSizeBytes
}

// ShutdownTimeoutDuration returns how long in-flight requests may take to
// finish once the server is asked to stop.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	if c == nil || c.shutdown <= 0 {
		return constants.DefaultShutdownTimeoutSeconds * time.Second
	}
	return c.shutdown
}

// GeneratorFor returns the generator settings for one uploaded dossier: the
// server's model, timeout and temperature with the upload's Enabled flag.
func (c *Config) GeneratorFor(upload config.GeneratorConfig) config.GeneratorConfig {
	settings := DefaultConfig().Generator
	if c != nil {
		settings = c.Generator
	}
	settings.Enabled = upload.Enabled
	return settings
}

func (c *Config) normalize() error {
	if strings.TrimSpace(c.Address) == "" {
		c.Address = constants.DefaultServerAddress
	}

	size, err := ParseSize(c.MaxUploadSize)
	if err != nil {
		return err
	}
	if size <= 0 {
		size = constants.DefaultMaxUploadSizeBytes
	}
	c.uploadSizeBytes = size
	c.MaxUploadSize = strconv.FormatInt(size, 10)

	c.shutdown = constants.DefaultShutdownTimeoutSeconds * time.Second
	if s := strings.TrimSpace(c.ShutdownTimeout); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid shutdownTimeout %q: %w", c.ShutdownTimeout, err)
		}
		if d > 0 {
			c.shutdown = d
		}
	}

	if strings.TrimSpace(c.Generator.Model) == "" {
		c.Generator.Model = constants.DefaultGeneratorModel
	}
	if _, err := c.Generator.TimeoutDuration(); err != nil {
		return fmt.Errorf("invalid generator settings: %w", err)
	}
	if t := c.Generator.Temperature; t != nil && (*t < 0 || *t > 2) {
		return fmt.Errorf("invalid generator settings: temperature %.2f outside [0, 2]", *t)
	}
	return nil
}

var sizeUnits = map[string]int64{
	"":   1,
	"B":  1,
	"K":  1 << 10,
	"KB": 1 << 10,
	"M":  1 << 20,
	"MB": 1 << 20,
	"G":  1 << 30,
	"GB": 1 << 30,
}

// ParseSize converts a size such as "256K" or "10M" into bytes. An empty
// value means the default upload limit.
func ParseSize(value string) (int64, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(value))
	if trimmed == "" {
		return constants.DefaultMaxUploadSizeBytes, nil
	}

	number := strings.TrimRightFunc(trimmed, func(r rune) bool { return !unicode.IsDigit(r) })
	unit := strings.TrimSpace(trimmed[len(number):])
	if number == "" {
		return 0, fmt.Errorf("invalid size: %s", value)
	}

	n, err := strconv.ParseInt(strings.TrimSpace(number), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	multiplier, ok := sizeUnits[unit]
	if !ok {
		return 0, fmt.Errorf("unsupported size unit %q", unit)
	}
	if n > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return n * multiplier, nil
}
