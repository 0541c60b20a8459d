package dossier

import (
	"context"
	"time"

	"github.com/iwvelando/iefp-dossier/internal/config"
	"github.com/iwvelando/iefp-dossier/internal/textgen"
	"github.com/iwvelando/iefp-dossier/pkg/constants"
	"go.uber.org/zap"
)

// GeneratorConfig combines the dossier generator settings with the
// credential supplied by the caller. An invalid timeout falls back to the
// default, matching the warning raised by ValidateConfiguration.
func GeneratorConfig(conf config.GeneratorConfig, apiKey string) textgen.Config {
	timeout, err := conf.TimeoutDuration()
	if err != nil {
		timeout = constants.DefaultGeneratorTimeoutSeconds * time.Second
	}

	cfg := textgen.Config{
		APIKey:      apiKey,
		Model:       conf.Model,
		Timeout:     timeout,
		Temperature: constants.DefaultGeneratorTemperature,
	}
	if cfg.Model == "" {
		cfg.Model = constants.DefaultGeneratorModel
	}
	if conf.Temperature != nil {
		cfg.Temperature = *conf.Temperature
	}
	return cfg
}

// NewGenerator builds the text generator for conf. A disabled generator or a
// missing credential yields an unavailable generator, not an error.
func NewGenerator(ctx context.Context, logger *zap.Logger, conf config.GeneratorConfig, apiKey string) (*textgen.Generator, error) {
	cfg := GeneratorConfig(conf, apiKey)
	if !conf.Enabled {
		cfg.APIKey = ""
	}
	return textgen.New(ctx, logger, cfg)
}
