package main

import (
	"encoding/json"
	"fmt"

	"github.com/iwvelando/iefp-dossier/internal/config"
	"github.com/iwvelando/iefp-dossier/internal/dossier"
	"github.com/iwvelando/iefp-dossier/internal/textgen"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	generateInstruction string
	generateContext     string
	generateLimit       int
	generateModel       string
	generateTimeout     string
)

var generateCmd = &cobra.Command{
	Use:   "generate <label>",
	Short: "Draft one narrative section with the text generator",
	Long:  `Sends a label, an instruction and an optional JSON context to the text generator and prints the result, or a placeholder when generation is unavailable.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateInstruction, "instruction", "", "what the section should cover")
	generateCmd.Flags().StringVar(&generateContext, "context", "", "JSON object handed to the generator")
	generateCmd.Flags().IntVar(&generateLimit, "limit", 0, "maximum characters of the result (0 for no limit)")
	generateCmd.Flags().StringVar(&generateModel, "model", "", "model override")
	generateCmd.Flags().StringVar(&generateTimeout, "timeout", "", "generation timeout, e.g. 30s")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger, err := initializeLogger(config.LoggingConfig{}, logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	var contextData map[string]interface{}
	if generateContext != "" {
		if err := json.Unmarshal([]byte(generateContext), &contextData); err != nil {
			return fmt.Errorf("invalid --context JSON: %w", err)
		}
	}

	gen, err := dossier.NewGenerator(cmd.Context(), logger, config.GeneratorConfig{
		Enabled: true,
		Model:   generateModel,
		Timeout: generateTimeout,
	}, credential())
	if err != nil {
		return fmt.Errorf("failed to initialize text generator: %w", err)
	}
	if !gen.Available() {
		logger.Warn("text generator unavailable; printing placeholder",
			zap.String("op", "main.generate"),
		)
	}

	text := gen.Generate(cmd.Context(), args[0], generateInstruction, contextData)
	fmt.Fprintln(cmd.OutOrStdout(), textgen.Truncate(text, generateLimit))
	return nil
}
