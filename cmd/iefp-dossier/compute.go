package main

import (
	"os"

	"github.com/iwvelando/iefp-dossier/internal/projection"
	"github.com/iwvelando/iefp-dossier/pkg/constants"
	"github.com/iwvelando/iefp-dossier/pkg/output"
	"github.com/iwvelando/iefp-dossier/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var outputFormatFlag string

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Print the projection tables of a dossier",
	Args:  cobra.NoArgs,
	RunE:  runCompute,
}

func init() {
	computeCmd.Flags().StringVar(&outputFormatFlag, "output-format", "", "type of output override: pretty, csv, json")
}

func runCompute(cmd *cobra.Command, args []string) error {
	conf, logger, err := loadDossier()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if outputFormatFlag != "" {
		outputFormat = outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.compute"),
		)
	}

	result, err := projection.Compute(conf.ProjectionInput())
	if err != nil {
		logger.Error("failed to compute projection",
			zap.String("op", "main.compute"),
			zap.Error(err),
		)
		return err
	}

	return output.Write(os.Stdout, outputFormat, result)
}
