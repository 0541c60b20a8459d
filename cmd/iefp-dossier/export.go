package main

import (
	"fmt"

	"github.com/iwvelando/iefp-dossier/internal/dossier"
	"github.com/iwvelando/iefp-dossier/pkg/constants"
	"github.com/iwvelando/iefp-dossier/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var artifactPrefix string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the dossier report (.html) and workbook (.xlsx)",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&artifactPrefix, "output", "o", constants.DefaultArtifactPrefix, "path prefix of the exported files")
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := validation.ValidateArtifactPrefix(artifactPrefix); err != nil {
		return err
	}

	conf, logger, err := loadDossier()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	gen, err := dossier.NewGenerator(cmd.Context(), logger, conf.Generator, credential())
	if err != nil {
		return fmt.Errorf("failed to initialize text generator: %w", err)
	}

	d, err := dossier.Build(cmd.Context(), logger, conf, gen)
	if err != nil {
		return err
	}

	paths, err := d.Export(artifactPrefix)
	if err != nil {
		logger.Error("failed to export dossier",
			zap.String("op", "main.export"),
			zap.Error(err),
		)
		return err
	}

	logger.Info("dossier exported",
		zap.String("op", "main.export"),
		zap.String("runId", d.RunID),
		zap.String("report", paths.Report),
		zap.String("workbook", paths.Workbook),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", paths.Report, paths.Workbook)
	return nil
}
