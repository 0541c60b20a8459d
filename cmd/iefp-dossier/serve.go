package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/iefp-dossier/internal/dossier"
	"github.com/iwvelando/iefp-dossier/internal/server"
	"github.com/iwvelando/iefp-dossier/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	serverConfigLocation string
	serverAddress        string
	serverMaxUpload      string
	serverModel          string
	serverTimeout        string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dossier API over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serverConfigLocation, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	serveCmd.Flags().StringVar(&serverAddress, "address", "", "listen address override")
	serveCmd.Flags().StringVar(&serverMaxUpload, "max-upload-size", "", "maximum upload size override, e.g. 512K")
	serveCmd.Flags().StringVar(&serverModel, "model", "", "text generation model override")
	serveCmd.Flags().StringVar(&serverTimeout, "generator-timeout", "", "text generation timeout override, e.g. 30s")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := server.LoadConfig(serverConfigLocation)
	if err != nil {
		return err
	}
	if err := cfg.Apply(server.Overrides{
		Address:          serverAddress,
		MaxUploadSize:    serverMaxUpload,
		Model:            serverModel,
		GeneratorTimeout: serverTimeout,
	}); err != nil {
		return err
	}

	logger, err := initializeLogger(cfg.Logging, logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gen, err := dossier.NewGenerator(ctx, logger, cfg.Generator, credential())
	if err != nil {
		return fmt.Errorf("failed to initialize text generator: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           server.NewHandler(logger, cfg, version, gen),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server",
			zap.String("op", "main.serve"),
			zap.String("address", cfg.Address),
			zap.Int64("maxUploadSize", cfg.UploadSizeBytes()),
			zap.String("generatorModel", cfg.Generator.Model),
			zap.Bool("generatorAvailable", gen.Available()),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down HTTP server", zap.String("op", "main.serve"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeoutDuration())
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
