package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"microsvc/internal/app"
	"microsvc/internal/config"
	"microsvc/internal/logging"
)

const defaultPort = 5000

var configFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.WithError(err).Error("shortener failed")
		os.Exit(1)
	}
}

// newRootCmd builds the CLI. Running it without a subcommand serves.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "shortener",
		Short:         "URL shortener API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to a YAML config file")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}
	root.AddCommand(serve)
	root.RunE = serve.RunE

	return root
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile, defaultPort)
	if err != nil {
		return err
	}
	log, err := logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		return err
	}

	svc, err := app.NewShortener(cfg, log)
	if err != nil {
		return err
	}
	defer svc.Close()

	log.WithField("port", cfg.Port).Info("starting URL shortener")
	if err := svc.Server.Run(context.Background()); err != nil {
		return err
	}
	log.Info("URL shortener stopped gracefully")
	return nil
}
