package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"microsvc/internal/app"
	"microsvc/internal/config"
	"microsvc/internal/logging"
)

const defaultPort = 5001

var configFile string

func main() {
	root := &cobra.Command{
		Use:           "usersvc",
		Short:         "User management API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to a YAML config file")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the users table",
		RunE:  runMigrate,
	}
	root.AddCommand(serve, migrate)
	root.RunE = serve.RunE

	if err := root.Execute(); err != nil {
		logrus.WithError(err).Error("usersvc failed")
		os.Exit(1)
	}
}

func load() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(configFile, defaultPort)
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := load()
	if err != nil {
		return err
	}

	svc, err := app.NewUserService(cfg, log)
	if err != nil {
		return err
	}
	defer svc.Close()

	log.WithField("port", cfg.Port).Info("starting user service")
	if err := svc.Server.Run(context.Background()); err != nil {
		return err
	}
	log.Info("user service stopped gracefully")
	return nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, log, err := load()
	if err != nil {
		return err
	}
	if err := app.MigrateUsers(cfg); err != nil {
		return err
	}
	log.WithField("dsn", cfg.DBDSN).Info("migrations applied")
	fmt.Fprintln(cmd.OutOrStdout(), "users table is up to date")
	return nil
}
