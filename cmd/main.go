package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oksasatya/car-collection/config"
	"github.com/oksasatya/car-collection/pkg/helpers"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "car-collection",
		Short:         "car-collection web server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newServeCmd(), newMigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// bootstrap loads .env (if present) and the environment, then builds the logger.
func bootstrap() (*config.Config, *logrus.Logger, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, helpers.NewLogger(cfg.AppName, cfg.Env), nil
}
