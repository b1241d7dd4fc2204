package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"FinSignal/pkg/config"
	applogger "FinSignal/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "datacheck",
		Short:         "Inspect FinSignal data sources",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "config/config.yaml", "config file path")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level")

	root.AddCommand(schemaCmd(opts))
	root.AddCommand(newsCmd(opts))
	return root
}

// loadConfig falls back to defaults plus environment when the file is absent.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithEnv(o.configPath)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	cfg, err = config.Default()
	if err != nil {
		return nil, err
	}
	if v := os.Getenv("FINNHUB_API_KEY"); v != "" {
		cfg.Finnhub.APIKey = v
	}
	if v := os.Getenv("DATA_ROOT"); v != "" {
		cfg.Data.Root = v
	}
	return cfg, nil
}

func (o *rootOptions) logger(cmd *cobra.Command) (*applogger.Logger, error) {
	level, err := zerolog.ParseLevel(o.logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", o.logLevel, err)
	}
	return applogger.NewWriter(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}, level), nil
}
