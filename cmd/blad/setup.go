package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/srg/blad/pkg/config"
)

// setup loads the config file named by --config, if any, and the logger.
// A config file's log level applies only when neither --log-level nor
// --verbose is given.
func setup(cmd *cobra.Command) (*config.Config, *logrus.Logger, error) {
	cfg := config.DefaultConfig()
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}

	logger, err := configureLogger(cmd, "verbose")
	if err != nil {
		return nil, nil, err
	}
	if path != "" && !cmd.Flags().Changed("log-level") && !cmd.Flags().Changed("verbose") {
		logger = cfg.NewLogger()
	}
	logger.SetOutput(cmd.ErrOrStderr())

	return cfg, logger, nil
}

// resolveFormat returns the --format flag when given, the configured format otherwise.
func resolveFormat(cmd *cobra.Command, cfg *config.Config, flagValue string) (string, error) {
	format := cfg.OutputFormat
	if cmd.Flags().Changed("format") {
		format = flagValue
	}

	for _, f := range config.OutputFormats {
		if format == f {
			return format, nil
		}
	}
	return "", fmt.Errorf("invalid format '%s': must be one of %v", format, config.OutputFormats)
}
