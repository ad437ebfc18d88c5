package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/forPelevin/voskcap/internal/config"
	"github.com/forPelevin/voskcap/internal/logging"
)

type globalFlags struct {
	config    string
	logLevel  string
	logFormat string
}

// loadSettings reads the config file and environment, then applies command
// line overrides on top.
func loadSettings(cmd *cobra.Command, g *globalFlags, override func(*config.Config)) (*config.Config, *slog.Logger, error) {
	cfg, path, exists, err := config.Load(g.config)
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	err = cfg.ApplyOverrides(func(c *config.Config) {
		if g.logLevel != "" {
			c.Logging.Level = strings.ToLower(g.logLevel)
		}
		if g.logFormat != "" {
			c.Logging.Format = strings.ToLower(g.logFormat)
		}
		if override != nil {
			override(c)
		}
	})
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, nil, err
	}
	if exists {
		logger.Debug("config loaded", slog.String("path", path))
	}
	return cfg, logger, nil
}
