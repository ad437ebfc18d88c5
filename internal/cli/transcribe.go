package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/forPelevin/voskcap/internal/config"
	"github.com/forPelevin/voskcap/internal/pipeline"
)

type transcribeFlags struct {
	input        string
	output       string
	models       []string
	language     string
	punctuation  string
	probeSeconds int
	strict       bool
}

func runTranscribe(cmd *cobra.Command, g *globalFlags, f *transcribeFlags) error {
	settings, logger, err := loadSettings(cmd, g, func(c *config.Config) {
		if cmd.Flags().Changed("probe-seconds") {
			c.Probe.Seconds = f.probeSeconds
		}
		if f.strict {
			c.Punctuation.Strict = true
		}
	})
	if err != nil {
		return err
	}

	absIn, err := filepath.Abs(f.input)
	if err != nil {
		return err
	}

	ctx, cancel := runContext(cmd, settings)
	defer cancel()

	return pipeline.Run(ctx, pipeline.Config{
		Input:            absIn,
		Output:           f.output,
		Models:           f.models,
		Language:         f.language,
		PunctuationModel: f.punctuation,
		Settings:         settings,
		Logger:           logger,
	})
}

func runContext(cmd *cobra.Command, settings *config.Config) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	if d := settings.RunTimeout(); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		return ctx, func() { cancel(); stop() }
	}
	return ctx, stop
}
