package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/forPelevin/voskcap/internal/config"
	"github.com/forPelevin/voskcap/internal/pipeline"
	"github.com/forPelevin/voskcap/internal/usecase"
)

func newProbeCommand(g *globalFlags) *cobra.Command {
	var (
		input        string
		modelIDs     []string
		probeSeconds int
	)
	cmd := &cobra.Command{
		Use:   "probe -i <media> [-m <model>|auto]...",
		Short: "Score candidate models on a probe window without writing captions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, logger, err := loadSettings(cmd, g, func(c *config.Config) {
				if cmd.Flags().Changed("probe-seconds") {
					c.Probe.Seconds = probeSeconds
				}
			})
			if err != nil {
				return err
			}
			absIn, err := filepath.Abs(input)
			if err != nil {
				return err
			}
			ctx, cancel := runContext(cmd, settings)
			defer cancel()

			sel, err := pipeline.Probe(ctx, pipeline.Config{
				Input:    absIn,
				Models:   modelIDs,
				Settings: settings,
				Logger:   logger,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderSelection(sel))
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Media file to probe")
	cmd.Flags().StringArrayVarP(&modelIDs, "model", "m", nil, "Model name, path or \"auto\" (default auto)")
	cmd.Flags().IntVar(&probeSeconds, "probe-seconds", 0, "Length of the probe window in seconds")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func renderSelection(sel usecase.Selection) string {
	rows := make([][]string, 0, len(sel.Candidates))
	for _, c := range sel.Candidates {
		score, words, status := "-", "-", "ok"
		switch {
		case c.Scored:
			score = fmt.Sprintf("%.3f", c.Score)
			words = fmt.Sprint(c.Words)
			if c.Path == sel.Best.Path {
				status = "selected"
			}
		case c.Err != nil:
			status = c.Err.Error()
		default:
			status = "skipped"
		}
		rows = append(rows, []string{filepath.Base(c.Path), score, words, status})
	}
	return renderTable(
		[]string{"Model", "Score", "Words", "Status"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft},
	)
}
