package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/forPelevin/voskcap/internal/models"
)

func newModelsCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List models found in the search directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, _, err := loadSettings(cmd, g, nil)
			if err != nil {
				return err
			}
			found, err := models.NewResolver(settings.Models.SearchDirs).Discover()
			if err != nil {
				return err
			}
			models.MeasureSizes(found)
			out := cmd.OutOrStdout()
			if len(found) == 0 {
				fmt.Fprintf(out, "No models found in %v\n", settings.Models.SearchDirs)
				return nil
			}
			rows := make([][]string, 0, len(found))
			for _, m := range found {
				rows = append(rows, []string{m.Name, m.Path, humanize.Bytes(uint64(m.SizeBytes))})
			}
			fmt.Fprintln(out, renderTable([]string{"Name", "Path", "Size"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))
			return nil
		},
	}
}
