package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/ccplan/internal/ui/report"
)

func (c *CLI) newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Print the workspace targets in planning order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			jsonMode, _ := cmd.Flags().GetBool("json")

			nodes, err := c.app.Graph(configPath)
			if err != nil {
				return err
			}
			if jsonMode {
				return report.JSON(cmd.OutOrStdout(), nodes)
			}
			report.NewPrinter(cmd.OutOrStdout()).Graph(nodes)
			return nil
		},
	}
}
