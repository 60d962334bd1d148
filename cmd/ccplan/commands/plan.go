package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/ccplan/internal/app"
	"go.trai.ch/ccplan/internal/ui/report"
)

func (c *CLI) newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [targets...]",
		Short: "Plan the given targets and everything they depend on",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			if len(args) == 0 && !all {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			configPath, _ := cmd.Flags().GetString("config")
			jobs, _ := cmd.Flags().GetInt("jobs")
			showActions, _ := cmd.Flags().GetBool("actions")
			showTimings, _ := cmd.Flags().GetBool("timings")
			jsonMode, _ := cmd.Flags().GetBool("json")

			res, err := c.app.Plan(cmd.Context(), args, app.PlanOptions{
				ConfigPath:  configPath,
				All:         all,
				Parallelism: jobs,
			})
			if res == nil {
				return err
			}

			if jsonMode {
				if !showTimings {
					res.Timings = nil
				}
				if jsonErr := report.JSON(cmd.OutOrStdout(), res); jsonErr != nil {
					return jsonErr
				}
				return err
			}

			p := report.NewPrinter(cmd.OutOrStdout())
			p.Plan(res, showActions)
			if showTimings {
				p.Timings(res.Timings)
			}
			return err
		},
	}
	cmd.Flags().BoolP("all", "a", false, "Plan every target of the workspace")
	cmd.Flags().IntP("jobs", "j", 0, "Number of targets planned concurrently (0 means one per CPU)")
	cmd.Flags().Bool("actions", false, "List the actions registered for every target")
	cmd.Flags().Bool("timings", false, "Print how long planning each target took")
	return cmd
}
