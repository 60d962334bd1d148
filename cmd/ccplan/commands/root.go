// Package commands implements the CLI commands for ccplan.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/ccplan/internal/app"
	"go.trai.ch/ccplan/internal/build"
	"go.trai.ch/ccplan/internal/core/domain"
)

// CLI represents the command line interface for ccplan.
type CLI struct {
	app     Application
	log     LogSettings
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Plan(ctx context.Context, targetNames []string, opts app.PlanOptions) (*app.Report, error)
	Graph(configPath string) ([]app.GraphNode, error)
}

// LogSettings is implemented by loggers whose verbosity and format can change at run time.
type LogSettings interface {
	SetLevel(level domain.LogLevel)
	SetJSON(enabled bool)
}

// New creates a new CLI instance with the given app. log may be nil.
func New(a Application, log LogSettings) *CLI {
	rootCmd := &cobra.Command{
		Use:           "ccplan",
		Short:         "Plan the compile and link actions of C/C++ libraries",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", ".", "Workspace file, or the directory holding "+domain.WorkspaceFileName)
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().Bool("json", false, "Write logs and results as JSON")

	c := &CLI{
		app:     a,
		log:     log,
		rootCmd: rootCmd,
	}
	rootCmd.PersistentPreRun = c.applyLogSettings

	rootCmd.AddCommand(c.newPlanCmd())
	rootCmd.AddCommand(c.newGraphCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) applyLogSettings(cmd *cobra.Command, _ []string) {
	if c.log == nil {
		return
	}
	level, _ := cmd.Flags().GetString("log-level")
	jsonMode, _ := cmd.Flags().GetBool("json")
	c.log.SetLevel(domain.ParseLogLevel(level))
	c.log.SetJSON(jsonMode)
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
