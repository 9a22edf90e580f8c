// Package commands implements the CLI commands for autoload.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/autoload/internal/app"
	"go.trai.ch/autoload/internal/build"
	"go.trai.ch/autoload/internal/core/domain"
)

// CLI represents the command line interface for autoload.
type CLI struct {
	app      Application
	rootCmd  *cobra.Command
	setJSON  func(bool)
	setDebug func(bool)
}

// Application represents the application logic interface.
type Application interface {
	UseConfig(path string)
	Rebuild(ctx context.Context, opts app.RebuildOptions) (*domain.Summary, error)
	Resolve(ctx context.Context, names []string) error
	Describe(ctx context.Context, name string) (*app.TypeReport, error)
	Show(ctx context.Context, name string) (string, []byte, error)
	Validate(ctx context.Context) ([]domain.Diagnostic, error)
	Dump(ctx context.Context, w io.Writer, format string) error
	SaveDatabase(ctx context.Context) error
	Clean(ctx context.Context, opts app.CleanOptions) error
	Watch(ctx context.Context, opts app.WatchOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "autoload",
		Short:         "Index class declarations and load them on demand",
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

	rootCmd.PersistentFlags().StringP("config", "c", "", "Project file, or the folder to search it from")
	rootCmd.PersistentFlags().Bool("json", false, "Log as JSON lines")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug messages")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		path, _ := cmd.Flags().GetString("config")
		c.app.UseConfig(path)
		// Unset flags leave the environment's logging settings alone.
		applyBool(cmd, "json", c.setJSON)
		applyBool(cmd, "verbose", c.setDebug)
	}

	rootCmd.AddCommand(c.newRebuildCmd())
	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newDescribeCmd())
	rootCmd.AddCommand(c.newShowCmd())
	rootCmd.AddCommand(c.newValidateCmd())
	rootCmd.AddCommand(c.newDumpCmd())
	rootCmd.AddCommand(c.newSaveCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// OnJSON registers the callback switching the log format when --json is given.
func (c *CLI) OnJSON(fn func(bool)) {
	c.setJSON = fn
}

// OnVerbose registers the callback enabling debug logging when --verbose is given.
func (c *CLI) OnVerbose(fn func(bool)) {
	c.setDebug = fn
}

func applyBool(cmd *cobra.Command, name string, fn func(bool)) {
	if fn == nil || !cmd.Flags().Changed(name) {
		return
	}
	value, _ := cmd.Flags().GetBool(name)
	fn(value)
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
