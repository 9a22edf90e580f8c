package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/autoload/internal/app"
)

func (c *CLI) newRebuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rebuild",
		Short: "Index every module and refresh the module snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			save, _ := cmd.Flags().GetBool("save")
			_, err := c.app.Rebuild(cmd.Context(), app.RebuildOptions{Save: save})
			return err
		},
	}
	cmd.Flags().BoolP("save", "s", false, "Write the consolidated database afterwards")
	return cmd
}

func (c *CLI) newSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Write the consolidated database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.SaveDatabase(cmd.Context())
		},
	}
}

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild whenever module files change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			save, _ := cmd.Flags().GetBool("save")
			window, _ := cmd.Flags().GetDuration("debounce")
			return c.app.Watch(cmd.Context(), app.WatchOptions{Save: save, Window: window})
		},
	}
	cmd.Flags().BoolP("save", "s", false, "Write the consolidated database after every rebuild")
	cmd.Flags().Duration("debounce", 0, "Quiet period before a rebuild (default 200ms)")
	return cmd
}
