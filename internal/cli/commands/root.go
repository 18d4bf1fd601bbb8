// Package commands implements the vlistctl command tree.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/go-theft-auto/vlist"
)

// NewRootCmd builds the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "vlistctl",
		Short: "Inspect and replay virtualized list layouts",
		Long: `vlistctl computes item positions and visible ranges for virtualized lists
and replays scripted scroll sessions against an in-memory host.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			vlist.SetVerbose(verbose)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log engine decisions to stderr")

	root.AddCommand(simulateCmd())
	root.AddCommand(positionsCmd())
	root.AddCommand(rangeCmd())
	root.AddCommand(versionCmd())

	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
