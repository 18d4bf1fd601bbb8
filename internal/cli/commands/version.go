package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version information - set at build time
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "vlistctl version %s\n", Version)
			fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
			fmt.Fprintf(out, "  Go version: %s\n", runtime.Version())
		},
	}
}
