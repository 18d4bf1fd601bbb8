package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-theft-auto/vlist/internal/cli/ui"
	"github.com/go-theft-auto/vlist/internal/scenario"
)

func simulateCmd() *cobra.Command {
	var (
		file            string
		overscan        int
		containerHeight float64
	)

	cmd := &cobra.Command{
		Use:   "simulate -f <scenario.yaml>",
		Short: "Replay a scroll scenario and print the state after each step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scenario.Load(file)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("overscan") {
				s.Overscan = &overscan
			}
			if cmd.Flags().Changed("container-height") {
				s.ContainerHeight = containerHeight
				if err := s.Validate(); err != nil {
					return err
				}
			}

			res, err := scenario.Run(s)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.Name != "" {
				ui.Header(out, res.Name)
			}
			tbl := ui.NewTable(out, "Step", "Action", "Offset", "Viewport", "Range", "Rendered", "Items", "Total", "Loads")
			for i, snap := range res.Snapshots {
				tbl.AddRow(i, snap.Step,
					ui.FormatPx(snap.ScrollOffset),
					ui.FormatPx(snap.ContainerHeight),
					ui.FormatRange(snap.Range),
					snap.Rendered,
					snap.ItemCount,
					ui.FormatPx(snap.TotalHeight),
					snap.Loads,
				)
			}
			tbl.Print()
			ui.Success(out, "replayed %d steps, %d loads", len(res.Snapshots)-1, res.Loads)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "scenario file")
	cmd.Flags().IntVar(&overscan, "overscan", 3, "override the scenario overscan")
	cmd.Flags().Float64Var(&containerHeight, "container-height", 0, "override the container height")
	if err := cmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("mark flag: %v", err))
	}

	return cmd
}
