package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-theft-auto/vlist"
	"github.com/go-theft-auto/vlist/internal/cli/ui"
)

// layoutFlags describe a list without a scenario file.
type layoutFlags struct {
	count   int
	height  float64
	heights []float64
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.count, "count", "n", 100, "number of items")
	cmd.Flags().Float64Var(&f.height, "height", 50, "fixed item height")
	cmd.Flags().Float64SliceVar(&f.heights, "heights", nil, "repeating item heights, overrides --height")
}

func (f *layoutFlags) table() (*vlist.PositionTable, error) {
	if f.count < 0 {
		return nil, fmt.Errorf("--count: %w", vlist.ErrNegativeItemCount)
	}
	for _, h := range f.heights {
		if h <= 0 {
			return nil, fmt.Errorf("--heights: %w", vlist.ErrNoItemHeight)
		}
	}
	if len(f.heights) == 0 && f.height <= 0 {
		return nil, fmt.Errorf("--height: %w", vlist.ErrNoItemHeight)
	}

	src := vlist.FixedHeight(f.height)
	if len(f.heights) > 0 {
		heights := f.heights
		src = vlist.HeightBy(func(i int) float64 { return heights[i%len(heights)] })
	}
	return vlist.BuildPositions(f.count, src.At), nil
}

func positionsCmd() *cobra.Command {
	var (
		layout   layoutFlags
		from, to int
	)

	cmd := &cobra.Command{
		Use:   "positions",
		Short: "Print the position table of a list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := layout.table()
			if err != nil {
				return err
			}
			if to < 0 || to >= t.Len() {
				to = t.Len() - 1
			}
			if from < 0 {
				from = 0
			}

			out := cmd.OutOrStdout()
			tbl := ui.NewTable(out, "Index", "Start", "Size", "End")
			for i := from; i <= to; i++ {
				tbl.AddRow(i, ui.FormatPx(t.Start(i)), ui.FormatPx(t.Size(i)), ui.FormatPx(t.End(i)))
			}
			tbl.Print()
			ui.Info(out, "%d items, total %s", t.Len(), ui.FormatPx(t.Total))
			return nil
		},
	}

	layout.register(cmd)
	cmd.Flags().IntVar(&from, "from", 0, "first index to print")
	cmd.Flags().IntVar(&to, "to", -1, "last index to print (default last item)")

	return cmd
}

func rangeCmd() *cobra.Command {
	var (
		layout   layoutFlags
		offset   float64
		viewport float64
		overscan int
	)

	cmd := &cobra.Command{
		Use:   "range",
		Short: "Resolve the rendered range for a scroll offset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := layout.table()
			if err != nil {
				return err
			}
			vp := vlist.Viewport{ScrollOffset: offset, ContainerHeight: viewport}
			visible := vlist.ResolveRange(vp, t, 0)
			rendered := vlist.ResolveRange(vp, t, overscan)

			out := cmd.OutOrStdout()
			tbl := ui.NewTable(out, "Range", "Indices", "Count")
			tbl.AddRow("visible", ui.FormatRange(visible), visible.Len())
			tbl.AddRow("rendered", ui.FormatRange(rendered), rendered.Len())
			tbl.Print()
			return nil
		},
	}

	layout.register(cmd)
	cmd.Flags().Float64Var(&offset, "offset", 0, "scroll offset")
	cmd.Flags().Float64Var(&viewport, "viewport", 400, "viewport height")
	cmd.Flags().IntVar(&overscan, "overscan", 3, "items rendered past each edge")

	return cmd
}
