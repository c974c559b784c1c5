package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/el2nil/calculator/internal/display"
	"github.com/el2nil/calculator/internal/graph"
)

func newPlotCmd(a *app) *cobra.Command {
	var (
		given    []string
		variable string
		from, to float64
		n, width int
		load     string
	)

	cmd := &cobra.Command{
		Use:   "plot [keys...]",
		Short: "Tabulate a calculation as a function of a variable",
		Long: `Tabulate a calculation as a function of a variable.

The calculation is given as keys, or loaded from a save slot (by default the
graph slot). It is evaluated with the variable bound to evenly spaced values
from --from to --to. Values that are not finite are shown as gaps.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine(given)
			if err != nil {
				return err
			}
			k := a.keypad(e)
			if len(args) > 0 {
				if err := a.press(k, strings.Join(args, " ")); err != nil {
					return err
				}
			} else {
				if load == "" {
					load = slotGraph
				}
				if err := a.restore(k, load, ""); err != nil {
					return err
				}
			}
			if variable == "" {
				variable = a.cfg.GraphVariable
			}
			pts, err := graph.Sample(e, variable, from, to, n)
			if err != nil {
				return fmt.Errorf("plot %q: %w", e.Description(), err)
			}
			a.log.Debugf("sampled %q at %d points", e.Description(), len(pts))
			fmt.Fprintf(cmd.OutOrStdout(), "y = %s\n", e.Description())
			plot(cmd.OutOrStdout(), pts, a.cfg.Display, width)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&given, "given", nil, "name=value variable definition (any number of times)")
	cmd.Flags().StringVar(&variable, "var", "", "variable to vary (default from config, usually M)")
	cmd.Flags().Float64Var(&from, "from", -10, "first value of the variable")
	cmd.Flags().Float64Var(&to, "to", 10, "last value of the variable")
	cmd.Flags().IntVarP(&n, "samples", "n", 21, "number of samples")
	cmd.Flags().IntVar(&width, "width", 40, "width of the bar chart, 0 for none")
	cmd.Flags().StringVar(&load, "load", "", "plot the program in a save slot")

	return cmd
}

// plot writes one line per point: x, y, and a mark placed between the
// smallest and largest y.
func plot(w io.Writer, pts []graph.Point, f display.Formatter, width int) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		if p.OK {
			lo = math.Min(lo, p.Y)
			hi = math.Max(hi, p.Y)
		}
	}
	for _, p := range pts {
		x := strconv.FormatFloat(p.X, 'g', 6, 64)
		if !p.OK {
			fmt.Fprintf(w, "%12s %14s\n", x, "-")
			continue
		}
		fmt.Fprintf(w, "%12s %14s", x, f.Format(p.Y))
		if width > 0 {
			col := 0
			if hi > lo {
				col = int(math.Round((p.Y - lo) / (hi - lo) * float64(width-1)))
			}
			fmt.Fprintf(w, " |%s*", strings.Repeat(" ", col))
		}
		fmt.Fprintln(w)
	}
}
