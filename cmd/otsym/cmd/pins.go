package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/OpenTraceLab/OpenTraceSym/pkg/kicad/libpin"
	"github.com/spf13/cobra"
)

var sortPins bool

var pinsCmd = &cobra.Command{
	Use:   "pins <library_file> [symbol]",
	Short: "List symbol pins",
	Long: `List the pins of every symbol in a library (.lib or .kicad_sym).

Without symbol argument: lists all symbols
With symbol argument: lists only that symbol`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPins,
}

func init() {
	rootCmd.AddCommand(pinsCmd)
	pinsCmd.Flags().BoolVarP(&sortPins, "sort", "s", false, "sort pins by number, then name")
}

func runPins(cmd *cobra.Command, args []string) error {
	symbols, err := loadSymbols(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	found := false
	for _, sym := range symbols {
		if len(args) == 2 && sym.Name != args[1] {
			continue
		}
		found = true
		printPins(out, sym)
	}
	if len(args) == 2 && !found {
		return fmt.Errorf("symbol %q not found in %s", args[1], args[0])
	}
	return nil
}

func printPins(w io.Writer, sym *libpin.Symbol) {
	pins := sym.Pins()
	if sortPins {
		sort.SliceStable(pins, func(i, j int) bool { return pins[i].Compare(pins[j]) < 0 })
	}

	fmt.Fprintf(w, "Symbol: %s (%s, %d unit(s))\n", sym.Name, sym.Reference, sym.UnitCount)
	fmt.Fprintf(w, "  %-6s %-12s %-15s %-15s %-6s %-12s %6s %4s %4s\n",
		"NUMBER", "NAME", "TYPE", "STYLE", "ORIENT", "POSITION", "LENGTH", "UNIT", "CONV")
	for _, p := range pins {
		pos := p.Position()
		style := libpin.StyleName(p.Shape())
		if !p.IsVisible() {
			style += " (hidden)"
		}
		fmt.Fprintf(w, "  %-6s %-12s %-15s %-15s %-6s %-12s %6d %4d %4d\n",
			p.Number(), p.Name(), p.Type().Label(), style, p.Orientation(),
			fmt.Sprintf("(%d,%d)", pos.X, pos.Y), p.Length(), p.Unit(), p.Convert())
	}
	fmt.Fprintln(w)
}
