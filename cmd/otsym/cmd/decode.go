package cmd

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceSym/pkg/kicad/libpin"
	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <record>",
	Short: "Decode a single pin record",
	Long: `Decode one "X" pin record and show its fields.

The record may be quoted as one argument or given as separate words.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	p, err := libpin.DecodeRecord(strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("error decoding record: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, item := range p.Info() {
		fmt.Fprintf(out, "%-12s %s\n", item.Label+":", item.Value)
	}
	pos, end := p.Position(), p.EndPoint()
	fmt.Fprintf(out, "%-12s (%d,%d)\n", "Position:", pos.X, pos.Y)
	fmt.Fprintf(out, "%-12s (%d,%d)\n", "End:", end.X, end.Y)
	fmt.Fprintf(out, "%-12s %d\n", "Unit:", p.Unit())
	fmt.Fprintf(out, "%-12s %d\n", "Convert:", p.Convert())
	fmt.Fprintf(out, "%-12s %s\n", "Record:", libpin.EncodeRecord(p))
	return nil
}
