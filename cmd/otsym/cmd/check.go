package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/OpenTraceLab/OpenTraceSym/pkg/kicad/libpin"
	"github.com/OpenTraceLab/OpenTraceSym/pkg/kicad/symlib"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var checkStrict bool

var checkCmd = &cobra.Command{
	Use:   "check <library_file>",
	Short: "Check pin records of a legacy library",
	Long: `Decode every pin record of a legacy library (.lib) and re-encode it.

Reports records that fail to decode and records whose re-encoded form
differs from the original. Exits with an error when anything is reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "stop at the first bad record")
}

func runCheck(cmd *cobra.Command, args []string) error {
	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	strict := checkStrict || cfg.Check.Strict
	out := cmd.OutOrStdout()

	var checked, problems int
	err = symlib.ScanRecords(file, func(rec symlib.Record) error {
		checked++
		p, err := libpin.DecodeRecord(rec.Text)
		if err != nil {
			problems++
			fmt.Fprintf(out, "%s:%d: %s: %v\n", args[0], rec.Line, rec.Symbol, err)
			if strict {
				return &symlib.RecordError{Record: rec, Err: err}
			}
			return nil
		}

		want := strings.Join(strings.Fields(rec.Text), " ")
		if got := libpin.EncodeRecord(p); got != want {
			problems++
			fmt.Fprintf(out, "%s:%d: %s: round trip mismatch\n  read:  %s\n  wrote: %s\n",
				args[0], rec.Line, rec.Symbol, want, got)
		}
		return nil
	})
	log.Debug("checked library",
		zap.String("file", args[0]),
		zap.Int("records", checked),
		zap.Int("problems", problems))
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%d pin record(s), %d problem(s)\n", checked, problems)
	if problems > 0 {
		return fmt.Errorf("%s: %d problem(s) found", args[0], problems)
	}
	return nil
}
