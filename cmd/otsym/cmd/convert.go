package cmd

import (
	"fmt"
	"os"

	"github.com/OpenTraceLab/OpenTraceSym/pkg/kicad/symlib"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var convertOutput string

var convertCmd = &cobra.Command{
	Use:   "convert <library_file>",
	Short: "Convert a symbol library to the legacy format",
	Long: `Read a KiCad 6+ (.kicad_sym) or legacy (.lib) library and write it as a
legacy .lib file, to stdout unless -o is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output file (default stdout)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	symbols, err := loadSymbols(args[0])
	if err != nil {
		return err
	}

	if convertOutput == "" {
		return symlib.WriteLegacy(cmd.OutOrStdout(), symbols)
	}

	file, err := os.Create(convertOutput)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := symlib.WriteLegacy(file, symbols); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", convertOutput, err)
	}
	if err := file.Close(); err != nil {
		return err
	}

	log.Info("converted library",
		zap.String("input", args[0]),
		zap.String("output", convertOutput),
		zap.Int("symbols", len(symbols)))
	return nil
}
