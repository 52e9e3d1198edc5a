package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/OpenTraceLab/OpenTraceSym/internal/config"
	"github.com/OpenTraceLab/OpenTraceSym/internal/logger"
	"github.com/OpenTraceLab/OpenTraceSym/pkg/kicad/libpin"
	"github.com/OpenTraceLab/OpenTraceSym/pkg/kicad/symlib"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configFile string
	verbose    bool

	cfg *config.Config
	log = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "otsym",
	Short: "OpenTraceSym - KiCad symbol pin tools",
	Long: `OpenTraceSym (otsym) inspects and converts KiCad symbol libraries:
  - list the pins of legacy (.lib) and KiCad 6+ (.kicad_sym) symbols
  - decode single pin records
  - check pin records of a legacy library for format errors
  - convert .kicad_sym libraries to the legacy format

Examples:
  otsym pins 74xx.lib 74LS74              # Pins of one symbol
  otsym decode "X CLK 3 -400 0 200 R 50 50 1 1 I C"
  otsym check device.lib                  # Report bad pin records
  otsym convert opamp.kicad_sym -o opamp.lib`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) { _ = logger.Sync(log) },
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./otsym.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if verbose {
		c.Log.Level = "debug"
	}

	l, err := logger.New(logger.Config{
		Development: c.Log.Development,
		Level:       c.Log.Level,
		Encoding:    c.Log.Encoding,
	})
	if err != nil {
		return err
	}

	cfg, log = c, l.Named("otsym")
	return nil
}

// loadSymbols reads a library, picking the format from the file extension.
func loadSymbols(filename string) ([]*libpin.Symbol, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".kicad_sym":
		im := symlib.NewImporter(log)
		im.LineThickness = cfg.Symbol.LineThickness
		symbols, err := im.ParseFile(filename)
		if err != nil {
			return nil, fmt.Errorf("error parsing symbol library: %w", err)
		}
		return symbols, nil
	case ".lib":
		symbols, bad, err := symlib.LoadLegacyFile(filename, symlib.LoadOptions{
			Strict:        cfg.Check.Strict,
			LineThickness: cfg.Symbol.LineThickness,
			Logger:        log,
		})
		if err != nil {
			return nil, fmt.Errorf("error parsing library: %w", err)
		}
		if len(bad) > 0 {
			log.Warn("skipped bad pin records", zap.String("file", filename), zap.Int("count", len(bad)))
		}
		return symbols, nil
	}
	return nil, fmt.Errorf("unsupported library format %q", filepath.Ext(filename))
}
