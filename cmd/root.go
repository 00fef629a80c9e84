package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamusis/gendex/internal/config"
	"github.com/kamusis/gendex/internal/detector"
	"github.com/kamusis/gendex/internal/dict"
	"github.com/kamusis/gendex/internal/gender"
)

var (
	flagDataset         string
	flagCaseInsensitive bool
	flagUnknown         string
	flagNoSnapshot      bool
	flagVerbose         bool
)

var rootCmd = &cobra.Command{
	Use:          "gendex",
	Short:        "gendex — guess gender from a first name",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `gendex looks a first name up in the nam_dict.txt name dictionary and
reports the most frequent gender, optionally for one country.

Settings are read from ~/.gendex/gendex.yaml, ~/.gendex/.env and GENDEX_*
environment variables, in increasing priority; flags override all of them.`,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagDataset, "dataset", "", "Path to the name dictionary (overrides config)")
	pf.BoolVarP(&flagCaseInsensitive, "case-insensitive", "i", false, "Match names regardless of case")
	pf.StringVar(&flagUnknown, "unknown", "", "Value reported for names without data")
	pf.BoolVar(&flagNoSnapshot, "no-snapshot", false, "Always parse the dictionary; ignore the snapshot cache")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Print diagnostics")
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// effectiveConfig resolves config file + environment, then applies global flags.
func effectiveConfig() (*config.Config, error) {
	cfg, err := config.Resolve()
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w", err)
	}
	if flagDataset != "" {
		if cfg.Dataset, err = config.ExpandPath(flagDataset); err != nil {
			return nil, err
		}
	}
	if flagCaseInsensitive {
		cfg.CaseSensitive = false
	}
	if flagUnknown != "" {
		cfg.UnknownValue = flagUnknown
	}
	if flagNoSnapshot {
		cfg.Snapshot = false
	}
	return cfg, nil
}

func parseOptions(cfg *config.Config) dict.Options {
	return dict.Options{
		CaseSensitive: cfg.CaseSensitive,
		Encoding:      cfg.Encoding,
		FieldWidth:    cfg.FieldWidth,
	}
}

// loadDetector opens the configured dictionary, using and refreshing the
// snapshot cache unless it is disabled.
func loadDetector() (*detector.Detector, error) {
	cfg, err := effectiveConfig()
	if err != nil {
		return nil, err
	}
	dc := detector.Config{
		Parse:        parseOptions(cfg),
		UnknownValue: gender.Gender(cfg.UnknownValue),
	}
	if cfg.Snapshot && cfg.SnapshotDir != "" {
		dc.SnapshotDir = cfg.SnapshotDir
		dc.WriteSnapshot = true
	}

	d, err := detector.Open(cfg.Dataset, dc)
	if err != nil {
		return nil, fmt.Errorf("%w\nRun 'gendex doctor' to check your setup.", err)
	}

	info := d.LoadInfo()
	if flagVerbose {
		src := "parsed"
		if info.FromSnapshot {
			src = "snapshot " + shortKey(info.SnapshotKey)
		}
		printInfo("", fmt.Sprintf("dictionary %s (%s, %d names, %s)",
			info.Source, src, d.Index().Len(), info.Elapsed.Round(time.Millisecond)))
	}
	if info.SnapshotErr != nil {
		printWarn("", fmt.Sprintf("cannot write snapshot: %v", info.SnapshotErr))
	}
	return d, nil
}

func shortKey(k string) string {
	if len(k) > 12 {
		return k[:12]
	}
	return k
}
