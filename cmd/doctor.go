package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamusis/gendex/internal/config"
	"github.com/kamusis/gendex/internal/dict"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run environment checks",
	Long: `Check that gendex's configuration and dictionary are usable.
Run this command when something seems wrong, or before filing a bug report.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(_ *cobra.Command, _ []string) error {
	allOK := true
	failD := func(format string, args ...any) {
		printErr("", fmt.Sprintf(format, args...))
		allOK = false
	}

	printSection("gendex doctor")
	fmt.Fprintln(stdout)

	// ── Check 1: gendex.yaml ──────────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ gendex.yaml ]")
	cfgPath, _ := config.ConfigPath()
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		printSkip("", fmt.Sprintf("%s not found — using defaults (run 'gendex init' to create it)", cfgPath))
	} else if _, err := config.Load(); err != nil {
		failD("cannot parse gendex.yaml: %v", err)
	} else {
		printOK("", fmt.Sprintf("valid YAML: %s", cfgPath))
	}
	fmt.Fprintln(stdout)

	cfg, err := effectiveConfig()
	if err != nil {
		failD("%v", err)
		return fmt.Errorf("doctor found problems")
	}

	// ── Check 2: settings ─────────────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ Settings ]")
	printInfo("", fmt.Sprintf("case_sensitive=%t unknown_value=%s encoding=%s field_width=%d",
		cfg.CaseSensitive, cfg.UnknownValue, emptyAsNA(cfg.Encoding), cfg.FieldWidth))
	if cfg.FieldWidth != 0 && cfg.FieldWidth != 1 && cfg.FieldWidth != 2 {
		printWarn("", fmt.Sprintf("unusual field_width %d — nam_dict.txt uses 1", cfg.FieldWidth))
	}
	fmt.Fprintln(stdout)

	// ── Check 3: dictionary parses ────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ Dictionary ]")
	opts := parseOptions(cfg)
	var key string
	data, err := os.ReadFile(cfg.Dataset)
	if err != nil {
		failD("cannot read %s: %v", cfg.Dataset, err)
	} else {
		key = dict.SnapshotKey(data, opts)
		idx, err := dict.Parse(bytes.NewReader(data), opts)
		if err != nil {
			failD("%s: %v", cfg.Dataset, err)
		} else {
			printOK("", fmt.Sprintf("%s: %d records, %d names", cfg.Dataset, idx.Records(), idx.Len()))
			if idx.Len() == 0 {
				printWarn("", "dictionary has no records")
			}
		}
	}
	fmt.Fprintln(stdout)

	// ── Check 4: snapshot cache ───────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ Snapshot cache ]")
	switch {
	case !cfg.Snapshot || cfg.SnapshotDir == "":
		printSkip("", "disabled")
	case key == "":
		printWarn("", "skipped (dictionary not readable)")
	default:
		if _, ok, err := dict.LoadSnapshot(cfg.SnapshotDir, key); err != nil {
			failD("cannot read snapshot: %v", err)
		} else if ok {
			printOK("", fmt.Sprintf("current snapshot: %s", dict.SnapshotPath(cfg.SnapshotDir, key)))
		} else {
			printMiss("", "no current snapshot — run 'gendex compile'")
		}
		if stale := staleSnapshots(cfg.SnapshotDir, key); len(stale) > 0 {
			printInfo("", fmt.Sprintf("%d stale snapshot(s): %s", len(stale), strings.Join(stale, ", ")))
		}
	}
	fmt.Fprintln(stdout)

	if !allOK {
		return fmt.Errorf("doctor found problems")
	}
	printOK("", "all checks passed")
	return nil
}

func staleSnapshots(dir, key string) []string {
	matches, _ := filepath.Glob(filepath.Join(dir, "*.mp"))
	var out []string
	for _, m := range matches {
		if m != dict.SnapshotPath(dir, key) {
			out = append(out, filepath.Base(m))
		}
	}
	return out
}
