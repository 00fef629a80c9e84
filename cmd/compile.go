package cmd

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamusis/gendex/internal/dict"
)

var flagCompileForce bool

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Parse the dictionary and store a snapshot for fast startup",
	Long: `Parse the configured dictionary and write the parsed index to the
snapshot directory (snapshot_dir in gendex.yaml). Snapshots of older
dictionary versions or other parse settings are removed.

Snapshots are keyed by the dictionary's SHA-256 and the parse settings, so
they never need manual invalidation; --force rebuilds anyway.`,
	Args: cobra.NoArgs,
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().BoolVar(&flagCompileForce, "force", false, "Rebuild even if a matching snapshot exists")
	rootCmd.AddCommand(compileCmd)
}

func runCompile(_ *cobra.Command, _ []string) error {
	cfg, err := effectiveConfig()
	if err != nil {
		return err
	}
	if cfg.SnapshotDir == "" {
		return fmt.Errorf("snapshot_dir is not configured")
	}

	data, err := os.ReadFile(cfg.Dataset)
	if err != nil {
		return fmt.Errorf("cannot read dictionary %s: %w", cfg.Dataset, err)
	}
	opts := parseOptions(cfg)
	key := dict.SnapshotKey(data, opts)

	if !flagCompileForce {
		if _, ok, err := dict.LoadSnapshot(cfg.SnapshotDir, key); err == nil && ok {
			printSkip("", fmt.Sprintf("snapshot up to date: %s", dict.SnapshotPath(cfg.SnapshotDir, key)))
			return nil
		}
	}

	start := time.Now()
	idx, err := dict.Parse(bytes.NewReader(data), opts)
	if err != nil {
		return fmt.Errorf("cannot parse dictionary %s: %w", cfg.Dataset, err)
	}
	printInfo("", fmt.Sprintf("parsed %d records into %d names in %s",
		idx.Records(), idx.Len(), time.Since(start).Round(time.Millisecond)))

	if err := dict.SaveSnapshot(cfg.SnapshotDir, key, idx); err != nil {
		return fmt.Errorf("cannot write snapshot: %w", err)
	}
	printOK("", fmt.Sprintf("snapshot written: %s", dict.SnapshotPath(cfg.SnapshotDir, key)))

	n, err := dict.PruneSnapshots(cfg.SnapshotDir, key)
	if err != nil {
		printWarn("", fmt.Sprintf("cannot prune old snapshots: %v", err))
	} else if n > 0 {
		printInfo("", fmt.Sprintf("removed %d stale snapshot(s)", n))
	}
	return nil
}
