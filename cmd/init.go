package cmd

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kamusis/gendex/internal/config"
)

var flagInitForce bool

var initCmd = &cobra.Command{
	Use:   "init [dictionary-file]",
	Short: "Create ~/.gendex and optionally install a dictionary",
	Long: `Initialize gendex's home directory at ~/.gendex/.

Writes gendex.yaml and a .env template when they are missing. When a
dictionary file is given it is copied to the configured dataset path; an
existing, different dictionary is only replaced with --force.

Example:
  gendex init ~/Downloads/nam_dict.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&flagInitForce, "force", false, "Replace an existing, different dictionary")
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, args []string) error {
	// ── 1. Resolve ~/.gendex directory ────────────────────────────────────────
	dir, err := config.GendexDir()
	if err != nil {
		return err
	}
	cfgPath, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", dir, err)
	}
	printOK("", fmt.Sprintf("gendex directory ready: %s", dir))

	// ── 2. Write gendex.yaml and .env if missing ──────────────────────────────
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		cfg, err := config.DefaultConfig()
		if err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("Config written: %s", cfgPath))
	} else {
		printSkip("", fmt.Sprintf("Config already exists: %s", cfgPath))
	}
	if err := config.EnsureDotEnvTemplate(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.SnapshotDir != "" {
		if err := os.MkdirAll(cfg.SnapshotDir, 0o755); err != nil {
			return fmt.Errorf("cannot create snapshot dir %s: %w", cfg.SnapshotDir, err)
		}
	}

	// ── 3. Install the dictionary ─────────────────────────────────────────────
	if len(args) == 0 {
		if _, err := os.Stat(cfg.Dataset); err != nil {
			printWarn("", fmt.Sprintf("no dictionary at %s — run 'gendex init <nam_dict.txt>'", cfg.Dataset))
		}
		return nil
	}
	src, err := config.ExpandPath(args[0])
	if err != nil {
		return err
	}
	return installDataset(src, cfg.Dataset, flagInitForce)
}

// installDataset copies src to dst. An identical dst is left alone; a
// different one is replaced only when force is set.
func installDataset(src, dst string, force bool) error {
	srcSum, err := fileSHA256(src)
	if err != nil {
		return fmt.Errorf("cannot read dictionary %s: %w", src, err)
	}
	if dstSum, err := fileSHA256(dst); err == nil {
		if dstSum == srcSum {
			printSkip("", fmt.Sprintf("dictionary already installed: %s", dst))
			return nil
		}
		if !force {
			return fmt.Errorf("a different dictionary already exists at %s (use --force to replace it)", dst)
		}
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err := copyFile(src, dst); err != nil {
		return fmt.Errorf("cannot install dictionary: %w", err)
	}
	printOK("", fmt.Sprintf("dictionary installed: %s", dst))
	return nil
}

func fileSHA256(path string) ([32]byte, error) {
	var sum [32]byte
	f, err := os.Open(path)
	if err != nil {
		return sum, err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return sum, err
	}
	copy(sum[:], h.Sum(nil))
	return sum, nil
}

// copyFile copies a file from src to dst through a temp file in dst's directory.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".gendex-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
