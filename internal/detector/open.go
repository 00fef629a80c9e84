package detector

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/kamusis/gendex/internal/dict"
	"github.com/kamusis/gendex/internal/gender"
)

// Config controls Open.
type Config struct {
	Parse        dict.Options
	UnknownValue gender.Gender
	// SnapshotDir enables the parsed-index cache. Empty disables it.
	SnapshotDir string
	// WriteSnapshot stores a freshly parsed index in SnapshotDir.
	WriteSnapshot bool
}

// LoadInfo reports where an index came from.
type LoadInfo struct {
	Source       string
	SnapshotKey  string
	FromSnapshot bool
	// SnapshotErr is a cache write failure; the detector is still usable.
	SnapshotErr error
	Elapsed     time.Duration
}

// Open reads the dictionary at path and builds a Detector. When a snapshot
// directory is configured a cached index matching the file and parse options
// is used instead of parsing.
func Open(path string, cfg Config) (*Detector, error) {
	start := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read dictionary %s: %w", path, err)
	}

	info := LoadInfo{Source: path}
	useCache := cfg.SnapshotDir != "" && cfg.Parse.Fold == nil
	if useCache {
		info.SnapshotKey = dict.SnapshotKey(data, cfg.Parse)
		idx, ok, err := dict.LoadSnapshot(cfg.SnapshotDir, info.SnapshotKey)
		if err == nil && ok {
			info.FromSnapshot = true
			info.Elapsed = time.Since(start)
			return newLoaded(idx, cfg, info), nil
		}
	}

	idx, err := dict.Parse(bytes.NewReader(data), cfg.Parse)
	if err != nil {
		return nil, fmt.Errorf("cannot parse dictionary %s: %w", path, err)
	}
	if useCache && cfg.WriteSnapshot {
		info.SnapshotErr = dict.SaveSnapshot(cfg.SnapshotDir, info.SnapshotKey, idx)
	}
	info.Elapsed = time.Since(start)
	return newLoaded(idx, cfg, info), nil
}

func newLoaded(idx *dict.Index, cfg Config, info LoadInfo) *Detector {
	d := New(idx, WithUnknownValue(cfg.UnknownValue))
	d.info = info
	return d
}
