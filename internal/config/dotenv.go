package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Overrides are the environment variables that replace config file values.
// Pointer fields distinguish "unset" from a zero value.
type Overrides struct {
	Dataset       *string `env:"GENDEX_DATASET"`
	Encoding      *string `env:"GENDEX_ENCODING"`
	CaseSensitive *bool   `env:"GENDEX_CASE_SENSITIVE"`
	UnknownValue  *string `env:"GENDEX_UNKNOWN_VALUE"`
	FieldWidth    *int    `env:"GENDEX_FIELD_WIDTH"`
	SnapshotDir   *string `env:"GENDEX_SNAPSHOT_DIR"`
	Snapshot      *bool   `env:"GENDEX_SNAPSHOT"`
}

// DotEnvPath returns the absolute path to gendex's dotenv file (~/.gendex/.env).
func DotEnvPath() (string, error) {
	dir, err := GendexDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".env"), nil
}

// LoadDotEnv reads ~/.gendex/.env and returns key/value pairs.
//
// Parsing rules:
// - Lines starting with '#' are ignored.
// - Empty lines are ignored.
// - Lines must be of form KEY=VALUE.
// - Whitespace around KEY is trimmed.
// - VALUE is taken as-is (no quote parsing).
func LoadDotEnv() (map[string]string, error) {
	p, err := DotEnvPath()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("cannot open dotenv file %s: %w", p, err)
	}
	defer f.Close()

	out := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		i := strings.Index(line, "=")
		if i <= 0 {
			continue
		}
		k := strings.TrimSpace(line[:i])
		v := line[i+1:]
		if k == "" {
			continue
		}
		out[k] = v
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read dotenv file %s: %w", p, err)
	}
	return out, nil
}

// Environment merges ~/.gendex/.env with the process environment. Non-empty
// process variables win.
func Environment() (map[string]string, error) {
	merged, err := LoadDotEnv()
	if err != nil {
		return nil, err
	}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || v == "" {
			continue
		}
		merged[k] = v
	}
	for k, v := range merged {
		if v == "" {
			delete(merged, k)
		}
	}
	return merged, nil
}

// LoadOverrides parses GENDEX_* settings from the merged environment.
func LoadOverrides() (*Overrides, error) {
	vars, err := Environment()
	if err != nil {
		return nil, err
	}
	var o Overrides
	if err := env.ParseWithOptions(&o, env.Options{Environment: vars}); err != nil {
		return nil, fmt.Errorf("invalid GENDEX_* environment: %w", err)
	}
	return &o, nil
}

// ApplyEnv replaces cfg values with any GENDEX_* overrides that are set.
func ApplyEnv(cfg *Config) error {
	o, err := LoadOverrides()
	if err != nil {
		return err
	}
	o.Apply(cfg)
	return nil
}

// Apply copies the set fields of o onto cfg.
func (o *Overrides) Apply(cfg *Config) {
	if o.Dataset != nil {
		cfg.Dataset = *o.Dataset
	}
	if o.Encoding != nil {
		cfg.Encoding = *o.Encoding
	}
	if o.CaseSensitive != nil {
		cfg.CaseSensitive = *o.CaseSensitive
	}
	if o.UnknownValue != nil {
		cfg.UnknownValue = *o.UnknownValue
	}
	if o.FieldWidth != nil {
		cfg.FieldWidth = *o.FieldWidth
	}
	if o.SnapshotDir != nil {
		cfg.SnapshotDir = *o.SnapshotDir
	}
	if o.Snapshot != nil {
		cfg.Snapshot = *o.Snapshot
	}
}

// EnsureDotEnvTemplate creates ~/.gendex/.env if it does not already exist.
//
// The template lists the override keys with empty values.
func EnsureDotEnvTemplate() error {
	p, err := DotEnvPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(p); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("cannot stat dotenv file %s: %w", p, err)
	}

	body := "" +
		"GENDEX_DATASET=\n" +
		"GENDEX_ENCODING=\n" +
		"GENDEX_CASE_SENSITIVE=\n" +
		"GENDEX_UNKNOWN_VALUE=\n" +
		"GENDEX_FIELD_WIDTH=\n" +
		"GENDEX_SNAPSHOT_DIR=\n" +
		"GENDEX_SNAPSHOT=\n"

	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		return fmt.Errorf("cannot write dotenv template %s: %w", p, err)
	}
	return nil
}
