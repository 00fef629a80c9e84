package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the in-memory representation of ~/.gendex/gendex.yaml.
type Config struct {
	Dataset       string `yaml:"dataset"`
	Encoding      string `yaml:"encoding,omitempty"`
	CaseSensitive bool   `yaml:"case_sensitive"`
	UnknownValue  string `yaml:"unknown_value,omitempty"`
	FieldWidth    int    `yaml:"field_width,omitempty"`
	SnapshotDir   string `yaml:"snapshot_dir,omitempty"`
	Snapshot      bool   `yaml:"snapshot"`
}

// GendexDir returns the absolute path to ~/.gendex/.
func GendexDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".gendex"), nil
}

// ConfigPath returns the absolute path to ~/.gendex/gendex.yaml.
func ConfigPath() (string, error) {
	dir, err := GendexDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gendex.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the Config written by gendex init.
func DefaultConfig() (*Config, error) {
	dir, err := GendexDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		Dataset:       filepath.Join(dir, "nam_dict.txt"),
		Encoding:      "ISO-8859-1",
		CaseSensitive: true,
		UnknownValue:  "unknown",
		FieldWidth:    1,
		SnapshotDir:   filepath.Join(dir, "cache"),
		Snapshot:      true,
	}, nil
}

// Load reads and parses ~/.gendex/gendex.yaml. Keys missing from the file
// keep their DefaultConfig values.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	if err := cfg.expand(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve returns the effective configuration: the config file (or the
// defaults when it does not exist) with environment overrides applied.
func Resolve() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if cfg, err = DefaultConfig(); err != nil {
			return nil, err
		}
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.expand(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save marshals cfg and writes it to ~/.gendex/gendex.yaml.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", filepath.Dir(path), err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}

func (c *Config) expand() error {
	var err error
	if c.Dataset, err = ExpandPath(c.Dataset); err != nil {
		return err
	}
	if c.SnapshotDir, err = ExpandPath(c.SnapshotDir); err != nil {
		return err
	}
	return nil
}
