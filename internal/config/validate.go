package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Orthography.validate(); err != nil {
		return fmt.Errorf("orthography: %w", err)
	}

	if c.Orthography.Source == SourcePostgres && c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required when orthography.source is %q", SourcePostgres)
	}
	if c.Database.MaxConns <= 0 {
		return fmt.Errorf("database.max_conns must be > 0 (got %d)", c.Database.MaxConns)
	}
	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns must be in [0, %d] (got %d)", c.Database.MaxConns, c.Database.MinConns)
	}

	return nil
}

func (o *OrthographyConfig) validate() error {
	o.Source = strings.ToLower(strings.TrimSpace(o.Source))
	switch o.Source {
	case SourceFile, SourcePostgres:
	default:
		return fmt.Errorf("source must be %q or %q (got %q)", SourceFile, SourcePostgres, o.Source)
	}

	switch strings.ToLower(strings.TrimSpace(o.SpacePlacement)) {
	case "after", "before":
	default:
		return fmt.Errorf("space_placement must be \"after\" or \"before\" (got %q)", o.SpacePlacement)
	}

	if o.Source == SourcePostgres && strings.TrimSpace(o.SetName) == "" {
		return fmt.Errorf("set_name is required for the postgres source")
	}

	if o.ConfigDir == "" {
		o.ConfigDir = DefaultConfigDir()
	}

	return nil
}

// DefaultConfigDir returns the directory where the steno host keeps its
// user dictionaries.
func DefaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "plover")
}
