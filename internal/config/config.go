// Package config loads the optional TOML configuration file that backs
// the CLI's flags, using BurntSushi/toml. Command-line flags always
// override a value loaded from a config file.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// File is the on-disk shape of a dbsr config file.
type File struct {
	Host          string   `toml:"host"`
	DB            string   `toml:"db"`
	User          string   `toml:"user"`
	Pass          string   `toml:"pass"`
	Search        string   `toml:"search"`
	Replace       string   `toml:"replace"`
	MaxIterations int      `toml:"iterations"`
	IncludeTables []string `toml:"include-tables"`
	ExcludeTables []string `toml:"exclude-tables"`
	DryRun        bool     `toml:"dry-run"`
}

// Load opens the file at path and parses it as a config File.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads TOML content from r and returns the corresponding File.
func Parse(r io.Reader) (*File, error) {
	var f File
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("config: decode error: %w", err)
	}
	return &f, nil
}
