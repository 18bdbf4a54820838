// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Input       InputConfig       `toml:"input"`
	Constraints ConstraintsConfig `toml:"constraints"`
	Report      ReportConfig      `toml:"report"`
	History     HistoryConfig     `toml:"history"`
}

// InputConfig maps word source settings.
type InputConfig struct {
	Words      *string `toml:"words"`
	Dictionary *string `toml:"dictionary"`
	Cache      *bool   `toml:"cache"`
}

// ConstraintsConfig maps constraint notation.
type ConstraintsConfig struct {
	Absent   *string  `toml:"absent"`
	Present  []string `toml:"present"`
	Perfect  []string `toml:"perfect"`
	Feedback []string `toml:"feedback"`
}

// ReportConfig maps report layout settings.
type ReportConfig struct {
	Top    *int  `toml:"top"`
	Scores *bool `toml:"scores"`
}

// HistoryConfig maps run history settings.
type HistoryConfig struct {
	Record *bool `toml:"record"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
