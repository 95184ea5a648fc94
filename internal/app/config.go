package app

import (
	"errors"
	"fmt"
)

// Config holds everything an App instance needs to run.
type Config struct {
	SnapshotPath string // file or directory of snapshot documents
	OutDir       string
	SettingsPath string // optional HCL settings file
	Token        string // fixed generated-root token, random when empty

	Parallel bool
	Check    bool
	Clean    bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy with defaults filled in.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.SnapshotPath == "" {
		return nil, errors.New("SnapshotPath is a required configuration field and cannot be empty")
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}
	if cfg.Check && cfg.Clean {
		return nil, fmt.Errorf("check and clean modes are mutually exclusive")
	}
	return &cfg, nil
}
