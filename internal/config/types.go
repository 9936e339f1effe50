// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"os"
	"path/filepath"
)

// Runtime defaults applied before file and environment.
const (
	DefaultLogLevel       = "info"
	DefaultStatusInterval = 5 // frames between status dumps
	DefaultStatusFile     = "status.txt"
)

// FileConfig represents the YAML override file.
type FileConfig struct {
	Version     string             `yaml:"version,omitempty"`
	Profile     string             `yaml:"profile,omitempty"`
	LogLevel    string             `yaml:"logLevel,omitempty"`
	DataDir     string             `yaml:"dataDir,omitempty"`
	Diagnostics *DiagnosticsConfig `yaml:"diagnostics,omitempty"`
	Overrides   map[string]any     `yaml:"overrides,omitempty"`
}

// DiagnosticsConfig holds status dump settings.
type DiagnosticsConfig struct {
	StatusInterval *int   `yaml:"statusInterval,omitempty"`
	Compress       *bool  `yaml:"compress,omitempty"`
	StatusFile     string `yaml:"statusFile,omitempty"`
}

// Runtime holds the non-tuning settings of an instance.
type Runtime struct {
	Profile        string `yaml:"profile" json:"profile"`
	LogLevel       string `yaml:"logLevel" json:"logLevel"`
	DataDir        string `yaml:"dataDir" json:"dataDir"`
	StatusInterval int    `yaml:"statusInterval" json:"statusInterval"`
	CompressStatus bool   `yaml:"compress" json:"compress"`
	StatusFile     string `yaml:"statusFile" json:"statusFile"`
}

// StatusPath is the full path of the status dump file.
func (r Runtime) StatusPath() string {
	return filepath.Join(r.DataDir, r.StatusFile)
}

func defaultRuntime() Runtime {
	return Runtime{
		LogLevel:       DefaultLogLevel,
		DataDir:        filepath.Join(os.TempDir(), "kpai"),
		StatusInterval: DefaultStatusInterval,
		StatusFile:     DefaultStatusFile,
	}
}

// Source tells where an option's effective value came from.
type Source string

const (
	SourceDefault  Source = "default"
	SourceFile     Source = "file"
	SourceOverride Source = "override"
	SourceEnv      Source = "env"
)
