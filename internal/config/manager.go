// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// ToFileConfig maps a Store back to the override file layout. Every option
// is written, so the result pins the current effective values.
func ToFileConfig(s *Store) FileConfig {
	rt := s.Runtime()
	interval := rt.StatusInterval
	compress := rt.CompressStatus

	overrides := make(map[string]any, len(s.values))
	for name, v := range s.values {
		overrides[name] = v
	}

	return FileConfig{
		Version:  "1",
		Profile:  rt.Profile,
		LogLevel: rt.LogLevel,
		DataDir:  rt.DataDir,
		Diagnostics: &DiagnosticsConfig{
			StatusInterval: &interval,
			Compress:       &compress,
			StatusFile:     rt.StatusFile,
		},
		Overrides: overrides,
	}
}

// WriteTemplate writes the effective configuration of s to path as an
// override file. The write is atomic.
func WriteTemplate(path string, s *Store) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	pf, err := renameio.NewPendingFile(path, renameio.WithPermissions(0600))
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer func() { _ = pf.Cleanup() }()

	enc := yaml.NewEncoder(pf)
	enc.SetIndent(2)
	if err := enc.Encode(ToFileConfig(s)); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush config: %w", err)
	}

	if err := pf.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}
