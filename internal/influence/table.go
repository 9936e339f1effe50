// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package influence computes the territorial influence grid used to rank
// expansion spots.
package influence

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ManuGH/kpai/internal/unitclass"
	"github.com/ManuGH/kpai/internal/validate"
	"github.com/google/renameio/v2"
)

// FileName is the table's file name inside the data directory.
const FileName = "influence.json"

// Entry is the influence a single unit class projects: Max at its own
// position, falling linearly to Min at Radius elmos.
type Entry struct {
	Max    int `json:"max"`
	Min    int `json:"min"`
	Radius int `json:"radius"`
}

// Table maps unit classes to their influence. Classes without an entry
// project nothing.
type Table map[unitclass.Class]Entry

// DefaultTable returns the stock influence values.
func DefaultTable() Table {
	t := make(Table)
	for _, c := range unitclass.All() {
		switch c.Role() {
		case unitclass.RoleHomeBase:
			t[c] = Entry{Max: 100, Radius: 1024}
		case unitclass.RoleSupportBase:
			t[c] = Entry{Max: 75, Radius: 768}
		case unitclass.RoleSpam:
			t[c] = Entry{Max: 5, Radius: 256}
		case unitclass.RoleHeavy:
			t[c] = Entry{Max: 40, Radius: 384}
		case unitclass.RoleArty:
			t[c] = Entry{Max: 20, Radius: 512}
		}
	}
	return t
}

// Validate reports entries with a negative radius or Min above Max.
func (t Table) Validate() error {
	v := validate.New()
	for c, e := range t {
		v.NonNegative(c.String()+".radius", e.Radius)
		v.Ordered(c.String()+".min", float64(e.Min), c.String()+".max", float64(e.Max))
	}
	return v.Err()
}

// WriteDefault writes DefaultTable to path as indented JSON. The write is atomic.
func WriteDefault(path string) error {
	return Write(path, DefaultTable())
}

// Write stores t at path as indented JSON. The write is atomic.
func Write(path string, t Table) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal influence table: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("mkdir influence dir: %w", err)
	}
	if err := renameio.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write influence table: %w", err)
	}
	return nil
}

// Load reads a table written by Write. Unknown classes and unknown entry
// fields are rejected.
func Load(path string) (Table, error) {
	// #nosec G304 -- table path comes from the operator
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read influence table: %w", err)
	}
	return Decode(bytes.NewReader(data))
}

// LoadOrInit loads the table at path, first writing DefaultTable there if
// no file exists yet.
func LoadOrInit(path string) (Table, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := WriteDefault(path); err != nil {
			return nil, err
		}
	}
	return Load(path)
}

// Decode parses a JSON influence table from r.
func Decode(r io.Reader) (Table, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var t Table
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("decode influence table: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("influence table contains trailing content")
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}
