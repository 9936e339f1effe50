// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package config builds the bot's tuning table.
//
// A table is assembled once per AI instance with precedence
// ENV > in-memory overrides > override file > registry defaults,
// validated, and frozen into a Store. Nothing in the package holds the
// resulting table globally; callers pass the *Store to whoever needs it.
package config
