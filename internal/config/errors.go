// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import "errors"

var (
	// ErrUnknownConfigField classifies strict YAML parse failures caused by unknown keys.
	// Use errors.Is(err, ErrUnknownConfigField) instead of string matching.
	ErrUnknownConfigField = errors.New("unknown config field")

	// ErrUnknownOption is returned for override keys that name no tuning option.
	ErrUnknownOption = errors.New("unknown tuning option")

	// ErrInvalidValue is returned when an override cannot be converted to the
	// option's type.
	ErrInvalidValue = errors.New("invalid option value")
)
