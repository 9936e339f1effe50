// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/ManuGH/kpai/internal/unitclass"
)

var classType = reflect.TypeOf(unitclass.Class(0))

// coerce converts an override value to the Go type of the target field.
// Override tables come from YAML or from Go callers, so numbers may arrive
// as any integer or float kind and class names as plain strings.
func coerce(target reflect.Type, v any) (any, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil", ErrInvalidValue)
	}
	if s, ok := v.(string); ok {
		return coerceString(target, s)
	}

	if target == classType {
		if c, ok := v.(unitclass.Class); ok {
			if !c.Valid() {
				return nil, fmt.Errorf("%w: %w: %d", ErrInvalidValue, unitclass.ErrUnknownClass, uint8(c))
			}
			return c, nil
		}
		return nil, fmt.Errorf("%w: unit class must be a name, got %T", ErrInvalidValue, v)
	}

	rv := reflect.ValueOf(v)
	switch target.Kind() {
	case reflect.Float64:
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			return rv.Float(), nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return float64(rv.Int()), nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return float64(rv.Uint()), nil
		}
	case reflect.Int:
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return int(rv.Int()), nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
			return int(rv.Uint()), nil
		case reflect.Float32, reflect.Float64:
			f := rv.Float()
			if f != math.Trunc(f) || math.IsInf(f, 0) {
				return nil, fmt.Errorf("%w: %v is not an integer", ErrInvalidValue, f)
			}
			return int(f), nil
		}
	case reflect.Bool:
		switch rv.Kind() {
		case reflect.Bool:
			return rv.Bool(), nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			switch rv.Int() {
			case 0:
				return false, nil
			case 1:
				return true, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: cannot use %T as %s", ErrInvalidValue, v, target)
}

// coerceString parses the textual form used by env variables and YAML strings.
func coerceString(target reflect.Type, s string) (any, error) {
	s = strings.TrimSpace(s)
	if target == classType {
		c, err := unitclass.ParseClass(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		return c, nil
	}
	switch target.Kind() {
	case reflect.Float64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, s)
		}
		return f, nil
	case reflect.Int:
		i, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, s)
		}
		return i, nil
	case reflect.Bool:
		b, err := parseBoolString(s)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	return nil, fmt.Errorf("%w: unsupported option type %s", ErrInvalidValue, target)
}

func parseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, s)
}
