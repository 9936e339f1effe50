// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

// Canonical field name constants for structured logging.
const (
	// Process fields
	FieldService   = "service"
	FieldVersion   = "version"
	FieldComponent = "component"
	FieldEvent     = "event"

	// Instance fields
	FieldInstanceID = "instance_id"
	FieldTeam       = "team"
	FieldFrame      = "frame"
	FieldProfile    = "profile"

	// Configuration fields
	FieldOption = "option"
	FieldSource = "source"
	FieldPath   = "path"

	// Snapshot fields
	FieldGeoCount    = "geo_count"
	FieldFriendCount = "friend_count"
	FieldFoeCount    = "foe_count"
	FieldUnitID      = "unit_id"
	FieldUnitClass   = "unit_class"
)
