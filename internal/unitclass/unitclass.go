// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package unitclass enumerates the unit classes the bot knows about.
//
// The set is closed: labels coming from configuration files or from the host
// are resolved through ParseClass, so a typo fails loudly instead of producing
// a setting that silently matches nothing.
package unitclass

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownClass is returned when a label does not name a known unit class.
var ErrUnknownClass = errors.New("unknown unit class")

// Faction is one of the three playable sides.
type Faction uint8

const (
	FactionNone Faction = iota
	FactionSystem
	FactionHacker
	FactionNetwork
)

func (f Faction) String() string {
	switch f {
	case FactionSystem:
		return "system"
	case FactionHacker:
		return "hacker"
	case FactionNetwork:
		return "network"
	default:
		return "none"
	}
}

// Factions lists the playable factions in a stable order.
func Factions() []Faction {
	return []Faction{FactionSystem, FactionHacker, FactionNetwork}
}

// Role is the battlefield role of a unit class.
type Role uint8

const (
	RoleNone Role = iota
	RoleHomeBase
	RoleSupportBase
	RoleConstructor
	RoleSpam
	RoleHeavy
	RoleArty
)

func (r Role) String() string {
	switch r {
	case RoleHomeBase:
		return "home_base"
	case RoleSupportBase:
		return "support_base"
	case RoleConstructor:
		return "constructor"
	case RoleSpam:
		return "spam"
	case RoleHeavy:
		return "heavy"
	case RoleArty:
		return "arty"
	default:
		return "none"
	}
}

// Class identifies a unit type.
type Class uint8

const (
	Unknown Class = iota

	// System
	Kernel
	Socket
	Terminal
	Assembler
	Bit
	Byte
	Pointer

	// Hacker
	Hole
	Window
	Obelisk
	Trojan
	Bug
	Exploit
	Worm
	DoS

	// Network
	Carrier
	Port
	Firewall
	Gateway
	Packet
	Connection
	Flow

	classCount
)

type classInfo struct {
	label   string
	faction Faction
	role    Role
}

var classes = [classCount]classInfo{
	Unknown: {"", FactionNone, RoleNone},

	Kernel:    {"kernel", FactionSystem, RoleHomeBase},
	Socket:    {"socket", FactionSystem, RoleSupportBase},
	Terminal:  {"terminal", FactionSystem, RoleSupportBase},
	Assembler: {"assembler", FactionSystem, RoleConstructor},
	Bit:       {"bit", FactionSystem, RoleSpam},
	Byte:      {"byte", FactionSystem, RoleHeavy},
	Pointer:   {"pointer", FactionSystem, RoleArty},

	Hole:    {"hole", FactionHacker, RoleHomeBase},
	Window:  {"window", FactionHacker, RoleSupportBase},
	Obelisk: {"obelisk", FactionHacker, RoleSupportBase},
	Trojan:  {"trojan", FactionHacker, RoleConstructor},
	Bug:     {"bug", FactionHacker, RoleSpam},
	Exploit: {"exploit", FactionHacker, RoleSpam},
	Worm:    {"worm", FactionHacker, RoleHeavy},
	DoS:     {"dos", FactionHacker, RoleArty},

	Carrier:    {"carrier", FactionNetwork, RoleHomeBase},
	Port:       {"port", FactionNetwork, RoleSupportBase},
	Firewall:   {"firewall", FactionNetwork, RoleSupportBase},
	Gateway:    {"gateway", FactionNetwork, RoleConstructor},
	Packet:     {"packet", FactionNetwork, RoleSpam},
	Connection: {"connection", FactionNetwork, RoleHeavy},
	Flow:       {"flow", FactionNetwork, RoleArty},
}

var byLabel = func() map[string]Class {
	m := make(map[string]Class, classCount)
	for c := Class(1); c < classCount; c++ {
		m[classes[c].label] = c
	}
	return m
}()

// ParseClass resolves a unit definition name to its class.
func ParseClass(label string) (Class, error) {
	if c, ok := byLabel[label]; ok {
		return c, nil
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownClass, label)
}

// All returns every known class ordered by label.
func All() []Class {
	out := make([]Class, 0, classCount-1)
	for c := Class(1); c < classCount; c++ {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Valid reports whether c is a known class.
func (c Class) Valid() bool {
	return c > Unknown && c < classCount
}

func (c Class) String() string {
	if !c.Valid() {
		return "unknown"
	}
	return classes[c].label
}

// Faction returns the faction that fields c.
func (c Class) Faction() Faction {
	if !c.Valid() {
		return FactionNone
	}
	return classes[c].faction
}

// Role returns the battlefield role of c.
func (c Class) Role() Role {
	if !c.Valid() {
		return RoleNone
	}
	return classes[c].role
}

// IsBase reports whether c is a home or support base.
func (c Class) IsBase() bool {
	r := c.Role()
	return r == RoleHomeBase || r == RoleSupportBase
}

// MarshalText implements encoding.TextMarshaler.
func (c Class) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownClass, uint8(c))
	}
	return []byte(classes[c].label), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Class) UnmarshalText(text []byte) error {
	parsed, err := ParseClass(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
