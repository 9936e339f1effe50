// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package unitclass

// ConstructorFor returns the constructor a home base produces.
func ConstructorFor(base Class) (Class, bool) {
	switch base {
	case Kernel:
		return Assembler, true
	case Hole:
		return Trojan, true
	case Carrier:
		return Gateway, true
	}
	return Unknown, false
}

// ExpansionFor returns the expansion building a constructor places on a geo spot.
func ExpansionFor(builder Class) (Class, bool) {
	switch builder {
	case Assembler:
		return Socket, true
	case Trojan:
		return Window, true
	case Gateway:
		return Port, true
	}
	return Unknown, false
}
