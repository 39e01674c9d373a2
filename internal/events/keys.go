// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package events

// Common typed keys for event context data.
// Only keys we have actual use cases for.

var (
	// KeyDamage is the amount of damage a damage-bearing event carried.
	KeyDamage = NewTypedKey[int]("damage")
	// KeyDamageType is the elemental type of that damage.
	KeyDamageType = NewTypedKey[string]("damageType")
)

// Type aliases for convenience (optional)

// IntKey is an integer typed key
type IntKey = TypedKey[int]

// StringKey is a string typed key
type StringKey = TypedKey[string]

// BoolKey is a boolean typed key
type BoolKey = TypedKey[bool]

// FloatKey is a float64 typed key
type FloatKey = TypedKey[float64]
