// Package core provides Ref, the module:type:value identifier every move,
// ability, elemental type, and nature in internal/catalog is named by.
//
// Purpose:
// internal/catalog's MoveRef/AbilityRef/TypeRef/NatureRef build a new Ref
// on each call; internal/events routes bus subscriptions by comparing Ref
// pointers, not strings. This package also owns the parsing and validation
// applied when a Ref is read back from its JSON string form.
//
// Scope:
//   - Ref: the module:type:value triple, with String/Equals/JSON (un)marshaling
//   - ParseString: strict three-segment parsing with typed errors
//   - ParseError/ValidationError: detailed failure reporting for bad refs
//
// Non-Goals:
//   - Game entities, stats, or behaviors: those live in internal/catalog
//     and internal/battle
//   - Persistence: internal/store owns how a Ref is stored
package core
