package catalog

import "github.com/MoJuiceX/clawcombat-sub000/internal/core"

// refModule is the module namespace used for every catalog-derived Ref.
const refModule = "clawcombat"

// MoveRef returns the namespaced Ref for a move id, for callers that want
// the opaque module:type:value representation instead of the bare MoveID.
func MoveRef(id MoveID) *core.Ref {
	return core.MustNewRef(core.RefInput{Module: refModule, Type: "move", Value: string(id)})
}

// AbilityRef returns the namespaced Ref for an ability id.
func AbilityRef(id AbilityID) *core.Ref {
	return core.MustNewRef(core.RefInput{Module: refModule, Type: "ability", Value: string(id)})
}

// TypeRef returns the namespaced Ref for an elemental type.
func TypeRef(t TypeName) *core.Ref {
	return core.MustNewRef(core.RefInput{Module: refModule, Type: "elemtype", Value: string(t)})
}

// NatureRef returns the namespaced Ref for a nature id.
func NatureRef(id NatureID) *core.Ref {
	return core.MustNewRef(core.RefInput{Module: refModule, Type: "nature", Value: string(id)})
}
