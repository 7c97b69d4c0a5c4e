// Package typeregistry is the concrete collab.TypeRegistry: a configurable set of type names
// known to be disjoint from the root object type (i.e. provably primitive), everything else
// assumed to possibly alias non-local object state.
package typeregistry

// Registry implements collab.TypeRegistry over a fixed set of known primitive type names.
type Registry struct {
	// PrimitiveTypes names declared return types that can never alias the root object type
	// ("string", "number", "boolean", "void", "undefined", "null", ...).
	PrimitiveTypes map[string]bool
}

// New creates a Registry recognizing the given primitive type names.
func New(primitiveTypes ...string) *Registry {
	set := make(map[string]bool, len(primitiveTypes))
	for _, t := range primitiveTypes {
		set[t] = true
	}
	return &Registry{PrimitiveTypes: set}
}

// Default returns a Registry pre-populated with this language's built-in primitive type names.
func Default() *Registry {
	return New("string", "number", "boolean", "void", "undefined", "null", "symbol", "bigint")
}

// MeetsRootObjectType implements collab.TypeRegistry: a known primitive type name is disjoint
// from the root object type (meets=false); any other known type name is assumed to possibly alias
// it (meets=true); an unrecognized type name reports ok=false, letting the caller fall back to
// its own pessimistic default.
func (r *Registry) MeetsRootObjectType(typeName string) (meets bool, ok bool) {
	if typeName == "" {
		return false, false
	}
	if r.PrimitiveTypes[typeName] {
		return false, true
	}
	return true, true
}
