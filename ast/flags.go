// Package ast defines the tagged-node program representation that the purity analysis consumes.
//
// The analysis core (packages summary, callgraph, resolve, classify, seed, extern, body,
// propagate, annotate) never depends on a concrete parser or source language grammar: it is
// written entirely against this package's node types and the collaborator interfaces in
// package collab. Package parser is the only place a real grammar (tree-sitter's JavaScript
// binding) is lowered into these types.
package ast

// Flags is a bitset over a summary's side-effect bits. It is monotone: analysis only ever
// sets bits, never clears them.
type Flags uint8

const (
	// Throws indicates the summary may throw or otherwise propagate an exception.
	Throws Flags = 1 << iota
	// MutatesGlobal indicates the summary may mutate state reachable from outside the call.
	MutatesGlobal
	// MutatesThis indicates the summary may mutate its receiver.
	MutatesThis
	// MutatesArgs indicates the summary may mutate one of its arguments.
	MutatesArgs
	// EscapedReturn indicates the summary's return value may alias non-local state.
	EscapedReturn
)

// AllFlags is every flag bit set, used for "dynamic name" summaries (.call, .apply,
// .constructor) and for names whose definitions could not be analyzed (Summary.SetAll).
const AllFlags = Throws | MutatesGlobal | MutatesThis | MutatesArgs | EscapedReturn

// Has reports whether every bit in other is present in f.
func (f Flags) Has(other Flags) bool { return f&other == other }

// Set returns f with every bit of other also set.
func (f Flags) Set(other Flags) Flags { return f | other }

var flagNames = [...]struct {
	bit  Flags
	name string
}{
	{Throws, "THROWS"},
	{MutatesGlobal, "MUTATES_GLOBAL"},
	{MutatesThis, "MUTATES_THIS"},
	{MutatesArgs, "MUTATES_ARGS"},
	{EscapedReturn, "ESCAPED_RETURN"},
}

// String renders the flag set as a human-readable, stable-order label list.
func (f Flags) String() string {
	if f == 0 {
		return "pure"
	}
	out := ""
	for _, e := range flagNames {
		if f.Has(e.bit) {
			if out != "" {
				out += "|"
			}
			out += e.name
		}
	}
	return out
}

// CallFlags is a bitset over the flags that the annotator (C9) stamps onto a call node. It is a
// distinct type from Flags because RETURN_TAINTED has no other meaning outside a call site, and
// MUTATES_THIS never appears here when the callee was reached through .call/.apply (it is
// recorded as MUTATES_ARGS instead.
type CallFlags uint8

const (
	// CallMutatesGlobal mirrors MutatesGlobal on the resolved callee summaries.
	CallMutatesGlobal CallFlags = 1 << iota
	// CallMutatesThis mirrors MutatesThis, only for CALL/TAGGED_TEMPLATE call kinds.
	CallMutatesThis
	// CallMutatesArgs mirrors MutatesArgs, and also receives MUTATES_THIS rewritten through
	// .call/.apply.
	CallMutatesArgs
	// CallThrows mirrors Throws.
	CallThrows
	// CallReturnTainted mirrors EscapedReturn.
	CallReturnTainted
)

// AllCallFlags is every CallFlags bit set, used for call sites whose callee the intrinsic-purity
// table declares impure.
const AllCallFlags = CallMutatesGlobal | CallMutatesThis | CallMutatesArgs | CallThrows | CallReturnTainted

// UnresolvedCallFlags is the pessimized flag set written onto a call node whose callee could not
// be resolved to any definition candidate at all. It deliberately excludes CallMutatesThis and
// CallMutatesArgs: with no candidate definition, there is no receiver or argument binding to blame,
// so only the effects visible without one (throwing, mutating something outside the call, and an
// escaped return value) are assumed.
const UnresolvedCallFlags = CallMutatesGlobal | CallThrows | CallReturnTainted

// Has reports whether every bit in other is present in f.
func (f CallFlags) Has(other CallFlags) bool { return f&other == other }

// Set returns f with every bit of other also set.
func (f CallFlags) Set(other CallFlags) CallFlags { return f | other }

func (f CallFlags) String() string {
	if f == 0 {
		return "pure"
	}
	names := [...]struct {
		bit  CallFlags
		name string
	}{
		{CallMutatesGlobal, "MUTATES_GLOBAL"},
		{CallMutatesThis, "MUTATES_THIS"},
		{CallMutatesArgs, "MUTATES_ARGS"},
		{CallThrows, "THROWS"},
		{CallReturnTainted, "RETURN_TAINTED"},
	}
	out := ""
	for _, e := range names {
		if f.Has(e.bit) {
			if out != "" {
				out += "|"
			}
			out += e.name
		}
	}
	return out
}
