// Package collab declares the external collaborator interfaces the purity analysis core is
// written against. spec.md §1 names these as out of scope ("supplied by an upstream pass"): the
// AST node predicates, the reference map, the coding-convention detector, the scope/variable
// resolution table, and the type system. None of the core packages (summary, callgraph, resolve,
// classify, seed, extern, body, propagate, annotate) import a concrete implementation of any of
// these — only this package's interfaces. Concrete implementations live in packages refmap,
// scope, convention, typeregistry, and nodeutil, built over package parser's lowered ast.Program.
package collab

import (
	"iter"

	"github.com/jmcabandara/purityflow/ast"
)

// ReferenceMap enumerates every textual reference to every short name in the program, the way
// spec.md §4.3 (C5 Seeding Pass) requires: one list of variable-identifier references, and one
// list of property-name references (to be merged into the same short-name key space by the
// caller, per spec.md §3's property-name sentinel prefix rule).
type ReferenceMap interface {
	// NameReferences yields, for every distinct bare identifier name referenced anywhere in the
	// program, every node that references it: *ast.Ident uses, plus the *ast.FuncDecl or
	// *ast.VarDeclarator node that declares the name.
	NameReferences() iter.Seq2[string, []ast.Node]
	// PropReferences yields, for every distinct property name referenced anywhere in the program
	// (via `.prop` or statically-known `["prop"]` access), every *ast.PropAccess node that
	// references it. Property names here are bare ("length"), not yet sentinel-prefixed; the
	// caller (package seed) prefixes them per spec.md §3.
	PropReferences() iter.Seq2[string, []ast.Node]
}

// MemoizationMatch is the result of a CodingConvention recognizing a memoization-cache call
// (spec.md §4.1): the value-producing function argument, and optionally the key-producing
// function argument.
type MemoizationMatch struct {
	ValueFn ast.Node
	KeyFn   ast.Node // nil if the idiom has no key function argument
}

// CodingConvention recognizes library idioms the Definition Resolver (C3) must special-case. The
// only idiom spec.md names is the memoization-cache call.
type CodingConvention interface {
	// MatchMemoizationCall inspects a call expression and, if it matches a known
	// memoize(valueFn[, keyFn]) idiom, returns the inner function arguments.
	MatchMemoizationCall(call *ast.CallExpr) (MemoizationMatch, bool)
}

// NodeUtils bundles the AST node predicates spec.md §6 lists as externally supplied. The core
// never inspects concrete ast.Node Go types directly for these judgments — it always goes
// through this interface, so that a different AST/grammar front-end only has to reimplement this
// one interface (plus ReferenceMap/ScopeProvider/TypeRegistry/CodingConvention) to plug in.
type NodeUtils interface {
	IsInvocation(n ast.Node) (*ast.CallExpr, bool)
	IsFunctionExpression(n ast.Node) (*ast.FuncLit, bool)
	IsNameDeclaration(n ast.Node) (*ast.VarDecl, bool)
	IsCompoundAssignment(n ast.Node) (*ast.CompoundAssign, bool)
	// IsGet reports whether n is a property-access-style read (as opposed to a call); used by
	// the resolver to distinguish `obj.call` the property read from `obj.call(...)` the
	// invocation when walking up to find the real callee's parent invocation.
	IsGet(n ast.Node) bool
	// IteratesImpureIterable reports whether the given for-of/for-await-of/yield*/spread/rest
	// node iterates something other than a provably pure literal iterable (spec.md §4.5.2).
	IteratesImpureIterable(n ast.Node) bool
	// EvaluatesToLocalValue is the conservative, deliberately imprecise predicate from spec.md
	// §4.5/§9: true only for literals and fresh allocations whose reference has not escaped.
	EvaluatesToLocalValue(n ast.Node) bool
	// AllArgsUnescapedLocal reports whether every argument of a call expression passes
	// EvaluatesToLocalValue (spec.md §4.6).
	AllArgsUnescapedLocal(call *ast.CallExpr) bool
	// FindLHSNodesIn enumerates every L-value target node within an assignment/destructuring/
	// for-in/for-of left-hand side.
	FindLHSNodesIn(n ast.Node) []ast.Node
	// GetRValueOfLValue returns the RHS expression bound to an L-value reference at its
	// definition site (spec.md §4.3's seeding step 5), and false if none exists (e.g. a bare
	// declaration with no initializer).
	GetRValueOfLValue(lvalue ast.Node) (ast.Node, bool)
	// FunctionCallHasSideEffects and ConstructorCallHasSideEffects consult the runtime's
	// intrinsic-purity table for a specific call/new expression (spec.md §4.8's "intrinsic
	// overrides"). They return (declared, ok): ok is false if the call/new is not a recognized
	// intrinsic at all.
	FunctionCallHasSideEffects(call *ast.CallExpr) (declared bool, ok bool)
	ConstructorCallHasSideEffects(call *ast.CallExpr) (declared bool, ok bool)
	// GetBestJSDocInfo returns the best-available JSDoc annotation info for a function node
	// (FuncDecl/FuncLit), used by the Extern Analyzer (C6).
	GetBestJSDocInfo(fn ast.Node) *ast.JSDocInfo
}

// ScopeProvider exposes the variable/scope resolution spec.md §6 requires for the Body Analyzer's
// deferred local-resolution logic (§4.5.1, §4.5.4).
type ScopeProvider interface {
	GetVar(name string, at ast.Node) (*ast.VarBinding, bool)
	IsParam(v *ast.VarBinding) bool
	IsCatch(v *ast.VarBinding) bool
	// HasSameContainerScope reports whether the variable was declared in the same enclosing
	// function (or top-level) as the given reference node.
	HasSameContainerScope(v *ast.VarBinding, at ast.Node) bool
	// GetClosestContainerScope returns the *ast.FuncLit/*ast.FuncDecl (or nil, for top level)
	// that lexically contains the given node.
	GetClosestContainerScope(at ast.Node) ast.Node
}

// TypeRegistry is the minimal type-system query the Extern Analyzer (C6) needs: whether a
// declared return type could possibly be (or alias) the root object type.
type TypeRegistry interface {
	// MeetsRootObjectType reports whether typeName is NOT disjoint from the root object type —
	// i.e. whether a value of this declared type could alias non-local state. A return of
	// (false, false) to the ok result means the type name is unknown to the registry, which
	// spec.md §4.4 treats as ESCAPED_RETURN (pessimistic).
	MeetsRootObjectType(typeName string) (meets bool, ok bool)
}
