// Package resolve implements the Definition Resolver (spec.md §4.1, component C3): unwraps a
// callee expression into an ordered list of definition candidates, or fails for unsupported
// syntactic forms. Failure propagates upward exactly as spec.md requires: any unsupported
// sub-expression unresolves the entire callee.
package resolve

import (
	"github.com/jmcabandara/purityflow/ast"
	"github.com/jmcabandara/purityflow/collab"
)

// Resolver unwraps callee expressions to their definition candidates (spec.md §4.1).
type Resolver struct {
	util       collab.NodeUtils
	convention collab.CodingConvention
}

// New creates a Resolver over the given collaborators.
func New(util collab.NodeUtils, convention collab.CodingConvention) *Resolver {
	return &Resolver{util: util, convention: convention}
}

// Resolve unwraps a callee expression (or, via the memoization idiom, a whole call expression)
// into its ordered definition candidates. The second result is false if any part of the callee
// is syntactically unsupported, in which case the returned slice must be ignored.
func (r *Resolver) Resolve(callee ast.Node) ([]ast.Node, bool) {
	switch n := callee.(type) {
	case *ast.PropAccess:
		return r.resolveProp(n)
	case *ast.FuncLit:
		return []ast.Node{n}, true
	case *ast.FuncDecl:
		return []ast.Node{n}, true
	case *ast.Ident:
		return []ast.Node{n}, true
	case *ast.LogicalOr:
		return r.concat(n.Left, n.Right)
	case *ast.Conditional:
		return r.concat(n.Then, n.Else)
	default:
		return nil, false
	}
}

// resolveProp implements spec.md §4.1's property-access rule: if the parent of this property
// access is a .call/.apply invocation on it, recurse into the *object* side (the real callee);
// otherwise the property access itself is the definition candidate (it will be looked up by
// short name in the summary store).
func (r *Resolver) resolveProp(p *ast.PropAccess) ([]ast.Node, bool) {
	if call, ok := r.util.IsInvocation(p.Parent()); ok && call.Callee == ast.Node(p) {
		if p.Property == "call" || p.Property == "apply" {
			return r.Resolve(p.Object)
		}
	}
	return []ast.Node{p}, true
}

// concat resolves both branches of a logical-or or ternary callee and concatenates the results;
// any branch failing unresolves the whole (spec.md §4.1: "Failure is propagated upward").
func (r *Resolver) concat(a, b ast.Node) ([]ast.Node, bool) {
	left, ok := r.Resolve(a)
	if !ok {
		return nil, false
	}
	right, ok := r.Resolve(b)
	if !ok {
		return nil, false
	}
	return append(left, right...), true
}

// ResolveCallSite is the entry point used by the Body Analyzer (C7) and Annotator (C9): it first
// checks whether the call matches a recognized memoization-cache idiom (spec.md §4.1's "pluggable
// coding-convention interface") and, if so, treats both inner functions as if directly invoked;
// otherwise it falls back to resolving the ordinary callee expression.
func (r *Resolver) ResolveCallSite(call *ast.CallExpr) ([]ast.Node, bool) {
	if r.convention != nil {
		if m, ok := r.convention.MatchMemoizationCall(call); ok {
			candidates, ok := r.Resolve(m.ValueFn)
			if !ok {
				return nil, false
			}
			if m.KeyFn != nil {
				keyCandidates, ok := r.Resolve(m.KeyFn)
				if !ok {
					return nil, false
				}
				candidates = append(candidates, keyCandidates...)
			}
			return candidates, true
		}
	}
	return r.Resolve(call.Callee)
}
