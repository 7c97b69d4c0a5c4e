// Package invoke holds the small set of call-site shape predicates shared between the Body
// Analyzer (C7, which builds propagation descriptors from them) and the Annotator (C9, which
// re-derives the same shape to decide how MUTATES_THIS is recorded at the call site). Keeping
// them in one place guarantees both components agree on what counts as a .call/.apply
// invocation, per spec.md §4.6 and §4.8.
package invoke

import "github.com/jmcabandara/purityflow/ast"

// Kind reports the syntactic call form, translating ast.InvocationKind for call sites only
// (tagged templates and new-expressions are never via .call/.apply).
func Kind(call *ast.CallExpr) ast.InvocationKind { return call.InvocationKind() }

// IsCallOrApply reports whether call invokes its callee through `.call(...)`/`.apply(...)`
// reflective dispatch, i.e. the callee is a property access whose property name is "call" or
// "apply" (spec.md §4.1, §4.6, §4.8).
func IsCallOrApply(call *ast.CallExpr) bool {
	p, ok := call.Callee.(*ast.PropAccess)
	if !ok {
		return false
	}
	return p.Property == "call" || p.Property == "apply"
}

// Receiver returns the receiver expression for this call site per spec.md §4.6: for ordinary
// calls, the object of a property-access callee (ok=false if the callee is a bare name/function
// literal, meaning there is no receiver); for .call/.apply invocations, the first argument.
func Receiver(call *ast.CallExpr) (ast.Node, bool) {
	if IsCallOrApply(call) {
		if len(call.Args) == 0 {
			return nil, false
		}
		return call.Args[0], true
	}
	if p, ok := call.Callee.(*ast.PropAccess); ok {
		return p.Object, true
	}
	return nil, false
}

// IsBareThis reports whether n is syntactically a bare `this` reference (modeled, like every
// other identifier, as an *ast.Ident named "this" — this language has no separate this-keyword
// node kind, mirroring how the upstream reference map treats it as just another name).
func IsBareThis(n ast.Node) bool {
	id, ok := n.(*ast.Ident)
	return ok && id.Name == "this"
}

// CalleeThisEqualsCallerThis implements spec.md §4.6: true iff the receiver bound by this call
// is the caller's own receiver (syntactically bare `this`), and the call is not via .call/.apply.
func CalleeThisEqualsCallerThis(call *ast.CallExpr) bool {
	if IsCallOrApply(call) {
		return false
	}
	recv, ok := Receiver(call)
	return ok && IsBareThis(recv)
}
