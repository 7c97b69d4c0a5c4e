// Package classify implements the R-value Classifier (spec.md §4.2, component C4): a
// conservative whitelist predicate deciding whether a reference node appears in a read (R-value)
// position versus a write (L-value) position. Anything not on the whitelist defaults to L-value,
// per spec.md's "New grammar must default to L-value to avoid under-approximation".
package classify

import "github.com/jmcabandara/purityflow/ast"

// InExterns should be passed true when classifying a reference inside the externally-declared
// environment, where spec.md §4.2 makes EXPR_RESULT L-value (a bare declaration stub) rather
// than R-value.
func IsRValue(n ast.Node, inExterns bool) bool {
	parent := n.Parent()
	if parent == nil {
		return false
	}

	switch p := parent.(type) {
	case *ast.CallExpr:
		// Arguments to invocations are R-value; the callee itself is handled by the resolver,
		// not this classifier, but if asked we still treat it as a read (it's never assigned to).
		return true

	case *ast.Binary:
		// operands of comparison/typeof/instanceof and arithmetic are R-value.
		return p.Left == n || p.Right == n

	case *ast.LogicalOr:
		return p.Left == n || p.Right == n

	case *ast.ArrayLiteral:
		return true

	case *ast.PropAccess:
		// the object of a property access is read, not written (the write, if any, is the
		// PropAccess node itself, one level up).
		return p.Object == n

	case *ast.Return:
		return true

	case *ast.Yield:
		return true

	case *ast.ObjectLiteral:
		// object-literal VALUE positions are R-value (not destructuring); this classifier is
		// only ever asked about a node appearing as some property's Value, since destructuring
		// targets are represented by ast.Destructuring, a different parent type entirely.
		return true

	case *ast.Assign:
		return p.RHS == n

	case *ast.CompoundAssign:
		return p.RHS == n

	case *ast.ClassDecl:
		return p.Extends == n

	case *ast.Switch:
		return p.Discriminant == n

	case *ast.Case:
		return p.Test == n

	case *ast.While:
		return p.Test == n

	case *ast.If:
		return p.Test == n

	case *ast.For:
		return p.Test == n

	case *ast.ExprStmt:
		// EXPR_RESULT is R-value except in externs, where a bare declaration is an L-value stub
		// (spec.md §4.2).
		return !inExterns

	case *ast.Conditional:
		return p.Test == n || p.Then == n || p.Else == n

	case *ast.VarDeclarator:
		return p.Init == n

	case *ast.Unary:
		return false // ++/--/delete operands are L-value, handled by the body analyzer directly.

	case *ast.Throw:
		return true

	case *ast.Await:
		return true

	case *ast.Spread:
		return true

	case *ast.TemplateLiteral:
		return true

	default:
		// Anything unlisted defaults to L-value, per spec.md §4.2's conservative default.
		return false
	}
}
