// Package nodeutil is the concrete collab.NodeUtils implementation over package ast's own node
// types: it is the "home grammar" collaborator, used whenever the program under analysis was
// lowered by package parser rather than supplied by some other front-end.
package nodeutil

import "github.com/jmcabandara/purityflow/ast"

// Utils implements collab.NodeUtils.
type Utils struct {
	// Intrinsics declares the host runtime's intrinsic-purity table for specific call/new
	// expressions, keyed by the textual callee name this Utils was built to recognize (e.g.
	// "Object.freeze", "Array.isArray"). A missing key means "not a recognized intrinsic".
	Intrinsics map[string]bool
	// ConstructorIntrinsics is the same table for `new` expressions.
	ConstructorIntrinsics map[string]bool
}

// New creates a Utils with the given intrinsic-purity tables (either may be nil, meaning "no
// intrinsics recognized").
func New(intrinsics, constructorIntrinsics map[string]bool) *Utils {
	return &Utils{Intrinsics: intrinsics, ConstructorIntrinsics: constructorIntrinsics}
}

func (u *Utils) IsInvocation(n ast.Node) (*ast.CallExpr, bool) {
	c, ok := n.(*ast.CallExpr)
	return c, ok
}

func (u *Utils) IsFunctionExpression(n ast.Node) (*ast.FuncLit, bool) {
	f, ok := n.(*ast.FuncLit)
	return f, ok
}

func (u *Utils) IsNameDeclaration(n ast.Node) (*ast.VarDecl, bool) {
	d, ok := n.(*ast.VarDecl)
	return d, ok
}

func (u *Utils) IsCompoundAssignment(n ast.Node) (*ast.CompoundAssign, bool) {
	c, ok := n.(*ast.CompoundAssign)
	return c, ok
}

func (u *Utils) IsGet(n ast.Node) bool {
	p, ok := n.(*ast.PropAccess)
	if !ok {
		return false
	}
	_, isCall := p.Parent().(*ast.CallExpr)
	return !isCall
}

// IteratesImpureIterable is deliberately conservative: only an array literal or a primitive
// literal (a fresh, statically-known-shape value) is treated as a pure iterable; anything else —
// an object literal, a variable, a call result, a property access — might run arbitrary
// user-defined iterator protocol code.
func (u *Utils) IteratesImpureIterable(n ast.Node) bool {
	target := iterationTargetOf(n)
	if target == nil {
		return true
	}
	switch target.(type) {
	case *ast.ArrayLiteral, *ast.Literal:
		return false
	default:
		return true
	}
}

func iterationTargetOf(n ast.Node) ast.Node {
	switch node := n.(type) {
	case *ast.ForOf:
		return node.RHS
	case *ast.ForAwaitOf:
		return node.RHS
	case *ast.Yield:
		if node.Delegate {
			return node.Value
		}
		return nil
	case *ast.Spread:
		return node.Value
	case *ast.Rest:
		return nil // no iteration target of its own, so it is reported impure like any other nil target
	default:
		return nil
	}
}

// EvaluatesToLocalValue is the conservative "provably fresh, unescaped value" predicate: true
// only for primitive/fresh-allocation literals, object/array literal expressions and function
// literals, exactly the
// syntactic forms that cannot already be aliased by anything else in the program.
func (u *Utils) EvaluatesToLocalValue(n ast.Node) bool {
	switch n.(type) {
	case *ast.Literal, *ast.ArrayLiteral, *ast.ObjectLiteral, *ast.FuncLit:
		return true
	default:
		return false
	}
}

func (u *Utils) AllArgsUnescapedLocal(call *ast.CallExpr) bool {
	for _, arg := range call.Args {
		if !u.EvaluatesToLocalValue(arg) {
			return false
		}
	}
	return true
}

// FindLHSNodesIn flattens a single L-value target or a nested destructuring pattern down to its
// leaf write targets (bare identifiers and property accesses).
func (u *Utils) FindLHSNodesIn(n ast.Node) []ast.Node {
	switch node := n.(type) {
	case nil:
		return nil
	case *ast.Destructuring:
		var out []ast.Node
		for _, t := range node.Targets {
			out = append(out, u.FindLHSNodesIn(t)...)
		}
		return out
	case *ast.Rest:
		return u.FindLHSNodesIn(node.Value)
	default:
		return []ast.Node{node}
	}
}

// GetRValueOfLValue returns the RHS bound to a write reference at its own definition site: for a
// VarDeclarator (which stands for its own bound name) this looks through to its initializer; for a
// FuncDecl, the declaration itself; for anything already appearing as the LHS of an assignment,
// the sibling RHS.
func (u *Utils) GetRValueOfLValue(lvalue ast.Node) (ast.Node, bool) {
	// A function declaration's own name reference denotes itself: `function f() {}` binds f to
	// this very definition, with no separate assignment/declarator to look through.
	if _, ok := lvalue.(*ast.FuncDecl); ok {
		return lvalue, true
	}
	// A declarator's own name reference (it has no Ident node of its own; VarDeclarator.Name is
	// a bare string) denotes its initializer, the same way a FuncDecl denotes itself above.
	if d, ok := lvalue.(*ast.VarDeclarator); ok {
		if d.Init != nil {
			return d.Init, true
		}
		return nil, false
	}
	switch p := lvalue.Parent().(type) {
	case *ast.Assign:
		if p.LHS == lvalue {
			return p.RHS, true
		}
	}
	return nil, false
}

func (u *Utils) FunctionCallHasSideEffects(call *ast.CallExpr) (declared bool, ok bool) {
	return lookupIntrinsic(u.Intrinsics, call)
}

func (u *Utils) ConstructorCallHasSideEffects(call *ast.CallExpr) (declared bool, ok bool) {
	return lookupIntrinsic(u.ConstructorIntrinsics, call)
}

func lookupIntrinsic(table map[string]bool, call *ast.CallExpr) (declared bool, ok bool) {
	if table == nil {
		return false, false
	}
	name, ok := calleeDottedName(call.Callee)
	if !ok {
		return false, false
	}
	declared, ok = table[name]
	return declared, ok
}

// calleeDottedName renders a callee expression as a dotted name ("Object.freeze") when it is
// composed entirely of bare identifiers and property accesses, the only shape the intrinsic table
// is keyed by.
func calleeDottedName(n ast.Node) (string, bool) {
	switch node := n.(type) {
	case *ast.Ident:
		return node.Name, true
	case *ast.PropAccess:
		base, ok := calleeDottedName(node.Object)
		if !ok {
			return "", false
		}
		return base + "." + node.Property, true
	default:
		return "", false
	}
}

func (u *Utils) GetBestJSDocInfo(fn ast.Node) *ast.JSDocInfo {
	switch f := fn.(type) {
	case *ast.FuncLit:
		return f.JSDoc
	case *ast.FuncDecl:
		return f.JSDoc
	default:
		return nil
	}
}
