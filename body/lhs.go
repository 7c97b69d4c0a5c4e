package body

import "github.com/jmcabandara/purityflow/ast"

// visitLHS implements spec.md §4.5.1 for one L-value target node, given whether its bound RHS
// value is provably local (isLocalRHS). The target node itself is what the scope provider is
// asked about ("same container scope as this reference").
func (a *Analyzer) visitLHS(ctx *funcContext, lhs ast.Node, isLocalRHS bool) {
	if prop, ok := lhs.(*ast.PropAccess); ok {
		a.visitPropLHS(ctx, prop)
		return
	}
	ident, ok := lhs.(*ast.Ident)
	if !ok {
		// Anything else appearing as an L-value (e.g. a nested destructuring pattern the
		// collaborator's FindLHSNodesIn already flattened past) is conservatively treated as a
		// non-local write target.
		ctx.set(ast.MutatesGlobal)
		return
	}

	binding, ok := a.scope.GetVar(ident.Name, ident)
	if ok && a.scope.HasSameContainerScope(binding, ident) {
		if !isLocalRHS {
			ctx.blacklistVar(ident.Name)
		}
		return
	}
	ctx.set(ast.MutatesGlobal)
}

// visitPropLHS implements the property-access branch of spec.md §4.5.1: `obj.p = ...`.
func (a *Analyzer) visitPropLHS(ctx *funcContext, prop *ast.PropAccess) {
	if isBareThis(prop.Object) {
		ctx.set(ast.MutatesThis)
		return
	}

	ident, ok := prop.Object.(*ast.Ident)
	if !ok {
		// obj is not a bare name (e.g. a.b.c = ...): a multi-hop receiver, treated as non-local.
		ctx.set(ast.MutatesGlobal)
		return
	}

	binding, ok := a.scope.GetVar(ident.Name, ident)
	if ok && a.scope.HasSameContainerScope(binding, ident) {
		ctx.taintVar(ident.Name)
		return
	}
	ctx.set(ast.MutatesGlobal)
}

func isBareThis(n ast.Node) bool {
	id, ok := n.(*ast.Ident)
	return ok && id.Name == "this"
}
