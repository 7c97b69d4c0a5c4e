// Package body implements the per-function walk that turns one function's statements into
// side-effect flags on its own summaries and propagation edges to its callees: the reverse
// call-graph edges themselves, and the deferred local-resolution step that decides, for a
// variable whose property was written, whether that write escaped as an argument mutation or a
// global mutation.
package body

import (
	"fmt"

	"github.com/jmcabandara/purityflow/ast"
	"github.com/jmcabandara/purityflow/callgraph"
	"github.com/jmcabandara/purityflow/collab"
	"github.com/jmcabandara/purityflow/resolve"
	"github.com/jmcabandara/purityflow/summary"
)

// Analyzer walks function bodies for the whole program, accumulating propagation edges into a
// shared graph and every invocation node into a shared list for later annotation.
type Analyzer struct {
	store    *summary.Store
	graph    *callgraph.Graph
	resolver *resolve.Resolver
	util     collab.NodeUtils
	scope    collab.ScopeProvider

	calls []*ast.CallExpr
}

// New creates an Analyzer over the given collaborators and shared state. One Analyzer is reused
// across every function definition in the program so its call list accumulates for all of them.
func New(store *summary.Store, graph *callgraph.Graph, resolver *resolve.Resolver, util collab.NodeUtils, scope collab.ScopeProvider) *Analyzer {
	return &Analyzer{store: store, graph: graph, resolver: resolver, util: util, scope: scope}
}

// Calls returns every invocation node seen across every AnalyzeFunction call so far, for the
// Annotator to walk once propagation has reached its fixed point.
func (a *Analyzer) Calls() []*ast.CallExpr { return a.calls }

// AnalyzeFunction runs the body walk for one function definition node (*ast.FuncLit or
// *ast.FuncDecl), attributing side effects to every summary it is associated with (creating an
// anonymous one first if the function was never bound to any name). fn may also be the top-level
// *ast.Program itself: module-scope statements are walked the same way, under a synthetic summary
// nothing else in the program ever references, purely so top-level call expressions are still
// collected into Calls() for the Annotator.
func (a *Analyzer) AnalyzeFunction(fn ast.Node) error {
	var stmts []ast.Node
	switch f := fn.(type) {
	case *ast.FuncLit:
		stmts = f.Body
	case *ast.FuncDecl:
		stmts = f.Body
	case *ast.Program:
		stmts = f.Body
	default:
		return fmt.Errorf("body: AnalyzeFunction called with non-function node %T", fn)
	}

	summaries, err := a.store.EnsureSummaries(fn)
	if err != nil {
		return err
	}
	ctx := newFuncContext(fn, summaries)

	for _, stmt := range stmts {
		if err := a.visit(ctx, stmt); err != nil {
			return err
		}
	}
	a.resolveDeferred(ctx)
	return nil
}

// resolveDeferred implements the deferred local-resolution step run once a function body has been
// fully walked: every variable whose property was written (ctx.tainted) is checked against
// whether it was ever reassigned to a non-local value (ctx.blacklist) and whether it is a
// parameter or a caught exception binding, to decide whether that property write is an argument
// mutation, a global mutation, or provably invisible outside the function.
func (a *Analyzer) resolveDeferred(ctx *funcContext) {
	alreadyGlobal := ctx.mutatesGlobal()
	for name := range ctx.tainted {
		binding, ok := a.scope.GetVar(name, ctx.fn)
		if !ok {
			if !alreadyGlobal {
				ctx.set(ast.MutatesGlobal)
			}
			continue
		}
		if ctx.blacklist[name] {
			// The variable no longer necessarily holds the value it was bound to; once reassigned
			// away, a later property write on it can no longer be attributed to the original
			// parameter or declaration.
			if !alreadyGlobal {
				ctx.set(ast.MutatesGlobal)
			}
			continue
		}
		switch {
		case a.scope.IsParam(binding):
			if !alreadyGlobal {
				ctx.set(ast.MutatesArgs)
			}
		case a.scope.IsCatch(binding):
			if !alreadyGlobal {
				ctx.set(ast.MutatesGlobal)
			}
		}
		// An ordinary local variable that was never reassigned away from a provably local value:
		// its property writes are invisible outside the function.
	}
}

// visit implements the pre-order walk over one function body, dispatching on concrete node type.
// It never recurses into a nested *ast.FuncLit/*ast.FuncDecl's own parameters or body: those are
// separately enumerated and analyzed as their own top-level units by the caller of
// AnalyzeFunction.
func (a *Analyzer) visit(ctx *funcContext, n ast.Node) error {
	if n == nil {
		return nil
	}
	switch node := n.(type) {
	case *ast.Program:
		return a.visitAll(ctx, node.Body)
	case *ast.Block:
		return a.visitAll(ctx, node.Stmts)
	case *ast.ExprStmt:
		return a.visit(ctx, node.Expr)

	case *ast.CallExpr:
		if err := a.handleInvocation(ctx, node); err != nil {
			return err
		}
		if err := a.visit(ctx, node.Callee); err != nil {
			return err
		}
		return a.visitAll(ctx, node.Args)

	case *ast.Assign:
		isLocal := a.util.EvaluatesToLocalValue(node.RHS)
		for _, leaf := range a.util.FindLHSNodesIn(node.LHS) {
			a.visitLHS(ctx, leaf, isLocal)
			a.visitLHSChildren(ctx, leaf)
		}
		return a.visit(ctx, node.RHS)

	case *ast.Destructuring:
		isLocal := a.util.EvaluatesToLocalValue(node.RHS)
		for _, target := range node.Targets {
			for _, leaf := range a.util.FindLHSNodesIn(target) {
				a.visitLHS(ctx, leaf, isLocal)
				a.visitLHSChildren(ctx, leaf)
			}
		}
		return a.visit(ctx, node.RHS)

	case *ast.CompoundAssign:
		a.visitLHS(ctx, node.LHS, true)
		a.visitLHSChildren(ctx, node.LHS)
		return a.visit(ctx, node.RHS)

	case *ast.Unary:
		switch node.Op {
		case ast.UnaryIncrement, ast.UnaryDecrement, ast.UnaryDelete:
			a.visitLHS(ctx, node.Operand, true)
			a.visitLHSChildren(ctx, node.Operand)
		}
		return nil

	case *ast.ForIn:
		a.visitLHS(ctx, node.LHS, true)
		if err := a.visit(ctx, node.RHS); err != nil {
			return err
		}
		return a.visit(ctx, node.Body)

	case *ast.ForOf:
		a.visitLHS(ctx, node.LHS, false)
		a.checkImpureIteration(ctx, node)
		if err := a.visit(ctx, node.RHS); err != nil {
			return err
		}
		return a.visit(ctx, node.Body)

	case *ast.ForAwaitOf:
		a.visitLHS(ctx, node.LHS, false)
		a.checkImpureIteration(ctx, node)
		ctx.set(ast.Throws)
		if err := a.visit(ctx, node.RHS); err != nil {
			return err
		}
		return a.visit(ctx, node.Body)

	case *ast.Throw:
		ctx.set(ast.Throws)
		return a.visit(ctx, node.Value)

	case *ast.Return:
		if node.Value != nil && !a.util.EvaluatesToLocalValue(node.Value) {
			ctx.set(ast.EscapedReturn)
		}
		return a.visit(ctx, node.Value)

	case *ast.Yield:
		a.checkImpureIteration(ctx, node)
		ctx.set(ast.Throws)
		return a.visit(ctx, node.Value)

	case *ast.Await:
		ctx.set(ast.Throws)
		return a.visit(ctx, node.Value)

	case *ast.Spread:
		a.checkImpureIteration(ctx, node)
		return a.visit(ctx, node.Value)

	case *ast.Rest:
		a.checkImpureIteration(ctx, node)
		return a.visit(ctx, node.Value)

	case *ast.VarDecl:
		for _, d := range node.Declarators {
			if d.Init != nil {
				if !a.util.EvaluatesToLocalValue(d.Init) {
					ctx.blacklistVar(d.Name)
				}
				if err := a.visit(ctx, d.Init); err != nil {
					return err
				}
			}
		}
		return nil

	case *ast.If:
		if err := a.visit(ctx, node.Test); err != nil {
			return err
		}
		if err := a.visit(ctx, node.Then); err != nil {
			return err
		}
		return a.visit(ctx, node.Else)

	case *ast.While:
		if err := a.visit(ctx, node.Test); err != nil {
			return err
		}
		return a.visit(ctx, node.Body)

	case *ast.For:
		if err := a.visit(ctx, node.Init); err != nil {
			return err
		}
		if err := a.visit(ctx, node.Test); err != nil {
			return err
		}
		if err := a.visit(ctx, node.Update); err != nil {
			return err
		}
		return a.visit(ctx, node.Body)

	case *ast.Switch:
		if err := a.visit(ctx, node.Discriminant); err != nil {
			return err
		}
		for _, c := range node.Cases {
			if err := a.visit(ctx, c.Test); err != nil {
				return err
			}
			if err := a.visitAll(ctx, c.Body); err != nil {
				return err
			}
		}
		return nil

	case *ast.ArrayLiteral:
		return a.visitAll(ctx, node.Elements)

	case *ast.ObjectLiteral:
		for _, p := range node.Properties {
			if err := a.visit(ctx, p.Value); err != nil {
				return err
			}
		}
		return nil

	case *ast.ClassDecl:
		// Methods are separate definition units, analyzed independently by the caller; only the
		// extends-clause expression is part of this function's own body.
		return a.visit(ctx, node.Extends)

	case *ast.TemplateLiteral:
		return a.visitAll(ctx, node.Expressions)

	case *ast.Binary:
		if err := a.visit(ctx, node.Left); err != nil {
			return err
		}
		return a.visit(ctx, node.Right)

	case *ast.LogicalOr:
		if err := a.visit(ctx, node.Left); err != nil {
			return err
		}
		return a.visit(ctx, node.Right)

	case *ast.Conditional:
		if err := a.visit(ctx, node.Test); err != nil {
			return err
		}
		if err := a.visit(ctx, node.Then); err != nil {
			return err
		}
		return a.visit(ctx, node.Else)

	case *ast.PropAccess:
		return a.visit(ctx, node.Object)

	case *ast.Try:
		if err := a.visitAll(ctx, node.Block); err != nil {
			return err
		}
		if err := a.visitAll(ctx, node.CatchBody); err != nil {
			return err
		}
		return a.visitAll(ctx, node.Finally)

	case *ast.FuncLit, *ast.FuncDecl:
		// Stop boundary: a nested function definition is its own unit, walked by a separate
		// AnalyzeFunction call.
		return nil

	case *ast.Ident, *ast.Literal, *ast.Unsupported:
		return nil

	default:
		return fmt.Errorf("body: unhandled node kind %T; grammar coverage must be exhaustive", node)
	}
}

func (a *Analyzer) visitAll(ctx *funcContext, nodes []ast.Node) error {
	for _, n := range nodes {
		if err := a.visit(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

// visitLHSChildren recurses into the non-target sub-expression of an L-value that can itself
// carry side effects, e.g. the receiver of `f().p = 1`. visitLHS's own recursion into lhs stops
// at classifying the target; this call catches everything visitLHS intentionally does not walk.
func (a *Analyzer) visitLHSChildren(ctx *funcContext, lhs ast.Node) error {
	if prop, ok := lhs.(*ast.PropAccess); ok {
		return a.visit(ctx, prop.Object)
	}
	return nil
}

// checkImpureIteration implements the impure-iteration check shared by for-of, for-await-of,
// yield/yield*, spread, and rest: iterating anything other than a provably pure literal iterable
// may run arbitrary user-defined iterator code, so it pessimizes like an unresolved call.
func (a *Analyzer) checkImpureIteration(ctx *funcContext, n ast.Node) {
	if a.util.IteratesImpureIterable(n) {
		ctx.set(ast.Throws | ast.MutatesGlobal | ast.MutatesArgs)
	}
}
