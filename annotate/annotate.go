// Package annotate implements the final pass over every collected call node: resolving its callee
// to the (by-then fixed-point) summaries that reached it, translating their flags into the call
// site's own CallFlags, and applying any intrinsic-purity override the host runtime declares for
// that specific call.
package annotate

import (
	"fmt"

	"github.com/jmcabandara/purityflow/ast"
	"github.com/jmcabandara/purityflow/collab"
	"github.com/jmcabandara/purityflow/diagnostic"
	"github.com/jmcabandara/purityflow/invoke"
	"github.com/jmcabandara/purityflow/resolve"
	"github.com/jmcabandara/purityflow/summary"
)

// Annotator writes final ast.CallFlags onto every call node the Body Analyzer collected.
type Annotator struct {
	store    *summary.Store
	resolver *resolve.Resolver
	util     collab.NodeUtils
	diag     *diagnostic.Engine
}

// New creates an Annotator over the given collaborators and the now-converged summary store. diag
// may be nil, in which case pessimization events are simply not recorded anywhere.
func New(store *summary.Store, resolver *resolve.Resolver, util collab.NodeUtils, diag *diagnostic.Engine) *Annotator {
	return &Annotator{store: store, resolver: resolver, util: util, diag: diag}
}

// AnnotateAll writes SideEffectFlags onto every call in calls, in any order (each call's
// annotation is independent of every other's).
func (an *Annotator) AnnotateAll(calls []*ast.CallExpr) error {
	for _, call := range calls {
		if err := an.annotate(call); err != nil {
			return err
		}
	}
	return nil
}

func (an *Annotator) annotate(call *ast.CallExpr) error {
	flags, err := an.computeFlags(call)
	if err != nil {
		return err
	}

	if declared, isIntrinsic := an.intrinsicOverride(call); isIntrinsic {
		if declared {
			flags = flags.Set(ast.AllCallFlags)
		} else {
			// Clear only the side-effect bits: the host runtime vouches for this specific
			// intrinsic call having no side effects, but its return-taint was computed from the
			// resolved callee summaries above (or from the unresolved pessimization) and must
			// survive the override.
			flags &^= ast.CallMutatesGlobal | ast.CallMutatesThis | ast.CallMutatesArgs | ast.CallThrows
		}
	}
	call.SideEffectFlags = flags
	return nil
}

// computeFlags resolves call's callee and folds every candidate's summary flags into this call
// site's own CallFlags, or pessimizes to ast.UnresolvedCallFlags if the callee could not be
// resolved to any definition candidate at all.
func (an *Annotator) computeFlags(call *ast.CallExpr) (ast.CallFlags, error) {
	candidates, ok := an.resolver.ResolveCallSite(call)
	if !ok {
		if an.diag != nil {
			an.diag.Warnf(call.Pos(), "could not resolve callee to any definition candidate; pessimizing call site")
		}
		return ast.UnresolvedCallFlags, nil
	}

	var flags ast.CallFlags
	for _, c := range candidates {
		sm, err := an.summaryFor(c)
		if err != nil {
			return 0, err
		}
		flags = flags.Set(flagsFromSummary(sm.Flags(), call))
	}
	return flags, nil
}

// intrinsicOverride consults the host runtime's intrinsic-purity table for a specific call/new
// expression: calls into a language builtin bypass everything else the analysis knows, since the
// analysis has no body to walk for it.
func (an *Annotator) intrinsicOverride(call *ast.CallExpr) (declared bool, ok bool) {
	if call.InvocationKind() == ast.InvokeNew {
		return an.util.ConstructorCallHasSideEffects(call)
	}
	return an.util.FunctionCallHasSideEffects(call)
}

// flagsFromSummary translates one resolved callee's Flags into this call site's CallFlags,
// applying the .call/.apply MUTATES_THIS-becomes-MUTATES_ARGS rewrite: a receiver passed as an
// ordinary value argument to .call/.apply is, from the caller's perspective, indistinguishable
// from any other argument the callee might mutate. A new-expression binds a fresh receiver, so
// MUTATES_THIS is not recorded on it at all.
func flagsFromSummary(f ast.Flags, call *ast.CallExpr) ast.CallFlags {
	var out ast.CallFlags
	if f.Has(ast.Throws) {
		out = out.Set(ast.CallThrows)
	}
	if f.Has(ast.MutatesGlobal) {
		out = out.Set(ast.CallMutatesGlobal)
	}
	if f.Has(ast.MutatesArgs) {
		out = out.Set(ast.CallMutatesArgs)
	}
	if f.Has(ast.EscapedReturn) {
		out = out.Set(ast.CallReturnTainted)
	}
	if f.Has(ast.MutatesThis) {
		if invoke.IsCallOrApply(call) {
			out = out.Set(ast.CallMutatesArgs)
		} else if call.InvocationKind() != ast.InvokeNew {
			out = out.Set(ast.CallMutatesThis)
		}
	}
	return out
}

// summaryFor mirrors body.resolveCandidateSummaries for a single resolver candidate: a function
// definition node carries its associated summaries directly (and must already have one, since the
// Body Analyzer visited it during its own pass), while a bare name or property-access candidate
// denotes a summary looked up by short name.
func (an *Annotator) summaryFor(candidate ast.Node) (*summary.Summary, error) {
	switch n := candidate.(type) {
	case *ast.FuncLit:
		return an.firstAssociated(n)
	case *ast.FuncDecl:
		return an.firstAssociated(n)
	case *ast.Ident:
		s, ok := an.store.Lookup(n.Name)
		if !ok {
			return nil, fmt.Errorf("annotate: invariant violation: no summary seeded for referenced name %q", n.Name)
		}
		return s, nil
	case *ast.PropAccess:
		short, err := summary.ShortName(n.Property, true)
		if err != nil {
			return nil, err
		}
		s, ok := an.store.Lookup(short)
		if !ok {
			return nil, fmt.Errorf("annotate: invariant violation: no summary seeded for referenced property %q", n.Property)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("annotate: invariant violation: unexpected definition candidate type %T", candidate)
	}
}

func (an *Annotator) firstAssociated(fn ast.Node) (*summary.Summary, error) {
	summaries := an.store.SummariesFor(fn)
	if len(summaries) == 0 {
		return nil, fmt.Errorf("annotate: invariant violation: function node %T was never analyzed", fn)
	}
	// Every summary associated with the same function literal carries the same union of observed
	// flags by construction (body.Analyzer sets bits across ctx.summaries together), so any one is
	// representative for this call site's purposes.
	return summaries[0], nil
}
