package body

import (
	"fmt"

	"github.com/jmcabandara/purityflow/ast"
	"github.com/jmcabandara/purityflow/callgraph"
	"github.com/jmcabandara/purityflow/invoke"
	"github.com/jmcabandara/purityflow/summary"
)

// handleInvocation implements spec.md §4.5's "Invocation nodes" bullet: the call is always
// recorded for later annotation; its callee is resolved, and either the enclosing summaries are
// pessimized (unresolved callee) or a propagation edge is added from every resolved callee
// summary to every enclosing (caller) summary, per the descriptor built in §4.6.
func (a *Analyzer) handleInvocation(ctx *funcContext, call *ast.CallExpr) error {
	a.calls = append(a.calls, call)

	candidates, ok := a.resolver.ResolveCallSite(call)
	if !ok {
		ctx.set(ast.MutatesGlobal | ast.Throws)
		return nil
	}

	callees, err := a.resolveCandidateSummaries(candidates)
	if err != nil {
		return err
	}

	desc := a.describeCallSite(call)
	for _, callee := range callees {
		for _, caller := range ctx.summaries {
			a.graph.AddEdge(callgraph.Edge{
				Callee:                     callee.GraphID(),
				Caller:                     caller.GraphID(),
				AllArgsUnescapedLocal:      desc.allArgsUnescapedLocal,
				CalleeThisEqualsCallerThis: desc.calleeThisEqualsCallerThis,
				Kind:                       desc.kind,
			})
		}
	}
	return nil
}

// callSiteDescriptor is the in-package value form of spec.md §3's Call-Site Propagation
// Descriptor, before it is written into a callgraph.Edge (which is graph-package-owned and
// therefore cannot import package ast).
type callSiteDescriptor struct {
	allArgsUnescapedLocal      bool
	calleeThisEqualsCallerThis bool
	kind                       callgraph.CallKind
}

// describeCallSite implements spec.md §4.6 in full. At .call/.apply sites allArgsUnescapedLocal
// is computed over every argument, the receiver argument included, exactly as at an ordinary call
// site; no separate locality policy applies to them.
func (a *Analyzer) describeCallSite(call *ast.CallExpr) callSiteDescriptor {
	return callSiteDescriptor{
		allArgsUnescapedLocal:      a.util.AllArgsUnescapedLocal(call),
		calleeThisEqualsCallerThis: invoke.CalleeThisEqualsCallerThis(call),
		kind:                       callKind(invoke.Kind(call)),
	}
}

func callKind(k ast.InvocationKind) callgraph.CallKind {
	switch k {
	case ast.InvokeNew:
		return callgraph.CallKindNew
	case ast.InvokeTaggedTemplate:
		return callgraph.CallKindTaggedTemplate
	default:
		return callgraph.CallKindCall
	}
}

// resolveCandidateSummaries maps each definition candidate returned by the resolver (spec.md
// §4.1) to the summary/summaries it denotes: a function literal/declaration maps to the
// summaries it is associated with (creating an anonymous one if it was never bound to a name),
// while a bare identifier or property access candidate denotes a *name*, whose summary is looked
// up directly by short name (it must already exist: the seeding pass (C5) creates a summary for
// every short name referenced anywhere in the program before any body is analyzed).
func (a *Analyzer) resolveCandidateSummaries(candidates []ast.Node) ([]*summary.Summary, error) {
	var out []*summary.Summary
	for _, c := range candidates {
		switch n := c.(type) {
		case *ast.FuncLit:
			s, err := a.store.EnsureSummaries(n)
			if err != nil {
				return nil, err
			}
			out = append(out, s...)
		case *ast.FuncDecl:
			s, err := a.store.EnsureSummaries(n)
			if err != nil {
				return nil, err
			}
			out = append(out, s...)
		case *ast.Ident:
			s, ok := a.store.Lookup(n.Name)
			if !ok {
				return nil, fmt.Errorf("body: invariant violation: no summary seeded for referenced name %q", n.Name)
			}
			out = append(out, s)
		case *ast.PropAccess:
			short, err := summary.ShortName(n.Property, true)
			if err != nil {
				return nil, err
			}
			s, ok := a.store.Lookup(short)
			if !ok {
				return nil, fmt.Errorf("body: invariant violation: no summary seeded for referenced property %q", n.Property)
			}
			out = append(out, s)
		default:
			return nil, fmt.Errorf("body: invariant violation: unexpected definition candidate type %T", c)
		}
	}
	return out, nil
}
