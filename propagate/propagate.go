// Package propagate runs the monotone fixed-point worklist over the reverse call graph that
// every summary store's body-analysis bits must pass through before annotation: effects a callee
// exhibits become effects its callers must be assumed to exhibit too, modulated by what each
// individual call site's descriptor permits the caller to claim immunity from.
package propagate

import (
	"fmt"

	"github.com/jmcabandara/purityflow/ast"
	"github.com/jmcabandara/purityflow/callgraph"
	"github.com/jmcabandara/purityflow/config"
	"github.com/jmcabandara/purityflow/summary"
)

// Run drives the worklist to a fixed point: repeatedly scans every edge in the graph, and for
// each one whose callee summary carries flags the caller summary does not yet reflect, applies
// the propagation rules below. It terminates because every summary's flag set only grows and is
// bounded by ast.AllFlags, so no more than len(store.All()) * 5 rounds of "something changed" are
// possible; config.MaxPropagationRounds exists purely as a safety net in case that invariant is
// ever violated by a future bug, turning a hypothetical infinite loop into a loud panic.
func Run(store *summary.Store, graph *callgraph.Graph) {
	summariesByNode := indexByGraphID(store)

	for round := 0; ; round++ {
		if round >= config.MaxPropagationRounds {
			panic(fmt.Sprintf("propagate: exceeded %d rounds without reaching a fixed point", config.MaxPropagationRounds))
		}
		changed := false
		for _, edge := range graph.AllEdges() {
			callee, ok := summariesByNode[edge.Callee]
			if !ok {
				continue
			}
			caller, ok := summariesByNode[edge.Caller]
			if !ok {
				continue
			}
			if applyEdge(callee, caller, edge) {
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

func indexByGraphID(store *summary.Store) map[callgraph.NodeID]*summary.Summary {
	out := make(map[callgraph.NodeID]*summary.Summary)
	for _, s := range store.All() {
		out[s.GraphID()] = s
	}
	return out
}

// applyEdge implements every propagation rule for one callee-to-caller edge, returning whether it
// changed the caller's summary.
func applyEdge(callee, caller *summary.Summary, edge *callgraph.Edge) bool {
	changed := false
	cf := callee.Flags()

	// A callee that throws makes every caller able to throw too: exceptions are never contained
	// by the mere act of being called.
	if cf.Has(ast.Throws) {
		changed = caller.Set(ast.Throws) || changed
	}

	// A callee that reaches global state makes every caller reach it too, unconditionally: there
	// is no call-site shape that can shield a caller from a callee's global mutation.
	if cf.Has(ast.MutatesGlobal) {
		changed = caller.Set(ast.MutatesGlobal) || changed
	}

	// A callee that mutates its own arguments only escapes to the caller's global state if this
	// call site could not prove every argument it passed was a fresh, unescaped local value; a
	// callee promised not to retain or leak arguments it was given exclusively local values for.
	if cf.Has(ast.MutatesArgs) && !edge.AllArgsUnescapedLocal {
		changed = caller.Set(ast.MutatesGlobal) || changed
	}

	// A callee that mutates its receiver (`this`) propagates as a this-mutation on the caller only
	// when the caller's own `this` was passed through unchanged (a bare, non-.call/.apply
	// invocation on `this` itself); a `new` expression always binds a fresh receiver, so it never
	// propagates as a this-mutation regardless of call shape.
	switch {
	case cf.Has(ast.MutatesThis) && edge.Kind == callgraph.CallKindNew:
		// Fresh receiver: no propagation.
	case cf.Has(ast.MutatesThis) && edge.CalleeThisEqualsCallerThis:
		changed = caller.Set(ast.MutatesThis) || changed
	case cf.Has(ast.MutatesThis):
		changed = caller.Set(ast.MutatesGlobal) || changed
	}

	// ESCAPED_RETURN deliberately never propagates through a call: whether a callee's return value
	// escapes says nothing about what the caller's own return value does with it.

	return changed
}
