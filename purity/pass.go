// Package purity is the single-shot orchestrator wiring every other package in this module into
// one whole-program analysis pass: seed every referenced name, classify externs, walk every
// defined function's body, propagate effects to a fixed point over the reverse call graph, and
// annotate every call site with its final side-effect flags.
package purity

import (
	"fmt"

	"github.com/jmcabandara/purityflow/annotate"
	"github.com/jmcabandara/purityflow/ast"
	bodypkg "github.com/jmcabandara/purityflow/body"
	"github.com/jmcabandara/purityflow/callgraph"
	"github.com/jmcabandara/purityflow/classify"
	"github.com/jmcabandara/purityflow/collab"
	"github.com/jmcabandara/purityflow/diagnostic"
	"github.com/jmcabandara/purityflow/extern"
	"github.com/jmcabandara/purityflow/propagate"
	"github.com/jmcabandara/purityflow/resolve"
	"github.com/jmcabandara/purityflow/seed"
	"github.com/jmcabandara/purityflow/summary"
)

// Collaborators bundles every external dependency the pass needs; all five must be supplied by
// whatever front-end lowered the program into package ast's node types.
type Collaborators struct {
	References collab.ReferenceMap
	Convention collab.CodingConvention
	Nodes      collab.NodeUtils
	Scope      collab.ScopeProvider
	Types      collab.TypeRegistry
}

// Pass is a single-use analysis run. Constructing one and calling Run more than once is a
// programming error: Run returns an error on the second and subsequent calls rather than silently
// recomputing over a Summary Store that already holds a converged fixed point.
type Pass struct {
	collab Collaborators
	ran    bool

	// Store is exposed after a successful Run so callers (the CLI, tests) can inspect final
	// per-name summaries.
	Store *summary.Store
	// Calls is exposed after a successful Run so callers can inspect the final SideEffectFlags
	// the Annotator wrote onto every call site discovered in source.
	Calls []*ast.CallExpr
	// Diagnostics accumulates every pessimization event recorded during Run (unresolved callees,
	// and anything else a collaborator could only handle by falling back to a sound but
	// conservative default). It is never nil after New.
	Diagnostics *diagnostic.Engine
}

// New creates a Pass over the given collaborators.
func New(c Collaborators) *Pass {
	return &Pass{collab: c, Diagnostics: diagnostic.NewEngine()}
}

// Run executes the whole pipeline once over source (the program under analysis) and externs (its
// externally-declared environment; pass an empty *ast.Program if there is none). It recovers from
// any panic raised by a downstream component and reports it as an error instead, so one
// unanalyzable construct deep in the program cannot crash the whole run.
func (p *Pass) Run(source, externs *ast.Program) (err error) {
	if p.ran {
		return fmt.Errorf("purity: Run called twice on the same Pass")
	}
	p.ran = true

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("purity: internal panic during analysis: %v", r)
		}
	}()

	graph := callgraph.NewGraph()
	store := summary.NewStore(graph)
	resolver := resolve.New(p.collab.Nodes, p.collab.Convention)

	seeder := seed.New(store, p.collab.References, p.collab.Nodes, resolver, classify.IsRValue)
	if err := seeder.Run(); err != nil {
		return err
	}

	externAnalyzer := extern.New(p.collab.Nodes, p.collab.Types)
	for _, fn := range discoverFunctions(externs) {
		summaries, err := store.EnsureSummaries(fn)
		if err != nil {
			return err
		}
		for _, sm := range summaries {
			externAnalyzer.AnalyzeFunc(fn, sm)
		}
	}

	bodyAnalyzer := bodypkg.New(store, graph, resolver, p.collab.Nodes, p.collab.Scope)
	// Module-scope statements are walked first, under their own synthetic summary, purely so any
	// call expression made directly at the top level (never inside a function) is still collected
	// for the Annotator; nothing in the program can ever reference that summary back.
	if err := bodyAnalyzer.AnalyzeFunction(source); err != nil {
		return err
	}
	for _, fn := range discoverFunctions(source) {
		if err := bodyAnalyzer.AnalyzeFunction(fn); err != nil {
			return err
		}
	}

	propagate.Run(store, graph)

	annotator := annotate.New(store, resolver, p.collab.Nodes, p.Diagnostics)
	if err := annotator.AnnotateAll(bodyAnalyzer.Calls()); err != nil {
		return err
	}

	p.Store = store
	p.Calls = bodyAnalyzer.Calls()
	return nil
}
