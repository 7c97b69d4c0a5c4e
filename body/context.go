package body

import (
	"github.com/jmcabandara/purityflow/ast"
	"github.com/jmcabandara/purityflow/summary"
)

// funcContext is the per-function mutable state the spec names in §4.5.4: the blacklist of
// locals that may hold a non-local value, and the taint set of locals whose properties were
// written. It is created fresh for every function the driver analyzes and discarded once
// resolveDeferred runs at scope exit — nothing here outlives a single AnalyzeFunction call.
type funcContext struct {
	fn        ast.Node
	summaries []*summary.Summary
	blacklist map[string]bool
	tainted   map[string]bool
}

func newFuncContext(fn ast.Node, summaries []*summary.Summary) *funcContext {
	return &funcContext{
		fn:        fn,
		summaries: summaries,
		blacklist: make(map[string]bool),
		tainted:   make(map[string]bool),
	}
}

// setAll pessimizes every summary this function contributes to, mirroring
// summary.Summary.SetAll but applied across every alias name this literal is bound to at once
// (spec.md §3: one function literal can be bound to multiple names).
func (c *funcContext) setAll() {
	c.set(ast.AllFlags)
}

// set adds bits to every summary this function contributes to.
func (c *funcContext) set(bits ast.Flags) {
	for _, s := range c.summaries {
		s.Set(bits)
	}
}

// mutatesGlobal reports whether this function's summaries already carry MUTATES_GLOBAL — used by
// resolveDeferred's early-skip (spec.md §4.5.4 "If the function already has MUTATES_GLOBAL,
// skip"). Since every alias summary was set together by this same analysis, checking any one is
// representative, but we check all defensively in case a summary was independently pessimized
// elsewhere (e.g. a dynamic name alias) between creation and scope exit.
func (c *funcContext) mutatesGlobal() bool {
	for _, s := range c.summaries {
		if s.Flags().Has(ast.MutatesGlobal) {
			return true
		}
	}
	return false
}

func (c *funcContext) blacklistVar(name string) { c.blacklist[name] = true }
func (c *funcContext) taintVar(name string)      { c.tainted[name] = true }
