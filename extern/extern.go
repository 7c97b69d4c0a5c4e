// Package extern implements the Extern Analyzer (spec.md §4.4, component C6): reads each extern
// function's declarative (JSDoc-style) annotations and declared return type, and seeds its
// summary accordingly. Externs have no body to walk (they are declarations only), so this
// component is a flat per-function classification rather than a traversal.
package extern

import (
	"github.com/jmcabandara/purityflow/ast"
	"github.com/jmcabandara/purityflow/collab"
	"github.com/jmcabandara/purityflow/summary"
)

// Analyzer seeds extern function summaries per spec.md §4.4.
type Analyzer struct {
	util  collab.NodeUtils
	types collab.TypeRegistry
}

// New creates an extern Analyzer.
func New(util collab.NodeUtils, types collab.TypeRegistry) *Analyzer {
	return &Analyzer{util: util, types: types}
}

// AnalyzeFunc classifies one extern function declaration/literal, setting flags on sm per
// spec.md §4.4 steps 1-4. fn is passed only so GetBestJSDocInfo can be queried uniformly for
// both FuncDecl and FuncLit forms.
func (a *Analyzer) AnalyzeFunc(fn ast.Node, sm *summary.Summary) {
	a.classifyReturn(fn, sm)

	doc := a.util.GetBestJSDocInfo(fn)
	if doc == nil || !doc.HasAnnotations {
		// spec.md §4.4 step 3: unknown-extern default.
		sm.Set(ast.MutatesGlobal | ast.Throws)
		return
	}

	// spec.md §4.4 step 4: exactly one of these applies, checked in order.
	switch {
	case doc.ModifiesThis:
		sm.Set(ast.MutatesThis)
	case doc.ModifiesArgs:
		sm.Set(ast.MutatesArgs)
	case len(doc.ThrowsList) > 0:
		sm.Set(ast.Throws)
	case doc.NoSideEffects:
		// nothing to set.
	default:
		sm.Set(ast.MutatesGlobal)
	}
}

// classifyReturn implements spec.md §4.4 step 2: ESCAPED_RETURN is set unless the declared
// return type is known and disjoint from the root object type.
func (a *Analyzer) classifyReturn(fn ast.Node, sm *summary.Summary) {
	doc := a.util.GetBestJSDocInfo(fn)
	if doc == nil || doc.ReturnType == "" {
		sm.Set(ast.EscapedReturn) // unknown return type: pessimistic.
		return
	}

	meets, ok := a.types.MeetsRootObjectType(doc.ReturnType)
	if !ok {
		sm.Set(ast.EscapedReturn) // unknown type: pessimistic, per spec.md §4.4.
		return
	}
	if meets {
		sm.Set(ast.EscapedReturn)
	}
	// else: primitive, disjoint from root object type — leave ESCAPED_RETURN clear.
}
