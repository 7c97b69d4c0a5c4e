// Package convention is the concrete collab.CodingConvention: recognition of a configurable
// memoization-cache helper idiom, e.g. `memoize(valueFn)` or `memoize(valueFn, keyFn)`.
package convention

import (
	"github.com/jmcabandara/purityflow/ast"
	"github.com/jmcabandara/purityflow/collab"
)

// Matcher implements collab.CodingConvention for a fixed set of known memoization helper names.
// MemoHelperNames typically includes whatever the host project's own memoization utility is
// called ("memoize", "once", "lazyInit", ...); an empty set disables the idiom entirely.
type Matcher struct {
	MemoHelperNames map[string]bool
}

// New creates a Matcher recognizing the given helper names.
func New(memoHelperNames ...string) *Matcher {
	set := make(map[string]bool, len(memoHelperNames))
	for _, n := range memoHelperNames {
		set[n] = true
	}
	return &Matcher{MemoHelperNames: set}
}

// MatchMemoizationCall recognizes `helperName(valueFn[, keyFn])` where helperName is one of
// MemoHelperNames and valueFn (and keyFn, if present) are function-literal arguments.
func (m *Matcher) MatchMemoizationCall(call *ast.CallExpr) (collab.MemoizationMatch, bool) {
	var result collab.MemoizationMatch

	ident, isIdent := call.Callee.(*ast.Ident)
	if !isIdent || !m.MemoHelperNames[ident.Name] {
		return result, false
	}
	if len(call.Args) == 0 {
		return result, false
	}
	if _, isFn := call.Args[0].(*ast.FuncLit); !isFn {
		return result, false
	}
	result.ValueFn = call.Args[0]
	if len(call.Args) > 1 {
		if _, isFn := call.Args[1].(*ast.FuncLit); isFn {
			result.KeyFn = call.Args[1]
		}
	}
	return result, true
}
