package purity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmcabandara/purityflow/ast"
	"github.com/jmcabandara/purityflow/convention"
	"github.com/jmcabandara/purityflow/nodeutil"
	"github.com/jmcabandara/purityflow/parser"
	"github.com/jmcabandara/purityflow/purity"
	"github.com/jmcabandara/purityflow/refmap"
	"github.com/jmcabandara/purityflow/scope"
	"github.com/jmcabandara/purityflow/typeregistry"
)

// run lowers src through the real front-end and drives one whole-program pass over it, exactly
// the way cmd/purityflow's analyze command wires the collaborators together. It asserts there is
// exactly one call expression in src, since every seed scenario below marks a single call.
func run(t *testing.T, src string) (*purity.Pass, *ast.CallExpr) {
	t.Helper()

	p := parser.New()
	source, err := p.Parse(context.Background(), []byte(src), "seed.js")
	require.NoError(t, err)
	externs := ast.NewProgram(ast.Position{})

	collabs := purity.Collaborators{
		References: refmap.Build(source, externs),
		Convention: convention.New(),
		Nodes:      nodeutil.New(nil, nil),
		Scope:      scope.Build(source),
		Types:      typeregistry.Default(),
	}

	pass := purity.New(collabs)
	require.NoError(t, pass.Run(source, externs))
	require.Len(t, pass.Calls, 1, "every seed scenario below marks exactly one call")
	return pass, pass.Calls[0]
}

// TestPass_SeedScenarios reproduces the eight seed scenarios: small literal programs whose single
// marked call must end up with a specific, predictable set of ast.CallFlags once the whole pass
// (seed, extern, body, propagate, annotate) has converged.
func TestPass_SeedScenarios(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		flags ast.CallFlags
	}{
		{
			name:  "pure function call is flagless",
			src:   `function f(){} f();`,
			flags: 0,
		},
		{
			name:  "incrementing a module-scope variable mutates global state",
			src:   `var n = 0; function f(){ n++; } f();`,
			flags: ast.CallMutatesGlobal,
		},
		{
			name:  "a thrown exception marks the call as throwing",
			src:   `function f(){ throw 1; } f();`,
			flags: ast.CallThrows,
		},
		{
			name:  "writing a property on a parameter marks the call as mutating its arguments, fresh literal argument",
			src:   `function f(o){ o.x = 1; } f({});`,
			flags: ast.CallMutatesArgs,
		},
		{
			name:  "writing a property on a parameter marks the call as mutating its arguments, module-scope argument",
			src:   `function f(o){ o.x = 1; } var g = {}; f(g);`,
			flags: ast.CallMutatesArgs,
		},
		{
			name:  "a constructor writing to this never mutates the caller's own receiver",
			src:   `function Ctor(){ this.x = 1; } new Ctor();`,
			flags: 0,
		},
		{
			name:  "a variable aliasing a ternary between two functions picks up the union of both summaries",
			src:   `function f(){} function g(){} var cond = true; var h = cond ? f : g; h();`,
			flags: 0,
		},
		{
			name:  "an ambiguated property name picks up the impure definition bound to any alias",
			src:   `var x = {}; x.m = function(){ global++; }; var y = {}; y.m = function(){}; var z = {}; z.m();`,
			flags: ast.CallMutatesGlobal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, call := run(t, tt.src)
			if tt.flags == 0 {
				require.Zero(t, call.SideEffectFlags, "expected a pure call, got %s", call.SideEffectFlags)
				return
			}
			require.True(t, call.SideEffectFlags.Has(tt.flags), "expected %s to include %s", call.SideEffectFlags, tt.flags)
		})
	}
}

// TestPass_AliasedNameUnionsBothBranches exercises the union mechanism from the "aliasing a
// ternary" seed scenario with an impure branch, so the assertion cannot pass by coincidence: h's
// own summary must pick up g's MUTATES_GLOBAL even though h is never itself assigned directly
// from a function literal.
func TestPass_AliasedNameUnionsBothBranches(t *testing.T) {
	_, call := run(t, `function f(){} function g(){ bad++; } var cond = true; var h = cond ? f : g; h();`)
	require.True(t, call.SideEffectFlags.Has(ast.CallMutatesGlobal))
}

// TestPass_CallApplyRewritesMutatesThisToMutatesArgs covers invoking a this-mutating function
// through .call: MUTATES_THIS rewrites into MUTATES_ARGS on the call site, and the call site never
// reports MUTATES_THIS itself.
func TestPass_CallApplyRewritesMutatesThisToMutatesArgs(t *testing.T) {
	_, call := run(t, `function f(){ this.x = 1; } var o = {}; f.call(o);`)
	require.True(t, call.SideEffectFlags.Has(ast.CallMutatesArgs))
	require.False(t, call.SideEffectFlags.Has(ast.CallMutatesThis))
}

// TestPass_DynamicNameBlacklist covers the dynamic-name blacklist: any reference to the dynamic
// names .call/.apply/.constructor is seeded all-flags-set regardless of its own body. The call
// site's own flags are unaffected here: the resolver rewrites a .call invocation to resolve
// through its receiver (f itself, which does nothing), exercised separately by
// TestPass_CallApplyRewritesMutatesThisToMutatesArgs.
func TestPass_DynamicNameBlacklist(t *testing.T) {
	pass, _ := run(t, `function f(){} f.call();`)
	sm, ok := pass.Store.Lookup(".call")
	require.True(t, ok)
	require.Equal(t, ast.AllFlags, sm.Flags())
}

// TestPass_UnresolvedCalleeIsPessimizedNotFullyAllFlags covers the narrower pessimization applied
// to a callee the resolver cannot unwrap to any definition candidate at all: MUTATES_THIS and
// MUTATES_ARGS are never set, since there is no candidate receiver or argument to blame.
func TestPass_UnresolvedCalleeIsPessimizedNotFullyAllFlags(t *testing.T) {
	_, call := run(t, `(1)();`)
	require.Equal(t, ast.UnresolvedCallFlags, call.SideEffectFlags)
	require.False(t, call.SideEffectFlags.Has(ast.CallMutatesThis))
	require.False(t, call.SideEffectFlags.Has(ast.CallMutatesArgs))
}

// TestPass_RunTwiceIsAProgrammingError covers Pass's single-use invariant.
func TestPass_RunTwiceIsAProgrammingError(t *testing.T) {
	p := parser.New()
	source, err := p.Parse(context.Background(), []byte(`function f(){} f();`), "seed.js")
	require.NoError(t, err)
	externs := ast.NewProgram(ast.Position{})

	pass := purity.New(purity.Collaborators{
		References: refmap.Build(source, externs),
		Convention: convention.New(),
		Nodes:      nodeutil.New(nil, nil),
		Scope:      scope.Build(source),
		Types:      typeregistry.Default(),
	})
	require.NoError(t, pass.Run(source, externs))
	require.Error(t, pass.Run(source, externs))
}
