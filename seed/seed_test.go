package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmcabandara/purityflow/ast"
	"github.com/jmcabandara/purityflow/callgraph"
	"github.com/jmcabandara/purityflow/classify"
	"github.com/jmcabandara/purityflow/nodeutil"
	"github.com/jmcabandara/purityflow/parser"
	"github.com/jmcabandara/purityflow/refmap"
	"github.com/jmcabandara/purityflow/resolve"
	"github.com/jmcabandara/purityflow/seed"
	"github.com/jmcabandara/purityflow/summary"
)

// newSeeder parses src and wires a Seeder over the real refmap/nodeutil/resolve/classify
// collaborators, mirroring how purity.Pass assembles one.
func newSeeder(t *testing.T, src string) (*seed.Seeder, *summary.Store) {
	t.Helper()
	p := parser.New()
	source, err := p.Parse(context.Background(), []byte(src), "seed.js")
	require.NoError(t, err)

	store := summary.NewStore(callgraph.NewGraph())
	util := nodeutil.New(nil, nil)
	resolver := resolve.New(util, nil)
	refs := refmap.Build(source)
	return seed.New(store, refs, util, resolver, classify.IsRValue), store
}

func TestSeeder_FunctionDeclarationAssociatesItsOwnName(t *testing.T) {
	s, store := newSeeder(t, `function f(){}`)
	require.NoError(t, s.Run())

	sm, ok := store.Lookup("f")
	require.True(t, ok)
	require.Zero(t, sm.Flags())
}

func TestSeeder_DynamicNameIsPessimizedOnCreation(t *testing.T) {
	s, store := newSeeder(t, `function f(){} f.call();`)
	require.NoError(t, s.Run())

	sm, ok := store.Lookup(".call")
	require.True(t, ok)
	require.Equal(t, ast.AllFlags, sm.Flags())
}

func TestSeeder_PropertyWrittenFromFunctionLiteralIsAssociated(t *testing.T) {
	s, store := newSeeder(t, `var x = {}; x.m = function(){};`)
	require.NoError(t, s.Run())

	_, ok := store.Lookup(".m")
	require.True(t, ok)
}

func TestSeeder_ReassignedNameWithNoResolvableRHSIsPessimized(t *testing.T) {
	// h is assigned from a call result, a form Resolve has no case for (it is not itself a
	// callee-shaped expression): seeding must fall back to the conservative "set all flags" rule
	// rather than silently leaving h's summary untouched.
	s, store := newSeeder(t, `function make(){ return {}; } var h = make();`)
	require.NoError(t, s.Run())

	sm, ok := store.Lookup("h")
	require.True(t, ok)
	require.Equal(t, ast.AllFlags, sm.Flags())
}

func TestSeeder_TernaryAliasAssociatesBothBranchesFunctions(t *testing.T) {
	s, store := newSeeder(t, `function f(){} function g(){} var cond = true; var h = cond ? f : g;`)
	require.NoError(t, s.Run())

	sm, ok := store.Lookup("h")
	require.True(t, ok)
	// Not pessimized: both branches resolved to a real function declaration this seeding pass
	// could find and associate, so h's summary stays at its natural (currently zero) flags
	// rather than falling back to AllFlags.
	require.Zero(t, sm.Flags())
}

func TestSeeder_UninitializedDeclaratorIsPessimized(t *testing.T) {
	s, store := newSeeder(t, `var h;`)
	require.NoError(t, s.Run())

	sm, ok := store.Lookup("h")
	require.True(t, ok)
	require.Equal(t, ast.AllFlags, sm.Flags())
}
