package summary_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcabandara/purityflow/ast"
	"github.com/jmcabandara/purityflow/callgraph"
	"github.com/jmcabandara/purityflow/summary"
)

func TestStore_ExportImportRoundTrip(t *testing.T) {
	src := summary.NewStore(callgraph.NewGraph())
	foo, err := src.GetOrCreate("foo")
	require.NoError(t, err)
	foo.Set(ast.Throws | ast.MutatesGlobal)
	bar, err := src.GetOrCreate("bar")
	require.NoError(t, err)
	bar.Set(ast.MutatesArgs)

	var buf bytes.Buffer
	require.NoError(t, src.Export(&buf))

	dst := summary.NewStore(callgraph.NewGraph())
	require.NoError(t, dst.Import(&buf))

	gotFoo, ok := dst.Lookup("foo")
	require.True(t, ok)
	assert.Equal(t, ast.Throws|ast.MutatesGlobal, gotFoo.Flags())

	gotBar, ok := dst.Lookup("bar")
	require.True(t, ok)
	assert.Equal(t, ast.MutatesArgs, gotBar.Flags())
}

func TestStore_ImportMergesRatherThanOverwrites(t *testing.T) {
	src := summary.NewStore(callgraph.NewGraph())
	s, err := src.GetOrCreate("shared")
	require.NoError(t, err)
	s.Set(ast.Throws)

	var buf bytes.Buffer
	require.NoError(t, src.Export(&buf))

	dst := summary.NewStore(callgraph.NewGraph())
	existing, err := dst.GetOrCreate("shared")
	require.NoError(t, err)
	existing.Set(ast.MutatesGlobal)

	require.NoError(t, dst.Import(&buf))

	assert.Equal(t, ast.Throws|ast.MutatesGlobal, existing.Flags(), "import must OR cached bits in, never clear existing ones")
}
