package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmcabandara/purityflow/ast"
)

func TestFlags_HasAndSet(t *testing.T) {
	var f ast.Flags
	assert.False(t, f.Has(ast.Throws))

	f = f.Set(ast.Throws)
	assert.True(t, f.Has(ast.Throws))
	assert.False(t, f.Has(ast.MutatesGlobal))

	f = f.Set(ast.MutatesGlobal | ast.MutatesArgs)
	assert.True(t, f.Has(ast.Throws|ast.MutatesGlobal|ast.MutatesArgs))
	assert.False(t, f.Has(ast.MutatesThis))
}

func TestFlags_SetIsMonotone(t *testing.T) {
	f := ast.Throws
	before := f
	f = f.Set(ast.Throws)
	assert.Equal(t, before, f, "setting an already-set bit must not change the value")
}

func TestFlags_String(t *testing.T) {
	assert.Equal(t, "pure", ast.Flags(0).String())
	assert.Equal(t, "THROWS", ast.Throws.String())
	assert.Equal(t, "THROWS|MUTATES_GLOBAL", (ast.Throws | ast.MutatesGlobal).String())
	assert.Equal(t, "THROWS|MUTATES_GLOBAL|MUTATES_THIS|MUTATES_ARGS|ESCAPED_RETURN", ast.AllFlags.String())
}

func TestCallFlags_HasSetString(t *testing.T) {
	var cf ast.CallFlags
	assert.Equal(t, "pure", cf.String())

	cf = cf.Set(ast.CallThrows)
	assert.True(t, cf.Has(ast.CallThrows))
	assert.Equal(t, "THROWS", cf.String())

	assert.Equal(t, "MUTATES_GLOBAL|MUTATES_THIS|MUTATES_ARGS|THROWS|RETURN_TAINTED", ast.AllCallFlags.String())
}
