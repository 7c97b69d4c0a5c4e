package nodeutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmcabandara/purityflow/ast"
	"github.com/jmcabandara/purityflow/nodeutil"
)

func TestUtils_EvaluatesToLocalValue(t *testing.T) {
	u := nodeutil.New(nil, nil)

	assert.True(t, u.EvaluatesToLocalValue(ast.NewLiteral(ast.Position{}, "1", ast.LiteralPrimitive)))
	assert.True(t, u.EvaluatesToLocalValue(ast.NewArrayLiteral(ast.Position{})))
	assert.True(t, u.EvaluatesToLocalValue(ast.NewObjectLiteral(ast.Position{})))
	assert.False(t, u.EvaluatesToLocalValue(ast.NewIdent(ast.Position{}, "x")), "a bare reference might already be aliased")
}

func TestUtils_AllArgsUnescapedLocal(t *testing.T) {
	u := nodeutil.New(nil, nil)

	allLocal := ast.NewCall(ast.Position{}, ast.InvokeCall, ast.NewIdent(ast.Position{}, "f"),
		ast.NewLiteral(ast.Position{}, "1", ast.LiteralPrimitive), ast.NewArrayLiteral(ast.Position{}))
	assert.True(t, u.AllArgsUnescapedLocal(allLocal))

	oneEscapes := ast.NewCall(ast.Position{}, ast.InvokeCall, ast.NewIdent(ast.Position{}, "f"),
		ast.NewLiteral(ast.Position{}, "1", ast.LiteralPrimitive), ast.NewIdent(ast.Position{}, "shared"))
	assert.False(t, u.AllArgsUnescapedLocal(oneEscapes))
}

func TestUtils_IteratesImpureIterable(t *testing.T) {
	u := nodeutil.New(nil, nil)

	arrLit := ast.NewArrayLiteral(ast.Position{})
	forOf := ast.NewForOf(ast.Position{}, ast.NewIdent(ast.Position{}, "x"), arrLit, ast.NewBlock(ast.Position{}))
	assert.False(t, u.IteratesImpureIterable(forOf), "iterating a literal array is provably pure")

	ident := ast.NewIdent(ast.Position{}, "items")
	forOfVar := ast.NewForOf(ast.Position{}, ast.NewIdent(ast.Position{}, "x"), ident, ast.NewBlock(ast.Position{}))
	assert.True(t, u.IteratesImpureIterable(forOfVar), "iterating a variable might run user-defined iterator code")
}

func TestUtils_IsGetDistinguishesPropertyReadFromCall(t *testing.T) {
	u := nodeutil.New(nil, nil)

	obj := ast.NewIdent(ast.Position{}, "obj")
	read := ast.NewPropAccess(ast.Position{}, obj, "length")
	ast.NewBlock(ast.Position{}, read) // links read's parent to a non-call node
	assert.True(t, u.IsGet(read))

	method := ast.NewPropAccess(ast.Position{}, obj, "toString")
	ast.NewCall(ast.Position{}, ast.InvokeCall, method)
	assert.False(t, u.IsGet(method), "a property access used as a callee is not a plain read")
}
