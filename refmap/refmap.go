// Package refmap is the concrete collab.ReferenceMap over package ast: a single walk of the
// program collects every identifier and property-access reference, grouped by name.
package refmap

import (
	"iter"

	"github.com/jmcabandara/purityflow/ast"
)

// Map implements collab.ReferenceMap.
type Map struct {
	names map[string][]ast.Node
	props map[string][]ast.Node
}

// Build walks every program given (typically the source program and its externs file together,
// so a name referenced in one resolves against definitions in the other) and returns a ready Map.
func Build(programs ...*ast.Program) *Map {
	m := &Map{names: make(map[string][]ast.Node), props: make(map[string][]ast.Node)}
	for _, p := range programs {
		m.walk(p)
	}
	return m
}

func (m *Map) walk(n ast.Node) {
	if n == nil {
		return
	}
	switch node := n.(type) {
	case *ast.Program:
		m.walkAll(node.Body)
	case *ast.Block:
		m.walkAll(node.Stmts)
	case *ast.ExprStmt:
		m.walk(node.Expr)
	case *ast.Ident:
		if node.Name == "" {
			// The unnamed placeholder the parser emits for a destructuring parameter.
			return
		}
		m.names[node.Name] = append(m.names[node.Name], node)
	case *ast.PropAccess:
		m.props[node.Property] = append(m.props[node.Property], node)
		m.walk(node.Object)
	case *ast.CallExpr:
		m.walk(node.Callee)
		m.walkAll(node.Args)
	case *ast.FuncLit:
		for _, p := range node.Params {
			m.walk(p)
		}
		m.walkAll(node.Body)
	case *ast.FuncDecl:
		m.names[node.Name] = append(m.names[node.Name], node)
		for _, p := range node.Params {
			m.walk(p)
		}
		m.walkAll(node.Body)
	case *ast.Assign:
		m.walk(node.LHS)
		m.walk(node.RHS)
	case *ast.CompoundAssign:
		m.walk(node.LHS)
		m.walk(node.RHS)
	case *ast.Destructuring:
		m.walkAll(node.Targets)
		m.walk(node.RHS)
	case *ast.Unary:
		m.walk(node.Operand)
	case *ast.Binary:
		m.walk(node.Left)
		m.walk(node.Right)
	case *ast.LogicalOr:
		m.walk(node.Left)
		m.walk(node.Right)
	case *ast.Conditional:
		m.walk(node.Test)
		m.walk(node.Then)
		m.walk(node.Else)
	case *ast.ArrayLiteral:
		m.walkAll(node.Elements)
	case *ast.ObjectLiteral:
		for _, p := range node.Properties {
			m.walk(p.Value)
		}
	case *ast.ClassDecl:
		m.walk(node.Extends)
		for _, meth := range node.Methods {
			m.walk(meth)
		}
	case *ast.Return:
		m.walk(node.Value)
	case *ast.Throw:
		m.walk(node.Value)
	case *ast.Yield:
		m.walk(node.Value)
	case *ast.Await:
		m.walk(node.Value)
	case *ast.Spread:
		m.walk(node.Value)
	case *ast.Rest:
		m.walk(node.Value)
	case *ast.VarDecl:
		for _, d := range node.Declarators {
			// A declarator's bound name has no Ident node of its own (Name is a bare string), so
			// the declarator node itself stands in as its own name's reference, the same way a
			// FuncDecl stands in for its own name above.
			m.names[d.Name] = append(m.names[d.Name], d)
			m.walk(d.Init)
		}
	case *ast.If:
		m.walk(node.Test)
		m.walk(node.Then)
		m.walk(node.Else)
	case *ast.While:
		m.walk(node.Test)
		m.walk(node.Body)
	case *ast.For:
		m.walk(node.Init)
		m.walk(node.Test)
		m.walk(node.Update)
		m.walk(node.Body)
	case *ast.Switch:
		m.walk(node.Discriminant)
		for _, c := range node.Cases {
			m.walk(c.Test)
			m.walkAll(c.Body)
		}
	case *ast.ForIn:
		m.walk(node.LHS)
		m.walk(node.RHS)
		m.walk(node.Body)
	case *ast.ForOf:
		m.walk(node.LHS)
		m.walk(node.RHS)
		m.walk(node.Body)
	case *ast.ForAwaitOf:
		m.walk(node.LHS)
		m.walk(node.RHS)
		m.walk(node.Body)
	case *ast.TemplateLiteral:
		m.walkAll(node.Expressions)
	case *ast.Try:
		m.walkAll(node.Block)
		m.walkAll(node.CatchBody)
		m.walkAll(node.Finally)
	}
}

func (m *Map) walkAll(nodes []ast.Node) {
	for _, n := range nodes {
		m.walk(n)
	}
}

// NameReferences implements collab.ReferenceMap.
func (m *Map) NameReferences() iter.Seq2[string, []ast.Node] {
	return func(yield func(string, []ast.Node) bool) {
		for name, nodes := range m.names {
			if !yield(name, nodes) {
				return
			}
		}
	}
}

// PropReferences implements collab.ReferenceMap.
func (m *Map) PropReferences() iter.Seq2[string, []ast.Node] {
	return func(yield func(string, []ast.Node) bool) {
		for name, nodes := range m.props {
			if !yield(name, nodes) {
				return
			}
		}
	}
}
