// Package scope is the concrete collab.ScopeProvider over package ast's own node types: a single
// up-front walk of the program builds a table from every declared name's defining *ast.Ident to
// its ast.VarBinding, keyed by the container function it was declared in, so later lookups are
// pure map reads rather than re-walking the tree. The container enclosing any given node (not
// just the statement-level nodes the build walk visits) is found on demand by following Parent()
// chains, since the build walk itself only ever records declarations at block/statement
// granularity and never descends into expression interiors.
package scope

import "github.com/jmcabandara/purityflow/ast"

// Table implements collab.ScopeProvider.
type Table struct {
	// byContainer maps a container scope (nil for the top level) to its declared names.
	byContainer map[ast.Node]map[string]*ast.VarBinding
}

// Build walks program, recording every parameter, catch-clause, and declarator binding it finds,
// and returns a ready-to-query Table.
func Build(program *ast.Program) *Table {
	t := &Table{
		byContainer: make(map[ast.Node]map[string]*ast.VarBinding),
	}
	t.walk(program, nil)
	return t
}

func (t *Table) declare(container ast.Node, name string, isParam, isCatch bool) *ast.VarBinding {
	set, ok := t.byContainer[container]
	if !ok {
		set = make(map[string]*ast.VarBinding)
		t.byContainer[container] = set
	}
	b := &ast.VarBinding{Name: name, IsParam: isParam, IsCatch: isCatch, ContainerFunc: container}
	set[name] = b
	return b
}

func (t *Table) walk(n ast.Node, container ast.Node) {
	if n == nil {
		return
	}

	switch node := n.(type) {
	case *ast.Program:
		for _, s := range node.Body {
			t.walk(s, container)
		}
	case *ast.FuncLit:
		for _, p := range node.Params {
			t.declare(node, p.Name, true, false)
		}
		for _, s := range node.Body {
			t.walk(s, node)
		}
	case *ast.FuncDecl:
		for _, p := range node.Params {
			t.declare(node, p.Name, true, false)
		}
		for _, s := range node.Body {
			t.walk(s, node)
		}
	case *ast.Block:
		for _, s := range node.Stmts {
			t.walk(s, container)
		}
	case *ast.VarDecl:
		for _, d := range node.Declarators {
			t.declare(container, d.Name, false, false)
			t.walk(d.Init, container)
		}
	case *ast.Try:
		for _, s := range node.Block {
			t.walk(s, container)
		}
		if node.CatchParam != nil {
			t.declare(container, node.CatchParam.Name, false, true)
		}
		for _, s := range node.CatchBody {
			t.walk(s, container)
		}
		for _, s := range node.Finally {
			t.walk(s, container)
		}
	case *ast.If:
		t.walk(node.Then, container)
		t.walk(node.Else, container)
	case *ast.While:
		t.walk(node.Body, container)
	case *ast.For:
		t.walk(node.Init, container)
		t.walk(node.Body, container)
	case *ast.ForIn:
		t.walk(node.Body, container)
	case *ast.ForOf:
		t.walk(node.Body, container)
	case *ast.ForAwaitOf:
		t.walk(node.Body, container)
	case *ast.Switch:
		for _, c := range node.Cases {
			for _, s := range c.Body {
				t.walk(s, container)
			}
		}
	case *ast.ClassDecl:
		for _, m := range node.Methods {
			t.walk(m, container)
		}
	case *ast.ExprStmt:
		// expressions carry no new declarations of interest to this table.
	}
}

// GetVar looks up name's binding in the container scope enclosing at, per ordinary lexical
// function-scoping (this language has no block scoping modeled here: var/let/const all bind at
// their nearest enclosing function, matching how the Table's walk declares them).
func (t *Table) GetVar(name string, at ast.Node) (*ast.VarBinding, bool) {
	container := t.GetClosestContainerScope(at)
	if set, ok := t.byContainer[container]; ok {
		if b, ok := set[name]; ok {
			return b, true
		}
	}
	return nil, false
}

func (t *Table) IsParam(v *ast.VarBinding) bool { return v.IsParam }
func (t *Table) IsCatch(v *ast.VarBinding) bool { return v.IsCatch }

// HasSameContainerScope reports whether v was declared in the same container function as at.
func (t *Table) HasSameContainerScope(v *ast.VarBinding, at ast.Node) bool {
	return v.ContainerFunc == t.GetClosestContainerScope(at)
}

// GetClosestContainerScope walks at's Parent() chain up to the nearest enclosing
// *ast.FuncLit/*ast.FuncDecl, or returns nil if at is reached from the top level without passing
// through one. This works uniformly for statement-level nodes and for identifiers buried inside
// an expression (e.g. the `o` in `o.x = 1;`), since every node's Parent() is set at construction
// time regardless of how deep it sits inside a statement.
func (t *Table) GetClosestContainerScope(at ast.Node) ast.Node {
	for n := at; n != nil; n = n.Parent() {
		switch n.(type) {
		case *ast.FuncLit, *ast.FuncDecl:
			return n
		}
	}
	return nil
}
