package purity

import "github.com/jmcabandara/purityflow/ast"

// discoverFunctions walks every node reachable from root, unconditionally (unlike package body's
// stop-boundary walk), collecting every function definition node — top-level, nested, or a class
// method — so the driver can hand each one to the Body Analyzer as its own unit.
func discoverFunctions(root ast.Node) []ast.Node {
	var out []ast.Node
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		if n == nil {
			return
		}
		switch node := n.(type) {
		case *ast.Program:
			walkAll(node.Body, walk)
		case *ast.Block:
			walkAll(node.Stmts, walk)
		case *ast.ExprStmt:
			walk(node.Expr)
		case *ast.CallExpr:
			walk(node.Callee)
			walkAll(node.Args, walk)
		case *ast.FuncLit:
			out = append(out, node)
			walkAll(bodyOf(node.Params), walk)
			walkAll(node.Body, walk)
		case *ast.FuncDecl:
			out = append(out, node)
			walkAll(bodyOf(node.Params), walk)
			walkAll(node.Body, walk)
		case *ast.Assign:
			walk(node.LHS)
			walk(node.RHS)
		case *ast.CompoundAssign:
			walk(node.LHS)
			walk(node.RHS)
		case *ast.Destructuring:
			walkAll(node.Targets, walk)
			walk(node.RHS)
		case *ast.Unary:
			walk(node.Operand)
		case *ast.Binary:
			walk(node.Left)
			walk(node.Right)
		case *ast.LogicalOr:
			walk(node.Left)
			walk(node.Right)
		case *ast.Conditional:
			walk(node.Test)
			walk(node.Then)
			walk(node.Else)
		case *ast.ArrayLiteral:
			walkAll(node.Elements, walk)
		case *ast.ObjectLiteral:
			for _, p := range node.Properties {
				walk(p.Value)
			}
		case *ast.ClassDecl:
			walk(node.Extends)
			for _, m := range node.Methods {
				walk(m)
			}
		case *ast.Return:
			walk(node.Value)
		case *ast.Throw:
			walk(node.Value)
		case *ast.Yield:
			walk(node.Value)
		case *ast.Await:
			walk(node.Value)
		case *ast.Spread:
			walk(node.Value)
		case *ast.Rest:
			walk(node.Value)
		case *ast.VarDecl:
			for _, d := range node.Declarators {
				walk(d.Init)
			}
		case *ast.If:
			walk(node.Test)
			walk(node.Then)
			walk(node.Else)
		case *ast.While:
			walk(node.Test)
			walk(node.Body)
		case *ast.For:
			walk(node.Init)
			walk(node.Test)
			walk(node.Update)
			walk(node.Body)
		case *ast.Switch:
			walk(node.Discriminant)
			for _, c := range node.Cases {
				walk(c.Test)
				walkAll(c.Body, walk)
			}
		case *ast.ForIn:
			walk(node.LHS)
			walk(node.RHS)
			walk(node.Body)
		case *ast.ForOf:
			walk(node.LHS)
			walk(node.RHS)
			walk(node.Body)
		case *ast.ForAwaitOf:
			walk(node.LHS)
			walk(node.RHS)
			walk(node.Body)
		case *ast.TemplateLiteral:
			walkAll(node.Expressions, walk)
		case *ast.PropAccess:
			walk(node.Object)
		case *ast.Try:
			walkAll(node.Block, walk)
			walkAll(node.CatchBody, walk)
			walkAll(node.Finally, walk)
		}
	}
	walk(root)
	return out
}

func walkAll(nodes []ast.Node, walk func(ast.Node)) {
	for _, n := range nodes {
		walk(n)
	}
}

func bodyOf(params []*ast.Ident) []ast.Node {
	out := make([]ast.Node, len(params))
	for i, p := range params {
		out[i] = p
	}
	return out
}
