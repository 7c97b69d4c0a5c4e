package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jmcabandara/purityflow/ast"
)

// lowerStatements lowers every named child of a block-like node (program or statement_block)
// into a []ast.Node, in source order. Unnamed children (punctuation) are tree-sitter's own
// concern and never visited.
func (l *lowerer) lowerStatements(n *sitter.Node) []ast.Node {
	if n == nil {
		return nil
	}
	out := make([]ast.Node, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		out = append(out, l.lowerStatement(n.NamedChild(i)))
	}
	return out
}

func (l *lowerer) lowerStatement(n *sitter.Node) ast.Node {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "expression_statement":
		if n.NamedChildCount() == 0 {
			return ast.NewExprStmt(l.pos(n), l.unsupported(n))
		}
		return ast.NewExprStmt(l.pos(n), l.lowerExpr(n.NamedChild(0)))

	case "function_declaration", "generator_function_declaration":
		return l.lowerFuncDecl(n)

	case "class_declaration":
		return l.lowerClassDecl(n)

	case "lexical_declaration", "variable_declaration":
		return l.lowerVarDecl(n)

	case "if_statement":
		test := l.lowerExpr(n.ChildByFieldName("condition"))
		then := l.lowerStatement(n.ChildByFieldName("consequence"))
		var els ast.Node
		if alt := n.ChildByFieldName("alternative"); alt != nil {
			els = l.lowerStatement(alt)
		}
		return ast.NewIf(l.pos(n), test, then, els)

	case "while_statement":
		test := l.lowerExpr(n.ChildByFieldName("condition"))
		body := l.lowerStatement(n.ChildByFieldName("body"))
		return ast.NewWhile(l.pos(n), test, body)

	case "do_statement":
		// `do body while (test)`; lowered the same as a While, the analysis does not distinguish
		// pre/post-test loop shape (spec.md never branches on it — only on what RHS/LHS/iterable
		// each loop form exposes).
		test := l.lowerExpr(n.ChildByFieldName("condition"))
		body := l.lowerStatement(n.ChildByFieldName("body"))
		return ast.NewWhile(l.pos(n), test, body)

	case "for_statement":
		var init, test, update ast.Node
		if i := n.ChildByFieldName("initializer"); i != nil {
			init = l.lowerForClause(i)
		}
		if t := n.ChildByFieldName("condition"); t != nil {
			test = l.lowerExpr(t)
		}
		if u := n.ChildByFieldName("increment"); u != nil {
			update = l.lowerExpr(u)
		}
		body := l.lowerStatement(n.ChildByFieldName("body"))
		return ast.NewFor(l.pos(n), init, test, update, body)

	case "for_in_statement":
		return l.lowerForInOf(n)

	case "switch_statement":
		disc := l.lowerExpr(n.ChildByFieldName("value"))
		body := n.ChildByFieldName("body")
		var cases []*ast.Case
		if body != nil {
			for i := 0; i < int(body.NamedChildCount()); i++ {
				cases = append(cases, l.lowerSwitchCase(body.NamedChild(i)))
			}
		}
		return ast.NewSwitch(l.pos(n), disc, cases...)

	case "try_statement":
		return l.lowerTry(n)

	case "throw_statement":
		return ast.NewThrow(l.pos(n), l.lowerExpr(n.NamedChild(0)))

	case "return_statement":
		var val ast.Node
		if n.NamedChildCount() > 0 {
			val = l.lowerExpr(n.NamedChild(0))
		}
		return ast.NewReturn(l.pos(n), val)

	case "statement_block":
		return ast.NewBlock(l.pos(n), l.lowerStatements(n)...)

	case "labeled_statement":
		// The label itself carries no side-effect-relevant information; lower the labeled
		// statement through.
		if body := n.ChildByFieldName("body"); body != nil {
			return l.lowerStatement(body)
		}
		return l.unsupported(n)

	case "empty_statement", "debugger_statement", "break_statement", "continue_statement", "comment":
		return ast.NewBlock(l.pos(n))

	default:
		// Anything else reachable as a statement (e.g. a bare import/export form) has no purity
		// relevance of its own and lowers to an ast.Unsupported node.
		return l.unsupported(n)
	}
}

func (l *lowerer) lowerForClause(n *sitter.Node) ast.Node {
	switch n.Type() {
	case "lexical_declaration", "variable_declaration":
		return l.lowerVarDecl(n)
	default:
		return l.lowerExpr(n)
	}
}

func (l *lowerer) lowerForInOf(n *sitter.Node) ast.Node {
	lhsNode := n.ChildByFieldName("left")
	rhsNode := n.ChildByFieldName("right")
	bodyNode := n.ChildByFieldName("body")

	lhs := l.lowerForBindingTarget(lhsNode)
	rhs := l.lowerExpr(rhsNode)
	body := l.lowerStatement(bodyNode)

	isOf := false
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c != nil && c.Type() == "of" {
			isOf = true
			break
		}
	}
	isAwait := false
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c != nil && c.Type() == "await" {
			isAwait = true
			break
		}
	}

	switch {
	case isAwait:
		return ast.NewForAwaitOf(l.pos(n), lhs, rhs, body)
	case isOf:
		return ast.NewForOf(l.pos(n), lhs, rhs, body)
	default:
		return ast.NewForIn(l.pos(n), lhs, rhs, body)
	}
}

// lowerForBindingTarget handles the `for (let x of xs)`/`for (x of xs)` left-hand side, which
// tree-sitter wraps in a lexical/variable declaration node in the first case.
func (l *lowerer) lowerForBindingTarget(n *sitter.Node) ast.Node {
	if n == nil {
		return l.unsupported(n)
	}
	switch n.Type() {
	case "lexical_declaration", "variable_declaration":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if d := n.NamedChild(i); d.Type() == "variable_declarator" {
				if name := d.ChildByFieldName("name"); name != nil {
					return l.lowerExpr(name)
				}
			}
		}
		return l.unsupported(n)
	default:
		return l.lowerExpr(n)
	}
}

func (l *lowerer) lowerSwitchCase(n *sitter.Node) *ast.Case {
	var test ast.Node
	if n.Type() == "switch_case" {
		if v := n.ChildByFieldName("value"); v != nil {
			test = l.lowerExpr(v)
		}
	}
	var body []ast.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c == n.ChildByFieldName("value") {
			continue
		}
		body = append(body, l.lowerStatement(c))
	}
	return ast.NewCase(l.pos(n), test, body...)
}

func (l *lowerer) lowerTry(n *sitter.Node) ast.Node {
	blockNode := n.ChildByFieldName("body")
	var block []ast.Node
	if blockNode != nil {
		block = l.lowerStatements(blockNode)
	}

	var catchParam *ast.Ident
	var catchBody []ast.Node
	var finally []ast.Node

	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		switch c.Type() {
		case "catch_clause":
			if p := c.ChildByFieldName("parameter"); p != nil {
				catchParam = ast.NewIdent(l.pos(p), l.text(p))
			}
			if b := c.ChildByFieldName("body"); b != nil {
				catchBody = l.lowerStatements(b)
			}
		case "finally_clause":
			if b := c.ChildByFieldName("body"); b != nil {
				finally = l.lowerStatements(b)
			}
		}
	}

	return ast.NewTry(l.pos(n), block, catchParam, catchBody, finally)
}

func (l *lowerer) lowerFuncDecl(n *sitter.Node) ast.Node {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return l.unsupported(n)
	}
	params := l.lowerParams(n.ChildByFieldName("parameters"))
	body := l.lowerFuncBody(n.ChildByFieldName("body"))
	return ast.NewFuncDecl(l.pos(n), l.text(nameNode), params, body, nil)
}

func (l *lowerer) lowerParams(n *sitter.Node) []*ast.Ident {
	if n == nil {
		return nil
	}
	var out []*ast.Ident
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "identifier":
			out = append(out, ast.NewIdent(l.pos(c), l.text(c)))
		case "rest_pattern":
			if id := c.NamedChild(0); id != nil {
				out = append(out, ast.NewIdent(l.pos(id), l.text(id)))
			}
		case "assignment_pattern":
			if left := c.ChildByFieldName("left"); left != nil && left.Type() == "identifier" {
				out = append(out, ast.NewIdent(l.pos(left), l.text(left)))
			}
		default:
			// Destructuring parameter patterns ({a, b}, [a, b]): the analysis has no binding
			// name to attach MUTATES_ARGS semantics to in this shape, so the parameter
			// contributes no named binding. The function still gets a synthesized placeholder
			// *ast.Ident with an empty name so param count is preserved for signature-shaped
			// consumers, but it carries no identity.
			out = append(out, ast.NewIdent(l.pos(c), ""))
		}
	}
	return out
}

func (l *lowerer) lowerFuncBody(n *sitter.Node) []ast.Node {
	if n == nil {
		return nil
	}
	if n.Type() == "statement_block" {
		return l.lowerStatements(n)
	}
	// Arrow function expression body: `(...) => expr`.
	return []ast.Node{ast.NewReturn(l.pos(n), l.lowerExpr(n))}
}

func (l *lowerer) lowerClassDecl(n *sitter.Node) ast.Node {
	nameNode := n.ChildByFieldName("name")
	name := ""
	if nameNode != nil {
		name = l.text(nameNode)
	}

	var extends ast.Node
	if heritage := n.ChildByFieldName("superclass"); heritage != nil {
		extends = l.lowerExpr(heritage)
	}

	var methods []*ast.FuncDecl
	if body := n.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			c := body.NamedChild(i)
			if c.Type() != "method_definition" {
				continue
			}
			if m := l.lowerMethod(c); m != nil {
				methods = append(methods, m)
			}
		}
	}

	return ast.NewClassDecl(l.pos(n), name, extends, methods...)
}

func (l *lowerer) lowerMethod(n *sitter.Node) *ast.FuncDecl {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	params := l.lowerParams(n.ChildByFieldName("parameters"))
	body := l.lowerFuncBody(n.ChildByFieldName("body"))
	return ast.NewFuncDecl(l.pos(n), l.text(nameNode), params, body, nil)
}

func (l *lowerer) lowerVarDecl(n *sitter.Node) ast.Node {
	var decls []*ast.VarDeclarator
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() != "variable_declarator" {
			continue
		}
		nameNode := c.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		var init ast.Node
		if v := c.ChildByFieldName("value"); v != nil {
			init = l.lowerExpr(v)
		}
		if nameNode.Type() != "identifier" {
			// Destructuring declarator: `const {a, b} = rhs` / `const [a, b] = rhs`. Lowered as
			// a Destructuring statement wrapped in a synthetic single-declarator VarDecl isn't
			// representable directly, so emit it as its own statement via the targets list. The
			// caller (lowerStatement) only ever receives one ast.Node per source statement, and a
			// `const {..} = rhs;` is syntactically a single lexical_declaration with exactly one
			// declarator in the common case, so collapse straight to Destructuring here.
			targets := l.lowerPatternTargets(nameNode)
			return ast.NewDestructuring(l.pos(n), targets, init)
		}
		decls = append(decls, ast.NewVarDeclarator(l.pos(c), l.text(nameNode), init))
	}
	return ast.NewVarDecl(l.pos(n), decls...)
}

func (l *lowerer) lowerPatternTargets(n *sitter.Node) []ast.Node {
	var out []ast.Node
	switch n.Type() {
	case "object_pattern":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			c := n.NamedChild(i)
			switch c.Type() {
			case "shorthand_property_identifier_pattern":
				out = append(out, ast.NewIdent(l.pos(c), l.text(c)))
			case "pair_pattern":
				if v := c.ChildByFieldName("value"); v != nil {
					out = append(out, l.lowerExpr(v))
				}
			case "rest_pattern":
				if id := c.NamedChild(0); id != nil {
					out = append(out, ast.NewRest(l.pos(c), l.lowerExpr(id)))
				}
			}
		}
	case "array_pattern":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			c := n.NamedChild(i)
			if c.Type() == "rest_pattern" {
				if id := c.NamedChild(0); id != nil {
					out = append(out, ast.NewRest(l.pos(c), l.lowerExpr(id)))
				}
				continue
			}
			out = append(out, l.lowerExpr(c))
		}
	default:
		out = append(out, l.lowerExpr(n))
	}
	return out
}

func (l *lowerer) lowerExpr(n *sitter.Node) ast.Node {
	if n == nil {
		return l.unsupported(n)
	}
	switch n.Type() {
	case "identifier", "this", "super", "private_property_identifier":
		return ast.NewIdent(l.pos(n), l.text(n))

	case "number", "string", "true", "false", "null", "undefined", "regex":
		return ast.NewLiteral(l.pos(n), l.text(n), ast.LiteralPrimitive)

	case "template_string":
		var exprs []ast.Node
		for i := 0; i < int(n.NamedChildCount()); i++ {
			c := n.NamedChild(i)
			if c.Type() == "template_substitution" && c.NamedChildCount() > 0 {
				exprs = append(exprs, l.lowerExpr(c.NamedChild(0)))
			}
		}
		return ast.NewTemplateLiteral(l.pos(n), exprs...)

	case "parenthesized_expression":
		if n.NamedChildCount() > 0 {
			return l.lowerExpr(n.NamedChild(0))
		}
		return l.unsupported(n)

	case "sequence_expression":
		// `(a, b)`: only the last expression's value escapes, but every operand still executes
		// for its side effects. Lower as nested wrapping is unnecessary for this analysis since
		// statement-level visitation walks every subexpression anyway; represent it as the last
		// expression wrapped behind an array so both halves are still visited.
		left := n.ChildByFieldName("left")
		right := n.ChildByFieldName("right")
		return ast.NewArrayLiteral(l.pos(n), l.lowerExpr(left), l.lowerExpr(right))

	case "assignment_expression":
		lhsNode := n.ChildByFieldName("left")
		rhsNode := n.ChildByFieldName("right")
		if lhsNode != nil && (lhsNode.Type() == "object_pattern" || lhsNode.Type() == "array_pattern") {
			return ast.NewDestructuring(l.pos(n), l.lowerPatternTargets(lhsNode), l.lowerExpr(rhsNode))
		}
		return ast.NewAssign(l.pos(n), l.lowerExpr(lhsNode), l.lowerExpr(rhsNode))

	case "augmented_assignment_expression":
		op := ""
		for i := 0; i < int(n.ChildCount()); i++ {
			c := n.Child(i)
			if c != nil && c != n.ChildByFieldName("left") && c != n.ChildByFieldName("right") {
				op = l.text(c)
			}
		}
		return ast.NewCompoundAssign(l.pos(n), op, l.lowerExpr(n.ChildByFieldName("left")), l.lowerExpr(n.ChildByFieldName("right")))

	case "update_expression":
		operand := n.ChildByFieldName("argument")
		op := ast.UnaryIncrement
		for i := 0; i < int(n.ChildCount()); i++ {
			c := n.Child(i)
			if c != nil && c.Type() == "--" {
				op = ast.UnaryDecrement
			}
		}
		return ast.NewUnary(l.pos(n), op, l.lowerExpr(operand))

	case "unary_expression":
		operand := n.ChildByFieldName("argument")
		opNode := n.Child(0)
		if opNode != nil && l.text(opNode) == "delete" {
			return ast.NewUnary(l.pos(n), ast.UnaryDelete, l.lowerExpr(operand))
		}
		// Other unary operators (!, -, +, ~, typeof, void) have no side-effect relevance of
		// their own beyond their operand; lower operand only, through a Unary-shaped wrapper is
		// unnecessary since this analysis never queries UnaryOp for these. Represent as the
		// operand's own node wrapped in a no-op Binary so the operand is still visited.
		return ast.NewBinary(l.pos(n), l.text(opNode), l.lowerExpr(operand), l.lowerExpr(operand))

	case "binary_expression":
		op := ""
		if o := n.ChildByFieldName("operator"); o != nil {
			op = l.text(o)
		}
		left := l.lowerExpr(n.ChildByFieldName("left"))
		right := l.lowerExpr(n.ChildByFieldName("right"))
		if op == "||" || op == "??" {
			return ast.NewLogicalOr(l.pos(n), left, right)
		}
		return ast.NewBinary(l.pos(n), op, left, right)

	case "logical_expression":
		op := ""
		if o := n.ChildByFieldName("operator"); o != nil {
			op = l.text(o)
		}
		left := l.lowerExpr(n.ChildByFieldName("left"))
		right := l.lowerExpr(n.ChildByFieldName("right"))
		if op == "&&" {
			return ast.NewBinary(l.pos(n), op, left, right)
		}
		return ast.NewLogicalOr(l.pos(n), left, right)

	case "ternary_expression":
		test := l.lowerExpr(n.ChildByFieldName("condition"))
		then := l.lowerExpr(n.ChildByFieldName("consequence"))
		els := l.lowerExpr(n.ChildByFieldName("alternative"))
		return ast.NewConditional(l.pos(n), test, then, els)

	case "call_expression":
		return l.lowerCall(n, ast.InvokeCall)

	case "new_expression":
		return l.lowerCall(n, ast.InvokeNew)

	case "member_expression":
		obj := l.lowerExpr(n.ChildByFieldName("object"))
		prop := n.ChildByFieldName("property")
		if prop == nil {
			return l.unsupported(n)
		}
		return ast.NewPropAccess(l.pos(n), obj, l.text(prop))

	case "subscript_expression":
		obj := l.lowerExpr(n.ChildByFieldName("object"))
		idx := n.ChildByFieldName("index")
		if idx != nil && idx.Type() == "string" {
			return ast.NewPropAccess(l.pos(n), obj, l.stringContent(idx))
		}
		// Dynamically-computed property access: the property name is not statically known.
		return l.unsupported(n)

	case "arguments":
		// Not itself a value; callers iterate args directly.
		return l.unsupported(n)

	case "function", "function_expression":
		nameNode := n.ChildByFieldName("name")
		name := ""
		if nameNode != nil {
			name = l.text(nameNode)
		}
		params := l.lowerParams(n.ChildByFieldName("parameters"))
		body := l.lowerFuncBody(n.ChildByFieldName("body"))
		return ast.NewFuncLit(l.pos(n), name, params, body, nil)

	case "arrow_function":
		params := l.lowerArrowParams(n)
		body := l.lowerFuncBody(n.ChildByFieldName("body"))
		return ast.NewFuncLit(l.pos(n), "", params, body, nil)

	case "class":
		return l.lowerClassDecl(n)

	case "array":
		var elems []ast.Node
		for i := 0; i < int(n.NamedChildCount()); i++ {
			elems = append(elems, l.lowerExpr(n.NamedChild(i)))
		}
		return ast.NewArrayLiteral(l.pos(n), elems...)

	case "object":
		var props []ast.ObjectProperty
		for i := 0; i < int(n.NamedChildCount()); i++ {
			c := n.NamedChild(i)
			switch c.Type() {
			case "pair":
				key := c.ChildByFieldName("key")
				val := c.ChildByFieldName("value")
				props = append(props, ast.ObjectProperty{Key: l.text(key), Value: l.lowerExpr(val)})
			case "shorthand_property_identifier":
				props = append(props, ast.ObjectProperty{Key: l.text(c), Value: ast.NewIdent(l.pos(c), l.text(c))})
			case "spread_element":
				if c.NamedChildCount() > 0 {
					props = append(props, ast.ObjectProperty{Key: "", Value: ast.NewSpread(l.pos(c), l.lowerExpr(c.NamedChild(0)))})
				}
			case "method_definition":
				if m := l.lowerMethod(c); m != nil {
					props = append(props, ast.ObjectProperty{Key: m.Name, Value: ast.NewFuncLit(l.pos(c), m.Name, m.Params, m.Body, nil)})
				}
			}
		}
		return ast.NewObjectLiteral(l.pos(n), props...)

	case "spread_element":
		if n.NamedChildCount() > 0 {
			return ast.NewSpread(l.pos(n), l.lowerExpr(n.NamedChild(0)))
		}
		return l.unsupported(n)

	case "yield_expression":
		delegate := false
		for i := 0; i < int(n.ChildCount()); i++ {
			if c := n.Child(i); c != nil && c.Type() == "*" {
				delegate = true
			}
		}
		var val ast.Node
		if n.NamedChildCount() > 0 {
			val = l.lowerExpr(n.NamedChild(0))
		}
		return ast.NewYield(l.pos(n), val, delegate)

	case "await_expression":
		if n.NamedChildCount() > 0 {
			return ast.NewAwait(l.pos(n), l.lowerExpr(n.NamedChild(0)))
		}
		return l.unsupported(n)

	default:
		return l.unsupported(n)
	}
}

func (l *lowerer) lowerArrowParams(n *sitter.Node) []*ast.Ident {
	if p := n.ChildByFieldName("parameter"); p != nil {
		return []*ast.Ident{ast.NewIdent(l.pos(p), l.text(p))}
	}
	return l.lowerParams(n.ChildByFieldName("parameters"))
}

// lowerCall handles call_expression and new_expression, including tagged templates, which
// tree-sitter represents as a call_expression whose "arguments" field is a template_string
// rather than an "arguments" node.
func (l *lowerer) lowerCall(n *sitter.Node, kind ast.InvocationKind) ast.Node {
	calleeNode := n.ChildByFieldName("function")
	if calleeNode == nil {
		calleeNode = n.ChildByFieldName("constructor")
	}
	callee := l.lowerExpr(calleeNode)

	argsNode := n.ChildByFieldName("arguments")
	if argsNode != nil && argsNode.Type() == "template_string" {
		kind = ast.InvokeTaggedTemplate
		tmpl := l.lowerExpr(argsNode)
		return ast.NewCall(l.pos(n), kind, callee, tmpl)
	}

	var args []ast.Node
	if argsNode != nil {
		for i := 0; i < int(argsNode.NamedChildCount()); i++ {
			args = append(args, l.lowerExpr(argsNode.NamedChild(i)))
		}
	}
	return ast.NewCall(l.pos(n), kind, callee, args...)
}

// stringContent strips the surrounding quotes from a tree-sitter "string" node, preferring the
// inner string_fragment child when present (the grammar's usual shape for non-empty strings).
func (l *lowerer) stringContent(n *sitter.Node) string {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() == "string_fragment" {
			return l.text(c)
		}
	}
	text := l.text(n)
	if len(text) >= 2 {
		return text[1 : len(text)-1]
	}
	return text
}
