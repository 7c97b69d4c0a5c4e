package ast

// This file provides constructors for every concrete node type. The embedded base struct keeps
// its fields unexported so that Parent() is only ever set once, at construction time, by these
// functions (or by Link for the rare node built incrementally, e.g. anonymous-function lowering
// in package parser). Callers outside this package — including every component's tests, which
// build small fixture programs by hand the way nilaway's testdata/*.go files build fixture Go
// source — always go through these constructors rather than struct literals.

func newBase(kind Kind, pos Position) base { return base{kind: kind, pos: pos} }

// NewProgram builds a Program node and parents every body statement to it.
func NewProgram(pos Position, body ...Node) *Program {
	p := &Program{base: newBase(KindProgram, pos), Body: body}
	for _, n := range body {
		Link(p, n)
	}
	return p
}

// NewIdent builds a bare identifier reference.
func NewIdent(pos Position, name string) *Ident {
	return &Ident{base: newBase(KindIdent, pos), Name: name}
}

// NewPropAccess builds `object.property`.
func NewPropAccess(pos Position, object Node, property string) *PropAccess {
	n := &PropAccess{base: newBase(KindPropAccess, pos), Object: object, Property: property}
	Link(n, object)
	return n
}

// NewCall builds a call/new/tagged-template invocation node.
func NewCall(pos Position, kind InvocationKind, callee Node, args ...Node) *CallExpr {
	n := &CallExpr{base: newBase(callExprKind(kind), pos), Kind_: kind, Callee: callee, Args: args}
	Link(n, callee)
	for _, a := range args {
		Link(n, a)
	}
	return n
}

func callExprKind(k InvocationKind) Kind {
	switch k {
	case InvokeNew:
		return KindNew
	case InvokeTaggedTemplate:
		return KindTaggedTemplate
	default:
		return KindCall
	}
}

// NewFuncLit builds an (anonymous or named) function expression.
func NewFuncLit(pos Position, name string, params []*Ident, body []Node, doc *JSDocInfo) *FuncLit {
	n := &FuncLit{base: newBase(KindFuncLit, pos), Name: name, Params: params, Body: body, JSDoc: doc}
	for _, p := range params {
		Link(n, p)
	}
	for _, s := range body {
		Link(n, s)
	}
	return n
}

// NewFuncDecl builds a named function declaration.
func NewFuncDecl(pos Position, name string, params []*Ident, body []Node, doc *JSDocInfo) *FuncDecl {
	n := &FuncDecl{base: newBase(KindFuncDecl, pos), Name: name, Params: params, Body: body, JSDoc: doc}
	for _, p := range params {
		Link(n, p)
	}
	for _, s := range body {
		Link(n, s)
	}
	return n
}

// NewAssign builds `lhs = rhs`.
func NewAssign(pos Position, lhs, rhs Node) *Assign {
	n := &Assign{base: newBase(KindAssign, pos), LHS: lhs, RHS: rhs}
	Link(n, lhs)
	Link(n, rhs)
	return n
}

// NewCompoundAssign builds `lhs op= rhs`.
func NewCompoundAssign(pos Position, op string, lhs, rhs Node) *CompoundAssign {
	n := &CompoundAssign{base: newBase(KindCompoundAssign, pos), Op: op, LHS: lhs, RHS: rhs}
	Link(n, lhs)
	Link(n, rhs)
	return n
}

// NewDestructuring builds an array/object destructuring assignment.
func NewDestructuring(pos Position, targets []Node, rhs Node) *Destructuring {
	n := &Destructuring{base: newBase(KindDestructuring, pos), Targets: targets, RHS: rhs}
	for _, t := range targets {
		Link(n, t)
	}
	Link(n, rhs)
	return n
}

// NewUnary builds `++x`, `x--`, or `delete x`.
func NewUnary(pos Position, op UnaryOp, operand Node) *Unary {
	n := &Unary{base: newBase(KindUnary, pos), Op: op, Operand: operand}
	Link(n, operand)
	return n
}

// NewBinary builds a binary operator expression.
func NewBinary(pos Position, op string, left, right Node) *Binary {
	n := &Binary{base: newBase(KindBinary, pos), Op: op, Left: left, Right: right}
	Link(n, left)
	Link(n, right)
	return n
}

// NewLogicalOr builds `a || b`.
func NewLogicalOr(pos Position, left, right Node) *LogicalOr {
	n := &LogicalOr{base: newBase(KindLogicalOr, pos), Left: left, Right: right}
	Link(n, left)
	Link(n, right)
	return n
}

// NewConditional builds the ternary `test ? then : else`.
func NewConditional(pos Position, test, then, els Node) *Conditional {
	n := &Conditional{base: newBase(KindConditional, pos), Test: test, Then: then, Else: els}
	Link(n, test)
	Link(n, then)
	Link(n, els)
	return n
}

// NewArrayLiteral builds `[elements...]`.
func NewArrayLiteral(pos Position, elements ...Node) *ArrayLiteral {
	n := &ArrayLiteral{base: newBase(KindArrayLiteral, pos), Elements: elements}
	for _, e := range elements {
		Link(n, e)
	}
	return n
}

// NewObjectLiteral builds `{ properties... }`.
func NewObjectLiteral(pos Position, properties ...ObjectProperty) *ObjectLiteral {
	n := &ObjectLiteral{base: newBase(KindObjectLiteral, pos), Properties: properties}
	for _, p := range properties {
		Link(n, p.Value)
	}
	return n
}

// NewClassDecl builds a class declaration.
func NewClassDecl(pos Position, name string, extends Node, methods ...*FuncDecl) *ClassDecl {
	n := &ClassDecl{base: newBase(KindClassDecl, pos), Name: name, Extends: extends, Methods: methods}
	Link(n, extends)
	for _, m := range methods {
		Link(n, m)
	}
	return n
}

// NewReturn builds `return value;` (value may be nil).
func NewReturn(pos Position, value Node) *Return {
	n := &Return{base: newBase(KindReturn, pos), Value: value}
	Link(n, value)
	return n
}

// NewThrow builds `throw value;`.
func NewThrow(pos Position, value Node) *Throw {
	n := &Throw{base: newBase(KindThrow, pos), Value: value}
	Link(n, value)
	return n
}

// NewYield builds `yield value` (or `yield* value` when delegate is true).
func NewYield(pos Position, value Node, delegate bool) *Yield {
	n := &Yield{base: newBase(KindYield, pos), Value: value, Delegate: delegate}
	Link(n, value)
	return n
}

// NewAwait builds `await value`.
func NewAwait(pos Position, value Node) *Await {
	n := &Await{base: newBase(KindAwait, pos), Value: value}
	Link(n, value)
	return n
}

// NewSpread builds `...value` in a call/array/object position.
func NewSpread(pos Position, value Node) *Spread {
	n := &Spread{base: newBase(KindSpread, pos), Value: value}
	Link(n, value)
	return n
}

// NewRest builds `...value` in a destructuring/parameter position.
func NewRest(pos Position, value Node) *Rest {
	n := &Rest{base: newBase(KindRest, pos), Value: value}
	Link(n, value)
	return n
}

// NewVarDecl builds a `var`/`let`/`const` declaration statement.
func NewVarDecl(pos Position, declarators ...*VarDeclarator) *VarDecl {
	n := &VarDecl{base: newBase(KindVarDecl, pos), Declarators: declarators}
	for _, d := range declarators {
		Link(n, d)
	}
	return n
}

// NewVarDeclarator builds one `name = init` binding (init may be nil).
func NewVarDeclarator(pos Position, name string, init Node) *VarDeclarator {
	n := &VarDeclarator{base: newBase(KindVarDeclarator, pos), Name: name, Init: init}
	Link(n, init)
	return n
}

// NewIf builds `if (test) then else els` (els may be nil).
func NewIf(pos Position, test, then, els Node) *If {
	n := &If{base: newBase(KindIf, pos), Test: test, Then: then, Else: els}
	Link(n, test)
	Link(n, then)
	Link(n, els)
	return n
}

// NewWhile builds `while (test) body`.
func NewWhile(pos Position, test, body Node) *While {
	n := &While{base: newBase(KindWhile, pos), Test: test, Body: body}
	Link(n, test)
	Link(n, body)
	return n
}

// NewSwitch builds `switch (discriminant) { cases... }`.
func NewSwitch(pos Position, discriminant Node, cases ...*Case) *Switch {
	n := &Switch{base: newBase(KindSwitch, pos), Discriminant: discriminant, Cases: cases}
	Link(n, discriminant)
	for _, c := range cases {
		Link(n, c)
	}
	return n
}

// NewCase builds one `case test:`/`default:` arm (test nil for default).
func NewCase(pos Position, test Node, body ...Node) *Case {
	n := &Case{base: newBase(KindCase, pos), Test: test, Body: body}
	Link(n, test)
	for _, s := range body {
		Link(n, s)
	}
	return n
}

// NewForIn builds `for (lhs in rhs) body`.
func NewForIn(pos Position, lhs, rhs, body Node) *ForIn {
	n := &ForIn{base: newBase(KindForIn, pos), LHS: lhs, RHS: rhs, Body: body}
	Link(n, lhs)
	Link(n, rhs)
	Link(n, body)
	return n
}

// NewForOf builds `for (lhs of rhs) body`.
func NewForOf(pos Position, lhs, rhs, body Node) *ForOf {
	n := &ForOf{base: newBase(KindForOf, pos), LHS: lhs, RHS: rhs, Body: body}
	Link(n, lhs)
	Link(n, rhs)
	Link(n, body)
	return n
}

// NewForAwaitOf builds `for await (lhs of rhs) body`.
func NewForAwaitOf(pos Position, lhs, rhs, body Node) *ForAwaitOf {
	n := &ForAwaitOf{base: newBase(KindForAwaitOf, pos), LHS: lhs, RHS: rhs, Body: body}
	Link(n, lhs)
	Link(n, rhs)
	Link(n, body)
	return n
}

// NewFor builds a classic `for (init; test; update) body` loop.
func NewFor(pos Position, init, test, update, body Node) *For {
	n := &For{base: newBase(KindFor, pos), Init: init, Test: test, Update: update, Body: body}
	Link(n, init)
	Link(n, test)
	Link(n, update)
	Link(n, body)
	return n
}

// NewBlock builds `{ stmts... }`.
func NewBlock(pos Position, stmts ...Node) *Block {
	n := &Block{base: newBase(KindBlock, pos), Stmts: stmts}
	for _, s := range stmts {
		Link(n, s)
	}
	return n
}

// NewExprStmt builds an expression-statement.
func NewExprStmt(pos Position, expr Node) *ExprStmt {
	n := &ExprStmt{base: newBase(KindExprStmt, pos), Expr: expr}
	Link(n, expr)
	return n
}

// NewTemplateLiteral builds a (non-tagged) template string with the given interpolations.
func NewTemplateLiteral(pos Position, expressions ...Node) *TemplateLiteral {
	n := &TemplateLiteral{base: newBase(KindTemplateLiteral, pos), Expressions: expressions}
	for _, e := range expressions {
		Link(n, e)
	}
	return n
}

// NewLiteral builds an atomic literal.
func NewLiteral(pos Position, text string, kind LiteralKind) *Literal {
	return &Literal{base: newBase(KindLiteral, pos), TextValue: text, LitKind: kind}
}

// NewUnsupported wraps a syntactic form the lowering pass does not understand.
func NewUnsupported(pos Position, description string) *Unsupported {
	return &Unsupported{base: newBase(KindUnsupported, pos), Description: description}
}

// NewTry builds a try/catch/finally statement. catchParam is nil for a parameterless catch.
func NewTry(pos Position, block []Node, catchParam *Ident, catchBody []Node, finally []Node) *Try {
	n := &Try{base: newBase(KindTry, pos), Block: block, CatchParam: catchParam, CatchBody: catchBody, Finally: finally}
	for _, s := range block {
		Link(n, s)
	}
	if catchParam != nil {
		Link(n, catchParam)
	}
	for _, s := range catchBody {
		Link(n, s)
	}
	for _, s := range finally {
		Link(n, s)
	}
	return n
}
