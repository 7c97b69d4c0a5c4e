// Package parser lowers real JavaScript source, parsed with smacker/go-tree-sitter and its
// javascript grammar, into package ast's node types. The walk style (depth-first over
// *sitter.Node, switching on node.Type(), collecting named children by field or position) is
// grounded on AleutianFOSS's javascript_parser.go, which performs the same style of tree-sitter
// walk to extract symbols instead of a full lowering.
package parser

import (
	"context"
	"fmt"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/jmcabandara/purityflow/ast"
)

// MaxFileSize bounds the source accepted by Parse, mirroring the teacher's file-size guard.
const MaxFileSize = 10 * 1024 * 1024

// ErrFileTooLarge is returned when the source exceeds MaxFileSize.
var ErrFileTooLarge = fmt.Errorf("parser: source exceeds %d bytes", MaxFileSize)

// ErrInvalidContent is returned when the source is not valid UTF-8.
var ErrInvalidContent = fmt.Errorf("parser: source is not valid UTF-8")

// Parser lowers JavaScript source into an *ast.Program.
type Parser struct{}

// New creates a Parser. The zero value is also ready to use.
func New() *Parser { return &Parser{} }

// Parse parses content (the contents of filePath) and lowers it into an *ast.Program. Syntactic
// forms the lowering pass does not understand become ast.Unsupported nodes rather than errors;
// Parse only fails for input-level problems (oversized, non-UTF8, or a tree-sitter parse error).
func (p *Parser) Parse(ctx context.Context, content []byte, filePath string) (*ast.Program, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parser: canceled before start: %w", err)
	}
	if len(content) > MaxFileSize {
		return nil, ErrFileTooLarge
	}
	if !utf8.Valid(content) {
		return nil, ErrInvalidContent
	}

	sp := sitter.NewParser()
	sp.SetLanguage(javascript.GetLanguage())

	tree, err := sp.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parser: tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parser: canceled after tree-sitter: %w", err)
	}

	l := &lowerer{content: content, file: filePath}
	root := tree.RootNode()
	body := l.lowerStatements(root)
	return ast.NewProgram(l.pos(root), body...), nil
}

// lowerer carries the shared state (source bytes, file name) for one Parse call's recursive
// descent; it holds no cross-call state and is safe to discard after use.
type lowerer struct {
	content []byte
	file    string
}

func (l *lowerer) pos(n *sitter.Node) ast.Position {
	if n == nil {
		return ast.Position{File: l.file}
	}
	return ast.Position{File: l.file, Line: int(n.StartPoint().Row) + 1, Column: int(n.StartPoint().Column)}
}

func (l *lowerer) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return string(l.content[n.StartByte():n.EndByte()])
}

func (l *lowerer) unsupported(n *sitter.Node) ast.Node {
	return ast.NewUnsupported(l.pos(n), n.Type())
}
