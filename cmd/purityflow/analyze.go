package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jmcabandara/purityflow/ast"
	"github.com/jmcabandara/purityflow/config"
	"github.com/jmcabandara/purityflow/convention"
	"github.com/jmcabandara/purityflow/nodeutil"
	"github.com/jmcabandara/purityflow/parser"
	"github.com/jmcabandara/purityflow/purity"
	"github.com/jmcabandara/purityflow/refmap"
	"github.com/jmcabandara/purityflow/scope"
	"github.com/jmcabandara/purityflow/typeregistry"
	"github.com/jmcabandara/purityflow/util/tokenhelper"
)

var (
	_externsFile    string
	_memoHelpers    []string
	_primitiveTypes []string
	_cacheIn        string
	_cacheOut       string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Analyze one or more JavaScript source files and print resolved purity results",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&_externsFile, "externs", "", "Path to an externs file documenting the ambient host/library API")
	analyzeCmd.Flags().StringSliceVar(&_memoHelpers, "memo-helper", nil, "Name of a memoization helper function recognized as the memoize(valueFn[, keyFn]) idiom (repeatable)")
	analyzeCmd.Flags().StringSliceVar(&_primitiveTypes, "primitive-type", nil, "Declared return-type name treated as disjoint from the root object type (repeatable); defaults to the built-in JS primitives")
	analyzeCmd.Flags().StringVar(&_cacheIn, "cache-in", "", "Path to a summary cache (written by --cache-out in a previous run) to merge in before reporting")
	analyzeCmd.Flags().StringVar(&_cacheOut, "cache-out", "", "Path to write this run's resolved summaries as a compressed cache for a future --cache-in")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	p := parser.New()

	source, err := parseAndMerge(ctx, p, args)
	if err != nil {
		return fmt.Errorf("purityflow: %w", err)
	}

	externs := ast.NewProgram(ast.Position{})
	if _externsFile != "" {
		content, readErr := os.ReadFile(_externsFile)
		if readErr != nil {
			return fmt.Errorf("purityflow: reading externs file: %w", readErr)
		}
		externs, err = p.Parse(ctx, content, _externsFile)
		if err != nil {
			return fmt.Errorf("purityflow: parsing externs file: %w", err)
		}
	}

	opts := config.New(
		config.WithMemoHelperNames(_memoHelpers...),
		config.WithPrimitiveTypes(_primitiveTypes...),
	)

	types := typeregistry.Default()
	if len(opts.PrimitiveTypes) > 0 {
		types = typeregistry.New(opts.PrimitiveTypes...)
	}

	collabs := purity.Collaborators{
		References: refmap.Build(source, externs),
		Convention: convention.New(opts.MemoHelperNames...),
		Nodes:      nodeutil.New(opts.Intrinsics, opts.ConstructorIntrinsics),
		Scope:      scope.Build(source),
		Types:      types,
	}

	pass := purity.New(collabs)
	if err := pass.Run(source, externs); err != nil {
		return fmt.Errorf("purityflow: %w", err)
	}

	if _cacheIn != "" {
		f, err := os.Open(_cacheIn)
		if err != nil {
			return fmt.Errorf("purityflow: opening cache: %w", err)
		}
		defer f.Close()
		if err := pass.Store.Import(f); err != nil {
			return fmt.Errorf("purityflow: %w", err)
		}
	}

	if _cacheOut != "" {
		f, err := os.Create(_cacheOut)
		if err != nil {
			return fmt.Errorf("purityflow: creating cache: %w", err)
		}
		defer f.Close()
		if err := pass.Store.Export(f); err != nil {
			return fmt.Errorf("purityflow: %w", err)
		}
	}

	printReport(cmd, pass)
	return nil
}

// parseAndMerge parses every file and merges their top-level statements into one synthetic
// Program, the shape package purity (and its collaborators, scope.Build/refmap.Build included)
// expect for the source side of a single analysis run.
func parseAndMerge(ctx context.Context, p *parser.Parser, files []string) (*ast.Program, error) {
	var body []ast.Node
	for _, f := range files {
		content, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		prog, err := p.Parse(ctx, content, f)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", f, err)
		}
		body = append(body, prog.Body...)
	}
	return ast.NewProgram(ast.Position{File: files[0]}, body...), nil
}

func printReport(cmd *cobra.Command, pass *purity.Pass) {
	out := cmd.OutOrStdout()

	summaries := pass.Store.All()
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name() < summaries[j].Name() })
	fmt.Fprintln(out, "summaries:")
	for _, sm := range summaries {
		fmt.Fprintf(out, "  %-30s %s\n", sm.Name(), sm.Flags())
	}

	fmt.Fprintln(out, "call sites:")
	for _, call := range pass.Calls {
		pos := call.Pos()
		fmt.Fprintf(out, "  %s:%d:%d %s\n", tokenhelper.RelToCwd(pos.File), pos.Line, pos.Column, call.SideEffectFlags)
	}

	if events := pass.Diagnostics.Events(); len(events) > 0 {
		fmt.Fprintln(out, "diagnostics:")
		for _, ev := range events {
			fmt.Fprintf(out, "  %s:%d:%d %s\n", tokenhelper.RelToCwd(ev.Position.File), ev.Position.Line, ev.Position.Column, ev.Message)
		}
	}
}
