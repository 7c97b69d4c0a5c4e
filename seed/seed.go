// Package seed implements the Seeding Pass (spec.md §4.3, component C5): the first component
// that actually writes into the Summary Store / Reverse Call Graph, populating them from the
// upstream reference map before the Body Analyzer and Extern Analyzer add anything else.
package seed

import (
	"fmt"

	"github.com/jmcabandara/purityflow/ast"
	"github.com/jmcabandara/purityflow/collab"
	"github.com/jmcabandara/purityflow/resolve"
	"github.com/jmcabandara/purityflow/summary"
)

// Seeder runs the seeding pass described in spec.md §4.3.
type Seeder struct {
	store    *summary.Store
	refs     collab.ReferenceMap
	classify func(n ast.Node, inExterns bool) bool
	util     collab.NodeUtils
	resolver *resolve.Resolver
}

// New creates a Seeder. classify is the R-value predicate from package classify, injected here
// (rather than imported directly) purely to keep this package's test suite able to substitute a
// fake classifier without constructing real AST parent links.
func New(store *summary.Store, refs collab.ReferenceMap, util collab.NodeUtils, resolver *resolve.Resolver, classify func(ast.Node, bool) bool) *Seeder {
	return &Seeder{store: store, refs: refs, classify: classify, util: util, resolver: resolver}
}

// Run executes the full seeding pass: steps 1-5 of spec.md §4.3.
func (s *Seeder) Run() error {
	refsByName, err := s.buildCombinedMap()
	if err != nil {
		return err
	}

	for shortName, nodes := range refsByName {
		sm, err := s.store.GetOrCreate(shortName)
		if err != nil {
			return err
		}
		// Dynamic names are seeded all-flags-set by Store.GetOrCreate already (spec.md §4.3 step
		// 4); their references still need to flow through below so any attached function
		// literals are still associated (a read of `.call` can still be assigned from a
		// function elsewhere in degenerate code), but whether or not that happens, the name's
		// flags never change because it started at AllFlags and flags are monotone.
		for _, ref := range nodes {
			if s.classify(ref, false) {
				continue // R-value reference: nothing to seed from a read.
			}

			rhs, ok := s.util.GetRValueOfLValue(ref)
			if !ok {
				sm.SetAll()
				continue
			}

			candidates, ok := s.resolver.Resolve(rhs)
			if !ok {
				sm.SetAll()
				continue
			}

			for _, c := range candidates {
				if fn, ok := summary.FuncNode(c); ok {
					s.store.Associate(fn, sm)
					continue
				}
				if s.associateAliasedName(c, sm, refsByName) {
					continue
				}
				sm.SetAll()
			}
		}
	}
	return nil
}

// associateAliasedName handles a candidate that names another short name rather than appearing as
// a function literal form directly, e.g. `var h = cond ? f : g;`: f and g each resolve to their
// own bare Ident, not to the function they were declared with. Rather than pessimize, this looks
// up that other short name's own references (already collected in refsByName) for any function
// declaration/literal recorded as its own self-reference, and associates those directly with sm:
// the Body Analyzer then attributes that function's flags to both names' summaries at once, the
// same way one function literal bound to two names already works. It does not chase the alias any
// further than this one step, so a chain of plain identifier aliases still falls back to
// pessimization one hop out.
func (s *Seeder) associateAliasedName(candidate ast.Node, sm *summary.Summary, refsByName map[string][]ast.Node) bool {
	var short string
	switch c := candidate.(type) {
	case *ast.Ident:
		name, err := summary.ShortName(c.Name, false)
		if err != nil {
			return false
		}
		short = name
	case *ast.PropAccess:
		name, err := summary.ShortName(c.Property, true)
		if err != nil {
			return false
		}
		short = name
	default:
		return false
	}

	found := false
	for _, ref := range refsByName[short] {
		if fn, ok := summary.FuncNode(ref); ok {
			s.store.Associate(fn, sm)
			found = true
		}
	}
	return found
}

// buildCombinedMap implements spec.md §4.3 steps 1-2: merge variable references and property
// references (property names prefixed) into one short_name -> []node map, rejecting empty names.
func (s *Seeder) buildCombinedMap() (map[string][]ast.Node, error) {
	combined := make(map[string][]ast.Node)

	for name, nodes := range s.refs.NameReferences() {
		short, err := summary.ShortName(name, false)
		if err != nil {
			return nil, fmt.Errorf("seed: variable reference: %w", err)
		}
		combined[short] = append(combined[short], nodes...)
	}

	for name, nodes := range s.refs.PropReferences() {
		short, err := summary.ShortName(name, true)
		if err != nil {
			return nil, fmt.Errorf("seed: property reference: %w", err)
		}
		combined[short] = append(combined[short], nodes...)
	}

	return combined, nil
}
