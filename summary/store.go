package summary

import (
	"fmt"

	"github.com/jmcabandara/purityflow/ast"
	"github.com/jmcabandara/purityflow/callgraph"
	"github.com/jmcabandara/purityflow/config"
	"github.com/jmcabandara/purityflow/util/orderedmap"
)

// Summary is the ambiguated summary for one short name (spec.md §3): the union of observed
// side-effects across every function that may be bound to any reference with this short name.
type Summary struct {
	name    string
	flags   ast.Flags
	graphID callgraph.NodeID
}

// Name returns the short name this summary represents.
func (s *Summary) Name() string { return s.name }

// Flags returns the summary's current bitset. Bits are only ever added during analysis
// (spec.md §3 "Invariants": monotone).
func (s *Summary) Flags() ast.Flags { return s.flags }

// GraphID returns this summary's node handle in the reverse call graph.
func (s *Summary) GraphID() callgraph.NodeID { return s.graphID }

// SetAll pessimizes this summary to "all flags set" — the sound over-approximation used
// throughout the spec's error-handling regime (spec.md §7 "Unanalyzable constructs").
// It returns true iff this call changed the summary (new bits were actually set), so callers
// driving a fixed point can track whether anything changed.
func (s *Summary) SetAll() bool { return s.Set(ast.AllFlags) }

// Set adds the given bits to the summary, returning true iff any new bit was actually set.
func (s *Summary) Set(bits ast.Flags) bool {
	before := s.flags
	s.flags = s.flags.Set(bits)
	return s.flags != before
}

// MutatesArguments implements spec.md §3's derived predicate: observed-true if either
// MUTATES_ARGS or MUTATES_GLOBAL is set, since a function permitted to mutate global state is
// assumed permitted to mutate arguments that may themselves alias globals.
func (s *Summary) MutatesArguments() bool {
	return s.flags.Has(ast.MutatesArgs) || s.flags.Has(ast.MutatesGlobal)
}

// Store owns one Summary per distinct short name and the function-node-to-summary-set multimap
// spec.md §3 calls the "Function-node ↔ summary association". It is the sole place Summary
// values are constructed, so every summary in a program always has a graph node.
type Store struct {
	graph  *callgraph.Graph
	byName *orderedmap.OrderedMap[string, *Summary]
	// byFunc maps a function definition node to every summary it contributes to — one function
	// literal can be bound to multiple names through aliasing (spec.md §3).
	byFunc map[ast.Node]map[*Summary]bool
	// anonCounter generates unique synthetic names for function literals that are never bound to
	// any program name (see EnsureSummaries).
	anonCounter int
}

// NewStore creates an empty Store backed by the given (also empty) reverse call graph.
func NewStore(graph *callgraph.Graph) *Store {
	return &Store{
		graph:  graph,
		byName: orderedmap.New[string, *Summary](),
		byFunc: make(map[ast.Node]map[*Summary]bool),
	}
}

// GetOrCreate returns the summary for shortName, creating it (and its graph node) if this is the
// first time shortName has been seen. Dynamic names (.call/.apply/.constructor) are created with
// every flag already set, per spec.md §4.3 step 4 / §8.
func (st *Store) GetOrCreate(shortName string) (*Summary, error) {
	if shortName == "" {
		return nil, fmt.Errorf("summary: refusing to create a summary for an empty short name")
	}
	if s, ok := st.byName.Load(shortName); ok {
		return s, nil
	}
	s := &Summary{name: shortName}
	s.graphID = st.graph.AddNode(s)
	if IsDynamicName(shortName) {
		s.flags = ast.AllFlags
	}
	st.byName.Store(shortName, s)
	return s, nil
}

// Lookup returns the summary for shortName if one has already been created, without creating it.
func (st *Store) Lookup(shortName string) (*Summary, bool) {
	return st.byName.Load(shortName)
}

// Associate records that funcNode contributes to summary s (spec.md §4.3 step 5's "record the
// association node → summary").
func (st *Store) Associate(funcNode ast.Node, s *Summary) {
	set, ok := st.byFunc[funcNode]
	if !ok {
		set = make(map[*Summary]bool)
		st.byFunc[funcNode] = set
	}
	set[s] = true
}

// SummariesFor returns every summary associated with funcNode, in no particular order.
func (st *Store) SummariesFor(funcNode ast.Node) []*Summary {
	set := st.byFunc[funcNode]
	out := make([]*Summary, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	return out
}

// EnsureSummaries returns the summaries already associated with funcNode, or — if funcNode was
// never bound to any program name — creates and associates exactly one anonymous summary unique
// to this node. This lets every function literal that can be reached as a definition candidate
// (spec.md §4.1's "Function literal: yield as-is" resolver rule) carry its side effects even when
// it is only ever invoked directly (e.g. an immediately-invoked function expression), without
// violating spec.md §3's invariant that every *named* short name appears exactly once — the
// synthetic name here is never a reference any short name resolves to, only an internal key.
func (st *Store) EnsureSummaries(funcNode ast.Node) ([]*Summary, error) {
	if existing := st.SummariesFor(funcNode); len(existing) > 0 {
		return existing, nil
	}
	st.anonCounter++
	s, err := st.GetOrCreate(fmt.Sprintf("%s%d>", config.AnonymousSummaryPrefix, st.anonCounter))
	if err != nil {
		return nil, err
	}
	st.Associate(funcNode, s)
	return []*Summary{s}, nil
}

// All returns every summary currently in the store, in the order its short name was first seen
// (insertion order), so callers like the CLI report or golden-output tests get stable output
// without having to re-sort.
func (st *Store) All() []*Summary {
	out := make([]*Summary, 0, len(st.byName.Pairs))
	for _, pair := range st.byName.Pairs {
		out = append(out, pair.Value)
	}
	return out
}
