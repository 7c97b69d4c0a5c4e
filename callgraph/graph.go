// Package callgraph implements the Reverse Call Graph (spec.md §4, component C2): a directed
// multigraph over summaries whose edges encode call-site propagation descriptors, traversed to a
// monotone fixed point by package propagate.
//
// Design Notes (spec.md §9) call for "an arena-of-nodes-and-edges with stable integer handles
// rather than owning pointer graphs" to avoid per-edge heap churn; this mirrors how the teacher
// (uber-go-nilaway/inference) represents sites as small value types (primitiveSite) rather than
// pointer-chasing structures, and how its orderedmap package favors flat slices over nested maps
// for anything walked during the hot inference loop.
package callgraph

// NodeID is a stable handle for a graph node (one per Summary). IDs are assigned in insertion
// order starting at 0 and never reused.
type NodeID int

// CallKind mirrors ast.InvocationKind at the edge level (spec.md §3's Call-Site Propagation
// Descriptor "call_kind" field); kept as a distinct type so this package has no dependency on
// package ast beyond the owner interface below.
type CallKind uint8

const (
	CallKindCall CallKind = iota + 1
	CallKindNew
	CallKindTaggedTemplate
)

// Edge is the immutable Call-Site Propagation Descriptor from spec.md §3: it records, for one
// specific call site, how side-effects may flow from the callee summary to the caller summary.
type Edge struct {
	// Callee and Caller are the graph nodes this edge connects, callee → caller (spec.md §3:
	// "Edges point callee → caller so that changes to a callee are pushed to its dependents").
	Callee NodeID
	Caller NodeID
	// AllArgsUnescapedLocal is true iff every argument at this call site is provably a fresh
	// local value (spec.md §4.6).
	AllArgsUnescapedLocal bool
	// CalleeThisEqualsCallerThis is true iff the receiver bound by this call is the caller's own
	// receiver (syntactically bare `this`), and the call is not via .call/.apply (spec.md §4.6).
	CalleeThisEqualsCallerThis bool
	// Kind is the syntactic call form.
	Kind CallKind
}

// owner is the minimal capability callgraph needs from a graph node: package summary's Summary
// type satisfies it without this package importing package summary (which itself imports this
// package for NodeID — summary -> callgraph is the one-directional dependency spec.md's
// dependency-ordered component table C1/C2 describes).
type owner interface{}

// Graph is the reverse call graph: one node per Summary, edges recording call-site propagation
// descriptors. It is grown during seeding/body-analysis (AddNode/AddEdge) and then frozen and
// walked to a fixed point by package propagate.
type Graph struct {
	nodes []owner
	// edgesFrom indexes edges by their Callee endpoint, since the propagator's worklist walks
	// "what does this callee's change affect" (spec.md §4.7: "for each edge callee→caller").
	edgesFrom map[NodeID][]*Edge
	allEdges  []*Edge
}

// NewGraph creates an empty reverse call graph.
func NewGraph() *Graph {
	return &Graph{edgesFrom: make(map[NodeID][]*Edge)}
}

// AddNode registers a new node (backing a freshly created Summary) and returns its stable handle.
// Every node in the graph corresponds to exactly one summary (spec.md §3 invariant); package
// summary is the only caller.
func (g *Graph) AddNode(o owner) NodeID {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, o)
	return id
}

// NodeCount returns the number of nodes currently in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// AddEdge records a call-site propagation descriptor from callee to caller.
func (g *Graph) AddEdge(e Edge) {
	ep := &e
	g.allEdges = append(g.allEdges, ep)
	g.edgesFrom[e.Callee] = append(g.edgesFrom[e.Callee], ep)
}

// EdgesFrom returns every edge whose Callee is id, i.e. every caller that directly depends on
// id's summary.
func (g *Graph) EdgesFrom(id NodeID) []*Edge {
	return g.edgesFrom[id]
}

// AllEdges returns every edge in the graph, in insertion order. Used by the propagator to seed
// its initial worklist and by tests asserting on graph shape.
func (g *Graph) AllEdges() []*Edge {
	return g.allEdges
}
