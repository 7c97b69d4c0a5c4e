package callgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmcabandara/purityflow/callgraph"
)

func TestGraph_AddNodeAssignsStableSequentialIDs(t *testing.T) {
	g := callgraph.NewGraph()
	a := g.AddNode(nil)
	b := g.AddNode(nil)
	c := g.AddNode(nil)

	assert.Equal(t, callgraph.NodeID(0), a)
	assert.Equal(t, callgraph.NodeID(1), b)
	assert.Equal(t, callgraph.NodeID(2), c)
	assert.Equal(t, 3, g.NodeCount())
}

func TestGraph_AddEdgeIndexesByCallee(t *testing.T) {
	g := callgraph.NewGraph()
	callee := g.AddNode(nil)
	caller1 := g.AddNode(nil)
	caller2 := g.AddNode(nil)

	e1 := callgraph.Edge{Callee: callee, Caller: caller1, Kind: callgraph.CallKindCall}
	e2 := callgraph.Edge{Callee: callee, Caller: caller2, Kind: callgraph.CallKindNew}
	g.AddEdge(e1)
	g.AddEdge(e2)

	edges := g.EdgesFrom(callee)
	if assert.Len(t, edges, 2) {
		assert.Equal(t, caller1, edges[0].Caller)
		assert.Equal(t, caller2, edges[1].Caller)
	}

	assert.Empty(t, g.EdgesFrom(caller1), "no edges point away from a pure caller node")
	assert.Len(t, g.AllEdges(), 2)
}

func TestGraph_AllEdgesPreservesInsertionOrder(t *testing.T) {
	g := callgraph.NewGraph()
	n0 := g.AddNode(nil)
	n1 := g.AddNode(nil)

	g.AddEdge(callgraph.Edge{Callee: n1, Caller: n0})
	g.AddEdge(callgraph.Edge{Callee: n0, Caller: n1})

	all := g.AllEdges()
	if assert.Len(t, all, 2) {
		assert.Equal(t, n1, all[0].Callee)
		assert.Equal(t, n0, all[1].Callee)
	}
}
