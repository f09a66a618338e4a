// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package pasta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertEdgeRoundTrip(t *testing.T) {
	g := NewGraph()
	a := g.InsertNode("a")
	b := g.InsertNode("b")
	c := g.InsertNode("c")
	g.InsertEdge(a, b)
	eh := g.InsertEdge(b, c)
	require.Equal(t, 2, g.NumEdges())

	g.RemoveEdge(eh)
	assert.Equal(t, 1, g.NumEdges())
	assert.Equal(t, 0, g.FaninDegree(c))
	assert.Equal(t, 0, g.FanoutDegree(b))
}

func TestRemoveNodeSplicesIncidentEdges(t *testing.T) {
	g := NewGraph()
	a := g.InsertNode("a")
	b := g.InsertNode("b")
	c := g.InsertNode("c")
	g.InsertEdge(a, b)
	g.InsertEdge(b, c)
	g.InsertEdge(a, c)
	require.Equal(t, 3, g.NumEdges())

	g.RemoveNode(b)
	assert.Equal(t, 2, g.NumNodes())
	assert.Equal(t, 1, g.NumEdges())
	assert.Equal(t, 0, g.FaninDegree(a))
	assert.Equal(t, 1, g.FanoutDegree(a))
}

func TestHasEdge(t *testing.T) {
	g := NewGraph()
	a := g.InsertNode("a")
	b := g.InsertNode("b")
	assert.False(t, g.HasEdge(a, b))
	g.InsertEdge(a, b)
	assert.True(t, g.HasEdge(a, b))
	assert.False(t, g.HasEdge(b, a))
}

func TestIterationOrderSurvivesRemoval(t *testing.T) {
	g := NewGraph()
	var handles []NodeHandle
	for _, name := range []string{"a", "b", "c", "d"} {
		handles = append(handles, g.InsertNode(name))
	}
	g.RemoveNode(handles[1]) // remove "b"

	var order []string
	g.Nodes(func(h NodeHandle) bool {
		order = append(order, g.Name(h))
		return true
	})
	assert.Equal(t, []string{"a", "c", "d"}, order)
}

// TestTinyDiamond exercises a small diamond dependency shape: A -> {C, D},
// B -> D; it then inserts B -> C and removes A -> C.
func TestTinyDiamond(t *testing.T) {
	g := NewGraph()
	a := g.InsertNode("A")
	b := g.InsertNode("B")
	c := g.InsertNode("C")
	d := g.InsertNode("D")
	acEdge := g.InsertEdge(a, c)
	g.InsertEdge(a, d)
	g.InsertEdge(b, d)

	assert.False(t, g.HasCycle())

	forward := reverse(g.ReverseTopoOrder())
	assert.Equal(t, 4, len(forward))
	posA, posB, posC, posD := indexOf(forward, a), indexOf(forward, b), indexOf(forward, c), indexOf(forward, d)
	assert.Less(t, posA, posC)
	assert.Less(t, posA, posD)
	assert.Less(t, posB, posD)

	g.InsertEdge(b, c)
	g.RemoveEdge(acEdge)
	assert.False(t, g.HasCycle())
	assert.Equal(t, 3, g.NumEdges())
}

func reverse(hs []NodeHandle) []NodeHandle {
	out := make([]NodeHandle, len(hs))
	for i, h := range hs {
		out[len(hs)-1-i] = h
	}
	return out
}

func indexOf(hs []NodeHandle, target NodeHandle) int {
	for i, h := range hs {
		if h == target {
			return i
		}
	}
	return -1
}

func TestHasCycleDetectsTwoNodeCycle(t *testing.T) {
	g := NewGraph()
	a := g.InsertNode("a")
	b := g.InsertNode("b")
	g.InsertEdge(a, b)
	g.InsertEdge(b, a)
	assert.True(t, g.HasCycle())
}
