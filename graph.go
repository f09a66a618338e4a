// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package pasta

import "github.com/pasta-dag/pasta-go/internal/arena"

// A Graph is a mutable store of Nodes and Edges forming a directed graph.
// InsertNode, InsertEdge, RemoveNode, and RemoveEdge are all O(1) (RemoveNode
// is O(deg(n))); none of them renumber surviving nodes or invalidate other
// handles. Iteration order over Nodes/Edges is insertion order, with
// removals punched out in place.
//
// A Graph is not safe for concurrent structural mutation. Partitioners may
// write per-node partition fields concurrently (see [Graph.PartitionCPasta]),
// but that is the only concurrency a Graph supports; everything else must be
// externally serialized by the caller, including against any in-progress
// partition or execution run.
type Graph struct {
	nodes arena.Arena[node]
	edges arena.Arena[edge]

	nodeListHead, nodeListTail NodeHandle
	edgeListHead, edgeListTail EdgeHandle

	partitionSize int

	maxClusterID int
	clusters     []*clusterNode
	cedges       []cedge

	payload  PayloadFunc
	runtimes runtimeAccumulators
}

// NewGraph returns an empty Graph.
func NewGraph() *Graph {
	return &Graph{maxClusterID: -1}
}

// NumNodes returns the number of live nodes.
func (g *Graph) NumNodes() int {
	return g.nodes.Len()
}

// NumEdges returns the number of live edges.
func (g *Graph) NumEdges() int {
	return g.edges.Len()
}

// InsertNode adds a new node with the given name and returns its handle.
// Names need not be unique.
func (g *Graph) InsertNode(name string) NodeHandle {
	h := NodeHandle(g.nodes.Insert(node{name: name}))
	if !g.nodeListHead.Valid() {
		g.nodeListHead = h
	} else {
		tail := g.nodes.Ptr(arena.Handle(g.nodeListTail))
		tail.listNext = h
		g.nodes.Ptr(arena.Handle(h)).listPrev = g.nodeListTail
	}
	g.nodeListTail = h
	return h
}

// InsertEdge adds a new directed edge from -> to and returns its handle.
// InsertEdge does not check for duplicate edges or for cycles; callers that
// require either must check themselves (see [Graph.HasEdge]).
func (g *Graph) InsertEdge(from, to NodeHandle) EdgeHandle {
	h := EdgeHandle(g.edges.Insert(edge{from: from, to: to}))

	// Insertion-order list across all edges.
	if !g.edgeListHead.Valid() {
		g.edgeListHead = h
	} else {
		tail := g.edges.Ptr(arena.Handle(g.edgeListTail))
		tail.listNext = h
	}
	e := g.edges.Ptr(arena.Handle(h))
	e.listPrev = g.edgeListTail
	g.edgeListTail = h

	// Append to from's fanout list.
	fromNode := g.nodes.Ptr(arena.Handle(from))
	e.fanoutPrev = fromNode.fanoutTail
	if fromNode.fanoutTail.Valid() {
		g.edges.Ptr(arena.Handle(fromNode.fanoutTail)).fanoutNext = h
	} else {
		fromNode.fanoutHead = h
	}
	fromNode.fanoutTail = h
	fromNode.fanoutCount++

	// Append to to's fanin list.
	toNode := g.nodes.Ptr(arena.Handle(to))
	e.faninPrev = toNode.faninTail
	if toNode.faninTail.Valid() {
		g.edges.Ptr(arena.Handle(toNode.faninTail)).faninNext = h
	} else {
		toNode.faninHead = h
	}
	toNode.faninTail = h
	toNode.faninCount++

	return h
}

// HasEdge reports whether an edge from -> to already exists. It scans
// from's fanout list, so it is O(fanout-degree(from)), not O(1).
func (g *Graph) HasEdge(from, to NodeHandle) bool {
	found := false
	g.Fanouts(from, func(eh EdgeHandle) bool {
		if g.To(eh) == to {
			found = true
			return false
		}
		return true
	})
	return found
}

// RemoveEdge removes e from the graph in O(1), splicing it out of both
// endpoints' adjacency lists.
func (g *Graph) RemoveEdge(h EdgeHandle) {
	e := g.edges.Ptr(arena.Handle(h))
	from := g.nodes.Ptr(arena.Handle(e.from))
	to := g.nodes.Ptr(arena.Handle(e.to))

	// Splice out of from's fanout list.
	if e.fanoutPrev.Valid() {
		g.edges.Ptr(arena.Handle(e.fanoutPrev)).fanoutNext = e.fanoutNext
	} else {
		from.fanoutHead = e.fanoutNext
	}
	if e.fanoutNext.Valid() {
		g.edges.Ptr(arena.Handle(e.fanoutNext)).fanoutPrev = e.fanoutPrev
	} else {
		from.fanoutTail = e.fanoutPrev
	}
	from.fanoutCount--

	// Splice out of to's fanin list.
	if e.faninPrev.Valid() {
		g.edges.Ptr(arena.Handle(e.faninPrev)).faninNext = e.faninNext
	} else {
		to.faninHead = e.faninNext
	}
	if e.faninNext.Valid() {
		g.edges.Ptr(arena.Handle(e.faninNext)).faninPrev = e.faninPrev
	} else {
		to.faninTail = e.faninPrev
	}
	to.faninCount--

	g.unlinkEdgeFromInsertionOrder(h, e)
	g.edges.Remove(arena.Handle(h))
}

func (g *Graph) unlinkEdgeFromInsertionOrder(h EdgeHandle, e *edge) {
	if e.listPrev.Valid() {
		g.edges.Ptr(arena.Handle(e.listPrev)).listNext = e.listNext
	} else {
		g.edgeListHead = e.listNext
	}
	if e.listNext.Valid() {
		g.edges.Ptr(arena.Handle(e.listNext)).listPrev = e.listPrev
	} else {
		g.edgeListTail = e.listPrev
	}
}

// RemoveNode removes n and every edge incident to it, in O(deg(n)).
func (g *Graph) RemoveNode(h NodeHandle) {
	for {
		n := g.nodes.Ptr(arena.Handle(h))
		if !n.faninHead.Valid() {
			break
		}
		g.RemoveEdge(n.faninHead)
	}
	for {
		n := g.nodes.Ptr(arena.Handle(h))
		if !n.fanoutHead.Valid() {
			break
		}
		g.RemoveEdge(n.fanoutHead)
	}

	n := g.nodes.Ptr(arena.Handle(h))
	if n.listPrev.Valid() {
		g.nodes.Ptr(arena.Handle(n.listPrev)).listNext = n.listNext
	} else {
		g.nodeListHead = n.listNext
	}
	if n.listNext.Valid() {
		g.nodes.Ptr(arena.Handle(n.listNext)).listPrev = n.listPrev
	} else {
		g.nodeListTail = n.listPrev
	}

	g.nodes.Remove(arena.Handle(h))
}

// Nodes calls yield once per live node, in insertion order, stopping early
// if yield returns false.
func (g *Graph) Nodes(yield func(NodeHandle) bool) {
	for h := g.nodeListHead; h.Valid(); {
		n := g.nodes.MustGet(arena.Handle(h))
		if !yield(h) {
			return
		}
		h = n.listNext
	}
}

// Edges calls yield once per live edge, in insertion order, stopping early
// if yield returns false.
func (g *Graph) Edges(yield func(EdgeHandle) bool) {
	for h := g.edgeListHead; h.Valid(); {
		e := g.edges.MustGet(arena.Handle(h))
		if !yield(h) {
			return
		}
		h = e.listNext
	}
}

// SetPartitionSize sets the maximum number of member nodes a C-PASTA
// cluster may contain. It must be called with a non-zero value before
// [Graph.PartitionCPasta].
func (g *Graph) SetPartitionSize(k int) {
	g.partitionSize = k
}
