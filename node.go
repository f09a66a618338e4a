// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package pasta

import "github.com/pasta-dag/pasta-go/internal/arena"

// NodeHandle identifies a Node within a Graph. It remains valid across
// insertion and removal of other nodes and edges; a handle into a node that
// has since been removed is detected and rejected rather than silently
// aliasing a later, unrelated node.
type NodeHandle arena.Handle

// Valid reports whether h could possibly refer to a live node. It does not
// consult a Graph, so it cannot detect a handle whose node has been removed.
func (h NodeHandle) Valid() bool {
	return arena.Handle(h).Valid()
}

type clusterNode struct {
	id      int
	members []NodeHandle
}

// node is the arena-resident representation of a graph node. Fanin/fanout
// adjacency is an intrusive doubly linked list of edge handles so that
// RemoveEdge and RemoveNode can splice a single entry out in O(1); the
// insertion-order listPrev/listNext chain is independent of physical arena
// slot placement so that iteration order survives slot reuse after removal.
type node struct {
	name string

	listPrev, listNext NodeHandle

	faninHead, faninTail     EdgeHandle
	fanoutHead, fanoutTail   EdgeHandle
	faninCount, fanoutCount  int

	// Transient marks, reset at the start of whichever topology pass or
	// partitioner needs them. Never meaningful across calls.
	visited  bool
	topoID   int
	level    int
	lid      int
	sm       int // stream hint set by a predecessor during stream partitioning

	// Populated only by PartitionStream; rebuilt from scratch on every call
	// since the reshaped graph has no incremental-edit requirement.
	reshapedFanin  []NodeHandle
	reshapedFanout []NodeHandle

	// C-PASTA fields. clusterID and depCnt are mutated by worker goroutines
	// during partitioning via direct pointer access (see cpasta.go); no
	// structural mutation may happen concurrently with that, per the
	// package's concurrency contract.
	clusterID int32
	depCnt    int32
	cluster   *clusterNode
}

// Name returns the human-readable name given to the node at insertion.
func (g *Graph) Name(h NodeHandle) string {
	return g.nodes.MustGet(arena.Handle(h)).name
}

// FaninDegree returns the number of original incoming edges of the node.
func (g *Graph) FaninDegree(h NodeHandle) int {
	return g.nodes.MustGet(arena.Handle(h)).faninCount
}

// FanoutDegree returns the number of original outgoing edges of the node.
func (g *Graph) FanoutDegree(h NodeHandle) int {
	return g.nodes.MustGet(arena.Handle(h)).fanoutCount
}

// Fanins calls yield once per incoming edge of h, in the order the edges
// were inserted, stopping early if yield returns false.
func (g *Graph) Fanins(h NodeHandle, yield func(EdgeHandle) bool) {
	n := g.nodes.MustGet(arena.Handle(h))
	for eh := n.faninHead; eh.Valid(); {
		e := g.edges.MustGet(arena.Handle(eh))
		if !yield(eh) {
			return
		}
		eh = e.faninNext
	}
}

// Fanouts calls yield once per outgoing edge of h, in the order the edges
// were inserted, stopping early if yield returns false.
func (g *Graph) Fanouts(h NodeHandle, yield func(EdgeHandle) bool) {
	n := g.nodes.MustGet(arena.Handle(h))
	for eh := n.fanoutHead; eh.Valid(); {
		e := g.edges.MustGet(arena.Handle(eh))
		if !yield(eh) {
			return
		}
		eh = e.fanoutNext
	}
}
