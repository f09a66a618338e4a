// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package pasta

import "github.com/pasta-dag/pasta-go/internal/arena"

// EdgeHandle identifies an Edge within a Graph.
type EdgeHandle arena.Handle

// Valid reports whether h could possibly refer to a live edge.
func (h EdgeHandle) Valid() bool {
	return arena.Handle(h).Valid()
}

// edge is the arena-resident representation of a directed edge. It carries
// its own position within both endpoints' adjacency lists (faninPrev/Next
// within to's fanin list, fanoutPrev/Next within from's fanout list) so that
// RemoveEdge can splice itself out of both in O(1) without a scan, and
// RemoveNode can walk and splice every incident edge in O(deg(n)).
type edge struct {
	from, to NodeHandle

	listPrev, listNext EdgeHandle

	faninPrev, faninNext   EdgeHandle
	fanoutPrev, fanoutNext EdgeHandle
}

// From returns the source node of the edge.
func (g *Graph) From(h EdgeHandle) NodeHandle {
	return g.edges.MustGet(arena.Handle(h)).from
}

// To returns the destination node of the edge.
func (g *Graph) To(h EdgeHandle) NodeHandle {
	return g.edges.MustGet(arena.Handle(h)).to
}
