// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package pasta

import "github.com/pasta-dag/pasta-go/internal/arena"

// PartitionStream reshapes g's adjacency into at most S linear chains
// ("streams") plus cross-stream edges, such that execution under a
// task-parallel runtime with unlimited workers never exceeds S
// concurrently-ready tasks, while the reshaped edges remain compatible with
// a topological order of the original graph. It returns [ConfigError] if S
// is zero, and [ErrCycleDetected] if g is not acyclic.
//
// Stream partitioning is fully deterministic given g's current edge set and
// S: it depends only on the BFS level decomposition computed by
// [Graph.LevelDecomposition], which is itself deterministic given fanout
// insertion order.
func (g *Graph) PartitionStream(s int) error {
	if s == 0 {
		return &ConfigError{Param: "S", Value: s, Msg: "stream count must be non-zero"}
	}

	g.Nodes(func(h NodeHandle) bool {
		n := g.nodes.Ptr(arena.Handle(h))
		n.sm = -1
		n.reshapedFanin = nil
		n.reshapedFanout = nil
		return true
	})

	levels, err := g.LevelDecomposition()
	if err != nil {
		return err
	}

	streams := make([][]NodeHandle, s)

	addReshapedEdge := func(from, to NodeHandle) {
		g.nodes.Ptr(arena.Handle(from)).reshapedFanout = append(g.nodes.Ptr(arena.Handle(from)).reshapedFanout, to)
		g.nodes.Ptr(arena.Handle(to)).reshapedFanin = append(g.nodes.Ptr(arena.Handle(to)).reshapedFanin, from)
	}

	topoID := func(h NodeHandle) int {
		return g.nodes.MustGet(arena.Handle(h)).topoID
	}
	lid := func(h NodeHandle) int {
		return g.nodes.MustGet(arena.Handle(h)).lid
	}

	for _, level := range levels {
		for _, n := range level.Nodes {
			streamCur := lid(n) % s
			var lastSameStream NodeHandle
			haveLastSameStream := false

			nSM := g.nodes.MustGet(arena.Handle(n)).sm
			g.Fanins(n, func(eh EdgeHandle) bool {
				p := g.From(eh)
				streamPrev := lid(p) % s
				switch {
				case streamPrev == nSM:
					if !haveLastSameStream || topoID(lastSameStream) < topoID(p) {
						lastSameStream = p
						haveLastSameStream = true
					}
				case streamPrev != streamCur:
					addReshapedEdge(p, n)
				}
				return true
			})
			if haveLastSameStream {
				addReshapedEdge(lastSameStream, n)
			}

			streams[streamCur] = append(streams[streamCur], n)

			g.Fanouts(n, func(eh EdgeHandle) bool {
				successor := g.To(eh)
				if lid(successor)%s != streamCur {
					g.nodes.Ptr(arena.Handle(successor)).sm = streamCur
				}
				return true
			})
		}
	}

	for _, stream := range streams {
		for i := 0; i+1 < len(stream); i++ {
			addReshapedEdge(stream[i], stream[i+1])
		}
	}

	if !g.SharesTopoOrderWithOriginal() {
		return ErrInvariantViolation
	}
	return nil
}

// ReshapedFanins calls yield once per reshaped predecessor of h as computed
// by the most recent [Graph.PartitionStream] call, stopping early if yield
// returns false.
func (g *Graph) ReshapedFanins(h NodeHandle, yield func(NodeHandle) bool) {
	for _, p := range g.nodes.MustGet(arena.Handle(h)).reshapedFanin {
		if !yield(p) {
			return
		}
	}
}

// ReshapedFanouts calls yield once per reshaped successor of h as computed
// by the most recent [Graph.PartitionStream] call, stopping early if yield
// returns false.
func (g *Graph) ReshapedFanouts(h NodeHandle, yield func(NodeHandle) bool) {
	for _, s := range g.nodes.MustGet(arena.Handle(h)).reshapedFanout {
		if !yield(s) {
			return
		}
	}
}
