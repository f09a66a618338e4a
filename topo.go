// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package pasta

import "github.com/pasta-dag/pasta-go/internal/arena"

// ReverseTopoOrder returns the nodes of g in reverse topological order: DFS
// from every source (zero-fanin node), pushing a node onto the result only
// after its subtree is complete. Reversing the returned slice yields a
// forward topological order. DFS recursion order follows fanout insertion
// order, and source iteration follows node insertion order, so the result
// is deterministic for a given sequence of graph edits.
//
// If g contains a cycle, the returned slice has fewer than [Graph.NumNodes]
// entries; ReverseTopoOrder does not itself report an error, since some
// callers (e.g. [Graph.HasCycle]) only need the count.
func (g *Graph) ReverseTopoOrder() []NodeHandle {
	g.resetVisited()
	order := make([]NodeHandle, 0, g.NumNodes())
	g.Nodes(func(h NodeHandle) bool {
		if g.FaninDegree(h) == 0 {
			order = g.topoDFS(order, h)
		}
		return true
	})
	return order
}

func (g *Graph) resetVisited() {
	g.Nodes(func(h NodeHandle) bool {
		g.nodes.Ptr(arena.Handle(h)).visited = false
		return true
	})
}

func (g *Graph) topoDFS(order []NodeHandle, h NodeHandle) []NodeHandle {
	g.nodes.Ptr(arena.Handle(h)).visited = true
	g.Fanouts(h, func(eh EdgeHandle) bool {
		successor := g.To(eh)
		if !g.nodes.MustGet(arena.Handle(successor)).visited {
			order = g.topoDFS(order, successor)
		}
		return true
	})
	return append(order, h)
}

// HasCycle reports whether g currently contains a cycle, i.e. whether the
// DFS topological order in [Graph.ReverseTopoOrder] visits fewer than
// [Graph.NumNodes] nodes.
func (g *Graph) HasCycle() bool {
	return len(g.ReverseTopoOrder()) != g.NumNodes()
}

// Level describes one BFS wave of [Graph.LevelDecomposition]: the nodes that
// became ready (indegree zero, counting only not-yet-visited predecessors)
// in the same wave, i.e. whose longest path from a source has the same
// length.
type Level struct {
	Nodes []NodeHandle
}

// LevelDecomposition computes indegrees, enqueues every source (zero-fanin
// node) at level 0, and pops nodes per level in FIFO order, the same way
// each subsequent call re-derives it. It assigns each node's level, its lid
// (index within its level), and a strictly increasing topoID in dequeue
// order. It returns [ErrCycleDetected] if fewer than [Graph.NumNodes] nodes
// are visited.
func (g *Graph) LevelDecomposition() ([]Level, error) {
	indegree := make(map[NodeHandle]int)
	queue := make([]NodeHandle, 0, g.NumNodes())
	g.Nodes(func(h NodeHandle) bool {
		d := g.FaninDegree(h)
		indegree[h] = d
		if d == 0 {
			queue = append(queue, h)
		}
		return true
	})

	var levels []Level
	visited := 0
	topoID := 0
	for len(queue) > 0 {
		cur := queue
		queue = nil
		lvl := Level{Nodes: make([]NodeHandle, 0, len(cur))}
		for _, h := range cur {
			n := g.nodes.Ptr(arena.Handle(h))
			n.level = len(levels)
			n.lid = len(lvl.Nodes)
			n.topoID = topoID
			lvl.Nodes = append(lvl.Nodes, h)
			topoID++
			visited++

			g.Fanouts(h, func(eh EdgeHandle) bool {
				successor := g.To(eh)
				indegree[successor]--
				if indegree[successor] == 0 {
					queue = append(queue, successor)
				}
				return true
			})
		}
		levels = append(levels, lvl)
	}

	if visited != g.NumNodes() {
		return nil, ErrCycleDetected
	}
	return levels, nil
}

// SharesTopoOrder reports whether the edge sets a and b, taken over the
// same vertex set as g, admit a common topological order: it builds the
// union multigraph of the two edge sets (duplicate edges are harmless to a
// Kahn's-algorithm topological sort) and runs BFS topological sort over it.
func (g *Graph) SharesTopoOrder(a, b []EdgeHandle) bool {
	indegree := make(map[NodeHandle]int, g.NumNodes())
	adj := make(map[NodeHandle][]NodeHandle, g.NumNodes())
	g.Nodes(func(h NodeHandle) bool {
		indegree[h] = 0
		return true
	})

	addEdge := func(from, to NodeHandle) {
		indegree[to]++
		adj[from] = append(adj[from], to)
	}
	for _, eh := range a {
		addEdge(g.From(eh), g.To(eh))
	}
	for _, eh := range b {
		addEdge(g.From(eh), g.To(eh))
	}

	queue := make([]NodeHandle, 0, g.NumNodes())
	g.Nodes(func(h NodeHandle) bool {
		if indegree[h] == 0 {
			queue = append(queue, h)
		}
		return true
	})

	visited := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		visited++
		for _, successor := range adj[cur] {
			indegree[successor]--
			if indegree[successor] == 0 {
				queue = append(queue, successor)
			}
		}
	}

	return visited == g.NumNodes()
}

// SharesTopoOrderWithOriginal reports whether the most recently computed
// stream-reshaped edge set (see [Graph.PartitionStream]) admits a common
// topological order with the original graph's edges. It is the direct
// realization of spec's compatibility check for the stream partitioner's
// own output.
func (g *Graph) SharesTopoOrderWithOriginal() bool {
	var original []EdgeHandle
	g.Edges(func(eh EdgeHandle) bool {
		original = append(original, eh)
		return true
	})
	return g.sharesTopoOrderWithReshaped(original)
}

func (g *Graph) sharesTopoOrderWithReshaped(original []EdgeHandle) bool {
	indegree := make(map[NodeHandle]int, g.NumNodes())
	adj := make(map[NodeHandle][]NodeHandle, g.NumNodes())
	g.Nodes(func(h NodeHandle) bool {
		indegree[h] = 0
		return true
	})
	for _, eh := range original {
		from, to := g.From(eh), g.To(eh)
		indegree[to]++
		adj[from] = append(adj[from], to)
	}
	g.Nodes(func(h NodeHandle) bool {
		n := g.nodes.MustGet(arena.Handle(h))
		for _, successor := range n.reshapedFanout {
			indegree[successor]++
			adj[h] = append(adj[h], successor)
		}
		return true
	})

	queue := make([]NodeHandle, 0, g.NumNodes())
	g.Nodes(func(h NodeHandle) bool {
		if indegree[h] == 0 {
			queue = append(queue, h)
		}
		return true
	})
	visited := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		visited++
		for _, successor := range adj[cur] {
			indegree[successor]--
			if indegree[successor] == 0 {
				queue = append(queue, successor)
			}
		}
	}
	return visited == g.NumNodes()
}
