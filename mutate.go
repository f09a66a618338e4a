// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package pasta

import (
	"fmt"
	"math/rand/v2"
)

// RemoveRandomNodes collects every live node, shuffles the collection, and
// removes the first min(n, NumNodes()) of them.
func (g *Graph) RemoveRandomNodes(n int, rng *rand.Rand) {
	cand := make([]NodeHandle, 0, g.NumNodes())
	g.Nodes(func(h NodeHandle) bool {
		cand = append(cand, h)
		return true
	})
	if n > len(cand) {
		n = len(cand)
	}
	if n == 0 {
		return
	}
	rng.Shuffle(len(cand), func(i, j int) { cand[i], cand[j] = cand[j], cand[i] })
	for _, h := range cand[:n] {
		g.RemoveNode(h)
	}
}

// RemoveRandomEdges collects every live edge, shuffles the collection, and
// removes the first min(n, NumEdges()) of them.
func (g *Graph) RemoveRandomEdges(n int, rng *rand.Rand) {
	cand := make([]EdgeHandle, 0, g.NumEdges())
	g.Edges(func(h EdgeHandle) bool {
		cand = append(cand, h)
		return true
	})
	if n > len(cand) {
		n = len(cand)
	}
	if n == 0 {
		return
	}
	rng.Shuffle(len(cand), func(i, j int) { cand[i], cand[j] = cand[j], cand[i] })
	for _, h := range cand[:n] {
		g.RemoveEdge(h)
	}
}

// AddRandomEdges draws pairs (i, j) with i < j from the current forward
// topological order and inserts an edge topo[i] -> topo[j] whenever one does
// not already exist, trying up to mult*n+100 times. It returns the number
// of edges actually added, which may be less than n if the graph is already
// dense or attempts run out; this situation ([CapacityExceeded]) is
// reported by the returned count, not by an error.
func (g *Graph) AddRandomEdges(n int, rng *rand.Rand, mult int) int {
	reverseTopo := g.ReverseTopoOrder()
	numNodes := len(reverseTopo)
	if numNodes < 2 || n == 0 {
		return 0
	}
	topo := make([]NodeHandle, numNodes)
	for i, h := range reverseTopo {
		topo[numNodes-1-i] = h
	}

	maxPossible := numNodes * (numNodes - 1) / 2
	if n > maxPossible {
		n = maxPossible
	}

	added := 0
	maxTries := mult*n + 100
	for tries := 0; tries < maxTries && added < n; tries++ {
		i := rng.IntN(numNodes - 1)
		j := i + 1 + rng.IntN(numNodes-1-i)

		from, to := topo[i], topo[j]
		if g.HasEdge(from, to) {
			continue
		}
		g.InsertEdge(from, to)
		added++
	}
	return added
}

// AddRandomNodes inserts n fresh nodes with unique names derived from
// prefix, each connected to one uniformly chosen pre-existing node with a
// fair coin deciding edge direction. Because each new node starts with no
// edges of its own, either direction is guaranteed acyclic. It returns the
// handles of the newly inserted nodes.
func (g *Graph) AddRandomNodes(n int, rng *rand.Rand, prefix string) []NodeHandle {
	oldNodes := make([]NodeHandle, 0, g.NumNodes())
	taken := make(map[string]bool, g.NumNodes())
	g.Nodes(func(h NodeHandle) bool {
		oldNodes = append(oldNodes, h)
		taken[g.Name(h)] = true
		return true
	})

	newNodes := make([]NodeHandle, 0, n)
	base := g.NumNodes()
	for i, k := 0, 0; i < n; k++ {
		name := fmt.Sprintf("%s_%d_%d", prefix, base, k)
		if taken[name] {
			continue
		}
		newNodes = append(newNodes, g.InsertNode(name))
		i++
	}

	if len(oldNodes) == 0 {
		return newNodes
	}

	for _, nn := range newNodes {
		existing := oldNodes[rng.IntN(len(oldNodes))]
		if rng.IntN(2) == 0 {
			if !g.HasEdge(existing, nn) {
				g.InsertEdge(existing, nn)
			}
		} else {
			if !g.HasEdge(nn, existing) {
				g.InsertEdge(nn, existing)
			}
		}
	}
	return newNodes
}
