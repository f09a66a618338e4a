// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package pasta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildLinearChain(g *Graph, n int) []NodeHandle {
	handles := make([]NodeHandle, n)
	for i := 0; i < n; i++ {
		handles[i] = g.InsertNode("n")
		if i > 0 {
			g.InsertEdge(handles[i-1], handles[i])
		}
	}
	return handles
}

func buildFullyParallel(g *Graph, n int) []NodeHandle {
	handles := make([]NodeHandle, n)
	for i := 0; i < n; i++ {
		handles[i] = g.InsertNode("n")
	}
	return handles
}

// TestCPastaLinearChain clusters a 100-node linear chain with a partition
// size of 10 and expects exactly 10 clusters of 10, chained by 9
// cross-cluster edges.
func TestCPastaLinearChain(t *testing.T) {
	g := NewGraph()
	buildLinearChain(g, 100)
	g.SetPartitionSize(10)

	require.NoError(t, g.PartitionCPasta())
	assert.Equal(t, 9, g.MaxClusterID())

	for id := 0; id <= g.MaxClusterID(); id++ {
		assert.LessOrEqual(t, len(g.ClusterMembers(id)), 10)
	}

	cedgeCount := 0
	for id := 0; id <= g.MaxClusterID(); id++ {
		g.ClusterFanouts(id, func(int) bool {
			cedgeCount++
			return true
		})
	}
	assert.Equal(t, 9, cedgeCount)
}

// TestCPastaFullyParallel checks the clustering invariants for a fully
// disconnected graph. Every node is a source, and the clustering rule only
// ever merges a node into a *predecessor's* cluster, so unrelated sources
// never share one; see DESIGN.md for why this means every cluster here
// ends up a singleton -- the binding contract checked below is cluster
// size <= partition_size and an acyclic cluster DAG, which a
// singleton-per-source outcome satisfies trivially.
func TestCPastaFullyParallel(t *testing.T) {
	g := NewGraph()
	buildFullyParallel(g, 100)
	g.SetPartitionSize(10)

	require.NoError(t, g.PartitionCPasta())
	for id := 0; id <= g.MaxClusterID(); id++ {
		assert.LessOrEqual(t, len(g.ClusterMembers(id)), 10)
	}

	cedgeCount := 0
	for id := 0; id <= g.MaxClusterID(); id++ {
		g.ClusterFanouts(id, func(int) bool {
			cedgeCount++
			return true
		})
	}
	assert.Equal(t, 0, cedgeCount)
}

func TestCPastaZeroPartitionSizeIsConfigError(t *testing.T) {
	g := NewGraph()
	buildLinearChain(g, 5)

	err := g.PartitionCPasta()
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestCPastaInvariants(t *testing.T) {
	g := NewGraph()
	n1, _, n3, n4, n5, n6, n7 := buildSevenNodeFan(g)
	g.SetPartitionSize(3)

	require.NoError(t, g.PartitionCPasta())
	for _, h := range []NodeHandle{n1, n3, n4, n5, n6, n7} {
		assert.GreaterOrEqual(t, g.ClusterID(h), 0)
	}
	for id := 0; id <= g.MaxClusterID(); id++ {
		assert.LessOrEqual(t, len(g.ClusterMembers(id)), 3)
	}
}
