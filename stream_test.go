// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package pasta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionStreamSevenNodeFan(t *testing.T) {
	g := NewGraph()
	buildSevenNodeFan(g)

	require.NoError(t, g.PartitionStream(2))
	assert.True(t, g.SharesTopoOrderWithOriginal())
}

func TestPartitionStreamZeroIsConfigError(t *testing.T) {
	g := NewGraph()
	buildSevenNodeFan(g)

	err := g.PartitionStream(0)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestPartitionStreamReshapedEdgesRespectTopoOrder(t *testing.T) {
	g := NewGraph()
	buildLinearChain(g, 30)

	require.NoError(t, g.PartitionStream(4))

	levels, err := g.LevelDecomposition()
	require.NoError(t, err)
	idOf := make(map[NodeHandle]int)
	id := 0
	for _, lvl := range levels {
		for _, h := range lvl.Nodes {
			idOf[h] = id
			id++
		}
	}

	g.Nodes(func(h NodeHandle) bool {
		g.ReshapedFanouts(h, func(succ NodeHandle) bool {
			assert.Less(t, idOf[h], idOf[succ])
			return true
		})
		return true
	})
}

func TestPartitionStreamManyBenchmarkLikeGraphs(t *testing.T) {
	for _, s := range []int{1, 2, 3, 4, 8} {
		g := NewGraph()
		buildSevenNodeFan(g)
		require.NoError(t, g.PartitionStream(s))
		assert.True(t, g.SharesTopoOrderWithOriginal(), "S=%d", s)
	}
}
