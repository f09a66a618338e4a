// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package pasta

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/pasta-dag/pasta-go/internal/arena"
	"github.com/pasta-dag/pasta-go/internal/wsqueue"
)

// cedge is an edge of the cluster DAG produced by [Graph.PartitionCPasta]:
// a directed edge from cluster From to cluster To, deduplicated per
// (From, To) pair.
type cedge struct {
	from, to int
}

// MaxClusterID returns the largest cluster id assigned by the most recent
// [Graph.PartitionCPasta] call, or -1 if it has never been called
// successfully.
func (g *Graph) MaxClusterID() int {
	return g.maxClusterID
}

// ClusterID returns the cluster id assigned to h by the most recent
// [Graph.PartitionCPasta] call.
func (g *Graph) ClusterID(h NodeHandle) int {
	return int(g.nodes.MustGet(arena.Handle(h)).clusterID)
}

// ClusterMembers returns the member nodes of cluster id, in node insertion
// order.
func (g *Graph) ClusterMembers(id int) []NodeHandle {
	if id < 0 || id >= len(g.clusters) || g.clusters[id] == nil {
		return nil
	}
	return g.clusters[id].members
}

// ClusterFanouts calls yield once per distinct cluster id that a direct
// edge from cluster id points to in the cluster DAG, stopping early if
// yield returns false.
func (g *Graph) ClusterFanouts(id int, yield func(int) bool) {
	for _, ce := range g.cedges {
		if ce.from == id {
			if !yield(ce.to) {
				return
			}
		}
	}
}

// PartitionCPasta assigns every node a cluster id via the C-PASTA
// parallel work-stealing partitioner and materializes the induced cluster
// DAG. It returns [ConfigError] if the partition size has not been set via
// [Graph.SetPartitionSize]. If g contains a cycle, PartitionCPasta
// deadlocks waiting for dependency counters that never reach their target
// -- callers must run [Graph.HasCycle] first.
//
// No structural mutation of g (InsertNode, InsertEdge, RemoveNode,
// RemoveEdge) may happen concurrently with a PartitionCPasta call; only
// per-node partition fields are written, each by exactly one worker
// goroutine at a time.
//
// PartitionCPasta makes no guarantee about the order in which nodes
// receive their cluster id -- two runs over the same graph may cluster
// differently.
func (g *Graph) PartitionCPasta() error {
	if g.partitionSize == 0 {
		return &ConfigError{Param: "partition_size", Value: 0, Msg: "must be set via SetPartitionSize before partitioning"}
	}

	numNodes := g.NumNodes()
	if numNodes == 0 {
		g.maxClusterID = -1
		g.clusters = []*clusterNode{}
		g.cedges = nil
		return nil
	}

	g.Nodes(func(h NodeHandle) bool {
		n := g.nodes.Ptr(arena.Handle(h))
		n.depCnt = 0
		n.clusterID = -1
		n.cluster = nil
		return true
	})

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 1
	}
	queues := make([]wsqueue.Queue[NodeHandle], numWorkers)

	var maxClusterID atomic.Int64
	maxClusterID.Store(-1)
	clusterCnt := make([]atomic.Int64, numNodes) // at most numNodes clusters can ever be created

	var processed atomic.Int64
	g.Nodes(func(h NodeHandle) bool {
		if g.FaninDegree(h) == 0 {
			id := maxClusterID.Add(1)
			g.nodes.Ptr(arena.Handle(h)).clusterID = int32(id)
			queues[0].Push(h)
		}
		return true
	})

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		i := i
		go func() {
			defer wg.Done()
			g.cpastaWorker(i, numWorkers, int64(numNodes), &processed, &maxClusterID, clusterCnt, queues)
		}()
	}
	wg.Wait()

	g.maxClusterID = int(maxClusterID.Load())
	g.buildClusterGraph()

	if g.hasClusterCycle() {
		return ErrInvariantViolation
	}
	return nil
}

func (g *Graph) cpastaWorker(
	self, numWorkers int,
	totalNodes int64,
	processed *atomic.Int64,
	maxClusterID *atomic.Int64,
	clusterCnt []atomic.Int64,
	queues []wsqueue.Queue[NodeHandle],
) {
	for processed.Load() < totalNodes {
		h, ok := queues[self].Pop()
		if ok {
			g.cpastaProcess(self, h, processed, maxClusterID, clusterCnt, queues)
			continue
		}
		for j := 0; j < numWorkers; j++ {
			if j == self {
				continue
			}
			if h, ok = queues[j].Steal(); ok {
				break
			}
		}
		if !ok {
			continue
		}
		g.cpastaProcess(self, h, processed, maxClusterID, clusterCnt, queues)
	}
}

// cpastaProcess assigns a cluster id to h, follows the maximal linear chain
// rooted at h (a run of nodes each having exactly one fanout whose target
// has exactly one fanin), and releases every successor of the chain's last
// node whose dependency count has now been fully satisfied.
func (g *Graph) cpastaProcess(
	self int,
	h NodeHandle,
	processed *atomic.Int64,
	maxClusterID *atomic.Int64,
	clusterCnt []atomic.Int64,
	queues []wsqueue.Queue[NodeHandle],
) {
	processed.Add(1)
	g.assignClusterID(h, maxClusterID, clusterCnt)

	for g.FanoutDegree(h) == 1 {
		var successor NodeHandle
		g.Fanouts(h, func(eh EdgeHandle) bool {
			successor = g.To(eh)
			return false
		})
		if g.FaninDegree(successor) != 1 {
			break
		}
		h = successor
		g.nodes.Ptr(arena.Handle(h)).depCnt++
		processed.Add(1)
		g.assignClusterID(h, maxClusterID, clusterCnt)
	}

	g.Fanouts(h, func(eh EdgeHandle) bool {
		successor := g.To(eh)
		sn := g.nodes.Ptr(arena.Handle(successor))
		newCnt := atomic.AddInt32(&sn.depCnt, 1)
		if int(newCnt) == g.FaninDegree(successor) {
			queues[self].Push(successor)
		}
		return true
	})
}

// assignClusterID computes the desired cluster id for n (the largest
// cluster id among n's fanin predecessors, or n's own pre-assigned id for
// sources) and assigns it if that cluster still has room, otherwise
// allocates a fresh cluster id.
func (g *Graph) assignClusterID(h NodeHandle, maxClusterID *atomic.Int64, clusterCnt []atomic.Int64) {
	n := g.nodes.Ptr(arena.Handle(h))
	desired := int64(n.clusterID)

	g.Fanins(h, func(eh EdgeHandle) bool {
		dep := g.nodes.MustGet(arena.Handle(g.From(eh)))
		if int64(dep.clusterID) > desired {
			desired = int64(dep.clusterID)
		}
		return true
	})

	if clusterCnt[desired].Add(1) <= int64(g.partitionSize) {
		n.clusterID = int32(desired)
		return
	}
	newID := maxClusterID.Add(1)
	n.clusterID = int32(newID)
	clusterCnt[newID].Add(1)
}

func (g *Graph) buildClusterGraph() {
	numClusters := g.maxClusterID + 1
	g.clusters = make([]*clusterNode, numClusters)
	g.cedges = nil
	for i := range g.clusters {
		g.clusters[i] = &clusterNode{id: i}
	}

	g.Nodes(func(h NodeHandle) bool {
		n := g.nodes.Ptr(arena.Handle(h))
		cn := g.clusters[n.clusterID]
		cn.members = append(cn.members, h)
		n.cluster = cn
		return true
	})

	seen := make(map[cedge]bool)
	g.Edges(func(eh EdgeHandle) bool {
		from, to := g.From(eh), g.To(eh)
		fc := g.ClusterID(from)
		tc := g.ClusterID(to)
		if fc == tc {
			return true
		}
		ce := cedge{from: fc, to: tc}
		if !seen[ce] {
			seen[ce] = true
			g.cedges = append(g.cedges, ce)
		}
		return true
	})
}

func (g *Graph) hasClusterCycle() bool {
	numClusters := len(g.clusters)
	if numClusters == 0 {
		return false
	}
	indegree := make([]int, numClusters)
	adj := make([][]int, numClusters)
	for _, ce := range g.cedges {
		indegree[ce.to]++
		adj[ce.from] = append(adj[ce.from], ce.to)
	}
	queue := make([]int, 0, numClusters)
	for i := 0; i < numClusters; i++ {
		if indegree[i] == 0 {
			queue = append(queue, i)
		}
	}
	visited := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		visited++
		for _, s := range adj[cur] {
			indegree[s]--
			if indegree[s] == 0 {
				queue = append(queue, s)
			}
		}
	}
	return visited != numClusters
}
