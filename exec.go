// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package pasta

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// runtimeAccumulators holds the accumulated wall-clock runtime of each
// execution mode, in nanoseconds. A Graph may be run repeatedly (e.g.
// across incremental mutations between runs); each call adds to, rather
// than replaces, its mode's accumulator.
type runtimeAccumulators struct {
	beforePartition atomic.Int64
	afterPartition  atomic.Int64
	semaphore       atomic.Int64
	streamPartition atomic.Int64
}

// BeforePartitionRuntime returns the accumulated wall-clock runtime of every
// [Graph.RunBeforePartition] call made on g so far.
func (g *Graph) BeforePartitionRuntime() time.Duration {
	return time.Duration(g.runtimes.beforePartition.Load())
}

// AfterPartitionRuntime returns the accumulated wall-clock runtime of every
// [Graph.RunAfterPartition] call made on g so far.
func (g *Graph) AfterPartitionRuntime() time.Duration {
	return time.Duration(g.runtimes.afterPartition.Load())
}

// SemaphoreRuntime returns the accumulated wall-clock runtime of every
// [Graph.RunSemaphore] call made on g so far.
func (g *Graph) SemaphoreRuntime() time.Duration {
	return time.Duration(g.runtimes.semaphore.Load())
}

// StreamPartitionRuntime returns the accumulated wall-clock runtime of every
// [Graph.RunStreamPartition] call made on g so far.
func (g *Graph) StreamPartitionRuntime() time.Duration {
	return time.Duration(g.runtimes.streamPartition.Load())
}

// taskResult is sent by a task goroutine to the single orchestrator
// goroutine driving a run; see runDAGTasks.
type taskResult struct {
	index int
	err   error
}

// indexedTaskFunc runs the work for task index i.
type indexedTaskFunc func(ctx context.Context, i int) error

// runDAGTasksIndexed drives n tasks to completion, where successors[i]
// lists the indices that depend on task i and indegree[i] is how many
// dependencies task i itself has. Exactly one orchestrator goroutine (the
// caller) reads from the results channel and decides what to launch next;
// tasks themselves run in their own goroutines via task.
//
// Once any task fails, runDAGTasksIndexed stops launching new tasks but
// still waits for every already-launched task to finish, so no goroutine
// outlives the call. Failures inside a task are fatal for the run: the
// first error encountered is returned and the rest are discarded.
func runDAGTasksIndexed(ctx context.Context, n int, indegree []int32, successors [][]int, task indexedTaskFunc) error {
	if n == 0 {
		return nil
	}
	pending := make([]int32, n)
	copy(pending, indegree)
	results := make(chan taskResult, n)

	runOne := func(i int) {
		go func() {
			res := taskResult{index: i}
			defer func() {
				if r := recover(); r != nil {
					res.err = fmt.Errorf("%w: %v", ErrTaskPanic, r)
				}
				results <- res
			}()
			res.err = task(ctx, i)
		}()
	}

	launched := 0
	for i, d := range pending {
		if d == 0 {
			launched++
			runOne(i)
		}
	}

	var firstErr error
	received := 0
	for received < launched {
		r := <-results
		received++
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		if firstErr != nil {
			continue
		}
		for _, s := range successors[r.index] {
			pending[s]--
			if pending[s] == 0 {
				launched++
				runOne(s)
			}
		}
	}
	return firstErr
}

// runDAGTasks is runDAGTasksIndexed specialized to the common case where
// every task runs the same [PayloadFunc] against the same matrixSize, and
// (optionally) must acquire sem before running, bounding the number of
// concurrently executing payloads to sem's capacity regardless of how many
// tasks are simultaneously ready.
func runDAGTasks(ctx context.Context, n int, indegree []int32, successors [][]int, matrixSize int, payload PayloadFunc, sem chan struct{}) error {
	return runDAGTasksIndexed(ctx, n, indegree, successors, func(ctx context.Context, i int) error {
		if sem != nil {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return payload(ctx, matrixSize)
	})
}

// nodeIndexing assigns every live node of g a dense index in [0, NumNodes)
// in insertion order, so runDAGTasks can work over plain int slices.
func (g *Graph) nodeIndexing() (handles []NodeHandle, index map[NodeHandle]int) {
	handles = make([]NodeHandle, 0, g.NumNodes())
	index = make(map[NodeHandle]int, g.NumNodes())
	g.Nodes(func(h NodeHandle) bool {
		index[h] = len(handles)
		handles = append(handles, h)
		return true
	})
	return handles, index
}

func (g *Graph) runOriginalEdges(ctx context.Context, matrixSize int, sem chan struct{}) error {
	handles, index := g.nodeIndexing()
	n := len(handles)
	indegree := make([]int32, n)
	successors := make([][]int, n)
	for i, h := range handles {
		indegree[i] = int32(g.FaninDegree(h))
		g.Fanouts(h, func(eh EdgeHandle) bool {
			successors[i] = append(successors[i], index[g.To(eh)])
			return true
		})
	}
	return runDAGTasks(ctx, n, indegree, successors, matrixSize, g.payloadOrDefault(), sem)
}

// RunBeforePartition builds a runtime task per node with dependency edges
// taken directly from g's original edges and runs them to completion,
// accumulating wall-clock runtime into [Graph.BeforePartitionRuntime].
func (g *Graph) RunBeforePartition(ctx context.Context, matrixSize int) error {
	start := timeNow()
	err := g.runOriginalEdges(ctx, matrixSize, nil)
	g.runtimes.beforePartition.Add(int64(timeNow().Sub(start)))
	return err
}

// RunSemaphore builds a runtime task per node with dependency edges taken
// from g's original edges, as in [Graph.RunBeforePartition], but
// additionally requires every task to acquire a shared capacity-k semaphore
// before running and release it afterward -- the baseline parallelism cap
// used for comparison against the partitioners. It returns [ConfigError] if
// k is zero.
func (g *Graph) RunSemaphore(ctx context.Context, matrixSize, k int) error {
	if k == 0 {
		return &ConfigError{Param: "K", Value: k, Msg: "semaphore capacity must be non-zero"}
	}
	sem := make(chan struct{}, k)
	start := timeNow()
	err := g.runOriginalEdges(ctx, matrixSize, sem)
	g.runtimes.semaphore.Add(int64(timeNow().Sub(start)))
	return err
}

// RunAfterPartition builds a runtime task per cluster produced by the most
// recent [Graph.PartitionCPasta] call, with dependency edges taken from the
// cluster DAG, and runs them to completion, accumulating wall-clock runtime
// into [Graph.AfterPartitionRuntime]. Each cluster's task runs the
// installed [PayloadFunc] once per member node, matching the per-node cost
// of [Graph.RunBeforePartition] at cluster granularity. It returns
// [ConfigError] if PartitionCPasta has not been run successfully.
func (g *Graph) RunAfterPartition(ctx context.Context, matrixSize int) error {
	if g.clusters == nil {
		return &ConfigError{Param: "clusters", Value: 0, Msg: "PartitionCPasta must run successfully before RunAfterPartition"}
	}

	n := len(g.clusters)
	indegree := make([]int32, n)
	successors := make([][]int, n)
	memberCounts := make([]int, n)
	for id, cn := range g.clusters {
		memberCounts[id] = len(cn.members)
	}
	for _, ce := range g.cedges {
		indegree[ce.to]++
		successors[ce.from] = append(successors[ce.from], ce.to)
	}

	payload := g.payloadOrDefault()
	start := timeNow()
	err := runDAGTasksIndexed(ctx, n, indegree, successors, func(taskCtx context.Context, id int) error {
		// A cluster's work is the work of all its members, run serially
		// within the cluster's single task -- cluster-granularity execution
		// is the whole point of C-PASTA coarsening.
		for i := 0; i < memberCounts[id]; i++ {
			if err := payload(taskCtx, matrixSize); err != nil {
				return err
			}
		}
		return nil
	})
	g.runtimes.afterPartition.Add(int64(timeNow().Sub(start)))
	return err
}

// RunStreamPartition reshapes g via [Graph.PartitionStream] with s streams,
// then builds a runtime task per node with dependency edges taken from the
// reshaped adjacency and runs them to completion, accumulating wall-clock
// runtime into [Graph.StreamPartitionRuntime].
func (g *Graph) RunStreamPartition(ctx context.Context, matrixSize, s int) error {
	if err := g.PartitionStream(s); err != nil {
		return err
	}

	handles, index := g.nodeIndexing()
	n := len(handles)
	indegree := make([]int32, n)
	successors := make([][]int, n)
	for i, h := range handles {
		var d int32
		g.ReshapedFanins(h, func(NodeHandle) bool { d++; return true })
		indegree[i] = d
		g.ReshapedFanouts(h, func(succ NodeHandle) bool {
			successors[i] = append(successors[i], index[succ])
			return true
		})
	}

	start := timeNow()
	err := runDAGTasks(ctx, n, indegree, successors, matrixSize, g.payloadOrDefault(), nil)
	g.runtimes.streamPartition.Add(int64(timeNow().Sub(start)))
	return err
}

// timeNow is a thin indirection over time.Now so driver tests can swap in a
// deterministic clock without needing a real wall-clock delay.
var timeNow = time.Now
