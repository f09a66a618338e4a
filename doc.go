// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package pasta implements parallelism-limited scheduling of task DAGs
// drawn from circuit-simulation style workloads. A [Graph] is a mutable
// store of nodes and edges with O(1) structural edits; on top of it, two
// reshaping strategies cap the effective parallelism of an execution to a
// caller-chosen width: C-PASTA clustering ([Graph.PartitionCPasta]), a
// parallel work-stealing partitioner that fuses nodes into bounded
// clusters, and stream partitioning ([Graph.PartitionStream]), a
// deterministic rewrite of the edge set into a fixed number of linear
// chains. [Graph.RunBeforePartition], [Graph.RunAfterPartition],
// [Graph.RunSemaphore], and [Graph.RunStreamPartition] drive execution
// under each view and accumulate wall-clock runtime per mode.
package pasta
