// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Command pasta-incre repeatedly mutates a circuit DAG (remove N nodes,
// remove N edges, add N edges, add N nodes) and re-partitions it with a
// stream count that bounces across [1, 8], checking that the graph stays
// acyclic and compatible after every iteration.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/pasta-dag/pasta-go"
	"github.com/pasta-dag/pasta-go/dagfile"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "pasta-incre:", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: pasta-incre matrix_size num_incre_ops circuit_file")
	}
	seedFlag := flag.Uint64("seed", 42, "PRNG seed")
	iterFlag := flag.Int("iterations", 1000, "number of mutate/partition iterations")
	flag.Parse()
	if flag.NArg() != 3 {
		flag.Usage()
		os.Exit(2)
	}

	matrixSize, err := parsePositiveInt(flag.Arg(0), "matrix_size")
	if err != nil {
		return err
	}
	numIncreOps, err := parsePositiveInt(flag.Arg(1), "num_incre_ops")
	if err != nil {
		return err
	}
	circuitFile := flag.Arg(2)

	g, err := dagfile.Load(circuitFile)
	if err != nil {
		return err
	}
	if g.HasCycle() {
		return fmt.Errorf("input graph has cycle: %w", pasta.ErrCycleDetected)
	}

	fmt.Printf("num_nodes: %d\n", g.NumNodes())
	fmt.Printf("num_edges: %d\n", g.NumEdges())

	ctx := context.Background()
	rng := rand.New(rand.NewPCG(*seedFlag, *seedFlag^0x9e3779b97f4a7c15))

	streamCounts := []int{1, 2, 3, 4, 5, 6, 7, 8}
	for i := 0; i < *iterFlag; i++ {
		g.RemoveRandomNodes(numIncreOps, rng)
		g.RemoveRandomEdges(numIncreOps, rng)
		g.AddRandomEdges(numIncreOps, rng, 20)
		g.AddRandomNodes(numIncreOps, rng, "incre")

		if g.HasCycle() {
			return fmt.Errorf("iteration %d produced a cycle: %w", i, pasta.ErrInvariantViolation)
		}

		s := streamCounts[i%len(streamCounts)]
		if err := g.RunStreamPartition(ctx, matrixSize, s); err != nil {
			return fmt.Errorf("iteration %d: %w", i, err)
		}
	}

	fmt.Printf("num_nodes: %d\n", g.NumNodes())
	fmt.Printf("num_edges: %d\n", g.NumEdges())
	fmt.Printf("stream-partition runtime: %v\n", g.StreamPartitionRuntime())
	return nil
}

func parsePositiveInt(s, name string) (int, error) {
	var v int
	if _, err := fmt.Sscanf(s, "%d", &v); err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, s)
	}
	return v, nil
}
