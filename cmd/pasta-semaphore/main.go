// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Command pasta-semaphore runs a circuit DAG under the semaphore baseline:
// the original dependency edges plus a shared capacity-K semaphore around
// every task, used as the point of comparison for the partitioners. See
// the package doc of [github.com/pasta-dag/pasta-go] for the library this
// drives.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pasta-dag/pasta-go"
	"github.com/pasta-dag/pasta-go/dagfile"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "pasta-semaphore:", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: pasta-semaphore matrix_size num_semaphore circuit_file")
	}
	flag.Parse()
	if flag.NArg() != 3 {
		flag.Usage()
		os.Exit(2)
	}

	matrixSize, err := parsePositiveInt(flag.Arg(0), "matrix_size")
	if err != nil {
		return err
	}
	numSemaphore, err := parsePositiveInt(flag.Arg(1), "num_semaphore")
	if err != nil {
		return err
	}
	circuitFile := flag.Arg(2)

	g, err := dagfile.Load(circuitFile)
	if err != nil {
		return err
	}

	fmt.Printf("benchmark: %s\n", circuitFile)
	fmt.Printf("num_nodes: %d\n", g.NumNodes())
	fmt.Printf("num_edges: %d\n", g.NumEdges())

	if g.HasCycle() {
		return pasta.ErrCycleDetected
	}

	ctx := context.Background()
	for _, k := range []int{numSemaphore, numSemaphore - 2, numSemaphore - 4, numSemaphore - 6} {
		if k <= 0 {
			break
		}
		if err := g.RunSemaphore(ctx, matrixSize, k); err != nil {
			return err
		}
		fmt.Printf("total runtime with semaphore (K=%d): %v\n", k, g.SemaphoreRuntime())
	}
	return nil
}

func parsePositiveInt(s, name string) (int, error) {
	var v int
	if _, err := fmt.Sscanf(s, "%d", &v); err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, s)
	}
	return v, nil
}
