// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otpasta_test

import (
	"context"
	"fmt"
	"io"

	"github.com/pasta-dag/pasta-go"
	"github.com/pasta-dag/pasta-go/otpasta"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/trace"
)

// Example demonstrating how to trace a partition-then-run sequence.
func Example_tracing() {
	// Spans go to io.Discard so that the example's output is only what it
	// prints itself.
	exporter, _ := stdouttrace.New(stdouttrace.WithWriter(io.Discard), stdouttrace.WithPrettyPrint())
	tp := trace.NewTracerProvider(
		trace.WithSampler(trace.AlwaysSample()),
		trace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(tp)
	defer tp.Shutdown(context.Background())

	ctx, rootSpan := otel.Tracer("example").Start(context.Background(), "process-dag")
	defer rootSpan.End()

	g := pasta.NewGraph()
	n1 := g.InsertNode("load")
	n2 := g.InsertNode("compute")
	g.InsertEdge(n1, n2)
	g.SetPartitionSize(2)

	partition := otpasta.TracedOperation("partition-c-pasta", func(ctx context.Context) error {
		return g.PartitionCPasta()
	})
	run := otpasta.TracedOperation("run-after-partition", func(ctx context.Context) error {
		return g.RunAfterPartition(ctx, 4)
	})

	if err := partition(ctx); err != nil {
		fmt.Println("partition error:", err)
		return
	}
	if err := run(ctx); err != nil {
		fmt.Println("run error:", err)
		return
	}
	fmt.Println("ran", g.NumNodes(), "nodes")

	// Output:
	// ran 2 nodes
}

// Example demonstrating a fully instrumented (logged + metered + traced) run.
func Example_instrumentedOperation() {
	// Spans go to io.Discard so that the example's output is only what it
	// prints itself.
	exporter, _ := stdouttrace.New(stdouttrace.WithWriter(io.Discard), stdouttrace.WithPrettyPrint())
	tp := trace.NewTracerProvider(
		trace.WithSampler(trace.AlwaysSample()),
		trace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(tp)
	defer tp.Shutdown(context.Background())

	g := pasta.NewGraph()
	n1 := g.InsertNode("a")
	n2 := g.InsertNode("b")
	g.InsertEdge(n1, n2)

	run := otpasta.InstrumentedOperation("run-before-partition", func(ctx context.Context) error {
		return g.RunBeforePartition(ctx, 2)
	})

	if err := run(context.Background()); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("ok")

	// Output:
	// ok
}
