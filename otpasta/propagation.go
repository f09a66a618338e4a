// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package otpasta provides OpenTelemetry and zap integration for the pasta
// DAG scheduling library. It wraps Graph operations (partition passes and
// execution-driver runs) with tracing, metrics, and structured logging
// without requiring callers to instrument each call site by hand.
package otpasta

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// OperationFunc is the shape every Graph method this package wraps conforms
// to once its non-context arguments are captured in a closure: partition
// passes and execution-driver runs all reduce to "do the thing, return an
// error."
type OperationFunc func(ctx context.Context) error

// PropagateOperation re-installs any span context already present on ctx as
// the remote span parent of the context passed to op, so spans op starts
// from that context belong to the caller's trace. A context that op builds
// on its own, not derived from the one it is given, does not carry it.
// Callers chain partition and run calls through the same propagated context
// so a single trace covers "partition, then run."
func PropagateOperation(op OperationFunc) OperationFunc {
	return func(ctx context.Context) error {
		sc := trace.SpanFromContext(ctx).SpanContext()
		if sc.IsValid() {
			ctx = trace.ContextWithRemoteSpanContext(ctx, sc)
		}
		return op(ctx)
	}
}
