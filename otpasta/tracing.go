// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otpasta

import (
	"context"

	"go.opentelemetry.io/otel"
)

// TracedOperation wraps op in a span named operationName, recording the
// returned error on the span before it ends. Builds on PropagateOperation so
// a partition span and a subsequent run span started from the same context
// share that context's trace; the run span's parent is the span on the
// context, not the already-ended partition span.
func TracedOperation(operationName string, op OperationFunc) OperationFunc {
	propagated := PropagateOperation(op)
	return func(ctx context.Context) error {
		tracer := otel.Tracer("otpasta")
		ctx, span := tracer.Start(ctx, operationName)
		defer span.End()

		err := propagated(ctx)
		if err != nil {
			span.RecordError(err)
		}
		return err
	}
}
