// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otpasta

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
)

// MetricsOperation records a count, a duration histogram, and an error
// count for op under metricName, using the global OpenTelemetry meter
// provider.
func MetricsOperation(metricName string, op OperationFunc) OperationFunc {
	return func(ctx context.Context) error {
		meter := otel.GetMeterProvider().Meter("otpasta")

		counter, _ := meter.Int64Counter(metricName + ".count")
		duration, _ := meter.Float64Histogram(metricName + ".duration")

		startTime := time.Now()
		counter.Add(ctx, 1)

		err := op(ctx)

		duration.Record(ctx, time.Since(startTime).Seconds())
		if err != nil {
			errorCounter, _ := meter.Int64Counter(metricName + ".errors")
			errorCounter.Add(ctx, 1)
		}
		return err
	}
}
