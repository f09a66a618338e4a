// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otpasta

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LoggedOperation logs the start and completion of op at debug level, and
// its failure at error level, including wall-clock duration.
func LoggedOperation(operationName string, op OperationFunc) OperationFunc {
	return func(ctx context.Context) error {
		logger := zap.L()

		logger.Debug("starting operation",
			zap.String("operation", operationName),
			zap.String("component", "otpasta"))

		startTime := time.Now()
		err := op(ctx)
		duration := time.Since(startTime)

		if err != nil {
			logger.Error("operation failed",
				zap.String("operation", operationName),
				zap.String("component", "otpasta"),
				zap.Duration("duration", duration),
				zap.Error(err))
		} else {
			logger.Debug("operation completed",
				zap.String("operation", operationName),
				zap.String("component", "otpasta"),
				zap.Duration("duration", duration))
		}

		return err
	}
}
