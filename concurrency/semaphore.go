// concurrency/semaphore.go
/* package provides utilities to manage concurrency control. The handler ensures no more
than a certain number of concurrent requests are sent to Microsoft Graph at the same time.
This is managed using a semaphore */
package concurrency

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AcquireConcurrencyPermit waits for a free permit, bounded by the parent context and the
// handler's permit timeout. On success it returns a derived context carrying a fresh
// request ID and the ID itself; the caller must hand the ID back to ReleaseConcurrencyPermit.
//
// Example:
//
//	ctx, requestID, err := handler.AcquireConcurrencyPermit(ctx)
//	if err != nil {
//	    return err
//	}
//	defer handler.ReleaseConcurrencyPermit(requestID)
func (ch *ConcurrencyHandler) AcquireConcurrencyPermit(ctx context.Context) (context.Context, uuid.UUID, error) {
	start := time.Now()
	requestID := uuid.New()

	ctxWithTimeout, cancel := context.WithTimeout(ctx, ch.permitTimeout)
	defer cancel()

	select {
	case ch.sem <- struct{}{}:
		waited := time.Since(start)
		ch.Metrics.Lock()
		ch.Metrics.PermitWaitTime += waited
		ch.Metrics.TotalRequests++
		ch.Metrics.Unlock()

		ch.logger.Debug("Acquired concurrency permit",
			zap.String("request_id", requestID.String()),
			zap.Duration("acquisition_time", waited),
			zap.Int("utilized_permits", len(ch.sem)),
			zap.Int("available_permits", cap(ch.sem)-len(ch.sem)),
		)

		return context.WithValue(ctx, RequestIDKey{}, requestID), requestID, nil

	case <-ctxWithTimeout.Done():
		ch.logger.Warn("Failed to acquire concurrency permit", zap.Error(ctxWithTimeout.Err()))
		return ctx, requestID, fmt.Errorf("acquiring concurrency permit: %w", ctxWithTimeout.Err())
	}
}

// ReleaseConcurrencyPermit returns a permit to the pool.
func (ch *ConcurrencyHandler) ReleaseConcurrencyPermit(requestID uuid.UUID) {
	<-ch.sem

	ch.logger.Debug("Released concurrency permit",
		zap.String("request_id", requestID.String()),
		zap.Int("utilized_permits", len(ch.sem)),
		zap.Int("available_permits", cap(ch.sem)-len(ch.sem)),
	)
}
