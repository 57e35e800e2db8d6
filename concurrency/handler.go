// concurrency/handler.go
package concurrency

import (
	"context"
	"sync"
	"time"

	"github.com/deploymenttheory/go-graph-user-search/logger"
	"github.com/google/uuid"
)

const (
	// DefaultMaxConcurrentRequests bounds in-flight Graph calls when no limit is configured.
	DefaultMaxConcurrentRequests = 5

	// DefaultPermitTimeout is how long a caller waits for a free permit before giving up.
	DefaultPermitTimeout = 10 * time.Second
)

// ConcurrencyHandler controls the number of concurrent HTTP requests.
type ConcurrencyHandler struct {
	sem           chan struct{}
	logger        logger.Logger
	permitTimeout time.Duration
	Metrics       *ConcurrencyMetrics
}

// ConcurrencyMetrics captures counters for the client's interactions with Graph.
type ConcurrencyMetrics struct {
	TotalRequests  int64
	TotalErrors    int64
	PermitWaitTime time.Duration
	sync.Mutex
}

// NewConcurrencyHandler initializes a new ConcurrencyHandler allowing at most limit
// concurrent requests. A limit below one falls back to DefaultMaxConcurrentRequests.
func NewConcurrencyHandler(limit int, log logger.Logger, metrics *ConcurrencyMetrics) *ConcurrencyHandler {
	if limit < 1 {
		limit = DefaultMaxConcurrentRequests
	}
	if metrics == nil {
		metrics = &ConcurrencyMetrics{}
	}
	return &ConcurrencyHandler{
		sem:           make(chan struct{}, limit),
		logger:        log,
		permitTimeout: DefaultPermitTimeout,
		Metrics:       metrics,
	}
}

// Capacity returns the maximum number of permits.
func (ch *ConcurrencyHandler) Capacity() int {
	return cap(ch.sem)
}

// InUse returns the number of permits currently held.
func (ch *ConcurrencyHandler) InUse() int {
	return len(ch.sem)
}

// RecordError counts a failed request against the metrics.
func (ch *ConcurrencyHandler) RecordError() {
	ch.Metrics.Lock()
	ch.Metrics.TotalErrors++
	ch.Metrics.Unlock()
}

// Snapshot returns a copy of the current counters.
func (ch *ConcurrencyHandler) Snapshot() (totalRequests, totalErrors int64, permitWait time.Duration) {
	ch.Metrics.Lock()
	defer ch.Metrics.Unlock()
	return ch.Metrics.TotalRequests, ch.Metrics.TotalErrors, ch.Metrics.PermitWaitTime
}

// RequestIDKey is the context key under which the permit's request ID is stored.
// The same ID is sent to Graph as the client-request-id header.
type RequestIDKey struct{}

// RequestIDFromContext returns the request ID stored by AcquireConcurrencyPermit, if any.
func RequestIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(RequestIDKey{}).(uuid.UUID)
	return id, ok
}
