package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps lightweight in-process counters for the /metrics
// endpoint. HTTP traffic is recorded by middleware; eligibility verdicts
// are recorded by the handlers that issue them.
type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	rateLimited     uint64
	totalDurationMs uint64

	checksApproved uint64
	checksDenied   uint64
	checksReview   uint64
	bulkScans      uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) RecordDecision(recommendation string) {
	switch recommendation {
	case "APPROVE":
		atomic.AddUint64(&c.checksApproved, 1)
	case "DENY":
		atomic.AddUint64(&c.checksDenied, 1)
	case "REVIEW_REQUIRED":
		atomic.AddUint64(&c.checksReview, 1)
	}
}

func (c *Collector) RecordBulkScan() {
	atomic.AddUint64(&c.bulkScans, 1)
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":       total,
		"errorsTotal":         atomic.LoadUint64(&c.errorRequests),
		"rateLimitedTotal":    atomic.LoadUint64(&c.rateLimited),
		"avgDurationMs":       avg,
		"checksApprovedTotal": atomic.LoadUint64(&c.checksApproved),
		"checksDeniedTotal":   atomic.LoadUint64(&c.checksDenied),
		"checksReviewTotal":   atomic.LoadUint64(&c.checksReview),
		"bulkScansTotal":      atomic.LoadUint64(&c.bulkScans),
	}
}
