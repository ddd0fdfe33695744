package memory

import (
	"sync"

	"github.com/artpar/thermogate/domain/usage"
	"github.com/artpar/thermogate/ports"
)

// UsageCounters is an in-memory implementation of ports.UsageCounters.
type UsageCounters struct {
	mu     sync.Mutex
	counts map[usage.Operation]uint64
}

// NewUsageCounters creates an empty counter set.
func NewUsageCounters() *UsageCounters {
	return &UsageCounters{
		counts: make(map[usage.Operation]uint64),
	}
}

// Increment adds one to the counter for op, creating it at zero first.
func (c *UsageCounters) Increment(op usage.Operation) {
	c.mu.Lock()
	c.counts[op]++
	c.mu.Unlock()
}

// Snapshot returns a copy of all counters.
func (c *UsageCounters) Snapshot() usage.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(usage.Snapshot, len(c.counts))
	for op, n := range c.counts {
		out[op] = n
	}
	return out
}

// Ensure interface compliance.
var _ ports.UsageCounters = (*UsageCounters)(nil)
