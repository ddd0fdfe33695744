// Package usage provides usage counter value types.
package usage

import "sort"

// Operation names a metered operation.
type Operation string

// Metered conversion operations.
const (
	OpToCelsius    Operation = "to_celsius"
	OpToFahrenheit Operation = "to_fahrenheit"
)

// Operations returns the known operations in a stable order.
func Operations() []Operation {
	return []Operation{OpToCelsius, OpToFahrenheit}
}

// Snapshot is a point-in-time copy of the usage counters.
type Snapshot map[Operation]uint64

// Get returns the count for op, zero if never incremented.
func (s Snapshot) Get(op Operation) uint64 {
	return s[op]
}

// Total returns the sum of all counters.
func (s Snapshot) Total() uint64 {
	var total uint64
	for _, n := range s {
		total += n
	}
	return total
}

// WithKnown returns a copy that also contains every known operation,
// reporting zero for the ones never incremented.
func (s Snapshot) WithKnown() Snapshot {
	out := make(Snapshot, len(s)+2)
	for _, op := range Operations() {
		out[op] = 0
	}
	for op, n := range s {
		out[op] = n
	}
	return out
}

// Names returns the operation names in sorted order.
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s))
	for op := range s {
		names = append(names, string(op))
	}
	sort.Strings(names)
	return names
}
