// Package idgen assigns account numbers. ULIDs are unique, sortable
// and stable across restarts, so account numbering survives a process
// restart without any shared in-memory counter.
package idgen

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// prefix keeps generated numbers recognizable as account identifiers.
const prefix = "CTA-"

// ULIDGenerator implements domain.NumberGenerator over a monotonic
// ULID source. Safe for concurrent use.
type ULIDGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewULIDGenerator builds a generator backed by crypto/rand entropy.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Next returns a fresh account number.
func (g *ULIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return prefix + ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String()
}
