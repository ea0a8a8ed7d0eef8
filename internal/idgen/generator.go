// Package idgen produces the idempotency keys that double as transaction IDs.
package idgen

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator generates ULID-based idempotency keys. Monotonic entropy keeps
// keys unique and time-ordered even when submissions land in the same
// millisecond.
type Generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// New creates a new Generator.
func New() *Generator {
	seed := rand.New(rand.NewSource(time.Now().UnixNano()))

	return &Generator{
		entropy: ulid.Monotonic(seed, 0),
	}
}

// NewKey generates a new idempotency key.
func (g *Generator) NewKey() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String()
}
