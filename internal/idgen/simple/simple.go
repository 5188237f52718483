package simple

import (
	"context"
	"errors"
	"math"
	"sync"
)

var ErrExhausted = errors.New("id sequence exhausted")

// Generator hands out 1, 2, 3... up to its limit. Ids are never reused.
type Generator struct {
	mu    sync.Mutex
	last  int
	limit int
}

func New() *Generator {
	return NewWithLimit(math.MaxInt)
}

// NewWithLimit caps the sequence. A zero limit yields a generator that
// always fails.
func NewWithLimit(limit int) *Generator {
	//nolint:exhaustruct
	return &Generator{limit: limit}
}

func (g *Generator) GetID(_ context.Context) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.last >= g.limit {
		return 0, ErrExhausted
	}

	g.last++

	return g.last, nil
}
