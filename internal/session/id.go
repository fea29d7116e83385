package session

import (
	"fmt"

	"github.com/google/uuid"
)

// IDGenerator hands out session identifiers. Each Controller owns one.
type IDGenerator interface {
	NextID() string
}

// UUIDGenerator issues random UUIDs, safe across concurrent SSH sessions.
type UUIDGenerator struct{}

// NextID returns a new random UUID string.
func (UUIDGenerator) NextID() string {
	return uuid.NewString()
}

// SequenceGenerator issues prefix-1, prefix-2, ... for reproducible runs.
type SequenceGenerator struct {
	prefix string
	next   uint64
}

// NewSequenceGenerator creates a counter-based generator.
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

// NextID returns the next identifier in the sequence.
func (g *SequenceGenerator) NextID() string {
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next)
}
