package idgen

import (
	"github.com/google/uuid"
)

// Generator produces entity ids of the form "<prefix>-<uuid>".
type Generator struct {
	next func() string
}

// New returns a Generator backed by random UUIDs.
func New() *Generator {
	return &Generator{next: uuid.NewString}
}

// NewSequence returns a Generator that yields ids from fn. Tests use it for
// predictable ids.
func NewSequence(fn func() string) *Generator {
	return &Generator{next: fn}
}

// ID returns a fresh id with the given prefix.
func (g *Generator) ID(prefix string) string {
	return prefix + "-" + g.next()
}
