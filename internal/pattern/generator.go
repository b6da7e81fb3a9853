// Package pattern builds random color sequences for rounds.
package pattern

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/mindtiles/internal/model"
)

const (
	minLength = 3
	maxLength = 8
)

// Generator produces randomized color patterns.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Length returns the pattern length for a level: 3+level, capped at 8.
// Levels below 1 clamp to the minimum instead of shrinking to nothing.
func Length(level int) int {
	n := minLength + level
	if n < minLength {
		return minLength
	}
	if n > maxLength {
		return maxLength
	}
	return n
}

// Generate samples a pattern for the level, each element drawn uniformly
// from the palette with repeats allowed.
func (g *Generator) Generate(level int) model.Pattern {
	n := Length(level)
	p := make(model.Pattern, n)
	for i := range p {
		p[i] = model.Palette[g.rnd.Intn(len(model.Palette))]
	}
	return p
}
