// Package random is the only source of non-determinism in generation.
// Everything random goes through a Picker so a seeded Source can replace the
// default one and reproduce a run exactly.
package random

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var (
	ErrEmptyList        = errors.New("cannot pick from an empty list")
	ErrWeightMismatch   = errors.New("weights length does not match list length")
	ErrNonPositiveTotal = errors.New("weights must sum to a positive value")
)

// Source produces raw random values. Implementations need not be safe for
// concurrent use; parallel callers Fork a Picker per goroutine.
type Source interface {
	IntN(n int) int
	Float64() float64
	Uint64() uint64
}

// Picker layers uniform and weighted selection on top of a Source.
type Picker struct {
	src Source
}

// New wraps src.
func New(src Source) *Picker {
	return &Picker{src: src}
}

// NewSeeded returns a reproducible Picker: equal seeds yield equal sequences.
func NewSeeded(seed uint64) *Picker {
	return New(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// NewDefault returns a Picker seeded from the runtime's entropy.
func NewDefault() *Picker {
	return New(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// NewFromSeed picks NewSeeded for a non-zero seed and NewDefault otherwise.
func NewFromSeed(seed uint64) *Picker {
	if seed == 0 {
		return NewDefault()
	}
	return NewSeeded(seed)
}

// Next returns the next raw 64-bit value.
func (p *Picker) Next() uint64 { return p.src.Uint64() }

// IntN returns a value in [0, n). n must be positive.
func (p *Picker) IntN(n int) int { return p.src.IntN(n) }

// Float64 returns a value in [0, 1).
func (p *Picker) Float64() float64 { return p.src.Float64() }

// IntRange returns a value in [lo, hi], inclusive on both ends.
func (p *Picker) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + p.src.IntN(hi-lo+1)
}

// FloatRange returns a value in [lo, hi).
func (p *Picker) FloatRange(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + p.src.Float64()*(hi-lo)
}

// Chance reports true with probability prob.
func (p *Picker) Chance(prob float64) bool {
	return p.src.Float64() < prob
}

// Fork derives an independent Picker whose seed is drawn from p, so a
// sequence of forks is itself reproducible.
func (p *Picker) Fork() *Picker {
	return NewSeeded(p.Next())
}

// Pick returns a uniformly chosen element, or the zero value for an empty list.
func Pick[T any](p *Picker, list []T) T {
	var zero T
	if len(list) == 0 {
		return zero
	}
	return list[p.src.IntN(len(list))]
}

// WeightedPick chooses list[i] with probability weights[i] / sum(weights).
func WeightedPick[T any](p *Picker, list []T, weights []int) (T, error) {
	var zero T
	if len(list) == 0 {
		return zero, ErrEmptyList
	}
	if len(weights) != len(list) {
		return zero, fmt.Errorf("%w: %d items, %d weights", ErrWeightMismatch, len(list), len(weights))
	}

	total := 0
	for _, w := range weights {
		if w < 0 {
			return zero, fmt.Errorf("%w: negative weight %d", ErrNonPositiveTotal, w)
		}
		total += w
	}
	if total <= 0 {
		return zero, ErrNonPositiveTotal
	}

	r := p.src.IntN(total)
	for i, w := range weights {
		if r < w {
			return list[i], nil
		}
		r -= w
	}
	return list[len(list)-1], nil
}

// Sample returns k distinct elements in random order. k is clamped to
// len(list).
func Sample[T any](p *Picker, list []T, k int) []T {
	if k > len(list) {
		k = len(list)
	}
	if k <= 0 {
		return []T{}
	}
	perm := make([]T, len(list))
	copy(perm, list)
	// partial Fisher-Yates
	for i := 0; i < k; i++ {
		j := i + p.src.IntN(len(perm)-i)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm[:k]
}
