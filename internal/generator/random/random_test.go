package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeeded_Reproducible(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)
	c := NewSeeded(43)

	list := []string{"a", "b", "c", "d", "e", "f", "g"}
	var seqA, seqB, seqC []string
	for i := 0; i < 50; i++ {
		seqA = append(seqA, Pick(a, list))
		seqB = append(seqB, Pick(b, list))
		seqC = append(seqC, Pick(c, list))
	}

	assert.Equal(t, seqA, seqB)
	assert.NotEqual(t, seqA, seqC)
}

func TestFork_Reproducible(t *testing.T) {
	a := NewSeeded(7).Fork()
	b := NewSeeded(7).Fork()
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestPick_Empty(t *testing.T) {
	p := NewSeeded(1)
	assert.Equal(t, "", Pick(p, []string{}))
	assert.Equal(t, 0, Pick[int](p, nil))
}

func TestIntRange_Bounds(t *testing.T) {
	p := NewSeeded(3)
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		v := p.IntRange(5, 10)
		require.GreaterOrEqual(t, v, 5)
		require.LessOrEqual(t, v, 10)
		seen[v] = true
	}
	assert.Len(t, seen, 6)
	assert.Equal(t, 4, p.IntRange(4, 4))
	assert.Equal(t, 9, p.IntRange(9, 2))
}

func TestFloatRange_Bounds(t *testing.T) {
	p := NewSeeded(5)
	for i := 0; i < 1000; i++ {
		v := p.FloatRange(7.5, 9.5)
		require.GreaterOrEqual(t, v, 7.5)
		require.Less(t, v, 9.5)
	}
}

// ==========================
// Weighted Selection
// ==========================

func TestWeightedPick_Distribution(t *testing.T) {
	p := NewSeeded(11)
	items := []string{"Active", "InProgress", "Closed"}
	weights := []int{3, 1, 1}

	counts := map[string]int{}
	const draws = 10000
	for i := 0; i < draws; i++ {
		v, err := WeightedPick(p, items, weights)
		require.NoError(t, err)
		counts[v]++
	}

	assert.InDelta(t, 0.6, float64(counts["Active"])/draws, 0.03)
	assert.InDelta(t, 0.2, float64(counts["InProgress"])/draws, 0.03)
	assert.InDelta(t, 0.2, float64(counts["Closed"])/draws, 0.03)
}

func TestWeightedPick_ZeroWeightNeverChosen(t *testing.T) {
	p := NewSeeded(12)
	for i := 0; i < 500; i++ {
		v, err := WeightedPick(p, []string{"never", "always"}, []int{0, 4})
		require.NoError(t, err)
		assert.Equal(t, "always", v)
	}
}

func TestWeightedPick_Errors(t *testing.T) {
	p := NewSeeded(13)

	tests := []struct {
		name    string
		items   []string
		weights []int
		want    error
	}{
		{"empty list", nil, nil, ErrEmptyList},
		{"length mismatch", []string{"a", "b"}, []int{1}, ErrWeightMismatch},
		{"all zero", []string{"a", "b"}, []int{0, 0}, ErrNonPositiveTotal},
		{"negative weight", []string{"a", "b"}, []int{-1, 3}, ErrNonPositiveTotal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WeightedPick(p, tt.items, tt.weights)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSample_Distinct(t *testing.T) {
	p := NewSeeded(21)
	list := []int{1, 2, 3, 4, 5, 6, 7, 8}

	got := Sample(p, list, 5)
	assert.Len(t, got, 5)
	seen := map[int]bool{}
	for _, v := range got {
		assert.False(t, seen[v], "duplicate %d", v)
		seen[v] = true
	}

	assert.Len(t, Sample(p, list, 20), len(list))
	assert.Empty(t, Sample(p, list, 0))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, list, "input must not be mutated")
}
