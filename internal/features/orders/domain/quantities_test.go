package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBranch(t *testing.T) {
	for in, want := range map[string]Branch{"A": BranchA, "b": BranchB, " c ": BranchC} {
		got, err := ParseBranch(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseBranch("D")
	assert.ErrorIs(t, err, ErrInvalidBranch)
}

func TestBranch_EnabledFor(t *testing.T) {
	assert.True(t, BranchA.EnabledFor(1))
	assert.False(t, BranchB.EnabledFor(1))
	assert.True(t, BranchB.EnabledFor(2))
	assert.False(t, BranchC.EnabledFor(2))
	assert.True(t, BranchC.EnabledFor(3))
	assert.False(t, Branch("D").EnabledFor(3))
}

func TestQuantities(t *testing.T) {
	q := Quantities{A: 2, B: 1, C: 4}

	assert.Equal(t, 7, q.Total())
	assert.False(t, q.IsZero())
	assert.Equal(t, Quantities{A: 2}, q.Masked(1))
	assert.Equal(t, Quantities{A: 2, B: 1}, q.Masked(2))
	assert.Equal(t, q, q.Masked(3))

	q.Set(BranchB, 0)
	assert.Equal(t, 0, q.Get(BranchB))
	assert.True(t, Quantities{}.IsZero())
	assert.True(t, Quantities{C: -1}.HasNegative())
}
