package domain

import (
	"errors"
	"math"
	"strings"
)

// MaxQuantity is the largest amount accepted for a single branch.
const MaxQuantity = math.MaxInt32

// Branch identifies one of the three delivery locations of a client.
type Branch string

const (
	BranchA Branch = "A"
	BranchB Branch = "B"
	BranchC Branch = "C"
)

// ErrInvalidBranch is returned when a branch identifier is not A, B or C.
var ErrInvalidBranch = errors.New("branch must be A, B or C")

// ParseBranch accepts a, b, c in any case.
func ParseBranch(s string) (Branch, error) {
	switch Branch(strings.ToUpper(strings.TrimSpace(s))) {
	case BranchA:
		return BranchA, nil
	case BranchB:
		return BranchB, nil
	case BranchC:
		return BranchC, nil
	}
	return "", ErrInvalidBranch
}

// Position returns 1 for A, 2 for B and 3 for C.
func (b Branch) Position() int {
	switch b {
	case BranchA:
		return 1
	case BranchB:
		return 2
	case BranchC:
		return 3
	}
	return 0
}

// EnabledFor reports whether a client with branchCount locations collects b.
func (b Branch) EnabledFor(branchCount int) bool {
	pos := b.Position()
	return pos > 0 && pos <= branchCount
}

// Quantities are the per-branch amounts of one line.
type Quantities struct {
	A int `json:"a"`
	B int `json:"b"`
	C int `json:"c"`
}

// Get returns the quantity of branch b.
func (q Quantities) Get(b Branch) int {
	switch b {
	case BranchA:
		return q.A
	case BranchB:
		return q.B
	case BranchC:
		return q.C
	}
	return 0
}

// Set stores v for branch b.
func (q *Quantities) Set(b Branch, v int) {
	switch b {
	case BranchA:
		q.A = v
	case BranchB:
		q.B = v
	case BranchC:
		q.C = v
	}
}

// Total is A+B+C.
func (q Quantities) Total() int {
	return q.A + q.B + q.C
}

// IsZero reports whether no branch has a positive amount.
func (q Quantities) IsZero() bool {
	return q.A <= 0 && q.B <= 0 && q.C <= 0
}

// HasNegative reports whether any branch is below zero.
func (q Quantities) HasNegative() bool {
	return q.A < 0 || q.B < 0 || q.C < 0
}

// ExceedsMax reports whether any branch is above MaxQuantity.
func (q Quantities) ExceedsMax() bool {
	return q.A > MaxQuantity || q.B > MaxQuantity || q.C > MaxQuantity
}

// Masked zeroes the branches a client with branchCount locations does not collect.
func (q Quantities) Masked(branchCount int) Quantities {
	out := q
	for _, b := range []Branch{BranchA, BranchB, BranchC} {
		if !b.EnabledFor(branchCount) {
			out.Set(b, 0)
		}
	}
	return out
}
