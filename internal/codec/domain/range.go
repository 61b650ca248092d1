package domain

import (
	"fmt"
	"iter"
	"math/big"
)

var one = big.NewInt(1)

// Range is an immutable span of integers starting at start and stepping by +1 when count is
// non-negative or -1 otherwise. Traversal never mutates the Range and can be repeated.
type Range struct {
	start *big.Int
	count int64
}

// NewRange creates a Range. A nil start is treated as zero.
func NewRange(start *big.Int, count int64) Range {
	s := new(big.Int)
	if start != nil {
		s.Set(start)
	}
	return Range{start: s, count: count}
}

// Start returns a copy of the first element.
func (r Range) Start() *big.Int {
	return new(big.Int).Set(r.startOrZero())
}

// End returns the exclusive end, start + count.
func (r Range) End() *big.Int {
	return new(big.Int).Add(r.startOrZero(), big.NewInt(r.count))
}

// Count returns the signed element count.
func (r Range) Count() int64 {
	return r.count
}

// Len returns the number of elements.
func (r Range) Len() int64 {
	if r.count < 0 {
		return -r.count
	}
	return r.count
}

// Ascending reports whether the range steps by +1.
func (r Range) Ascending() bool {
	return r.count >= 0
}

// Min returns the inclusive minimum.
func (r Range) Min() *big.Int {
	if r.Ascending() {
		return r.Start()
	}
	m := r.End()
	return m.Add(m, one)
}

// Max returns the inclusive maximum.
func (r Range) Max() *big.Int {
	if r.Ascending() {
		m := r.End()
		return m.Sub(m, one)
	}
	return r.Start()
}

// Contains reports whether v is an element of the range.
func (r Range) Contains(v *big.Int) bool {
	if v == nil || r.count == 0 {
		return false
	}
	return v.Cmp(r.Min()) >= 0 && v.Cmp(r.Max()) <= 0
}

// All yields (index, value) pairs in traversal order. Each value is a fresh copy.
func (r Range) All() iter.Seq2[int, *big.Int] {
	return func(yield func(int, *big.Int) bool) {
		step := one
		if !r.Ascending() {
			step = big.NewInt(-1)
		}
		cur := r.Start()
		n := r.Len()
		for i := int64(0); i < n; i++ {
			if !yield(int(i), new(big.Int).Set(cur)) {
				return
			}
			cur.Add(cur, step)
		}
	}
}

// String renders the range as [min, max] with its direction.
func (r Range) String() string {
	dir := "asc"
	if !r.Ascending() {
		dir = "desc"
	}
	return fmt.Sprintf("[%s, %s] %s", r.Min(), r.Max(), dir)
}

func (r Range) startOrZero() *big.Int {
	if r.start == nil {
		return new(big.Int)
	}
	return r.start
}
