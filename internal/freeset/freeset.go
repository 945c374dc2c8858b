// Package freeset provides the ordered set of released handle values used by
// tracked allocators.
//
// The set is a bitmap indexed by value. Handles are minted densely from zero,
// so the bitmap never grows past the highest handle ever dispensed and the
// memory cost is one bit per dispensed handle.
//
// NOT thread-safe. Only one goroutine should use it at a time.
package freeset

import (
	"github.com/bits-and-blooms/bitset"
)

// Range is a run of consecutive members [First, First+Len).
type Range struct {
	First uint
	Len   uint
}

// Set is an ordered set of uint values with O(1) membership and cheap
// minimum extraction.
type Set struct {
	bits  *bitset.BitSet
	count uint

	// low is a lower bound on the smallest member. Every value below it is
	// known to be absent, so scans for the minimum start here.
	low uint
}

// New returns an empty set.
func New() *Set {
	return &Set{bits: bitset.New(0)}
}

// Add inserts v. It returns false if v was already a member.
func (s *Set) Add(v uint) bool {
	if s.bits.Test(v) {
		return false
	}
	s.bits.Set(v)
	s.count++
	if s.count == 1 || v < s.low {
		s.low = v
	}
	return true
}

// Remove deletes v. It returns false if v was not a member.
func (s *Set) Remove(v uint) bool {
	if !s.bits.Test(v) {
		return false
	}
	s.bits.Clear(v)
	s.count--
	if v == s.low {
		s.low++
	}
	return true
}

// Contains reports whether v is a member.
func (s *Set) Contains(v uint) bool {
	return s.bits.Test(v)
}

// Min returns the smallest member without removing it.
func (s *Set) Min() (uint, bool) {
	if s.count == 0 {
		return 0, false
	}
	return s.bits.NextSet(s.low)
}

// PopMin removes and returns the smallest member.
func (s *Set) PopMin() (uint, bool) {
	v, ok := s.Min()
	if !ok {
		return 0, false
	}
	s.bits.Clear(v)
	s.count--
	s.low = v + 1
	return v, true
}

// Len returns the number of members.
func (s *Set) Len() uint {
	return s.count
}

// Reset removes every member and releases the bitmap.
func (s *Set) Reset() {
	s.bits = bitset.New(0)
	s.count = 0
	s.low = 0
}

// Values returns all members in ascending order.
func (s *Set) Values() []uint {
	if s.count == 0 {
		return nil
	}
	out := make([]uint, 0, s.count)
	for v, ok := s.bits.NextSet(s.low); ok; v, ok = s.bits.NextSet(v + 1) {
		out = append(out, v)
	}
	return out
}

// Ranges returns the members as sorted, coalesced runs of consecutive values.
//
//	Members: [1, 2, 3, 7, 9, 10] → Ranges: [{1,3}, {7,1}, {9,2}]
func (s *Set) Ranges() []Range {
	if s.count == 0 {
		return nil
	}

	var ranges []Range
	for first, ok := s.bits.NextSet(s.low); ok; {
		end, found := s.bits.NextClear(first)
		if !found {
			// Every bit from first to the end of the bitmap is set.
			end = s.bits.Len()
		}
		ranges = append(ranges, Range{First: first, Len: end - first})
		first, ok = s.bits.NextSet(end)
	}
	return ranges
}
