// Package ints provides a compact set of small non-negative integers,
// used for rule reachability analysis.
package ints

const intSizeShift = 5 + (^uint(0) >> 32 & 1)
const intSize = 1 << intSizeShift

// Set is a bit set of non-negative integers.
type Set struct {
	chunks []uint
}

// NewSet creates a set containing the given items.
func NewSet(items ...int) *Set {
	result := &Set{}
	for _, item := range items {
		result.Add(item)
	}
	return result
}

func (s *Set) allocate(item int) {
	chunkCnt := (item >> intSizeShift) + 1
	for len(s.chunks) < chunkCnt {
		s.chunks = append(s.chunks, 0)
	}
}

// Add puts item into the set. item must not be negative.
func (s *Set) Add(item int) *Set {
	s.allocate(item)
	s.chunks[item>>intSizeShift] |= 1 << (uint(item) & (intSize - 1))
	return s
}

// Remove drops item from the set.
func (s *Set) Remove(item int) *Set {
	if item>>intSizeShift < len(s.chunks) {
		s.chunks[item>>intSizeShift] &= ^(uint(1) << (uint(item) & (intSize - 1)))
	}
	return s
}

// Contains reports whether item is in the set.
func (s *Set) Contains(item int) bool {
	if item < 0 || item>>intSizeShift >= len(s.chunks) {
		return false
	}
	return s.chunks[item>>intSizeShift]&(1<<(uint(item)&(intSize-1))) != 0
}

// IsEmpty reports whether the set contains no items.
func (s *Set) IsEmpty() bool {
	for _, chunk := range s.chunks {
		if chunk != 0 {
			return false
		}
	}
	return true
}

// ToSlice returns all items in ascending order.
func (s *Set) ToSlice() []int {
	result := make([]int, 0)
	item := 0
	for _, chunk := range s.chunks {
		for i := intSize; i > 0; i-- {
			if chunk&1 != 0 {
				result = append(result, item)
			}
			item++
			chunk >>= 1
		}
	}
	return result
}
