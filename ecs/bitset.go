package ecs

import "math/bits"

// presenceBitset holds one presence flag per entity id for a single pool.
type presenceBitset struct {
	words  []uint64
	length int
}

func newPresenceBitset(length int) *presenceBitset {
	b := &presenceBitset{}
	b.Resize(length)
	return b
}

// Resize grows the bitset to length flags. New flags are false.
func (b *presenceBitset) Resize(length int) {
	if length <= b.length {
		return
	}
	need := (length + 63) >> 6
	if need > len(b.words) {
		b.words = append(b.words, make([]uint64, need-len(b.words))...)
	}
	b.length = length
}

func (b *presenceBitset) Len() int {
	return b.length
}

// Get returns the flag for id; ids past the end read as false.
func (b *presenceBitset) Get(id EntityId) bool {
	i := id.Index()
	if i >= b.length {
		return false
	}
	return b.words[i>>6]&(uint64(1)<<(i&63)) != 0
}

// Set writes the flag for id. Callers bounds-check first.
func (b *presenceBitset) Set(id EntityId, present bool) {
	i := id.Index()
	if present {
		b.words[i>>6] |= uint64(1) << (i & 63)
	} else {
		b.words[i>>6] &^= uint64(1) << (i & 63)
	}
}

// Count returns the number of set flags.
func (b *presenceBitset) Count() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}
