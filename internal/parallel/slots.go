package parallel

import "math/bits"

// slotSet tracks which columns of the in-progress row have been written
// since the last reset. One bit per column, packed into uint64 words.
//
// slotSet is not safe for concurrent use; RowAssembler guards it with the
// row-buffer lock.
type slotSet struct {
	// words holds the bitmap. Bit index = column.
	words []uint64

	// n is the number of tracked slots.
	n int
}

// newSlotSet creates a slot set for n columns, all unwritten.
func newSlotSet(n int) slotSet {
	return slotSet{
		words: make([]uint64, (n+63)/64),
		n:     n,
	}
}

// mark records slot i as written. It reports false if the slot was
// already written since the last clear.
func (s *slotSet) mark(i int) bool {
	w, b := i/64, uint(i&63)
	if s.words[w]&(1<<b) != 0 {
		return false
	}
	s.words[w] |= 1 << b
	return true
}

// count returns the number of written slots.
func (s *slotSet) count() int {
	total := 0
	for _, w := range s.words {
		total += bits.OnesCount64(w)
	}
	return total
}

// firstMissing returns the lowest unwritten slot, or -1 if every slot is
// written.
func (s *slotSet) firstMissing() int {
	for i, w := range s.words {
		if w == ^uint64(0) {
			continue
		}
		idx := i*64 + bits.TrailingZeros64(^w)
		if idx < s.n {
			return idx
		}
	}
	return -1
}

// clear marks every slot as unwritten.
func (s *slotSet) clear() {
	clear(s.words)
}
