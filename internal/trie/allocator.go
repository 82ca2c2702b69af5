package trie

import (
	"github.com/bits-and-blooms/bitset"
)

// allocator hands out base offsets during double-array construction: given
// a sorted list of transition codes, it walks the free list from the first
// free slot past CodeLimit and takes the first base x (with x+codes[0] on
// that slot) not yet used as a base and with every slot x+c still free,
// then marks those slots used.
//
// Free slots form a doubly linked list (linkNode); used is tracked
// separately in a bitset, because a base offset can be "claimed" (used as
// someone's base) while none of its x+c children have been allocated yet
// — the two concerns don't share one bit of state.
type allocator struct {
	lnk  []linkNode
	used *bitset.BitSet
}

type linkNode struct {
	prev, next int
}

func newAllocator() *allocator {
	a := &allocator{
		lnk:  []linkNode{{0, 0}},
		used: bitset.New(0),
	}
	a.resizeLink(int(CodeLimit) * 10)
	return a
}

// xCheck returns a base offset x such that every slot x+codes[i] is free,
// for a sorted, distinct list of transition codes. It marks x used and
// unlinks each claimed child slot from the free list.
func (a *allocator) xCheck(codes []Code) int32 {
	cur := a.lnk[CodeLimit].next
	for {
		x := cur - int(codes[0])
		if x >= 0 && !a.used.Test(uint(x)) && a.canAllocate(codes, x) {
			a.used.Set(uint(x))
			for _, c := range codes {
				a.alloc(x + int(c))
			}
			return int32(x)
		}
		cur = a.lnk[cur].next
	}
}

func (a *allocator) canAllocate(codes []Code, x int) bool {
	for _, c := range codes[1:] {
		idx := x + int(c)
		if idx < len(a.lnk) && a.lnk[idx].next == 0 {
			return false
		}
	}
	return true
}

func (a *allocator) alloc(node int) {
	for node >= len(a.lnk)-1 {
		a.resizeLink(0)
	}
	p := a.lnk[node].prev
	n := a.lnk[node].next
	a.lnk[p].next = n
	a.lnk[n].prev = p
	a.lnk[node].next = 0
}

func (a *allocator) resizeLink(hint int) {
	lnkLen := len(a.lnk)
	newSize := lnkLen * 2
	if hint > newSize {
		newSize = hint
	}
	a.lnk[lnkLen-1].next = lnkLen

	for i := lnkLen; i < newSize; i++ {
		a.lnk = append(a.lnk, linkNode{prev: i - 1, next: i + 1})
	}
	a.lnk[newSize-1].next = 0
}
