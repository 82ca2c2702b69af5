package trie

import (
	"sort"

	"github.com/rs/zerolog/log"
)

// Build constructs a double-array trie from a list of keys and returns its
// serializable form. keys need not be pre-sorted or deduplicated; Build
// sorts and dedups a copy of them (in string order) and encodes each to
// UTF-16 internally. The returned ids assigned to each key are dense in
// [0, len(uniqueKeys)), in that sorted order.
func Build(keys []string) *Encoded {
	utf16Keys := toSortedUniqueUTF16(keys)

	b := &builder{
		streams: make([]keyStream, len(utf16Keys)),
		base:    newAutoArray[int32](baseInit),
		chck:    newAutoArray[Code](Vacant),
	}
	for i, k := range utf16Keys {
		b.streams[i] = newKeyStream(k, 0)
	}

	alloc := newAllocator()
	b.build(alloc, 0, len(b.streams), 0)

	return b.encode()
}

func toSortedUniqueUTF16(keys []string) [][]Code {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	out := make([][]Code, 0, len(sorted))
	var prev string
	for i, k := range sorted {
		if i > 0 && k == prev {
			continue
		}
		prev = k
		out = append(out, utf16Encode(k))
	}
	return out
}

func utf16Encode(s string) []Code {
	out := make([]Code, 0, len(s))
	for _, r := range s {
		if r <= 0xFFFF {
			out = append(out, Code(r))
			continue
		}
		r -= 0x10000
		out = append(out, Code(0xD800+(r>>10)), Code(0xDC00+(r&0x3FF)))
	}
	return out
}

// Encoded is the in-memory, ready-to-serialize form of a built trie.
type Encoded struct {
	Base    []int32
	Check   []Code
	TailBeg []int32
	TailLen []uint16
	Tail    []Code
	// KeyCount is the number of distinct keys the trie was built from.
	KeyCount int
}

type builder struct {
	streams []keyStream
	base    autoArray[int32]
	chck    autoArray[Code]
	begs    []int32
	lens    []uint16
	tail    []Code
}

// build recursively partitions streams[beg:end] by their next code unit,
// allocating a base offset for the distinct codes at this level and
// recursing into each sub-partition. A singleton partition below the root
// is flushed straight into the tail buffer instead of branching further;
// the root always branches, since searches read base[0] as its base offset.
func (b *builder) build(alloc *allocator, beg, end, rootIdx int) {
	if end-beg == 1 && rootIdx != 0 {
		b.insertTail(beg, rootIdx)
		return
	}

	var endList []int32
	var codeList []Code
	prev := Vacant

	for i := beg; i < end; i++ {
		cur := b.streams[i].read()
		if prev != cur {
			prev = cur
			codeList = append(codeList, cur)
			endList = append(endList, int32(i))
		}
	}
	endList = append(endList, int32(end))

	x := alloc.xCheck(codeList)
	for i, code := range codeList {
		xNode := b.setNode(code, rootIdx, x)
		b.build(alloc, int(endList[i]), int(endList[i+1]), xNode)
	}
}

func (b *builder) setNode(code Code, prev int, xNode int32) int {
	next := int(xNode) + int(code)
	b.base.setAuto(prev, xNode)
	b.chck.setAuto(next, code)
	return next
}

func (b *builder) insertTail(beg, node int) {
	rest := b.streams[beg].rest()
	b.base.setAuto(node, encodeTailID(int32(len(b.begs))))
	b.begs = append(b.begs, int32(len(b.tail)))
	b.tail = append(b.tail, rest...)
	b.lens = append(b.lens, uint16(len(rest)))
}

func (b *builder) encode() *Encoded {
	tail, begs, lens := shrinkTail(b.tail, b.begs, b.lens)

	nodeSize := b.chck.len()
	for nodeSize > 0 && b.chck.at(nodeSize-1) == Vacant {
		nodeSize--
	}
	nodeSize += int(CodeLimit)

	log.Debug().Int("node_size", nodeSize).Int("begs", len(begs)).Int("tail", len(tail)).Msg("trie encoded")

	base := make([]int32, nodeSize)
	check := make([]Code, nodeSize)
	for i := 0; i < nodeSize; i++ {
		base[i] = b.base.at(i)
		check[i] = b.chck.at(i)
	}

	return &Encoded{
		Base:     base,
		Check:    check,
		TailBeg:  begs,
		TailLen:  lens,
		Tail:     tail,
		KeyCount: len(begs),
	}
}
