package trie

import "sort"

// shrinkTail suffix-shares identical tails: tails sorted by reversed
// content group runs whose members are suffixes of one another, so an
// entry whose slice is the suffix of the previous (lexicographically
// larger, by reversed comparison) entry reuses its storage instead of
// being appended again. Pure space optimization — search is oblivious
// to whether tails are shared.
func shrinkTail(tail []Code, beg []int32, ln []uint16) ([]Code, []int32, []uint16) {
	type tailString struct {
		id int
		s  []Code
	}

	sorted := make([]tailString, len(beg))
	for i := range beg {
		sorted[i] = tailString{id: i, s: tail[beg[i] : int(beg[i])+int(ln[i])]}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return compareReversed(sorted[i].s, sorted[j].s) < 0
	})

	newTail := make([]Code, 0, len(tail))
	newBeg := make([]int32, len(beg))
	newLen := make([]uint16, len(ln))

	for i, ts := range sorted {
		begIndex := len(newTail)
		if i > 0 && endsWith(sorted[i-1].s, ts.s) {
			begIndex -= len(ts.s)
		} else {
			newTail = append(newTail, ts.s...)
		}
		newBeg[ts.id] = int32(begIndex)
		newLen[ts.id] = uint16(len(ts.s))
	}

	return newTail, newBeg, newLen
}

// compareReversed orders two code slices by comparing from their ends,
// so that slices sharing a suffix sort adjacently.
func compareReversed(a, b []Code) int {
	i, j := len(a)-1, len(b)-1
	for {
		switch {
		case i < 0 && j < 0:
			return 0
		case i < 0:
			return 1
		case j < 0:
			return -1
		case a[i] > b[j]:
			return -1
		case a[i] < b[j]:
			return 1
		}
		i--
		j--
	}
}

func endsWith(s, suffix []Code) bool {
	if len(suffix) > len(s) {
		return false
	}
	off := len(s) - len(suffix)
	for i := range suffix {
		if s[off+i] != suffix[i] {
			return false
		}
	}
	return true
}
