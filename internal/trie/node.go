// Package trie implements a double-array trie over UTF-16 code units:
// O(1)-per-character transitions via two parallel arrays (base/check),
// with a tail buffer absorbing non-branching suffixes.
package trie

import "math"

// Code is a UTF-16 code unit, the trie's alphabet.
type Code = uint16

const (
	// Terminate marks the end of a key. Reserved: must never appear in
	// a dictionary surface or analyzed text.
	Terminate Code = 0x0000
	// Vacant marks an unused check slot. Reserved like Terminate.
	Vacant Code = 0x0001
	// CodeLimit is the largest usable code unit value.
	CodeLimit Code = 0xFFFF
)

// baseInit is the sentinel value for an unwritten base slot.
const baseInit int32 = math.MinInt32

// tailID decodes/encodes the tail id stored in a negative base value.
// encodeTailID and decodeTailID are inverses: decodeTailID(encodeTailID(id)) == id.
func encodeTailID(id int32) int32 { return -id - 1 }
func decodeTailID(base int32) int32 { return -base - 1 }
