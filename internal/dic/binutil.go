package dic

import "encoding/binary"

// nativeEndian matches trie's on-disk byte order: host-native, not fixed
// to a portable endianness. See SPEC_FULL.md §6.
var nativeEndian binary.ByteOrder = binary.NativeEndian

func decodeInt32Array(buf []byte) []int32 {
	n := len(buf) / 4
	out := make([]int32, n)
	for i := 0; i < n; i++ {
		out[i] = int32(nativeEndian.Uint32(buf[i*4:]))
	}
	return out
}

func decodeInt16Array(buf []byte) []int16 {
	n := len(buf) / 2
	out := make([]int16, n)
	for i := 0; i < n; i++ {
		out[i] = int16(nativeEndian.Uint16(buf[i*2:]))
	}
	return out
}

func decodeUint16Array(buf []byte) []uint16 {
	n := len(buf) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = nativeEndian.Uint16(buf[i*2:])
	}
	return out
}
