package dicbuild

import (
	"encoding/binary"
	"io"
)

// nativeEndian matches dic's on-disk byte order: host-native, not fixed
// to a portable endianness, so a dictionary built on one machine is only
// guaranteed to load correctly on a machine of the same endianness.
var nativeEndian binary.ByteOrder = binary.NativeEndian

func writeInt32(w io.Writer, v int32) error {
	var b [4]byte
	nativeEndian.PutUint32(b[:], uint32(v))
	_, err := w.Write(b[:])
	return err
}

func writeInt16(w io.Writer, v int16) error {
	var b [2]byte
	nativeEndian.PutUint16(b[:], uint16(v))
	_, err := w.Write(b[:])
	return err
}

func writeInt32Array(w io.Writer, vals []int32) error {
	buf := make([]byte, 4*len(vals))
	for i, v := range vals {
		nativeEndian.PutUint32(buf[i*4:], uint32(v))
	}
	_, err := w.Write(buf)
	return err
}

func writeInt16Array(w io.Writer, vals []int16) error {
	buf := make([]byte, 2*len(vals))
	for i, v := range vals {
		nativeEndian.PutUint16(buf[i*2:], uint16(v))
	}
	_, err := w.Write(buf)
	return err
}

func writeUint16Array(w io.Writer, vals []uint16) error {
	buf := make([]byte, 2*len(vals))
	for i, v := range vals {
		nativeEndian.PutUint16(buf[i*2:], v)
	}
	_, err := w.Write(buf)
	return err
}
