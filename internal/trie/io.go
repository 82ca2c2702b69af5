package trie

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// nativeEndian mirrors Rust's byteorder::NativeEndian: the on-disk format
// is whatever the build host's endianness is, so dictionaries are not
// portable across architectures of differing endianness. See SPEC_FULL.md
// §6 for the rationale for keeping native order instead of fixing
// little-endian.
var nativeEndian binary.ByteOrder = binary.NativeEndian

// WriteTo serializes the trie in the on-disk layout from SPEC_FULL.md §4.2:
// node_count, tail_index_count, tail_code_unit_count, then beg[], base[],
// len[], check[], tail[], all in native byte order.
func (e *Encoded) WriteTo(w io.Writer) error {
	if err := writeInt32(w, int32(len(e.Base))); err != nil {
		return err
	}
	if err := writeInt32(w, int32(len(e.TailBeg))); err != nil {
		return err
	}
	if err := writeInt32(w, int32(len(e.Tail))); err != nil {
		return err
	}
	for _, v := range e.TailBeg {
		if err := writeInt32(w, v); err != nil {
			return err
		}
	}
	for _, v := range e.Base {
		if err := writeInt32(w, v); err != nil {
			return err
		}
	}
	for _, v := range e.TailLen {
		if err := writeUint16(w, v); err != nil {
			return err
		}
	}
	for _, v := range e.Check {
		if err := writeUint16(w, v); err != nil {
			return err
		}
	}
	for _, v := range e.Tail {
		if err := writeUint16(w, v); err != nil {
			return err
		}
	}
	return nil
}

func writeInt32(w io.Writer, v int32) error {
	var buf [4]byte
	nativeEndian.PutUint32(buf[:], uint32(v))
	_, err := w.Write(buf[:])
	return errors.Wrap(err, "trie: write int32")
}

func writeUint16(w io.Writer, v uint16) error {
	var buf [2]byte
	nativeEndian.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return errors.Wrap(err, "trie: write uint16")
}

// Searcher is the read-only, immutable runtime view of a double-array
// trie, as loaded from a WriteTo-produced stream.
type Searcher struct {
	keySetSize int
	base       []int32
	chck       []Code
	begs       []int32
	lens       []uint16
	tail       []Code
}

// Load reads a trie previously written by Encoded.WriteTo.
func Load(r io.Reader) (*Searcher, error) {
	nodeSz, err := readInt32(r)
	if err != nil {
		return nil, err
	}
	tindSz, err := readInt32(r)
	if err != nil {
		return nil, err
	}
	tailSz, err := readInt32(r)
	if err != nil {
		return nil, err
	}

	begs, err := readInt32Array(r, int(tindSz))
	if err != nil {
		return nil, err
	}
	base, err := readInt32Array(r, int(nodeSz))
	if err != nil {
		return nil, err
	}
	lens, err := readUint16Array(r, int(tindSz))
	if err != nil {
		return nil, err
	}
	chck, err := readUint16Array(r, int(nodeSz))
	if err != nil {
		return nil, err
	}
	tail, err := readUint16Array(r, int(tailSz))
	if err != nil {
		return nil, err
	}

	return &Searcher{
		keySetSize: int(tindSz),
		base:       base,
		chck:       chck,
		begs:       begs,
		lens:       lens,
		tail:       tail,
	}, nil
}

func readInt32(r io.Reader) (int32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, errors.Wrap(err, "trie: read int32")
	}
	return int32(nativeEndian.Uint32(buf[:])), nil
}

func readInt32Array(r io.Reader, n int) ([]int32, error) {
	out := make([]int32, n)
	for i := range out {
		v, err := readInt32(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readUint16Array(r io.Reader, n int) ([]uint16, error) {
	out := make([]uint16, n)
	buf := make([]byte, 2)
	for i := range out {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, errors.Wrap(err, "trie: read uint16")
		}
		out[i] = nativeEndian.Uint16(buf)
	}
	return out, nil
}

// Size returns the number of distinct keys stored in the trie.
func (s *Searcher) Size() int { return s.keySetSize }
