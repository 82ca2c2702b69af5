package tagger

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/tagomoji/tagomoji/internal/dic"
	"github.com/tagomoji/tagomoji/internal/trie"
)

var fixtureEndian binary.ByteOrder = binary.NativeEndian

// wordSpec is one dictionary entry used to build an in-memory fixture
// dictionary: a surface form plus the context ids and cost an analyzer
// would normally read out of matrix.def/CSV-compiled data.
type wordSpec struct {
	surface           string
	left, right, cost int16
	feature           string
}

// link is a single approved (prevRight, curLeft) transition in a fixture
// matrix; every unlisted pair costs defaultCost instead.
type link struct {
	prevRight, curLeft int16
	cost               int32
}

// buildFixtureDic assembles a complete binary dictionary in memory from a
// small word list and connection table, the same artifacts
// cmd/tagomoji-dictgen would have written to disk, and loads it through
// exactly the same Tagger.Open path production code uses.
func buildFixtureDic(t *testing.T, words []wordSpec, links []link, defaultCost int32, maxCode uint16) *Tagger {
	t.Helper()

	fs := afero.NewMemMapFs()
	dirPath := "/dict"

	surfaces := make([]string, len(words))
	for i, w := range words {
		surfaces[i] = w.surface
	}
	enc := trie.Build(surfaces)

	var trieBytes bytes.Buffer
	require.NoError(t, enc.WriteTo(&trieBytes))
	writeFixtureFile(t, fs, dirPath, "word2id", trieBytes.Bytes())

	// Build() assigns ids densely in sorted order of the unique surface
	// set; recover the sorted order the same way to map surface -> id.
	sortedIdx := sortedSurfaceIndex(surfaces)
	wordCount := len(words)
	arrayLen := wordCount + 1 // one trailing sentinel entry

	dataOffsets := make([]int32, arrayLen)
	leftIDs := make([]int16, arrayLen)
	rightIDs := make([]int16, arrayLen)
	costs := make([]int16, arrayLen)
	var wordData []uint16

	indices := make([]int32, arrayLen)
	for trieID, wordIdx := range sortedIdx {
		w := words[wordIdx]
		leftIDs[trieID] = w.left
		rightIDs[trieID] = w.right
		costs[trieID] = w.cost

		feature := w.feature
		for _, r := range feature {
			wordData = append(wordData, uint16(r))
		}
		dataOffsets[trieID+1] = int32(len(wordData))

		indices[trieID] = int32(trieID)
	}
	indices[wordCount] = int32(wordCount)

	infBuf := make([]byte, 0, arrayLen*10)
	infBuf = appendInt32Array(infBuf, dataOffsets)
	infBuf = appendInt16Array(infBuf, leftIDs)
	infBuf = appendInt16Array(infBuf, rightIDs)
	infBuf = appendInt16Array(infBuf, costs)
	writeFixtureFile(t, fs, dirPath, "word.inf", infBuf)

	datBuf := appendUint16Array(nil, wordData)
	writeFixtureFile(t, fs, dirPath, "word.dat", datBuf)

	idxBuf := appendInt32Array(nil, indices)
	writeFixtureFile(t, fs, dirPath, "word.ary.idx", idxBuf)

	// char.category: two categories, SPACE (id 0) and a catch-all DEFAULT
	// (id 1) that never invokes on its own, since every fixture's text is
	// fully covered by its dictionary.
	catBuf := appendInt32Array(nil, []int32{
		0, 1, 0, 0, // SPACE: id=0 length=1 invoke=false group=false
		1, 1, 0, 0, // DEFAULT: id=1 length=1 invoke=false group=false
	})
	writeFixtureFile(t, fs, dirPath, "char.category", catBuf)

	n := int(maxCode) + 1
	char2id := make([]int32, n)
	eqlMasks := make([]int32, n)
	for i := range char2id {
		char2id[i] = 1
		eqlMasks[i] = 1
	}
	char2id[dic.SpaceChar] = 0
	var mapBuf []byte
	mapBuf = appendInt32Array(mapBuf, char2id)
	mapBuf = appendInt32Array(mapBuf, eqlMasks)
	writeFixtureFile(t, fs, dirPath, "code2category", mapBuf)

	// matrix.bin: every (prevRight, curLeft) pair costs defaultCost
	// unless overridden by links.
	maxID := int32(0)
	for _, w := range words {
		if int32(w.left) > maxID {
			maxID = int32(w.left)
		}
		if int32(w.right) > maxID {
			maxID = int32(w.right)
		}
	}
	for _, l := range links {
		if int32(l.prevRight) > maxID {
			maxID = int32(l.prevRight)
		}
		if int32(l.curLeft) > maxID {
			maxID = int32(l.curLeft)
		}
	}
	size := maxID + 1
	matCost := make([]int16, size*size)
	for i := range matCost {
		matCost[i] = int16(defaultCost)
	}
	for _, l := range links {
		matCost[int32(l.curLeft)*size+int32(l.prevRight)] = int16(l.cost)
	}

	var matBuf []byte
	matBuf = appendUint32(matBuf, uint32(size))
	matBuf = appendUint32(matBuf, uint32(size))
	matBuf = appendInt16Array(matBuf, matCost)
	writeFixtureFile(t, fs, dirPath, "matrix.bin", matBuf)

	tg, err := Open(dic.NewAferoDir(fs, dirPath))
	require.NoError(t, err)
	return tg
}

// sortedSurfaceIndex returns, for each rank in sorted-unique order, the
// index into surfaces of the word occupying that rank. Mirrors
// trie.Build's own sort+dedup so fixture word ids line up with the trie
// ids Build assigns.
func sortedSurfaceIndex(surfaces []string) []int {
	type pair struct {
		s   string
		idx int
	}
	pairs := make([]pair, len(surfaces))
	for i, s := range surfaces {
		pairs[i] = pair{s, i}
	}
	for i := 1; i < len(pairs); i++ {
		for j := i; j > 0 && pairs[j].s < pairs[j-1].s; j-- {
			pairs[j], pairs[j-1] = pairs[j-1], pairs[j]
		}
	}
	out := make([]int, 0, len(pairs))
	var prev string
	for i, p := range pairs {
		if i > 0 && p.s == prev {
			continue
		}
		prev = p.s
		out = append(out, p.idx)
	}
	return out
}

func writeFixtureFile(t *testing.T, fs afero.Fs, dirPath, name string, data []byte) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, dirPath+"/"+name, data, 0o644))
}

func appendInt32Array(buf []byte, vals []int32) []byte {
	for _, v := range vals {
		buf = appendUint32(buf, uint32(v))
	}
	return buf
}

func appendInt16Array(buf []byte, vals []int16) []byte {
	for _, v := range vals {
		buf = appendUint16(buf, uint16(v))
	}
	return buf
}

func appendUint16Array(buf []byte, vals []uint16) []byte {
	for _, v := range vals {
		buf = appendUint16(buf, v)
	}
	return buf
}

func appendUint32(buf []byte, v uint32) []byte {
	var b [4]byte
	fixtureEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

func appendUint16(buf []byte, v uint16) []byte {
	var b [2]byte
	fixtureEndian.PutUint16(b[:], v)
	return append(buf, b[:]...)
}
