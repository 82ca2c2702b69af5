package dic

import (
	"unicode/utf16"

	"github.com/rs/zerolog/log"

	"github.com/tagomoji/tagomoji/internal/trie"
)

// ViterbiNode is a lattice vertex: a candidate morpheme spanning
// [start, start+length) with its intrinsic cost and context ids. Cost and
// Prev are filled in by the Viterbi search as the node is linked into the
// lattice; WordDic only ever produces nodes with Prev == nil.
type ViterbiNode struct {
	WordID  int32
	Start   int
	Length  int16
	Cost    int32
	LeftID  int16
	RightID int16
	IsSpace bool
	Prev    *ViterbiNode
}

// EmitNode is invoked once per lattice candidate produced during lattice
// construction.
type EmitNode func(ViterbiNode)

// WordDic is the per-word-id dictionary: context ids, intrinsic cost, and
// feature text, indexed by word id; surfaces are resolved through a
// shared trie id (several word ids may share one trie id).
type WordDic struct {
	trieSrch *trie.Searcher
	data     string
	indices  []int32

	costs       []int16
	leftIDs     []int16
	rightIDs    []int16
	dataOffsets []int32
}

// NewWordDic loads word2id, word.inf, word.dat, and word.ary.idx from dir.
func NewWordDic(dir Dir) (*WordDic, error) {
	infSize, err := dir.FileSize("word.inf")
	if err != nil {
		return nil, err
	}
	// arrayLen is derived, not stored: every one of the four per-word
	// arrays below (data_offset, left_id, right_id, cost) holds one
	// entry per real word id plus a trailing sentinel, so word.inf's
	// size alone fixes arrayLen = realWordCount + 1.
	arrayLen := int(infSize / (4 + 2 + 2 + 2))
	log.Debug().Int("array_len", arrayLen).Msg("worddic loading")

	infBuf, err := readAll(dir, "word.inf")
	if err != nil {
		return nil, err
	}

	datBuf, err := readAll(dir, "word.dat")
	if err != nil {
		return nil, err
	}
	wordData := decodeUint16Array(datBuf)

	dataOffsetsRaw := decodeInt32Array(infBuf[:4*arrayLen])
	rest := infBuf[4*arrayLen:]
	leftIDs := decodeInt16Array(rest[:2*arrayLen])
	rest = rest[2*arrayLen:]
	rightIDs := decodeInt16Array(rest[:2*arrayLen])
	rest = rest[2*arrayLen:]
	costs := decodeInt16Array(rest[:2*arrayLen])

	utf8Data, offsets := convertToUTF8Data(wordData, dataOffsetsRaw)

	trieBuf, err := dir.Open("word2id")
	if err != nil {
		return nil, err
	}
	defer trieBuf.Close()
	trieSrch, err := trie.Load(trieBuf)
	if err != nil {
		return nil, err
	}

	idxBuf, err := readAll(dir, "word.ary.idx")
	if err != nil {
		return nil, err
	}
	indices := decodeInt32Array(idxBuf)

	return &WordDic{
		trieSrch:    trieSrch,
		data:        utf8Data,
		indices:     indices,
		costs:       costs,
		leftIDs:     leftIDs,
		rightIDs:    rightIDs,
		dataOffsets: offsets,
	}, nil
}

// convertToUTF8Data converts the UTF-16 feature buffer to UTF-8 once at
// load time, recomputing offsets so that word-feature lookups afterward
// are zero-copy string slices.
func convertToUTF8Data(utf16Str []uint16, offsets []int32) (string, []int32) {
	var buf []byte
	newOffsets := make([]int32, len(offsets))
	for wordID := 0; wordID < len(offsets)-1; wordID++ {
		off := offsets[wordID]
		next := offsets[wordID+1]
		runes := utf16.Decode(utf16Str[off:next])
		buf = append(buf, []byte(string(runes))...)
		newOffsets[wordID+1] = int32(len(buf))
	}
	return string(buf), newOffsets
}

// Search runs a common-prefix search over text[start:] and emits every
// word id sharing the matched trie id as a dictionary candidate.
func (w *WordDic) Search(text []uint16, start int, emit EmitNode) {
	w.trieSrch.EachCommonPrefix(text, start, func(start, length int, trieID int32) {
		end := w.indices[trieID+1]
		for i := w.indices[trieID]; i < end; i++ {
			idx := int(i)
			emit(ViterbiNode{
				WordID:  i,
				Start:   start,
				Length:  int16(length),
				Cost:    int32(w.costs[idx]),
				LeftID:  w.leftIDs[idx],
				RightID: w.rightIDs[idx],
				IsSpace: false,
			})
		}
	})
}

// SearchFromTrieID emits every word id bucketed under an already-known
// trie id, at a caller-chosen span length. Used by the unknown-word
// module, which reuses a category's trie id rather than a literal
// surface's.
func (w *WordDic) SearchFromTrieID(trieID int32, start, wordLength int, isSpace bool, emit EmitNode) {
	end := w.indices[trieID+1]
	for i := w.indices[trieID]; i < end; i++ {
		idx := int(i)
		emit(ViterbiNode{
			WordID:  i,
			Start:   start,
			Length:  int16(wordLength),
			Cost:    int32(w.costs[idx]),
			LeftID:  w.leftIDs[idx],
			RightID: w.rightIDs[idx],
			IsSpace: isSpace,
		})
	}
}

// WordData returns the UTF-8 feature string for wordID.
func (w *WordDic) WordData(wordID int32) string {
	return w.data[w.dataOffsets[wordID]:w.dataOffsets[wordID+1]]
}

// TrieSearch exposes the underlying trie id lookup: the trie id of key in
// word2id, or -1 if key is not present.
func (w *WordDic) TrieSearch(key []uint16) int32 {
	return w.trieSrch.Search(key)
}
