package tagger

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/tagomoji/tagomoji/internal/dic"
)

// Tagger is a loaded morphological analyzer: a word dictionary, an
// unknown-word generator, and a connection-cost matrix, immutable for the
// lifetime of the instance. A single Tagger is safe for concurrent use by
// multiple goroutines — Parse and Wakati allocate all mutable lattice
// state locally per call.
type Tagger struct {
	wdc *dic.WordDic
	unk *dic.Unknown
	mtx *dic.Matrix
}

// Open loads a binary dictionary from dir and builds a Tagger.
func Open(dir dic.Dir) (*Tagger, error) {
	wdc, err := dic.NewWordDic(dir)
	if err != nil {
		return nil, err
	}
	unk, err := dic.NewUnknown(dir)
	if err != nil {
		return nil, err
	}
	mtx, err := dic.NewMatrix(dir)
	if err != nil {
		return nil, err
	}
	return &Tagger{wdc: wdc, unk: unk, mtx: mtx}, nil
}

// OpenDir loads a binary dictionary from a local filesystem directory.
func OpenDir(path string) (*Tagger, error) {
	return Open(dic.OSDir(path))
}

// Unknown exposes the unknown-word module for tests that need to probe
// category lookups independent of any Parse fixture.
func (t *Tagger) Unknown() *dic.Unknown {
	return t.unk
}

// Parse runs morphological analysis over text and returns its best-path
// segmentation. Each returned Morpheme's Surface and Feature alias text
// and the dictionary's own feature buffer respectively; call Clone to
// detach a Morpheme you need to retain past this call.
func (t *Tagger) Parse(text string) []Morpheme {
	utf16Text := utf16.Encode([]rune(text))
	utf8Offsets := utf8CharOffsets(text, len(utf16Text))

	nodes := t.parseImpl(utf16Text)
	out := make([]Morpheme, len(nodes))
	for i, n := range nodes {
		from := utf8Offsets[n.Start]
		to := utf8Offsets[n.Start+int(n.Length)]
		out[i] = Morpheme{
			Surface: text[from:to],
			Feature: t.wdc.WordData(n.WordID),
			Start:   n.Start,
		}
	}
	return out
}

// Wakati runs morphological analysis and returns only the surface forms,
// without consulting the feature buffer at all.
func (t *Tagger) Wakati(text string) []string {
	utf16Text := utf16.Encode([]rune(text))
	nodes := t.parseImpl(utf16Text)
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = string(utf16.Decode(utf16Text[n.Start : n.Start+int(n.Length)]))
	}
	return out
}

// parseImpl builds the lattice over utf16Text and returns the best-path
// morpheme nodes in left-to-right order (BOS/EOS excluded).
func (t *Tagger) parseImpl(utf16Text []uint16) []*dic.ViterbiNode {
	n := len(utf16Text)
	log.Debug().Int("utf16_len", n).Msg("tagger parsing")

	nodesAry := make([][]*dic.ViterbiNode, n+1)
	nodesAry[0] = []*dic.ViterbiNode{{}} // BOS: all fields zero, Prev nil

	lb := newLatticeBuilder(t, nodesAry)
	for i := 0; i < n; i++ {
		if len(lb.nodesAry[i]) == 0 {
			continue
		}
		lb.set(i)
		t.wdc.Search(utf16Text, i, lb.emit)
		t.unk.Search(utf16Text, i, t.wdc, lb.IsEmpty(), lb.emit)
	}

	eos := &dic.ViterbiNode{}
	t.setMinCostNode(eos, lb.nodesAry[n])

	cur := eos.Prev
	result := make([]*dic.ViterbiNode, 0, n/2)
	result = append(result, cur)
	for cur.Prev != nil {
		cur = cur.Prev
		result = append(result, cur)
	}
	result = result[:len(result)-1] // drop the BOS sentinel

	for l, r := 0, len(result)-1; l < r; l, r = l+1, r-1 {
		result[l], result[r] = result[r], result[l]
	}
	return result
}

// setMinCostNode links vn to whichever node in prevs yields the lowest
// total cost through the connection matrix, and folds that cost into
// vn.Cost in place.
func (t *Tagger) setMinCostNode(vn *dic.ViterbiNode, prevs []*dic.ViterbiNode) {
	minIdx := 0
	minCost := prevs[0].Cost + t.mtx.LinkCost(prevs[0].RightID, vn.LeftID)

	for i := 1; i < len(prevs); i++ {
		p := prevs[i]
		cost := p.Cost + t.mtx.LinkCost(p.RightID, vn.LeftID)
		if cost < minCost {
			minCost = cost
			minIdx = i
		}
	}

	vn.Cost += minCost
	vn.Prev = prevs[minIdx]
}

// utf8CharOffsets maps a UTF-16 code-unit index (0..numChars inclusive)
// to the corresponding UTF-8 byte offset in text. A UTF-16 surrogate pair
// occupies two code units but advances the byte offset only once its
// second unit is consumed, since both units decode from the same rune.
func utf8CharOffsets(text string, numChars int) []int {
	offsets := make([]int, 0, numChars+1)
	offset := 0
	for _, r := range text {
		offsets = append(offsets, offset)
		if r > 0xFFFF {
			offsets = append(offsets, offset)
		}
		offset += utf8.RuneLen(r)
	}
	offsets = append(offsets, offset)
	return offsets
}
