package tagger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagomoji/tagomoji/internal/dic"
)

// sumomoDic builds the classic ambiguous "すもももももももものうち" fixture:
// a five-word vocabulary whose only way to fully tile the sentence at
// minimum connection cost is the well-known 7-morpheme split. Every
// off-path transition costs far more than the whole correct parse, so the
// Viterbi search has exactly one minimum.
func sumomoDic(t *testing.T) *Tagger {
	t.Helper()
	words := []wordSpec{
		{surface: "すもも", left: 1, right: 2, cost: 0, feature: "名詞,すもも"},
		{surface: "も", left: 3, right: 4, cost: 0, feature: "助詞,も"},
		{surface: "もも", left: 5, right: 6, cost: 0, feature: "名詞,もも"},
		{surface: "の", left: 7, right: 8, cost: 0, feature: "助詞,の"},
		{surface: "うち", left: 9, right: 10, cost: 0, feature: "名詞,うち"},
	}
	links := []link{
		{prevRight: 0, curLeft: 1, cost: 0},  // BOS -> すもも
		{prevRight: 2, curLeft: 3, cost: 0},  // すもも -> も
		{prevRight: 4, curLeft: 5, cost: 0},  // も -> もも
		{prevRight: 6, curLeft: 3, cost: 0},  // もも -> も
		{prevRight: 6, curLeft: 7, cost: 0},  // もも -> の
		{prevRight: 8, curLeft: 9, cost: 0},  // の -> うち
		{prevRight: 10, curLeft: 0, cost: 0}, // うち -> EOS
	}
	return buildFixtureDic(t, words, links, 10000, 0x3100)
}

func TestParse_Sumomo(t *testing.T) {
	tg := sumomoDic(t)
	morphemes := tg.Parse("すもももももももものうち")

	wantSurfaces := []string{"すもも", "も", "もも", "も", "もも", "の", "うち"}
	wantStarts := []int{0, 3, 4, 6, 7, 9, 10}

	require.Len(t, morphemes, len(wantSurfaces))
	for i, m := range morphemes {
		assert.Equal(t, wantSurfaces[i], m.Surface, "morpheme %d surface", i)
		assert.Equal(t, wantStarts[i], m.Start, "morpheme %d start", i)
	}
}

func TestWakati_Sumomo(t *testing.T) {
	tg := sumomoDic(t)
	surfaces := tg.Wakati("すもももももももものうち")
	assert.Equal(t, []string{"すもも", "も", "もも", "も", "もも", "の", "うち"}, surfaces)
}

func TestParse_Deterministic(t *testing.T) {
	tg := sumomoDic(t)
	first := tg.Parse("すもももももももものうち")
	second := tg.Parse("すもももももももものうち")
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Surface, second[i].Surface)
		assert.Equal(t, first[i].Start, second[i].Start)
	}
}

func TestParse_ByteOffsets(t *testing.T) {
	tg := sumomoDic(t)
	text := "すもももももももものうち"
	morphemes := tg.Parse(text)

	var rebuilt string
	for _, m := range morphemes {
		rebuilt += m.Surface
	}
	assert.Equal(t, text, rebuilt, "concatenated surfaces must reconstruct the parsed text exactly")
}

func TestParse_NonBMP(t *testing.T) {
	// 🍑 (U+1F351, PEACH) is outside the BMP and takes two UTF-16 code
	// units; it must round-trip as a single morpheme with the correct
	// UTF-8 byte span even though trie/lattice offsets are UTF-16-based.
	words := []wordSpec{
		{surface: "🍑", left: 1, right: 2, cost: 0, feature: "記号,桃"},
	}
	links := []link{
		{prevRight: 0, curLeft: 1, cost: 0},
		{prevRight: 2, curLeft: 0, cost: 0},
	}
	tg := buildFixtureDic(t, words, links, 10000, 0xFFFF)

	morphemes := tg.Parse("🍑")
	require.Len(t, morphemes, 1)
	assert.Equal(t, "🍑", morphemes[0].Surface)
	assert.Equal(t, 0, morphemes[0].Start)
}

func TestParse_SpaceRun(t *testing.T) {
	// A run of SPACE-category characters should thread straight through
	// the lattice at zero cost: the unknown-word module's is_space
	// candidates don't become lattice nodes at all, so "a   b" still
	// resolves to exactly two word morphemes with the space run consumed
	// in between.
	words := []wordSpec{
		{surface: "a", left: 1, right: 2, cost: 0, feature: "a"},
		{surface: "b", left: 3, right: 4, cost: 0, feature: "b"},
	}
	links := []link{
		{prevRight: 0, curLeft: 1, cost: 0},
		{prevRight: 2, curLeft: 0, cost: 0}, // a -> EOS (in case of no trailing word)
		{prevRight: 0, curLeft: 3, cost: 0}, // BOS -> b (space is cost-free, so BOS "reaches" b directly)
		{prevRight: 2, curLeft: 3, cost: 0}, // a -> b, through the space run
		{prevRight: 4, curLeft: 0, cost: 0}, // b -> EOS
	}
	tg := buildFixtureDic(t, words, links, 10000, 0x3100)

	morphemes := tg.Parse("a   b")
	require.Len(t, morphemes, 2)
	assert.Equal(t, "a", morphemes[0].Surface)
	assert.Equal(t, "b", morphemes[1].Surface)
}

func TestParse_InvokeFalseAlreadyCovered(t *testing.T) {
	// The lone word "x" fully covers the single-character input, so the
	// unknown-word module's non-invoking DEFAULT category must not fire a
	// second, redundant candidate at the same span.
	words := []wordSpec{
		{surface: "x", left: 1, right: 2, cost: 0, feature: "x"},
	}
	links := []link{
		{prevRight: 0, curLeft: 1, cost: 0},
		{prevRight: 2, curLeft: 0, cost: 0},
	}
	tg := buildFixtureDic(t, words, links, 10000, 0x3100)

	morphemes := tg.Parse("x")
	require.Len(t, morphemes, 1)
	assert.Equal(t, "x", morphemes[0].Surface)
}

func TestSpaceCategoryID(t *testing.T) {
	tg := sumomoDic(t)
	cat := tg.Unknown()
	assert.Equal(t, int32(0), cat.Category(dic.SpaceChar).ID)
}

// TestParse_MinimizesCost cross-checks the Viterbi search against an
// independently brute-forced minimum over every valid tiling of "abab"
// using the vocabulary {a, b, ab}: a flat per-transition cost plus
// per-word cost chosen so the two-token "ab,ab" tiling is uniquely
// cheapest.
func TestParse_MinimizesCost(t *testing.T) {
	words := []wordSpec{
		{surface: "a", left: 1, right: 2, cost: 3, feature: "a"},
		{surface: "b", left: 3, right: 4, cost: 5, feature: "b"},
		{surface: "ab", left: 5, right: 6, cost: 1, feature: "ab"},
	}
	tg := buildFixtureDic(t, words, nil, 2, 0x3100)

	type tiling struct {
		tokens []string
		cost   int32
	}
	nodeCost := map[string]int32{"a": 3, "b": 5, "ab": 1}
	candidates := [][]string{
		{"a", "b", "a", "b"},
		{"ab", "ab"},
		{"a", "b", "ab"},
		{"ab", "a", "b"},
	}
	var best tiling
	best.cost = -1
	for _, toks := range candidates {
		surface := ""
		for _, tok := range toks {
			surface += tok
		}
		if surface != "abab" {
			continue
		}
		cost := int32(0)
		for _, tok := range toks {
			cost += nodeCost[tok]
		}
		cost += int32(len(toks)+1) * 2 // flat per-transition cost, including BOS/EOS links
		if best.cost < 0 || cost < best.cost {
			best = tiling{tokens: toks, cost: cost}
		}
	}
	require.Equal(t, []string{"ab", "ab"}, best.tokens)

	got := tg.Wakati("abab")
	assert.Equal(t, best.tokens, got)
}
