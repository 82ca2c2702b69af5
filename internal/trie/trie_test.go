package trie

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildAndLoad(t *testing.T, keys []string) *Searcher {
	t.Helper()
	enc := Build(keys)
	var buf bytes.Buffer
	require.NoError(t, enc.WriteTo(&buf))
	s, err := Load(&buf)
	require.NoError(t, err)
	return s
}

func TestSearcher_RoundTrip(t *testing.T) {
	keys := []string{"すもも", "もも", "も", "の", "うち", "すもも", "すし"}
	s := buildAndLoad(t, keys)

	unique := map[string]bool{}
	for _, k := range keys {
		unique[k] = true
	}

	seen := map[int32]bool{}
	for k := range unique {
		id := s.Search(utf16Encode(k))
		assert.GreaterOrEqualf(t, id, int32(0), "key %q should be found", k)
		assert.Less(t, id, int32(len(unique)))
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Equal(t, len(unique), len(seen))

	for _, missing := range []string{"すもん", "xyz", "も茶"} {
		assert.Equal(t, int32(-1), s.Search(utf16Encode(missing)))
	}
}

func TestSearcher_EachCommonPrefix(t *testing.T) {
	keys := []string{"す", "すも", "すもも", "もも"}
	s := buildAndLoad(t, keys)

	text := utf16Encode("すももだ")
	type hit struct {
		length int
		key    string
	}
	var got []hit
	s.EachCommonPrefix(text, 0, func(start, length int, trieID int32) {
		got = append(got, hit{length: length})
	})

	want := []int{1, 2, 3} // す, すも, すもも
	require.Len(t, got, len(want))
	for i, w := range want {
		assert.Equal(t, w, got[i].length, "hit %d", i)
	}
}

func TestShrink_PreservesSearch(t *testing.T) {
	keys := []string{"helloworld", "worldworld", "fooworld", "bar"}
	s := buildAndLoad(t, keys)
	for _, k := range keys {
		assert.GreaterOrEqual(t, s.Search(utf16Encode(k)), int32(0))
	}
}

func TestSearcher_Size(t *testing.T) {
	keys := []string{"a", "b", "c", "a"}
	s := buildAndLoad(t, keys)
	assert.Equal(t, 3, s.Size())
}
