package dicbuild

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/tagomoji/tagomoji/internal/trie"
)

// wordInfo is one parsed CSV/unk.def entry, keyed by the trie id its
// surface resolves to once the word2id trie is built.
type wordInfo struct {
	leftID, rightID, cost int16
	data                  []uint16
}

func (w wordInfo) less(o wordInfo) bool {
	if w.leftID != o.leftID {
		return w.leftID < o.leftID
	}
	if w.rightID != o.rightID {
		return w.rightID < o.rightID
	}
	return w.cost < o.cost
}

// buildWordIDMap collects every registrable key — unk.def's category
// surfaces under KeyPrefix, plus every *.csv surface unprefixed — sorts
// and dedups them into a trie, and writes it as word2id. Returns the
// loaded Searcher so later stages don't need to reopen the file.
func buildWordIDMap(inputDir, outputDir, delimiter, encoding string) (*trie.Searcher, error) {
	keys, err := collectKeys(inputDir, delimiter, encoding)
	if err != nil {
		return nil, err
	}

	enc := trie.Build(keys)
	f, err := os.Create(filepath.Join(outputDir, "word2id"))
	if err != nil {
		return nil, Wrap(err)
	}
	if err := enc.WriteTo(f); err != nil {
		f.Close()
		return nil, Wrap(err)
	}
	if err := f.Close(); err != nil {
		return nil, Wrap(err)
	}

	rf, err := os.Open(filepath.Join(outputDir, "word2id"))
	if err != nil {
		return nil, Wrap(err)
	}
	defer rf.Close()
	return trie.Load(rf)
}

func collectKeys(inputDir, delimiter, encoding string) ([]string, error) {
	var keys []string

	unkPath := filepath.Join(inputDir, "unk.def")
	if fileExists(unkPath) {
		err := forEachEntry(unkPath, delimiter, encoding, func(surface string, _ []string) error {
			keys = append(keys, KeyPrefix+surface)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	csvPaths, err := filepath.Glob(filepath.Join(inputDir, "*.csv"))
	if err != nil {
		return nil, Wrap(err)
	}
	sort.Strings(csvPaths)
	for _, path := range csvPaths {
		err := forEachEntry(path, delimiter, encoding, func(surface string, _ []string) error {
			keys = append(keys, surface)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return keys, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// forEachEntry reads one dictionary-entry file line by line, splitting
// each line on delimiter into SURFACE,LEFT_ID,RIGHT_ID,COST,FEATURE...,
// and invokes fn with the surface and the full field list.
func forEachEntry(path, delimiter, encoding string, fn func(surface string, fields []string) error) error {
	rl, err := newReadLine(path, encoding)
	if err != nil {
		return err
	}
	for {
		line, n, err := rl.next()
		if err != nil {
			return err
		}
		if n < 1 {
			return nil
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		fields := strings.Split(line, delimiter)
		if len(fields) < 4 {
			return rl.parseError("Invalid entry (too few fields).")
		}
		if err := fn(fields[0], fields); err != nil {
			return err
		}
	}
}

// buildWordInfo re-reads unk.def and *.csv, resolves every surface to its
// word2id trie id, buckets same-id entries together, drops duplicate
// entries that would only add ambiguity at the same context, and writes
// word.inf, word.dat and word.ary.idx.
func buildWordInfo(inputDir, outputDir, delimiter, encoding string, srch *trie.Searcher) error {
	buckets := make(map[int32][]wordInfo)
	maxID := int32(-1)

	collect := func(path string, prefix string) error {
		return forEachEntry(path, delimiter, encoding, func(surface string, fields []string) error {
			key := utf16.Encode([]rune(prefix + surface))
			id := srch.Search(key)
			if id < 0 {
				return Message("Word '%s' is unregistered in trie", surface)
			}
			left, err := strconv.ParseInt(fields[1], 10, 16)
			if err != nil {
				return Message("%s", err)
			}
			right, err := strconv.ParseInt(fields[2], 10, 16)
			if err != nil {
				return Message("%s", err)
			}
			cost, err := strconv.ParseInt(fields[3], 10, 16)
			if err != nil {
				return Message("%s", err)
			}
			feature := strings.Join(fields[4:], delimiter)

			buckets[id] = append(buckets[id], wordInfo{
				leftID:  int16(left),
				rightID: int16(right),
				cost:    int16(cost),
				data:    utf16.Encode([]rune(feature)),
			})
			if id > maxID {
				maxID = id
			}
			return nil
		})
	}

	unkPath := filepath.Join(inputDir, "unk.def")
	if fileExists(unkPath) {
		if err := collect(unkPath, KeyPrefix); err != nil {
			return err
		}
	}

	csvPaths, err := filepath.Glob(filepath.Join(inputDir, "*.csv"))
	if err != nil {
		return Wrap(err)
	}
	sort.Strings(csvPaths)
	for _, path := range csvPaths {
		if err := collect(path, ""); err != nil {
			return err
		}
	}

	wordCount := int(maxID) + 1

	dataOffsets := []int32{0}
	var leftIDs, rightIDs, costs []int16
	var indices []int32
	var wordData []uint16

	slot := int32(0)
	for id := int32(0); id < int32(wordCount); id++ {
		indices = append(indices, slot)
		for _, w := range removeUnusedEntry(buckets[id]) {
			leftIDs = append(leftIDs, w.leftID)
			rightIDs = append(rightIDs, w.rightID)
			costs = append(costs, w.cost)
			wordData = append(wordData, w.data...)
			dataOffsets = append(dataOffsets, dataOffsets[len(dataOffsets)-1]+int32(len(w.data)))
			slot++
		}
	}
	indices = append(indices, slot)

	// Each of the four per-word arrays carries one trailing sentinel
	// entry beyond the last real word id; dic.NewWordDic derives its
	// arrayLen from word.inf's total byte size on the assumption that all
	// four arrays are the same length, so the sentinel must be appended
	// to leftIDs/rightIDs/costs here too, not just dataOffsets.
	leftIDs = append(leftIDs, 0)
	rightIDs = append(rightIDs, 0)
	costs = append(costs, 0)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Wrap(err)
	}

	infFile, err := os.Create(filepath.Join(outputDir, "word.inf"))
	if err != nil {
		return Wrap(err)
	}
	defer infFile.Close()
	if err := writeInt32Array(infFile, dataOffsets); err != nil {
		return Wrap(err)
	}
	if err := writeInt16Array(infFile, leftIDs); err != nil {
		return Wrap(err)
	}
	if err := writeInt16Array(infFile, rightIDs); err != nil {
		return Wrap(err)
	}
	if err := writeInt16Array(infFile, costs); err != nil {
		return Wrap(err)
	}

	datFile, err := os.Create(filepath.Join(outputDir, "word.dat"))
	if err != nil {
		return Wrap(err)
	}
	defer datFile.Close()
	if err := writeUint16Array(datFile, wordData); err != nil {
		return Wrap(err)
	}

	idxFile, err := os.Create(filepath.Join(outputDir, "word.ary.idx"))
	if err != nil {
		return Wrap(err)
	}
	defer idxFile.Close()
	if err := writeInt32Array(idxFile, indices); err != nil {
		return Wrap(err)
	}

	return nil
}

// removeUnusedEntry collapses entries that share a (leftID, rightID) pair
// down to the cheapest-sorted survivor: since the Viterbi search always
// pays the same connection cost for two entries with identical context
// ids, only the lowest-cost one can ever win, so the others are dead
// weight. Sorted stably so ties resolve to entry order, for reproducible
// builds.
func removeUnusedEntry(list []wordInfo) []wordInfo {
	if len(list) == 0 {
		return list
	}
	sorted := append([]wordInfo(nil), list...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].less(sorted[j]) })

	out := sorted[:1]
	for _, w := range sorted[1:] {
		last := out[len(out)-1]
		if w.leftID == last.leftID && w.rightID == last.rightID {
			continue
		}
		out = append(out, w)
	}
	return out
}
