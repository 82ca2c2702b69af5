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

// KeyPrefix marks a char-category name as a reserved trie key, distinct
// from every real CSV surface (no dictionary surface legitimately starts
// with a control character), so the unknown-word module's category ids
// can double as trie ids without colliding with an actual word.
const KeyPrefix = "\x02"

// categoryDef is one named entry from char.def's category table, before
// it's been resolved against the word trie.
type categoryDef struct {
	id     int32
	length int32
	invoke bool
	group  bool
}

// parseCharCategoryDef reads char.def's category table (lines of
// "NAME INVOKE GROUP LENGTH"), resolving each name's reserved trie key to
// its id via srch. Lines starting with '0' belong to the range table
// (parsed separately by buildCodeCategoryMap) and are skipped here.
func parseCharCategoryDef(inputDir, encoding string, srch *trie.Searcher) (map[string]categoryDef, error) {
	path := filepath.Join(inputDir, "char.def")
	rl, err := newReadLine(path, encoding)
	if err != nil {
		return nil, err
	}

	out := map[string]categoryDef{}
	for {
		raw, n, err := rl.next()
		if err != nil {
			return nil, err
		}
		if n < 1 {
			break
		}
		line := strings.TrimRight(raw, "\r\n")
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "0") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, rl.parseError("Invalid char category definition (too few fields).")
		}
		name := fields[0]
		invoke, err := parseBoolFlag(fields[1], "INVOKE", rl)
		if err != nil {
			return nil, err
		}
		group, err := parseBoolFlag(fields[2], "GROUP", rl)
		if err != nil {
			return nil, err
		}
		length, err := strconv.ParseInt(fields[3], 10, 32)
		if err != nil {
			return nil, rl.parseError("%s", err)
		}
		if length < 0 {
			return nil, rl.parseError("Invalid char category definition (LENGTH must be 0 or positive integer).")
		}

		key := utf16.Encode([]rune(KeyPrefix + name))
		id := srch.Search(key)
		if id < 0 {
			return nil, rl.parseError("Category '%s' is unregistered in trie", name)
		}

		out[name] = categoryDef{id: id, length: int32(length), invoke: invoke, group: group}
	}

	if _, ok := out["DEFAULT"]; !ok {
		return nil, rl.parseError("Missing mandatory category 'DEFAULT'.")
	}
	if _, ok := out["SPACE"]; !ok {
		return nil, rl.parseError("Missing mandatory category 'SPACE'.")
	}
	return out, nil
}

func parseBoolFlag(s, field string, rl *readLine) (bool, error) {
	switch s {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, rl.parseError("Invalid char category definition (%s must be '0' or '1').", field)
	}
}

// charID is one UCS-2 code point's resolved category assignment: a
// primary category id plus a bitmask of every category (itself and any
// explicitly-listed compatible ones) it was declared under.
type charID struct {
	id   int32
	mask int32
}

func newCharID(id int32) charID {
	c := charID{id: id}
	c.add(id)
	return c
}

func (c *charID) add(id int32) {
	c.mask |= 1 << uint(id)
}

// buildCodeCategoryMap reads char.def's range table (lines starting with
// '0', of the form "0xBEG..0xEND CATEGORY [COMPAT...] # comment"),
// assigning every UCS-2 code point a primary category (defaulting to
// DEFAULT) and a compatibility bitmask over category ids.
func buildCodeCategoryMap(inputDir, encoding string, catMap map[string]categoryDef) ([]int32, []int32, error) {
	path := filepath.Join(inputDir, "char.def")
	rl, err := newReadLine(path, encoding)
	if err != nil {
		return nil, nil, err
	}

	const numChars = 0x10000
	defaultID := catMap["DEFAULT"].id
	chars := make([]charID, numChars)
	for i := range chars {
		chars[i] = newCharID(defaultID)
	}

	for {
		raw, n, err := rl.next()
		if err != nil {
			return nil, nil, err
		}
		if n < 1 {
			break
		}
		line := strings.TrimRight(raw, "\r\n")
		if line == "" || !strings.HasPrefix(line, "0") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 1 {
			return nil, nil, rl.parseError("Too few fields")
		}
		beg, end, err := parseCodeRange(fields[0], rl)
		if err != nil {
			return nil, nil, err
		}

		if len(fields) < 2 {
			return nil, nil, rl.parseError("Too few fields")
		}
		category, ok := catMap[fields[1]]
		if !ok {
			return nil, nil, rl.parseError("Category '%s' is undefined.", fields[1])
		}

		ch := newCharID(category.id)
		for _, f := range fields[2:] {
			if strings.HasPrefix(f, "#") {
				break
			}
			compat, ok := catMap[f]
			if !ok {
				return nil, nil, rl.parseError("Category '%s' is undefined.", f)
			}
			ch.add(compat.id)
		}

		for i := beg; i <= end; i++ {
			chars[i] = ch
		}
	}

	spaceID := catMap["SPACE"].id
	if chars[0x0020].id != spaceID {
		return nil, nil, rl.parseError("0x0020 is reserved for 'SPACE' category")
	}

	char2id := make([]int32, numChars)
	eqlMasks := make([]int32, numChars)
	for i, c := range chars {
		char2id[i] = c.id
		eqlMasks[i] = c.mask
	}
	return char2id, eqlMasks, nil
}

func parseCodeRange(field string, rl *readLine) (int, int, error) {
	if idx := strings.Index(field, ".."); idx >= 0 {
		beg, err := strconv.ParseInt(field[2:idx], 16, 32)
		if err != nil {
			return 0, 0, rl.parseError("%s", err)
		}
		end, err := strconv.ParseInt(field[idx+4:], 16, 32)
		if err != nil {
			return 0, 0, rl.parseError("%s", err)
		}
		if !validCodeRange(beg, end) {
			return 0, 0, rl.parseError("Wrong UCS2 code specified.")
		}
		return int(beg), int(end), nil
	}
	beg, err := strconv.ParseInt(field[2:], 16, 32)
	if err != nil {
		return 0, 0, rl.parseError("%s", err)
	}
	if !validCodeRange(beg, beg) {
		return 0, 0, rl.parseError("Wrong UCS2 code specified.")
	}
	return int(beg), int(beg), nil
}

func validCodeRange(beg, end int64) bool {
	return beg >= 0 && beg <= 0xFFFF && end >= 0 && end <= 0xFFFF && beg <= end
}

// writeCharCategory writes char.category: one (id, length, invoke, group)
// record per category, sorted by id so dic.NewCharCategory can index
// straight into the resulting slice by category id.
func writeCharCategory(outputDir string, catMap map[string]categoryDef) error {
	defs := make([]categoryDef, 0, len(catMap))
	for _, d := range catMap {
		defs = append(defs, d)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].id < defs[j].id })

	f, err := os.Create(filepath.Join(outputDir, "char.category"))
	if err != nil {
		return Wrap(err)
	}
	defer f.Close()

	for _, d := range defs {
		if err := writeInt32(f, d.id); err != nil {
			return Wrap(err)
		}
		if err := writeInt32(f, d.length); err != nil {
			return Wrap(err)
		}
		if err := writeInt32(f, boolToInt32(d.invoke)); err != nil {
			return Wrap(err)
		}
		if err := writeInt32(f, boolToInt32(d.group)); err != nil {
			return Wrap(err)
		}
	}
	return nil
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// writeCodeCategoryMap writes code2category: the char2id array followed by
// the eqlMasks array, each 0x10000 native int32 entries.
func writeCodeCategoryMap(outputDir string, char2id, eqlMasks []int32) error {
	f, err := os.Create(filepath.Join(outputDir, "code2category"))
	if err != nil {
		return Wrap(err)
	}
	defer f.Close()

	if err := writeInt32Array(f, char2id); err != nil {
		return Wrap(err)
	}
	if err := writeInt32Array(f, eqlMasks); err != nil {
		return Wrap(err)
	}
	return nil
}

// buildCharCategory ties parseCharCategoryDef and buildCodeCategoryMap
// together and writes both output files, mirroring CharCategory::build in
// the original compiler.
func buildCharCategory(inputDir, outputDir, encoding string, srch *trie.Searcher) error {
	catMap, err := parseCharCategoryDef(inputDir, encoding, srch)
	if err != nil {
		return err
	}
	char2id, eqlMasks, err := buildCodeCategoryMap(inputDir, encoding, catMap)
	if err != nil {
		return err
	}
	if err := writeCharCategory(outputDir, catMap); err != nil {
		return err
	}
	return writeCodeCategoryMap(outputDir, char2id, eqlMasks)
}
