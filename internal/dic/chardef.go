package dic

// SpaceChar is the UCS-2 code point reserved for the SPACE category.
const SpaceChar uint16 = 0x0020

// Category classifies a run of characters for unknown-word generation.
type Category struct {
	ID      int32
	Length  int32
	Invoke  bool
	Group   bool
}

// CharCategory is the runtime view of char.category + code2category: a
// per-code-point primary category and a compatibility bitmask.
type CharCategory struct {
	categories []Category
	char2id    []int32
	eqlMasks   []int32
}

// NewCharCategory loads char.category and code2category from dir.
func NewCharCategory(dir Dir) (*CharCategory, error) {
	catBuf, err := readAll(dir, "char.category")
	if err != nil {
		return nil, err
	}
	categories := decodeCategories(catBuf)

	mapBuf, err := readAll(dir, "code2category")
	if err != nil {
		return nil, err
	}
	half := len(mapBuf) / 2
	char2id := decodeInt32Array(mapBuf[:half])
	eqlMasks := decodeInt32Array(mapBuf[half:])

	return &CharCategory{categories: categories, char2id: char2id, eqlMasks: eqlMasks}, nil
}

func decodeCategories(buf []byte) []Category {
	raw := decodeInt32Array(buf)
	n := len(raw) / 4
	out := make([]Category, n)
	for i := 0; i < n; i++ {
		out[i] = Category{
			ID:     raw[i*4],
			Length: raw[i*4+1],
			Invoke: raw[i*4+2] == 1,
			Group:  raw[i*4+3] == 1,
		}
	}
	return out
}

// Category returns the category record assigned to code.
func (c *CharCategory) Category(code uint16) *Category {
	return &c.categories[c.char2id[code]]
}

// IsCompatible reports whether code1 and code2 share at least one
// compatible category.
func (c *CharCategory) IsCompatible(code1, code2 uint16) bool {
	return c.eqlMasks[code1]&c.eqlMasks[code2] != 0
}
