package dic

// Unknown generates lattice candidates for spans the surface dictionary
// doesn't cover, driven by the character-category table: each category
// carries a maximum grouping length and an invoke flag that gates whether
// it fires when the normal dictionary already produced candidates there.
type Unknown struct {
	category *CharCategory
	spaceID  int32
}

// NewUnknown loads the character-category table backing unknown-word
// generation.
func NewUnknown(dir Dir) (*Unknown, error) {
	category, err := NewCharCategory(dir)
	if err != nil {
		return nil, err
	}
	return &Unknown{
		category: category,
		spaceID:  category.Category(SpaceChar).ID,
	}, nil
}

// Category returns the category record assigned to code.
func (u *Unknown) Category(code uint16) *Category {
	return u.category.Category(code)
}

// Search emits unknown-word candidates starting at start. columnWasEmpty
// reports whether the lattice column at start is still empty; a category
// with Invoke == false only fires when it is, so that common entries
// (e.g. a kanji already covered by the surface dictionary) don't spawn
// a redundant unknown-word guess.
func (u *Unknown) Search(text []uint16, start int, wdic *WordDic, columnWasEmpty bool, emit EmitNode) {
	ch := text[start]
	ct := u.category.Category(ch)

	if !columnWasEmpty && !ct.Invoke {
		return
	}

	isSpace := ct.ID == u.spaceID
	limit := min(len(text), int(ct.Length)+start)
	for i := start; i < limit; i++ {
		wdic.SearchFromTrieID(ct.ID, start, (i-start)+1, isSpace, emit)
		if (i+1) != limit && !u.category.IsCompatible(ch, text[i+1]) {
			return
		}
	}

	if ct.Group && limit < len(text) {
		for i := limit; i < len(text); i++ {
			if !u.category.IsCompatible(ch, text[i]) {
				wdic.SearchFromTrieID(ct.ID, start, i-start, isSpace, emit)
				return
			}
		}
		wdic.SearchFromTrieID(ct.ID, start, len(text)-start, isSpace, emit)
	}
}
