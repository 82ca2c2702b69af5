package tagger

// Morpheme is one segment of a parsed text: its surface form, the
// dictionary feature string describing it, and the UTF-16 code-unit index
// at which it starts in the original input.
type Morpheme struct {
	// Surface is the morpheme's literal text, sliced directly out of the
	// string passed to Parse.
	Surface string
	// Feature is the dictionary's feature string for this word id
	// (part-of-speech, reading, base form, ...), sliced out of the
	// dictionary's own feature buffer.
	Feature string
	// Start is the UTF-16 code-unit index of Surface's first unit within
	// the parsed text (not a UTF-8 byte offset).
	Start int
}

// Clone returns an independent copy of m that shares no backing array with
// either the text Parse was called on or the dictionary's feature buffer.
// Parse's own return value aliases both for zero-copy speed; Clone is for
// callers that need to retain a Morpheme past the lifetime of either.
func (m Morpheme) Clone() Morpheme {
	return Morpheme{
		Surface: string([]byte(m.Surface)),
		Feature: string([]byte(m.Feature)),
		Start:   m.Start,
	}
}
