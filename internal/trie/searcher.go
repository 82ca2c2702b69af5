package trie

// Search returns the trie id of key, or -1 if key is not present.
func (s *Searcher) Search(key []Code) int32 {
	node := s.base[0]
	input := newKeyStream(key, 0)

	for {
		code := input.read()
		idx := int(node) + int(code)
		node = s.base[idx]

		if s.chck[idx] == code {
			if node >= 0 {
				continue
			}
			if input.eos() || s.keyExists(&input, node) {
				return decodeTailID(node)
			}
		}
		return -1
	}
}

// EmitFunc receives, for each prefix of key[start:] found in the trie: the
// search start offset, the match length in code units, and the trie id.
type EmitFunc func(start int, length int, trieID int32)

// EachCommonPrefix invokes emit once per prefix of key[start:] that is a
// stored key, in increasing-length order.
func (s *Searcher) EachCommonPrefix(key []Code, start int, emit EmitFunc) {
	node := s.base[0]
	offset := -1
	input := newKeyStream(key, start)

	for {
		code := input.read()
		offset++
		terminalIdx := int(node) + int(Terminate)

		if s.chck[terminalIdx] == Terminate {
			emit(start, offset, decodeTailID(s.base[terminalIdx]))
			if code == Terminate {
				return
			}
		}

		idx := int(node) + int(code)
		node = s.base[idx]
		if s.chck[idx] == code {
			if node >= 0 {
				continue
			}
			s.callIfKeyIncluding(&input, node, start, offset, emit)
		}
		return
	}
}

func (s *Searcher) callIfKeyIncluding(input *keyStream, node int32, start, offset int, emit EmitFunc) {
	id := int(decodeTailID(node))
	if id >= len(s.begs) || id >= len(s.lens) {
		return
	}
	if input.startsWith(s.tail, int(s.begs[id]), int(s.lens[id])) {
		emit(start, offset+int(s.lens[id])+1, int32(id))
	}
}

func (s *Searcher) keyExists(input *keyStream, node int32) bool {
	id := int(decodeTailID(node))
	beg := int(s.begs[id])
	ln := int(s.lens[id])
	rest := input.rest()
	if len(rest) != ln {
		return false
	}
	for i := 0; i < ln; i++ {
		if rest[i] != s.tail[beg+i] {
			return false
		}
	}
	return true
}
