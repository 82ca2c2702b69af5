// Package tagomoji is a Japanese morphological analyzer: given a binary
// dictionary compiled by cmd/tagomoji-dictgen, it segments text into
// morphemes using a double-array trie dictionary and a Viterbi search over
// a bigram connection-cost matrix, the same design MeCab and IPAdic-format
// dictionaries use.
package tagomoji

import (
	"github.com/tagomoji/tagomoji/internal/dic"
	"github.com/tagomoji/tagomoji/internal/tagger"
)

// Morpheme is one segment of a parsed text.
type Morpheme = tagger.Morpheme

// Tagger is a loaded dictionary ready to analyze text. A single Tagger is
// safe for concurrent use by multiple goroutines.
type Tagger = tagger.Tagger

// Dir abstracts the flat container a binary dictionary's files are read
// from — a local directory, or an archive/in-memory filesystem via
// dic.AferoDir.
type Dir = dic.Dir

// OSDir is a Dir backed by a local filesystem directory.
type OSDir = dic.OSDir

// Open loads a binary dictionary from dir and returns a ready Tagger.
func Open(dir Dir) (*Tagger, error) {
	return tagger.Open(dir)
}

// OpenDir loads a binary dictionary from a local filesystem directory.
func OpenDir(path string) (*Tagger, error) {
	return tagger.OpenDir(path)
}
