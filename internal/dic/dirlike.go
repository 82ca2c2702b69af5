// Package dic loads the binary dictionary artifacts a tagger.Tagger needs:
// the word trie, word-info arrays, the character-category table, and the
// connection-cost matrix.
package dic

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Dir abstracts an opaque, flat container of named blobs — a filesystem
// directory, an archive, or an in-memory fixture — over which a loaded
// dictionary's files are addressed by name (word2id, word.inf, ...).
type Dir interface {
	// Open opens path for reading. Callers are responsible for closing it.
	Open(path string) (io.ReadCloser, error)
	// FileSize returns the byte size of path.
	FileSize(path string) (int64, error)
}

// OSDir is a Dir backed directly by a local filesystem directory.
type OSDir string

func (d OSDir) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(string(d), path))
	return f, errors.Wrapf(err, "dic: open %s", path)
}

func (d OSDir) FileSize(path string) (int64, error) {
	fi, err := os.Stat(filepath.Join(string(d), path))
	if err != nil {
		return 0, errors.Wrapf(err, "dic: stat %s", path)
	}
	return fi.Size(), nil
}

// AferoDir adapts an afero.Fs rooted at dirPath into a Dir, for archive-
// backed or in-memory dictionaries (zip/tar images, test fixtures) where
// direct os.File access isn't available or desired.
type AferoDir struct {
	FS      afero.Fs
	DirPath string
}

func NewAferoDir(fs afero.Fs, dirPath string) AferoDir {
	return AferoDir{FS: fs, DirPath: dirPath}
}

func (d AferoDir) Open(path string) (io.ReadCloser, error) {
	f, err := d.FS.Open(filepath.Join(d.DirPath, path))
	return f, errors.Wrapf(err, "dic: open %s", path)
}

func (d AferoDir) FileSize(path string) (int64, error) {
	fi, err := d.FS.Stat(filepath.Join(d.DirPath, path))
	if err != nil {
		return 0, errors.Wrapf(err, "dic: stat %s", path)
	}
	return fi.Size(), nil
}

// readAll opens path, reads its full contents, and closes it.
func readAll(dir Dir, path string) ([]byte, error) {
	r, err := dir.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
