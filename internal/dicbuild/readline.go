package dicbuild

import (
	"bufio"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// readLine is an encoding-aware line reader for dictionary source files:
// char.def, matrix.def, unk.def, and the per-entry CSVs are all plain text
// in a caller-specified encoding (EUC-JP and Shift_JIS IPAdic releases are
// the common case), read one line at a time so parse errors can be
// attributed to an exact line number.
type readLine struct {
	scanner *bufio.Scanner
	path    string
	line    int
}

func newReadLine(path, encodingName string) (*readLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Wrap(err)
	}

	var r io.Reader = f
	if !strings.EqualFold(encodingName, "UTF-8") {
		enc, err := ianaindex.IANA.Encoding(encodingName)
		if err != nil || enc == nil {
			f.Close()
			return nil, Message("Unknown encoding; %s", encodingName)
		}
		r = transform.NewReader(f, enc.NewDecoder())
	}

	return &readLine{scanner: bufio.NewScanner(r), path: path}, nil
}

// next returns the next line without its terminator, together with its
// length plus one, so that an empty line reports 1. A length of 0 signals
// EOF.
func (rl *readLine) next() (string, int, error) {
	if !rl.scanner.Scan() {
		if err := rl.scanner.Err(); err != nil {
			return "", 0, rl.convertError(err)
		}
		return "", 0, nil
	}
	rl.line++
	s := rl.scanner.Text()
	return s, len(s) + 1, nil
}

func (rl *readLine) parseError(format string, args ...any) *Error {
	return ParseError(rl.path, rl.line, format, args...)
}

func (rl *readLine) convertError(err error) *Error {
	return rl.parseError("%s", err)
}
