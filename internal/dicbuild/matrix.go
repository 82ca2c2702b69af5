package dicbuild

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// buildMatrix reads matrix.def (a "left_num right_num" header followed by
// left_num*right_num "left_id right_id cost" lines in row-major order) and
// writes matrix.bin: the header as two native int32s, then the cost table
// permuted so right_id is the outer index, matching dic.Matrix's lookup.
func buildMatrix(inputDir, outputDir, encoding string) error {
	path := filepath.Join(inputDir, "matrix.def")
	rl, err := newReadLine(path, encoding)
	if err != nil {
		return err
	}

	header, n, err := rl.next()
	if err != nil {
		return err
	}
	if n < 1 {
		return rl.parseError("matrix.def is empty")
	}
	fields := strings.Fields(header)
	if len(fields) != 2 {
		return rl.parseError("Invalid matrix.def header (expected \"left_num right_num\").")
	}
	leftNum, err := strconv.Atoi(fields[0])
	if err != nil {
		return rl.parseError("%s", err)
	}
	rightNum, err := strconv.Atoi(fields[1])
	if err != nil {
		return rl.parseError("%s", err)
	}

	cost := make([]int16, leftNum*rightNum)
	for i := 0; i < leftNum; i++ {
		for j := 0; j < rightNum; j++ {
			line, n, err := rl.next()
			if err != nil {
				return err
			}
			if n < 1 {
				return rl.parseError("matrix.def ended before %d*%d entries were read", leftNum, rightNum)
			}
			gotI, gotJ, c, err := parseMatrixLine(line, rl)
			if err != nil {
				return err
			}
			if gotI != i || gotJ != j {
				return rl.parseError("Expected entry (%d, %d) but found (%d, %d)", i, j, gotI, gotJ)
			}
			cost[j*leftNum+i] = c
		}
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Wrap(err)
	}
	f, err := os.Create(filepath.Join(outputDir, "matrix.bin"))
	if err != nil {
		return Wrap(err)
	}
	defer f.Close()

	if err := writeInt32(f, int32(leftNum)); err != nil {
		return Wrap(err)
	}
	if err := writeInt32(f, int32(rightNum)); err != nil {
		return Wrap(err)
	}
	if err := writeInt16Array(f, cost); err != nil {
		return Wrap(err)
	}
	return nil
}

func parseMatrixLine(line string, rl *readLine) (int, int, int16, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return 0, 0, 0, rl.parseError("Invalid matrix.def entry (expected \"left_id right_id cost\").")
	}
	i, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, 0, rl.parseError("%s", err)
	}
	j, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, 0, rl.parseError("%s", err)
	}
	c, err := strconv.ParseInt(fields[2], 10, 16)
	if err != nil {
		return 0, 0, 0, rl.parseError("%s", err)
	}
	return i, j, int16(c), nil
}

// ConvertSparseToDense expands an abbreviated matrix.def — one that lists
// only the non-default (left_id, right_id, cost) triples, in any order —
// into the full dense row-major form buildMatrix expects, filling every
// unlisted pair with defaultCost. buildMatrix itself accepts only the
// fully enumerated form.
func ConvertSparseToDense(inputFile, outputFile, encoding string, defaultCost int16) error {
	rl, err := newReadLine(inputFile, encoding)
	if err != nil {
		return err
	}

	header, n, err := rl.next()
	if err != nil {
		return err
	}
	if n < 1 {
		return rl.parseError("matrix.def is empty")
	}
	fields := strings.Fields(header)
	if len(fields) != 2 {
		return rl.parseError("Invalid matrix.def header (expected \"left_num right_num\").")
	}
	leftNum, err := strconv.Atoi(fields[0])
	if err != nil {
		return rl.parseError("%s", err)
	}
	rightNum, err := strconv.Atoi(fields[1])
	if err != nil {
		return rl.parseError("%s", err)
	}

	cost := make([]int16, leftNum*rightNum)
	for i := range cost {
		cost[i] = defaultCost
	}

	for {
		line, n, err := rl.next()
		if err != nil {
			return err
		}
		if n < 1 {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		i, j, c, err := parseMatrixLine(line, rl)
		if err != nil {
			return err
		}
		if i < 0 || i >= leftNum || j < 0 || j >= rightNum {
			return rl.parseError("Entry (%d, %d) is out of bounds for a %dx%d matrix", i, j, leftNum, rightNum)
		}
		cost[i*rightNum+j] = c
	}

	out, err := os.Create(outputFile)
	if err != nil {
		return Wrap(err)
	}
	defer out.Close()

	if _, err := out.WriteString(header + "\n"); err != nil {
		return Wrap(err)
	}
	for i := 0; i < leftNum; i++ {
		for j := 0; j < rightNum; j++ {
			line := strconv.Itoa(i) + " " + strconv.Itoa(j) + " " + strconv.Itoa(int(cost[i*rightNum+j])) + "\n"
			if _, err := out.WriteString(line); err != nil {
				return Wrap(err)
			}
		}
	}
	return nil
}
