// Package format implements the four line-oriented text grammars the
// router and evaluator exchange (.gmp, .gcl, .cst, .lg) plus the .lg
// writer. All I/O goes through a hackpadfs.FS rather than bare os calls —
// the same indirection the teacher uses in pkg/vector.Store — so tests
// can substitute an in-memory filesystem and a future non-CLI frontend
// (WASM, a service) can substitute something else entirely.
package format

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/hack-pad/hackpadfs"
)

// readLines loads path from fsys and splits it into raw (untrimmed of
// interior whitespace, but newline-free) lines.
func readLines(fsys hackpadfs.FS, path string) ([]string, error) {
	content, err := hackpadfs.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// isBlank reports whether a line is empty once leading/trailing
// whitespace is stripped, matching the source's `is_blank` helper.
func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// fields splits a line into whitespace-separated tokens.
func fields(line string) []string {
	return strings.Fields(line)
}
