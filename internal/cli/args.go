// Package cli holds the small argument-parsing and path-mapping helpers
// shared by cmd/groute and cmd/geval (§6) — both take the same
// `[-config path] <gmp> <gcl> <cst> <lg>` shape.
package cli

import (
	"path/filepath"
	"strings"
)

// ParseArgs splits a flag-free-style argument list into the `-config`
// option's value (if present) and the remaining positional arguments, in
// order. The standard flag package isn't used here because it requires
// flags to precede positionals, which this usage string doesn't promise.
func ParseArgs(args []string) (positional []string, configPath string) {
	for i := 0; i < len(args); i++ {
		if args[i] == "-config" && i+1 < len(args) {
			configPath = args[i+1]
			i++
			continue
		}
		positional = append(positional, args[i])
	}
	return positional, configPath
}

// ToRelPath turns a CLI-supplied path (absolute or relative to the
// working directory) into the slash-separated, root-relative form
// hack-pad/hackpadfs/os's io/fs-backed FS requires.
func ToRelPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		abs = p
	}
	rel := strings.TrimPrefix(filepath.ToSlash(abs), "/")
	if rel == "" {
		rel = "."
	}
	return rel
}
