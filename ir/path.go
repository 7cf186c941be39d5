package ir

import (
	"strings"
)

// PathSep separates the segments of block and fieldset paths, which follow
// Rust module path syntax.
const PathSep = "::"

// SplitPath separates a path into its module segments and its final name.
func SplitPath(p string) (mods []string, name string) {
	parts := strings.Split(p, PathSep)
	return parts[:len(parts)-1], parts[len(parts)-1]
}

// RelativePath returns a Rust path that refers to target when written inside
// the module that contains the item at path from.
func RelativePath(target, from string) string {
	tmods, tname := SplitPath(target)
	fmods, _ := SplitPath(from)

	// Drop the shared prefix; whatever remains of "from" has to be climbed
	// out of with super:: before descending into what remains of "target".
	for len(tmods) > 0 && len(fmods) > 0 && tmods[0] == fmods[0] {
		tmods = tmods[1:]
		fmods = fmods[1:]
	}

	var b strings.Builder
	for range fmods {
		b.WriteString("super")
		b.WriteString(PathSep)
	}
	for _, mod := range tmods {
		b.WriteString(mod)
		b.WriteString(PathSep)
	}
	b.WriteString(tname)
	return b.String()
}
