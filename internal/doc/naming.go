package doc

import (
	"fmt"
	"strings"
)

// nextID returns the smallest positive integer for which used returns
// false. Entity counts are editor-scale, so the linear probe is fine.
func nextID(used func(id int) bool) int {
	for id := 1; ; id++ {
		if !used(id) {
			return id
		}
	}
}

// uniqueName returns base if no sibling uses it, otherwise "base.i" for
// the first free i starting at 1. Name comparison is case-insensitive.
func uniqueName(base string, exists func(name string) bool) string {
	if !exists(base) {
		return base
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s.%d", base, i)
		if !exists(name) {
			return name
		}
	}
}

// nameEqual reports whether two entity names match, ignoring case.
func nameEqual(a, b string) bool {
	return strings.EqualFold(a, b)
}
