package identifiers

import (
	"cmp"
	"slices"
)

func sortByLengthDesc(tokens []string) {
	slices.SortFunc(tokens, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
}
