// Package sortutil orders filenames for manifests. Functions return sorted
// copies and never modify their input.
package sortutil

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// StablePathSort returns a byte-wise sorted copy of names.
func StablePathSort(names []string) []string {
	out := slices.Clone(names)
	slices.Sort(out)
	return out
}

// NaturalSort returns names ordered the way people read icon names: digit
// runs compare by value ("icon2.png" before "icon10.png") and case and
// accents are ignored. Names the collator weighs the same ("A.png" and
// "a.png") fall back to byte order, so the result does not depend on the
// order names were listed in.
func NaturalSort(names []string) []string {
	out := slices.Clone(names)
	// a Collator keeps scratch buffers, so each call gets its own
	c := newCollator()
	slices.SortFunc(out, func(a, b string) int {
		if n := c.CompareString(a, b); n != 0 {
			return n
		}
		return strings.Compare(a, b)
	})
	return out
}

func newCollator() *collate.Collator {
	return collate.New(language.Und, collate.Numeric, collate.IgnoreCase, collate.IgnoreDiacritics)
}
