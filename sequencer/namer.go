package sequencer

import (
	"iter"
	"slices"
	"strconv"
	"strings"

	"github.com/ezrec/hvi/internal"
)

// UniqueName derives a statement name that is unique among names.
//
// If no existing name starts with requested, requested is returned as is.
// Otherwise the count n of existing names sharing the prefix is appended as
// '_n'. The count only grows as statements are appended, so repeated
// requests yield name, name_1, name_2, ... If a caller literally requested
// a suffixed name earlier, n is advanced past the collision.
func UniqueName(names iter.Seq[string], requested string) string {
	count := internal.IterCountFunc(names, func(name string) bool {
		return strings.HasPrefix(name, requested)
	})
	if count == 0 {
		return requested
	}

	existing := slices.Collect(names)
	for n := count; ; n++ {
		candidate := requested + "_" + strconv.Itoa(n)
		if !slices.Contains(existing, candidate) {
			return candidate
		}
	}
}
