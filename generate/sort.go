package generate

import (
	"sort"

	"github.com/apparentlymart/riscv-csr/ir"
)

// sortedItems returns the items ordered by offset and then by name, leaving
// the given slice untouched.
func sortedItems(items []ir.BlockItem) []ir.BlockItem {
	ret := make([]ir.BlockItem, len(items))
	copy(ret, items)
	sort.SliceStable(ret, func(i, j int) bool {
		if ret[i].ByteOffset != ret[j].ByteOffset {
			return ret[i].ByteOffset < ret[j].ByteOffset
		}
		return ret[i].Name < ret[j].Name
	})
	return ret
}
