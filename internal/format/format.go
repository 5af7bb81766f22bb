// Package format renders a selection of log-setting identifiers as the
// bracketed, double-quoted list consumed by simulator config files.
package format

import (
	"sort"
	"strings"

	"logpick.dev/internal/catalog"
)

// Render formats items as ["a", "b"]. The empty selection renders as
// []. Input order is preserved byte for byte and no escaping is
// applied; catalog identifiers never contain quotes.
func Render(items []string) string {
	if len(items) == 0 {
		return "[]"
	}

	var b strings.Builder
	b.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('"')
		b.WriteString(item)
		b.WriteByte('"')
	}
	b.WriteByte(']')
	return b.String()
}

// SortCatalogOrder sorts items in place into catalog order and returns
// the slice. Identifiers not present in the catalog sort after all
// known ones, keeping their relative order.
func SortCatalogOrder(items []string) []string {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := catalog.Index(items[i]), catalog.Index(items[j])
		if a < 0 {
			return false
		}
		if b < 0 {
			return true
		}
		return a < b
	})
	return items
}
