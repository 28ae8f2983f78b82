// internal/domain/cart/key.go
package cart

import (
	"sort"
	"strings"
)

const (
	keyDelimiter  = "::"
	pairSeparator = ";"
)

// BuildLineKey derives the composite identity key for a cart line from a
// product identifier and the selected-variant map. Lines with the same
// product and the same selection merge under one key, so the key must not
// depend on map iteration order: variant types are sorted lexicographically
// before the type-value pairs are joined.
func BuildLineKey(productID string, selected map[string]string) string {
	if len(selected) == 0 {
		return productID
	}

	types := make([]string, 0, len(selected))
	for t := range selected {
		types = append(types, t)
	}
	sort.Strings(types)

	pairs := make([]string, len(types))
	for i, t := range types {
		pairs[i] = t + "-" + selected[t]
	}

	return productID + keyDelimiter + strings.Join(pairs, pairSeparator)
}
