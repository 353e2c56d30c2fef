// Package token encodes a build state into the compact URL-safe share token
// and decodes it back. The token is the only durable form a build has: the
// address bar is the database.
package token

import "strings"

// itemPrefix is the prefix the UI layer puts on item identifiers. On the
// wire only the bare number travels, which halves the character cost of
// every item reference in the token.
const itemPrefix = "item"

// WireID strips the UI prefix from an item identifier: "item-42" -> "42".
// An id without a separator is returned unchanged, treated as already bare.
func WireID(uiID string) string {
	if _, rest, ok := strings.Cut(uiID, "-"); ok {
		return rest
	}
	return uiID
}

// UIID restores the UI form of a wire identifier: "42" -> "item-42". It does
// not check that the item exists; unknown ids stay inert until the render
// layer looks them up and finds nothing.
func UIID(wireID string) string {
	return itemPrefix + "-" + wireID
}
