package search

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

const cacheKeyPrefix = "search:"

// CacheKey derives the deterministic store key for a query/page pair. The
// canonical query and the page index are hashed together, so a key never
// resolves to more than one pair.
func CacheKey(query string, page int) string {
	h := sha256.New()
	h.Write([]byte(canonicalQuery(query)))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(page)))
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}
