// Package lock provides domain.KeyLocker implementations used to serialize the
// validate-then-append sequence of a checkout per product.
package lock

import (
	"hash/fnv"
	"sort"
)

// normalizeKeys dedupes and sorts so every caller acquires keys in the same order.
func normalizeKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func hashKey(key string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return int64(h.Sum64())
}
