package envfile

import (
	"slices"
	"sort"
	"strings"

	"github.com/fvbommel/sortorder"
)

// SortKeys returns a copy of keys in natural order (DB_HOST2 before DB_HOST10).
func SortKeys(keys []string) []string {
	out := slices.Clone(keys)
	sort.SliceStable(out, func(i, j int) bool {
		return sortorder.NaturalLess(out[i], out[j])
	})
	return out
}

// KeyGroup returns the part of key before the first underscore.
func KeyGroup(key string) string {
	prefix, _, _ := strings.Cut(key, "_")
	return prefix
}

// GroupKeys splits keys into runs that share a KeyGroup, keeping their order.
func GroupKeys(keys []string) [][]string {
	var groups [][]string
	current := ""

	for i, key := range keys {
		group := KeyGroup(key)
		if i == 0 || group != current {
			groups = append(groups, nil)
			current = group
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], key)
	}

	return groups
}
