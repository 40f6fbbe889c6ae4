package main

import (
	"sort"
	"strings"
)

// sortEntries orders entries in place by key. Directories and files share one
// ordering; ties keep the collector's order.
func sortEntries(entries []EntryMeta, key SortKey) {
	var less func(a, b EntryMeta) bool
	switch key {
	case SortFileSize:
		less = func(a, b EntryMeta) bool { return a.Size < b.Size }
	case SortLastUpdated:
		less = func(a, b EntryMeta) bool { return a.ModTime.Before(b.ModTime) }
	default:
		less = func(a, b EntryMeta) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return less(entries[i], entries[j])
	})
}
