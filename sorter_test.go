package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSortEntries(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := func() []EntryMeta {
		return []EntryMeta{
			{Name: "beta.txt", Size: 300, ModTime: base.Add(2 * time.Hour)},
			{Name: "Alpha", Size: 100, ModTime: base.Add(3 * time.Hour), IsDir: true},
			{Name: "gamma.rs", Size: 200, ModTime: base},
			{Name: "alpine.md", Size: 100, ModTime: base.Add(time.Hour)},
		}
	}

	tests := []struct {
		key  SortKey
		want []string
	}{
		{SortAlphabetical, []string{"Alpha", "alpine.md", "beta.txt", "gamma.rs"}},
		{SortFileSize, []string{"Alpha", "alpine.md", "gamma.rs", "beta.txt"}},
		{SortLastUpdated, []string{"gamma.rs", "alpine.md", "beta.txt", "Alpha"}},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			got := entries()
			sortEntries(got, tt.key)
			assert.Equal(t, tt.want, names(got))

			sortEntries(got, tt.key)
			assert.Equal(t, tt.want, names(got), "sorting twice must not change the order")
		})
	}
}

func TestSortEntriesStableOnTies(t *testing.T) {
	entries := []EntryMeta{
		{Name: "c", Size: 1},
		{Name: "a", Size: 1},
		{Name: "b", Size: 1},
	}
	sortEntries(entries, SortFileSize)
	assert.Equal(t, []string{"c", "a", "b"}, names(entries))
}

func TestSortEntriesCaseInsensitive(t *testing.T) {
	entries := []EntryMeta{{Name: "b"}, {Name: "C"}, {Name: "a"}, {Name: "B2"}}
	sortEntries(entries, SortAlphabetical)
	assert.Equal(t, []string{"a", "b", "B2", "C"}, names(entries))
}
