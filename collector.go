package main

import (
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"
)

// collectEntries lists the immediate children of dir that pass the filter.
// The result keeps the listing order of os.ReadDir; ordering is left to
// sortEntries.
func collectEntries(dir string, f *FilterConfig) ([]EntryMeta, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ioError("cannot read directory", dir, err)
	}

	entries := make([]EntryMeta, 0, len(dirEntries))
	for _, d := range dirEntries {
		name := d.Name()
		if !utf8.ValidString(name) {
			continue
		}

		// Symlinks report their own type, so links to directories are
		// listed as entries and never descended into.
		isDir := d.IsDir()
		if !f.Visible(name, extensionOf(name), isDir) {
			continue
		}

		path := filepath.Join(dir, name)
		info, err := d.Info()
		if err != nil {
			return nil, ioError("cannot read metadata of", path, err)
		}
		if !f.Admit(path, isDir, info.Size()) {
			continue
		}

		modTime := info.ModTime()
		if modTime.IsZero() {
			modTime = time.Unix(0, 0)
		}
		entries = append(entries, EntryMeta{
			Name:    name,
			Path:    path,
			Size:    info.Size(),
			ModTime: modTime,
			IsDir:   isDir,
		})
	}
	return entries, nil
}
