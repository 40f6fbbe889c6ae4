package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
)

// pickRootInteractively lets the user fuzzy-pick a directory below ".".
// An aborted selection returns "" and a nil error.
func pickRootInteractively(showHidden bool) (string, error) {
	root := "."
	candidates := []string{root}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path == root || !d.IsDir() {
			return nil
		}
		if !showHidden && isHidden(d.Name()) {
			return fs.SkipDir
		}
		candidates = append(candidates, path)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("error scanning for directories: %w", err)
	}

	idx, err := fuzzyfinder.Find(
		candidates,
		func(i int) string { return candidates[i] },
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Select the directory to visualize."
			}
			entries, err := os.ReadDir(candidates[i])
			if err != nil {
				return fmt.Sprintf("Path: %s\nError reading directory: %v", candidates[i], err)
			}
			return fmt.Sprintf("Path: %s\nEntries: %d", candidates[i], len(entries))
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", nil
		}
		return "", fmt.Errorf("fuzzy finder error: %w", err)
	}
	return candidates[idx], nil
}
