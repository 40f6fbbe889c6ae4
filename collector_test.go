package main

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectHiddenFiltering(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, ".hidden"), "")
	write(t, filepath.Join(dir, "visible.txt"), "")

	entries, err := collectEntries(dir, &FilterConfig{})
	require.NoError(t, err)
	assert.Equal(t, []string{"visible.txt"}, names(entries))

	entries, err = collectEntries(dir, &FilterConfig{ShowHidden: true})
	require.NoError(t, err)
	assert.Equal(t, []string{".hidden", "visible.txt"}, sortedNames(entries))
}

func TestCollectExtensionFiltering(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "main.rs"), "")
	write(t, filepath.Join(dir, "README.md"), "")
	write(t, filepath.Join(dir, "LICENSE"), "")
	write(t, filepath.Join(dir, "docs", "guide.txt"), "")

	f := &FilterConfig{Extensions: map[string]struct{}{"rs": {}, "md": {}}}
	entries, err := collectEntries(dir, f)
	require.NoError(t, err)

	assert.Equal(t, []string{"README.md", "docs", "main.rs"}, sortedNames(entries))
	for _, e := range entries {
		if !e.IsDir {
			assert.Contains(t, f.Extensions, extensionOf(e.Name))
		}
	}
}

func TestCollectRegexFiltering(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "data1.csv"), "")
	write(t, filepath.Join(dir, "data2.csv"), "")
	write(t, filepath.Join(dir, "notes.txt"), "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))

	re := regexp.MustCompile(`^data.*`)
	entries, err := collectEntries(dir, &FilterConfig{Regex: re})
	require.NoError(t, err)

	assert.Equal(t, []string{"archive", "data1.csv", "data2.csv"}, sortedNames(entries))
	for _, e := range entries {
		if !e.IsDir {
			assert.Regexp(t, re, e.Name)
		}
	}
}

func TestCollectMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "info.txt")
	write(t, path, "hello")
	mtime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	touch(t, path, mtime)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	entries, err := collectEntries(dir, &FilterConfig{})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byName := map[string]EntryMeta{}
	for _, e := range entries {
		byName[e.Name] = e
	}
	info := byName["info.txt"]
	assert.Equal(t, path, info.Path)
	assert.Equal(t, int64(5), info.Size)
	assert.True(t, info.ModTime.Equal(mtime))
	assert.False(t, info.IsDir)
	assert.True(t, byName["sub"].IsDir)
}

func TestCollectGitIgnore(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, ".gitignore"), "*.log\nbuild\n")
	write(t, filepath.Join(dir, "app.log"), "")
	write(t, filepath.Join(dir, "app.go"), "")
	write(t, filepath.Join(dir, "build", "out.bin"), "")

	entries, err := collectEntries(dir, &FilterConfig{Ignore: loadGitIgnore(dir)})
	require.NoError(t, err)
	assert.Equal(t, []string{"app.go"}, names(entries))
}

func TestCollectSkipsNonUTF8Names(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("non-UTF-8 file names need a byte-oriented filesystem")
	}
	dir := t.TempDir()
	write(t, filepath.Join(dir, "ok.txt"), "")
	write(t, filepath.Join(dir, "bad\xff.txt"), "")

	entries, err := collectEntries(dir, &FilterConfig{})
	require.NoError(t, err)
	assert.Equal(t, []string{"ok.txt"}, names(entries))
}

func TestCollectMissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	_, err := collectEntries(missing, &FilterConfig{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), missing)
}

func TestCollectSymlinksAreNotFollowed(t *testing.T) {
	dir := t.TempDir()
	realDir := filepath.Join(dir, "real")
	write(t, filepath.Join(realDir, "f.txt"), "")
	if err := os.Symlink(realDir, filepath.Join(dir, "link")); err != nil {
		t.Skipf("cannot create symlinks: %v", err)
	}
	require.NoError(t, os.Symlink(".", filepath.Join(realDir, "loop")))

	entries, err := collectEntries(dir, &FilterConfig{})
	require.NoError(t, err)
	byName := map[string]EntryMeta{}
	for _, e := range entries {
		byName[e.Name] = e
	}
	require.Contains(t, byName, "link")
	assert.False(t, byName["link"].IsDir)
	assert.True(t, byName["real"].IsDir)

	tree, err := buildTree(dir, &Options{Filter: FilterConfig{ShowHidden: true}})
	require.NoError(t, err)
	require.Equal(t, []string{"link", "real"}, childNames(tree))
	assert.False(t, tree.Children[0].IsDir)
	assert.Empty(t, tree.Children[0].Children)

	realNode := tree.Children[1]
	require.Equal(t, []string{"f.txt", "loop"}, childNames(realNode))
	assert.False(t, realNode.Children[1].IsDir)
	assert.Empty(t, realNode.Children[1].Children)
}
