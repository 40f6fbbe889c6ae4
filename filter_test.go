package main

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisible(t *testing.T) {
	excludes, err := compilePatterns([]string{"node_modules", "*.tmp"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter FilterConfig
		entry  string
		isDir  bool
		want   bool
	}{
		{"plain file", FilterConfig{}, "main.rs", false, true},
		{"hidden file rejected", FilterConfig{}, ".env", false, false},
		{"hidden dir rejected", FilterConfig{}, ".git", true, false},
		{"hidden file shown with all", FilterConfig{ShowHidden: true}, ".env", false, true},
		{"dot entries are not hidden", FilterConfig{}, "..", true, true},
		{"extension member", FilterConfig{Extensions: map[string]struct{}{"rs": {}}}, "main.rs", false, true},
		{"extension non member", FilterConfig{Extensions: map[string]struct{}{"rs": {}}}, "README.md", false, false},
		{"extension filter skips dirs", FilterConfig{Extensions: map[string]struct{}{"rs": {}}}, "src", true, true},
		{"regex match", FilterConfig{Regex: regexp.MustCompile(`^data`)}, "data1.csv", false, true},
		{"regex miss", FilterConfig{Regex: regexp.MustCompile(`^data`)}, "notes.txt", false, false},
		{"regex skips dirs", FilterConfig{Regex: regexp.MustCompile(`^data`)}, "src", true, true},
		{"excluded dir", FilterConfig{Exclude: excludes}, "node_modules", true, false},
		{"excluded file", FilterConfig{Exclude: excludes}, "scratch.tmp", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Visible(tt.entry, extensionOf(tt.entry), tt.isDir)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAdmitMaxSize(t *testing.T) {
	f := FilterConfig{MaxSize: 1024}
	assert.True(t, f.Admit("small.bin", false, 1024))
	assert.False(t, f.Admit("big.bin", false, 1025))
	assert.True(t, f.Admit("dir", true, 4096))
}

func TestExtensionOf(t *testing.T) {
	assert.Equal(t, "rs", extensionOf("main.rs"))
	assert.Equal(t, "gz", extensionOf("archive.TAR.GZ"))
	assert.Equal(t, "", extensionOf(".bashrc"))
	assert.Equal(t, "", extensionOf("Makefile"))
}

func TestCompilePatternsInvalid(t *testing.T) {
	_, err := compilePatterns([]string{"[unterminated"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
