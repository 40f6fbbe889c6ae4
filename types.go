package main

import (
	"encoding/json"
	"regexp"
	"time"

	"github.com/gobwas/glob"
	gitignore "github.com/monochromegane/go-gitignore"
)

// TreeNode is one entry of the built tree. Children are filtered and sorted
// at construction time; files never have children.
type TreeNode struct {
	Name     string      `json:"name"`
	Path     string      `json:"path"`
	Size     int64       `json:"size"`
	ModTime  time.Time   `json:"mtime"`
	IsDir    bool        `json:"is_dir"`
	Children []*TreeNode `json:"children,omitempty"`
}

// MarshalJSON always emits a children array for directories, empty when
// nothing is listed, and omits it for files.
func (n TreeNode) MarshalJSON() ([]byte, error) {
	type node TreeNode
	out := struct {
		node
		Children *[]*TreeNode `json:"children,omitempty"`
	}{node: node(n)}
	if n.IsDir {
		children := n.Children
		if children == nil {
			children = []*TreeNode{}
		}
		out.Children = &children
	}
	return json.Marshal(out)
}

// EntryMeta describes one directory entry between collection and sorting.
type EntryMeta struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
	IsDir   bool
}

// SortKey selects the ordering applied to each directory's children.
type SortKey int

const (
	SortAlphabetical SortKey = iota
	SortFileSize
	SortLastUpdated
)

func (k SortKey) String() string {
	switch k {
	case SortFileSize:
		return "size"
	case SortLastUpdated:
		return "mtime"
	default:
		return "name"
	}
}

// Charset selects the glyphs used for connectors and guide lines.
type Charset int

const (
	CharsetUnicode Charset = iota
	CharsetASCII
)

// FilterConfig holds everything the Filter needs to decide visibility.
type FilterConfig struct {
	ShowHidden bool
	Extensions map[string]struct{} // lower-cased, no leading dot
	Regex      *regexp.Regexp
	Exclude    []glob.Glob
	Ignore     gitignore.IgnoreMatcher
	MaxSize    uint64 // 0 means no limit
}

// Options is the validated configuration for one build and render.
type Options struct {
	Filter   FilterConfig
	SortKey  SortKey
	MaxDepth int // 0 means unlimited
	Long     bool
	Charset  Charset
}

// Stats accumulates counts while the text renderer walks the tree.
type Stats struct {
	Dirs  int
	Files int
	Bytes int64
}
