package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"
)

type glyphs struct {
	branch, last, vertical, blank string
}

var (
	unicodeGlyphs = glyphs{branch: "├── ", last: "└── ", vertical: "│   ", blank: "    "}
	asciiGlyphs   = glyphs{branch: "|-- ", last: "`-- ", vertical: "|   ", blank: "    "}
)

func glyphsFor(c Charset) glyphs {
	if c == CharsetASCII {
		return asciiGlyphs
	}
	return unicodeGlyphs
}

// textOptions controls the text renderer. Stat defaults to os.Lstat and is
// only used in long format.
type textOptions struct {
	Label   string // first line; defaults to the root path
	Long    bool
	Charset Charset
	Theme   *Theme
	Stat    func(string) (os.FileInfo, error)
}

type renderFrame struct {
	node   *TreeNode
	prefix string
	last   bool
}

// renderText writes the tree with connectors and guide lines, followed by a
// summary line, and returns the accumulated Stats.
func renderText(w io.Writer, root *TreeNode, opts textOptions) (Stats, error) {
	var stats Stats
	g := glyphsFor(opts.Charset)
	if opts.Stat == nil {
		opts.Stat = os.Lstat
	}
	label := opts.Label
	if label == "" {
		label = root.Path
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, label)

	stack := pushChildren(nil, root.Children, "")
	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := frame.node

		// A last child closes its branch, so its subtree gets a blank column
		// instead of a guide line.
		connector, childPrefix := g.branch, frame.prefix+g.vertical
		if frame.last {
			connector, childPrefix = g.last, frame.prefix+g.blank
		}

		fmt.Fprintf(bw, "%s%s%s\n", frame.prefix, connector, formatEntry(node, childPrefix, opts))

		if node.IsDir {
			stats.Dirs++
		} else {
			stats.Files++
			stats.Bytes += node.Size
		}
		// Pushed after printing, so the whole subtree is emitted before the
		// next sibling already on the stack.
		stack = pushChildren(stack, node.Children, childPrefix)
	}

	fmt.Fprintf(bw, "\n%s\n", stats.summary(opts.Long))
	if err := bw.Flush(); err != nil {
		return stats, fmt.Errorf("error writing tree: %w", err)
	}
	return stats, nil
}

// pushChildren pushes children in reverse so the first child is popped first.
func pushChildren(stack []renderFrame, children []*TreeNode, prefix string) []renderFrame {
	for i := len(children) - 1; i >= 0; i-- {
		stack = append(stack, renderFrame{
			node:   children[i],
			prefix: prefix,
			last:   i == len(children)-1,
		})
	}
	return stack
}

// formatEntry returns the styled name and, in long format, the metadata line
// indented under it. Metadata errors are reported inline.
func formatEntry(node *TreeNode, childPrefix string, opts textOptions) string {
	hidden := isHidden(node.Name)
	name := opts.Theme.Render(styleFor(node.IsDir, hidden, extensionOf(node.Name)), node.Name)
	if !opts.Long {
		return name
	}

	info, err := opts.Stat(node.Path)
	if err != nil {
		return fmt.Sprintf("%s (error reading metadata: %v)", name, err)
	}
	created := "-"
	if t, ok := createdAt(node.Path, info); ok {
		created = formatTime(t)
	}
	return fmt.Sprintf("%s\n%s  %-10s %-12s %-10s %-20s %-10s %s",
		name, childPrefix,
		"Size:", formatSize(info.Size()),
		"Modified:", formatTime(info.ModTime()),
		"Created:", created)
}

func (s Stats) summary(withBytes bool) string {
	line := fmt.Sprintf("%d directories, %d files", s.Dirs, s.Files)
	if withBytes {
		line += fmt.Sprintf(", %s total", formatSize(s.Bytes))
	}
	return line
}

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// formatSize renders bytes with 1024-based units and one decimal place.
func formatSize(bytes int64) string {
	size := float64(bytes)
	i := 0
	for size >= 1024 && i < len(sizeUnits)-1 {
		size /= 1024
		i++
	}
	return fmt.Sprintf("%.1f %s", size, sizeUnits[i])
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}
