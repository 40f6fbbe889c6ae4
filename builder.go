package main

import (
	"errors"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// listEntries is the per-directory collection step; tests swap it to inject
// failures below the root.
var listEntries = collectEntries

type buildFrame struct {
	node  *TreeNode
	depth int
}

// buildTree constructs the filtered, sorted tree rooted at rootPath.
// Directories are expanded from an explicit stack rather than by recursion,
// and any IO failure aborts the whole build.
func buildTree(rootPath string, opts *Options) (*TreeNode, error) {
	info, err := os.Stat(rootPath)
	if err != nil {
		return nil, ioError("cannot access", rootPath, err)
	}
	if !info.IsDir() {
		return nil, ioError("cannot read directory", rootPath, errors.New("not a directory"))
	}

	cleanRootPath := filepath.Clean(rootPath)
	root := &TreeNode{
		Name:    filepath.Base(cleanRootPath),
		Path:    cleanRootPath,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		IsDir:   true,
	}

	// expanded records every directory whose children were listed, in
	// pre-order, for the pruning pass.
	var expanded []*TreeNode
	stack := []buildFrame{{node: root}}
	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// Directories at the depth limit stay in the tree but are never listed.
		if opts.MaxDepth > 0 && frame.depth >= opts.MaxDepth {
			continue
		}

		entries, err := listEntries(frame.node.Path, &opts.Filter)
		if err != nil {
			// No partial trees: one unreadable subdirectory fails the build.
			return nil, err
		}
		sortEntries(entries, opts.SortKey)
		log.Tracef("%s: %d entries", frame.node.Path, len(entries))

		frame.node.Children = make([]*TreeNode, 0, len(entries))
		for _, e := range entries {
			child := &TreeNode{
				Name:    e.Name,
				Path:    e.Path,
				Size:    e.Size,
				ModTime: e.ModTime,
				IsDir:   e.IsDir,
			}
			frame.node.Children = append(frame.node.Children, child)
		}
		expanded = append(expanded, frame.node)

		// Children are attached above already, so the order in which
		// directories get expanded does not affect the tree. Push in reverse
		// anyway so expansion (and any error) follows the sorted order.
		for i := len(frame.node.Children) - 1; i >= 0; i-- {
			if child := frame.node.Children[i]; child.IsDir {
				stack = append(stack, buildFrame{node: child, depth: frame.depth + 1})
			}
		}
	}

	// Only file filters can leave a directory empty by hiding its files; an
	// unfiltered empty directory is real and stays.
	if opts.Filter.narrowing() {
		pruneEmptyDirs(expanded)
	}
	return root, nil
}

// pruneEmptyDirs drops expanded directories left without entries. Walking the
// pre-order list backwards visits every child before its parent.
func pruneEmptyDirs(expanded []*TreeNode) {
	listed := make(map[*TreeNode]bool, len(expanded))
	for _, n := range expanded {
		listed[n] = true
	}
	for i := len(expanded) - 1; i >= 0; i-- {
		node := expanded[i]
		kept := node.Children[:0]
		for _, child := range node.Children {
			// Unlisted directories (depth limit) are unknown, not empty.
			if child.IsDir && listed[child] && len(child.Children) == 0 {
				continue
			}
			kept = append(kept, child)
		}
		node.Children = kept
	}
}
