package main

import (
	"encoding/json"
	"fmt"
	"io"
)

// renderJSON writes the tree as indented JSON. Field order follows TreeNode.
func renderJSON(w io.Writer, root *TreeNode) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("error encoding tree as JSON: %w", err)
	}
	return nil
}
