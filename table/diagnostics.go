package table

import (
	"fmt"
	"io"
	"strings"

	"rqlite/node"
)

// printTree pre-orders the subtree rooted at page, emitting a leaf's size
// and keys, or an internal node's size followed by each child's recursive
// dump interleaved with its separator key, and finally the right child.
// Indentation is two spaces per level.
func printTree(t *Table, w io.Writer, page int32, indent int) error {
	n, err := t.pager.GetPage(page)
	if err != nil {
		return err
	}
	pad := strings.Repeat("  ", indent)

	switch v := n.(type) {
	case *node.LeafNode:
		fmt.Fprintf(w, "%s- leaf (size %d)\n", pad, len(v.Cells))
		for _, c := range v.Cells {
			fmt.Fprintf(w, "%s  - %d\n", pad, c.Key)
		}
		return nil
	case *node.InternalNode:
		fmt.Fprintf(w, "%s- internal (size %d)\n", pad, len(v.Cells))
		for _, c := range v.Cells {
			if err := printTree(t, w, c.Child, indent+1); err != nil {
				return err
			}
			fmt.Fprintf(w, "%s- key %d\n", pad, c.Key)
		}
		return printTree(t, w, v.RightChild, indent+1)
	default:
		return fmt.Errorf("printTree: corrupt node at page %d", page)
	}
}
