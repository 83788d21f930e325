package table

import (
	"sort"

	"github.com/pkg/errors"
	"rqlite/node"
)

// Cursor is a position within the tree used to read or insert. It borrows
// the table exclusively during its use; after any write that rebalances
// the tree, the cursor's position is no longer meaningful and must not be
// reused.
type Cursor struct {
	table      *Table
	page       int32
	cellIndex  uint32
	endOfTable bool
}

// FromStart positions a cursor at the first row in key order. If the root
// is internal, construction descends to the leftmost leaf.
func FromStart(t *Table) (*Cursor, error) {
	page, err := leftmostLeaf(t, t.root)
	if err != nil {
		return nil, err
	}
	leaf, err := fetchLeaf(t, page)
	if err != nil {
		return nil, err
	}
	return &Cursor{table: t, page: page, endOfTable: len(leaf.Cells) == 0}, nil
}

func leftmostLeaf(t *Table, page int32) (int32, error) {
	for {
		n, err := t.pager.GetPage(page)
		if err != nil {
			return 0, err
		}
		switch v := n.(type) {
		case *node.LeafNode:
			return page, nil
		case *node.InternalNode:
			page = v.GetChildIndex(0)
		default:
			return 0, errors.Errorf("leftmostLeaf: corrupt node at page %d", page)
		}
	}
}

// FromKey descends from the root, at each internal node picking the
// smallest slot such that key <= cell[slot].key (else the right child),
// then binary-searches the leaf. If key exists the cursor points at it;
// otherwise it points at the insertion slot, which may be n_cells (end of
// leaf) yielding endOfTable.
func FromKey(t *Table, key int64) (*Cursor, error) {
	page := t.root
	for {
		n, err := t.pager.GetPage(page)
		if err != nil {
			return nil, err
		}
		switch v := n.(type) {
		case *node.InternalNode:
			slot := sort.Search(len(v.Cells), func(i int) bool { return key <= v.Cells[i].Key })
			page = v.GetChildIndex(slot)
		case *node.LeafNode:
			idx := sort.Search(len(v.Cells), func(i int) bool { return v.Cells[i].Key >= key })
			return &Cursor{
				table:      t,
				page:       page,
				cellIndex:  uint32(idx),
				endOfTable: idx >= len(v.Cells),
			}, nil
		default:
			return nil, errors.Errorf("FromKey: corrupt node at page %d", page)
		}
	}
}

func fetchLeaf(t *Table, page int32) (*node.LeafNode, error) {
	n, err := t.pager.GetPage(page)
	if err != nil {
		return nil, err
	}
	leaf, ok := n.(*node.LeafNode)
	if !ok {
		return nil, errors.Errorf("page %d is not a leaf", page)
	}
	return leaf, nil
}

func (c *Cursor) leaf() (*node.LeafNode, error) {
	return fetchLeaf(c.table, c.page)
}

// Read returns the leaf cell at the current position, or ok=false if the
// cursor is past the last cell of its leaf.
func (c *Cursor) Read() (node.LeafCell, bool, error) {
	leaf, err := c.leaf()
	if err != nil {
		return node.LeafCell{}, false, err
	}
	if c.cellIndex >= uint32(len(leaf.Cells)) {
		return node.LeafCell{}, false, nil
	}
	return leaf.Cells[c.cellIndex], true, nil
}

// Advance moves to the next cell in key order, crossing into the sibling
// leaf via the next-leaf pointer when the current leaf is exhausted.
func (c *Cursor) Advance() error {
	leaf, err := c.leaf()
	if err != nil {
		return err
	}
	c.cellIndex++
	if c.cellIndex < uint32(len(leaf.Cells)) {
		c.endOfTable = false
		return nil
	}
	if leaf.NextLeaf == node.NoParent {
		c.endOfTable = true
		return nil
	}
	next, err := fetchLeaf(c.table, leaf.NextLeaf)
	if err != nil {
		return err
	}
	c.page = leaf.NextLeaf
	c.cellIndex = 0
	c.endOfTable = len(next.Cells) == 0
	return nil
}

// EndOfTable reports whether the cursor has advanced past the last row.
func (c *Cursor) EndOfTable() bool { return c.endOfTable }

// Write inserts cell into the leaf the cursor currently points at. If the
// leaf has room, it's a plain shift-and-insert; otherwise the leaf splits
// and the split propagates upward, possibly all the way to a new root.
// The cursor must not be reused after a write that triggers a split.
func (c *Cursor) Write(cell node.LeafCell) error {
	leaf, err := c.leaf()
	if err != nil {
		return err
	}
	if len(leaf.Cells) < node.LeafMaxCells {
		return leaf.InsertCell(int(c.cellIndex), cell)
	}
	return c.table.splitLeafAndInsert(leaf, int(c.cellIndex), cell)
}
