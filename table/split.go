package table

import (
	"github.com/pkg/errors"
	"rqlite/node"
)

// splitLeafAndInsert redistributes the leaf's existing cells plus the
// incoming one across the old page and a freshly allocated right sibling,
// then propagates the new separator into the parent (or builds a new root
// if the leaf that split was the root).
func (t *Table) splitLeafAndInsert(old *node.LeafNode, insertAt int, cell node.LeafCell) error {
	merged := make([]node.LeafCell, 0, len(old.Cells)+1)
	merged = append(merged, old.Cells[:insertAt]...)
	merged = append(merged, cell)
	merged = append(merged, old.Cells[insertAt:]...)

	rightPage, err := t.pager.GetNewPageIndex()
	if err != nil {
		return err
	}
	newRight := node.NewLeafNode(rightPage, false)
	newRight.NextLeaf = old.NextLeaf
	newRight.Header().Parent = old.Header().Parent
	newRight.Cells = append(newRight.Cells, merged[node.LeafSplitLeftCount:]...)
	newRight.Header().NumCells = uint32(len(newRight.Cells))
	if err := t.pager.SetPage(rightPage, newRight); err != nil {
		return err
	}

	old.Cells = append(old.Cells[:0], merged[:node.LeafSplitLeftCount]...)
	old.Header().NumCells = uint32(len(old.Cells))
	old.NextLeaf = rightPage

	separatorKey := old.MaxKey()

	if old.Header().IsRoot {
		return t.splitRoot(rightPage, separatorKey)
	}
	return t.insertIntoParent(old.Header().Parent, old.PageIndex(), rightPage, separatorKey)
}

// insertIntoParent splices a new separator for (leftChildPage, rightChildPage)
// into the parent at parentPage, splitting the parent (and propagating
// further upward, possibly to a new root) if it overflows. This implements
// the recursive split propagation left as an open extension by the
// single-level engine: a deep split no longer needs to abort.
func (t *Table) insertIntoParent(parentPage int32, leftChildPage, rightChildPage int32, key int64) error {
	for {
		n, err := t.pager.GetPage(parentPage)
		if err != nil {
			return err
		}
		parent, ok := n.(*node.InternalNode)
		if !ok {
			return errors.Errorf("insertIntoParent: page %d is not internal", parentPage)
		}

		// Cells are spliced in directly rather than through InsertCell, since
		// the parent may briefly hold one cell over capacity before it splits.
		if parent.RightChild == leftChildPage {
			parent.Cells = append(parent.Cells, node.InternalCell{Child: leftChildPage, Key: key})
			parent.RightChild = rightChildPage
		} else {
			idx := indexOfChild(parent, leftChildPage)
			if idx < 0 {
				return errors.Errorf("insertIntoParent: child page %d not found under parent %d", leftChildPage, parentPage)
			}
			oldKey := parent.Cells[idx].Key
			parent.Cells[idx].Key = key
			parent.Cells = append(parent.Cells, node.InternalCell{})
			copy(parent.Cells[idx+2:], parent.Cells[idx+1:])
			parent.Cells[idx+1] = node.InternalCell{Child: rightChildPage, Key: oldKey}
		}
		parent.Header().NumCells = uint32(len(parent.Cells))

		rightNode, err := t.pager.GetPage(rightChildPage)
		if err != nil {
			return err
		}
		rightNode.Header().Parent = parentPage

		if len(parent.Cells) <= node.InternalMaxCells {
			return nil
		}

		// Internal overflow: split, pushing the median separator up to the
		// grandparent rather than duplicating it on both sides.
		mid := len(parent.Cells) / 2
		median := parent.Cells[mid]

		siblingPage, err := t.pager.GetNewPageIndex()
		if err != nil {
			return err
		}
		sibling := node.NewInternalNode(siblingPage, false)
		sibling.Cells = append(sibling.Cells, parent.Cells[mid+1:]...)
		sibling.Header().NumCells = uint32(len(sibling.Cells))
		sibling.RightChild = parent.RightChild
		sibling.Header().Parent = parent.Header().Parent
		if err := t.pager.SetPage(siblingPage, sibling); err != nil {
			return err
		}
		if err := t.reparentChildren(sibling); err != nil {
			return err
		}

		parent.Cells = parent.Cells[:mid]
		parent.Header().NumCells = uint32(len(parent.Cells))
		parent.RightChild = median.Child

		if parent.Header().IsRoot {
			return t.splitRoot(siblingPage, median.Key)
		}

		leftChildPage = parent.PageIndex()
		rightChildPage = siblingPage
		key = median.Key
		parentPage = parent.Header().Parent
	}
}

func indexOfChild(n *node.InternalNode, child int32) int {
	for i, c := range n.Cells {
		if c.Child == child {
			return i
		}
	}
	return -1
}

// splitRoot converts the node currently sitting at page 0 into a new
// internal root, relocating its existing content onto a freshly allocated
// left page since the root's page index is fixed at 0 by invariant.
func (t *Table) splitRoot(rightPage int32, separatorKey int64) error {
	oldRoot, err := t.pager.GetPage(0)
	if err != nil {
		return err
	}

	leftPage, err := t.pager.GetNewPageIndex()
	if err != nil {
		return err
	}
	switch v := oldRoot.(type) {
	case *node.LeafNode:
		left := node.NewLeafNode(leftPage, false)
		left.Cells = v.Cells
		left.Header().NumCells = uint32(len(left.Cells))
		left.NextLeaf = rightPage
		left.Header().Parent = 0
		if err := t.pager.SetPage(leftPage, left); err != nil {
			return err
		}
	case *node.InternalNode:
		left := node.NewInternalNode(leftPage, false)
		left.Cells = v.Cells
		left.Header().NumCells = uint32(len(left.Cells))
		left.RightChild = v.RightChild
		left.Header().Parent = 0
		if err := t.pager.SetPage(leftPage, left); err != nil {
			return err
		}
		if err := t.reparentChildren(left); err != nil {
			return err
		}
	default:
		return errors.Errorf("splitRoot: unexpected node type %T", oldRoot)
	}

	rightNode, err := t.pager.GetPage(rightPage)
	if err != nil {
		return err
	}
	rightNode.Header().Parent = 0

	newRoot := node.NewInternalNode(0, true)
	newRoot.RightChild = rightPage
	if err := newRoot.InsertCell(0, node.InternalCell{Child: leftPage, Key: separatorKey}); err != nil {
		return err
	}
	return t.pager.SetPage(0, newRoot)
}

// reparentChildren points every child of n at n's own page index, used
// after relocating an internal node's content onto a new page.
func (t *Table) reparentChildren(n *node.InternalNode) error {
	for _, c := range n.Cells {
		child, err := t.pager.GetPage(c.Child)
		if err != nil {
			return err
		}
		child.Header().Parent = n.PageIndex()
	}
	if n.RightChild != node.NoParent {
		child, err := t.pager.GetPage(n.RightChild)
		if err != nil {
			return err
		}
		child.Header().Parent = n.PageIndex()
	}
	return nil
}
