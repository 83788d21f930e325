// Package table implements the node codec's consumer: the cursor-driven
// insert/select surface, the table façade that owns the pager and root
// index, and the .tree diagnostic dump.
package table

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"rqlite/node"
	"rqlite/pager"
)

const (
	MaxNameLength        = node.NameSize
	MaxDescriptionLength = node.DescriptionSize
)

// Table holds the root index and the pager, and exposes insert/select.
type Table struct {
	pager *pager.Pager
	root  int32
}

// Open opens pager at path, allocating a fresh leaf root if the file is
// new; otherwise it assumes the file already holds a valid tree rooted at
// page 0.
func Open(path string) (*Table, error) {
	pg, err := pager.New(path)
	if err != nil {
		return nil, err
	}
	t := &Table{pager: pg, root: 0}
	if pg.NumPages() == 0 {
		root := node.NewLeafNode(0, true)
		if err := pg.SetPage(0, root); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Close flushes every dirty page and closes the file.
func (t *Table) Close() { t.pager.Close() }

// Insert validates args, rejects a duplicate key, and writes the row,
// possibly triggering a leaf split and root split.
func (t *Table) Insert(id int64, name, description string) error {
	if id <= 0 {
		return errors.New("id must be greater than 0")
	}
	if len(name) > MaxNameLength {
		return errors.New("name too long")
	}
	if len(description) > MaxDescriptionLength {
		return errors.New("description too long")
	}

	c, err := FromKey(t, id)
	if err != nil {
		return err
	}
	if !c.endOfTable {
		cell, ok, err := c.Read()
		if err != nil {
			return err
		}
		if ok && cell.Key == id {
			return errors.Errorf("key '%d' already exist", id)
		}
	}

	row, err := node.NewRow(id, name, description)
	if err != nil {
		return err
	}
	return c.Write(node.LeafCell{Key: id, Value: row})
}

// Select walks the tree from the first key to the last, writing one
// formatted row per line to w.
func (t *Table) Select(w io.Writer) error {
	c, err := FromStart(t)
	if err != nil {
		return err
	}
	for !c.EndOfTable() {
		cell, ok, err := c.Read()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		fmt.Fprintf(w, "[%d, %s, %s]\n", cell.Key, cell.Value.NameString(), cell.Value.DescriptionString())
		if err := c.Advance(); err != nil {
			return err
		}
	}
	return nil
}

// PrintTree dumps the tree from page 0 to w, see diagnostics.go.
func (t *Table) PrintTree(w io.Writer) error {
	return printTree(t, w, t.root, 0)
}
