package node

import "github.com/pkg/errors"

// InsertCell shifts cells [i, n) right by one, writes cell at i, and bumps
// NumCells. Precondition: len(Cells) < LeafMaxCells — overflow is the
// cursor's job, not this one's.
func (n *LeafNode) InsertCell(i int, cell LeafCell) error {
	if len(n.Cells) >= LeafMaxCells {
		return errors.New("InsertCell: leaf is full")
	}
	n.Cells = append(n.Cells, LeafCell{})
	copy(n.Cells[i+1:], n.Cells[i:])
	n.Cells[i] = cell
	n.hdr.NumCells = uint32(len(n.Cells))
	return nil
}

// InsertCell shifts cells [i, n) right by one, writes cell at i, and bumps
// NumCells. Precondition: len(Cells) < InternalMaxCells.
func (n *InternalNode) InsertCell(i int, cell InternalCell) error {
	if len(n.Cells) >= InternalMaxCells {
		return errors.New("InsertCell: internal node is full")
	}
	n.Cells = append(n.Cells, InternalCell{})
	copy(n.Cells[i+1:], n.Cells[i:])
	n.Cells[i] = cell
	n.hdr.NumCells = uint32(len(n.Cells))
	return nil
}
