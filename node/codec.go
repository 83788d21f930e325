package node

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Encode serializes n into a fresh PageSize buffer, zero-padded from the
// last cell to the end of the page. It never produces a short write.
func Encode(n Node) ([]byte, error) {
	buf := make([]byte, PageSize)
	switch v := n.(type) {
	case *LeafNode:
		encodeLeaf(v, buf)
	case *InternalNode:
		encodeInternal(v, buf)
	default:
		return nil, errors.Errorf("Encode: unknown node type %T", n)
	}
	return buf, nil
}

func encodeCommonHeader(buf []byte, kind Kind, isRoot bool, parent int32, numCells uint32) {
	buf[0] = byte(kind)
	if isRoot {
		buf[1] = 1
	}
	binary.LittleEndian.PutUint32(buf[2:6], uint32(parent))
	binary.LittleEndian.PutUint32(buf[6:10], numCells)
}

func encodeLeaf(n *LeafNode, buf []byte) {
	nCells := uint32(len(n.Cells))
	encodeCommonHeader(buf, Leaf, n.hdr.IsRoot, n.hdr.Parent, nCells)
	binary.LittleEndian.PutUint32(buf[10:14], uint32(n.NextLeaf))

	off := int(LeafHeaderSize)
	for i := uint32(0); i < nCells; i++ {
		c := n.Cells[i]
		binary.LittleEndian.PutUint64(buf[off:off+8], uint64(c.Key))
		off += 8
		// SerializeRow cannot fail here: the slice is exactly RowSize.
		_ = SerializeRow(c.Value, buf[off:off+int(RowSize)])
		off += int(RowSize)
	}
}

func encodeInternal(n *InternalNode, buf []byte) {
	nCells := uint32(len(n.Cells))
	encodeCommonHeader(buf, Internal, n.hdr.IsRoot, n.hdr.Parent, nCells)
	binary.LittleEndian.PutUint32(buf[10:14], uint32(n.RightChild))

	off := int(InternalHeaderSize)
	for i := uint32(0); i < nCells; i++ {
		c := n.Cells[i]
		binary.LittleEndian.PutUint32(buf[off:off+4], uint32(c.Child))
		off += 4
		binary.LittleEndian.PutUint64(buf[off:off+8], uint64(c.Key))
		off += 8
	}
}

// Decode reads one page's worth of bytes into a Node bound to pageIndex.
// A kind byte outside {Leaf, Internal} is a fatal corruption error.
func Decode(buf []byte, pageIndex int32) (Node, error) {
	if len(buf) != PageSize {
		return nil, errors.Errorf("Decode: page must be %d bytes, got %d", PageSize, len(buf))
	}
	kind := Kind(buf[0])
	isRoot := buf[1] == 1
	parent := int32(binary.LittleEndian.Uint32(buf[2:6]))
	numCells := binary.LittleEndian.Uint32(buf[6:10])

	switch kind {
	case Leaf:
		return decodeLeaf(buf, pageIndex, isRoot, parent, numCells)
	case Internal:
		return decodeInternal(buf, pageIndex, isRoot, parent, numCells)
	default:
		return nil, errors.Errorf("Decode: corrupt node kind byte %d at page %d", buf[0], pageIndex)
	}
}

func decodeLeaf(buf []byte, pageIndex int32, isRoot bool, parent int32, numCells uint32) (*LeafNode, error) {
	nextLeaf := int32(binary.LittleEndian.Uint32(buf[10:14]))
	n := &LeafNode{
		pageIndex: pageIndex,
		hdr:       Header{Parent: parent, IsRoot: isRoot, NumCells: numCells},
		NextLeaf:  nextLeaf,
		Cells:     make([]LeafCell, numCells),
	}
	off := int(LeafHeaderSize)
	for i := uint32(0); i < numCells; i++ {
		key := int64(binary.LittleEndian.Uint64(buf[off : off+8]))
		off += 8
		row, err := DeserializeRow(buf[off : off+int(RowSize)])
		if err != nil {
			return nil, errors.Wrapf(err, "decode leaf cell %d", i)
		}
		off += int(RowSize)
		n.Cells[i] = LeafCell{Key: key, Value: row}
	}
	return n, nil
}

func decodeInternal(buf []byte, pageIndex int32, isRoot bool, parent int32, numCells uint32) (*InternalNode, error) {
	rightChild := int32(binary.LittleEndian.Uint32(buf[10:14]))
	n := &InternalNode{
		pageIndex:  pageIndex,
		hdr:        Header{Parent: parent, IsRoot: isRoot, NumCells: numCells},
		RightChild: rightChild,
		Cells:      make([]InternalCell, numCells),
	}
	off := int(InternalHeaderSize)
	for i := uint32(0); i < numCells; i++ {
		child := int32(binary.LittleEndian.Uint32(buf[off : off+4]))
		off += 4
		key := int64(binary.LittleEndian.Uint64(buf[off : off+8]))
		off += 8
		n.Cells[i] = InternalCell{Child: child, Key: key}
	}
	return n, nil
}
