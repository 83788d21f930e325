package node

import "unsafe"

// PageSize is the fixed size of every page in the database file.
const PageSize = 4096

// Common node header layout: kind (1) + is_root (1) + parent (i32) + n_cells (u32).
const (
	KindSize         = uint32(unsafe.Sizeof(uint8(0)))
	IsRootSize       = uint32(unsafe.Sizeof(uint8(0)))
	ParentSize       = uint32(unsafe.Sizeof(int32(0)))
	NumCellsSize     = uint32(unsafe.Sizeof(uint32(0)))
	CommonHeaderSize = KindSize + IsRootSize + ParentSize + NumCellsSize
)

// Leaf header adds a sibling pointer after the common header, so that
// forward iteration across leaves doesn't require leftmost-descent per leaf.
const (
	NextLeafSize   = uint32(unsafe.Sizeof(int32(0)))
	LeafHeaderSize = CommonHeaderSize + NextLeafSize
)

// Internal header adds the rightmost child pointer after the common header.
const (
	RightChildSize     = uint32(unsafe.Sizeof(int32(0)))
	InternalHeaderSize = CommonHeaderSize + RightChildSize
)

// Leaf cell layout: key (i64) followed by a serialized row.
const LeafKeySize = uint32(unsafe.Sizeof(int64(0)))

var (
	LeafCellSize         = LeafKeySize + RowSize
	LeafSpaceForCells    = uint32(PageSize) - LeafHeaderSize
	LeafMaxCells         = int(LeafSpaceForCells / LeafCellSize)
	LeafSplitRightCount  = (LeafMaxCells + 1 + 1) / 2
	LeafSplitLeftCount   = (LeafMaxCells + 1) - LeafSplitRightCount
)

// Internal cell layout: child page (i32) followed by separator key (i64).
const (
	InternalChildSize = uint32(unsafe.Sizeof(int32(0)))
	InternalKeySize   = uint32(unsafe.Sizeof(int64(0)))
)

var (
	InternalCellSize      = InternalChildSize + InternalKeySize
	InternalSpaceForCells = uint32(PageSize) - InternalHeaderSize
	InternalMaxCells      = int(InternalSpaceForCells / InternalCellSize)
)
