package main

import (
	"fmt"
	"io"

	"rqlite/node"
	"rqlite/table"
)

type MetaCommandResult int

const (
	MetaCommandSuccess MetaCommandResult = iota
	MetaCommandExit
	MetaCommandUnrecognizedCommand
)

// doMetaCommand dispatches a leading-dot line. It never calls os.Exit
// itself; MetaCommandExit tells the caller to tear down and stop the loop.
func doMetaCommand(t *table.Table, w io.Writer, input string) MetaCommandResult {
	switch input {
	case ".exit":
		return MetaCommandExit
	case ".tree":
		fmt.Fprintln(w, "TREE:")
		if err := t.PrintTree(w); err != nil {
			fmt.Fprintln(w, "ERROR:", err)
		}
		return MetaCommandSuccess
	case ".constants":
		printConstants(w)
		return MetaCommandSuccess
	default:
		return MetaCommandUnrecognizedCommand
	}
}

// printConstants prints the fixed label set from the node layout constants.
// The exact label set is a debugging aid, not an external contract.
func printConstants(w io.Writer) {
	fmt.Fprintln(w, "ROW_SIZE:", node.RowSize)
	fmt.Fprintln(w, "COMMON_NODE_HEADER_SIZE:", node.CommonHeaderSize)
	fmt.Fprintln(w, "LEAF_NODE_HEADER_SIZE:", node.LeafHeaderSize)
	fmt.Fprintln(w, "LEAF_NODE_CELL_SIZE:", node.LeafCellSize)
	fmt.Fprintln(w, "LEAF_NODE_SPACE_FOR_CELLS:", node.LeafSpaceForCells)
	fmt.Fprintln(w, "LEAF_NODE_MAX_CELLS:", node.LeafMaxCells)
}
