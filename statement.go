package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"rqlite/table"
)

type StatementType int

const (
	StatementInsert StatementType = iota
	StatementSelect
)

type Statement struct {
	Type StatementType
	ID   int64
	Name string
	Desc string
}

type PrepareResult int

const (
	PrepareSuccess PrepareResult = iota
	PrepareSyntaxError
	PrepareUnrecognizedStatement
)

// prepareStatement tokenizes input and, for insert, validates token count
// and parses the id. All other validation (length, duplicate, capacity)
// happens at execution time since it needs the table.
func prepareStatement(input string, stmt *Statement) PrepareResult {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return PrepareUnrecognizedStatement
	}

	switch fields[0] {
	case "insert":
		stmt.Type = StatementInsert
		if len(fields) != 4 {
			return PrepareSyntaxError
		}
		id, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return PrepareSyntaxError
		}
		stmt.ID = id
		stmt.Name = fields[2]
		stmt.Desc = fields[3]
		return PrepareSuccess
	case "select":
		stmt.Type = StatementSelect
		return PrepareSuccess
	default:
		return PrepareUnrecognizedStatement
	}
}

// executeStatement runs a prepared statement against t, writing output and
// error messages to w. It never returns a Go error: every failure here is
// user-facing REPL output, not a caller-handled error value.
func executeStatement(t *table.Table, w io.Writer, stmt *Statement) {
	switch stmt.Type {
	case StatementInsert:
		if err := t.Insert(stmt.ID, stmt.Name, stmt.Desc); err != nil {
			fmt.Fprintf(w, "ERROR: %s.\n", err)
			return
		}
		fmt.Fprintln(w, "executed.")
	case StatementSelect:
		if err := t.Select(w); err != nil {
			fmt.Fprintf(w, "ERROR: %s.\n", err)
			return
		}
		fmt.Fprintln(w, "executed.")
	}
}
