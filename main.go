// Command rqlite is a minimal single-table embedded database with a REPL
// front-end. Records are fixed-layout (id, name, description) tuples keyed
// by id, persisted as a disk-resident B+-tree of 4096-byte pages.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"rqlite/table"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: rqlite <database file>")
		os.Exit(1)
	}

	t, err := table.Open(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}

	// runRepl closes t itself on every exit path (EOF or .exit).
	runRepl(os.Stdin, os.Stdout, t)
}

// runRepl drives the prompt/read/dispatch loop until EOF or .exit.
func runRepl(r io.Reader, w io.Writer, t *table.Table) {
	reader := bufio.NewReader(r)
	for {
		printPrompt(w)
		input, err := readInput(reader)
		if err != nil {
			if err == io.EOF {
				t.Close()
				return
			}
			fmt.Fprintln(w, "ERROR:", err)
			continue
		}

		if input == "" {
			continue
		}

		if input[0] == '.' {
			switch doMetaCommand(t, w, input) {
			case MetaCommandSuccess:
				continue
			case MetaCommandExit:
				t.Close()
				return
			case MetaCommandUnrecognizedCommand:
				fmt.Fprintf(w, "ERROR: unknown command: '%s'\n", input)
				continue
			}
		}

		var stmt Statement
		switch prepareStatement(input, &stmt) {
		case PrepareSuccess:
			executeStatement(t, w, &stmt)
		case PrepareSyntaxError:
			fmt.Fprintln(w, "ERROR: insert <id> <name> <description>.")
		case PrepareUnrecognizedStatement:
			fmt.Fprintf(w, "ERROR: unkown statement keyword: '%s'\n", input)
		}
	}
}
