package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

func printPrompt(w io.Writer) {
	fmt.Fprint(w, "rqlite> ")
}

// readInput reads one line, trimming the trailing newline. io.EOF is
// returned unwrapped so callers can distinguish clean termination from a
// real read failure.
func readInput(reader *bufio.Reader) (string, error) {
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(input, "\r\n"), nil
}
