package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"rqlite/table"
)

func tempDBPath(t *testing.T) string {
	t.Helper()
	f, err := os.CreateTemp("", "rqlite_repl_*.db")
	require.NoError(t, err)
	path := f.Name()
	require.NoError(t, f.Close())
	t.Cleanup(func() { os.Remove(path) })
	return path
}

// runScript feeds lines through the REPL loop against a fresh table at
// path, returning everything written to stdout.
func runScript(t *testing.T, path string, lines ...string) string {
	t.Helper()
	tb, err := table.Open(path)
	require.NoError(t, err)

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	runRepl(in, &out, tb)
	return out.String()
}

func promptsStripped(s string) string {
	return strings.ReplaceAll(s, "rqlite> ", "")
}

func TestEmptySelectPrintsOnlyExecuted(t *testing.T) {
	out := runScript(t, tempDBPath(t), "select", ".exit")
	assert.Equal(t, "executed.\n", promptsStripped(out))
}

func TestInsertThenSelect(t *testing.T) {
	out := runScript(t, tempDBPath(t),
		"insert 5 alice hello",
		"insert 2 bob world",
		"select",
		".exit",
	)
	want := "executed.\nexecuted.\n[2, bob, world]\n[5, alice, hello]\nexecuted.\n"
	assert.Equal(t, want, promptsStripped(out))
}

func TestDuplicateKeyRejected(t *testing.T) {
	out := runScript(t, tempDBPath(t),
		"insert 7 a b",
		"insert 7 c d",
		"select",
		".exit",
	)
	want := "executed.\nERROR: key '7' already exist.\n[7, a, b]\nexecuted.\n"
	assert.Equal(t, want, promptsStripped(out))
}

func TestRootSplitShowsInTree(t *testing.T) {
	var lines []string
	for id := 1; id <= 14; id++ {
		lines = append(lines, fmt.Sprintf("insert %d u%d d", id, id))
	}
	lines = append(lines, ".tree", ".exit")
	out := promptsStripped(runScript(t, tempDBPath(t), lines...))

	assert.Contains(t, out, "TREE:\n- internal (size 1)\n")
	assert.Contains(t, out, "  - leaf (size 7)\n")
	assert.Contains(t, out, "- key 7\n")
}

func TestPersistenceAcrossReopen(t *testing.T) {
	path := tempDBPath(t)
	out1 := runScript(t, path, "insert 3 c cc", "insert 1 a aa", "insert 2 b bb", ".exit")
	assert.Contains(t, out1, "executed.")

	out2 := promptsStripped(runScript(t, path, "select", ".exit"))
	want := "[1, a, aa]\n[2, b, bb]\n[3, c, cc]\nexecuted.\n"
	assert.Equal(t, want, out2)
}

func TestValidationErrors(t *testing.T) {
	out := promptsStripped(runScript(t, tempDBPath(t),
		"insert abc alice x",
		"insert 3 "+strings.Repeat("a", 33)+" x",
		".exit",
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ERROR: insert <id> <name> <description>.", lines[0])
	assert.Equal(t, "ERROR: name too long.", lines[1])
}

func TestUnknownCommandAndStatement(t *testing.T) {
	out := promptsStripped(runScript(t, tempDBPath(t), ".bogus", "bogus", ".exit"))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ERROR: unknown command: '.bogus'", lines[0])
	assert.Equal(t, "ERROR: unkown statement keyword: 'bogus'", lines[1])
}

func TestBlankLinesAreIgnored(t *testing.T) {
	out := promptsStripped(runScript(t, tempDBPath(t), "", "", ".exit"))
	assert.Equal(t, "", out)
}

func TestConstantsPrintsFixedLabelSet(t *testing.T) {
	out := promptsStripped(runScript(t, tempDBPath(t), ".constants", ".exit"))
	assert.Contains(t, out, "ROW_SIZE:")
	assert.Contains(t, out, "LEAF_NODE_MAX_CELLS:")
}
