package pager

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"rqlite/node"
)

func tempPath(t *testing.T) string {
	t.Helper()
	f, err := os.CreateTemp("", "pager_test_*.db")
	require.NoError(t, err)
	path := f.Name()
	require.NoError(t, f.Close())
	t.Cleanup(func() { os.Remove(path) })
	return path
}

func TestNewOnEmptyFileHasZeroPages(t *testing.T) {
	p, err := New(tempPath(t))
	require.NoError(t, err)
	assert.Equal(t, 0, p.NumPages())
}

func TestNewRejectsMisalignedFile(t *testing.T) {
	path := tempPath(t)
	require.NoError(t, os.WriteFile(path, make([]byte, PageSize+1), 0600))
	_, err := New(path)
	assert.EqualError(t, err, "invalid database file")
}

func TestGetPageAllocatesBlankLeafBeyondEOF(t *testing.T) {
	p, err := New(tempPath(t))
	require.NoError(t, err)

	n, err := p.GetPage(0)
	require.NoError(t, err)
	leaf, ok := n.(*node.LeafNode)
	require.True(t, ok)
	assert.Equal(t, 0, len(leaf.Cells))
	assert.Equal(t, 1, p.NumPages())
}

func TestGetPageRejectsIndexAtOrBeyondCap(t *testing.T) {
	p, err := New(tempPath(t))
	require.NoError(t, err)
	_, err = p.GetPage(MaxPages)
	assert.EqualError(t, err, "table reach max size")
}

func TestGetTwoPagesRequiresDistinctPopulatedSlots(t *testing.T) {
	p, err := New(tempPath(t))
	require.NoError(t, err)
	_, err = p.GetPage(0)
	require.NoError(t, err)

	_, _, err = p.GetTwoPages(0, 0)
	assert.Error(t, err)

	_, _, err = p.GetTwoPages(0, 1)
	assert.Error(t, err, "page 1 was never populated")

	_, err = p.GetPage(1)
	require.NoError(t, err)
	a, b, err := p.GetTwoPages(0, 1)
	require.NoError(t, err)
	assert.NotNil(t, a)
	assert.NotNil(t, b)
}

func TestFlushAndReopenRoundTrips(t *testing.T) {
	path := tempPath(t)
	p, err := New(path)
	require.NoError(t, err)

	n, err := p.GetPage(0)
	require.NoError(t, err)
	leaf := n.(*node.LeafNode)
	row, err := node.NewRow(5, "alice", "hello")
	require.NoError(t, err)
	require.NoError(t, leaf.InsertCell(0, node.LeafCell{Key: 5, Value: row}))
	leaf.Header().IsRoot = true

	p.Close()

	reopened, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, 1, reopened.NumPages())

	got, err := reopened.GetPage(0)
	require.NoError(t, err)
	gotLeaf := got.(*node.LeafNode)
	assert.Equal(t, leaf.Cells, gotLeaf.Cells)
	assert.True(t, gotLeaf.Header().IsRoot)
}

func TestUntouchedPagesAreNotRewritten(t *testing.T) {
	path := tempPath(t)
	p, err := New(path)
	require.NoError(t, err)
	_, err = p.GetPage(0)
	require.NoError(t, err)
	// page 1 is never fetched or allocated
	p.Close()

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(PageSize), fi.Size())
}
