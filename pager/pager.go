// Package pager implements the bounded page cache: lazy fetch from disk,
// allocate-on-demand for new pages, and flush-all on teardown. There is no
// LRU eviction — the page-count cap is the hard limit on table size.
package pager

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"rqlite/node"
)

const (
	PageSize = node.PageSize
	// MaxPages bounds the slot array; table size is hard-capped at
	// MaxPages * node.LeafMaxCells rows (ignoring internal overhead).
	MaxPages = 64
)

// Pager owns the file handle and the bounded slot array exclusively. It is
// the only component that mutates the slot array.
type Pager struct {
	file   *os.File
	slots  [MaxPages]node.Node
	nPages int
}

// New opens or creates the file at path. The file size must already be a
// multiple of PageSize.
func New(path string) (*Pager, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, errors.Wrap(err, "open database file")
	}
	fi, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "stat database file")
	}
	size := fi.Size()
	if size%PageSize != 0 {
		return nil, errors.New("invalid database file")
	}
	return &Pager{file: f, nPages: int(size / PageSize)}, nil
}

// NumPages reports how many pages are known to exist (on file or newly
// allocated in memory).
func (p *Pager) NumPages() int { return p.nPages }

// GetNewPageIndex returns the index the next allocation should use. It is
// the single gatekeeper for the page cap: callers must check this error
// before ever calling SetPage with the result, so an insert that would grow
// the tree past MaxPages fails cleanly instead of reaching SetPage at all.
func (p *Pager) GetNewPageIndex() (int32, error) {
	if p.nPages >= MaxPages {
		return 0, errors.New("table reach max size")
	}
	return int32(p.nPages), nil
}

// GetPage returns the node at page i, fetching it from disk or allocating
// a blank leaf if it hasn't been touched yet.
func (p *Pager) GetPage(i int32) (node.Node, error) {
	if i < 0 || i >= MaxPages {
		return nil, errors.New("table reach max size")
	}
	if p.slots[i] != nil {
		return p.slots[i], nil
	}
	if int(i) < p.nPages {
		n, err := p.fetchFromDisk(i)
		if err != nil {
			return nil, err
		}
		p.slots[i] = n
		return n, nil
	}
	n := node.NewLeafNode(i, false)
	p.slots[i] = n
	if int(i) >= p.nPages {
		p.nPages = int(i) + 1
	}
	return n, nil
}

// SetPage installs n at page i directly, used when a page is freshly
// constructed (new allocation, root conversion) rather than fetched.
// Bounds-checked on its own terms, independent of GetNewPageIndex, since a
// write past the slot array would otherwise panic rather than fail cleanly.
func (p *Pager) SetPage(i int32, n node.Node) error {
	if i < 0 || i >= MaxPages {
		return errors.New("table reach max size")
	}
	p.slots[i] = n
	if int(i) >= p.nPages {
		p.nPages = int(i) + 1
	}
	return nil
}

// GetTwoPages returns two distinct, already-populated slots simultaneously.
// It does not fetch or allocate. Unused by the current split
// implementation, which redistributes cells through a merged slice,
// mutates the old page in place and installs the new one with SetPage
// instead of holding both nodes open at once.
func (p *Pager) GetTwoPages(i, j int32) (node.Node, node.Node, error) {
	if i == j {
		return nil, nil, errors.New("GetTwoPages: indices must differ")
	}
	if i < 0 || i >= MaxPages || j < 0 || j >= MaxPages {
		return nil, nil, errors.New("GetTwoPages: index out of range")
	}
	a, b := p.slots[i], p.slots[j]
	if a == nil || b == nil {
		return nil, nil, errors.New("GetTwoPages: both slots must already be populated")
	}
	return a, b, nil
}

func (p *Pager) fetchFromDisk(i int32) (node.Node, error) {
	buf := make([]byte, PageSize)
	off := int64(i) * PageSize
	if _, err := p.file.ReadAt(buf, off); err != nil {
		return nil, errors.Wrapf(err, "read page %d", i)
	}
	n, err := node.Decode(buf, i)
	if err != nil {
		return nil, errors.Wrapf(err, "decode page %d", i)
	}
	return n, nil
}

// FlushPage writes a populated slot back to disk. An empty slot is a no-op:
// pages never touched are never rewritten.
func (p *Pager) FlushPage(i int32) error {
	n := p.slots[i]
	if n == nil {
		return nil
	}
	buf, err := node.Encode(n)
	if err != nil {
		return errors.Wrapf(err, "encode page %d", i)
	}
	off := int64(i) * PageSize
	if _, err := p.file.WriteAt(buf, off); err != nil {
		return errors.Wrapf(err, "write page %d", i)
	}
	return nil
}

// Close flushes every populated slot and closes the file. There is no
// explicit dirty bit: every populated slot is considered dirty and
// rewritten. A flush failure is fatal — single writer, no journal, no
// partial-success recovery.
func (p *Pager) Close() {
	for i := 0; i < p.nPages; i++ {
		if err := p.FlushPage(int32(i)); err != nil {
			fmt.Fprintln(os.Stderr, "ERROR:", err)
			os.Exit(1)
		}
	}
	if err := p.file.Sync(); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", errors.Wrap(err, "sync database file"))
		os.Exit(1)
	}
	if err := p.file.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", errors.Wrap(err, "close database file"))
		os.Exit(1)
	}
}
