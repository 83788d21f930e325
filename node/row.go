package node

import (
	"encoding/binary"
	"strings"

	"github.com/pkg/errors"
	"rqlite/column"
)

const (
	NameSize        = 32
	DescriptionSize = 256
)

var rowSchema = column.RowSchema()

var (
	idOffset   = rowSchema[0].Offset
	nameOffset = rowSchema[1].Offset
	descOffset = rowSchema[2].Offset
	// RowSize is the serialized size of a Row: 8 + 32 + 256 = 296 bytes.
	RowSize = rowSchema.RowSize()
)

// Row is a fixed-layout record: a signed 64-bit id, a NUL-padded 32-byte
// name and a NUL-padded 256-byte description.
type Row struct {
	ID          int64
	Name        [NameSize]byte
	Description [DescriptionSize]byte
}

// NewRow builds a Row from plain strings, rejecting fields that overflow
// their fixed-width column.
func NewRow(id int64, name, description string) (Row, error) {
	if len(name) > NameSize {
		return Row{}, errors.New("name too long")
	}
	if len(description) > DescriptionSize {
		return Row{}, errors.New("description too long")
	}
	var r Row
	r.ID = id
	copy(r.Name[:], name)
	copy(r.Description[:], description)
	return r, nil
}

// SerializeRow writes r into dst, which must be exactly RowSize bytes.
func SerializeRow(r Row, dst []byte) error {
	if uint32(len(dst)) != RowSize {
		return errors.Errorf("SerializeRow: dst length %d, expected %d", len(dst), RowSize)
	}
	binary.LittleEndian.PutUint64(dst[idOffset:idOffset+8], uint64(r.ID))
	copy(dst[nameOffset:nameOffset+NameSize], r.Name[:])
	copy(dst[descOffset:descOffset+DescriptionSize], r.Description[:])
	return nil
}

// DeserializeRow is the inverse of SerializeRow.
func DeserializeRow(src []byte) (Row, error) {
	if uint32(len(src)) != RowSize {
		return Row{}, errors.Errorf("DeserializeRow: src length %d, expected %d", len(src), RowSize)
	}
	var r Row
	r.ID = int64(binary.LittleEndian.Uint64(src[idOffset : idOffset+8]))
	copy(r.Name[:], src[nameOffset:nameOffset+NameSize])
	copy(r.Description[:], src[descOffset:descOffset+DescriptionSize])
	return r, nil
}

// NameString trims the trailing NUL padding for display.
func (r Row) NameString() string {
	return strings.TrimRight(string(r.Name[:]), "\x00")
}

// DescriptionString trims the trailing NUL padding for display.
func (r Row) DescriptionString() string {
	return strings.TrimRight(string(r.Description[:]), "\x00")
}
