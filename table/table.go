// Package table holds offset tables: lists of absolute byte offsets, with or
// without the size of the block at each offset.
package table

import (
	"github.com/nbarena/m3rom/rom"
)

// OffsetTable maps an index to an absolute byte offset.
type OffsetTable struct {
	offsets []int
}

func NewOffsetTable(offsets []int) *OffsetTable {
	o := make([]int, len(offsets))
	copy(o, offsets)
	return &OffsetTable{o}
}

func (t *OffsetTable) Len() int { return len(t.offsets) }

func (t *OffsetTable) Offset(i int) (int, error) {
	if err := rom.CheckIndex(i, len(t.offsets)); err != nil {
		return 0, err
	}
	return t.offsets[i], nil
}

// SizedOffsetTable is an OffsetTable that also records the byte length of
// each block.
type SizedOffsetTable struct {
	OffsetTable
	sizes []int
}

func NewSizedOffsetTable(offsets []int, sizes []int) (*SizedOffsetTable, error) {
	if len(offsets) != len(sizes) {
		return nil, &rom.ArgumentError{Name: "size count", Value: len(sizes)}
	}
	s := make([]int, len(sizes))
	copy(s, sizes)
	return &SizedOffsetTable{*NewOffsetTable(offsets), s}, nil
}

func (t *SizedOffsetTable) Size(i int) (int, error) {
	if err := rom.CheckIndex(i, len(t.sizes)); err != nil {
		return 0, err
	}
	return t.sizes[i], nil
}

// Entry returns both the offset and the size of block i.
func (t *SizedOffsetTable) Entry(i int) (offset int, size int, err error) {
	if offset, err = t.Offset(i); err != nil {
		return
	}
	size, err = t.Size(i)
	return
}
