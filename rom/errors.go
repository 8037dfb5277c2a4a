package rom

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfRange = errors.New("out of range")
	ErrFormat     = errors.New("bad format")
	ErrArgument   = errors.New("bad argument")
)

// BoundsError is returned when a read of Size bytes at Offset does not fit in
// a source of Len bytes, or when an index does not fit in a collection.
type BoundsError struct {
	Offset int
	Size   int
	Len    int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: 0x%X+%d exceeds length 0x%X", ErrOutOfRange, e.Offset, e.Size, e.Len)
}

func (e *BoundsError) Unwrap() error { return ErrOutOfRange }

// FormatError is returned when the data at Offset does not look like What.
type FormatError struct {
	Offset int
	What   string
	Want   uint32
	Got    uint32
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: bad %s at 0x%X: want 0x%X, got 0x%X", ErrFormat, e.What, e.Offset, e.Want, e.Got)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// ArgumentError is a caller mistake, not malformed data.
type ArgumentError struct {
	Name  string
	Value int
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %d", ErrArgument, e.Name, e.Value)
}

func (e *ArgumentError) Unwrap() error { return ErrArgument }

func checkRange(offset, size, length int) error {
	if offset < 0 || size < 0 || offset > length-size {
		return &BoundsError{offset, size, length}
	}
	return nil
}

// CheckIndex returns a *BoundsError if i is not in [0, n).
func CheckIndex(i, n int) error {
	return checkRange(i, 1, n)
}
