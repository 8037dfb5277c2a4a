package rom

import (
	"io"
)

// Source is a length-bounded, randomly addressable byte buffer.
type Source interface {
	Len() int
	At(offset int) (byte, error)
	Set(offset int, b byte) error
}

// ByteArray is a Source backed by a byte slice.
type ByteArray struct {
	data []byte
}

// NewByteArray wraps data without copying it.
func NewByteArray(data []byte) *ByteArray {
	return &ByteArray{data}
}

// MakeByteArray allocates a zeroed ByteArray of n bytes.
func MakeByteArray(n int) (*ByteArray, error) {
	if n < 0 {
		return nil, &ArgumentError{"length", n}
	}
	return &ByteArray{make([]byte, n)}, nil
}

// CopyRange copies n bytes of src starting at start into a new ByteArray.
func CopyRange(src Source, start int, n int) (*ByteArray, error) {
	if n < 0 {
		return nil, &ArgumentError{"length", n}
	}
	if err := checkRange(start, n, src.Len()); err != nil {
		return nil, err
	}
	if ba, ok := src.(*ByteArray); ok {
		data := make([]byte, n)
		copy(data, ba.data[start:start+n])
		return &ByteArray{data}, nil
	}
	data := make([]byte, n)
	for i := range data {
		b, err := src.At(start + i)
		if err != nil {
			return nil, err
		}
		data[i] = b
	}
	return &ByteArray{data}, nil
}

func (b *ByteArray) Len() int { return len(b.data) }

func (b *ByteArray) At(offset int) (byte, error) {
	if err := checkRange(offset, 1, len(b.data)); err != nil {
		return 0, err
	}
	return b.data[offset], nil
}

func (b *ByteArray) Set(offset int, v byte) error {
	if err := checkRange(offset, 1, len(b.data)); err != nil {
		return err
	}
	b.data[offset] = v
	return nil
}

// Bytes returns the backing slice.
func (b *ByteArray) Bytes() []byte { return b.data }

// OffsetReader is an io.Reader over a Source, starting at a given offset and
// running to the end of the source.
type OffsetReader struct {
	src Source
	pos int
}

func NewOffsetReader(src Source, offset int) *OffsetReader {
	return &OffsetReader{src, offset}
}

// Pos returns the offset of the next byte Read will return.
func (r *OffsetReader) Pos() int { return r.pos }

func (r *OffsetReader) Read(p []byte) (int, error) {
	if r.pos >= r.src.Len() {
		return 0, io.EOF
	}
	if len(p) > r.src.Len()-r.pos {
		p = p[:r.src.Len()-r.pos]
	}

	if ba, ok := r.src.(*ByteArray); ok {
		n := copy(p, ba.data[r.pos:])
		r.pos += n
		return n, nil
	}

	for i := range p {
		b, err := r.src.At(r.pos)
		if err != nil {
			return i, err
		}
		p[i] = b
		r.pos++
	}
	return len(p), nil
}
