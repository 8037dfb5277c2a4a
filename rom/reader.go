package rom

import (
	"encoding/binary"
)

// Reader decodes fixed-width integers at explicit offsets of a Source.
type Reader struct {
	Source Source
	Order  binary.ByteOrder
}

// NewReader returns a Reader over src. A nil order means little-endian, which
// is what the GBA uses.
func NewReader(src Source, order binary.ByteOrder) *Reader {
	if order == nil {
		order = binary.LittleEndian
	}
	return &Reader{src, order}
}

// Bytes returns a copy of n bytes at offset.
func (r *Reader) Bytes(offset int, n int) ([]byte, error) {
	if n < 0 {
		return nil, &ArgumentError{"length", n}
	}
	if err := checkRange(offset, n, r.Source.Len()); err != nil {
		return nil, err
	}

	buf := make([]byte, n)
	if ba, ok := r.Source.(*ByteArray); ok {
		copy(buf, ba.data[offset:offset+n])
		return buf, nil
	}

	for i := range buf {
		b, err := r.Source.At(offset + i)
		if err != nil {
			return nil, err
		}
		buf[i] = b
	}
	return buf, nil
}

func (r *Reader) Uint8(offset int) (uint8, error) {
	return r.Source.At(offset)
}

func (r *Reader) Int8(offset int) (int8, error) {
	b, err := r.Source.At(offset)
	return int8(b), err
}

func (r *Reader) Uint16(offset int) (uint16, error) {
	var raw [2]byte
	if err := r.fill(offset, raw[:]); err != nil {
		return 0, err
	}
	return r.Order.Uint16(raw[:]), nil
}

func (r *Reader) Int16(offset int) (int16, error) {
	v, err := r.Uint16(offset)
	return int16(v), err
}

func (r *Reader) Uint32(offset int) (uint32, error) {
	var raw [4]byte
	if err := r.fill(offset, raw[:]); err != nil {
		return 0, err
	}
	return r.Order.Uint32(raw[:]), nil
}

func (r *Reader) Int32(offset int) (int32, error) {
	v, err := r.Uint32(offset)
	return int32(v), err
}

func (r *Reader) fill(offset int, buf []byte) error {
	if err := checkRange(offset, len(buf), r.Source.Len()); err != nil {
		return err
	}
	if ba, ok := r.Source.(*ByteArray); ok {
		copy(buf, ba.data[offset:])
		return nil
	}
	for i := range buf {
		b, err := r.Source.At(offset + i)
		if err != nil {
			return err
		}
		buf[i] = b
	}
	return nil
}
