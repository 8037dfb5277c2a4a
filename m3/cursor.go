package m3

import (
	"github.com/nbarena/m3rom/gba"
)

// cursor walks variable-length records, advancing only on successful reads.
type cursor struct {
	r   *gba.Reader
	off int
}

func (c *cursor) u16() (uint16, error) {
	v, err := c.r.Uint16(c.off)
	if err != nil {
		return 0, err
	}
	c.off += 2
	return v, nil
}

func (c *cursor) u32() (uint32, error) {
	v, err := c.r.Uint32(c.off)
	if err != nil {
		return 0, err
	}
	c.off += 4
	return v, nil
}

func (c *cursor) i32() (int32, error) {
	v, err := c.u32()
	return int32(v), err
}

func (c *cursor) bytes(n int) ([]byte, error) {
	b, err := c.r.Bytes(c.off, n)
	if err != nil {
		return nil, err
	}
	c.off += n
	return b, nil
}

func (c *cursor) skip(n int) {
	c.off += n
}
