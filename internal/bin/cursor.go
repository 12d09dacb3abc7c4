// SPDX-License-Identifier: EPL-2.0

// Package bin provides bounds-checked binary reading over byte slices.
//
// Chunk-based audio containers (RIFF/WAVE, FORM/AIFF) mix little- and
// big-endian fields in the same file, and real-world files are often
// truncated. The Cursor type makes every read explicit about both
// concerns: each accessor names its endianness and returns an error
// instead of panicking when the data runs out.
package bin

import (
	"encoding/binary"
	"errors"
)

// ErrOutOfBounds indicates a read past the end of the underlying data.
var ErrOutOfBounds = errors.New("read past end of data")

// Cursor reads integers and byte runs from a slice while tracking position.
// The zero value is not usable; construct with NewCursor.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor returns a cursor positioned at the start of data.
// The cursor does not copy data; callers must not mutate it while reading.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Pos returns the current read position in bytes.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	if c.pos >= len(c.data) {
		return 0
	}
	return len(c.data) - c.pos
}

// Len returns the total length of the underlying data.
func (c *Cursor) Len() int { return len(c.data) }

// Seek moves the read position to an absolute offset.
// Seeking past the end is allowed; subsequent reads fail with ErrOutOfBounds.
func (c *Cursor) Seek(offset int) error {
	if offset < 0 {
		return ErrOutOfBounds
	}
	c.pos = offset
	return nil
}

// Skip advances the read position by n bytes without reading them.
func (c *Cursor) Skip(n int) error {
	if n < 0 || c.pos+n > len(c.data) {
		return ErrOutOfBounds
	}
	c.pos += n
	return nil
}

// Bytes reads n raw bytes. The returned slice aliases the underlying data.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.data) {
		return nil, ErrOutOfBounds
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// U8 reads one unsigned byte.
func (c *Cursor) U8() (uint8, error) {
	if c.pos+1 > len(c.data) {
		return 0, ErrOutOfBounds
	}
	v := c.data[c.pos]
	c.pos++
	return v, nil
}

// I8 reads one signed byte.
func (c *Cursor) I8() (int8, error) {
	v, err := c.U8()
	return int8(v), err
}

// U16BE reads a big-endian uint16.
func (c *Cursor) U16BE() (uint16, error) {
	if c.pos+2 > len(c.data) {
		return 0, ErrOutOfBounds
	}
	v := binary.BigEndian.Uint16(c.data[c.pos:])
	c.pos += 2
	return v, nil
}

// U16LE reads a little-endian uint16.
func (c *Cursor) U16LE() (uint16, error) {
	if c.pos+2 > len(c.data) {
		return 0, ErrOutOfBounds
	}
	v := binary.LittleEndian.Uint16(c.data[c.pos:])
	c.pos += 2
	return v, nil
}

// I16BE reads a big-endian int16.
func (c *Cursor) I16BE() (int16, error) {
	v, err := c.U16BE()
	return int16(v), err
}

// I16LE reads a little-endian int16.
func (c *Cursor) I16LE() (int16, error) {
	v, err := c.U16LE()
	return int16(v), err
}

// U32BE reads a big-endian uint32.
func (c *Cursor) U32BE() (uint32, error) {
	if c.pos+4 > len(c.data) {
		return 0, ErrOutOfBounds
	}
	v := binary.BigEndian.Uint32(c.data[c.pos:])
	c.pos += 4
	return v, nil
}

// U32LE reads a little-endian uint32.
func (c *Cursor) U32LE() (uint32, error) {
	if c.pos+4 > len(c.data) {
		return 0, ErrOutOfBounds
	}
	v := binary.LittleEndian.Uint32(c.data[c.pos:])
	c.pos += 4
	return v, nil
}

// FourCC reads a four-character chunk identifier as a string.
func (c *Cursor) FourCC() (string, error) {
	b, err := c.Bytes(4)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// PascalString reads a length-prefixed string padded to an even total size.
// AIFF marker names use this layout: one length byte, the name bytes, and
// a pad byte when length+1 is odd.
func (c *Cursor) PascalString() (string, error) {
	n, err := c.U8()
	if err != nil {
		return "", err
	}
	b, err := c.Bytes(int(n))
	if err != nil {
		return "", err
	}
	// 1 length byte + n name bytes; pad to even
	if (int(n)+1)%2 != 0 {
		if err := c.Skip(1); err != nil {
			return "", err
		}
	}
	return string(b), nil
}
