package midi

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// cursor is a bounds-checked view over a byte buffer. Every read consumes
// exactly the bytes it returns; returned slices alias the underlying buffer.
// A cursor must not be reused after a read fails.
type cursor struct {
	data []byte
}

func (c *cursor) readBytes(n int) ([]byte, error) {
	if len(c.data) < n {
		return nil, ErrFatal
	}
	b := c.data[:n]
	c.data = c.data[n:]
	return b, nil
}

func (c *cursor) readU8() (uint8, error) {
	b, err := c.readBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// readU7 reads a single data byte, which must have its high bit clear.
func (c *cursor) readU7() (uint8, error) {
	b, err := c.readU8()
	if err != nil {
		return 0, err
	}
	if b > 0x7F {
		return 0, ErrInvalid
	}
	return b, nil
}

func (c *cursor) readU16() (uint16, error) {
	b, err := c.readBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (c *cursor) readU24() (uint32, error) {
	b, err := c.readBytes(3)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]), nil
}

func (c *cursor) readU32() (uint32, error) {
	b, err := c.readBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// readVLQ reads a base-128 variable-length quantity, low 7 bits per byte,
// MSB first, high bit marking continuation. At most 4 bytes so the value
// fits a uint32.
func (c *cursor) readVLQ() (uint32, error) {
	var val uint32
	for i := 0; ; i++ {
		if i > 3 {
			return 0, ErrInvalid
		}
		b, err := c.readU8()
		if err != nil {
			return 0, err
		}
		val = val<<7 | uint32(b&0x7F)
		if b&0x80 == 0 {
			return val, nil
		}
	}
}

// readData reads a VLQ-length-prefixed run of bytes.
func (c *cursor) readData() ([]byte, error) {
	n, err := c.readVLQ()
	if err != nil {
		return nil, err
	}
	return c.readBytes(int(n))
}

// peek returns the next byte without consuming it.
func (c *cursor) peek() (uint8, error) {
	if len(c.data) == 0 {
		return 0, ErrFatal
	}
	return c.data[0], nil
}

func (c *cursor) expectBytes(expected []byte) error {
	b, err := c.readBytes(len(expected))
	if err != nil {
		return err
	}
	if !bytes.Equal(b, expected) {
		return fmt.Errorf("expected % X, got % X: %w", expected, b, ErrInvalid)
	}
	return nil
}

func (c *cursor) expectU8(expected uint8) error {
	b, err := c.readU8()
	if err != nil {
		return err
	}
	if b != expected {
		return fmt.Errorf("expected %#x, got %#x: %w", expected, b, ErrInvalid)
	}
	return nil
}

func (c *cursor) expectU32(expected uint32) error {
	v, err := c.readU32()
	if err != nil {
		return err
	}
	if v != expected {
		return fmt.Errorf("expected %d, got %d: %w", expected, v, ErrInvalid)
	}
	return nil
}
