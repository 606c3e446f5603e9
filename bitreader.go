package slippi

import (
	"encoding/binary"
	"math"
)

// A BitReader is a stateless, big-endian primitive reader over a byte
// slice. It tracks its position so that decode errors can be localized to
// a byte offset within the slice it was constructed from.
//
// BitReader never allocates on the read path except where a method
// explicitly returns a copy (ReadBytes). Truncated reads return a
// *ParseError wrapping the attempted read and the offset at which it
// failed.
type BitReader struct {
	buf []byte
	pos int
}

// NewBitReader returns a BitReader positioned at the start of buf.
func NewBitReader(buf []byte) *BitReader {
	return &BitReader{buf: buf}
}

// Offset returns the reader's current position within its backing slice.
func (r *BitReader) Offset() int64 {
	return int64(r.pos)
}

// Len returns the total length of the backing slice.
func (r *BitReader) Len() int {
	return len(r.buf)
}

// Remaining returns the number of unread bytes.
func (r *BitReader) Remaining() int {
	return len(r.buf) - r.pos
}

// Bytes returns the unread tail of the backing slice without advancing the
// reader.
func (r *BitReader) Bytes() []byte {
	return r.buf[r.pos:]
}

func (r *BitReader) require(n int) error {
	if r.Remaining() < n {
		return parseErrorf(r.Offset(), "truncated: need %d bytes, have %d", n, r.Remaining())
	}
	return nil
}

// Skip advances the reader by n bytes without returning them.
func (r *BitReader) Skip(n int) error {
	if err := r.require(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}

// ReadBytes returns a copy of the next n bytes and advances the reader.
func (r *BitReader) ReadBytes(n int) ([]byte, error) {
	if err := r.require(n); err != nil {
		return nil, err
	}
	b := make([]byte, n)
	copy(b, r.buf[r.pos:r.pos+n])
	r.pos += n
	return b, nil
}

// Slice returns the next n bytes without copying and advances the reader.
// The caller must not retain the slice past further reads that might be
// used to reconstruct identical raw bytes (it aliases the backing array).
func (r *BitReader) Slice(n int) ([]byte, error) {
	if err := r.require(n); err != nil {
		return nil, err
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadUint8 reads one unsigned byte.
func (r *BitReader) ReadUint8() (uint8, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

// ReadInt8 reads one signed byte.
func (r *BitReader) ReadInt8() (int8, error) {
	v, err := r.ReadUint8()
	return int8(v), err
}

// ReadBool reads one byte and reports whether it is non-zero.
func (r *BitReader) ReadBool() (bool, error) {
	v, err := r.ReadUint8()
	return v != 0, err
}

// ReadUint16 reads a big-endian uint16.
func (r *BitReader) ReadUint16() (uint16, error) {
	if err := r.require(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

// ReadInt16 reads a big-endian int16.
func (r *BitReader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

// ReadUint32 reads a big-endian uint32.
func (r *BitReader) ReadUint32() (uint32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

// ReadInt32 reads a big-endian int32.
func (r *BitReader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadUint64 reads a big-endian uint64.
func (r *BitReader) ReadUint64() (uint64, error) {
	if err := r.require(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v, nil
}

// ReadInt64 reads a big-endian int64.
func (r *BitReader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadFloat32 reads a big-endian IEEE-754 single-precision float.
func (r *BitReader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ExpectBytes reads len(expected) bytes and fails unless they match
// exactly.
func (r *BitReader) ExpectBytes(expected []byte) error {
	start := r.Offset()
	actual, err := r.ReadBytes(len(expected))
	if err != nil {
		return err
	}
	for i := range expected {
		if actual[i] != expected[i] {
			return parseErrorf(start, "expected % x, got % x", expected, actual)
		}
	}
	return nil
}
