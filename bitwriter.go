package slippi

import (
	"encoding/binary"
	"math"
)

// A BitWriter is the write-side counterpart to BitReader: a big-endian
// byte accumulator used to re-encode decoded records back into their wire
// representation.
type BitWriter struct {
	buf []byte
}

func (w *BitWriter) Bytes() []byte {
	return w.buf
}

func (w *BitWriter) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *BitWriter) WriteUint8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *BitWriter) WriteInt8(v int8) {
	w.WriteUint8(uint8(v))
}

func (w *BitWriter) WriteBool(v bool) {
	if v {
		w.WriteUint8(1)
	} else {
		w.WriteUint8(0)
	}
}

func (w *BitWriter) WriteUint16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *BitWriter) WriteInt16(v int16) {
	w.WriteUint16(uint16(v))
}

func (w *BitWriter) WriteUint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *BitWriter) WriteInt32(v int32) {
	w.WriteUint32(uint32(v))
}

func (w *BitWriter) WriteFloat32(v float32) {
	w.WriteUint32(math.Float32bits(v))
}
