package classfile

import (
	"encoding/binary"
	"fmt"
)

// byteReader reads big-endian class file items from an in-memory buffer.
type byteReader struct {
	data   []byte
	offset int
}

func newByteReader(data []byte) *byteReader {
	return &byteReader{data: data}
}

func (r *byteReader) need(n int) error {
	if n < 0 || r.offset+n > len(r.data) {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrMalformed, n, r.offset, len(r.data)-r.offset)
	}

	return nil
}

func (r *byteReader) u1() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}

	v := r.data[r.offset]
	r.offset++

	return v, nil
}

func (r *byteReader) u2() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}

	v := binary.BigEndian.Uint16(r.data[r.offset:])
	r.offset += 2

	return v, nil
}

func (r *byteReader) u4() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}

	v := binary.BigEndian.Uint32(r.data[r.offset:])
	r.offset += 4

	return v, nil
}

func (r *byteReader) u8() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}

	v := binary.BigEndian.Uint64(r.data[r.offset:])
	r.offset += 8

	return v, nil
}

// bytes returns a copy so callers may keep the slice after the buffer is reused.
func (r *byteReader) bytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}

	out := make([]byte, n)
	copy(out, r.data[r.offset:r.offset+n])
	r.offset += n

	return out, nil
}

func (r *byteReader) remaining() int {
	return len(r.data) - r.offset
}

// byteWriter accumulates big-endian class file items.
type byteWriter struct {
	buf []byte
}

func (w *byteWriter) u1(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *byteWriter) u2(v uint16) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
}

func (w *byteWriter) u4(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

func (w *byteWriter) u8(v uint64) {
	w.buf = binary.BigEndian.AppendUint64(w.buf, v)
}

func (w *byteWriter) raw(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *byteWriter) len() int {
	return len(w.buf)
}

func (w *byteWriter) bytes() []byte {
	return w.buf
}
