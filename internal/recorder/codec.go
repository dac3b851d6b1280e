// Package recorder receives monitoring events over TCP and applies them to a
// recording Strategy.
package recorder

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/mouse-blink/codeeraser/internal/classfile"
	"github.com/samber/lo"
)

// ErrUnknownEvent is returned for identification codes without an event.
var ErrUnknownEvent = errors.New("unknown event")

// Encoder writes events in the big-endian DataOutput layout. Errors are
// sticky: after the first failure every write is a no-op and Flush reports
// the error.
type Encoder struct {
	w   *bufio.Writer
	err error
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

func (e *Encoder) write(b []byte) {
	if e.err != nil {
		return
	}

	_, e.err = e.w.Write(b)
}

func (e *Encoder) writeInt16(v int16) {
	e.write(binary.BigEndian.AppendUint16(nil, uint16(v)))
}

func (e *Encoder) writeInt32(v int32) {
	e.write(binary.BigEndian.AppendUint32(nil, uint32(v)))
}

func (e *Encoder) writeInt64(v int64) {
	e.write(binary.BigEndian.AppendUint64(nil, uint64(v)))
}

func (e *Encoder) writeFloat64(v float64) {
	e.write(binary.BigEndian.AppendUint64(nil, math.Float64bits(v)))
}

func (e *Encoder) writeBool(v bool) {
	if v {
		e.write([]byte{1})
	} else {
		e.write([]byte{0})
	}
}

// writeUTF writes a u2 length followed by modified UTF-8.
func (e *Encoder) writeUTF(s string) {
	b := classfile.EncodeMUTF8(s)
	if len(b) > math.MaxUint16 {
		if e.err == nil {
			e.err = fmt.Errorf("string of %d bytes exceeds the UTF limit", len(b))
		}

		return
	}

	e.writeInt16(int16(uint16(len(b))))
	e.write(b)
}

// writeString writes a nullable string. The empty string is written as null.
func (e *Encoder) writeString(s string) {
	if s == "" {
		e.writeInt16(0)

		return
	}

	e.writeInt16(1)
	e.writeUTF(s)
}

func (e *Encoder) writeLongMap(m map[int64]int64) {
	keys := lo.Keys(m)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	e.writeInt32(int32(len(keys)))

	for _, k := range keys {
		e.writeInt64(k)
		e.writeInt64(m[k])
	}
}

func (e *Encoder) writeInt32s(v []int32) {
	e.writeInt32(int32(len(v)))

	for _, x := range v {
		e.writeInt32(x)
	}
}

// WriteEvent writes the identification code of ev followed by its payload.
func (e *Encoder) WriteEvent(ev Event) error {
	e.writeInt32(int32(ev.Kind()))
	ev.encode(e)

	return e.err
}

// WriteConfig writes the session configuration block.
func (e *Encoder) WriteConfig(c SessionConfig) error {
	c.encode(e)

	return e.err
}

// Flush writes buffered data to the underlying writer.
func (e *Encoder) Flush() error {
	if e.err != nil {
		return e.err
	}

	return e.w.Flush()
}

// Decoder reads what an Encoder wrote. Like the Encoder its errors are
// sticky.
type Decoder struct {
	r   *bufio.Reader
	buf [8]byte
	err error
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

func (d *Decoder) read(n int) []byte {
	if d.err != nil {
		return d.buf[:n]
	}

	if _, err := io.ReadFull(d.r, d.buf[:n]); err != nil {
		d.err = err
	}

	return d.buf[:n]
}

func (d *Decoder) readInt16() int16 {
	return int16(binary.BigEndian.Uint16(d.read(2)))
}

func (d *Decoder) readInt32() int32 {
	return int32(binary.BigEndian.Uint32(d.read(4)))
}

func (d *Decoder) readInt64() int64 {
	return int64(binary.BigEndian.Uint64(d.read(8)))
}

func (d *Decoder) readFloat64() float64 {
	return math.Float64frombits(binary.BigEndian.Uint64(d.read(8)))
}

func (d *Decoder) readBool() bool {
	return d.read(1)[0] != 0
}

func (d *Decoder) readUTF() string {
	n := int(uint16(d.readInt16()))
	if d.err != nil {
		return ""
	}

	b := make([]byte, n)
	if _, err := io.ReadFull(d.r, b); err != nil {
		d.err = err

		return ""
	}

	return classfile.DecodeMUTF8(b)
}

func (d *Decoder) readString() string {
	if d.readInt16() == 0 {
		return ""
	}

	return d.readUTF()
}

func (d *Decoder) readLongMap() map[int64]int64 {
	n := d.readInt32()
	if n < 0 {
		d.fail(fmt.Errorf("negative map size %d", n))
	}

	m := make(map[int64]int64)

	for i := int32(0); i < n && d.err == nil; i++ {
		k := d.readInt64()
		m[k] = d.readInt64()
	}

	return m
}

func (d *Decoder) readInt32s() []int32 {
	n := d.readInt32()
	if n < 0 {
		d.fail(fmt.Errorf("negative list size %d", n))
	}

	var v []int32

	for i := int32(0); i < n && d.err == nil; i++ {
		v = append(v, d.readInt32())
	}

	return v
}

func (d *Decoder) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

// ReadEvent reads the next event. It returns io.EOF when the stream ends
// cleanly between events and an error wrapping ErrUnknownEvent for codes
// that name no event.
func (d *Decoder) ReadEvent() (Event, error) {
	code := d.readInt32()
	if d.err != nil {
		return nil, d.err
	}

	ev, err := NewEvent(Kind(code))
	if err != nil {
		return nil, err
	}

	ev.decode(d)

	if errors.Is(d.err, io.EOF) {
		return nil, fmt.Errorf("truncated %s event: %w", ev.Kind(), io.ErrUnexpectedEOF)
	}

	if d.err != nil {
		return nil, fmt.Errorf("failed to read %s event: %w", ev.Kind(), d.err)
	}

	return ev, nil
}

// ReadConfig reads the session configuration block.
func (d *Decoder) ReadConfig() (SessionConfig, error) {
	var c SessionConfig

	c.decode(d)

	if d.err != nil {
		return SessionConfig{}, fmt.Errorf("failed to read session config: %w", d.err)
	}

	return c, nil
}
