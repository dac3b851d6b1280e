package classfile

import "fmt"

// Verification type tags.
const (
	vtTop               = 0
	vtInteger           = 1
	vtFloat             = 2
	vtDouble            = 3
	vtLong              = 4
	vtNull              = 5
	vtUninitializedThis = 6
	vtObject            = 7
	vtUninitialized     = 8
)

type verificationType struct {
	tag   uint8
	index uint16 // Object: class index
	at    int    // Uninitialized: offset of the new instruction
}

type frameKind uint8

const (
	frameSame frameKind = iota
	frameSameLocals1
	frameChop
	frameAppend
	frameFull
)

type stackFrame struct {
	kind   frameKind
	offset int // absolute
	chop   int
	locals []verificationType
	stack  []verificationType
}

func parseStackMap(info []byte) ([]stackFrame, error) {
	r := newByteReader(info)

	n, err := r.u2()
	if err != nil {
		return nil, err
	}

	frames := make([]stackFrame, 0, n)
	prev := -1

	for range n {
		ft, err := r.u1()
		if err != nil {
			return nil, err
		}

		var (
			f     stackFrame
			delta int
		)

		switch {
		case ft <= 63:
			f.kind, delta = frameSame, int(ft)
		case ft <= 127:
			f.kind, delta = frameSameLocals1, int(ft-64)

			vt, err := readVerificationType(r)
			if err != nil {
				return nil, err
			}

			f.stack = []verificationType{vt}
		case ft < 247:
			return nil, fmt.Errorf("%w: reserved frame type %d", ErrMalformed, ft)
		default:
			d, err := r.u2()
			if err != nil {
				return nil, err
			}

			delta = int(d)

			if f, err = readExtendedFrame(r, ft); err != nil {
				return nil, err
			}
		}

		f.offset = prev + delta + 1
		prev = f.offset
		frames = append(frames, f)
	}

	return frames, nil
}

func readExtendedFrame(r *byteReader, ft uint8) (stackFrame, error) {
	var f stackFrame

	switch {
	case ft == 247:
		f.kind = frameSameLocals1

		vt, err := readVerificationType(r)
		if err != nil {
			return f, err
		}

		f.stack = []verificationType{vt}
	case ft <= 250:
		f.kind, f.chop = frameChop, int(251-ft)
	case ft == 251:
		f.kind = frameSame
	case ft <= 254:
		f.kind = frameAppend

		locals, err := readVerificationTypes(r, int(ft-251))
		if err != nil {
			return f, err
		}

		f.locals = locals
	default:
		f.kind = frameFull

		n, err := r.u2()
		if err != nil {
			return f, err
		}

		if f.locals, err = readVerificationTypes(r, int(n)); err != nil {
			return f, err
		}

		if n, err = r.u2(); err != nil {
			return f, err
		}

		if f.stack, err = readVerificationTypes(r, int(n)); err != nil {
			return f, err
		}
	}

	return f, nil
}

func readVerificationTypes(r *byteReader, n int) ([]verificationType, error) {
	out := make([]verificationType, n)

	for i := range out {
		vt, err := readVerificationType(r)
		if err != nil {
			return nil, err
		}

		out[i] = vt
	}

	return out, nil
}

func readVerificationType(r *byteReader) (verificationType, error) {
	tag, err := r.u1()
	if err != nil {
		return verificationType{}, err
	}

	vt := verificationType{tag: tag}

	switch tag {
	case vtObject:
		vt.index, err = r.u2()
	case vtUninitialized:
		var at uint16
		at, err = r.u2()
		vt.at = int(at)
	case vtTop, vtInteger, vtFloat, vtDouble, vtLong, vtNull, vtUninitializedThis:
	default:
		err = fmt.Errorf("%w: verification type %d", ErrMalformed, tag)
	}

	return vt, err
}

// frameRelocator maps frame offsets and Uninitialized entries into a new body.
type frameRelocator interface {
	resolve(orig int) (int, error)
	uninitialized(orig int) (verificationType, error)
}

// encodeStackMap writes frames after relocating every offset through rl.
func encodeStackMap(frames []stackFrame, rl frameRelocator) ([]byte, error) {
	w := &byteWriter{}
	w.u2(uint16(len(frames)))

	prev := -1

	for _, f := range frames {
		at, err := rl.resolve(f.offset)
		if err != nil {
			return nil, err
		}

		delta := at - prev - 1
		if delta < 0 || delta > 0xffff {
			return nil, fmt.Errorf("%w: stack map frame order broken at %d", ErrCompile, at)
		}

		prev = at

		if err := encodeFrame(w, f, delta, rl); err != nil {
			return nil, err
		}
	}

	return w.bytes(), nil
}

func encodeFrame(w *byteWriter, f stackFrame, delta int, rl frameRelocator) error {
	switch f.kind {
	case frameSame:
		if delta <= 63 {
			w.u1(uint8(delta))
		} else {
			w.u1(251)
			w.u2(uint16(delta))
		}
	case frameSameLocals1:
		if delta <= 63 {
			w.u1(uint8(64 + delta))
		} else {
			w.u1(247)
			w.u2(uint16(delta))
		}

		return writeVerificationTypes(w, f.stack, rl)
	case frameChop:
		w.u1(uint8(251 - f.chop))
		w.u2(uint16(delta))
	case frameAppend:
		w.u1(uint8(251 + len(f.locals)))
		w.u2(uint16(delta))

		return writeVerificationTypes(w, f.locals, rl)
	case frameFull:
		w.u1(255)
		w.u2(uint16(delta))
		w.u2(uint16(len(f.locals)))

		if err := writeVerificationTypes(w, f.locals, rl); err != nil {
			return err
		}

		w.u2(uint16(len(f.stack)))

		return writeVerificationTypes(w, f.stack, rl)
	}

	return nil
}

func writeVerificationTypes(w *byteWriter, types []verificationType, rl frameRelocator) error {
	for _, vt := range types {
		if vt.tag == vtUninitialized {
			var err error
			if vt, err = rl.uninitialized(vt.at); err != nil {
				return err
			}
		}

		w.u1(vt.tag)

		switch vt.tag {
		case vtObject:
			w.u2(vt.index)
		case vtUninitialized:
			w.u2(uint16(vt.at))
		}
	}

	return nil
}
