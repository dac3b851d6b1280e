package classfile

import (
	"fmt"
	"math"
)

// Instruction is one decoded instruction. Branch and switch targets are
// absolute offsets in the original code; Offset is -1 for synthesized
// instructions.
type Instruction struct {
	Offset  int
	Op      Opcode
	Wide    bool
	Index   uint16  // constant pool or local variable index
	Value   int32   // bipush/sipush value, iinc increment, newarray type, dimensions, interface arg count
	Target  int     // branch target
	Default int     // switch default target
	Low     int32   // tableswitch low
	Targets []int   // switch targets
	Keys    []int32 // lookupswitch keys
}

// Insn builds a synthesized instruction without operands.
func Insn(op Opcode) Instruction {
	return Instruction{Offset: -1, Op: op}
}

// InsnIndex builds a synthesized instruction with a constant pool operand.
func InsnIndex(op Opcode, index uint16) Instruction {
	in := Instruction{Offset: -1, Op: op, Index: index}
	if op == Ldc && index > math.MaxUint8 {
		in.Op = LdcW
	}

	return in
}

// InsnValue builds a synthesized bipush, sipush or newarray.
func InsnValue(op Opcode, v int32) Instruction {
	return Instruction{Offset: -1, Op: op, Value: v}
}

// IntConst returns the shortest instruction pushing the int v. It returns
// false when v needs a constant pool entry.
func IntConst(v int32) (Instruction, bool) {
	switch {
	case v >= -1 && v <= 5:
		return Insn(Iconst0 + Opcode(v)), true
	case v >= math.MinInt8 && v <= math.MaxInt8:
		return InsnValue(Bipush, v), true
	case v >= math.MinInt16 && v <= math.MaxInt16:
		return InsnValue(Sipush, v), true
	default:
		return Instruction{}, false
	}
}

func decodeInstructions(code []byte) ([]Instruction, error) {
	r := newByteReader(code)

	var out []Instruction

	for r.remaining() > 0 {
		in, err := decodeInstruction(r)
		if err != nil {
			return nil, err
		}

		out = append(out, in)
	}

	return out, nil
}

//nolint:gocyclo // one case per operand layout
func decodeInstruction(r *byteReader) (Instruction, error) {
	start := r.offset

	op, err := r.u1()
	if err != nil {
		return Instruction{}, err
	}

	in := Instruction{Offset: start, Op: Opcode(op)}

	switch in.Op.kind() {
	case opNone:
	case opByte:
		b, err := r.u1()
		in.Value = int32(int8(b))

		return in, err
	case opShort:
		s, err := r.u2()
		in.Value = int32(int16(s))

		return in, err
	case opLocal, opCP1:
		b, err := r.u1()
		in.Index = uint16(b)

		return in, err
	case opAtype:
		b, err := r.u1()
		in.Value = int32(b)

		return in, err
	case opCP2:
		in.Index, err = r.u2()

		return in, err
	case opIinc:
		b, err := r.u1()
		if err != nil {
			return in, err
		}

		c, err := r.u1()
		in.Index = uint16(b)
		in.Value = int32(int8(c))

		return in, err
	case opBranch2:
		s, err := r.u2()
		in.Target = start + int(int16(s))

		return in, err
	case opBranch4:
		s, err := r.u4()
		in.Target = start + int(int32(s))

		return in, err
	case opInterface:
		if in.Index, err = r.u2(); err != nil {
			return in, err
		}

		count, err := r.u1()
		if err != nil {
			return in, err
		}

		in.Value = int32(count)
		_, err = r.u1()

		return in, err
	case opDynamic:
		if in.Index, err = r.u2(); err != nil {
			return in, err
		}

		_, err = r.u2()

		return in, err
	case opMulti:
		if in.Index, err = r.u2(); err != nil {
			return in, err
		}

		dims, err := r.u1()
		in.Value = int32(dims)

		return in, err
	case opTable, opLookup:
		return decodeSwitch(r, in)
	case opWide:
		return decodeWide(r, in)
	default:
		return in, fmt.Errorf("%w: invalid opcode %#x at %d", ErrMalformed, op, start)
	}

	return in, nil
}

func decodeSwitch(r *byteReader, in Instruction) (Instruction, error) {
	// operands are aligned to a multiple of four from the start of the code
	pad := (4 - (in.Offset+1)%4) % 4
	if _, err := r.bytes(pad); err != nil {
		return in, err
	}

	def, err := r.u4()
	if err != nil {
		return in, err
	}

	in.Default = in.Offset + int(int32(def))

	if in.Op == Tableswitch {
		low, err := r.u4()
		if err != nil {
			return in, err
		}

		high, err := r.u4()
		if err != nil {
			return in, err
		}

		in.Low = int32(low)

		n := int64(int32(high)) - int64(in.Low) + 1
		if n < 0 || n > int64(r.remaining()/4) {
			return in, fmt.Errorf("%w: bad tableswitch range at %d", ErrMalformed, in.Offset)
		}

		in.Targets = make([]int, n)
		for i := range in.Targets {
			t, err := r.u4()
			if err != nil {
				return in, err
			}

			in.Targets[i] = in.Offset + int(int32(t))
		}

		return in, nil
	}

	npairs, err := r.u4()
	if err != nil {
		return in, err
	}

	if int64(npairs) > int64(r.remaining()/8) {
		return in, fmt.Errorf("%w: bad lookupswitch size at %d", ErrMalformed, in.Offset)
	}

	in.Keys = make([]int32, npairs)
	in.Targets = make([]int, npairs)

	for i := range in.Keys {
		k, err := r.u4()
		if err != nil {
			return in, err
		}

		t, err := r.u4()
		if err != nil {
			return in, err
		}

		in.Keys[i] = int32(k)
		in.Targets[i] = in.Offset + int(int32(t))
	}

	return in, nil
}

func decodeWide(r *byteReader, in Instruction) (Instruction, error) {
	op, err := r.u1()
	if err != nil {
		return in, err
	}

	in.Op = Opcode(op)
	in.Wide = true

	switch in.Op.kind() {
	case opLocal:
		in.Index, err = r.u2()

		return in, err
	case opIinc:
		if in.Index, err = r.u2(); err != nil {
			return in, err
		}

		c, err := r.u2()
		in.Value = int32(int16(c))

		return in, err
	default:
		return in, fmt.Errorf("%w: wide %s at %d", ErrMalformed, in.Op, in.Offset)
	}
}

// size returns the encoded length of in when placed at offset.
func (in Instruction) size(offset int) int {
	switch in.Op.kind() {
	case opNone:
		return 1
	case opByte, opLocal, opCP1, opAtype:
		if in.Wide {
			return 4
		}

		return 2
	case opShort, opCP2, opBranch2:
		return 3
	case opIinc:
		if in.Wide {
			return 6
		}

		return 3
	case opMulti:
		return 4
	case opBranch4, opInterface, opDynamic:
		return 5
	case opTable:
		return 1 + (4-(offset+1)%4)%4 + 12 + 4*len(in.Targets)
	case opLookup:
		return 1 + (4-(offset+1)%4)%4 + 8 + 8*len(in.Keys)
	default:
		return 1
	}
}

// encode appends in at the writer's current offset. resolve maps an
// original target offset to its new offset.
func (in Instruction) encode(w *byteWriter, resolve func(int) (int, error)) error {
	at := w.len()

	if in.Wide {
		w.u1(uint8(Wide))
	}

	w.u1(uint8(in.Op))

	switch in.Op.kind() {
	case opNone:
	case opByte, opAtype:
		w.u1(uint8(in.Value))
	case opShort:
		w.u2(uint16(in.Value))
	case opLocal, opCP1:
		if in.Wide {
			w.u2(in.Index)
		} else {
			if in.Index > math.MaxUint8 {
				return fmt.Errorf("%w: %s index %d needs wide form", ErrCompile, in.Op, in.Index)
			}

			w.u1(uint8(in.Index))
		}
	case opCP2:
		w.u2(in.Index)
	case opIinc:
		if in.Wide {
			w.u2(in.Index)
			w.u2(uint16(in.Value))
		} else {
			w.u1(uint8(in.Index))
			w.u1(uint8(in.Value))
		}
	case opBranch2:
		t, err := resolve(in.Target)
		if err != nil {
			return err
		}

		rel := t - at
		if rel < math.MinInt16 || rel > math.MaxInt16 {
			return fmt.Errorf("%w: %s offset %d out of range", ErrCompile, in.Op, rel)
		}

		w.u2(uint16(int16(rel)))
	case opBranch4:
		t, err := resolve(in.Target)
		if err != nil {
			return err
		}

		w.u4(uint32(int32(t - at)))
	case opInterface:
		w.u2(in.Index)
		w.u1(uint8(in.Value))
		w.u1(0)
	case opDynamic:
		w.u2(in.Index)
		w.u2(0)
	case opMulti:
		w.u2(in.Index)
		w.u1(uint8(in.Value))
	case opTable, opLookup:
		return in.encodeSwitch(w, at, resolve)
	default:
		return fmt.Errorf("%w: cannot encode %s", ErrCompile, in.Op)
	}

	return nil
}

func (in Instruction) encodeSwitch(w *byteWriter, at int, resolve func(int) (int, error)) error {
	for (w.len())%4 != 0 {
		w.u1(0)
	}

	rel := func(target int) (uint32, error) {
		t, err := resolve(target)
		if err != nil {
			return 0, err
		}

		return uint32(int32(t - at)), nil
	}

	def, err := rel(in.Default)
	if err != nil {
		return err
	}

	w.u4(def)

	if in.Op == Tableswitch {
		w.u4(uint32(in.Low))
		w.u4(uint32(in.Low + int32(len(in.Targets)) - 1))
	} else {
		w.u4(uint32(len(in.Keys)))
	}

	for i, target := range in.Targets {
		if in.Op == Lookupswitch {
			w.u4(uint32(in.Keys[i]))
		}

		v, err := rel(target)
		if err != nil {
			return err
		}

		w.u4(v)
	}

	return nil
}

// Branches reports whether in carries any branch or switch target.
func (in Instruction) Branches() bool {
	k := in.Op.kind()

	return k == opBranch2 || k == opBranch4 || k == opTable || k == opLookup
}

func (in Instruction) String() string {
	switch in.Op.kind() {
	case opNone:
		return in.Op.String()
	case opBranch2, opBranch4:
		return fmt.Sprintf("%s %d", in.Op, in.Target)
	case opByte, opShort, opAtype:
		return fmt.Sprintf("%s %d", in.Op, in.Value)
	default:
		return fmt.Sprintf("%s #%d", in.Op, in.Index)
	}
}
