package classfile

import (
	"fmt"
	"math"
)

// Handler is one exception table entry. Offsets refer to the original code.
type Handler struct {
	Start     int
	End       int
	HandlerPC int
	CatchType uint16
}

// Code is a decoded Code attribute.
type Code struct {
	MaxStack     uint16
	MaxLocals    uint16
	Instructions []Instruction
	Handlers     []Handler
	Attributes   []*Attribute

	pool   *ConstantPool
	length int
}

// Code decodes the Code attribute of m. It returns nil, nil for abstract
// and native methods.
func (cf *ClassFile) Code(m *Member) (*Code, error) {
	attr := cf.FindAttribute(m.Attributes, AttrCode)
	if attr == nil {
		return nil, nil
	}

	c, err := parseCode(cf.Pool, attr.Info)
	if err != nil {
		return nil, fmt.Errorf("%s%s: %w", cf.MemberName(m), cf.MemberDescriptor(m), err)
	}

	return c, nil
}

// SetCode encodes c into the Code attribute of m.
func (cf *ClassFile) SetCode(m *Member, c *Code) error {
	info, err := c.encode()
	if err != nil {
		return err
	}

	attr := cf.FindAttribute(m.Attributes, AttrCode)
	if attr == nil {
		if attr, err = cf.NewAttribute(AttrCode, nil); err != nil {
			return err
		}

		m.Attributes = append(m.Attributes, attr)
	}

	attr.Info = info

	return nil
}

// NewCode assembles a body from synthesized instructions. Branch and switch
// targets, handler bounds and offsets inside attrs are instruction indexes;
// len(insns) denotes the end of the code.
func NewCode(pool *ConstantPool, maxStack, maxLocals uint16, insns []Instruction, handlers []Handler, attrs []*Attribute) (*Code, error) {
	c := &Code{MaxStack: maxStack, MaxLocals: maxLocals, pool: pool, length: len(insns)}
	l := &layout{insns: make([]Instruction, len(insns)), anchors: make(map[int]int, len(insns)+1)}

	for i, in := range insns {
		in.Offset = i
		l.insns[i] = in
		l.anchors[i] = i
	}

	l.anchors[len(insns)] = len(insns)

	code, err := c.assemble(l)
	if err != nil {
		return nil, err
	}

	c.Handlers = handlers

	relocated, err := c.relocateHandlers(NewEditList(), l)
	if err != nil {
		return nil, err
	}

	c.Attributes = attrs

	relocatedAttrs, err := c.relocateAttributes(l)
	if err != nil {
		return nil, err
	}

	return parseCode(pool, c.encodeWith(code, relocated, relocatedAttrs))
}

func parseCode(pool *ConstantPool, info []byte) (*Code, error) {
	r := newByteReader(info)
	c := &Code{pool: pool}

	var err error

	if c.MaxStack, err = r.u2(); err != nil {
		return nil, err
	}

	if c.MaxLocals, err = r.u2(); err != nil {
		return nil, err
	}

	n, err := r.u4()
	if err != nil {
		return nil, err
	}

	raw, err := r.bytes(int(n))
	if err != nil {
		return nil, err
	}

	c.length = len(raw)

	if c.Instructions, err = decodeInstructions(raw); err != nil {
		return nil, err
	}

	count, err := r.u2()
	if err != nil {
		return nil, err
	}

	c.Handlers = make([]Handler, count)

	for i := range c.Handlers {
		var start, end, handler uint16

		if start, err = r.u2(); err != nil {
			return nil, err
		}

		if end, err = r.u2(); err != nil {
			return nil, err
		}

		if handler, err = r.u2(); err != nil {
			return nil, err
		}

		h := Handler{Start: int(start), End: int(end), HandlerPC: int(handler)}
		if h.CatchType, err = r.u2(); err != nil {
			return nil, err
		}

		c.Handlers[i] = h
	}

	if c.Attributes, err = readAttributes(r); err != nil {
		return nil, err
	}

	if r.remaining() != 0 {
		return nil, fmt.Errorf("%w: trailing bytes in Code", ErrMalformed)
	}

	return c, nil
}

func (c *Code) encode() ([]byte, error) {
	code, err := c.assemble(identityLayout(c.Instructions, c.length))
	if err != nil {
		return nil, err
	}

	return c.encodeWith(code, c.Handlers, c.Attributes), nil
}

func (c *Code) encodeWith(code []byte, handlers []Handler, attrs []*Attribute) []byte {
	w := &byteWriter{}
	w.u2(c.MaxStack)
	w.u2(c.MaxLocals)
	w.u4(uint32(len(code)))
	w.raw(code)
	w.u2(uint16(len(handlers)))

	for _, h := range handlers {
		w.u2(uint16(h.Start))
		w.u2(uint16(h.End))
		w.u2(uint16(h.HandlerPC))
		w.u2(h.CatchType)
	}

	writeAttributes(w, attrs)

	return w.bytes()
}

// layout describes where each original offset lands in a new instruction list.
type layout struct {
	insns   []Instruction
	anchors map[int]int // original offset -> index into insns (len(insns) = end of code)
	offsets []int       // new offset of each instruction
	length  int
}

func identityLayout(insns []Instruction, length int) *layout {
	l := &layout{insns: insns, anchors: make(map[int]int, len(insns)+1)}

	for i, in := range insns {
		if in.Offset >= 0 {
			l.anchors[in.Offset] = i
		}
	}

	l.anchors[length] = len(insns)

	return l
}

// place computes new offsets. Switch padding depends on the offset, so
// placement is a single forward pass.
func (l *layout) place() error {
	l.offsets = make([]int, len(l.insns))
	at := 0

	for i, in := range l.insns {
		l.offsets[i] = at
		at += in.size(at)
	}

	if at > math.MaxUint16 {
		return fmt.Errorf("%w: method code too large (%d bytes)", ErrCompile, at)
	}

	l.length = at

	return nil
}

// resolve maps an original offset to its new offset.
func (l *layout) resolve(orig int) (int, error) {
	i, ok := l.anchors[orig]
	if !ok {
		return 0, fmt.Errorf("%w: offset %d is not an instruction boundary", ErrMalformed, orig)
	}

	if i == len(l.insns) {
		return l.length, nil
	}

	return l.offsets[i], nil
}

// uninitialized relocates an Uninitialized(orig) entry. A new replaced by
// aconst_null leaves a null on the stack, so the entry becomes Null.
func (l *layout) uninitialized(orig int) (verificationType, error) {
	i, ok := l.anchors[orig]
	if !ok || i == len(l.insns) {
		return verificationType{}, fmt.Errorf("%w: uninitialized object at %d has no new", ErrMalformed, orig)
	}

	switch l.insns[i].Op {
	case New:
		return verificationType{tag: vtUninitialized, at: l.offsets[i]}, nil
	case AconstNull:
		return verificationType{tag: vtNull}, nil
	}

	return verificationType{}, fmt.Errorf("%w: uninitialized object at %d lost its new (now %s)", ErrCompile, orig, l.insns[i].Op)
}

func (c *Code) assemble(l *layout) ([]byte, error) {
	if err := l.place(); err != nil {
		return nil, err
	}

	w := &byteWriter{}

	for _, in := range l.insns {
		if err := in.encode(w, l.resolve); err != nil {
			return nil, err
		}
	}

	return w.bytes(), nil
}

// Length returns the length in bytes of the original code.
func (c *Code) Length() int {
	return c.length
}

// InstructionAt returns the index of the instruction at an original offset.
func (c *Code) InstructionAt(offset int) (int, bool) {
	for i, in := range c.Instructions {
		if in.Offset == offset {
			return i, true
		}
	}

	return 0, false
}
