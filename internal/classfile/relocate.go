package classfile

import (
	"fmt"
)

// Rewrite applies edits to the body and relocates every offset-bearing
// structure: branch and switch targets, the exception table, line and local
// variable tables, and stack map frames. An empty replacement leaves a nop
// so that every original offset keeps a landing instruction.
func (c *Code) Rewrite(edits *EditList) error {
	if edits.Len() == 0 {
		return nil
	}

	l := &layout{anchors: make(map[int]int, len(c.Instructions)+1)}

	for i, in := range c.Instructions {
		l.anchors[in.Offset] = len(l.insns)

		rep, ok := edits.code[i]
		if !ok {
			l.insns = append(l.insns, in)

			continue
		}

		if len(rep) == 0 {
			rep = []Instruction{Insn(Nop)}
		}

		for _, r := range rep {
			if r.Branches() && r.Offset < 0 {
				return fmt.Errorf("%w: synthesized %s has no target", ErrCompile, r.Op)
			}

			l.insns = append(l.insns, r)
		}
	}

	l.anchors[c.length] = len(l.insns)

	code, err := c.assemble(l)
	if err != nil {
		return err
	}

	handlers, err := c.relocateHandlers(edits, l)
	if err != nil {
		return err
	}

	attrs, err := c.relocateAttributes(l)
	if err != nil {
		return err
	}

	if edits.stack > 0 {
		stack := int(c.MaxStack) + edits.stack
		if stack > 0xffff {
			return fmt.Errorf("%w: operand stack too deep", ErrCompile)
		}

		c.MaxStack = uint16(stack)
	}

	fresh, err := parseCode(c.pool, c.encodeWith(code, handlers, attrs))
	if err != nil {
		return fmt.Errorf("%w: rewritten body does not decode: %w", ErrCompile, err)
	}

	*c = *fresh

	return nil
}

func (c *Code) relocateHandlers(edits *EditList, l *layout) ([]Handler, error) {
	out := make([]Handler, 0, len(c.Handlers))

	for i, h := range c.Handlers {
		if e, ok := edits.handlers[i]; ok {
			if e.drop {
				continue
			}

			h.CatchType = e.catchType
		}

		var err error

		if h.Start, err = l.resolve(h.Start); err != nil {
			return nil, err
		}

		if h.End, err = l.resolve(h.End); err != nil {
			return nil, err
		}

		if h.HandlerPC, err = l.resolve(h.HandlerPC); err != nil {
			return nil, err
		}

		out = append(out, h)
	}

	return out, nil
}

func (c *Code) relocateAttributes(l *layout) ([]*Attribute, error) {
	out := make([]*Attribute, 0, len(c.Attributes))

	for _, a := range c.Attributes {
		name, err := c.pool.UTF8(a.NameIndex)
		if err != nil {
			return nil, err
		}

		var info []byte

		switch name {
		case AttrLineNumberTable:
			info, err = relocateLineNumbers(a.Info, l)
		case AttrLocalVariableTable, AttrLocalVariableTypeTable:
			info, err = relocateLocalVariables(a.Info, l)
		case AttrStackMapTable:
			var frames []stackFrame

			if frames, err = parseStackMap(a.Info); err == nil {
				info, err = encodeStackMap(frames, l)
			}
		case AttrRuntimeVisibleTypeAnnots, AttrRuntimeInvisibleTypeAnnots:
			// offsets inside type annotation targets are not relocated
			continue
		default:
			info = a.Info
		}

		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		out = append(out, &Attribute{NameIndex: a.NameIndex, Info: info})
	}

	return out, nil
}

func relocateLineNumbers(info []byte, l *layout) ([]byte, error) {
	r := newByteReader(info)

	n, err := r.u2()
	if err != nil {
		return nil, err
	}

	w := &byteWriter{}
	w.u2(n)

	for range n {
		pc, err := r.u2()
		if err != nil {
			return nil, err
		}

		line, err := r.u2()
		if err != nil {
			return nil, err
		}

		at, err := l.resolve(int(pc))
		if err != nil {
			return nil, err
		}

		w.u2(uint16(at))
		w.u2(line)
	}

	return w.bytes(), nil
}

func relocateLocalVariables(info []byte, l *layout) ([]byte, error) {
	r := newByteReader(info)

	n, err := r.u2()
	if err != nil {
		return nil, err
	}

	w := &byteWriter{}
	w.u2(n)

	for range n {
		var fields [5]uint16

		for i := range fields {
			if fields[i], err = r.u2(); err != nil {
				return nil, err
			}
		}

		start, err := l.resolve(int(fields[0]))
		if err != nil {
			return nil, err
		}

		end, err := l.resolve(int(fields[0]) + int(fields[1]))
		if err != nil {
			return nil, err
		}

		w.u2(uint16(start))
		w.u2(uint16(end - start))
		w.u2(fields[2])
		w.u2(fields[3])
		w.u2(fields[4])
	}

	return w.bytes(), nil
}
