package classfiletest

import (
	"github.com/mouse-blink/codeeraser/internal/classfile"
)

// Op is an instruction without operands.
func Op(op classfile.Opcode) classfile.Instruction {
	return classfile.Insn(op)
}

// Local is a load, store or ret of local n.
func Local(op classfile.Opcode, n uint16) classfile.Instruction {
	return classfile.Instruction{Offset: -1, Op: op, Index: n, Wide: n > 0xff}
}

// Jump is a branch to instruction index target.
func Jump(op classfile.Opcode, target int) classfile.Instruction {
	return classfile.Instruction{Offset: -1, Op: op, Target: target}
}

// Push is the shortest int constant push of v.
func Push(p *classfile.ConstantPool, v int32) classfile.Instruction {
	if in, ok := classfile.IntConst(v); ok {
		return in
	}

	return classfile.InsnIndex(classfile.Ldc, must(p.AddInteger(v)))
}

// String is an ldc of a string literal.
func String(p *classfile.ConstantPool, s string) classfile.Instruction {
	return classfile.InsnIndex(classfile.Ldc, must(p.AddString(s)))
}

// Class is an instruction whose operand is a class constant (new,
// checkcast, instanceof, anewarray).
func Class(p *classfile.ConstantPool, op classfile.Opcode, name string) classfile.Instruction {
	return classfile.InsnIndex(op, must(p.AddClass(name)))
}

// Field is a get/put instruction.
func Field(p *classfile.ConstantPool, op classfile.Opcode, owner, name, desc string) classfile.Instruction {
	return classfile.InsnIndex(op, must(p.AddFieldref(owner, name, desc)))
}

// Invoke is an invokevirtual, invokespecial or invokestatic.
func Invoke(p *classfile.ConstantPool, op classfile.Opcode, owner, name, desc string) classfile.Instruction {
	return classfile.InsnIndex(op, must(p.AddMethodref(owner, name, desc)))
}

// InvokeInterface is an invokeinterface.
func InvokeInterface(p *classfile.ConstantPool, owner, name, desc string) classfile.Instruction {
	mt, err := classfile.ParseMethodType(desc)
	if err != nil {
		panic(err)
	}

	in := classfile.InsnIndex(classfile.Invokeinterface, must(p.AddInterfaceMethodref(owner, name, desc)))
	in.Value = int32(mt.ArgSlots() + 1)

	return in
}

// Catch is a handler entry over instruction indexes [start, end).
func Catch(p *classfile.ConstantPool, start, end, handler int, class string) classfile.Handler {
	h := classfile.Handler{Start: start, End: end, HandlerPC: handler}
	if class != "" {
		h.CatchType = must(p.AddClass(class))
	}

	return h
}

func must(i uint16, err error) uint16 {
	if err != nil {
		panic(err)
	}

	return i
}
