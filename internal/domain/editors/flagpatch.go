package editors

import (
	"github.com/mouse-blink/codeeraser/internal/classfile"
)

// Names used by the expression editor patch.
const (
	DisableInstanceof = "disableInstanceof"
	DisableCast       = "disableCast"
	DisableHandler    = "disableHandler"

	codeIterator   = "javassist/bytecode/CodeIterator"
	exceptionTable = "javassist/bytecode/ExceptionTable"
)

// OpcodePatch neutralizes opcodes fetched through CodeIterator.byteAt when
// the matching disable flag of the receiver is set. It applies to the body
// dispatching over instructions.
type OpcodePatch struct {
	owner string
	count int
}

// NewOpcodePatch patches bodies of the class owner (internal name).
func NewOpcodePatch(owner string) *OpcodePatch {
	return &OpcodePatch{owner: owner}
}

// Visit implements classfile.SiteVisitor.
func (p *OpcodePatch) Visit(site classfile.Site, edits *classfile.EditList) error {
	if site.Kind != classfile.SiteMethodCall || site.Class != codeIterator || site.Name != "byteAt" || site.Descriptor != "(I)I" {
		return nil
	}

	code := []classfile.Instruction{unplaced(site.Instruction)}

	for _, g := range []struct {
		opcode classfile.Opcode
		flag   string
	}{{classfile.Instanceof, DisableInstanceof}, {classfile.Checkcast, DisableCast}} {
		guard, err := p.guard(site.Owner.Pool, g.opcode, g.flag)
		if err != nil {
			return err
		}

		code = append(code, guard...)
	}

	edits.ReserveStack(3)
	p.count++

	return edits.Replace(site.Index, code...)
}

// guard maps op to 0 when op == k and the flag is set, without branching:
// eq = ((op ^ k) - 1) >>> 31; m = eq & flag; op ^= m * (op ^ 0).
func (p *OpcodePatch) guard(pool *classfile.ConstantPool, k classfile.Opcode, flag string) ([]classfile.Instruction, error) {
	f, err := pool.AddFieldref(p.owner, flag, "Z")
	if err != nil {
		return nil, err
	}

	return []classfile.Instruction{
		classfile.Insn(classfile.Dup),
		classfile.InsnValue(classfile.Sipush, int32(k)),
		classfile.Insn(classfile.Ixor),
		classfile.Insn(classfile.Iconst1),
		classfile.Insn(classfile.Isub),
		classfile.InsnValue(classfile.Bipush, 31),
		classfile.Insn(classfile.Iushr),
		classfile.Insn(classfile.Aload0),
		classfile.InsnIndex(classfile.Getfield, f),
		classfile.Insn(classfile.Iand),
		classfile.Insn(classfile.Swap),
		classfile.Insn(classfile.DupX1),
		classfile.InsnValue(classfile.Sipush, int32(classfile.Nop)),
		classfile.Insn(classfile.Ixor),
		classfile.Insn(classfile.Imul),
		classfile.Insn(classfile.Ixor),
	}, nil
}

// Count returns the number of patched calls.
func (p *OpcodePatch) Count() int {
	return p.count
}

// HandlerPatch zeroes the size of every ExceptionTable queried while the
// disableHandler flag of the receiver is set.
type HandlerPatch struct {
	owner string
	count int
}

// NewHandlerPatch patches bodies of the class owner (internal name).
func NewHandlerPatch(owner string) *HandlerPatch {
	return &HandlerPatch{owner: owner}
}

// Visit implements classfile.SiteVisitor.
func (p *HandlerPatch) Visit(site classfile.Site, edits *classfile.EditList) error {
	if site.Kind != classfile.SiteMethodCall || site.Class != exceptionTable || site.Name != "size" || site.Descriptor != "()I" {
		return nil
	}

	f, err := site.Owner.Pool.AddFieldref(p.owner, DisableHandler, "Z")
	if err != nil {
		return err
	}

	// size * (1 ^ flag)
	code := []classfile.Instruction{
		unplaced(site.Instruction),
		classfile.Insn(classfile.Aload0),
		classfile.InsnIndex(classfile.Getfield, f),
		classfile.Insn(classfile.Iconst1),
		classfile.Insn(classfile.Ixor),
		classfile.Insn(classfile.Imul),
	}

	edits.ReserveStack(2)
	p.count++

	return edits.Replace(site.Index, code...)
}

// Count returns the number of patched calls.
func (p *HandlerPatch) Count() int {
	return p.count
}

func unplaced(in classfile.Instruction) classfile.Instruction {
	in.Offset = -1

	return in
}
