package classfile

// Opcode is a JVM instruction opcode.
type Opcode uint8

// Opcodes referenced by the editors. The full set is described by opcodeTable.
const (
	Nop             Opcode = 0x00
	AconstNull      Opcode = 0x01
	Iconst0         Opcode = 0x03
	Iconst1         Opcode = 0x04
	Lconst0         Opcode = 0x09
	Fconst0         Opcode = 0x0b
	Dconst0         Opcode = 0x0e
	Bipush          Opcode = 0x10
	Sipush          Opcode = 0x11
	Ldc             Opcode = 0x12
	LdcW            Opcode = 0x13
	Ldc2W           Opcode = 0x14
	Iload           Opcode = 0x15
	Aload           Opcode = 0x19
	Iload0          Opcode = 0x1a
	Aload0          Opcode = 0x2a
	Aload1          Opcode = 0x2b
	Istore          Opcode = 0x36
	Astore          Opcode = 0x3a
	Astore1         Opcode = 0x4c
	Pop             Opcode = 0x57
	Pop2            Opcode = 0x58
	Dup             Opcode = 0x59
	DupX1           Opcode = 0x5a
	Swap            Opcode = 0x5f
	Iadd            Opcode = 0x60
	Isub            Opcode = 0x64
	Imul            Opcode = 0x68
	Iushr           Opcode = 0x7c
	Iand            Opcode = 0x7e
	Ixor            Opcode = 0x82
	Iinc            Opcode = 0x84
	Ifeq            Opcode = 0x99
	Goto            Opcode = 0xa7
	Jsr             Opcode = 0xa8
	Ret             Opcode = 0xa9
	Tableswitch     Opcode = 0xaa
	Lookupswitch    Opcode = 0xab
	Ireturn         Opcode = 0xac
	Lreturn         Opcode = 0xad
	Areturn         Opcode = 0xb0
	Return          Opcode = 0xb1
	Getstatic       Opcode = 0xb2
	Putstatic       Opcode = 0xb3
	Getfield        Opcode = 0xb4
	Putfield        Opcode = 0xb5
	Invokevirtual   Opcode = 0xb6
	Invokespecial   Opcode = 0xb7
	Invokestatic    Opcode = 0xb8
	Invokeinterface Opcode = 0xb9
	Invokedynamic   Opcode = 0xba
	New             Opcode = 0xbb
	Newarray        Opcode = 0xbc
	Anewarray       Opcode = 0xbd
	Athrow          Opcode = 0xbf
	Checkcast       Opcode = 0xc0
	Instanceof      Opcode = 0xc1
	Wide            Opcode = 0xc4
	Multianewarray  Opcode = 0xc5
	Ifnull          Opcode = 0xc6
	Ifnonnull       Opcode = 0xc7
	GotoW           Opcode = 0xc8
	JsrW            Opcode = 0xc9
)

type operandKind uint8

const (
	opNone operandKind = iota
	opByte             // signed byte (bipush)
	opShort            // signed short (sipush)
	opLocal            // u1 local index, u2 under wide
	opAtype            // newarray element type
	opCP1              // u1 constant pool index (ldc)
	opCP2              // u2 constant pool index
	opIinc             // local index + signed const, widened under wide
	opBranch2          // s2 branch offset
	opBranch4          // s4 branch offset
	opInterface        // u2 index, u1 count, u1 zero
	opDynamic          // u2 index, u2 zero
	opMulti            // u2 index, u1 dimensions
	opTable
	opLookup
	opWide
	opInvalid
)

type opcodeInfo struct {
	name string
	kind operandKind
}

var opcodeTable [256]opcodeInfo

func init() {
	names := [...]string{
		"nop", "aconst_null", "iconst_m1", "iconst_0", "iconst_1", "iconst_2", "iconst_3", "iconst_4", "iconst_5",
		"lconst_0", "lconst_1", "fconst_0", "fconst_1", "fconst_2", "dconst_0", "dconst_1", "bipush", "sipush",
		"ldc", "ldc_w", "ldc2_w", "iload", "lload", "fload", "dload", "aload", "iload_0", "iload_1", "iload_2",
		"iload_3", "lload_0", "lload_1", "lload_2", "lload_3", "fload_0", "fload_1", "fload_2", "fload_3",
		"dload_0", "dload_1", "dload_2", "dload_3", "aload_0", "aload_1", "aload_2", "aload_3", "iaload",
		"laload", "faload", "daload", "aaload", "baload", "caload", "saload", "istore", "lstore", "fstore",
		"dstore", "astore", "istore_0", "istore_1", "istore_2", "istore_3", "lstore_0", "lstore_1", "lstore_2",
		"lstore_3", "fstore_0", "fstore_1", "fstore_2", "fstore_3", "dstore_0", "dstore_1", "dstore_2",
		"dstore_3", "astore_0", "astore_1", "astore_2", "astore_3", "iastore", "lastore", "fastore", "dastore",
		"aastore", "bastore", "castore", "sastore", "pop", "pop2", "dup", "dup_x1", "dup_x2", "dup2", "dup2_x1",
		"dup2_x2", "swap", "iadd", "ladd", "fadd", "dadd", "isub", "lsub", "fsub", "dsub", "imul", "lmul",
		"fmul", "dmul", "idiv", "ldiv", "fdiv", "ddiv", "irem", "lrem", "frem", "drem", "ineg", "lneg", "fneg",
		"dneg", "ishl", "lshl", "ishr", "lshr", "iushr", "lushr", "iand", "land", "ior", "lor", "ixor", "lxor",
		"iinc", "i2l", "i2f", "i2d", "l2i", "l2f", "l2d", "f2i", "f2l", "f2d", "d2i", "d2l", "d2f", "i2b",
		"i2c", "i2s", "lcmp", "fcmpl", "fcmpg", "dcmpl", "dcmpg", "ifeq", "ifne", "iflt", "ifge", "ifgt",
		"ifle", "if_icmpeq", "if_icmpne", "if_icmplt", "if_icmpge", "if_icmpgt", "if_icmple", "if_acmpeq",
		"if_acmpne", "goto", "jsr", "ret", "tableswitch", "lookupswitch", "ireturn", "lreturn", "freturn",
		"dreturn", "areturn", "return", "getstatic", "putstatic", "getfield", "putfield", "invokevirtual",
		"invokespecial", "invokestatic", "invokeinterface", "invokedynamic", "new", "newarray", "anewarray",
		"arraylength", "athrow", "checkcast", "instanceof", "monitorenter", "monitorexit", "wide",
		"multianewarray", "ifnull", "ifnonnull", "goto_w", "jsr_w",
	}

	for i := range opcodeTable {
		opcodeTable[i] = opcodeInfo{name: "invalid", kind: opInvalid}
	}

	for i, n := range names {
		opcodeTable[i] = opcodeInfo{name: n, kind: opNone}
	}

	set := func(kind operandKind, ops ...Opcode) {
		for _, op := range ops {
			opcodeTable[op].kind = kind
		}
	}

	set(opByte, Bipush)
	set(opShort, Sipush)
	set(opCP1, Ldc)
	set(opCP2, LdcW, Ldc2W, Getstatic, Putstatic, Getfield, Putfield, Invokevirtual, Invokespecial,
		Invokestatic, New, Anewarray, Checkcast, Instanceof)
	set(opAtype, Newarray)
	set(opIinc, Iinc)
	set(opInterface, Invokeinterface)
	set(opDynamic, Invokedynamic)
	set(opMulti, Multianewarray)
	set(opTable, Tableswitch)
	set(opLookup, Lookupswitch)
	set(opWide, Wide)
	set(opBranch4, GotoW, JsrW)
	set(opLocal, Ret)

	// iload..aload, istore..astore
	for op := Iload; op <= Iload+4; op++ {
		opcodeTable[op].kind = opLocal
	}

	for op := Istore; op <= Istore+4; op++ {
		opcodeTable[op].kind = opLocal
	}

	// ifeq..jsr, ifnull, ifnonnull
	for op := Ifeq; op <= Jsr; op++ {
		opcodeTable[op].kind = opBranch2
	}

	set(opBranch2, Ifnull, Ifnonnull)
}

// String returns the mnemonic.
func (op Opcode) String() string {
	return opcodeTable[op].name
}

func (op Opcode) kind() operandKind {
	return opcodeTable[op].kind
}

// IsBranch reports instructions whose operand is a branch offset.
func (op Opcode) IsBranch() bool {
	k := op.kind()

	return k == opBranch2 || k == opBranch4
}
