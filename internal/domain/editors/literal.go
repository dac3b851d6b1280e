// Package editors holds the site visitors that rewrite method bodies.
package editors

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/mouse-blink/codeeraser/internal/classfile"
)

const stringType = classfile.Type("Ljava/lang/String;")

// Default returns the instruction pushing the default value of t. It returns
// nothing for void.
func Default(t classfile.Type) []classfile.Instruction {
	switch t {
	case "V":
		return nil
	case "Z", "B", "C", "S", "I":
		return []classfile.Instruction{classfile.Insn(classfile.Iconst0)}
	case "J":
		return []classfile.Instruction{classfile.Insn(classfile.Lconst0)}
	case "F":
		return []classfile.Instruction{classfile.Insn(classfile.Fconst0)}
	case "D":
		return []classfile.Instruction{classfile.Insn(classfile.Dconst0)}
	default:
		return []classfile.Instruction{classfile.Insn(classfile.AconstNull)}
	}
}

// Value returns the instructions pushing text as a value of type t, or the
// default of t when text is empty.
func Value(p *classfile.ConstantPool, t classfile.Type, text string) ([]classfile.Instruction, error) {
	if strings.TrimSpace(text) == "" {
		return Default(t), nil
	}

	return Literal(p, t, text)
}

// Literal parses a Java literal and returns the instructions pushing it as a
// value of type t. Supported are booleans, integers with an optional L
// suffix, floating point numbers with an optional f or d suffix, character
// and string literals and null.
func Literal(p *classfile.ConstantPool, t classfile.Type, text string) ([]classfile.Instruction, error) {
	s := strings.TrimSpace(text)

	if !t.IsPrimitive() {
		return referenceLiteral(p, t, s)
	}

	switch t {
	case "Z":
		switch s {
		case "true":
			return []classfile.Instruction{classfile.Insn(classfile.Iconst1)}, nil
		case "false":
			return []classfile.Instruction{classfile.Insn(classfile.Iconst0)}, nil
		}
	case "B", "C", "S", "I":
		v, err := intLiteral(s)
		if err != nil {
			break
		}

		if !fits(t, v) {
			return nil, fmt.Errorf("%w: literal %s out of range for %s", classfile.ErrCompile, s, classfile.JavaTypeName(t))
		}

		return pushInt(p, int32(v))
	case "J":
		v, err := longLiteral(s)
		if err != nil {
			break
		}

		return pushLong(p, v)
	case "F":
		v, err := floatLiteral(s, 'f', 32)
		if err != nil {
			break
		}

		return pushFloat(p, float32(v))
	case "D":
		v, err := floatLiteral(s, 'd', 64)
		if err != nil {
			break
		}

		return pushDouble(p, v)
	}

	return nil, fmt.Errorf("%w: %q is not a %s literal", classfile.ErrCompile, s, classfile.JavaTypeName(t))
}

func referenceLiteral(p *classfile.ConstantPool, t classfile.Type, s string) ([]classfile.Instruction, error) {
	if s == "null" {
		return []classfile.Instruction{classfile.Insn(classfile.AconstNull)}, nil
	}

	if strings.HasPrefix(s, `"`) && (t == stringType || t == "Ljava/lang/Object;" || t == "Ljava/lang/CharSequence;") {
		v, err := strconv.Unquote(s)
		if err != nil {
			return nil, fmt.Errorf("%w: bad string literal %s: %v", classfile.ErrCompile, s, err)
		}

		i, err := p.AddString(v)
		if err != nil {
			return nil, err
		}

		return []classfile.Instruction{classfile.InsnIndex(classfile.Ldc, i)}, nil
	}

	return nil, fmt.Errorf("%w: %q is not a %s literal", classfile.ErrCompile, s, classfile.JavaTypeName(t))
}

// ClassLiteral validates a dotted class name used as a replacement type and
// returns its internal name.
func ClassLiteral(text string) (string, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return "", fmt.Errorf("%w: empty class name", classfile.ErrCompile)
	}

	for _, part := range strings.Split(s, ".") {
		if !isIdentifier(part) {
			return "", fmt.Errorf("%w: %q is not a class name", classfile.ErrCompile, s)
		}
	}

	return classfile.InternalName(s), nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if r == '_' || r == '$' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}

		return false
	}

	return true
}

func intLiteral(s string) (int64, error) {
	if strings.HasPrefix(s, "'") {
		v, _, tail, err := strconv.UnquoteChar(strings.TrimPrefix(s, "'"), '\'')
		if err != nil || tail != "'" {
			return 0, fmt.Errorf("bad char literal %s", s)
		}

		return int64(v), nil
	}

	return strconv.ParseInt(strings.ReplaceAll(s, "_", ""), 0, 64)
}

func longLiteral(s string) (int64, error) {
	s = strings.TrimSuffix(strings.TrimSuffix(s, "L"), "l")

	return strconv.ParseInt(strings.ReplaceAll(s, "_", ""), 0, 64)
}

func floatLiteral(s string, suffix byte, bits int) (float64, error) {
	if n := len(s); n > 0 && (s[n-1]|0x20) == suffix {
		s = s[:n-1]
	}

	return strconv.ParseFloat(strings.ReplaceAll(s, "_", ""), bits)
}

func fits(t classfile.Type, v int64) bool {
	switch t {
	case "B":
		return v >= math.MinInt8 && v <= math.MaxInt8
	case "C":
		return v >= 0 && v <= math.MaxUint16
	case "S":
		return v >= math.MinInt16 && v <= math.MaxInt16
	default:
		return v >= math.MinInt32 && v <= math.MaxInt32
	}
}

func pushInt(p *classfile.ConstantPool, v int32) ([]classfile.Instruction, error) {
	if in, ok := classfile.IntConst(v); ok {
		return []classfile.Instruction{in}, nil
	}

	i, err := p.AddInteger(v)
	if err != nil {
		return nil, err
	}

	return []classfile.Instruction{classfile.InsnIndex(classfile.Ldc, i)}, nil
}

func pushLong(p *classfile.ConstantPool, v int64) ([]classfile.Instruction, error) {
	if v == 0 || v == 1 {
		return []classfile.Instruction{classfile.Insn(classfile.Lconst0 + classfile.Opcode(v))}, nil
	}

	i, err := p.AddLong(v)
	if err != nil {
		return nil, err
	}

	return []classfile.Instruction{classfile.InsnIndex(classfile.Ldc2W, i)}, nil
}

func pushFloat(p *classfile.ConstantPool, v float32) ([]classfile.Instruction, error) {
	if (v == 0 && !math.Signbit(float64(v))) || v == 1 || v == 2 {
		return []classfile.Instruction{classfile.Insn(classfile.Fconst0 + classfile.Opcode(v))}, nil
	}

	i, err := p.AddFloat(v)
	if err != nil {
		return nil, err
	}

	return []classfile.Instruction{classfile.InsnIndex(classfile.Ldc, i)}, nil
}

func pushDouble(p *classfile.ConstantPool, v float64) ([]classfile.Instruction, error) {
	if (v == 0 && !math.Signbit(v)) || v == 1 {
		return []classfile.Instruction{classfile.Insn(classfile.Dconst0 + classfile.Opcode(v))}, nil
	}

	i, err := p.AddDouble(v)
	if err != nil {
		return nil, err
	}

	return []classfile.Instruction{classfile.InsnIndex(classfile.Ldc2W, i)}, nil
}

// Pop returns the instructions discarding values of the given types, the
// topmost type last.
func Pop(types ...classfile.Type) []classfile.Instruction {
	out := make([]classfile.Instruction, 0, len(types))

	for i := len(types) - 1; i >= 0; i-- {
		switch types[i].Slots() {
		case 0:
		case 2:
			out = append(out, classfile.Insn(classfile.Pop2))
		default:
			out = append(out, classfile.Insn(classfile.Pop))
		}
	}

	return out
}
