package classfile

import (
	"fmt"
	"strings"
)

// Type is one field type of a descriptor, e.g. "I", "Ljava/lang/String;" or "[[J".
type Type string

// IsPrimitive reports a base type other than void.
func (t Type) IsPrimitive() bool {
	return len(t) == 1 && t != "V"
}

// IsVoid reports the void return type.
func (t Type) IsVoid() bool {
	return t == "V"
}

// IsArray reports an array type.
func (t Type) IsArray() bool {
	return strings.HasPrefix(string(t), "[")
}

// IsWide reports long and double, which take two stack slots.
func (t Type) IsWide() bool {
	return t == "J" || t == "D"
}

// Slots returns the number of operand stack slots a value of t occupies.
func (t Type) Slots() int {
	switch {
	case t.IsVoid():
		return 0
	case t.IsWide():
		return 2
	default:
		return 1
	}
}

// Element strips all array dimensions.
func (t Type) Element() Type {
	return Type(strings.TrimLeft(string(t), "["))
}

// ClassName returns the internal class name of an object type, or of the
// element type of an object array. It is empty for primitives.
func (t Type) ClassName() string {
	e := string(t.Element())
	if strings.HasPrefix(e, "L") && strings.HasSuffix(e, ";") {
		return e[1 : len(e)-1]
	}

	return ""
}

// ObjectType returns the descriptor of a class given its internal name.
func ObjectType(internal string) Type {
	if strings.HasPrefix(internal, "[") {
		return Type(internal)
	}

	return Type("L" + internal + ";")
}

// MethodType is a parsed method descriptor.
type MethodType struct {
	Params []Type
	Return Type
}

// ArgSlots returns the stack slots occupied by the parameters.
func (m MethodType) ArgSlots() int {
	n := 0
	for _, p := range m.Params {
		n += p.Slots()
	}

	return n
}

// ParamDescriptor returns the parameter part of the descriptor, "(...)".
func (m MethodType) ParamDescriptor() string {
	var b strings.Builder

	b.WriteByte('(')

	for _, p := range m.Params {
		b.WriteString(string(p))
	}

	b.WriteByte(')')

	return b.String()
}

func (m MethodType) String() string {
	return m.ParamDescriptor() + string(m.Return)
}

// ParseFieldType parses a single field descriptor.
func ParseFieldType(desc string) (Type, error) {
	t, n, err := nextType(desc, 0)
	if err != nil {
		return "", err
	}

	if n != len(desc) || t.IsVoid() {
		return "", fmt.Errorf("%w: bad field descriptor %q", ErrMalformed, desc)
	}

	return t, nil
}

// ParseMethodType parses a method descriptor.
func ParseMethodType(desc string) (MethodType, error) {
	if !strings.HasPrefix(desc, "(") {
		return MethodType{}, fmt.Errorf("%w: bad method descriptor %q", ErrMalformed, desc)
	}

	var mt MethodType

	i := 1
	for i < len(desc) && desc[i] != ')' {
		t, n, err := nextType(desc, i)
		if err != nil {
			return MethodType{}, err
		}

		if t.IsVoid() {
			return MethodType{}, fmt.Errorf("%w: void parameter in %q", ErrMalformed, desc)
		}

		mt.Params = append(mt.Params, t)
		i = n
	}

	if i >= len(desc) {
		return MethodType{}, fmt.Errorf("%w: unterminated method descriptor %q", ErrMalformed, desc)
	}

	ret, n, err := nextType(desc, i+1)
	if err != nil {
		return MethodType{}, err
	}

	if n != len(desc) {
		return MethodType{}, fmt.Errorf("%w: trailing data in %q", ErrMalformed, desc)
	}

	mt.Return = ret

	return mt, nil
}

func nextType(desc string, i int) (Type, int, error) {
	start := i

	for i < len(desc) && desc[i] == '[' {
		i++
	}

	if i >= len(desc) {
		return "", 0, fmt.Errorf("%w: truncated descriptor %q", ErrMalformed, desc)
	}

	switch desc[i] {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
		return Type(desc[start : i+1]), i + 1, nil
	case 'V':
		if i != start {
			return "", 0, fmt.Errorf("%w: void array in %q", ErrMalformed, desc)
		}

		return "V", i + 1, nil
	case 'L':
		end := strings.IndexByte(desc[i:], ';')
		if end < 0 {
			return "", 0, fmt.Errorf("%w: unterminated class type in %q", ErrMalformed, desc)
		}

		return Type(desc[start : i+end+1]), i + end + 1, nil
	default:
		return "", 0, fmt.Errorf("%w: bad type %q in %q", ErrMalformed, desc[i], desc)
	}
}

// JavaTypeName renders t the way Java source spells it: int, java.lang.String[].
func JavaTypeName(t Type) string {
	dims := len(t) - len(t.Element())
	base := t.Element()

	var name string

	switch base {
	case "B":
		name = "byte"
	case "C":
		name = "char"
	case "D":
		name = "double"
	case "F":
		name = "float"
	case "I":
		name = "int"
	case "J":
		name = "long"
	case "S":
		name = "short"
	case "Z":
		name = "boolean"
	case "V":
		name = "void"
	default:
		name = JavaName(base.ClassName())
	}

	return name + strings.Repeat("[]", dims)
}

// mapDescriptor rewrites every class name embedded in a descriptor or a
// generic signature ("Lname;" and "Lname<...>;" forms, including nested and
// inner ".Suffix" parts of signatures).
func mapDescriptor(desc string, rename func(string) (string, bool)) (string, bool) {
	var b strings.Builder

	changed := false

	for i := 0; i < len(desc); {
		c := desc[i]
		if c != 'L' || !startsClassName(desc, i) {
			b.WriteByte(c)
			i++

			continue
		}

		end := i + 1
		for end < len(desc) && desc[end] != ';' && desc[end] != '<' && desc[end] != '.' {
			end++
		}

		name := desc[i+1 : end]
		if n, ok := rename(name); ok && n != name {
			name = n
			changed = true
		}

		b.WriteByte('L')
		b.WriteString(name)
		i = end
	}

	return b.String(), changed
}

// startsClassName reports whether the 'L' at i begins a class type rather
// than being part of an identifier (e.g. a type variable "TLabel;").
func startsClassName(desc string, i int) bool {
	if i == 0 {
		return true
	}

	switch desc[i-1] {
	case '(', ')', '[', ';', '<', '>', '+', '-', ':', '^', '*':
		return true
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 'V':
		// primitives directly followed by a class type, e.g. "(IL...;)"
		return precededByPrimitive(desc, i)
	default:
		return false
	}
}

// precededByPrimitive walks back over a run of primitive type letters that
// must itself be anchored at a descriptor delimiter.
func precededByPrimitive(desc string, i int) bool {
	j := i - 1
	for j >= 0 && strings.IndexByte("BCDFIJSZV", desc[j]) >= 0 {
		j--
	}

	if j < 0 {
		return true
	}

	return strings.IndexByte("()[;<>+-:^*", desc[j]) >= 0
}
