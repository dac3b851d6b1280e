package classfile

import (
	"fmt"
	"maps"
	"slices"
)

// Annotation is one decoded annotation. TypeIndex points to the Utf8 field
// descriptor of the annotation type.
type Annotation struct {
	TypeIndex uint16
	Elements  []ElementPair
}

// ElementPair is a named element value.
type ElementPair struct {
	NameIndex uint16
	Value     ElementValue
}

// ElementValue is a tagged annotation element value.
//
//	B C D F I J S Z s   ConstIndex
//	e                   TypeIndex (descriptor), ConstIndex (constant name)
//	c                   ClassIndex (return descriptor)
//	@                   Annotation
//	[                   Values
type ElementValue struct {
	Tag        byte
	ConstIndex uint16
	TypeIndex  uint16
	ClassIndex uint16
	Annotation *Annotation
	Values     []ElementValue
}

// ParseAnnotations decodes the body of a Runtime(In)VisibleAnnotations attribute.
func ParseAnnotations(info []byte) ([]Annotation, error) {
	r := newByteReader(info)

	n, err := r.u2()
	if err != nil {
		return nil, err
	}

	out := make([]Annotation, n)

	for i := range out {
		if out[i], err = readAnnotation(r); err != nil {
			return nil, err
		}
	}

	if r.remaining() != 0 {
		return nil, fmt.Errorf("%w: trailing bytes in annotations", ErrMalformed)
	}

	return out, nil
}

// EncodeAnnotations is the inverse of ParseAnnotations.
func EncodeAnnotations(annotations []Annotation) []byte {
	w := &byteWriter{}
	w.u2(uint16(len(annotations)))

	for _, a := range annotations {
		writeAnnotation(w, a)
	}

	return w.bytes()
}

// parseParameterAnnotations decodes Runtime(In)VisibleParameterAnnotations.
func parseParameterAnnotations(info []byte) ([][]Annotation, error) {
	r := newByteReader(info)

	n, err := r.u1()
	if err != nil {
		return nil, err
	}

	out := make([][]Annotation, n)

	for p := range out {
		count, err := r.u2()
		if err != nil {
			return nil, err
		}

		out[p] = make([]Annotation, count)

		for i := range out[p] {
			if out[p][i], err = readAnnotation(r); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

func encodeParameterAnnotations(params [][]Annotation) []byte {
	w := &byteWriter{}
	w.u1(uint8(len(params)))

	for _, p := range params {
		w.u2(uint16(len(p)))

		for _, a := range p {
			writeAnnotation(w, a)
		}
	}

	return w.bytes()
}

func readAnnotation(r *byteReader) (Annotation, error) {
	var (
		a   Annotation
		err error
	)

	if a.TypeIndex, err = r.u2(); err != nil {
		return a, err
	}

	n, err := r.u2()
	if err != nil {
		return a, err
	}

	a.Elements = make([]ElementPair, n)

	for i := range a.Elements {
		if a.Elements[i].NameIndex, err = r.u2(); err != nil {
			return a, err
		}

		if a.Elements[i].Value, err = readElementValue(r); err != nil {
			return a, err
		}
	}

	return a, nil
}

func readElementValue(r *byteReader) (ElementValue, error) {
	tag, err := r.u1()
	if err != nil {
		return ElementValue{}, err
	}

	v := ElementValue{Tag: tag}

	switch tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's':
		v.ConstIndex, err = r.u2()
	case 'e':
		if v.TypeIndex, err = r.u2(); err == nil {
			v.ConstIndex, err = r.u2()
		}
	case 'c':
		v.ClassIndex, err = r.u2()
	case '@':
		var a Annotation

		a, err = readAnnotation(r)
		v.Annotation = &a
	case '[':
		var n uint16

		if n, err = r.u2(); err != nil {
			return v, err
		}

		v.Values = make([]ElementValue, n)

		for i := range v.Values {
			if v.Values[i], err = readElementValue(r); err != nil {
				return v, err
			}
		}
	default:
		err = fmt.Errorf("%w: element value tag %q", ErrMalformed, tag)
	}

	return v, err
}

func writeAnnotation(w *byteWriter, a Annotation) {
	w.u2(a.TypeIndex)
	w.u2(uint16(len(a.Elements)))

	for _, e := range a.Elements {
		w.u2(e.NameIndex)
		writeElementValue(w, e.Value)
	}
}

func writeElementValue(w *byteWriter, v ElementValue) {
	w.u1(v.Tag)

	switch v.Tag {
	case 'e':
		w.u2(v.TypeIndex)
		w.u2(v.ConstIndex)
	case 'c':
		w.u2(v.ClassIndex)
	case '@':
		writeAnnotation(w, *v.Annotation)
	case '[':
		w.u2(uint16(len(v.Values)))

		for _, e := range v.Values {
			writeElementValue(w, e)
		}
	default:
		w.u2(v.ConstIndex)
	}
}

// Annotations returns the annotations attached through attrs. Invisible
// annotations come first.
func (cf *ClassFile) Annotations(attrs []*Attribute) ([]Annotation, error) {
	var out []Annotation

	for _, name := range []string{AttrRuntimeInvisibleAnnotations, AttrRuntimeVisibleAnnotations} {
		attr := cf.FindAttribute(attrs, name)
		if attr == nil {
			continue
		}

		as, err := ParseAnnotations(attr.Info)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		out = append(out, as...)
	}

	return out, nil
}

// AnnotationType returns the descriptor of the annotation type.
func (cf *ClassFile) AnnotationType(a Annotation) string {
	s, _ := cf.Pool.UTF8(a.TypeIndex)

	return s
}

// Element returns the value of the named element.
func (cf *ClassFile) Element(a Annotation, name string) (ElementValue, bool) {
	for _, e := range a.Elements {
		if n, _ := cf.Pool.UTF8(e.NameIndex); n == name {
			return e.Value, true
		}
	}

	return ElementValue{}, false
}

// ElementStrings returns the strings held by a 's' value or a '[' of them.
func (cf *ClassFile) ElementStrings(v ElementValue) ([]string, error) {
	if v.Tag == '[' {
		out := make([]string, 0, len(v.Values))

		for _, e := range v.Values {
			s, err := cf.ElementStrings(e)
			if err != nil {
				return nil, err
			}

			out = append(out, s...)
		}

		return out, nil
	}

	if v.Tag != 's' {
		return nil, fmt.Errorf("%w: element tag %q is not a string", ErrMalformed, v.Tag)
	}

	s, err := cf.Pool.UTF8(v.ConstIndex)
	if err != nil {
		return nil, err
	}

	return []string{s}, nil
}

// ElementBool returns the value of a 'Z' element.
func (cf *ClassFile) ElementBool(v ElementValue) (bool, error) {
	if v.Tag != 'Z' {
		return false, fmt.Errorf("%w: element tag %q is not a boolean", ErrMalformed, v.Tag)
	}

	c, err := cf.Pool.expect(v.ConstIndex, TagInteger)
	if err != nil {
		return false, err
	}

	return c.Bits != 0, nil
}

// ElementEnum returns the type descriptor and constant name of an 'e' element.
func (cf *ClassFile) ElementEnum(v ElementValue) (string, string, error) {
	if v.Tag != 'e' {
		return "", "", fmt.Errorf("%w: element tag %q is not an enum", ErrMalformed, v.Tag)
	}

	typ, err := cf.Pool.UTF8(v.TypeIndex)
	if err != nil {
		return "", "", err
	}

	name, err := cf.Pool.UTF8(v.ConstIndex)

	return typ, name, err
}

// NewAnnotation builds an annotation whose strings are added to the pool.
// Element values are given as strings, booleans, string slices or
// EnumValue.
func (cf *ClassFile) NewAnnotation(typeDesc string, elements map[string]any) (Annotation, error) {
	t, err := cf.Pool.AddUTF8(typeDesc)
	if err != nil {
		return Annotation{}, err
	}

	a := Annotation{TypeIndex: t}

	for _, name := range slices.Sorted(maps.Keys(elements)) {
		n, err := cf.Pool.AddUTF8(name)
		if err != nil {
			return a, err
		}

		v, err := cf.newElementValue(elements[name])
		if err != nil {
			return a, fmt.Errorf("element %s: %w", name, err)
		}

		a.Elements = append(a.Elements, ElementPair{NameIndex: n, Value: v})
	}

	return a, nil
}

// EnumValue is an enum constant for NewAnnotation.
type EnumValue struct {
	Type string // descriptor
	Name string
}

func (cf *ClassFile) newElementValue(v any) (ElementValue, error) {
	switch x := v.(type) {
	case string:
		i, err := cf.Pool.AddUTF8(x)

		return ElementValue{Tag: 's', ConstIndex: i}, err
	case bool:
		var b int32
		if x {
			b = 1
		}

		i, err := cf.Pool.AddInteger(b)

		return ElementValue{Tag: 'Z', ConstIndex: i}, err
	case []string:
		out := ElementValue{Tag: '['}

		for _, s := range x {
			e, err := cf.newElementValue(s)
			if err != nil {
				return out, err
			}

			out.Values = append(out.Values, e)
		}

		return out, nil
	case EnumValue:
		t, err := cf.Pool.AddUTF8(x.Type)
		if err != nil {
			return ElementValue{}, err
		}

		n, err := cf.Pool.AddUTF8(x.Name)

		return ElementValue{Tag: 'e', TypeIndex: t, ConstIndex: n}, err
	default:
		return ElementValue{}, fmt.Errorf("%w: unsupported element value %T", ErrCompile, v)
	}
}

// Annotate appends a to the invisible annotations in attrs.
func (cf *ClassFile) Annotate(attrs []*Attribute, a Annotation) ([]*Attribute, error) {
	attr := cf.FindAttribute(attrs, AttrRuntimeInvisibleAnnotations)
	if attr == nil {
		var err error

		if attr, err = cf.NewAttribute(AttrRuntimeInvisibleAnnotations, nil); err != nil {
			return attrs, err
		}

		attrs = append(attrs, attr)
	}

	var existing []Annotation

	if len(attr.Info) > 0 {
		var err error

		if existing, err = ParseAnnotations(attr.Info); err != nil {
			return attrs, err
		}
	}

	attr.Info = EncodeAnnotations(append(existing, a))

	return attrs, nil
}
