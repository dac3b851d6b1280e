package classfile

import (
	"fmt"
	"strings"
)

// Renamer maps an internal class name to its replacement. It returns false
// when the name is kept.
type Renamer func(internal string) (string, bool)

// Rename rewrites every reference to a renamed class: class constants
// (including array forms), member, NameAndType and MethodType descriptors,
// signatures, local variable tables and annotation types. Utf8 entries are
// never changed in place, so string literals that happen to spell a class
// name keep their value.
func (cf *ClassFile) Rename(rename Renamer) (bool, error) {
	rn := &renamer{cf: cf, rename: rename}

	if err := rn.constants(); err != nil {
		return false, err
	}

	var err error

	if cf.Attributes, err = rn.attributes(cf.Attributes); err != nil {
		return false, err
	}

	for _, group := range [][]*Member{cf.Fields, cf.Methods} {
		for _, m := range group {
			if m.DescriptorIndex, err = rn.descriptor(m.DescriptorIndex); err != nil {
				return false, err
			}

			if m.Attributes, err = rn.attributes(m.Attributes); err != nil {
				return false, fmt.Errorf("%s: %w", cf.MemberName(m), err)
			}
		}
	}

	return rn.changed, nil
}

type renamer struct {
	cf      *ClassFile
	rename  Renamer
	changed bool
}

func (rn *renamer) className(name string) (string, bool) {
	if strings.HasPrefix(name, "[") {
		return mapDescriptor(name, rn.rename)
	}

	n, ok := rn.rename(name)

	return n, ok && n != name
}

func (rn *renamer) constants() error {
	pool := rn.cf.Pool

	for i := 1; i < len(pool.entries); i++ {
		c := pool.entries[i]

		var (
			err error
			idx *uint16
		)

		switch c.Tag {
		case TagClass:
			name, err := pool.UTF8(c.Index1)
			if err != nil {
				return fmt.Errorf("constant #%d: %w", i, err)
			}

			n, ok := rn.className(name)
			if !ok {
				continue
			}

			if c.Index1, err = pool.AddUTF8(n); err != nil {
				return err
			}

			pool.set(uint16(i), c)
			rn.changed = true

			continue
		case TagNameAndType:
			idx = &c.Index2
		case TagMethodType:
			idx = &c.Index1
		default:
			continue
		}

		orig := *idx
		if *idx, err = rn.descriptor(*idx); err != nil {
			return fmt.Errorf("constant #%d: %w", i, err)
		}

		if *idx != orig {
			pool.set(uint16(i), c)
		}
	}

	return nil
}

// descriptor returns the index of the mapped form of the Utf8 descriptor or
// signature at i.
func (rn *renamer) descriptor(i uint16) (uint16, error) {
	s, err := rn.cf.Pool.UTF8(i)
	if err != nil {
		return i, err
	}

	n, ok := mapDescriptor(s, rn.rename)
	if !ok {
		return i, nil
	}

	rn.changed = true

	return rn.cf.Pool.AddUTF8(n)
}

func (rn *renamer) attributes(attrs []*Attribute) ([]*Attribute, error) {
	for _, a := range attrs {
		name := rn.cf.AttributeName(a)

		var err error

		switch name {
		case AttrSignature:
			err = rn.signature(a)
		case AttrRuntimeVisibleAnnotations, AttrRuntimeInvisibleAnnotations:
			err = rn.annotations(a)
		case AttrRuntimeVisibleParamAnnotations, AttrRuntimeInvisibleParamAnnotations:
			err = rn.parameterAnnotations(a)
		case AttrAnnotationDefault:
			err = rn.annotationDefault(a)
		case AttrCode:
			err = rn.code(a)
		}

		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}

	return attrs, nil
}

func (rn *renamer) signature(a *Attribute) error {
	r := newByteReader(a.Info)

	i, err := r.u2()
	if err != nil {
		return err
	}

	n, err := rn.descriptor(i)
	if err != nil || n == i {
		return err
	}

	w := &byteWriter{}
	w.u2(n)
	a.Info = w.bytes()

	return nil
}

func (rn *renamer) annotations(a *Attribute) error {
	as, err := ParseAnnotations(a.Info)
	if err != nil {
		return err
	}

	for i := range as {
		if err := rn.annotation(&as[i]); err != nil {
			return err
		}
	}

	a.Info = EncodeAnnotations(as)

	return nil
}

func (rn *renamer) parameterAnnotations(a *Attribute) error {
	params, err := parseParameterAnnotations(a.Info)
	if err != nil {
		return err
	}

	for _, p := range params {
		for i := range p {
			if err := rn.annotation(&p[i]); err != nil {
				return err
			}
		}
	}

	a.Info = encodeParameterAnnotations(params)

	return nil
}

func (rn *renamer) annotationDefault(a *Attribute) error {
	r := newByteReader(a.Info)

	v, err := readElementValue(r)
	if err != nil {
		return err
	}

	if err := rn.elementValue(&v); err != nil {
		return err
	}

	w := &byteWriter{}
	writeElementValue(w, v)
	a.Info = w.bytes()

	return nil
}

func (rn *renamer) annotation(a *Annotation) error {
	var err error

	if a.TypeIndex, err = rn.descriptor(a.TypeIndex); err != nil {
		return err
	}

	for i := range a.Elements {
		if err := rn.elementValue(&a.Elements[i].Value); err != nil {
			return err
		}
	}

	return nil
}

func (rn *renamer) elementValue(v *ElementValue) error {
	var err error

	switch v.Tag {
	case 'e':
		v.TypeIndex, err = rn.descriptor(v.TypeIndex)
	case 'c':
		v.ClassIndex, err = rn.descriptor(v.ClassIndex)
	case '@':
		err = rn.annotation(v.Annotation)
	case '[':
		for i := range v.Values {
			if err = rn.elementValue(&v.Values[i]); err != nil {
				break
			}
		}
	}

	return err
}

func (rn *renamer) code(a *Attribute) error {
	body, err := splitCode(a.Info)
	if err != nil {
		return err
	}

	for _, nested := range body.attrs {
		switch rn.cf.AttributeName(nested) {
		case AttrLocalVariableTable, AttrLocalVariableTypeTable:
			if err := rn.localVariables(nested); err != nil {
				return err
			}
		}
	}

	a.Info = body.join()

	return nil
}

// localVariables maps the descriptor (or signature) of each table entry.
func (rn *renamer) localVariables(a *Attribute) error {
	r := newByteReader(a.Info)

	n, err := r.u2()
	if err != nil {
		return err
	}

	if r.remaining() != int(n)*10 {
		return fmt.Errorf("%w: local variable table size", ErrMalformed)
	}

	info := append([]byte(nil), a.Info...)

	for e := range int(n) {
		at := 2 + e*10 + 6
		i := uint16(info[at])<<8 | uint16(info[at+1])

		mapped, err := rn.descriptor(i)
		if err != nil {
			return err
		}

		info[at], info[at+1] = byte(mapped>>8), byte(mapped)
	}

	a.Info = info

	return nil
}

// codeBody splits a Code attribute into the part before its nested
// attributes and the nested attributes themselves.
type codeBody struct {
	head  []byte
	attrs []*Attribute
}

func splitCode(info []byte) (*codeBody, error) {
	r := newByteReader(info)

	if _, err := r.bytes(4); err != nil {
		return nil, err
	}

	n, err := r.u4()
	if err != nil {
		return nil, err
	}

	if _, err := r.bytes(int(n)); err != nil {
		return nil, err
	}

	handlers, err := r.u2()
	if err != nil {
		return nil, err
	}

	if _, err := r.bytes(int(handlers) * 8); err != nil {
		return nil, err
	}

	head := info[:r.offset]

	attrs, err := readAttributes(r)
	if err != nil {
		return nil, err
	}

	return &codeBody{head: head, attrs: attrs}, nil
}

func (b *codeBody) join() []byte {
	w := &byteWriter{}
	w.raw(b.head)
	writeAttributes(w, b.attrs)

	return w.bytes()
}
