// Package classfiletest builds class files for tests without a Java compiler.
package classfiletest

import (
	"fmt"

	"github.com/mouse-blink/codeeraser/internal/classfile"
)

// Annotation describes an annotation to attach. Element values follow
// classfile.NewAnnotation.
type Annotation struct {
	Type     string // descriptor, e.g. Lpkg/Ann;
	Elements map[string]any
}

// Body is a method body. Branch targets and handler bounds are instruction
// indexes.
type Body struct {
	MaxStack  uint16
	MaxLocals uint16
	Code      []classfile.Instruction
	Handlers  []classfile.Handler
}

// Builder assembles one class. The first error sticks and is reported by Build.
type Builder struct {
	cf  *classfile.ClassFile
	err error
}

// NewClass starts a public class. Names are internal (a/b/C).
func NewClass(name, super string, interfaces ...string) *Builder {
	pool := classfile.NewConstantPool()
	b := &Builder{cf: &classfile.ClassFile{Major: 52, Pool: pool, AccessFlags: classfile.AccPublic | classfile.AccSuper}}

	b.cf.ThisClass = b.class(name)

	if super != "" {
		b.cf.SuperClass = b.class(super)
	}

	for _, i := range interfaces {
		b.cf.Interfaces = append(b.cf.Interfaces, b.class(i))
	}

	return b
}

// Pool returns the constant pool being built.
func (b *Builder) Pool() *classfile.ConstantPool {
	return b.cf.Pool
}

// Access overrides the class access flags.
func (b *Builder) Access(flags uint16) *Builder {
	b.cf.AccessFlags = flags

	return b
}

// Annotate attaches an invisible annotation to the class.
func (b *Builder) Annotate(a Annotation) *Builder {
	b.cf.Attributes = b.annotate(b.cf.Attributes, a)

	return b
}

// Field adds a field.
func (b *Builder) Field(access uint16, name, desc string, annotations ...Annotation) *Builder {
	if b.err != nil {
		return b
	}

	f, err := b.cf.AddField(access, name, desc)
	if err != nil {
		b.err = err

		return b
	}

	for _, a := range annotations {
		f.Attributes = b.annotate(f.Attributes, a)
	}

	return b
}

// Method adds a method. A nil body makes it abstract.
func (b *Builder) Method(access uint16, name, desc string, body func(p *classfile.ConstantPool) Body, annotations ...Annotation) *Builder {
	if b.err != nil {
		return b
	}

	if body == nil {
		access |= classfile.AccAbstract
	}

	m, err := b.cf.AddMethod(access, name, desc)
	if err != nil {
		b.err = err

		return b
	}

	for _, a := range annotations {
		m.Attributes = b.annotate(m.Attributes, a)
	}

	if body == nil {
		return b
	}

	bd := body(b.cf.Pool)

	code, err := classfile.NewCode(b.cf.Pool, bd.MaxStack, bd.MaxLocals, bd.Code, bd.Handlers, nil)
	if err != nil {
		b.err = fmt.Errorf("%s%s: %w", name, desc, err)

		return b
	}

	if err := b.cf.SetCode(m, code); err != nil {
		b.err = err
	}

	return b
}

// Build returns the class, re-parsed from its bytes.
func (b *Builder) Build() (*classfile.ClassFile, error) {
	if b.err != nil {
		return nil, b.err
	}

	return classfile.Parse(b.cf.Bytes())
}

// Bytes returns the encoded class.
func (b *Builder) Bytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}

	return b.cf.Bytes(), nil
}

func (b *Builder) class(name string) uint16 {
	i, err := b.cf.Pool.AddClass(name)
	if err != nil && b.err == nil {
		b.err = err
	}

	return i
}

func (b *Builder) annotate(attrs []*classfile.Attribute, a Annotation) []*classfile.Attribute {
	if b.err != nil {
		return attrs
	}

	ann, err := b.cf.NewAnnotation(a.Type, a.Elements)
	if err != nil {
		b.err = err

		return attrs
	}

	out, err := b.cf.Annotate(attrs, ann)
	if err != nil {
		b.err = err
	}

	return out
}
