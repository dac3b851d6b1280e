// Package classfile is a mutable object model of JVM class files: constant
// pool, members, attributes, decoded method bodies and the editing hooks
// used to rewrite them.
package classfile

import (
	"errors"
	"fmt"
	"strings"
)

// Magic is the class file signature.
const Magic = 0xCAFEBABE

var (
	// ErrMalformed reports bytes that are not a well-formed class file.
	ErrMalformed = errors.New("malformed class file")
	// ErrCompile reports edits that cannot be assembled into verifiable code.
	ErrCompile = errors.New("cannot compile")
)

// Access flags.
const (
	AccPublic       uint16 = 0x0001
	AccPrivate      uint16 = 0x0002
	AccProtected    uint16 = 0x0004
	AccStatic       uint16 = 0x0008
	AccFinal        uint16 = 0x0010
	AccSuper        uint16 = 0x0020
	AccSynchronized uint16 = 0x0020
	AccVolatile     uint16 = 0x0040
	AccBridge       uint16 = 0x0040
	AccTransient    uint16 = 0x0080
	AccVarargs      uint16 = 0x0080
	AccNative       uint16 = 0x0100
	AccInterface    uint16 = 0x0200
	AccAbstract     uint16 = 0x0400
	AccStrict       uint16 = 0x0800
	AccSynthetic    uint16 = 0x1000
	AccAnnotation   uint16 = 0x2000
	AccEnum         uint16 = 0x4000
)

// Attribute names the rewriting engine cares about.
const (
	AttrCode                        = "Code"
	AttrConstantValue               = "ConstantValue"
	AttrSignature                   = "Signature"
	AttrLineNumberTable             = "LineNumberTable"
	AttrLocalVariableTable          = "LocalVariableTable"
	AttrLocalVariableTypeTable      = "LocalVariableTypeTable"
	AttrStackMapTable               = "StackMapTable"
	AttrRuntimeVisibleAnnotations   = "RuntimeVisibleAnnotations"
	AttrRuntimeInvisibleAnnotations = "RuntimeInvisibleAnnotations"
	AttrRuntimeVisibleTypeAnnots    = "RuntimeVisibleTypeAnnotations"
	AttrRuntimeInvisibleTypeAnnots  = "RuntimeInvisibleTypeAnnotations"
	AttrInnerClasses                = "InnerClasses"
	AttrAnnotationDefault           = "AnnotationDefault"

	AttrRuntimeVisibleParamAnnotations   = "RuntimeVisibleParameterAnnotations"
	AttrRuntimeInvisibleParamAnnotations = "RuntimeInvisibleParameterAnnotations"
)

// Attribute is an undecoded attribute.
type Attribute struct {
	NameIndex uint16
	Info      []byte
}

// Member is a field or a method.
type Member struct {
	AccessFlags     uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []*Attribute
}

// ClassFile is one parsed class file. All indexes refer to Pool.
type ClassFile struct {
	Minor       uint16
	Major       uint16
	Pool        *ConstantPool
	AccessFlags uint16
	ThisClass   uint16
	SuperClass  uint16
	Interfaces  []uint16
	Fields      []*Member
	Methods     []*Member
	Attributes  []*Attribute
}

// Parse decodes a class file.
func Parse(data []byte) (*ClassFile, error) {
	r := newByteReader(data)

	magic, err := r.u4()
	if err != nil {
		return nil, err
	}

	if magic != Magic {
		return nil, fmt.Errorf("%w: bad magic %#x", ErrMalformed, magic)
	}

	cf := &ClassFile{}

	if cf.Minor, err = r.u2(); err != nil {
		return nil, err
	}

	if cf.Major, err = r.u2(); err != nil {
		return nil, err
	}

	if cf.Pool, err = readConstantPool(r); err != nil {
		return nil, err
	}

	if cf.AccessFlags, err = r.u2(); err != nil {
		return nil, err
	}

	if cf.ThisClass, err = r.u2(); err != nil {
		return nil, err
	}

	if cf.SuperClass, err = r.u2(); err != nil {
		return nil, err
	}

	n, err := r.u2()
	if err != nil {
		return nil, err
	}

	cf.Interfaces = make([]uint16, n)
	for i := range cf.Interfaces {
		if cf.Interfaces[i], err = r.u2(); err != nil {
			return nil, err
		}
	}

	if cf.Fields, err = readMembers(r); err != nil {
		return nil, fmt.Errorf("fields: %w", err)
	}

	if cf.Methods, err = readMembers(r); err != nil {
		return nil, fmt.Errorf("methods: %w", err)
	}

	if cf.Attributes, err = readAttributes(r); err != nil {
		return nil, fmt.Errorf("class attributes: %w", err)
	}

	if r.remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformed, r.remaining())
	}

	if _, err := cf.Pool.ClassName(cf.ThisClass); err != nil {
		return nil, fmt.Errorf("this_class: %w", err)
	}

	return cf, nil
}

func readMembers(r *byteReader) ([]*Member, error) {
	n, err := r.u2()
	if err != nil {
		return nil, err
	}

	members := make([]*Member, n)

	for i := range members {
		m := &Member{}

		if m.AccessFlags, err = r.u2(); err != nil {
			return nil, err
		}

		if m.NameIndex, err = r.u2(); err != nil {
			return nil, err
		}

		if m.DescriptorIndex, err = r.u2(); err != nil {
			return nil, err
		}

		if m.Attributes, err = readAttributes(r); err != nil {
			return nil, err
		}

		members[i] = m
	}

	return members, nil
}

func readAttributes(r *byteReader) ([]*Attribute, error) {
	n, err := r.u2()
	if err != nil {
		return nil, err
	}

	attrs := make([]*Attribute, n)

	for i := range attrs {
		name, err := r.u2()
		if err != nil {
			return nil, err
		}

		size, err := r.u4()
		if err != nil {
			return nil, err
		}

		info, err := r.bytes(int(size))
		if err != nil {
			return nil, err
		}

		attrs[i] = &Attribute{NameIndex: name, Info: info}
	}

	return attrs, nil
}

// Bytes serializes the class file.
func (cf *ClassFile) Bytes() []byte {
	w := &byteWriter{}
	w.u4(Magic)
	w.u2(cf.Minor)
	w.u2(cf.Major)
	cf.Pool.write(w)
	w.u2(cf.AccessFlags)
	w.u2(cf.ThisClass)
	w.u2(cf.SuperClass)
	w.u2(uint16(len(cf.Interfaces)))

	for _, i := range cf.Interfaces {
		w.u2(i)
	}

	writeMembers(w, cf.Fields)
	writeMembers(w, cf.Methods)
	writeAttributes(w, cf.Attributes)

	return w.bytes()
}

func writeMembers(w *byteWriter, members []*Member) {
	w.u2(uint16(len(members)))

	for _, m := range members {
		w.u2(m.AccessFlags)
		w.u2(m.NameIndex)
		w.u2(m.DescriptorIndex)
		writeAttributes(w, m.Attributes)
	}
}

func writeAttributes(w *byteWriter, attrs []*Attribute) {
	w.u2(uint16(len(attrs)))

	for _, a := range attrs {
		w.u2(a.NameIndex)
		w.u4(uint32(len(a.Info)))
		w.raw(a.Info)
	}
}

// Name returns the internal name of the class, e.g. java/lang/String.
func (cf *ClassFile) Name() string {
	name, _ := cf.Pool.ClassName(cf.ThisClass)

	return name
}

// SuperName returns the internal name of the superclass, or "" for java/lang/Object.
func (cf *ClassFile) SuperName() string {
	if cf.SuperClass == 0 {
		return ""
	}

	name, _ := cf.Pool.ClassName(cf.SuperClass)

	return name
}

// InterfaceNames returns the internal names of the direct superinterfaces.
func (cf *ClassFile) InterfaceNames() []string {
	out := make([]string, 0, len(cf.Interfaces))

	for _, i := range cf.Interfaces {
		if name, err := cf.Pool.ClassName(i); err == nil {
			out = append(out, name)
		}
	}

	return out
}

// MemberName returns the name of a field or method.
func (cf *ClassFile) MemberName(m *Member) string {
	s, _ := cf.Pool.UTF8(m.NameIndex)

	return s
}

// MemberDescriptor returns the descriptor of a field or method.
func (cf *ClassFile) MemberDescriptor(m *Member) string {
	s, _ := cf.Pool.UTF8(m.DescriptorIndex)

	return s
}

// IsConstructor reports whether m is an instance initializer.
func (cf *ClassFile) IsConstructor(m *Member) bool {
	return cf.MemberName(m) == "<init>"
}

// FindField returns the field with the given name, or nil.
func (cf *ClassFile) FindField(name string) *Member {
	for _, f := range cf.Fields {
		if cf.MemberName(f) == name {
			return f
		}
	}

	return nil
}

// FindMethod returns the method with the given name and descriptor, or nil.
// An empty descriptor matches the first method of that name.
func (cf *ClassFile) FindMethod(name, desc string) *Member {
	for _, m := range cf.Methods {
		if cf.MemberName(m) == name && (desc == "" || cf.MemberDescriptor(m) == desc) {
			return m
		}
	}

	return nil
}

// AttributeName returns the name of an attribute.
func (cf *ClassFile) AttributeName(a *Attribute) string {
	s, _ := cf.Pool.UTF8(a.NameIndex)

	return s
}

// FindAttribute returns the first attribute in attrs with the given name, or nil.
func (cf *ClassFile) FindAttribute(attrs []*Attribute, name string) *Attribute {
	for _, a := range attrs {
		if cf.AttributeName(a) == name {
			return a
		}
	}

	return nil
}

// RemoveAttributes drops every attribute whose name is listed.
func (cf *ClassFile) RemoveAttributes(attrs []*Attribute, names ...string) []*Attribute {
	out := attrs[:0]

	for _, a := range attrs {
		drop := false

		for _, n := range names {
			if cf.AttributeName(a) == n {
				drop = true

				break
			}
		}

		if !drop {
			out = append(out, a)
		}
	}

	return out
}

// NewAttribute builds an attribute whose name is added to the pool.
func (cf *ClassFile) NewAttribute(name string, info []byte) (*Attribute, error) {
	idx, err := cf.Pool.AddUTF8(name)
	if err != nil {
		return nil, err
	}

	return &Attribute{NameIndex: idx, Info: info}, nil
}

// AddField appends a field without attributes.
func (cf *ClassFile) AddField(access uint16, name, desc string) (*Member, error) {
	f, err := cf.newMember(access, name, desc)
	if err != nil {
		return nil, err
	}

	cf.Fields = append(cf.Fields, f)

	return f, nil
}

// AddMethod appends a method without attributes.
func (cf *ClassFile) AddMethod(access uint16, name, desc string) (*Member, error) {
	m, err := cf.newMember(access, name, desc)
	if err != nil {
		return nil, err
	}

	cf.Methods = append(cf.Methods, m)

	return m, nil
}

func (cf *ClassFile) newMember(access uint16, name, desc string) (*Member, error) {
	n, err := cf.Pool.AddUTF8(name)
	if err != nil {
		return nil, err
	}

	d, err := cf.Pool.AddUTF8(desc)
	if err != nil {
		return nil, err
	}

	return &Member{AccessFlags: access, NameIndex: n, DescriptorIndex: d}, nil
}

// RemoveField deletes f from the class.
func (cf *ClassFile) RemoveField(f *Member) {
	cf.Fields = removeMember(cf.Fields, f)
}

// RemoveMethod deletes m from the class.
func (cf *ClassFile) RemoveMethod(m *Member) {
	cf.Methods = removeMember(cf.Methods, m)
}

func removeMember(members []*Member, target *Member) []*Member {
	out := members[:0]

	for _, m := range members {
		if m != target {
			out = append(out, m)
		}
	}

	return out
}

// Clone returns a deep copy that shares no mutable state with cf.
func (cf *ClassFile) Clone() *ClassFile {
	out := *cf
	out.Pool = cf.Pool.Clone()
	out.Interfaces = append([]uint16(nil), cf.Interfaces...)
	out.Fields = cloneMembers(cf.Fields)
	out.Methods = cloneMembers(cf.Methods)
	out.Attributes = cloneAttributes(cf.Attributes)

	return &out
}

func cloneMembers(in []*Member) []*Member {
	out := make([]*Member, len(in))

	for i, m := range in {
		c := *m
		c.Attributes = cloneAttributes(m.Attributes)
		out[i] = &c
	}

	return out
}

func cloneAttributes(in []*Attribute) []*Attribute {
	out := make([]*Attribute, len(in))

	for i, a := range in {
		out[i] = &Attribute{NameIndex: a.NameIndex, Info: append([]byte(nil), a.Info...)}
	}

	return out
}

// JavaName converts an internal name (a/b/C) to a binary Java name (a.b.C).
func JavaName(internal string) string {
	return strings.ReplaceAll(internal, "/", ".")
}

// InternalName converts a binary Java name (a.b.C) to an internal name (a/b/C).
func InternalName(java string) string {
	return strings.ReplaceAll(java, ".", "/")
}

// EntryPath returns the JAR entry path of a class given its Java name.
func EntryPath(java string) string {
	return InternalName(java) + ".class"
}
