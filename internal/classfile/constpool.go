package classfile

import (
	"fmt"
	"math"
)

// Tag identifies the kind of a constant pool entry.
type Tag uint8

// Constant pool tags.
const (
	TagUtf8               Tag = 1
	TagInteger            Tag = 3
	TagFloat              Tag = 4
	TagLong               Tag = 5
	TagDouble             Tag = 6
	TagClass              Tag = 7
	TagString             Tag = 8
	TagFieldref           Tag = 9
	TagMethodref          Tag = 10
	TagInterfaceMethodref Tag = 11
	TagNameAndType        Tag = 12
	TagMethodHandle       Tag = 15
	TagMethodType         Tag = 16
	TagDynamic            Tag = 17
	TagInvokeDynamic      Tag = 18
	TagModule             Tag = 19
	TagPackage            Tag = 20
)

// Constant is one constant pool entry. Which fields are meaningful depends on Tag:
//
//	Utf8                    Bytes
//	Integer, Float          Bits (low 32 bits)
//	Long, Double            Bits
//	Class, String, MethodType, Module, Package
//	                        Index1
//	Field/Method/InterfaceMethodref
//	                        Index1 = class, Index2 = name and type
//	NameAndType             Index1 = name, Index2 = descriptor
//	MethodHandle            Kind, Index1 = reference
//	Dynamic, InvokeDynamic  Index1 = bootstrap method, Index2 = name and type
//
// A zero Tag marks the unusable slot following a Long or Double.
type Constant struct {
	Tag    Tag
	Bytes  []byte
	Bits   uint64
	Index1 uint16
	Index2 uint16
	Kind   uint8
}

func (c Constant) key() string {
	switch c.Tag {
	case TagUtf8:
		return "u" + string(c.Bytes)
	case TagInteger, TagFloat, TagLong, TagDouble:
		return fmt.Sprintf("%d:%d", c.Tag, c.Bits)
	default:
		return fmt.Sprintf("%d:%d:%d:%d", c.Tag, c.Kind, c.Index1, c.Index2)
	}
}

// ConstantPool holds the entries of a class file constant pool. Index 0 is
// never valid; Long and Double take two slots.
type ConstantPool struct {
	entries []Constant
	lookup  map[string]uint16
}

// NewConstantPool returns an empty pool.
func NewConstantPool() *ConstantPool {
	return &ConstantPool{entries: make([]Constant, 1)}
}

func readConstantPool(r *byteReader) (*ConstantPool, error) {
	count, err := r.u2()
	if err != nil {
		return nil, err
	}

	if count == 0 {
		return nil, fmt.Errorf("%w: empty constant pool", ErrMalformed)
	}

	pool := &ConstantPool{entries: make([]Constant, 1, count)}

	for i := 1; i < int(count); i++ {
		c, err := readConstant(r)
		if err != nil {
			return nil, fmt.Errorf("constant #%d: %w", i, err)
		}

		pool.entries = append(pool.entries, c)

		if c.Tag == TagLong || c.Tag == TagDouble {
			pool.entries = append(pool.entries, Constant{})
			i++
		}
	}

	if len(pool.entries) != int(count) {
		return nil, fmt.Errorf("%w: wide constant overruns pool", ErrMalformed)
	}

	return pool, nil
}

func readConstant(r *byteReader) (Constant, error) {
	tag, err := r.u1()
	if err != nil {
		return Constant{}, err
	}

	c := Constant{Tag: Tag(tag)}

	switch c.Tag {
	case TagUtf8:
		n, err := r.u2()
		if err != nil {
			return c, err
		}

		c.Bytes, err = r.bytes(int(n))

		return c, err
	case TagInteger, TagFloat:
		v, err := r.u4()
		c.Bits = uint64(v)

		return c, err
	case TagLong, TagDouble:
		c.Bits, err = r.u8()

		return c, err
	case TagClass, TagString, TagMethodType, TagModule, TagPackage:
		c.Index1, err = r.u2()

		return c, err
	case TagFieldref, TagMethodref, TagInterfaceMethodref, TagNameAndType, TagDynamic, TagInvokeDynamic:
		if c.Index1, err = r.u2(); err != nil {
			return c, err
		}

		c.Index2, err = r.u2()

		return c, err
	case TagMethodHandle:
		if c.Kind, err = r.u1(); err != nil {
			return c, err
		}

		c.Index1, err = r.u2()

		return c, err
	default:
		return c, fmt.Errorf("%w: unknown constant tag %d", ErrMalformed, tag)
	}
}

func (p *ConstantPool) write(w *byteWriter) {
	w.u2(uint16(len(p.entries)))

	for _, c := range p.entries[1:] {
		if c.Tag == 0 {
			continue
		}

		w.u1(uint8(c.Tag))

		switch c.Tag {
		case TagUtf8:
			w.u2(uint16(len(c.Bytes)))
			w.raw(c.Bytes)
		case TagInteger, TagFloat:
			w.u4(uint32(c.Bits))
		case TagLong, TagDouble:
			w.u8(c.Bits)
		case TagClass, TagString, TagMethodType, TagModule, TagPackage:
			w.u2(c.Index1)
		case TagMethodHandle:
			w.u1(c.Kind)
			w.u2(c.Index1)
		default:
			w.u2(c.Index1)
			w.u2(c.Index2)
		}
	}
}

// Len returns the constant_pool_count value, one more than the highest index.
func (p *ConstantPool) Len() int {
	return len(p.entries)
}

// Get returns the entry at index i.
func (p *ConstantPool) Get(i uint16) (Constant, error) {
	if i == 0 || int(i) >= len(p.entries) || p.entries[i].Tag == 0 {
		return Constant{}, fmt.Errorf("%w: invalid constant index %d", ErrMalformed, i)
	}

	return p.entries[i], nil
}

func (p *ConstantPool) expect(i uint16, tags ...Tag) (Constant, error) {
	c, err := p.Get(i)
	if err != nil {
		return c, err
	}

	for _, t := range tags {
		if c.Tag == t {
			return c, nil
		}
	}

	return c, fmt.Errorf("%w: constant #%d has tag %d, want %v", ErrMalformed, i, c.Tag, tags)
}

// UTF8 returns the string held by a Utf8 entry.
func (p *ConstantPool) UTF8(i uint16) (string, error) {
	c, err := p.expect(i, TagUtf8)
	if err != nil {
		return "", err
	}

	return DecodeMUTF8(c.Bytes), nil
}

// ClassName returns the internal name (a/b/C or an array descriptor) of a Class entry.
func (p *ConstantPool) ClassName(i uint16) (string, error) {
	c, err := p.expect(i, TagClass)
	if err != nil {
		return "", err
	}

	return p.UTF8(c.Index1)
}

// NameAndType returns the name and descriptor of a NameAndType entry.
func (p *ConstantPool) NameAndType(i uint16) (string, string, error) {
	c, err := p.expect(i, TagNameAndType)
	if err != nil {
		return "", "", err
	}

	name, err := p.UTF8(c.Index1)
	if err != nil {
		return "", "", err
	}

	desc, err := p.UTF8(c.Index2)

	return name, desc, err
}

// MemberRef describes a Fieldref, Methodref or InterfaceMethodref entry.
type MemberRef struct {
	Class      string
	Name       string
	Descriptor string
	Interface  bool
}

// MemberRef resolves a field or method reference entry.
func (p *ConstantPool) MemberRef(i uint16) (MemberRef, error) {
	c, err := p.expect(i, TagFieldref, TagMethodref, TagInterfaceMethodref)
	if err != nil {
		return MemberRef{}, err
	}

	class, err := p.ClassName(c.Index1)
	if err != nil {
		return MemberRef{}, err
	}

	name, desc, err := p.NameAndType(c.Index2)
	if err != nil {
		return MemberRef{}, err
	}

	return MemberRef{Class: class, Name: name, Descriptor: desc, Interface: c.Tag == TagInterfaceMethodref}, nil
}

func (p *ConstantPool) index() map[string]uint16 {
	if p.lookup == nil {
		p.lookup = make(map[string]uint16, len(p.entries))

		for i := len(p.entries) - 1; i > 0; i-- {
			if p.entries[i].Tag != 0 {
				p.lookup[p.entries[i].key()] = uint16(i)
			}
		}
	}

	return p.lookup
}

// Add appends c unless an equal entry exists and returns its index.
func (p *ConstantPool) Add(c Constant) (uint16, error) {
	idx := p.index()
	if i, ok := idx[c.key()]; ok {
		return i, nil
	}

	return p.Append(c)
}

// Append adds c without looking for an equal entry.
func (p *ConstantPool) Append(c Constant) (uint16, error) {
	wide := c.Tag == TagLong || c.Tag == TagDouble

	limit := math.MaxUint16
	if wide {
		limit--
	}

	if len(p.entries) >= limit {
		return 0, fmt.Errorf("%w: constant pool overflow", ErrCompile)
	}

	i := uint16(len(p.entries))
	p.entries = append(p.entries, c)

	if wide {
		p.entries = append(p.entries, Constant{})
	}

	if p.lookup != nil {
		if _, ok := p.lookup[c.key()]; !ok {
			p.lookup[c.key()] = i
		}
	}

	return i, nil
}

// AddUTF8 adds a Utf8 entry.
func (p *ConstantPool) AddUTF8(s string) (uint16, error) {
	return p.Add(Constant{Tag: TagUtf8, Bytes: EncodeMUTF8(s)})
}

// AddClass adds a Class entry for an internal name.
func (p *ConstantPool) AddClass(internalName string) (uint16, error) {
	name, err := p.AddUTF8(internalName)
	if err != nil {
		return 0, err
	}

	return p.Add(Constant{Tag: TagClass, Index1: name})
}

// AddString adds a String entry.
func (p *ConstantPool) AddString(s string) (uint16, error) {
	v, err := p.AddUTF8(s)
	if err != nil {
		return 0, err
	}

	return p.Add(Constant{Tag: TagString, Index1: v})
}

// AddInteger adds an Integer entry.
func (p *ConstantPool) AddInteger(v int32) (uint16, error) {
	return p.Add(Constant{Tag: TagInteger, Bits: uint64(uint32(v))})
}

// AddFloat adds a Float entry.
func (p *ConstantPool) AddFloat(v float32) (uint16, error) {
	return p.Add(Constant{Tag: TagFloat, Bits: uint64(math.Float32bits(v))})
}

// AddLong adds a Long entry.
func (p *ConstantPool) AddLong(v int64) (uint16, error) {
	return p.Add(Constant{Tag: TagLong, Bits: uint64(v)})
}

// AddDouble adds a Double entry.
func (p *ConstantPool) AddDouble(v float64) (uint16, error) {
	return p.Add(Constant{Tag: TagDouble, Bits: math.Float64bits(v)})
}

// AddNameAndType adds a NameAndType entry.
func (p *ConstantPool) AddNameAndType(name, desc string) (uint16, error) {
	n, err := p.AddUTF8(name)
	if err != nil {
		return 0, err
	}

	d, err := p.AddUTF8(desc)
	if err != nil {
		return 0, err
	}

	return p.Add(Constant{Tag: TagNameAndType, Index1: n, Index2: d})
}

// AddFieldref adds a Fieldref entry.
func (p *ConstantPool) AddFieldref(class, name, desc string) (uint16, error) {
	return p.addRef(TagFieldref, class, name, desc)
}

// AddMethodref adds a Methodref entry.
func (p *ConstantPool) AddMethodref(class, name, desc string) (uint16, error) {
	return p.addRef(TagMethodref, class, name, desc)
}

// AddInterfaceMethodref adds an InterfaceMethodref entry.
func (p *ConstantPool) AddInterfaceMethodref(class, name, desc string) (uint16, error) {
	return p.addRef(TagInterfaceMethodref, class, name, desc)
}

func (p *ConstantPool) addRef(tag Tag, class, name, desc string) (uint16, error) {
	c, err := p.AddClass(class)
	if err != nil {
		return 0, err
	}

	nt, err := p.AddNameAndType(name, desc)
	if err != nil {
		return 0, err
	}

	return p.Add(Constant{Tag: tag, Index1: c, Index2: nt})
}

// set replaces entry i in place.
func (p *ConstantPool) set(i uint16, c Constant) {
	if p.lookup != nil && p.lookup[p.entries[i].key()] == i {
		delete(p.lookup, p.entries[i].key())
	}

	p.entries[i] = c

	if p.lookup != nil {
		if _, ok := p.lookup[c.key()]; !ok {
			p.lookup[c.key()] = i
		}
	}
}

// Clone returns a deep copy of the pool.
func (p *ConstantPool) Clone() *ConstantPool {
	out := &ConstantPool{entries: make([]Constant, len(p.entries))}

	for i, c := range p.entries {
		if c.Bytes != nil {
			c.Bytes = append([]byte(nil), c.Bytes...)
		}

		out.entries[i] = c
	}

	return out
}
