package classfile

import (
	"fmt"
)

// SiteKind classifies an expression site inside a method body.
type SiteKind uint8

const (
	SiteCast SiteKind = iota
	SiteInstanceof
	SiteFieldAccess
	SiteMethodCall
	SiteConstructorCall
	SiteNewObject
	SiteNewArray
	SiteHandler
)

var siteKindNames = [...]string{"cast", "instanceof", "field", "call", "constructor-call", "new", "new-array", "handler"}

func (k SiteKind) String() string {
	if int(k) < len(siteKindNames) {
		return siteKindNames[k]
	}

	return fmt.Sprintf("site(%d)", k)
}

// Site is one occurrence of an expression inside a method body.
type Site struct {
	Kind SiteKind
	// Index is the instruction index, or the handler index for SiteHandler.
	Index       int
	Instruction Instruction
	// Class is the internal name of the type the site refers to: the cast or
	// instanceof target, the owner of a member, the instantiated class, the
	// caught class or the array type created by a new-array.
	Class      string
	Name       string
	Descriptor string
	Static     bool
	Write      bool
	Interface  bool
	// InitIndex is the instruction index of the constructor call paired with
	// a new-object site, -1 if none was found.
	InitIndex int
	Handler   Handler

	Owner  *ClassFile
	Method *Member
}

// ArrayType returns the array type created by a new-array site.
func (s Site) ArrayType() Type {
	return Type(s.Class)
}

// SiteVisitor receives every site of a body. Edits are collected and applied
// once the walk is complete.
type SiteVisitor interface {
	Visit(site Site, edits *EditList) error
}

// SiteVisitorFunc adapts a function to SiteVisitor.
type SiteVisitorFunc func(site Site, edits *EditList) error

func (f SiteVisitorFunc) Visit(site Site, edits *EditList) error {
	return f(site, edits)
}

var newarrayTypes = map[int32]Type{4: "Z", 5: "C", 6: "F", 7: "D", 8: "B", 9: "S", 10: "I", 11: "J"}

// Sites enumerates the sites of c in instruction order, followed by the
// handler sites.
//
//nolint:gocyclo // one case per site kind
func (cf *ClassFile) Sites(m *Member, c *Code) ([]Site, error) {
	var (
		out     []Site
		pending []int // indexes into out of unpaired new-object sites
	)

	for i, in := range c.Instructions {
		site := Site{Index: i, Instruction: in, InitIndex: -1, Owner: cf, Method: m}

		switch in.Op {
		case Checkcast, Instanceof, New, Anewarray, Multianewarray:
			name, err := cf.Pool.ClassName(in.Index)
			if err != nil {
				return nil, fmt.Errorf("%s at %d: %w", in.Op, in.Offset, err)
			}

			site.Class = name

			switch in.Op {
			case Checkcast:
				site.Kind = SiteCast
			case Instanceof:
				site.Kind = SiteInstanceof
			case New:
				site.Kind = SiteNewObject
				pending = append(pending, len(out))
			case Anewarray:
				site.Kind = SiteNewArray
				site.Class = "[" + string(ObjectType(name))
			default:
				site.Kind = SiteNewArray
			}
		case Newarray:
			t, ok := newarrayTypes[in.Value]
			if !ok {
				return nil, fmt.Errorf("%w: newarray type %d at %d", ErrMalformed, in.Value, in.Offset)
			}

			site.Kind, site.Class = SiteNewArray, "["+string(t)
		case Getstatic, Putstatic, Getfield, Putfield:
			ref, err := cf.Pool.MemberRef(in.Index)
			if err != nil {
				return nil, fmt.Errorf("%s at %d: %w", in.Op, in.Offset, err)
			}

			site.Kind = SiteFieldAccess
			site.Class, site.Name, site.Descriptor = ref.Class, ref.Name, ref.Descriptor
			site.Static = in.Op == Getstatic || in.Op == Putstatic
			site.Write = in.Op == Putstatic || in.Op == Putfield
		case Invokevirtual, Invokespecial, Invokestatic, Invokeinterface:
			ref, err := cf.Pool.MemberRef(in.Index)
			if err != nil {
				return nil, fmt.Errorf("%s at %d: %w", in.Op, in.Offset, err)
			}

			site.Kind = SiteMethodCall
			site.Class, site.Name, site.Descriptor = ref.Class, ref.Name, ref.Descriptor
			site.Static = in.Op == Invokestatic
			site.Interface = ref.Interface

			if in.Op == Invokespecial && ref.Name == "<init>" {
				site.Kind = SiteConstructorCall

				if j := matchPending(out, pending, ref.Class); j >= 0 {
					out[pending[j]].InitIndex = i
					out[pending[j]].Name = ref.Name
					out[pending[j]].Descriptor = ref.Descriptor
					pending = append(pending[:j], pending[j+1:]...)

					// the call belongs to the new-object site
					continue
				}
			}
		default:
			continue
		}

		out = append(out, site)
	}

	for i, h := range c.Handlers {
		if h.CatchType == 0 {
			continue
		}

		name, err := cf.Pool.ClassName(h.CatchType)
		if err != nil {
			return nil, fmt.Errorf("handler %d: %w", i, err)
		}

		out = append(out, Site{Kind: SiteHandler, Index: i, Class: name, Handler: h, InitIndex: -1, Owner: cf, Method: m})
	}

	return out, nil
}

func matchPending(out []Site, pending []int, class string) int {
	for j := len(pending) - 1; j >= 0; j-- {
		if out[pending[j]].Class == class {
			return j
		}
	}

	return -1
}

// Instrument walks every method body of cf with v and applies the edits. It
// reports whether any body changed.
func Instrument(cf *ClassFile, v SiteVisitor) (bool, error) {
	changed := false

	for _, m := range cf.Methods {
		c, err := cf.Code(m)
		if err != nil {
			return changed, err
		}

		if c == nil {
			continue
		}

		sites, err := cf.Sites(m, c)
		if err != nil {
			return changed, fmt.Errorf("%s.%s: %w", JavaName(cf.Name()), cf.MemberName(m), err)
		}

		edits := NewEditList()

		for _, s := range sites {
			if err := v.Visit(s, edits); err != nil {
				return changed, fmt.Errorf("%s.%s: %w", JavaName(cf.Name()), cf.MemberName(m), err)
			}
		}

		if edits.Len() == 0 {
			continue
		}

		if err := c.Rewrite(edits); err != nil {
			return changed, fmt.Errorf("%s.%s: %w", JavaName(cf.Name()), cf.MemberName(m), err)
		}

		if err := cf.SetCode(m, c); err != nil {
			return changed, err
		}

		changed = true
	}

	return changed, nil
}
