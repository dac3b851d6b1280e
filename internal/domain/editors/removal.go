package editors

import (
	"fmt"
	"strings"

	"github.com/mouse-blink/codeeraser/internal/classfile"
	m "github.com/mouse-blink/codeeraser/internal/model"
)

// Removals answers which elements an erase pass takes out. Names are
// internal. Member lookups resolve the owner the way the JVM does, so a
// reference through a subclass still finds the declaring class.
type Removals interface {
	// Class returns the decision for a removed class.
	Class(name string) (m.Decision, bool)
	// Field returns the decision for a removed field. Fields of removed
	// classes are reported with the field's own replacement value, if any.
	Field(owner, name, desc string) (m.Decision, bool)
	// Method returns the decision for a removed method or constructor.
	Method(owner, name, desc string) (m.Decision, bool)
	// Constructor reports whether the constructor itself, not just its
	// class, is removed.
	Constructor(owner, desc string) bool
}

// RemovalEditor rewrites every reference to a removed element into code
// that no longer needs it.
type RemovalEditor struct {
	removals Removals
}

// NewRemovalEditor returns an editor over removals.
func NewRemovalEditor(removals Removals) *RemovalEditor {
	return &RemovalEditor{removals: removals}
}

// Visit implements classfile.SiteVisitor.
func (e *RemovalEditor) Visit(site classfile.Site, edits *classfile.EditList) error {
	switch site.Kind {
	case classfile.SiteCast:
		return e.typeCheck(site, edits, classfile.Insn(classfile.AconstNull))
	case classfile.SiteInstanceof:
		return e.typeCheck(site, edits, classfile.Insn(classfile.Iconst0))
	case classfile.SiteFieldAccess:
		return e.fieldAccess(site, edits)
	case classfile.SiteMethodCall:
		return e.methodCall(site, edits)
	case classfile.SiteConstructorCall:
		if e.removals.Constructor(site.Class, site.Descriptor) {
			return fmt.Errorf("%w: constructor chain into removed %s%s", classfile.ErrCompile, classfile.JavaName(site.Class), site.Descriptor)
		}

		return nil
	case classfile.SiteNewObject:
		return e.newObject(site, edits)
	case classfile.SiteNewArray:
		return e.newArray(site, edits)
	case classfile.SiteHandler:
		return e.handler(site, edits)
	default:
		return nil
	}
}

// removedType looks up the element class of name, which may be an array.
func (e *RemovalEditor) removedType(name string) (m.Decision, string, bool) {
	elem := classfile.ObjectType(name).ClassName()
	if elem == "" {
		return m.Decision{}, "", false
	}

	d, ok := e.removals.Class(elem)

	return d, elem, ok
}

// replacementType returns name with its element class swapped for the
// replacement class of d.
func replacementType(name, elem string, d m.Decision) (string, error) {
	repl, err := ClassLiteral(d.Value)
	if err != nil {
		return "", err
	}

	if name == elem {
		return repl, nil
	}

	return strings.Replace(name, "L"+elem+";", "L"+repl+";", 1), nil
}

func (e *RemovalEditor) typeCheck(site classfile.Site, edits *classfile.EditList, fallback classfile.Instruction) error {
	d, elem, ok := e.removedType(site.Class)
	if !ok {
		return nil
	}

	if d.Kind == m.Replace {
		name, err := replacementType(site.Class, elem, d)
		if err != nil {
			return err
		}

		i, err := site.Owner.Pool.AddClass(name)
		if err != nil {
			return err
		}

		return edits.Replace(site.Index, classfile.InsnIndex(site.Instruction.Op, i))
	}

	return edits.Replace(site.Index, classfile.Insn(classfile.Pop), fallback)
}

func (e *RemovalEditor) fieldAccess(site classfile.Site, edits *classfile.EditList) error {
	d, ok := e.removals.Field(site.Class, site.Name, site.Descriptor)
	if !ok {
		return nil
	}

	t, err := classfile.ParseFieldType(site.Descriptor)
	if err != nil {
		return err
	}

	var code []classfile.Instruction

	if site.Write {
		code = Pop(t)
		if !site.Static {
			code = append(code, classfile.Insn(classfile.Pop))
		}

		return edits.Replace(site.Index, code...)
	}

	if !site.Static {
		code = append(code, classfile.Insn(classfile.Pop))
	}

	push, err := e.value(site, t, d)
	if err != nil {
		return err
	}

	return edits.Replace(site.Index, append(code, push...)...)
}

func (e *RemovalEditor) methodCall(site classfile.Site, edits *classfile.EditList) error {
	d, ok := e.removals.Method(site.Class, site.Name, site.Descriptor)
	if !ok {
		return nil
	}

	mt, err := classfile.ParseMethodType(site.Descriptor)
	if err != nil {
		return err
	}

	code := Pop(mt.Params...)
	if !site.Static {
		code = append(code, classfile.Insn(classfile.Pop))
	}

	push, err := e.value(site, mt.Return, d)
	if err != nil {
		return err
	}

	return edits.Replace(site.Index, append(code, push...)...)
}

// value pushes the replacement literal of d, or the default of t.
func (e *RemovalEditor) value(site classfile.Site, t classfile.Type, d m.Decision) ([]classfile.Instruction, error) {
	if t.IsVoid() {
		return nil, nil
	}

	if d.Kind != m.Replace {
		return Default(t), nil
	}

	code, err := Value(site.Owner.Pool, t, d.Value)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", classfile.JavaName(site.Class), site.Name, err)
	}

	return code, nil
}

func (e *RemovalEditor) newObject(site classfile.Site, edits *classfile.EditList) error {
	d, classRemoved := e.removals.Class(site.Class)
	ctorRemoved := e.removals.Constructor(site.Class, site.Descriptor)

	if !classRemoved && !ctorRemoved {
		return nil
	}

	if site.InitIndex < 0 {
		return fmt.Errorf("%w: new %s without constructor call", classfile.ErrCompile, classfile.JavaName(site.Class))
	}

	if classRemoved && !ctorRemoved && d.Kind == m.Replace {
		repl, err := ClassLiteral(d.Value)
		if err != nil {
			return err
		}

		c, err := site.Owner.Pool.AddClass(repl)
		if err != nil {
			return err
		}

		init, err := site.Owner.Pool.AddMethodref(repl, "<init>", site.Descriptor)
		if err != nil {
			return err
		}

		if err := edits.Replace(site.Index, classfile.InsnIndex(classfile.New, c)); err != nil {
			return err
		}

		return edits.Replace(site.InitIndex, classfile.InsnIndex(classfile.Invokespecial, init))
	}

	mt, err := classfile.ParseMethodType(site.Descriptor)
	if err != nil {
		return err
	}

	// the null stands in for the uninitialized object; the constructor call
	// drops its arguments and one copy of it
	if err := edits.Replace(site.Index, classfile.Insn(classfile.AconstNull)); err != nil {
		return err
	}

	return edits.Replace(site.InitIndex, append(Pop(mt.Params...), classfile.Insn(classfile.Pop))...)
}

func (e *RemovalEditor) newArray(site classfile.Site, edits *classfile.EditList) error {
	d, elem, ok := e.removedType(site.Class)
	if !ok {
		return nil
	}

	in := site.Instruction

	if d.Kind == m.Replace {
		operand := site.Class
		if in.Op == classfile.Anewarray {
			operand = site.Class[1:]
			if t := classfile.Type(operand); !t.IsArray() {
				operand = t.ClassName()
			}
		}

		name, err := replacementType(operand, elem, d)
		if err != nil {
			return err
		}

		i, err := site.Owner.Pool.AddClass(name)
		if err != nil {
			return err
		}

		repl := classfile.InsnIndex(in.Op, i)
		repl.Value = in.Value

		return edits.Replace(site.Index, repl)
	}

	dims := 1
	if in.Op == classfile.Multianewarray {
		dims = int(in.Value)
	}

	code := make([]classfile.Instruction, 0, dims+1)
	for range dims {
		code = append(code, classfile.Insn(classfile.Pop))
	}

	return edits.Replace(site.Index, append(code, classfile.Insn(classfile.AconstNull))...)
}

func (e *RemovalEditor) handler(site classfile.Site, edits *classfile.EditList) error {
	d, ok := e.removals.Class(site.Class)
	if !ok {
		return nil
	}

	if d.Kind == m.Replace {
		repl, err := ClassLiteral(d.Value)
		if err != nil {
			return err
		}

		i, err := site.Owner.Pool.AddClass(repl)
		if err != nil {
			return err
		}

		return edits.SetCatchType(site.Index, i)
	}

	return edits.DropHandler(site.Index)
}
