package editors

import (
	"fmt"

	"github.com/mouse-blink/codeeraser/internal/classfile"
)

// Assignments returns the bound value of a SetValue field, if any.
type Assignments interface {
	Assigned(owner, name string) (string, bool)
}

// SetValueEditor replaces the value stored by every putstatic to an
// assigned field with the bound literal.
type SetValueEditor struct {
	assignments Assignments
	modified    map[string]bool
}

// NewSetValueEditor returns an editor over assignments.
func NewSetValueEditor(assignments Assignments) *SetValueEditor {
	return &SetValueEditor{assignments: assignments, modified: map[string]bool{}}
}

// Visit implements classfile.SiteVisitor.
func (e *SetValueEditor) Visit(site classfile.Site, edits *classfile.EditList) error {
	if site.Kind != classfile.SiteFieldAccess || !site.Static || !site.Write || edits.Edited(site.Index) {
		return nil
	}

	value, ok := e.assignments.Assigned(site.Class, site.Name)
	if !ok {
		return nil
	}

	t, err := classfile.ParseFieldType(site.Descriptor)
	if err != nil {
		return err
	}

	push, err := Literal(site.Owner.Pool, t, value)
	if err != nil {
		return fmt.Errorf("%s.%s: %w", classfile.JavaName(site.Class), site.Name, err)
	}

	code := append(Pop(t), push...)

	if err := edits.Replace(site.Index, append(code, unplaced(site.Instruction))...); err != nil {
		return err
	}

	e.modified[classfile.JavaName(site.Class)+"."+site.Name] = true

	return nil
}

// Modified returns the fields whose assignments were rewritten, as
// Class.field.
func (e *SetValueEditor) Modified() []string {
	return sortedKeys(e.modified)
}
