package domain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mouse-blink/codeeraser/internal/classfile"
	"github.com/mouse-blink/codeeraser/internal/domain/editors"
	m "github.com/mouse-blink/codeeraser/internal/model"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// EraseResult lists what an erase pass changed.
type EraseResult struct {
	Changes  []m.Change
	Removed  []*LoadedClass
	Modified []string
	Warnings []string
}

// Eraser removes the elements whose variability is disabled and rewrites
// every reference to them.
type Eraser struct {
	pool     ClassPool
	resolver *AnnotationResolver
	table    DecisionTable
	lazy     bool
	log      *zap.Logger

	classes     map[string]m.Decision // internal name
	fields      map[string]m.Decision // owner.name
	methods     map[string]m.Decision // owner.name+desc
	ctors       map[string]bool       // owner+desc
	assignments map[string]string     // owner.name
	resolved    map[string]resolution
}

type resolution struct {
	decision m.Decision
	removed  bool
}

// NewEraser creates an eraser deciding with table. In lazy mode a class
// whose rewrite fails to compile is kept unmodified.
func NewEraser(pool ClassPool, resolver *AnnotationResolver, table DecisionTable, lazy bool, log *zap.Logger) *Eraser {
	return &Eraser{
		pool:        pool,
		resolver:    resolver,
		table:       table,
		lazy:        lazy,
		log:         log,
		classes:     map[string]m.Decision{},
		fields:      map[string]m.Decision{},
		methods:     map[string]m.Decision{},
		ctors:       map[string]bool{},
		assignments: map[string]string{},
		resolved:    map[string]resolution{},
	}
}

// Process decides for every class and member, rewrites the retained
// classes and deletes the removed members. The removed classes are
// returned for the caller to drop.
func (e *Eraser) Process(classes []*LoadedClass) (EraseResult, error) {
	var res EraseResult

	for _, c := range classes {
		changes, err := e.decide(c)
		if err != nil {
			return res, err
		}

		res.Changes = append(res.Changes, changes...)
	}

	retained := lo.Filter(classes, func(c *LoadedClass, _ int) bool {
		_, removed := e.classes[c.InternalName()]

		return !removed
	})

	setter := editors.NewSetValueEditor(e)
	visitor := editors.Chain{editors.NewRemovalEditor(e), setter}

	for _, c := range retained {
		if err := e.rewrite(c, visitor); err != nil {
			if !e.lazy || !errors.Is(err, classfile.ErrCompile) {
				return res, err
			}

			msg := fmt.Sprintf("%s left unmodified: %v", c.Name, err)
			e.log.Warn("class left unmodified", zap.String("class", c.Name), zap.Error(err))
			res.Warnings = append(res.Warnings, msg)

			if err := c.Reset(); err != nil {
				return res, err
			}
		}
	}

	res.Modified = setter.Modified()

	for _, c := range classes {
		if _, removed := e.classes[c.InternalName()]; removed {
			res.Removed = append(res.Removed, c)
			e.log.Info("removed class", zap.String("class", c.Name))
		}
	}

	return res, nil
}

func (e *Eraser) decide(c *LoadedClass) ([]m.Change, error) {
	var changes []m.Change

	owner := c.InternalName()

	v, err := e.resolver.Class(c)
	if err != nil {
		return nil, err
	}

	if d := e.table.Decide(v); d.Erases() {
		e.classes[owner] = d

		return []m.Change{{Kind: m.ElementClass, Element: c.Name, Decision: d}}, nil
	}

	cf := c.File

	for _, f := range cf.Fields {
		name := cf.MemberName(f)

		v, err := e.resolver.Field(c, f)
		if err != nil {
			return nil, err
		}

		d := e.table.Decide(v)
		if d.Erases() {
			e.fields[owner+"."+name] = d
			changes = append(changes, m.Change{Kind: m.ElementField, Element: c.Name + "." + name, Decision: d})

			if d.Kind == m.Replace && isConstant(cf, f) {
				e.log.Warn("inlined reads of a constant keep its value",
					zap.String("field", c.Name+"."+name), zap.String("value", d.Value))
			}

			continue
		}

		id, ok, err := e.resolver.SetValue(c, f)
		if err != nil {
			return nil, err
		}

		if value, bound := e.table.Bindings.Value(id); ok && bound {
			e.assignments[owner+"."+name] = value
		}
	}

	for _, mth := range cf.Methods {
		name, desc := cf.MemberName(mth), cf.MemberDescriptor(mth)
		if name == "<clinit>" {
			continue
		}

		v, err := e.resolver.Method(c, mth)
		if err != nil {
			return nil, err
		}

		if cf.IsConstructor(mth) {
			if d := e.table.DecideConstructor(v); d.Erases() {
				e.ctors[owner+desc] = true
				changes = append(changes, m.Change{Kind: m.ElementConstructor, Element: c.Name + desc, Decision: d})
			}

			continue
		}

		if d := e.table.Decide(v); d.Erases() {
			e.methods[owner+"."+name+desc] = d
			changes = append(changes, m.Change{Kind: m.ElementMethod, Element: c.Name + "." + name + desc, Decision: d})
		}
	}

	return changes, nil
}

func isConstant(cf *classfile.ClassFile, f *classfile.Member) bool {
	const staticFinal = classfile.AccStatic | classfile.AccFinal

	return f.AccessFlags&staticFinal == staticFinal && cf.FindAttribute(f.Attributes, classfile.AttrConstantValue) != nil
}

func (e *Eraser) rewrite(c *LoadedClass, visitor classfile.SiteVisitor) error {
	changed, err := classfile.Instrument(c.File, visitor)
	if err != nil {
		return err
	}

	owner := c.InternalName()
	cf := c.File

	for _, f := range append([]*classfile.Member(nil), cf.Fields...) {
		if _, ok := e.fields[owner+"."+cf.MemberName(f)]; ok {
			cf.RemoveField(f)

			changed = true
		}
	}

	for _, mth := range append([]*classfile.Member(nil), cf.Methods...) {
		name, desc := cf.MemberName(mth), cf.MemberDescriptor(mth)

		_, method := e.methods[owner+"."+name+desc]
		if method || (cf.IsConstructor(mth) && e.ctors[owner+desc]) {
			cf.RemoveMethod(mth)

			changed = true
		}
	}

	if changed {
		c.Dirty = true
	}

	return nil
}

// Class implements editors.Removals.
func (e *Eraser) Class(name string) (m.Decision, bool) {
	d, ok := e.classes[name]

	return d, ok
}

// Field implements editors.Removals.
func (e *Eraser) Field(owner, name, _ string) (m.Decision, bool) {
	return e.member(owner, name, "", func(c *LoadedClass) *classfile.Member {
		return c.File.FindField(name)
	})
}

// Method implements editors.Removals.
func (e *Eraser) Method(owner, name, desc string) (m.Decision, bool) {
	return e.member(owner, name, desc, func(c *LoadedClass) *classfile.Member {
		return c.File.FindMethod(name, desc)
	})
}

// Constructor implements editors.Removals.
func (e *Eraser) Constructor(owner, desc string) bool {
	return e.ctors[owner+desc]
}

// member resolves a member reference from owner through its supertypes and
// reports whether its declaration is removed.
func (e *Eraser) member(owner, name, desc string, find func(*LoadedClass) *classfile.Member) (m.Decision, bool) {
	key := owner + "." + name + desc
	if r, ok := e.resolved[key]; ok {
		return r.decision, r.removed
	}

	r, _ := e.resolveMember(owner, name, desc, find, map[string]bool{})
	e.resolved[key] = r

	return r.decision, r.removed
}

// resolveMember searches cls, then its superclass and its superinterfaces
// depth first, in the order the annotation resolver inherits. The bool is
// false when no visited type declares the member.
func (e *Eraser) resolveMember(cls, name, desc string, find func(*LoadedClass) *classfile.Member, seen map[string]bool) (resolution, bool) {
	if cls == "" || seen[cls] {
		return resolution{}, false
	}

	seen[cls] = true

	table := e.fields
	if desc != "" {
		table = e.methods
	}

	if d, ok := table[cls+"."+name+desc]; ok {
		return resolution{decision: d, removed: true}, true
	}

	c, err := e.pool.Resolve(classfile.JavaName(cls))
	if err != nil {
		// outside the search path only the class decision is known
		_, removed := e.classes[cls]

		return resolution{decision: m.Decision{Kind: m.Remove}, removed: removed}, removed
	}

	if mem := find(c); mem != nil {
		if _, removed := e.classes[cls]; !removed {
			return resolution{}, true
		}

		return resolution{decision: e.ownDecision(c, mem), removed: true}, true
	}

	supers := append([]string{c.File.SuperName()}, c.File.InterfaceNames()...)
	for _, super := range supers {
		if r, found := e.resolveMember(super, name, desc, find, seen); found {
			return r, true
		}
	}

	return resolution{}, false
}

// ownDecision is the decision for a member of a removed class: its own
// replacement value if it has one.
func (e *Eraser) ownDecision(c *LoadedClass, mem *classfile.Member) m.Decision {
	v, err := ReadVariability(c.File, mem.Attributes)
	if err != nil || v == nil || v.Value == "" || c.File.IsConstructor(mem) {
		return m.Decision{Kind: m.Remove}
	}

	return m.Decision{Kind: m.Replace, Value: v.Value}
}

// Assigned implements editors.Assignments.
func (e *Eraser) Assigned(owner, name string) (string, bool) {
	v, ok := e.assignments[owner+"."+name]

	return v, ok
}

// RemovedClasses returns the names of the removed classes, sorted.
func (e *Eraser) RemovedClasses() []string {
	names := lo.Map(lo.Keys(e.classes), func(n string, _ int) string {
		return classfile.JavaName(n)
	})

	sort.Strings(names)

	return names
}
