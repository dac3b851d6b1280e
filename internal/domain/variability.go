package domain

import (
	"errors"
	"fmt"

	"github.com/mouse-blink/codeeraser/internal/classfile"
	m "github.com/mouse-blink/codeeraser/internal/model"
	"go.uber.org/zap"
)

// Annotation types read by the eraser.
const (
	VariabilityType = "Lde/uni_hildesheim/sse/codeEraser/annotations/Variability;"
	SetValueType    = "Lde/uni_hildesheim/sse/codeEraser/annotations/SetValue;"
	OperationType   = "Lde/uni_hildesheim/sse/codeEraser/annotations/Operation;"
)

// ReadVariability returns the Variability annotation among attrs, or nil.
func ReadVariability(cf *classfile.ClassFile, attrs []*classfile.Attribute) (*m.Variability, error) {
	a, ok, err := findAnnotation(cf, attrs, VariabilityType)
	if err != nil || !ok {
		return nil, err
	}

	v := m.NewVariability()

	if e, ok := cf.Element(a, "id"); ok {
		if v.IDs, err = cf.ElementStrings(e); err != nil {
			return nil, fmt.Errorf("Variability.id: %w", err)
		}
	}

	if e, ok := cf.Element(a, "op"); ok {
		typ, name, err := cf.ElementEnum(e)
		if err != nil {
			return nil, fmt.Errorf("Variability.op: %w", err)
		}

		switch op := m.Operation(name); {
		case typ != OperationType:
			return nil, fmt.Errorf("%w: Variability.op has type %s", classfile.ErrMalformed, typ)
		case op == m.OpAnd || op == m.OpOr || op == m.OpXor:
			v.Op = op
		default:
			return nil, fmt.Errorf("%w: unknown operation %s", classfile.ErrMalformed, name)
		}
	}

	if e, ok := cf.Element(a, "removeIfDisabled"); ok {
		if v.RemoveIfDisabled, err = cf.ElementBool(e); err != nil {
			return nil, fmt.Errorf("Variability.removeIfDisabled: %w", err)
		}
	}

	if e, ok := cf.Element(a, "value"); ok {
		s, err := cf.ElementStrings(e)
		if err != nil || len(s) != 1 {
			return nil, fmt.Errorf("%w: Variability.value is not a string", classfile.ErrMalformed)
		}

		v.Value = s[0]
	}

	return &v, nil
}

// ReadSetValue returns the id of a SetValue annotation among attrs.
func ReadSetValue(cf *classfile.ClassFile, attrs []*classfile.Attribute) (string, bool, error) {
	a, ok, err := findAnnotation(cf, attrs, SetValueType)
	if err != nil || !ok {
		return "", false, err
	}

	e, ok := cf.Element(a, "id")
	if !ok {
		return "", false, fmt.Errorf("%w: SetValue without id", classfile.ErrMalformed)
	}

	ids, err := cf.ElementStrings(e)
	if err != nil || len(ids) != 1 {
		return "", false, fmt.Errorf("%w: SetValue.id is not a string", classfile.ErrMalformed)
	}

	return ids[0], true, nil
}

func findAnnotation(cf *classfile.ClassFile, attrs []*classfile.Attribute, typ string) (classfile.Annotation, bool, error) {
	as, err := cf.Annotations(attrs)
	if err != nil {
		return classfile.Annotation{}, false, err
	}

	for _, a := range as {
		if cf.AnnotationType(a) == typ {
			return a, true, nil
		}
	}

	return classfile.Annotation{}, false, nil
}

// Enabled evaluates the ids of v against bindings.
func Enabled(v m.Variability, bindings m.Bindings, policy m.UnboundPolicy) bool {
	count := 0

	for _, id := range v.IDs {
		switch bindings.State(id) {
		case m.Enabled:
			count++
		case m.Unbound:
			if policy == m.UnboundEnabled {
				count++
			}
		}
	}

	switch v.Op {
	case m.OpOr:
		return count > 0
	case m.OpXor:
		return count == 1
	default:
		return count == len(v.IDs)
	}
}

// Decide computes what happens to an element annotated with v.
func Decide(v m.Variability, bindings m.Bindings, policy m.UnboundPolicy) m.Decision {
	switch {
	case Enabled(v, bindings, policy):
		return m.Decision{Kind: m.Keep}
	case v.Value != "":
		return m.Decision{Kind: m.Replace, Value: v.Value}
	case v.RemoveIfDisabled:
		return m.Decision{Kind: m.Remove}
	default:
		return m.Decision{Kind: m.Keep}
	}
}

// DecideConstructor is Decide for constructors, which cannot be replaced by
// a value.
func DecideConstructor(v m.Variability, bindings m.Bindings, policy m.UnboundPolicy) m.Decision {
	if Enabled(v, bindings, policy) || !v.RemoveIfDisabled {
		return m.Decision{Kind: m.Keep}
	}

	return m.Decision{Kind: m.Remove}
}

// DecisionTable binds Decide to the bindings of one run.
type DecisionTable struct {
	Bindings m.Bindings
	Policy   m.UnboundPolicy
}

// Decide decides for an element, nil meaning not annotated.
func (t DecisionTable) Decide(v *m.Variability) m.Decision {
	if v == nil {
		return m.Decision{Kind: m.Keep}
	}

	return Decide(*v, t.Bindings, t.Policy)
}

// DecideConstructor decides for a constructor, nil meaning not annotated.
func (t DecisionTable) DecideConstructor(v *m.Variability) m.Decision {
	if v == nil {
		return m.Decision{Kind: m.Keep}
	}

	return DecideConstructor(*v, t.Bindings, t.Policy)
}

// AnnotationResolver finds the Variability of classes and members. In
// recursive mode classes inherit from their supertypes and methods from the
// methods they override.
type AnnotationResolver struct {
	pool      ClassPool
	recursive bool
	log       *zap.Logger
}

// NewAnnotationResolver returns a resolver over pool.
func NewAnnotationResolver(pool ClassPool, recursive bool, log *zap.Logger) *AnnotationResolver {
	return &AnnotationResolver{pool: pool, recursive: recursive, log: log}
}

// Class returns the annotation of c or, recursively, of the first annotated
// supertype: the superclass chain first, then the interfaces.
func (r *AnnotationResolver) Class(c *LoadedClass) (*m.Variability, error) {
	v, err := ReadVariability(c.File, c.File.Attributes)
	if err != nil || v != nil || !r.recursive {
		return v, wrapElement(c.Name, err)
	}

	for _, super := range r.supertypes(c) {
		if v, err := r.Class(super); err != nil || v != nil {
			return v, err
		}
	}

	return nil, nil
}

// Field returns the annotation of a field. Fields do not inherit.
func (r *AnnotationResolver) Field(c *LoadedClass, f *classfile.Member) (*m.Variability, error) {
	v, err := ReadVariability(c.File, f.Attributes)

	return v, wrapElement(c.Name+"."+c.File.MemberName(f), err)
}

// Method returns the annotation of a method or, recursively, of the method
// it overrides, matched by name and parameter types. Constructors do not
// inherit.
func (r *AnnotationResolver) Method(c *LoadedClass, mth *classfile.Member) (*m.Variability, error) {
	v, err := ReadVariability(c.File, mth.Attributes)
	if err != nil || v != nil || !r.recursive || c.File.IsConstructor(mth) {
		return v, wrapElement(c.Name+"."+c.File.MemberName(mth), err)
	}

	mt, err := classfile.ParseMethodType(c.File.MemberDescriptor(mth))
	if err != nil {
		return nil, err
	}

	return r.inherited(c, c.File.MemberName(mth), mt.ParamDescriptor())
}

func (r *AnnotationResolver) inherited(c *LoadedClass, name, params string) (*m.Variability, error) {
	for _, super := range r.supertypes(c) {
		found := r.declared(super, name, params)
		if found == nil {
			continue
		}

		v, err := ReadVariability(super.File, found.Attributes)
		if err != nil || v != nil {
			return v, wrapElement(super.Name+"."+name, err)
		}

		if v, err := r.inherited(super, name, params); err != nil || v != nil {
			return v, err
		}
	}

	return nil, nil
}

func (r *AnnotationResolver) declared(c *LoadedClass, name, params string) *classfile.Member {
	for _, mth := range c.File.Methods {
		if c.File.MemberName(mth) != name {
			continue
		}

		mt, err := classfile.ParseMethodType(c.File.MemberDescriptor(mth))
		if err == nil && mt.ParamDescriptor() == params {
			return mth
		}
	}

	return nil
}

// SetValue returns the SetValue id of a field.
func (r *AnnotationResolver) SetValue(c *LoadedClass, f *classfile.Member) (string, bool, error) {
	id, ok, err := ReadSetValue(c.File, f.Attributes)

	return id, ok, wrapElement(c.Name+"."+c.File.MemberName(f), err)
}

// supertypes resolves the superclass and the interfaces of c, skipping the
// ones not on the search path.
func (r *AnnotationResolver) supertypes(c *LoadedClass) []*LoadedClass {
	names := c.File.InterfaceNames()
	if super := c.File.SuperName(); super != "" {
		names = append([]string{super}, names...)
	}

	out := make([]*LoadedClass, 0, len(names))

	for _, n := range names {
		if n == "java/lang/Object" {
			continue
		}

		s, err := r.pool.Resolve(classfile.JavaName(n))
		if err != nil {
			if !errors.Is(err, ErrClassNotFound) {
				r.log.Warn("cannot resolve supertype", zap.String("class", c.Name), zap.String("supertype", n), zap.Error(err))
			} else {
				r.log.Debug("supertype not on class path", zap.String("class", c.Name), zap.String("supertype", n))
			}

			continue
		}

		out = append(out, s)
	}

	return out
}

func wrapElement(element string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s: %w", element, err)
}
