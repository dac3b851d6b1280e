package editors

import (
	"strings"

	"github.com/mouse-blink/codeeraser/internal/classfile"
)

// DependencyCollector records the classes a body refers to whose internal
// name starts with a prefix. It never edits.
type DependencyCollector struct {
	prefix string
	found  map[string]bool
}

// NewDependencyCollector collects names starting with prefix, e.g. "a/Outer$".
func NewDependencyCollector(prefix string) *DependencyCollector {
	return &DependencyCollector{prefix: prefix, found: map[string]bool{}}
}

// Visit implements classfile.SiteVisitor.
func (c *DependencyCollector) Visit(site classfile.Site, _ *classfile.EditList) error {
	switch site.Kind {
	case classfile.SiteCast, classfile.SiteInstanceof, classfile.SiteNewObject:
		c.AddType(classfile.ObjectType(site.Class))
	case classfile.SiteNewArray:
		c.AddType(site.ArrayType())
	case classfile.SiteFieldAccess:
		t, err := classfile.ParseFieldType(site.Descriptor)
		if err != nil {
			return err
		}

		c.AddType(t)
	case classfile.SiteMethodCall:
		return c.AddMethod(site.Descriptor)
	}

	return nil
}

// AddType records the element class of t when it matches.
func (c *DependencyCollector) AddType(t classfile.Type) {
	if name := t.ClassName(); name != "" && strings.HasPrefix(name, c.prefix) {
		c.found[name] = true
	}
}

// AddMethod records the parameter and return types of a method descriptor.
func (c *DependencyCollector) AddMethod(desc string) error {
	mt, err := classfile.ParseMethodType(desc)
	if err != nil {
		return err
	}

	for _, p := range mt.Params {
		c.AddType(p)
	}

	c.AddType(mt.Return)

	return nil
}

// Found returns the matching names, sorted.
func (c *DependencyCollector) Found() []string {
	return sortedKeys(c.found)
}
