package model

import (
	"fmt"
	"regexp"
)

// ClassNameMap maps old to new fully qualified (dotted) class names.
type ClassNameMap map[string]string

// Clone returns an independent copy.
func (c ClassNameMap) Clone() ClassNameMap {
	out := make(ClassNameMap, len(c))
	for k, v := range c {
		out[k] = v
	}

	return out
}

// Lookup returns the mapped name. Identity mappings count as absent.
func (c ClassNameMap) Lookup(name string) (string, bool) {
	n, ok := c[name]
	if !ok || n == name {
		return name, false
	}

	return n, true
}

// PatternMapping renames every class whose whole name matches Pattern.
type PatternMapping struct {
	Pattern    *regexp.Regexp
	Expression string
	Substitute string
}

// NewPatternMapping compiles expr anchored to the whole class name.
func NewPatternMapping(expr, substitute string) (PatternMapping, error) {
	re, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		return PatternMapping{}, fmt.Errorf("invalid pattern '%s' -> '%s': %w", expr, substitute, err)
	}

	return PatternMapping{Pattern: re, Expression: expr, Substitute: substitute}, nil
}

// Apply returns the substituted name when name matches.
func (p PatternMapping) Apply(name string) (string, bool) {
	if !p.Pattern.MatchString(name) {
		return name, false
	}

	return p.Pattern.ReplaceAllString(name, p.Substitute), true
}

// Mappings is the parsed content of a mappings source: explicit names plus
// patterns in registration order.
type Mappings struct {
	Names    ClassNameMap
	Patterns []PatternMapping
}

// NewMappings returns empty mappings.
func NewMappings() Mappings {
	return Mappings{Names: ClassNameMap{}}
}

// Empty reports whether nothing is mapped.
func (m Mappings) Empty() bool {
	return len(m.Names) == 0 && len(m.Patterns) == 0
}
