package domain

import (
	"fmt"

	"github.com/mouse-blink/codeeraser/internal/classfile"
	m "github.com/mouse-blink/codeeraser/internal/model"
	"go.uber.org/zap"
)

// Replacer renames classes in place across a set of loaded classes.
type Replacer struct {
	log *zap.Logger
}

// NewReplacer returns a Replacer.
func NewReplacer(log *zap.Logger) *Replacer {
	return &Replacer{log: log}
}

// BuildMap combines the explicit names of mappings with, for every loaded
// class without an explicit mapping, the first matching pattern.
func (r *Replacer) BuildMap(classes []*LoadedClass, mappings m.Mappings) m.ClassNameMap {
	names := mappings.Names.Clone()

	for _, c := range classes {
		if _, explicit := names[c.Name]; explicit {
			continue
		}

		for _, p := range mappings.Patterns {
			if to, ok := p.Apply(c.Name); ok {
				names[c.Name] = to

				break
			}
		}
	}

	for k, v := range names {
		if k == v {
			delete(names, k)
		}
	}

	return names
}

// Replace renames every class and every reference according to names and
// moves renamed classes to their new entry. entry maps a class name to its
// entry path.
func (r *Replacer) Replace(classes []*LoadedClass, names m.ClassNameMap, entry func(name string) string) ([]m.Renamed, error) {
	rename := classNameRenamer(names)

	var renamed []m.Renamed

	for _, c := range classes {
		changed, err := c.File.Rename(rename)
		if err != nil {
			return nil, fmt.Errorf("failed to rename references in %s: %w", c.Name, err)
		}

		if !changed {
			continue
		}

		c.Dirty = true

		if name := classfile.JavaName(c.File.Name()); name != c.Name {
			r.log.Debug("renamed class", zap.String("from", c.Name), zap.String("to", name))
			renamed = append(renamed, m.Renamed{From: c.Name, To: name})
			c.Name = name
			c.Path = entry(name)
		}
	}

	return renamed, nil
}
