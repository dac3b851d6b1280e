package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mouse-blink/codeeraser/internal/classfile"
	"github.com/mouse-blink/codeeraser/internal/domain/editors"
	m "github.com/mouse-blink/codeeraser/internal/model"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Replicator copies classes under new names. Inner classes referenced by a
// replicated class are replicated along with it.
type Replicator struct {
	pool ClassPool
	log  *zap.Logger
}

// NewReplicator returns a replicator loading originals from pool.
func NewReplicator(pool ClassPool, log *zap.Logger) *Replicator {
	return &Replicator{pool: pool, log: log}
}

type replica struct {
	class *LoadedClass
	from  string
}

// Replicate copies every class of mappings and the inner classes they
// reach. It returns the renamed copies, the complete map and one entry per
// replicated class.
func (r *Replicator) Replicate(mappings m.ClassNameMap) ([]*LoadedClass, m.ClassNameMap, []m.Renamed, error) {
	complete := mappings.Clone()
	done := map[string]bool{}

	var replicas []replica

	wave := mappings.Clone()

	for len(wave) > 0 {
		next := m.ClassNameMap{}

		for _, old := range sortedNames(wave) {
			if done[old] {
				continue
			}

			done[old] = true

			c, inner, err := r.copyClass(old, wave[old])
			if err != nil {
				return nil, nil, nil, err
			}

			replicas = append(replicas, replica{class: c, from: old})

			for _, name := range inner {
				if _, explicit := complete[name]; explicit || done[name] {
					continue
				}

				next[name] = wave[old] + "$" + strings.TrimPrefix(name, old+"$")
			}
		}

		for k, v := range next {
			complete[k] = v
		}

		r.log.Debug("replication wave", zap.Int("discovered", len(next)))
		wave = next
	}

	rename := classNameRenamer(complete)
	out := make([]*LoadedClass, 0, len(replicas))
	renamed := make([]m.Renamed, 0, len(replicas))

	for _, rep := range replicas {
		c := rep.class

		if _, err := c.File.Rename(rename); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to rename %s: %w", rep.from, err)
		}

		c.Name = classfile.JavaName(c.File.Name())
		c.Path = classfile.EntryPath(c.Name)
		c.Entry = ""
		c.Dirty = true

		out = append(out, c)
		renamed = append(renamed, m.Renamed{From: rep.from, To: c.Name})
	}

	return out, complete, renamed, nil
}

// copyClass makes a local copy of old and returns the inner classes of old
// it refers to.
func (r *Replicator) copyClass(old, target string) (*LoadedClass, []string, error) {
	c, err := r.pool.MakeLocal(old)
	if err != nil {
		return nil, nil, err
	}

	r.log.Debug("replicating", zap.String("from", old), zap.String("to", target))

	collector := editors.NewDependencyCollector(classfile.InternalName(old) + "$")
	cf := c.File

	for _, f := range cf.Fields {
		t, err := classfile.ParseFieldType(cf.MemberDescriptor(f))
		if err != nil {
			return nil, nil, err
		}

		collector.AddType(t)
	}

	for _, mth := range cf.Methods {
		if err := collector.AddMethod(cf.MemberDescriptor(mth)); err != nil {
			return nil, nil, err
		}
	}

	if _, err := classfile.Instrument(cf, collector); err != nil {
		return nil, nil, err
	}

	return c, lo.Map(collector.Found(), func(n string, _ int) string {
		return classfile.JavaName(n)
	}), nil
}

// classNameRenamer adapts a dotted name map to classfile.Renamer.
func classNameRenamer(names m.ClassNameMap) classfile.Renamer {
	return func(internal string) (string, bool) {
		to, ok := names.Lookup(classfile.JavaName(internal))
		if !ok {
			return internal, false
		}

		return classfile.InternalName(to), true
	}
}

func sortedNames(names m.ClassNameMap) []string {
	keys := lo.Keys(names)
	sort.Strings(keys)

	return keys
}
