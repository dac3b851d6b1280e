package domain

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"github.com/mouse-blink/codeeraser/internal/adapter"
	"github.com/mouse-blink/codeeraser/internal/classfile"
	m "github.com/mouse-blink/codeeraser/internal/model"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const classSuffix = ".class"

// ProcessDecision tells WriteClasses what to do with a class entry that was
// not loaded up front.
type ProcessDecision int

// Decisions for unloaded class entries.
const (
	Process ProcessDecision = iota
	PassThrough
	Drop
)

// ClassProcessor handles the class entries of the input that were not
// loaded before writing.
type ClassProcessor interface {
	Decide(name string) ProcessDecision
	Process(class *LoadedClass) error
}

// Selector decides which classes LoadClasses keeps.
type Selector func(name string) bool

// SelectAll selects every class.
func SelectAll(string) bool {
	return true
}

// NewGlobSelector selects the classes matching any include and no exclude
// pattern. Patterns use '.' as separator, so "a.*" matches a.B but not
// a.b.C while "a.**" matches both. No includes means everything.
func NewGlobSelector(includes, excludes []string) (Selector, error) {
	compile := func(patterns []string) ([]glob.Glob, error) {
		out := make([]glob.Glob, 0, len(patterns))

		for _, p := range patterns {
			g, err := glob.Compile(p, '.')
			if err != nil {
				return nil, fmt.Errorf("invalid class pattern %q: %w", p, err)
			}

			out = append(out, g)
		}

		return out, nil
	}

	inc, err := compile(includes)
	if err != nil {
		return nil, err
	}

	exc, err := compile(excludes)
	if err != nil {
		return nil, err
	}

	matches := func(gs []glob.Glob, name string) bool {
		for _, g := range gs {
			if g.Match(name) {
				return true
			}
		}

		return false
	}

	return func(name string) bool {
		if len(inc) > 0 && !matches(inc, name) {
			return false
		}

		return !matches(exc, name)
	}, nil
}

// WriteStats counts what WriteClasses put into the output.
type WriteStats struct {
	Written int
	Copied  int
	Dropped int
}

// JarOption configures a JarProcessor.
type JarOption func(*JarProcessor)

// WithSelector restricts the classes loaded by LoadClasses.
func WithSelector(s Selector) JarOption {
	return func(p *JarProcessor) {
		p.selector = s
	}
}

// WithBinPath strips prefix, e.g. "bin/", from entry names before they
// become class names.
func WithBinPath(prefix string) JarOption {
	return func(p *JarProcessor) {
		p.binPath = prefix
	}
}

// JarProcessor loads the classes of a JAR, lets the tools change them and
// writes them back together with every other entry.
type JarProcessor struct {
	jars     adapter.JarAdapter
	pool     ClassPool
	log      *zap.Logger
	selector Selector
	binPath  string

	classes []*LoadedClass
	dropped map[string]bool
}

// NewJarProcessor creates a processor that resolves classes through pool.
func NewJarProcessor(jars adapter.JarAdapter, pool ClassPool, log *zap.Logger, opts ...JarOption) *JarProcessor {
	p := &JarProcessor{jars: jars, pool: pool, log: log, selector: SelectAll, dropped: map[string]bool{}}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// ClassName returns the class name of an entry, or false for entries that
// are not classes below the bin path.
func (p *JarProcessor) ClassName(entry string) (string, bool) {
	if !strings.HasSuffix(entry, classSuffix) || !strings.HasPrefix(entry, p.binPath) {
		return "", false
	}

	return classfile.JavaName(strings.TrimSuffix(strings.TrimPrefix(entry, p.binPath), classSuffix)), true
}

// EntryPath returns the entry a class of the given name is written to.
func (p *JarProcessor) EntryPath(name string) string {
	return p.binPath + classfile.EntryPath(name)
}

// LoadClasses puts the JAR on the search path and loads every selected
// class entry.
func (p *JarProcessor) LoadClasses(jar m.Path) (err error) {
	if err := p.pool.Append(jar); err != nil {
		return err
	}

	r, err := p.jars.Open(jar)
	if err != nil {
		return err
	}

	defer func() {
		err = multierr.Append(err, r.Close())
	}()

	for _, entry := range r.Names() {
		name, ok := p.ClassName(entry)
		if !ok || !p.selector(name) {
			continue
		}

		data, err := r.Read(entry)
		if err != nil {
			return err
		}

		c, err := p.pool.Define(data, jar)
		if err != nil {
			return err
		}

		c.Entry, c.Path = entry, entry
		p.classes = append(p.classes, c)
	}

	p.log.Debug("loaded classes", zap.String("jar", string(jar)), zap.Int("count", len(p.classes)))

	return nil
}

// Classes returns the loaded classes that are not dropped, in load order.
func (p *JarProcessor) Classes() []*LoadedClass {
	out := make([]*LoadedClass, 0, len(p.classes))

	for _, c := range p.classes {
		if !p.dropped[c.Name] {
			out = append(out, c)
		}
	}

	return out
}

// Add schedules a class that did not come from the input for writing.
func (p *JarProcessor) Add(c *LoadedClass) {
	delete(p.dropped, c.Name)
	p.classes = append(p.classes, c)
}

// Drop removes a class from the output.
func (p *JarProcessor) Drop(c *LoadedClass) {
	p.dropped[c.Name] = true
}

// Dropped reports whether the class was removed from the output.
func (p *JarProcessor) Dropped(name string) bool {
	return p.dropped[name]
}

// WriteClasses creates out with the manifest of in, then every loaded class,
// then every remaining entry of in. Without in only the loaded classes are
// written. Unloaded class entries go through proc when it is not nil.
func (p *JarProcessor) WriteClasses(in, out m.Path, proc ClassProcessor) (stats WriteStats, err error) {
	w, err := p.jars.Create(out)
	if err != nil {
		return stats, err
	}

	defer func() {
		err = multierr.Append(err, w.Close())
	}()

	var r *adapter.JarReader

	if in != "" {
		if r, err = p.jars.Open(in); err != nil {
			return stats, err
		}

		defer func() {
			err = multierr.Append(err, r.Close())
		}()

		if r.Has(adapter.ManifestPath) {
			if err := w.Copy(r, adapter.ManifestPath); err != nil {
				return stats, err
			}

			stats.Copied++
		}
	}

	handled := map[string]bool{}

	for _, c := range p.classes {
		if c.Entry != "" {
			handled[c.Entry] = true
		}

		if p.dropped[c.Name] {
			stats.Dropped++

			continue
		}

		if err := w.Write(c.Path, c.Bytes()); err != nil {
			return stats, err
		}

		stats.Written++
	}

	if r == nil {
		return stats, nil
	}

	for _, entry := range r.Names() {
		if handled[entry] || entry == adapter.ManifestPath {
			continue
		}

		if _, isClass := p.ClassName(entry); isClass && proc != nil {
			if err := p.processEntry(r, w, entry, in, proc, &stats); err != nil {
				return stats, err
			}

			continue
		}

		if err := w.Copy(r, entry); err != nil {
			return stats, err
		}

		stats.Copied++
	}

	return stats, nil
}

func (p *JarProcessor) processEntry(r *adapter.JarReader, w *adapter.JarWriter, entry string, in m.Path, proc ClassProcessor, stats *WriteStats) error {
	name, _ := p.ClassName(entry)

	switch proc.Decide(name) {
	case Drop:
		stats.Dropped++

		return nil
	case PassThrough:
		stats.Copied++

		return w.Copy(r, entry)
	}

	data, err := r.Read(entry)
	if err != nil {
		return err
	}

	c, err := p.pool.Define(data, in)
	if err != nil {
		return err
	}

	if c.Entry == "" {
		c.Entry, c.Path = entry, entry
	}

	if err := proc.Process(c); err != nil {
		return err
	}

	stats.Written++

	return w.Write(c.Path, c.Bytes())
}
