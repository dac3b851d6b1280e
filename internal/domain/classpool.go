package domain

import (
	"errors"
	"fmt"

	"github.com/mouse-blink/codeeraser/internal/adapter"
	"github.com/mouse-blink/codeeraser/internal/classfile"
	m "github.com/mouse-blink/codeeraser/internal/model"
	"go.uber.org/zap"
)

// ErrClassNotFound reports a class that is not on the search path.
var ErrClassNotFound = errors.New("class not found")

// LoadedClass is a mutable class held for one run.
type LoadedClass struct {
	// Name is the binary Java name, a.b.C.
	Name string
	// Entry is the archive entry the class was loaded from, empty for
	// classes resolved from the class path only.
	Entry string
	// Path is the entry the class is written to.
	Path     string
	File     *classfile.ClassFile
	Original []byte
	Source   m.Path
	// Dirty classes are re-serialized; clean ones are written as Original.
	Dirty bool
}

// InternalName returns the name in a/b/C form.
func (c *LoadedClass) InternalName() string {
	return classfile.InternalName(c.Name)
}

// Bytes returns the bytes to write.
func (c *LoadedClass) Bytes() []byte {
	if !c.Dirty {
		return c.Original
	}

	return c.File.Bytes()
}

// Reset discards every change made to the class.
func (c *LoadedClass) Reset() error {
	cf, err := classfile.Parse(c.Original)
	if err != nil {
		return err
	}

	c.File = cf
	c.Dirty = false

	return nil
}

// ClassPool resolves classes by name and caches them for one run.
type ClassPool interface {
	// Resolve returns the cached class or loads it from the search path.
	Resolve(name string) (*LoadedClass, error)
	// Define parses data and caches the class unless one of the same name
	// is already cached.
	Define(data []byte, from m.Path) (*LoadedClass, error)
	// MakeLocal returns an independent copy of a resolved class.
	MakeLocal(name string) (*LoadedClass, error)
	// Append adds a directory or archive to the search path.
	Append(path m.Path) error
	// SetPruning drops debug tables from every class loaded afterwards.
	SetPruning(prune bool)
	Close() error
}

type classPool struct {
	source adapter.ClassSource
	cache  map[string]*LoadedClass
	prune  bool
	log    *zap.Logger
}

// NewClassPool creates a pool over source. Closing the pool closes source.
func NewClassPool(source adapter.ClassSource, log *zap.Logger) ClassPool {
	return &classPool{source: source, cache: map[string]*LoadedClass{}, log: log}
}

func (p *classPool) Resolve(name string) (*LoadedClass, error) {
	if c, ok := p.cache[name]; ok {
		return c, nil
	}

	data, from, err := p.source.Find(classfile.EntryPath(name))
	if errors.Is(err, adapter.ErrEntryNotFound) {
		return nil, fmt.Errorf("%s: %w", name, ErrClassNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}

	c, err := p.Define(data, from)
	if err != nil {
		return nil, err
	}

	if c.Name != name {
		return nil, fmt.Errorf("%w: %s holds %s", classfile.ErrMalformed, classfile.EntryPath(name), c.Name)
	}

	return c, nil
}

func (p *classPool) Define(data []byte, from m.Path) (*LoadedClass, error) {
	cf, err := classfile.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse class from %s: %w", from, err)
	}

	name := classfile.JavaName(cf.Name())
	if c, ok := p.cache[name]; ok {
		return c, nil
	}

	c := &LoadedClass{Name: name, File: cf, Original: data, Source: from}

	if p.prune {
		pruned, err := cf.Prune()
		if err != nil {
			return nil, fmt.Errorf("failed to prune %s: %w", name, err)
		}

		c.Dirty = pruned
	}

	p.cache[name] = c
	p.log.Debug("loaded class", zap.String("class", name), zap.String("from", string(from)))

	return c, nil
}

func (p *classPool) MakeLocal(name string) (*LoadedClass, error) {
	c, err := p.Resolve(name)
	if err != nil {
		return nil, err
	}

	local := *c
	local.File = c.File.Clone()

	return &local, nil
}

func (p *classPool) Append(path m.Path) error {
	return p.source.Append(path)
}

func (p *classPool) SetPruning(prune bool) {
	p.prune = prune
}

func (p *classPool) Close() error {
	p.cache = map[string]*LoadedClass{}

	return p.source.Close()
}
