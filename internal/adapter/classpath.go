package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	m "github.com/mouse-blink/codeeraser/internal/model"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

// DefaultOpenJars bounds the number of class path archives kept open.
const DefaultOpenJars = 16

// ClassSource finds class files by entry path, e.g. a/b/C.class.
type ClassSource interface {
	// Find returns the bytes of the entry and the location it came from. It
	// fails with ErrEntryNotFound when no entry matches.
	Find(entry string) ([]byte, m.Path, error)

	// Append adds a directory or archive at the end of the search path.
	Append(path m.Path) error

	// Close releases every open archive.
	Close() error
}

// ClassPath searches directories and JAR files in order.
type ClassPath struct {
	fs       afero.Fs
	entries  []m.Path
	jars     *simplelru.LRU[m.Path, *JarReader]
	closeErr error
}

// NewClassPath builds a search path over fs. At most openJars archives stay
// open; evicted archives are reopened on demand.
func NewClassPath(fs afero.Fs, openJars int, paths ...m.Path) (*ClassPath, error) {
	if openJars <= 0 {
		openJars = DefaultOpenJars
	}

	cp := &ClassPath{fs: fs}

	jars, err := simplelru.NewLRU[m.Path, *JarReader](openJars, func(_ m.Path, r *JarReader) {
		cp.closeErr = multierr.Append(cp.closeErr, r.Close())
	})
	if err != nil {
		return nil, err
	}

	cp.jars = jars

	for _, p := range paths {
		if err := cp.Append(p); err != nil {
			return nil, err
		}
	}

	return cp, nil
}

// Entries returns the search path.
func (cp *ClassPath) Entries() []m.Path {
	return append([]m.Path(nil), cp.entries...)
}

// Append implements ClassSource.
func (cp *ClassPath) Append(path m.Path) error {
	if _, err := cp.fs.Stat(string(path)); err != nil {
		return fmt.Errorf("failed to add %s to class path: %w", path, err)
	}

	for _, e := range cp.entries {
		if e == path {
			return nil
		}
	}

	cp.entries = append(cp.entries, path)

	return nil
}

// Find implements ClassSource.
func (cp *ClassPath) Find(entry string) ([]byte, m.Path, error) {
	for _, p := range cp.entries {
		data, err := cp.findIn(p, entry)
		if err == nil {
			return data, p, nil
		}

		if !errors.Is(err, ErrEntryNotFound) {
			return nil, p, err
		}
	}

	return nil, "", fmt.Errorf("%s: %w", entry, ErrEntryNotFound)
}

func (cp *ClassPath) findIn(p m.Path, entry string) ([]byte, error) {
	info, err := cp.fs.Stat(string(p))
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", p, err)
	}

	if info.IsDir() {
		data, err := afero.ReadFile(cp.fs, filepath.Join(string(p), filepath.FromSlash(entry)))
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrEntryNotFound
		}

		return data, err
	}

	r, err := cp.jar(p)
	if err != nil {
		return nil, err
	}

	if !r.Has(entry) {
		return nil, ErrEntryNotFound
	}

	return r.Read(entry)
}

func (cp *ClassPath) jar(p m.Path) (*JarReader, error) {
	if r, ok := cp.jars.Get(p); ok {
		return r, nil
	}

	if !strings.HasSuffix(strings.ToLower(string(p)), ".jar") && !strings.HasSuffix(strings.ToLower(string(p)), ".zip") {
		return nil, ErrEntryNotFound
	}

	r, err := openJar(cp.fs, p)
	if err != nil {
		return nil, err
	}

	cp.jars.Add(p, r)

	return r, nil
}

// Close implements ClassSource.
func (cp *ClassPath) Close() error {
	cp.jars.Purge()

	err := cp.closeErr
	cp.closeErr = nil

	return err
}
