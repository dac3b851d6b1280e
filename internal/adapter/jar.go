package adapter

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"time"

	m "github.com/mouse-blink/codeeraser/internal/model"
	"github.com/spf13/afero"
)

// ManifestPath is the archive path of the JAR manifest.
const ManifestPath = "META-INF/MANIFEST.MF"

// ErrEntryNotFound reports a missing archive entry or class file.
var ErrEntryNotFound = errors.New("entry not found")

// ErrDuplicateEntry reports a second write of the same archive entry.
var ErrDuplicateEntry = errors.New("duplicate entry")

// JarAdapter opens and creates JAR archives. It hides the filesystem so the
// domain can be tested against an in-memory one.
type JarAdapter interface {
	// Open opens an archive for reading.
	Open(path m.Path) (*JarReader, error)

	// Create creates an archive for writing, truncating an existing file.
	Create(path m.Path) (*JarWriter, error)
}

// LocalJarAdapter is the JarAdapter backed by an afero filesystem.
type LocalJarAdapter struct {
	fs afero.Fs
}

// NewLocalJarAdapter constructs a LocalJarAdapter over fs.
func NewLocalJarAdapter(fs afero.Fs) *LocalJarAdapter {
	return &LocalJarAdapter{fs: fs}
}

// Open implements JarAdapter.
func (a *LocalJarAdapter) Open(path m.Path) (*JarReader, error) {
	return openJar(a.fs, path)
}

// Create implements JarAdapter.
func (a *LocalJarAdapter) Create(path m.Path) (*JarWriter, error) {
	if dir := filepath.Dir(string(path)); dir != "." {
		if err := a.fs.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	f, err := a.fs.Create(string(path))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	return &JarWriter{file: f, zw: zip.NewWriter(f), written: map[string]bool{}}, nil
}

// JarReader gives random access to the entries of an archive.
type JarReader struct {
	path  m.Path
	file  afero.File
	files []*zip.File
	index map[string]*zip.File
}

func openJar(fs afero.Fs, path m.Path) (*JarReader, error) {
	f, err := fs.Open(string(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()

		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		_ = f.Close()

		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	r := &JarReader{path: path, file: f, files: zr.File, index: make(map[string]*zip.File, len(zr.File))}

	for _, zf := range zr.File {
		if _, dup := r.index[zf.Name]; !dup {
			r.index[zf.Name] = zf
		}
	}

	return r, nil
}

// Path returns the archive location.
func (r *JarReader) Path() m.Path {
	return r.path
}

// Names returns the entry names in archive order.
func (r *JarReader) Names() []string {
	out := make([]string, 0, len(r.files))
	for _, f := range r.files {
		out = append(out, f.Name)
	}

	return out
}

// Has reports whether the archive holds name.
func (r *JarReader) Has(name string) bool {
	_, ok := r.index[name]

	return ok
}

// Read returns the uncompressed content of an entry.
func (r *JarReader) Read(name string) ([]byte, error) {
	zf, ok := r.index[name]
	if !ok {
		return nil, fmt.Errorf("%s!%s: %w", r.path, name, ErrEntryNotFound)
	}

	rc, err := zf.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s!%s: %w", r.path, name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s!%s: %w", r.path, name, err)
	}

	return data, nil
}

// Close releases the underlying file.
func (r *JarReader) Close() error {
	return r.file.Close()
}

// JarWriter writes archive entries. Writing a name twice fails with
// ErrDuplicateEntry.
type JarWriter struct {
	file    afero.File
	zw      *zip.Writer
	written map[string]bool
}

// Written reports whether name was already written.
func (w *JarWriter) Written(name string) bool {
	return w.written[name]
}

// WrittenNames returns the written entry names, sorted.
func (w *JarWriter) WrittenNames() []string {
	out := make([]string, 0, len(w.written))
	for n := range w.written {
		out = append(out, n)
	}

	sort.Strings(out)

	return out
}

// Write adds a deflated entry.
func (w *JarWriter) Write(name string, data []byte) error {
	if w.written[name] {
		return fmt.Errorf("failed to add %s: %w", name, ErrDuplicateEntry)
	}

	hdr := &zip.FileHeader{Name: name, Method: zip.Deflate, Modified: time.Now()}

	out, err := w.zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", name, err)
	}

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	w.written[name] = true

	return nil
}

// Copy copies an entry of r without recompressing it.
func (w *JarWriter) Copy(r *JarReader, name string) error {
	if w.written[name] {
		return fmt.Errorf("failed to copy %s: %w", name, ErrDuplicateEntry)
	}

	zf, ok := r.index[name]
	if !ok {
		return fmt.Errorf("%s!%s: %w", r.path, name, ErrEntryNotFound)
	}

	if err := w.zw.Copy(zf); err != nil {
		return fmt.Errorf("failed to copy %s: %w", name, err)
	}

	w.written[name] = true

	return nil
}

// Close finishes the archive and closes the file.
func (w *JarWriter) Close() error {
	zerr := w.zw.Close()
	ferr := w.file.Close()

	if zerr != nil {
		return fmt.Errorf("failed to finish archive: %w", zerr)
	}

	return ferr
}
