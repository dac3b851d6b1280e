package domain_test

import (
	"bytes"
	"testing"

	"github.com/mouse-blink/codeeraser/internal/adapter"
	"github.com/mouse-blink/codeeraser/internal/classfile"
	cft "github.com/mouse-blink/codeeraser/internal/classfile/classfiletest"
	"github.com/mouse-blink/codeeraser/internal/domain"
	m "github.com/mouse-blink/codeeraser/internal/model"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// innerClassJar writes /lib.jar with a.A holding a field of type a.A$Inner.
func innerClassJar(t *testing.T, fs afero.Fs) {
	t.Helper()

	outer := cft.NewClass("a/A", objectClass).
		Field(classfile.AccPrivate, "inner", "La/A$Inner;")
	inner := cft.NewClass("a/A$Inner", objectClass).
		Field(classfile.AccPrivate, "outer", "La/A;")
	other := cft.NewClass("a/Other", objectClass)

	writeJar(t, fs, "/lib.jar", map[string][]byte{
		"a/A.class":       classBytes(t, outer),
		"a/A$Inner.class": classBytes(t, inner),
		"a/Other.class":   classBytes(t, other),
	})
}

func newPool(t *testing.T, fs afero.Fs, paths ...m.Path) domain.ClassPool {
	t.Helper()

	cp, err := adapter.NewClassPath(fs, 0, paths...)
	require.NoError(t, err)

	pool := domain.NewClassPool(cp, zap.NewNop())
	t.Cleanup(func() {
		_ = pool.Close()
	})

	return pool
}

// assertRenameIsNoop applies names once more to every class and fails if
// anything still refers to a mapped name.
func assertRenameIsNoop(t *testing.T, classes []*domain.LoadedClass, names m.ClassNameMap) {
	t.Helper()

	rename := func(internal string) (string, bool) {
		to, ok := names.Lookup(classfile.JavaName(internal))

		return classfile.InternalName(to), ok
	}

	for _, c := range classes {
		before := c.File.Bytes()

		changed, err := c.File.Rename(rename)
		require.NoError(t, err)
		assert.False(t, changed, "%s changes when renamed again", c.Name)
		assert.True(t, bytes.Equal(before, c.File.Bytes()), "%s bytes differ when renamed again", c.Name)
	}
}

func TestReplicator_Replicate(t *testing.T) {
	t.Run("discovers inner classes", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		innerClassJar(t, fs)
		pool := newPool(t, fs, "/lib.jar")

		classes, complete, renamed, err := domain.NewReplicator(pool, zap.NewNop()).
			Replicate(m.ClassNameMap{"a.A": "b.B"})
		require.NoError(t, err)

		assert.Equal(t, m.ClassNameMap{"a.A": "b.B", "a.A$Inner": "b.B$Inner"}, complete)
		assert.Len(t, renamed, 2)
		require.Len(t, classes, 2)

		for _, c := range classes {
			assert.True(t, c.Dirty)
			assert.Equal(t, classfile.EntryPath(c.Name), c.Path)
		}

		assertRenameIsNoop(t, classes, complete)

		original, err := pool.Resolve("a.A")
		require.NoError(t, err)
		assert.Equal(t, "a/A", original.File.Name())
		assert.Equal(t, "La/A$Inner;", original.File.MemberDescriptor(original.File.FindField("inner")))
	})

	t.Run("explicit mappings win over derived ones", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		innerClassJar(t, fs)
		pool := newPool(t, fs, "/lib.jar")

		classes, complete, _, err := domain.NewReplicator(pool, zap.NewNop()).
			Replicate(m.ClassNameMap{"a.A": "b.B", "a.A$Inner": "c.Nested"})
		require.NoError(t, err)

		assert.Equal(t, m.ClassNameMap{"a.A": "b.B", "a.A$Inner": "c.Nested"}, complete)
		require.Len(t, classes, 2)

		for _, c := range classes {
			if c.Name == "b.B" {
				assert.Equal(t, "Lc/Nested;", c.File.MemberDescriptor(c.File.FindField("inner")))
			}
		}

		assertRenameIsNoop(t, classes, complete)
	})

	t.Run("missing class", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		innerClassJar(t, fs)
		pool := newPool(t, fs, "/lib.jar")

		_, _, _, err := domain.NewReplicator(pool, zap.NewNop()).Replicate(m.ClassNameMap{"a.Missing": "b.B"})
		assert.ErrorIs(t, err, domain.ErrClassNotFound)
	})
}

func TestReplacer_BuildMap(t *testing.T) {
	fs := afero.NewMemMapFs()
	innerClassJar(t, fs)
	pool := newPool(t, fs, "/lib.jar")

	var classes []*domain.LoadedClass

	for _, name := range []string{"a.A", "a.A$Inner", "a.Other"} {
		c, err := pool.Resolve(name)
		require.NoError(t, err)

		classes = append(classes, c)
	}

	first, err := m.NewPatternMapping(`a\.A.*`, "z.$0")
	require.NoError(t, err)
	second, err := m.NewPatternMapping(`a\..*`, "y.$0")
	require.NoError(t, err)

	mappings := m.Mappings{
		Names:    m.ClassNameMap{"a.Other": "a.Other", "a.A": "b.B"},
		Patterns: []m.PatternMapping{first, second},
	}

	got := domain.NewReplacer(zap.NewNop()).BuildMap(classes, mappings)

	assert.Equal(t, m.ClassNameMap{"a.A": "b.B", "a.A$Inner": "z.a.A$Inner"}, got)
}

func TestReplacer_ReplaceIsIdempotent(t *testing.T) {
	fs := afero.NewMemMapFs()
	innerClassJar(t, fs)
	pool := newPool(t, fs, "/lib.jar")

	var classes []*domain.LoadedClass

	for _, name := range []string{"a.A", "a.A$Inner", "a.Other"} {
		c, err := pool.Resolve(name)
		require.NoError(t, err)

		classes = append(classes, c)
	}

	pattern, err := m.NewPatternMapping(`a\.Other`, "z.Other")
	require.NoError(t, err)

	replacer := domain.NewReplacer(zap.NewNop())
	names := replacer.BuildMap(classes, m.Mappings{
		Names:    m.ClassNameMap{"a.A": "b.B", "a.A$Inner": "b.B$Inner"},
		Patterns: []m.PatternMapping{pattern},
	})

	renamed, err := replacer.Replace(classes, names, classfile.EntryPath)
	require.NoError(t, err)
	assert.Len(t, renamed, 3)

	assert.Equal(t, "b/B", classes[0].File.Name())
	assert.Equal(t, "Lb/B$Inner;", classes[0].File.MemberDescriptor(classes[0].File.FindField("inner")))
	assert.Equal(t, "z.Other", classes[2].Name)

	assertRenameIsNoop(t, classes, names)

	again, err := replacer.Replace(classes, names, classfile.EntryPath)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestJarProcessor_RoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	in := dataClassJar(t, fs)
	pool := newPool(t, fs)

	jp := domain.NewJarProcessor(adapter.NewLocalJarAdapter(fs), pool, zap.NewNop())
	require.NoError(t, jp.LoadClasses("/in.jar"))
	require.Len(t, jp.Classes(), 1)

	stats, err := jp.WriteClasses("/in.jar", "/out.jar", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.WriteStats{Written: 1, Copied: 2}, stats)

	out, names := readJar(t, fs, "/out.jar")
	assert.Equal(t, in, out)
	assert.Equal(t, adapter.ManifestPath, names[0])
}

func TestJarProcessor_BinPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	pool := newPool(t, fs)

	jp := domain.NewJarProcessor(adapter.NewLocalJarAdapter(fs), pool, zap.NewNop(), domain.WithBinPath("bin/"))

	name, ok := jp.ClassName("bin/a/b/C.class")
	assert.True(t, ok)
	assert.Equal(t, "a.b.C", name)

	_, ok = jp.ClassName("a/b/C.class")
	assert.False(t, ok)

	_, ok = jp.ClassName("bin/a/b/C.txt")
	assert.False(t, ok)

	assert.Equal(t, "bin/a/b/C.class", jp.EntryPath("a.b.C"))
}

type dropProcessor struct {
	processed []string
}

func (p *dropProcessor) Decide(name string) domain.ProcessDecision {
	if name == "test.User" {
		return domain.Drop
	}

	return domain.Process
}

func (p *dropProcessor) Process(c *domain.LoadedClass) error {
	p.processed = append(p.processed, c.Name)

	return nil
}

func TestJarProcessor_WriteClassesWithProcessor(t *testing.T) {
	fs := afero.NewMemMapFs()
	in := hierarchyJar(t, fs)
	pool := newPool(t, fs)

	proc := &dropProcessor{}

	stats, err := domain.NewJarProcessor(adapter.NewLocalJarAdapter(fs), pool, zap.NewNop()).
		WriteClasses("/in.jar", "/out.jar", proc)
	require.NoError(t, err)

	assert.Equal(t, domain.WriteStats{Written: 3, Copied: 1, Dropped: 1}, stats)
	assert.Equal(t, []string{"test.Base", "test.IntermediaryClass", "test.ToRemove"}, proc.processed)

	out, _ := readJar(t, fs, "/out.jar")
	assert.NotContains(t, out, "test/User.class")
	assert.Equal(t, in["test/Base.class"], out["test/Base.class"])
}

func TestNewGlobSelector(t *testing.T) {
	selector, err := domain.NewGlobSelector([]string{"a.**"}, []string{"a.internal.*"})
	require.NoError(t, err)

	assert.True(t, selector("a.B"))
	assert.True(t, selector("a.b.C"))
	assert.False(t, selector("a.internal.X"))
	assert.False(t, selector("b.C"))

	all, err := domain.NewGlobSelector(nil, nil)
	require.NoError(t, err)
	assert.True(t, all("any.Thing"))

	_, err = domain.NewGlobSelector([]string{"a.[b"}, nil)
	assert.Error(t, err)
}
