package adapter

import (
	"archive/zip"
	"testing"

	m "github.com/mouse-blink/codeeraser/internal/model"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJar(t *testing.T, fs afero.Fs, path string, entries map[string]string, order ...string) {
	t.Helper()

	w, err := NewLocalJarAdapter(fs).Create(m.Path(path))
	require.NoError(t, err)

	for _, name := range order {
		require.NoError(t, w.Write(name, []byte(entries[name])))
	}

	require.NoError(t, w.Close())
}

func TestLocalJarAdapter_WriteCopyRead(t *testing.T) {
	fs := afero.NewMemMapFs()
	entries := map[string]string{
		ManifestPath:     "Manifest-Version: 1.0\n",
		"a/B.class":      "class-bytes",
		"res/config.txt": "hello",
	}
	writeJar(t, fs, "in/lib.jar", entries, ManifestPath, "a/B.class", "res/config.txt")

	jars := NewLocalJarAdapter(fs)

	r, err := jars.Open("in/lib.jar")
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, []string{ManifestPath, "a/B.class", "res/config.txt"}, r.Names())
	assert.True(t, r.Has("a/B.class"))
	assert.False(t, r.Has("a/C.class"))

	data, err := r.Read("res/config.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = r.Read("missing")
	require.ErrorIs(t, err, ErrEntryNotFound)

	w, err := jars.Create("out/copy.jar")
	require.NoError(t, err)
	require.NoError(t, w.Copy(r, "res/config.txt"))
	require.ErrorIs(t, w.Copy(r, "res/config.txt"), ErrDuplicateEntry)
	require.NoError(t, w.Write("new.txt", []byte("x")))
	require.ErrorIs(t, w.Write("new.txt", []byte("y")), ErrDuplicateEntry)
	require.ErrorIs(t, w.Write("res/config.txt", []byte("y")), ErrDuplicateEntry)
	assert.True(t, w.Written("res/config.txt"))
	assert.Equal(t, []string{"new.txt", "res/config.txt"}, w.WrittenNames())
	require.ErrorIs(t, w.Copy(r, "nope"), ErrEntryNotFound)
	require.NoError(t, w.Close())

	out, err := jars.Open("out/copy.jar")
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, []string{"res/config.txt", "new.txt"}, out.Names())

	// raw copy keeps the compressed form
	assert.Equal(t, r.index["res/config.txt"].CompressedSize64, out.index["res/config.txt"].CompressedSize64)
	assert.Equal(t, r.index["res/config.txt"].CRC32, out.index["res/config.txt"].CRC32)
	assert.Equal(t, uint16(zip.Deflate), out.index["new.txt"].Method)
}

func TestLocalJarAdapter_OpenMissing(t *testing.T) {
	_, err := NewLocalJarAdapter(afero.NewMemMapFs()).Open("nope.jar")
	require.Error(t, err)
}

func TestClassPath_Find(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "classes/a/Dir.class", []byte("dir"), 0o644))
	writeJar(t, fs, "lib/one.jar", map[string]string{"a/One.class": "one", "a/Dir.class": "shadowed"}, "a/One.class", "a/Dir.class")
	writeJar(t, fs, "lib/two.jar", map[string]string{"a/Two.class": "two"}, "a/Two.class")

	cp, err := NewClassPath(fs, 1, "classes", "lib/one.jar", "lib/two.jar")
	require.NoError(t, err)

	data, from, err := cp.Find("a/Dir.class")
	require.NoError(t, err)
	assert.Equal(t, "dir", string(data))
	assert.Equal(t, m.Path("classes"), from)

	// with one open archive the lookups evict and reopen each other
	for range 3 {
		data, from, err = cp.Find("a/One.class")
		require.NoError(t, err)
		assert.Equal(t, "one", string(data))
		assert.Equal(t, m.Path("lib/one.jar"), from)

		data, _, err = cp.Find("a/Two.class")
		require.NoError(t, err)
		assert.Equal(t, "two", string(data))
	}

	_, _, err = cp.Find("a/Missing.class")
	require.ErrorIs(t, err, ErrEntryNotFound)

	require.NoError(t, cp.Append("lib/one.jar"))
	assert.Len(t, cp.Entries(), 3)
	require.Error(t, cp.Append("lib/absent.jar"))

	require.NoError(t, cp.Close())
}

func TestLocalPropertiesAdapter_Load(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := "# mappings\n" +
		"a.Old = b.New\n" +
		"pattern\\:test\\\\.Replace.* = test2.$0\n" +
		"mem=false\n" +
		"ref=${mem}\n"
	require.NoError(t, afero.WriteFile(fs, "m.properties", []byte(content), 0o644))

	props, err := NewLocalPropertiesAdapter(fs).Load("m.properties")
	require.NoError(t, err)

	assert.Equal(t, []Property{
		{Key: "a.Old", Value: "b.New"},
		{Key: `pattern:test\.Replace.*`, Value: "test2.$0"},
		{Key: "mem", Value: "false"},
		{Key: "ref", Value: "${mem}"},
	}, props)

	_, err = NewLocalPropertiesAdapter(fs).Load("missing.properties")
	require.Error(t, err)
}

func TestLocalTaskFileAdapter_Load(t *testing.T) {
	fs := afero.NewMemMapFs()
	doc := `tasks:
  - type: erase
    jarFile: in.jar
    outFile: out.jar
    bindings:
      - name: mem
        value: "false"
    flat: true
    classpath: [lib/a.jar]
  - type: replicate
    outFile: rep.jar
    mappings:
      - name: a.A
        value: b.B
`
	require.NoError(t, afero.WriteFile(fs, "tasks.yaml", []byte(doc), 0o644))

	tf, err := NewLocalTaskFileAdapter(fs).Load("tasks.yaml")
	require.NoError(t, err)
	require.Len(t, tf.Tasks, 2)

	assert.Equal(t, Task{
		Type:      TaskErase,
		JarFile:   "in.jar",
		OutFile:   "out.jar",
		Bindings:  []NameValue{{Name: "mem", Value: "false"}},
		Flat:      true,
		Classpath: []string{"lib/a.jar"},
	}, tf.Tasks[0])
	assert.Equal(t, []NameValue{{Name: "a.A", Value: "b.B"}}, tf.Tasks[1].Mappings)

	require.NoError(t, afero.WriteFile(fs, "bad.yaml", []byte("tasks:\n  - type: compile\n"), 0o644))
	_, err = NewLocalTaskFileAdapter(fs).Load("bad.yaml")
	require.ErrorContains(t, err, `unknown type "compile"`)

	require.NoError(t, afero.WriteFile(fs, "typo.yaml", []byte("tasks:\n  - type: erase\n    jarfile: x\n"), 0o644))
	_, err = NewLocalTaskFileAdapter(fs).Load("typo.yaml")
	require.Error(t, err)
}
