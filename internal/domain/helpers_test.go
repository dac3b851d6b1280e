package domain_test

import (
	"sort"
	"testing"

	"github.com/mouse-blink/codeeraser/internal/adapter"
	"github.com/mouse-blink/codeeraser/internal/classfile"
	cft "github.com/mouse-blink/codeeraser/internal/classfile/classfiletest"
	"github.com/mouse-blink/codeeraser/internal/domain"
	m "github.com/mouse-blink/codeeraser/internal/model"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	objectClass = "java/lang/Object"
	manifest    = "Manifest-Version: 1.0\r\n\r\n"
)

func variability(ids ...string) cft.Annotation {
	return cft.Annotation{Type: domain.VariabilityType, Elements: map[string]any{"id": ids}}
}

// initBody is a no-argument constructor chaining to super.
func initBody(super string) func(p *classfile.ConstantPool) cft.Body {
	return func(p *classfile.ConstantPool) cft.Body {
		return cft.Body{MaxStack: 1, MaxLocals: 1, Code: []classfile.Instruction{
			cft.Op(classfile.Aload0),
			cft.Invoke(p, classfile.Invokespecial, super, "<init>", "()V"),
			cft.Op(classfile.Return),
		}}
	}
}

func classBytes(t *testing.T, b *cft.Builder) []byte {
	t.Helper()

	data, err := b.Bytes()
	require.NoError(t, err)

	return data
}

func parseClass(t *testing.T, data []byte) *classfile.ClassFile {
	t.Helper()

	cf, err := classfile.Parse(data)
	require.NoError(t, err)

	return cf
}

// writeJar writes entries with the manifest first and the rest sorted.
func writeJar(t *testing.T, fs afero.Fs, path string, entries map[string][]byte) {
	t.Helper()

	w, err := adapter.NewLocalJarAdapter(fs).Create(m.Path(path))
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for name := range entries {
		if name != adapter.ManifestPath {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	if data, ok := entries[adapter.ManifestPath]; ok {
		require.NoError(t, w.Write(adapter.ManifestPath, data))
	}

	for _, name := range names {
		require.NoError(t, w.Write(name, entries[name]))
	}

	require.NoError(t, w.Close())
}

func readJar(t *testing.T, fs afero.Fs, path string) (map[string][]byte, []string) {
	t.Helper()

	r, err := adapter.NewLocalJarAdapter(fs).Open(m.Path(path))
	require.NoError(t, err)

	defer r.Close()

	out := map[string][]byte{}

	for _, name := range r.Names() {
		data, err := r.Read(name)
		require.NoError(t, err)

		out[name] = data
	}

	return out, r.Names()
}

func newWorkflow(fs afero.Fs) domain.Workflow {
	return domain.NewWorkflow(fs, adapter.NewLocalJarAdapter(fs), zap.NewNop())
}
