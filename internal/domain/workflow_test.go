package domain_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mouse-blink/codeeraser/internal/adapter"
	adaptermocks "github.com/mouse-blink/codeeraser/internal/adapter/mocks"
	"github.com/mouse-blink/codeeraser/internal/classfile"
	cft "github.com/mouse-blink/codeeraser/internal/classfile/classfiletest"
	"github.com/mouse-blink/codeeraser/internal/domain"
	m "github.com/mouse-blink/codeeraser/internal/model"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func dataClassJar(t *testing.T, fs afero.Fs) map[string][]byte {
	t.Helper()

	data := cft.NewClass("test/DataClass", objectClass).
		Method(classfile.AccPublic, "<init>", "()V", initBody(objectClass)).
		Method(classfile.AccPublic, "getSum", "()I", func(p *classfile.ConstantPool) cft.Body {
			return cft.Body{MaxStack: 1, MaxLocals: 1, Code: []classfile.Instruction{
				cft.Push(p, 42),
				cft.Op(classfile.Ireturn),
			}}
		}, variability("mem", "io")).
		Method(classfile.AccPublic, "total", "()I", func(p *classfile.ConstantPool) cft.Body {
			return cft.Body{MaxStack: 1, MaxLocals: 1, Code: []classfile.Instruction{
				cft.Op(classfile.Aload0),
				cft.Invoke(p, classfile.Invokevirtual, "test/DataClass", "getSum", "()I"),
				cft.Op(classfile.Ireturn),
			}}
		})

	entries := map[string][]byte{
		adapter.ManifestPath:   []byte(manifest),
		"test/DataClass.class": classBytes(t, data),
		"res/data.txt":         []byte("payload"),
	}
	writeJar(t, fs, "/in.jar", entries)

	return entries
}

func hierarchyJar(t *testing.T, fs afero.Fs) map[string][]byte {
	t.Helper()

	base := cft.NewClass("test/Base", objectClass).
		Method(classfile.AccPublic, "<init>", "()V", initBody(objectClass))
	intermediary := cft.NewClass("test/IntermediaryClass", "test/Base").
		Annotate(variability("mem")).
		Method(classfile.AccPublic, "<init>", "()V", initBody("test/Base"))
	toRemove := cft.NewClass("test/ToRemove", "test/IntermediaryClass").
		Method(classfile.AccPublic, "<init>", "()V", initBody("test/IntermediaryClass"))
	user := cft.NewClass("test/User", objectClass).
		Method(classfile.AccPublic|classfile.AccStatic, "make", "()Ljava/lang/Object;", func(p *classfile.ConstantPool) cft.Body {
			return cft.Body{MaxStack: 2, Code: []classfile.Instruction{
				cft.Class(p, classfile.New, "test/ToRemove"),
				cft.Op(classfile.Dup),
				cft.Invoke(p, classfile.Invokespecial, "test/ToRemove", "<init>", "()V"),
				cft.Op(classfile.Areturn),
			}}
		})

	entries := map[string][]byte{
		adapter.ManifestPath:           []byte(manifest),
		"test/Base.class":              classBytes(t, base),
		"test/IntermediaryClass.class": classBytes(t, intermediary),
		"test/ToRemove.class":          classBytes(t, toRemove),
		"test/User.class":              classBytes(t, user),
	}
	writeJar(t, fs, "/in.jar", entries)

	return entries
}

func opsOf(t *testing.T, cf *classfile.ClassFile, name string) []string {
	t.Helper()

	mth := cf.FindMethod(name, "")
	require.NotNil(t, mth, name)

	c, err := cf.Code(mth)
	require.NoError(t, err)

	out := make([]string, len(c.Instructions))
	for i, in := range c.Instructions {
		out[i] = in.Op.String()
	}

	return out
}

func TestWorkflow_Erase_DataClass(t *testing.T) {
	t.Run("removes getSum when mem and io are disabled", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		in := dataClassJar(t, fs)

		report, err := newWorkflow(fs).Erase(domain.EraseArgs{
			Jar:      "/in.jar",
			Out:      "/out.jar",
			Bindings: m.Bindings{"mem": "false", "io": "false"},
		})
		require.NoError(t, err)

		assert.Equal(t, []m.Change{{
			Kind:     m.ElementMethod,
			Element:  "test.DataClass.getSum()I",
			Decision: m.Decision{Kind: m.Remove},
		}}, report.Changes)
		assert.Equal(t, 1, report.Written)
		assert.Equal(t, 2, report.Copied)

		out, names := readJar(t, fs, "/out.jar")
		assert.Equal(t, adapter.ManifestPath, names[0])
		assert.Equal(t, in["res/data.txt"], out["res/data.txt"])

		cf := parseClass(t, out["test/DataClass.class"])
		assert.Nil(t, cf.FindMethod("getSum", "()I"))
		assert.Equal(t, []string{"aload_0", "pop", "iconst_0", "ireturn"}, opsOf(t, cf, "total"))
	})

	t.Run("keeps the class verbatim when both ids are enabled", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		in := dataClassJar(t, fs)

		report, err := newWorkflow(fs).Erase(domain.EraseArgs{
			Jar:      "/in.jar",
			Out:      "/out.jar",
			Bindings: m.Bindings{"mem": "true", "io": "variant"},
		})
		require.NoError(t, err)
		assert.Empty(t, report.Changes)

		out, _ := readJar(t, fs, "/out.jar")
		assert.Equal(t, in, out)
	})

	t.Run("unbound ids follow the policy", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		dataClassJar(t, fs)

		report, err := newWorkflow(fs).Erase(domain.EraseArgs{
			Jar:            "/in.jar",
			Out:            "/out.jar",
			Bindings:       m.Bindings{"mem": "true"},
			UnboundEnabled: true,
		})
		require.NoError(t, err)
		assert.Empty(t, report.Changes)
	})
}

func TestWorkflow_Erase_Hierarchy(t *testing.T) {
	t.Run("recursive mode removes subclasses", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		hierarchyJar(t, fs)

		_, err := newWorkflow(fs).Erase(domain.EraseArgs{
			Jar:      "/in.jar",
			Out:      "/out.jar",
			Bindings: m.Bindings{"mem": "false"},
		})
		require.NoError(t, err)

		out, _ := readJar(t, fs, "/out.jar")
		assert.NotContains(t, out, "test/IntermediaryClass.class")
		assert.NotContains(t, out, "test/ToRemove.class")
		assert.Contains(t, out, "test/Base.class")

		user := parseClass(t, out["test/User.class"])
		assert.Equal(t, []string{"aconst_null", "dup", "pop", "areturn"}, opsOf(t, user, "make"))
	})

	t.Run("flat mode keeps subclasses", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		in := hierarchyJar(t, fs)

		_, err := newWorkflow(fs).Erase(domain.EraseArgs{
			Jar:      "/in.jar",
			Out:      "/out.jar",
			Bindings: m.Bindings{"mem": "false"},
			Flat:     true,
		})
		require.NoError(t, err)

		out, _ := readJar(t, fs, "/out.jar")
		assert.NotContains(t, out, "test/IntermediaryClass.class")
		assert.Equal(t, in["test/ToRemove.class"], out["test/ToRemove.class"])
		assert.Equal(t, in["test/User.class"], out["test/User.class"])
	})

	t.Run("selector leaves unselected classes untouched", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		in := hierarchyJar(t, fs)

		_, err := newWorkflow(fs).Erase(domain.EraseArgs{
			Jar:      "/in.jar",
			Out:      "/out.jar",
			Bindings: m.Bindings{"mem": "false"},
			Exclude:  []string{"test.ToRemove"},
		})
		require.NoError(t, err)

		out, _ := readJar(t, fs, "/out.jar")
		assert.NotContains(t, out, "test/IntermediaryClass.class")
		assert.Equal(t, in["test/ToRemove.class"], out["test/ToRemove.class"])
	})
}

func constructorChainJar(t *testing.T, fs afero.Fs) map[string][]byte {
	t.Helper()

	parent := cft.NewClass("test/Parent", objectClass).
		Method(classfile.AccPublic, "<init>", "()V", initBody(objectClass), variability("x"))
	child := cft.NewClass("test/Child", "test/Parent").
		Method(classfile.AccPublic, "<init>", "()V", initBody("test/Parent"))

	entries := map[string][]byte{
		"test/Parent.class": classBytes(t, parent),
		"test/Child.class":  classBytes(t, child),
	}
	writeJar(t, fs, "/in.jar", entries)

	return entries
}

func TestWorkflow_Erase_InterfaceMethod(t *testing.T) {
	fs := afero.NewMemMapFs()

	iface := classfile.AccPublic | classfile.AccInterface | classfile.AccAbstract

	api := cft.NewClass("test/Api", objectClass).Access(iface).
		Method(classfile.AccPublic, "ping", "()V", nil, variability("mem"))
	subAPI := cft.NewClass("test/SubApi", objectClass, "test/Api").Access(iface)
	impl := cft.NewClass("test/Impl", objectClass, "test/SubApi").
		Method(classfile.AccPublic, "<init>", "()V", initBody(objectClass))
	caller := cft.NewClass("test/Caller", objectClass).
		Method(classfile.AccPublic|classfile.AccStatic, "viaSub", "(Ltest/SubApi;)V", func(p *classfile.ConstantPool) cft.Body {
			return cft.Body{MaxStack: 1, MaxLocals: 1, Code: []classfile.Instruction{
				cft.Op(classfile.Aload0),
				cft.InvokeInterface(p, "test/SubApi", "ping", "()V"),
				cft.Op(classfile.Return),
			}}
		}).
		Method(classfile.AccPublic|classfile.AccStatic, "viaImpl", "(Ltest/Impl;)V", func(p *classfile.ConstantPool) cft.Body {
			return cft.Body{MaxStack: 1, MaxLocals: 1, Code: []classfile.Instruction{
				cft.Op(classfile.Aload0),
				cft.Invoke(p, classfile.Invokevirtual, "test/Impl", "ping", "()V"),
				cft.Op(classfile.Return),
			}}
		})

	writeJar(t, fs, "/in.jar", map[string][]byte{
		"test/Api.class":    classBytes(t, api),
		"test/SubApi.class": classBytes(t, subAPI),
		"test/Impl.class":   classBytes(t, impl),
		"test/Caller.class": classBytes(t, caller),
	})

	_, err := newWorkflow(fs).Erase(domain.EraseArgs{
		Jar:      "/in.jar",
		Out:      "/out.jar",
		Bindings: m.Bindings{"mem": "false"},
	})
	require.NoError(t, err)

	out, _ := readJar(t, fs, "/out.jar")

	assert.Nil(t, parseClass(t, out["test/Api.class"]).FindMethod("ping", "()V"))

	c := parseClass(t, out["test/Caller.class"])
	assert.NotContains(t, opsOf(t, c, "viaSub"), "invokeinterface")
	assert.NotContains(t, opsOf(t, c, "viaImpl"), "invokevirtual")
}

func TestWorkflow_Erase_Lazy(t *testing.T) {
	t.Run("constructor chain into a removed constructor fails", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		constructorChainJar(t, fs)

		_, err := newWorkflow(fs).Erase(domain.EraseArgs{
			Jar:      "/in.jar",
			Out:      "/out.jar",
			Bindings: m.Bindings{"x": "false"},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, classfile.ErrCompile)
		assert.Contains(t, err.Error(), m.PrefixCompile)
	})

	t.Run("lazy mode keeps the failing class unmodified", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		in := constructorChainJar(t, fs)

		report, err := newWorkflow(fs).Erase(domain.EraseArgs{
			Jar:      "/in.jar",
			Out:      "/out.jar",
			Bindings: m.Bindings{"x": "false"},
			Lazy:     true,
		})
		require.NoError(t, err)
		require.Len(t, report.Warnings, 1)
		assert.Contains(t, report.Warnings[0], "test.Child")

		out, _ := readJar(t, fs, "/out.jar")
		assert.Equal(t, in["test/Child.class"], out["test/Child.class"])
		assert.Nil(t, parseClass(t, out["test/Parent.class"]).FindMethod("<init>", "()V"))
	})
}

func TestWorkflow_List(t *testing.T) {
	tests := []struct {
		name string
		flat bool
		want string
	}{
		{
			name: "recursive",
			want: "Annotated classes:\n - test.IntermediaryClass: mem\n - test.ToRemove: mem\n\nAnnotation ids:\n - mem\n",
		},
		{
			name: "flat",
			flat: true,
			want: "Annotated classes:\n - test.IntermediaryClass: mem\n\nAnnotation ids:\n - mem\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			hierarchyJar(t, fs)

			listing, err := newWorkflow(fs).List(domain.EraseArgs{Jar: "/in.jar", Flat: tt.flat})
			require.NoError(t, err)
			assert.Equal(t, tt.want, listing.String())
		})
	}
}

func TestWorkflow_Replace(t *testing.T) {
	fs := afero.NewMemMapFs()

	keep := cft.NewClass("test/Keep", objectClass).
		Field(classfile.AccPrivate, "ref", "Ltest/ReplaceMe;")
	replaceMe := cft.NewClass("test/ReplaceMe", objectClass).
		Method(classfile.AccPublic, "<init>", "()V", initBody(objectClass))
	replaceToo := cft.NewClass("test/ReplaceToo", "test/ReplaceMe")

	writeJar(t, fs, "/in.jar", map[string][]byte{
		adapter.ManifestPath:    []byte(manifest),
		"test/Keep.class":       classBytes(t, keep),
		"test/ReplaceMe.class":  classBytes(t, replaceMe),
		"test/ReplaceToo.class": classBytes(t, replaceToo),
		"META-INF/notes.txt":    []byte("notes"),
	})

	pattern, err := m.NewPatternMapping(`test\.Replace.*`, "test2.$0")
	require.NoError(t, err)

	mappings := m.NewMappings()
	mappings.Patterns = append(mappings.Patterns, pattern)

	report, err := newWorkflow(fs).Replace(domain.ReplaceArgs{Jar: "/in.jar", Out: "/out.jar", Mappings: mappings})
	require.NoError(t, err)

	assert.Equal(t, []m.Renamed{
		{From: "test.ReplaceMe", To: "test2.test.ReplaceMe"},
		{From: "test.ReplaceToo", To: "test2.test.ReplaceToo"},
	}, report.Renamed)

	out, _ := readJar(t, fs, "/out.jar")
	assert.NotContains(t, out, "test/ReplaceMe.class")
	assert.Contains(t, out, "META-INF/notes.txt")

	too := parseClass(t, out["test2/test/ReplaceToo.class"])
	assert.Equal(t, "test2/test/ReplaceMe", too.SuperName())

	k := parseClass(t, out["test/Keep.class"])
	assert.Equal(t, "Ltest2/test/ReplaceMe;", k.MemberDescriptor(k.FindField("ref")))
}

func TestWorkflow_Replace_OntoExistingClass(t *testing.T) {
	fs := afero.NewMemMapFs()

	writeJar(t, fs, "/in.jar", map[string][]byte{
		"test/Keep.class":      classBytes(t, cft.NewClass("test/Keep", objectClass)),
		"test/ReplaceMe.class": classBytes(t, cft.NewClass("test/ReplaceMe", objectClass)),
	})

	mappings := m.NewMappings()
	mappings.Names["test.ReplaceMe"] = "test.Keep"

	_, err := newWorkflow(fs).Replace(domain.ReplaceArgs{Jar: "/in.jar", Out: "/out.jar", Mappings: mappings})
	require.ErrorIs(t, err, adapter.ErrDuplicateEntry)
	assert.True(t, strings.HasPrefix(err.Error(), m.PrefixIO), err.Error())
	assert.Contains(t, err.Error(), "test/Keep.class")
}

func TestWorkflow_Replicate(t *testing.T) {
	fs := afero.NewMemMapFs()
	innerClassJar(t, fs)

	mappings := m.NewMappings()
	mappings.Names["a.A"] = "b.B"

	report, err := newWorkflow(fs).Replicate(domain.ReplicateArgs{
		Out:       "/rep.jar",
		Mappings:  mappings,
		Classpath: m.ClassPath{"/lib.jar"},
	})
	require.NoError(t, err)

	assert.Equal(t, []m.Renamed{
		{From: "a.A", To: "b.B"},
		{From: "a.A$Inner", To: "b.B$Inner"},
	}, report.Renamed)

	out, names := readJar(t, fs, "/rep.jar")
	assert.Equal(t, []string{"b/B.class", "b/B$Inner.class"}, names)

	b := parseClass(t, out["b/B.class"])
	assert.Equal(t, "Lb/B$Inner;", b.MemberDescriptor(b.FindField("inner")))

	inner := parseClass(t, out["b/B$Inner.class"])
	assert.Equal(t, "Lb/B;", inner.MemberDescriptor(inner.FindField("outer")))
}

func TestWorkflow_Patch(t *testing.T) {
	editor := cft.NewClass("javassist/expr/ExprEditor", objectClass).
		Method(classfile.AccPrivate, "loopBody", "(Ljavassist/bytecode/CodeIterator;)Z", func(p *classfile.ConstantPool) cft.Body {
			return cft.Body{MaxStack: 2, MaxLocals: 2, Code: []classfile.Instruction{
				cft.Op(classfile.Aload1),
				cft.Op(classfile.Iconst0),
				cft.Invoke(p, classfile.Invokevirtual, "javassist/bytecode/CodeIterator", "byteAt", "(I)I"),
				cft.Op(classfile.Ireturn),
			}}
		}).
		Method(classfile.AccPublic, "doit", "(Ljavassist/CtClass;Ljavassist/bytecode/MethodInfo;)Z", func(p *classfile.ConstantPool) cft.Body {
			return cft.Body{MaxStack: 1, MaxLocals: 3, Code: []classfile.Instruction{
				cft.Op(classfile.AconstNull),
				cft.Invoke(p, classfile.Invokevirtual, "javassist/bytecode/ExceptionTable", "size", "()I"),
				cft.Op(classfile.Ireturn),
			}}
		})

	newJar := func(t *testing.T) (afero.Fs, map[string][]byte) {
		fs := afero.NewMemMapFs()
		entries := map[string][]byte{
			"javassist/expr/ExprEditor.class": classBytes(t, editor),
			"javassist/Other.class":           classBytes(t, cft.NewClass("javassist/Other", objectClass)),
		}
		writeJar(t, fs, "/in.jar", entries)

		return fs, entries
	}

	t.Run("adds the flags and guards", func(t *testing.T) {
		fs, in := newJar(t)

		report, err := newWorkflow(fs).Patch(domain.PatchArgs{Jar: "/in.jar", Out: "/out.jar"})
		require.NoError(t, err)
		assert.Equal(t, []string{domain.DefaultPatchClass}, report.Modified)

		out, _ := readJar(t, fs, "/out.jar")
		assert.Equal(t, in["javassist/Other.class"], out["javassist/Other.class"])

		cf := parseClass(t, out["javassist/expr/ExprEditor.class"])
		for _, f := range []string{"disableInstanceof", "disableCast", "disableHandler"} {
			field := cf.FindField(f)
			require.NotNil(t, field, f)
			assert.Equal(t, "Z", cf.MemberDescriptor(field))
		}

		assert.Contains(t, opsOf(t, cf, "loopBody"), "getfield")
		assert.Contains(t, opsOf(t, cf, "doit"), "imul")
	})

	t.Run("fails for a missing class", func(t *testing.T) {
		fs, _ := newJar(t)

		_, err := newWorkflow(fs).Patch(domain.PatchArgs{Jar: "/in.jar", Out: "/out.jar", Class: "x.Missing"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrClassNotFound)
		assert.Contains(t, err.Error(), m.PrefixStructure)
	})
}

func TestWorkflow_ValidationStopsRun(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := newWorkflow(fs).Erase(domain.EraseArgs{Jar: "/in.jar"})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"out not specified", "no bindings specified"}, verr.Problems)
}

func TestArgs_Validate(t *testing.T) {
	tests := []struct {
		name string
		args interface{ Validate() error }
		want []string
	}{
		{name: "erase", args: domain.EraseArgs{}, want: []string{"jar not specified", "out not specified", "no bindings specified"}},
		{name: "list", args: domain.EraseArgs{List: true}, want: []string{"jar not specified"}},
		{name: "replicate", args: domain.ReplicateArgs{}, want: []string{"out not specified", "no mappings specified"}},
		{name: "replace", args: domain.ReplaceArgs{Jar: "a.jar"}, want: []string{"out not specified", "no mappings specified"}},
		{name: "patch", args: domain.PatchArgs{Out: "b.jar"}, want: []string{"jar not specified"}},
		{name: "complete", args: domain.EraseArgs{Jar: "a.jar", Out: "b.jar", Bindings: m.Bindings{"x": "true"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.args.Validate()
			if tt.want == nil {
				assert.NoError(t, err)

				return
			}

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.want, verr.Problems)
		})
	}
}

func TestRunError(t *testing.T) {
	tests := []struct {
		err    error
		prefix string
	}{
		{err: fmt.Errorf("x: %w", classfile.ErrCompile), prefix: m.PrefixCompile},
		{err: fmt.Errorf("x: %w", domain.ErrClassNotFound), prefix: m.PrefixStructure},
		{err: fmt.Errorf("x: %w", classfile.ErrMalformed), prefix: m.PrefixStructure},
		{err: errors.New("disk full"), prefix: m.PrefixIO},
	}

	for _, tt := range tests {
		err := domain.RunError(tt.err)
		assert.Equal(t, tt.prefix+tt.err.Error(), err.Error())
		assert.ErrorIs(t, err, tt.err)
	}

	assert.NoError(t, domain.RunError(nil))
}

func TestWorkflow_Erase_JarOpenFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	dataClassJar(t, fs)

	jars := adaptermocks.NewMockJarAdapter(t)
	jars.EXPECT().Open(m.Path("/in.jar")).Return(nil, errors.New("permission denied"))

	_, err := domain.NewWorkflow(fs, jars, zap.NewNop()).Erase(domain.EraseArgs{
		Jar:      "/in.jar",
		Out:      "/out.jar",
		Bindings: m.Bindings{"mem": "true"},
	})
	require.Error(t, err)
	assert.Equal(t, m.PrefixIO+"permission denied", err.Error())

	exists, _ := afero.Exists(fs, "/out.jar")
	assert.False(t, exists)
}
