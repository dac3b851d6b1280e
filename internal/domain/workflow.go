package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mouse-blink/codeeraser/internal/adapter"
	"github.com/mouse-blink/codeeraser/internal/classfile"
	m "github.com/mouse-blink/codeeraser/internal/model"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Tool names used in reports.
const (
	ToolErase     = "erase"
	ToolReplicate = "replicate"
	ToolReplace   = "replace"
	ToolPatch     = "patch"
)

// ValidationError lists the arguments a tool is missing. The tool did not
// run.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "\n")
}

func validation(problems []string) error {
	if len(problems) == 0 {
		return nil
	}

	return &ValidationError{Problems: problems}
}

// EraseArgs configures an erase or list run.
type EraseArgs struct {
	Jar            m.Path
	Out            m.Path
	Bindings       m.Bindings
	Classpath      m.ClassPath
	Flat           bool
	List           bool
	Lazy           bool
	Prune          bool
	UnboundEnabled bool
	Include        []string
	Exclude        []string
	BinPath        string
}

// Validate reports missing arguments. Listing only needs the input.
func (a EraseArgs) Validate() error {
	var problems []string

	if a.Jar == "" {
		problems = append(problems, "jar not specified")
	}

	if !a.List {
		if a.Out == "" {
			problems = append(problems, "out not specified")
		}

		if len(a.Bindings) == 0 {
			problems = append(problems, "no bindings specified")
		}
	}

	return validation(problems)
}

func (a EraseArgs) policy() m.UnboundPolicy {
	if a.UnboundEnabled {
		return m.UnboundEnabled
	}

	return m.UnboundDisabled
}

// ReplicateArgs configures a replicate run.
type ReplicateArgs struct {
	Out       m.Path
	Mappings  m.Mappings
	Classpath m.ClassPath
}

// Validate reports missing arguments.
func (a ReplicateArgs) Validate() error {
	var problems []string

	if a.Out == "" {
		problems = append(problems, "out not specified")
	}

	if len(a.Mappings.Names) == 0 {
		problems = append(problems, "no mappings specified")
	}

	return validation(problems)
}

// ReplaceArgs configures a replace run.
type ReplaceArgs struct {
	Jar       m.Path
	Out       m.Path
	Mappings  m.Mappings
	Classpath m.ClassPath
}

// Validate reports missing arguments.
func (a ReplaceArgs) Validate() error {
	var problems []string

	if a.Jar == "" {
		problems = append(problems, "jar not specified")
	}

	if a.Out == "" {
		problems = append(problems, "out not specified")
	}

	if a.Mappings.Empty() {
		problems = append(problems, "no mappings specified")
	}

	return validation(problems)
}

// PatchArgs configures a patch run. An empty Class patches
// DefaultPatchClass.
type PatchArgs struct {
	Jar   m.Path
	Out   m.Path
	Class string
}

// Validate reports missing arguments.
func (a PatchArgs) Validate() error {
	var problems []string

	if a.Jar == "" {
		problems = append(problems, "jar not specified")
	}

	if a.Out == "" {
		problems = append(problems, "out not specified")
	}

	return validation(problems)
}

// Workflow runs the class rewriting tools. Every run gets its own class pool
// which is closed when the run ends. Run failures carry the error log
// prefix of their category.
type Workflow interface {
	Erase(args EraseArgs) (m.Report, error)
	List(args EraseArgs) (m.Listing, error)
	Replicate(args ReplicateArgs) (m.Report, error)
	Replace(args ReplaceArgs) (m.Report, error)
	Patch(args PatchArgs) (m.Report, error)
}

type workflow struct {
	fs   afero.Fs
	jars adapter.JarAdapter
	log  *zap.Logger
}

// NewWorkflow creates a Workflow reading and writing through fs.
func NewWorkflow(fs afero.Fs, jars adapter.JarAdapter, log *zap.Logger) Workflow {
	return &workflow{fs: fs, jars: jars, log: log}
}

// run opens a class pool over classpath, calls fn and closes the pool.
func (w *workflow) run(classpath m.ClassPath, fn func(pool ClassPool) error) (err error) {
	cp, err := adapter.NewClassPath(w.fs, adapter.DefaultOpenJars, classpath...)
	if err != nil {
		return RunError(err)
	}

	pool := NewClassPool(cp, w.log)

	defer func() {
		if cerr := pool.Close(); cerr != nil {
			err = multierr.Append(err, RunError(cerr))
		}
	}()

	return RunError(fn(pool))
}

func (w *workflow) openJar(pool ClassPool, args EraseArgs) (*JarProcessor, error) {
	selector, err := NewGlobSelector(args.Include, args.Exclude)
	if err != nil {
		return nil, err
	}

	pool.SetPruning(args.Prune)

	jp := NewJarProcessor(w.jars, pool, w.log, WithSelector(selector), WithBinPath(args.BinPath))
	if err := jp.LoadClasses(args.Jar); err != nil {
		return nil, err
	}

	return jp, nil
}

func (w *workflow) Erase(args EraseArgs) (m.Report, error) {
	report := m.Report{Tool: ToolErase, Output: args.Out}

	if err := args.Validate(); err != nil {
		return report, err
	}

	err := w.run(args.Classpath, func(pool ClassPool) error {
		jp, err := w.openJar(pool, args)
		if err != nil {
			return err
		}

		resolver := NewAnnotationResolver(pool, !args.Flat, w.log)
		eraser := NewEraser(pool, resolver, DecisionTable{Bindings: args.Bindings, Policy: args.policy()}, args.Lazy, w.log)

		res, err := eraser.Process(jp.Classes())
		if err != nil {
			return err
		}

		for _, c := range res.Removed {
			jp.Drop(c)
		}

		stats, err := jp.WriteClasses(args.Jar, args.Out, nil)
		if err != nil {
			return err
		}

		report.Changes = res.Changes
		report.Modified = res.Modified
		report.Warnings = res.Warnings
		report.Written, report.Copied = stats.Written, stats.Copied

		return nil
	})

	w.log.Info("erase finished", zap.String("out", string(args.Out)),
		zap.Int("changes", len(report.Changes)), zap.Error(err))

	return report, err
}

func (w *workflow) List(args EraseArgs) (m.Listing, error) {
	args.List = true

	var listing m.Listing

	if err := args.Validate(); err != nil {
		return listing, err
	}

	err := w.run(args.Classpath, func(pool ClassPool) error {
		jp, err := w.openJar(pool, args)
		if err != nil {
			return err
		}

		listing, err = NewLister(NewAnnotationResolver(pool, !args.Flat, w.log)).List(jp.Classes())

		return err
	})

	return listing, err
}

func (w *workflow) Replicate(args ReplicateArgs) (m.Report, error) {
	report := m.Report{Tool: ToolReplicate, Output: args.Out}

	if err := args.Validate(); err != nil {
		return report, err
	}

	for _, p := range args.Mappings.Patterns {
		msg := fmt.Sprintf("pattern %s ignored, replication needs explicit names", p.Expression)
		report.Warnings = append(report.Warnings, msg)
	}

	err := w.run(args.Classpath, func(pool ClassPool) error {
		classes, _, renamed, err := NewReplicator(pool, w.log).Replicate(args.Mappings.Names)
		if err != nil {
			return err
		}

		jp := NewJarProcessor(w.jars, pool, w.log)
		for _, c := range classes {
			jp.Add(c)
		}

		stats, err := jp.WriteClasses("", args.Out, nil)
		if err != nil {
			return err
		}

		report.Renamed = renamed
		report.Written = stats.Written

		return nil
	})

	return report, err
}

func (w *workflow) Replace(args ReplaceArgs) (m.Report, error) {
	report := m.Report{Tool: ToolReplace, Output: args.Out}

	if err := args.Validate(); err != nil {
		return report, err
	}

	err := w.run(args.Classpath, func(pool ClassPool) error {
		jp := NewJarProcessor(w.jars, pool, w.log)
		if err := jp.LoadClasses(args.Jar); err != nil {
			return err
		}

		replacer := NewReplacer(w.log)
		names := replacer.BuildMap(jp.Classes(), args.Mappings)

		renamed, err := replacer.Replace(jp.Classes(), names, jp.EntryPath)
		if err != nil {
			return err
		}

		stats, err := jp.WriteClasses(args.Jar, args.Out, nil)
		if err != nil {
			return err
		}

		report.Renamed = renamed
		report.Written, report.Copied = stats.Written, stats.Copied

		return nil
	})

	return report, err
}

// patchProcessor patches one class while the input is copied.
type patchProcessor struct {
	class   string
	patcher *Patcher
	patched bool
}

func (p *patchProcessor) Decide(name string) ProcessDecision {
	if name == p.class {
		return Process
	}

	return PassThrough
}

func (p *patchProcessor) Process(c *LoadedClass) error {
	if err := p.patcher.Patch(c); err != nil {
		return err
	}

	p.patched = true

	return nil
}

func (w *workflow) Patch(args PatchArgs) (m.Report, error) {
	report := m.Report{Tool: ToolPatch, Output: args.Out}

	if err := args.Validate(); err != nil {
		return report, err
	}

	if args.Class == "" {
		args.Class = DefaultPatchClass
	}

	err := w.run(nil, func(pool ClassPool) error {
		proc := &patchProcessor{class: args.Class, patcher: NewPatcher(w.log)}

		stats, err := NewJarProcessor(w.jars, pool, w.log).WriteClasses(args.Jar, args.Out, proc)
		if err != nil {
			return err
		}

		if !proc.patched {
			return fmt.Errorf("%s: %w", args.Class, ErrClassNotFound)
		}

		report.Modified = []string{args.Class}
		report.Written, report.Copied = stats.Written, stats.Copied

		return nil
	})

	return report, err
}

// RunError prefixes err with the error log category it belongs to.
func RunError(err error) error {
	if err == nil {
		return nil
	}

	var prefix string

	switch {
	case errors.Is(err, classfile.ErrCompile):
		prefix = m.PrefixCompile
	case errors.Is(err, ErrClassNotFound), errors.Is(err, ErrMemberNotFound), errors.Is(err, classfile.ErrMalformed):
		prefix = m.PrefixStructure
	default:
		prefix = m.PrefixIO
	}

	return fmt.Errorf("%s%w", prefix, err)
}
