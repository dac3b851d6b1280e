package domain

import (
	"fmt"

	"github.com/mouse-blink/codeeraser/internal/adapter"
	m "github.com/mouse-blink/codeeraser/internal/model"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// TaskResult is the outcome of one task of a task file.
type TaskResult struct {
	Index   int
	Type    string
	Report  m.Report
	Listing *m.Listing
	// Failed is set when the tool itself did not finish.
	Failed bool
	// Errors holds the configuration problems and the run failure of the
	// task, each prefixed with the task index.
	Errors *m.ErrorLog
}

// TaskRunner runs the tasks of a task file in order.
type TaskRunner struct {
	workflow Workflow
	config   *ConfigLoader
	log      *zap.Logger
}

// NewTaskRunner returns a runner delegating to workflow.
func NewTaskRunner(workflow Workflow, config *ConfigLoader, log *zap.Logger) *TaskRunner {
	return &TaskRunner{workflow: workflow, config: config, log: log}
}

// Run runs every task. A failing task does not stop the following ones.
func (r *TaskRunner) Run(tf *adapter.TaskFile) []TaskResult {
	results := make([]TaskResult, 0, len(tf.Tasks))

	for i, t := range tf.Tasks {
		r.log.Info("running task", zap.Int("index", i), zap.String("type", t.Type))
		results = append(results, r.runTask(i, t))
	}

	return results
}

func (r *TaskRunner) runTask(index int, t adapter.Task) TaskResult {
	res := TaskResult{Index: index, Type: t.Type, Errors: &m.ErrorLog{}}
	errs := &m.ErrorLog{}
	classpath := m.ClassPath(lo.Map(t.Classpath, func(p string, _ int) m.Path {
		return m.Path(p)
	}))

	var err error

	switch t.Type {
	case adapter.TaskErase:
		args := EraseArgs{
			Jar:       m.Path(t.JarFile),
			Out:       m.Path(t.OutFile),
			Bindings:  r.config.Bindings(m.Path(t.BindingsFile), pairs(t.Bindings), errs),
			Classpath: classpath,
			Flat:      t.Flat,
			List:      t.List,
			Lazy:      t.Lazy,
			Prune:     t.Prune,
		}

		if t.List {
			var listing m.Listing

			listing, err = r.workflow.List(args)
			res.Listing = &listing
		} else {
			res.Report, err = r.workflow.Erase(args)
		}
	case adapter.TaskReplicate:
		res.Report, err = r.workflow.Replicate(ReplicateArgs{
			Out:       m.Path(t.OutFile),
			Mappings:  r.config.Mappings(m.Path(t.MappingsFile), pairs(t.Mappings), errs),
			Classpath: classpath,
		})
	case adapter.TaskReplace:
		res.Report, err = r.workflow.Replace(ReplaceArgs{
			Jar:       m.Path(t.JarFile),
			Out:       m.Path(t.OutFile),
			Mappings:  r.config.Mappings(m.Path(t.MappingsFile), pairs(t.Mappings), errs),
			Classpath: classpath,
		})
	case adapter.TaskPatch:
		res.Report, err = r.workflow.Patch(PatchArgs{Jar: m.Path(t.JarFile), Out: m.Path(t.OutFile), Class: t.Class})
	default:
		err = fmt.Errorf("unknown task type %q", t.Type)
	}

	errs.Add(err)
	res.Failed = err != nil

	for _, e := range errs.Errors() {
		res.Errors.Addf("task %d (%s): %w", index, t.Type, e)
	}

	return res
}

func pairs(nvs []adapter.NameValue) []string {
	return lo.Map(nvs, func(nv adapter.NameValue, _ int) string {
		return nv.Name + "=" + nv.Value
	})
}
