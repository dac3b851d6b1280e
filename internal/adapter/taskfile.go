package adapter

import (
	"bytes"
	"fmt"

	m "github.com/mouse-blink/codeeraser/internal/model"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Task types.
const (
	TaskErase     = "erase"
	TaskReplicate = "replicate"
	TaskReplace   = "replace"
	TaskPatch     = "patch"
)

// NameValue is a nested name/value element of a task.
type NameValue struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Task is one entry of a task file.
type Task struct {
	Type         string      `yaml:"type"`
	JarFile      string      `yaml:"jarFile"`
	OutFile      string      `yaml:"outFile"`
	MappingsFile string      `yaml:"mappingsFile"`
	BindingsFile string      `yaml:"bindingsFile"`
	Mappings     []NameValue `yaml:"mappings"`
	Bindings     []NameValue `yaml:"bindings"`
	Flat         bool        `yaml:"flat"`
	List         bool        `yaml:"list"`
	Lazy         bool        `yaml:"lazy"`
	Prune        bool        `yaml:"prune"`
	Classpath    []string    `yaml:"classpath"`
	Class        string      `yaml:"class"`
}

// TaskFile is the document read by the task command.
type TaskFile struct {
	Tasks []Task `yaml:"tasks"`
}

// TaskFileAdapter reads task files.
type TaskFileAdapter interface {
	// Load parses the task file at path.
	Load(path m.Path) (*TaskFile, error)
}

// LocalTaskFileAdapter reads task files from an afero filesystem.
type LocalTaskFileAdapter struct {
	fs afero.Fs
}

// NewLocalTaskFileAdapter constructs a LocalTaskFileAdapter.
func NewLocalTaskFileAdapter(fs afero.Fs) *LocalTaskFileAdapter {
	return &LocalTaskFileAdapter{fs: fs}
}

// Load implements TaskFileAdapter.
func (a *LocalTaskFileAdapter) Load(path m.Path) (*TaskFile, error) {
	data, err := afero.ReadFile(a.fs, string(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var tf TaskFile
	if err := dec.Decode(&tf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for i, t := range tf.Tasks {
		switch t.Type {
		case TaskErase, TaskReplicate, TaskReplace, TaskPatch:
		default:
			return nil, fmt.Errorf("failed to parse %s: task %d: unknown type %q", path, i, t.Type)
		}
	}

	return &tf, nil
}
