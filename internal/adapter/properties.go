package adapter

import (
	"fmt"

	"github.com/magiconair/properties"
	m "github.com/mouse-blink/codeeraser/internal/model"
	"github.com/spf13/afero"
)

// Property is one key/value pair in file order.
type Property struct {
	Key   string
	Value string
}

// PropertiesAdapter reads Java properties files such as mapping and binding
// files.
type PropertiesAdapter interface {
	// Load returns the properties of path in file order. Values are not
	// expanded.
	Load(path m.Path) ([]Property, error)
}

// LocalPropertiesAdapter reads properties files from an afero filesystem.
type LocalPropertiesAdapter struct {
	fs afero.Fs
}

// NewLocalPropertiesAdapter constructs a LocalPropertiesAdapter.
func NewLocalPropertiesAdapter(fs afero.Fs) *LocalPropertiesAdapter {
	return &LocalPropertiesAdapter{fs: fs}
}

// Load implements PropertiesAdapter.
func (a *LocalPropertiesAdapter) Load(path m.Path) ([]Property, error) {
	data, err := afero.ReadFile(a.fs, string(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	loader := &properties.Loader{Encoding: properties.ISO_8859_1, DisableExpansion: true}

	p, err := loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	out := make([]Property, 0, p.Len())

	for _, k := range p.Keys() {
		v, _ := p.Get(k)
		out = append(out, Property{Key: k, Value: v})
	}

	return out, nil
}
