package domain

import (
	"fmt"
	"strings"

	"github.com/mouse-blink/codeeraser/internal/adapter"
	m "github.com/mouse-blink/codeeraser/internal/model"
)

// PatternPrefix marks a mappings key as a regular expression.
const PatternPrefix = "pattern:"

// ConfigLoader turns properties files and id=value pairs into bindings and
// mappings. Problems are collected on an error log so the rest still loads.
type ConfigLoader struct {
	props adapter.PropertiesAdapter
}

// NewConfigLoader returns a loader reading files through props.
func NewConfigLoader(props adapter.PropertiesAdapter) *ConfigLoader {
	return &ConfigLoader{props: props}
}

// Bindings reads file, if set, followed by pairs. Later values win.
func (l *ConfigLoader) Bindings(file m.Path, pairs []string, errs *m.ErrorLog) m.Bindings {
	b := m.Bindings{}

	l.load(file, errs, func(k, v string) {
		b.Set(k, v)
	})

	for _, pair := range pairs {
		k, v, err := ParsePair(pair)
		if err != nil {
			errs.Add(err)

			continue
		}

		b.Set(k, v)
	}

	return b
}

// Mappings reads file, if set, followed by pairs. Keys starting with
// PatternPrefix register patterns; invalid patterns are logged and skipped.
func (l *ConfigLoader) Mappings(file m.Path, pairs []string, errs *m.ErrorLog) m.Mappings {
	mappings := m.NewMappings()

	l.load(file, errs, func(k, v string) {
		errs.Add(AddMapping(&mappings, k, v))
	})

	for _, pair := range pairs {
		k, v, err := ParsePair(pair)
		if err != nil {
			errs.Add(err)

			continue
		}

		errs.Add(AddMapping(&mappings, k, v))
	}

	return mappings
}

func (l *ConfigLoader) load(file m.Path, errs *m.ErrorLog, add func(k, v string)) {
	if file == "" {
		return
	}

	props, err := l.props.Load(file)
	if err != nil {
		errs.Addf("%s%w", m.PrefixIO, err)

		return
	}

	for _, p := range props {
		add(p.Key, p.Value)
	}
}

// AddMapping registers key=value as an explicit mapping or, for keys with
// PatternPrefix, as a pattern.
func AddMapping(mappings *m.Mappings, key, value string) error {
	key, value = strings.TrimSpace(key), strings.TrimSpace(value)

	expr, isPattern := strings.CutPrefix(key, PatternPrefix)
	if !isPattern {
		mappings.Names[key] = value

		return nil
	}

	if expr == "" {
		return nil
	}

	p, err := m.NewPatternMapping(expr, value)
	if err != nil {
		return err
	}

	mappings.Patterns = append(mappings.Patterns, p)

	return nil
}

// ParsePair splits an id=value command line argument.
func ParsePair(s string) (string, string, error) {
	k, v, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(k) == "" {
		return "", "", fmt.Errorf("malformed pair %q, expected name=value", s)
	}

	return strings.TrimSpace(k), strings.TrimSpace(v), nil
}
