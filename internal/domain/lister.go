package domain

import (
	"sort"

	m "github.com/mouse-blink/codeeraser/internal/model"
	"github.com/samber/lo"
)

// Lister collects the variability ids used by classes and their members.
type Lister struct {
	resolver *AnnotationResolver
}

// NewLister returns a lister resolving annotations with resolver.
func NewLister(resolver *AnnotationResolver) *Lister {
	return &Lister{resolver: resolver}
}

// List returns the annotated classes sorted by name and every id used.
func (l *Lister) List(classes []*LoadedClass) (m.Listing, error) {
	listing := m.Listing{Classes: []m.AnnotatedClass{}, IDs: []string{}}

	for _, c := range classes {
		ids, err := l.ids(c)
		if err != nil {
			return listing, err
		}

		if len(ids) == 0 {
			continue
		}

		listing.Classes = append(listing.Classes, m.AnnotatedClass{Name: c.Name, IDs: ids})
		listing.IDs = append(listing.IDs, ids...)
	}

	sort.Slice(listing.Classes, func(i, j int) bool {
		return listing.Classes[i].Name < listing.Classes[j].Name
	})

	listing.IDs = lo.Uniq(listing.IDs)
	sort.Strings(listing.IDs)

	return listing, nil
}

func (l *Lister) ids(c *LoadedClass) ([]string, error) {
	var found []*m.Variability

	v, err := l.resolver.Class(c)
	if err != nil {
		return nil, err
	}

	found = append(found, v)

	for _, f := range c.File.Fields {
		v, err := l.resolver.Field(c, f)
		if err != nil {
			return nil, err
		}

		found = append(found, v)
	}

	for _, mth := range c.File.Methods {
		v, err := l.resolver.Method(c, mth)
		if err != nil {
			return nil, err
		}

		found = append(found, v)
	}

	ids := lo.Uniq(lo.FlatMap(lo.Compact(found), func(v *m.Variability, _ int) []string {
		return v.IDs
	}))

	sort.Strings(ids)

	return ids, nil
}
