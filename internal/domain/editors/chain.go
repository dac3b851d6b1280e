package editors

import (
	"sort"

	"github.com/mouse-blink/codeeraser/internal/classfile"
)

// Chain visits each site with every visitor in order. Later visitors see
// the edits of earlier ones.
type Chain []classfile.SiteVisitor

// Visit implements classfile.SiteVisitor.
func (c Chain) Visit(site classfile.Site, edits *classfile.EditList) error {
	for _, v := range c {
		if err := v.Visit(site, edits); err != nil {
			return err
		}
	}

	return nil
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}

	sort.Strings(out)

	return out
}
