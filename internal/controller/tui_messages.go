package controller

import (
	"strings"
)

// Message types.
type listingMsg struct {
	classes []classItem
	ids     []string
}

// List item types.
type classItem struct {
	name string
	ids  []string
}

func (c classItem) FilterValue() string {
	return c.name + " " + strings.Join(c.ids, " ")
}
