package model

import (
	"fmt"
	"strings"
)

// AnnotatedClass lists the variability ids found on a class and its members.
type AnnotatedClass struct {
	Name string
	IDs  []string
}

// Listing is the result of listing annotations instead of erasing.
type Listing struct {
	Classes []AnnotatedClass
	IDs     []string
}

// String renders the listing in its text form.
func (l Listing) String() string {
	var b strings.Builder

	b.WriteString("Annotated classes:\n")

	for _, c := range l.Classes {
		fmt.Fprintf(&b, " - %s: %s\n", c.Name, strings.Join(c.IDs, ", "))
	}

	b.WriteString("\nAnnotation ids:\n")

	for _, id := range l.IDs {
		fmt.Fprintf(&b, " - %s\n", id)
	}

	return b.String()
}

// ElementKind names the kind of element a report entry refers to.
type ElementKind string

// Element kinds.
const (
	ElementClass       ElementKind = "class"
	ElementField       ElementKind = "field"
	ElementMethod      ElementKind = "method"
	ElementConstructor ElementKind = "constructor"
)

// Change is one element touched by a run.
type Change struct {
	Kind     ElementKind
	Element  string
	Decision Decision
}

// Renamed is one class written under a new name.
type Renamed struct {
	From string
	To   string
}

// Report summarizes one tool run.
type Report struct {
	Tool     string
	Output   Path
	Changes  []Change
	Renamed  []Renamed
	Modified []string
	Warnings []string
	Written  int
	Copied   int
}
