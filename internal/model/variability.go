package model

import (
	"strings"
)

// Operation combines the states of several variability ids.
type Operation string

// Operations of the Variability annotation.
const (
	OpAnd Operation = "AND"
	OpOr  Operation = "OR"
	OpXor Operation = "XOR"
)

// Variability is the typed content of a Variability annotation.
type Variability struct {
	IDs              []string
	Op               Operation
	RemoveIfDisabled bool
	Value            string
}

// NewVariability returns a record with the annotation defaults.
func NewVariability(ids ...string) Variability {
	return Variability{IDs: ids, Op: OpAnd, RemoveIfDisabled: true}
}

// BindingState is the state of one variability id.
type BindingState int

// Binding states.
const (
	Unbound BindingState = iota
	Enabled
	Disabled
)

// Bindings maps variability ids to their configured values.
type Bindings map[string]string

// Set stores a binding with a trimmed key.
func (b Bindings) Set(id, value string) {
	b[strings.TrimSpace(id)] = strings.TrimSpace(value)
}

// State evaluates id. "true" and "false" are case-insensitive; any other
// non-empty value names a selected variant and counts as enabled.
func (b Bindings) State(id string) BindingState {
	v, ok := b[strings.TrimSpace(id)]
	if !ok || v == "" {
		return Unbound
	}

	if strings.EqualFold(v, "false") {
		return Disabled
	}

	return Enabled
}

// Value returns the raw value bound to id.
func (b Bindings) Value(id string) (string, bool) {
	v, ok := b[strings.TrimSpace(id)]

	return v, ok && v != ""
}

// UnboundPolicy decides how unbound ids evaluate.
type UnboundPolicy int

// Policies for unbound ids.
const (
	UnboundDisabled UnboundPolicy = iota
	UnboundEnabled
)

// DecisionKind is the outcome for one annotated element.
type DecisionKind int

// Decision kinds.
const (
	Keep DecisionKind = iota
	Remove
	Replace
)

func (k DecisionKind) String() string {
	switch k {
	case Remove:
		return "REMOVE"
	case Replace:
		return "REPLACE"
	default:
		return "KEEP"
	}
}

// Decision is a decision kind plus the replacement value for Replace.
type Decision struct {
	Kind  DecisionKind
	Value string
}

// Erases reports whether the element leaves the output.
func (d Decision) Erases() bool {
	return d.Kind != Keep
}
