package classfile

import "fmt"

type handlerEdit struct {
	drop      bool
	catchType uint16
}

// EditList collects the edits of one method body.
type EditList struct {
	code     map[int][]Instruction
	handlers map[int]handlerEdit
	stack    int
}

// NewEditList returns an empty list.
func NewEditList() *EditList {
	return &EditList{code: map[int][]Instruction{}, handlers: map[int]handlerEdit{}}
}

// Replace substitutes the instruction at index with code. An empty code
// deletes the instruction.
func (l *EditList) Replace(index int, code ...Instruction) error {
	if _, ok := l.code[index]; ok {
		return fmt.Errorf("%w: instruction %d edited twice", ErrCompile, index)
	}

	l.code[index] = code

	return nil
}

// Remove deletes the instruction at index.
func (l *EditList) Remove(index int) error {
	return l.Replace(index)
}

// Edited reports whether index already carries an edit.
func (l *EditList) Edited(index int) bool {
	_, ok := l.code[index]

	return ok
}

// DropHandler removes exception table entry i.
func (l *EditList) DropHandler(i int) error {
	if _, ok := l.handlers[i]; ok {
		return fmt.Errorf("%w: handler %d edited twice", ErrCompile, i)
	}

	l.handlers[i] = handlerEdit{drop: true}

	return nil
}

// SetCatchType retargets exception table entry i to the class constant at
// classIndex.
func (l *EditList) SetCatchType(i int, classIndex uint16) error {
	if _, ok := l.handlers[i]; ok {
		return fmt.Errorf("%w: handler %d edited twice", ErrCompile, i)
	}

	l.handlers[i] = handlerEdit{catchType: classIndex}

	return nil
}

// ReserveStack records extra operand stack needed by the inserted code.
func (l *EditList) ReserveStack(n int) {
	if n > l.stack {
		l.stack = n
	}
}

// Len returns the number of edits.
func (l *EditList) Len() int {
	return len(l.code) + len(l.handlers)
}
