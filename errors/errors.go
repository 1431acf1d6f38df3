// Package errors defines the shared error types used across the Quint
// frontend and evaluator.
//
// Two taxonomies are kept strictly separate: compile-time errors, produced
// while lowering IR into a computable graph, and runtime errors, produced
// while evaluating that graph. Both share the same shape: a human-readable
// explanation plus the list of IR node identities that contributed to it.
package errors

import (
	"fmt"
	"sort"
	"strings"
)

// A Message is a printf-style error message whose formatting is deferred so
// that callers may localize or otherwise post-process it later.
type Message struct {
	format string
	args   []interface{}
}

// NewMessagef creates a deferred error message for human consumption.
func NewMessagef(format string, args ...interface{}) Message {
	return Message{format: format, args: args}
}

func (m *Message) Msg() (string, []interface{}) { return m.format, m.args }

func (m *Message) Error() string { return fmt.Sprintf(m.format, m.args...) }

// Error is the common interface implemented by every error value produced
// by the resolver, compiler, and simulator.
type Error interface {
	error

	// References returns the IR node identities that contributed to this
	// error, in the order they were recorded. The embedding layer maps
	// these back to source locations.
	References() []int

	// Msg returns the unformatted message and its arguments.
	Msg() (format string, args []interface{})
}

// baseError is the concrete Error used by this package's constructors.
type baseError struct {
	Message
	refs []int
}

func (e *baseError) References() []int { return e.refs }

// New creates an Error attributed to the given node identities.
func New(refs []int, format string, args ...interface{}) Error {
	return &baseError{Message: NewMessagef(format, args...), refs: refs}
}

// List is a, possibly empty, aggregation of Errors. A nil *List behaves as
// an empty list so it is always safe to range over or append to one.
type List struct {
	errs []Error
}

// Append records err into the list, flattening nested Lists so that the
// aggregate stays a single level deep.
func Append(list *List, err Error) *List {
	if err == nil {
		return list
	}
	if list == nil {
		list = &List{}
	}
	if l, ok := err.(*List); ok {
		list.errs = append(list.errs, l.errs...)
		return list
	}
	list.errs = append(list.errs, err)
	return list
}

// Errors returns the individual errors collected so far.
func (l *List) Errors() []Error {
	if l == nil {
		return nil
	}
	return l.errs
}

func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.errs)
}

func (l *List) References() []int {
	if l == nil {
		return nil
	}
	var refs []int
	for _, e := range l.errs {
		refs = append(refs, e.References()...)
	}
	return refs
}

func (l *List) Msg() (string, []interface{}) {
	if l.Len() == 0 {
		return "", nil
	}
	return l.errs[0].Msg()
}

func (l *List) Error() string {
	if l.Len() == 0 {
		return ""
	}
	msgs := make([]string, len(l.errs))
	for i, e := range l.errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// Sanitize sorts and deduplicates the errors in a list by message text so
// that repeated resolver or compiler passes over the same IR produce a
// stable, non-redundant report.
func Sanitize(list *List) *List {
	if list.Len() == 0 {
		return list
	}
	sorted := append([]Error(nil), list.errs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Error() < sorted[j].Error()
	})
	out := &List{}
	seen := make(map[string]bool, len(sorted))
	for _, e := range sorted {
		key := e.Error()
		if seen[key] {
			continue
		}
		seen[key] = true
		out.errs = append(out.errs, e)
	}
	return out
}
