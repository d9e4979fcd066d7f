// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

import (
	"fmt"
	"sort"
)

// ResultKind tells what a work unit produced for a single raw input line.
type ResultKind int

// The kinds of results a single raw input line can produce.
const (
	Dropped     ResultKind = iota // blank line, nothing to emit.
	Resolved                      // a resolved record.
	PassThrough                   // not an address, raw line preserved.
)

// String returns the clear-text representation of a ResultKind value.
func (k ResultKind) String() string {
	switch k {
	case Dropped:
		return "dropped"
	case Resolved:
		return "resolved"
	case PassThrough:
		return "pass-through"
	}
	return fmt.Sprintf("ResultKind(%d)", k)
}

// Result is the outcome of processing a single raw input line: either a
// resolved record, a raw line to be passed through, or nothing at all.
type Result struct {
	Kind   ResultKind
	Record ResolvedRecord // only valid for Resolved.
	Raw    string         // only valid for PassThrough.
}

// NewResolved returns a Result carrying the specified resolved record.
func NewResolved(r ResolvedRecord) Result {
	return Result{Kind: Resolved, Record: r}
}

// NewPassThrough returns a Result preserving the specified raw line.
func NewPassThrough(line string) Result {
	return Result{Kind: PassThrough, Raw: line}
}

// String renders the result in its final text form; this is the empty string
// for dropped results.
func (r Result) String() string {
	switch r.Kind {
	case Resolved:
		return r.Record.String()
	case PassThrough:
		return r.Raw
	}
	return ""
}

// ResultSet is a set of rendered results. The zero value is not usable, use
// NewResultSet instead. ResultSets are not safe for concurrent use; the
// aggregator owning a set takes care of that.
type ResultSet struct {
	m map[string]struct{}
}

// NewResultSet returns a new and empty ResultSet.
func NewResultSet() *ResultSet {
	return &ResultSet{m: map[string]struct{}{}}
}

// Insert adds a rendering to the set, returning true if it wasn't yet present.
func (s *ResultSet) Insert(rendering string) bool {
	if _, ok := s.m[rendering]; ok {
		return false
	}
	s.m[rendering] = struct{}{}
	return true
}

// Contains returns true if the rendering is an element of this set.
func (s *ResultSet) Contains(rendering string) bool {
	_, ok := s.m[rendering]
	return ok
}

// Len returns the number of elements in this set.
func (s *ResultSet) Len() int { return len(s.m) }

// Clone returns an independent copy of the set.
func (s *ResultSet) Clone() *ResultSet {
	clone := &ResultSet{m: make(map[string]struct{}, len(s.m))}
	for elem := range s.m {
		clone.m[elem] = struct{}{}
	}
	return clone
}

// Sorted returns the elements of this set in lexicographic order.
func (s *ResultSet) Sorted() []string {
	elems := make([]string, 0, len(s.m))
	for elem := range s.m {
		elems = append(elems, elem)
	}
	sort.Strings(elems)
	return elems
}
