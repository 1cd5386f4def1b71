// Package util holds small generic helpers: a map-backed Set, used by the
// evaluation-graph and analysis packages for graph traversal, and text-list
// formatting.
package util

import (
	"fmt"
	"sort"
	"strings"
)

// Set is a generic, unordered collection of comparable elements backed by a
// map. It tracks visited nodes in the evaluation graph's reachability
// search and the current DFS path in struct-cycle detection.
type Set[E comparable] map[E]bool

// NewSet creates a Set pre-populated with the union of the given source maps.
func NewSet[E comparable](of ...map[E]bool) Set[E] {
	s := Set[E]{}
	for _, m := range of {
		for k := range m {
			s.Add(k)
		}
	}
	return s
}

// SetOf creates a Set containing every element of sl.
func SetOf[E comparable](sl []E) Set[E] {
	if sl == nil {
		return nil
	}
	s := NewSet[E]()
	for i := range sl {
		s.Add(sl[i])
	}
	return s
}

// Add adds element to the set. Has no effect if it is already present.
func (s Set[E]) Add(element E) {
	s[element] = true
}

// AddAll adds every element of s2 to s.
func (s Set[E]) AddAll(s2 Set[E]) {
	for element := range s2 {
		s.Add(element)
	}
}

// Remove removes element from the set. Has no effect if it is not present.
func (s Set[E]) Remove(element E) {
	delete(s, element)
}

// Has returns whether element is in the set.
func (s Set[E]) Has(element E) bool {
	_, ok := s[element]
	return ok
}

// Len returns the number of elements in the set.
func (s Set[E]) Len() int {
	return len(s)
}

// Empty returns whether the set has no elements.
func (s Set[E]) Empty() bool {
	return s.Len() == 0
}

// Copy returns a shallow copy of the set.
func (s Set[E]) Copy() Set[E] {
	newS := NewSet[E]()
	newS.AddAll(s)
	return newS
}

// Union returns a new set containing every element of s and o.
func (s Set[E]) Union(o Set[E]) Set[E] {
	newSet := s.Copy()
	newSet.AddAll(o)
	return newSet
}

// Intersection returns a new set containing only elements present in both s
// and o.
func (s Set[E]) Intersection(o Set[E]) Set[E] {
	newSet := NewSet[E]()
	for element := range s {
		if o.Has(element) {
			newSet.Add(element)
		}
	}
	return newSet
}

// Difference returns a new set containing elements of s that are not in o.
func (s Set[E]) Difference(o Set[E]) Set[E] {
	newSet := s.Copy()
	for element := range o {
		newSet.Remove(element)
	}
	return newSet
}

// DisjointWith returns whether s and o share no elements.
func (s Set[E]) DisjointWith(o Set[E]) bool {
	for element := range s {
		if o.Has(element) {
			return false
		}
	}
	return true
}

// Any returns whether any element in the set satisfies predicate.
func (s Set[E]) Any(predicate func(v E) bool) bool {
	for element := range s {
		if predicate(element) {
			return true
		}
	}
	return false
}

// Elements returns the elements of s in no particular order.
func (s Set[E]) Elements() []E {
	if s == nil {
		return nil
	}
	sl := make([]E, 0, len(s))
	for element := range s {
		sl = append(sl, element)
	}
	return sl
}

// String shows the contents of the set in unspecified order.
func (s Set[E]) String() string {
	var sb strings.Builder
	total := s.Len()
	written := 0

	sb.WriteRune('{')
	for element := range s {
		sb.WriteString(fmt.Sprintf("%v", element))
		written++
		if written < total {
			sb.WriteString(", ")
		}
	}
	sb.WriteRune('}')
	return sb.String()
}

// StringOrdered shows the contents of the set sorted by its %v
// representation, useful for deterministic diagnostic output.
func (s Set[E]) StringOrdered() string {
	conv := make([]string, 0, len(s))
	for element := range s {
		conv = append(conv, fmt.Sprintf("%v", element))
	}
	sort.Strings(conv)
	return "{" + strings.Join(conv, ", ") + "}"
}

// MakeTextList gives a nice comma + "and"-joined list of items, with an
// Oxford comma when there are three or more. Used when rendering
// diagnostics that need to enumerate several names at once (e.g. "expected
// one of Int, Float, and String").
func MakeTextList(items []string) string {
	if len(items) < 1 {
		return ""
	}
	if len(items) == 1 {
		return items[0]
	}
	if len(items) == 2 {
		return items[0] + " and " + items[1]
	}

	listed := make([]string, len(items))
	copy(listed, items)
	listed[len(listed)-1] = "and " + listed[len(listed)-1]
	return strings.Join(listed, ", ")
}
