package models

import (
	"fmt"

	"github.com/strut-dev/strut/internal/poet"
)

// ComponentRequirement is a single dependency a component needs externally
// supplied: a module instance, a component dependency, or a bound instance.
// Requirements are identified by kind and type; uniqueness within a
// creator's field set is an invariant.
type ComponentRequirement struct {
	Kind        RequirementKind
	Type        *poet.TypeName
	Name        string     // preferred variable name for the backing field
	Policy      NullPolicy // rule applied at factory time when still unset
	Constructor string     // module constructor expression; empty uses the default
}

// Key returns the identity of the requirement within a component
func (r ComponentRequirement) Key() string {
	return fmt.Sprintf("%s:%s", r.Kind, r.Type.CanonicalKey())
}

// DefaultConstructorExpr returns the expression the generated factory method
// uses to default-construct a module instance that was never set explicitly
func (r ComponentRequirement) DefaultConstructorExpr() string {
	if r.Constructor != "" {
		return r.Constructor
	}
	if r.Type.Kind == poet.KindPointer {
		return "&" + r.Type.Elem.String() + "{}"
	}
	return r.Type.String() + "{}"
}

// RequirementSet is an ordered, duplicate-free set of component requirements.
// Iteration order is the manifest declaration order, which the factory method
// and constructor-argument list follow.
type RequirementSet struct {
	items []ComponentRequirement
	index map[string]int
}

// NewRequirementSet creates a set containing the given requirements,
// silently keeping the first occurrence of any duplicate
func NewRequirementSet(reqs ...ComponentRequirement) *RequirementSet {
	s := &RequirementSet{index: make(map[string]int)}
	for _, r := range reqs {
		s.Add(r)
	}
	return s
}

// Add appends the requirement, reporting whether it was newly added
func (s *RequirementSet) Add(r ComponentRequirement) bool {
	if _, exists := s.index[r.Key()]; exists {
		return false
	}
	s.index[r.Key()] = len(s.items)
	s.items = append(s.items, r)
	return true
}

// Contains reports whether an identical requirement is in the set
func (s *RequirementSet) Contains(r ComponentRequirement) bool {
	_, ok := s.index[r.Key()]
	return ok
}

// Len returns the number of requirements in the set
func (s *RequirementSet) Len() int {
	return len(s.items)
}

// Slice returns the requirements in declaration order. The returned slice
// must not be mutated.
func (s *RequirementSet) Slice() []ComponentRequirement {
	return s.items
}

// Intersect returns the requirements present in both sets, in the receiver's
// declaration order
func (s *RequirementSet) Intersect(other *RequirementSet) *RequirementSet {
	result := NewRequirementSet()
	for _, r := range s.items {
		if other.Contains(r) {
			result.Add(r)
		}
	}
	return result
}

// Keys returns the identity keys in declaration order
func (s *RequirementSet) Keys() []string {
	keys := make([]string, len(s.items))
	for i, r := range s.items {
		keys[i] = r.Key()
	}
	return keys
}
