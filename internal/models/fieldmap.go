package models

import "github.com/strut-dev/strut/internal/poet"

// FieldMap is the mapping from component requirement to its backing field in
// a creator type, preserving requirement declaration order. When a component
// implementation has a base creator implementation, descendants share the
// base's FieldMap by reference; fields are never re-declared down the chain.
type FieldMap struct {
	reqs   *RequirementSet
	fields map[string]poet.FieldSpec
}

// NewFieldMap creates an empty field map
func NewFieldMap() *FieldMap {
	return &FieldMap{reqs: NewRequirementSet(), fields: make(map[string]poet.FieldSpec)}
}

// Put records the backing field for a requirement
func (m *FieldMap) Put(r ComponentRequirement, f poet.FieldSpec) {
	if m.reqs.Add(r) {
		m.fields[r.Key()] = f
	}
}

// Get returns the backing field for a requirement
func (m *FieldMap) Get(r ComponentRequirement) (poet.FieldSpec, bool) {
	f, ok := m.fields[r.Key()]
	return f, ok
}

// Requirements returns the requirements that have backing fields, in order
func (m *FieldMap) Requirements() *RequirementSet {
	return m.reqs
}

// Len returns the number of fields in the map
func (m *FieldMap) Len() int {
	return m.reqs.Len()
}

// CreatorArtifact is the view of an already-generated creator implementation
// that descendants in an ahead-of-time chain need: the shared field map.
// Implemented by creator.CreatorImplementation.
type CreatorArtifact interface {
	Fields() *FieldMap
}
